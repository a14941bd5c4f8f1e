package level

import (
	"errors"
	"testing"

	"github.com/lixenwraith/arena/vmath"
)

const room = `
#####
#P.O#
#..T#
#####
`

func TestParseRoom(t *testing.T) {
	l, err := ParseString(room, 1, 2)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if l.Cols != 5 || l.Rows != 4 {
		t.Fatalf("size = %dx%d, want 5x4", l.Cols, l.Rows)
	}
	if len(l.Walls) != 14 {
		t.Fatalf("walls = %d, want 14", len(l.Walls))
	}

	first := l.Walls[0]
	if !first.Center.ApproxEqual(vmath.Vec3{0.5, 1, 0.5}) || !first.HalfExtents.ApproxEqual(vmath.Vec3{0.5, 1, 0.5}) {
		t.Errorf("first wall = %+v", first)
	}
	if !l.Player.ApproxEqual(vmath.Vec3{1.5, 0, 1.5}) {
		t.Errorf("player = %v", l.Player)
	}
	if len(l.Triggers) != 1 || !l.Triggers[0].ApproxEqual(vmath.Vec3{3.5, 0, 2.5}) {
		t.Errorf("triggers = %v", l.Triggers)
	}
	if len(l.Obstacles) != 1 {
		t.Fatalf("obstacles = %d, want 1", len(l.Obstacles))
	}
	// blocked along +X, so the patrol runs down the column
	o := l.Obstacles[0]
	if !o.From.ApproxEqual(vmath.Vec3{3.5, 0, 1.5}) || !o.To.ApproxEqual(vmath.Vec3{3.5, 0, 2.5}) {
		t.Errorf("patrol = %+v", o)
	}

	idx, err := l.BuildIndex(2)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if idx.Len() != len(l.Walls) {
		t.Errorf("index len = %d, want %d", idx.Len(), len(l.Walls))
	}
}

func TestParsePadsShortRows(t *testing.T) {
	l, err := ParseString("####\n#P\n####\n", 1, 2)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if l.Cols != 4 || l.IsWall(Tile{X: 3, Z: 1}) {
		t.Errorf("short row not padded with floor")
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"empty", "\n\n"},
		{"no player", "###\n#.#\n###"},
		{"two players", "####\n#PP#\n####"},
		{"unknown glyph", "###\n#Px\n###"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.layout, 1, 2)
			if !errors.Is(err, ErrMalformedLevel) {
				t.Errorf("err = %v, want ErrMalformedLevel", err)
			}
		})
	}
}

func TestTileAt(t *testing.T) {
	l, err := ParseString(room, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	tile, ok := l.TileAt(vmath.Vec3{3.9, 0, 2.1})
	if !ok || tile != (Tile{X: 1, Z: 1}) {
		t.Errorf("TileAt = %v %v", tile, ok)
	}
	if _, ok := l.TileAt(vmath.Vec3{-0.1, 0, 1}); ok {
		t.Error("negative position mapped inside")
	}
	if _, ok := l.TileAt(vmath.Vec3{10, 0, 1}); ok {
		t.Error("position past last column mapped inside")
	}
}

func deadEnds(l *Level) int {
	n := 0
	for z := 1; z < l.Rows-1; z += 2 {
		for x := 1; x < l.Cols-1; x += 2 {
			if !l.Grid[z][x] && l.exits(Tile{X: x, Z: z}) == 1 {
				n++
			}
		}
	}
	return n
}

func TestGenerateShape(t *testing.T) {
	for _, loops := range []float64{0, 0.5, 1} {
		l, err := Generate(GenerateConfig{Cols: 22, Rows: 15, Loops: loops, Obstacles: 3, Seed: 7})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if l.Cols != 21 || l.Rows != 15 {
			t.Fatalf("size = %dx%d, want 21x15", l.Cols, l.Rows)
		}

		walls := 0
		for z := 0; z < l.Rows; z++ {
			for x := 0; x < l.Cols; x++ {
				w := l.Grid[z][x]
				if w {
					walls++
				}
				border := x == 0 || z == 0 || x == l.Cols-1 || z == l.Rows-1
				if border && !w {
					t.Fatalf("loops %v: border tile %d,%d open", loops, x, z)
				}
				if x%2 == 0 && z%2 == 0 && !w {
					t.Fatalf("loops %v: lattice tile %d,%d open", loops, x, z)
				}
			}
		}
		if walls != len(l.Walls) {
			t.Errorf("loops %v: %d footprints for %d wall tiles", loops, len(l.Walls), walls)
		}

		start, _ := l.TileAt(l.Player)
		goal, _ := l.TileAt(l.Triggers[0])
		if l.route(start, goal) == nil {
			t.Errorf("loops %v: goal unreachable", loops)
		}

		if len(l.Obstacles) == 0 || len(l.Obstacles) > 3 {
			t.Errorf("loops %v: obstacles = %d", loops, len(l.Obstacles))
		}
		for _, p := range l.Obstacles {
			a, _ := l.TileAt(p.From)
			b, _ := l.TileAt(p.To)
			if l.IsWall(a) || l.IsWall(b) || a == b || (a.X != b.X && a.Z != b.Z) {
				t.Errorf("loops %v: bad patrol %v -> %v", loops, a, b)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := GenerateConfig{Cols: 15, Rows: 15, Loops: 0.3, Obstacles: 2, Seed: 42}
	a, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Generate(cfg)
	for z := range a.Grid {
		for x := range a.Grid[z] {
			if a.Grid[z][x] != b.Grid[z][x] {
				t.Fatalf("grids differ at %d,%d", x, z)
			}
		}
	}
}

func TestGenerateLoopsReduceDeadEnds(t *testing.T) {
	perfect, _ := Generate(GenerateConfig{Cols: 31, Rows: 31, Seed: 3})
	braided, _ := Generate(GenerateConfig{Cols: 31, Rows: 31, Loops: 1, Seed: 3})
	if deadEnds(braided) > deadEnds(perfect) {
		t.Errorf("dead ends %d > %d", deadEnds(braided), deadEnds(perfect))
	}
}

func TestGenerateRejects(t *testing.T) {
	if _, err := Generate(GenerateConfig{Loops: 1.5}); !errors.Is(err, ErrMalformedLevel) {
		t.Errorf("loops 1.5: err = %v", err)
	}
	if _, err := Generate(GenerateConfig{Obstacles: -1}); !errors.Is(err, ErrMalformedLevel) {
		t.Errorf("obstacles -1: err = %v", err)
	}
	l, err := Generate(GenerateConfig{Cols: 2, Rows: 2, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if l.Cols != 5 || l.Rows != 5 {
		t.Errorf("size = %dx%d, want minimum 5x5", l.Cols, l.Rows)
	}
}
