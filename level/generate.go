package level

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateConfig shapes a procedurally carved arena
type GenerateConfig struct {
	// Cols and Rows are rounded down to odd, minimum 5
	Cols, Rows int

	// Loops in [0,1]: 0 keeps a perfect maze, 1 removes every dead end that can be opened
	// without creating a 2x2 open square or a free-standing wall tile
	Loops float64

	// Obstacles is the number of patrolling obstacles placed along the route
	Obstacles int

	TileSize   float64
	WallHeight float64

	// Seed 0 draws from the clock
	Seed int64
}

var (
	steps = [4]Tile{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	jumps = [4]Tile{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
)

// Generate carves a corridor arena with a depth-first backtracker
// The player spawns in the top-left room, a trigger marks the bottom-right room,
// and obstacles patrol straight stretches of the shortest route between them
func Generate(cfg GenerateConfig) (*Level, error) {
	if cfg.Loops < 0 || cfg.Loops > 1 {
		return nil, fmt.Errorf("%w: loops %v outside [0,1]", ErrMalformedLevel, cfg.Loops)
	}
	if cfg.Obstacles < 0 {
		return nil, fmt.Errorf("%w: negative obstacle count %d", ErrMalformedLevel, cfg.Obstacles)
	}

	cols, rows := oddAtLeast5(cfg.Cols), oddAtLeast5(cfg.Rows)
	l := newLevel(cols, rows, cfg.TileSize, cfg.WallHeight)
	for z := range l.Grid {
		for x := range l.Grid[z] {
			l.Grid[z][x] = true
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start := Tile{X: 1, Z: 1}
	goal := Tile{X: cols - 2, Z: rows - 2}

	l.carve(start, rng)
	if cfg.Loops > 0 {
		l.openDeadEnds(cfg.Loops, rng)
	}

	route := l.route(start, goal)
	l.Player = l.TileCenter(start)
	l.Triggers = append(l.Triggers, l.TileCenter(goal))
	l.Obstacles = l.placePatrols(route, cfg.Obstacles)

	l.buildWalls()
	return l, nil
}

// carve opens rooms on odd coordinates and the wall tiles between them
func (l *Level) carve(start Tile, rng *rand.Rand) {
	stack := []Tile{start}
	l.Grid[start.Z][start.X] = false

	var open [4]Tile
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		n := 0
		for _, j := range jumps {
			next := Tile{X: cur.X + j.X, Z: cur.Z + j.Z}
			if next.X > 0 && next.X < l.Cols-1 && next.Z > 0 && next.Z < l.Rows-1 && l.Grid[next.Z][next.X] {
				open[n] = j
				n++
			}
		}
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		j := open[rng.Intn(n)]
		l.Grid[cur.Z+j.Z/2][cur.X+j.X/2] = false
		next := Tile{X: cur.X + j.X, Z: cur.Z + j.Z}
		l.Grid[next.Z][next.X] = false
		stack = append(stack, next)
	}
}

// openDeadEnds knocks through one wall of a dead-end room with the given probability
func (l *Level) openDeadEnds(p float64, rng *rand.Rand) {
	var candidates [4]Tile
	for z := 1; z < l.Rows-1; z += 2 {
		for x := 1; x < l.Cols-1; x += 2 {
			if l.Grid[z][x] || l.exits(Tile{X: x, Z: z}) != 1 || rng.Float64() >= p {
				continue
			}
			n := 0
			for _, j := range jumps {
				room := Tile{X: x + j.X, Z: z + j.Z}
				wall := Tile{X: x + j.X/2, Z: z + j.Z/2}
				if !l.inside(room) || l.Grid[room.Z][room.X] || !l.Grid[wall.Z][wall.X] {
					continue
				}
				if l.safeToOpen(wall) {
					candidates[n] = wall
					n++
				}
			}
			if n > 0 {
				c := candidates[rng.Intn(n)]
				l.Grid[c.Z][c.X] = false
			}
		}
	}
}

func (l *Level) exits(t Tile) int {
	n := 0
	for _, s := range steps {
		nt := Tile{X: t.X + s.X, Z: t.Z + s.Z}
		if l.inside(nt) && !l.Grid[nt.Z][nt.X] {
			n++
		}
	}
	return n
}

func (l *Level) inside(t Tile) bool {
	return t.X >= 0 && t.Z >= 0 && t.X < l.Cols && t.Z < l.Rows
}

// safeToOpen rejects openings that would leave a 2x2 open square or an isolated wall tile
func (l *Level) safeToOpen(w Tile) bool {
	open := func(x, z int) bool {
		t := Tile{X: x, Z: z}
		return l.inside(t) && !l.Grid[z][x]
	}
	x, z := w.X, w.Z
	if open(x-1, z-1) && open(x, z-1) && open(x-1, z) ||
		open(x, z-1) && open(x+1, z-1) && open(x+1, z) ||
		open(x-1, z) && open(x-1, z+1) && open(x, z+1) ||
		open(x+1, z) && open(x, z+1) && open(x+1, z+1) {
		return false
	}

	for _, s := range steps {
		n := Tile{X: x + s.X, Z: z + s.Z}
		if !l.inside(n) || !l.Grid[n.Z][n.X] {
			continue
		}
		linked := false
		for _, s2 := range steps {
			nn := Tile{X: n.X + s2.X, Z: n.Z + s2.Z}
			if nn == w || !l.inside(nn) {
				continue
			}
			if l.Grid[nn.Z][nn.X] {
				linked = true
				break
			}
		}
		if !linked {
			return false
		}
	}
	return true
}

// route returns the shortest open path from a to b inclusive, or nil
func (l *Level) route(a, b Tile) []Tile {
	if l.IsWall(a) || l.IsWall(b) || !l.inside(a) || !l.inside(b) {
		return nil
	}
	prev := map[Tile]Tile{a: a}
	queue := []Tile{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == b {
			var path []Tile
			for ; cur != a; cur = prev[cur] {
				path = append(path, cur)
			}
			path = append(path, a)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}
		for _, s := range steps {
			next := Tile{X: cur.X + s.X, Z: cur.Z + s.Z}
			if !l.inside(next) || l.Grid[next.Z][next.X] {
				continue
			}
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = cur
			queue = append(queue, next)
		}
	}
	return nil
}

// placePatrols splits the route into straight runs and assigns obstacles to the
// longest ones, skipping runs that touch the spawn or goal tile
func (l *Level) placePatrols(route []Tile, count int) []Patrol {
	if count == 0 || len(route) < 3 {
		return nil
	}
	type run struct{ from, to int }
	var runs []run
	begin := 1
	for i := 2; i < len(route)-1; i++ {
		if dir(route[i-1], route[i]) != dir(route[begin], route[begin+1]) {
			runs = append(runs, run{begin, i - 1})
			begin = i
		}
	}
	if begin < len(route)-1 {
		runs = append(runs, run{begin, len(route) - 2})
	}
	kept := runs[:0]
	for _, r := range runs {
		if r.to > r.from {
			kept = append(kept, r)
		}
	}
	runs = kept

	// stable selection of the longest runs, ties keep route order
	for i := 1; i < len(runs); i++ {
		for j := i; j > 0 && runs[j].to-runs[j].from > runs[j-1].to-runs[j-1].from; j-- {
			runs[j], runs[j-1] = runs[j-1], runs[j]
		}
	}
	if count > len(runs) {
		count = len(runs)
	}
	patrols := make([]Patrol, 0, count)
	for _, r := range runs[:count] {
		patrols = append(patrols, Patrol{From: l.TileCenter(route[r.from]), To: l.TileCenter(route[r.to])})
	}
	return patrols
}

func dir(a, b Tile) Tile {
	return Tile{X: b.X - a.X, Z: b.Z - a.Z}
}

func oddAtLeast5(n int) int {
	if n < 5 {
		return 5
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
