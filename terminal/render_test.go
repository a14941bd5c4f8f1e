package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/physics"
	"github.com/lixenwraith/arena/system"
	"github.com/lixenwraith/arena/vmath"
)

func TestCameraProject(t *testing.T) {
	tests := []struct {
		name   string
		p      vmath.Vec3
		x, y   int
		inside bool
	}{
		{"focus", vmath.Vec3{5, 0, 5}, 10, 5, true},
		{"east", vmath.Vec3{6, 0, 5}, 12, 5, true},
		{"south", vmath.Vec3{5, 3, 7}, 10, 7, true},
		{"off left", vmath.Vec3{-1, 0, 5}, -2, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := DefaultCamera.Project(tt.p, vmath.Vec3{5, 0, 5}, 20, 10)
			if x != tt.x || y != tt.y || ok != tt.inside {
				t.Errorf("Project = %d,%d,%v want %d,%d,%v", x, y, ok, tt.x, tt.y, tt.inside)
			}
		})
	}
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	mainc, _, _, _ := screen.GetContent(x, y)
	return mainc
}

func TestDrawActorsAndWalls(t *testing.T) {
	screen := newScreen(t, 40, 20)
	world := engine.NewWorld(nil)

	player := system.SpawnPlayer(world, vmath.Vec3{1.5, 0, 1.5})
	system.SpawnWall(world, physics.Footprint{Center: vmath.Vec3{3.5, 1, 1.5}, HalfExtents: vmath.Vec3{0.5, 1, 0.5}})
	system.SpawnObstacle(world, vmath.Vec3{500, 0, 500}, vmath.Vec3{501, 0, 500})

	tr, _ := world.Components.Transform.Get(player)
	r := NewRenderer(screen, DefaultMeshes, DefaultCamera)
	r.Draw(world, tr.Position)

	if got := runeAt(screen, 20, 10); got != '@' {
		t.Errorf("player cell = %q", got)
	}
	for _, x := range []int{23, 24} {
		if got := runeAt(screen, x, 10); got != '█' {
			t.Errorf("wall cell %d = %q", x, got)
		}
	}
	if got := runeAt(screen, 22, 10); got == '█' {
		t.Error("wall drawn wider than its tile")
	}
}

func TestDrawOverlay(t *testing.T) {
	screen := newScreen(t, 60, 12)
	world := engine.NewWorld(nil)
	world.Resources.Status.Counter("engine.ticks").Store(3)

	r := NewRenderer(screen, DefaultMeshes, DefaultCamera)
	r.ToggleOverlay()
	r.Draw(world, vmath.Vec3{})

	if got := runeAt(screen, 0, 0); got != 't' {
		t.Errorf("overlay header starts with %q", got)
	}
	if got := runeAt(screen, 0, 1); got != 'e' {
		t.Errorf("first metric row starts with %q", got)
	}
	if got := runeAt(screen, 0, 11); got != 'm' {
		t.Errorf("help row starts with %q", got)
	}

	r.ToggleOverlay()
	r.Draw(world, vmath.Vec3{})
	if got := runeAt(screen, 0, 0); got == 't' {
		t.Error("overlay still drawn after toggle")
	}
}
