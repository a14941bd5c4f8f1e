// Package terminal draws committed world state with tcell and turns key presses into a movement axis
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/vmath"
)

// Glyph is the terminal visual of one mesh kind
type Glyph struct {
	Rune  rune
	Style tcell.Style
}

// MeshTable maps every mesh kind to its glyph; indexed directly, never searched
type MeshTable [component.MeshCount]Glyph

// DefaultMeshes is the built-in palette
var DefaultMeshes = MeshTable{
	component.MeshNone:     {Rune: '?', Style: tcell.StyleDefault.Foreground(tcell.ColorGray)},
	component.MeshPlayer:   {Rune: '@', Style: tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)},
	component.MeshObstacle: {Rune: 'O', Style: tcell.StyleDefault.Foreground(tcell.ColorRed)},
	component.MeshTrigger:  {Rune: '*', Style: tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	component.MeshWall:     {Rune: '█', Style: tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)},
	component.MeshMarker:   {Rune: '+', Style: tcell.StyleDefault.Foreground(tcell.ColorAqua)},
}

// Camera projects the XZ plane onto cells, centered on a focus point
// Terminal cells are about twice as tall as wide, so X gets twice the density
type Camera struct {
	ColsPerUnit float64
	RowsPerUnit float64
}

// DefaultCamera keeps one world unit square on screen
var DefaultCamera = Camera{ColsPerUnit: 2, RowsPerUnit: 1}

// Project returns the cell of p on a w×h screen centered on focus
// Z grows downward so layouts read the same on screen as in their source text
func (c Camera) Project(p, focus vmath.Vec3, w, h int) (x, y int, ok bool) {
	x = w/2 + int(math.Floor((p[0]-focus[0])*c.ColsPerUnit))
	y = h/2 + int(math.Floor((p[2]-focus[2])*c.RowsPerUnit))
	return x, y, x >= 0 && y >= 0 && x < w && y < h
}

// Renderer draws world snapshots; it reads committed state only
type Renderer struct {
	screen tcell.Screen
	meshes MeshTable
	camera Camera

	views   []engine.EntityView
	overlay bool
}

func NewRenderer(screen tcell.Screen, meshes MeshTable, camera Camera) *Renderer {
	return &Renderer{screen: screen, meshes: meshes, camera: camera}
}

// ToggleOverlay flips the status overlay
func (r *Renderer) ToggleOverlay() {
	r.overlay = !r.overlay
}

// Draw renders every transform-bearing entity around focus and shows the frame
// Walls and other static geometry are drawn first so actors stay visible on top
func (r *Renderer) Draw(world *engine.World, focus vmath.Vec3) {
	r.screen.Clear()
	w, h := r.screen.Size()

	r.views = world.AppendSnapshot(r.views[:0])
	for pass := 0; pass < 2; pass++ {
		for _, v := range r.views {
			static := v.Flags.Has(component.ColliderStatic)
			if (pass == 0) != static {
				continue
			}
			r.drawView(v, focus, w, h)
		}
	}

	if r.overlay {
		r.drawOverlay(world, w, h)
	}
	r.screen.Show()
}

func (r *Renderer) drawView(v engine.EntityView, focus vmath.Vec3, w, h int) {
	mesh := v.Mesh
	if mesh >= component.MeshCount {
		mesh = component.MeshNone
	}
	g := r.meshes[mesh]
	style := g.Style
	if v.Pending {
		style = style.Dim(true)
	}

	// Static tiles span the columns of one world unit, starting left of center
	span := 1
	pos := v.Position
	if v.Flags.Has(component.ColliderStatic) {
		span = max(1, int(r.camera.ColsPerUnit))
		pos[0] -= float64(span-1) / (2 * r.camera.ColsPerUnit)
	}
	x, y, _ := r.camera.Project(pos, focus, w, h)
	for i := 0; i < span; i++ {
		if cx := x + i; cx >= 0 && y >= 0 && cx < w && y < h {
			r.screen.SetContent(cx, y, g.Rune, nil, style)
		}
	}
}
