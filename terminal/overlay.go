package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/arena/engine"
)

var (
	overlayStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	helpStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const helpLine = "move: wasd/hjkl/arrows  overlay: tab  quit: q/esc"

// drawOverlay lists status metrics top-left and the key help on the last row
func (r *Renderer) drawOverlay(world *engine.World, w, h int) {
	row := 0
	putLine(r.screen, 0, row, fmt.Sprintf("tick %d  entities %d  pending %d",
		world.Resources.Time.Tick, world.EntityCount(), world.PendingCount()), overlayStyle, w)
	row++
	for _, s := range world.Resources.Status.Samples() {
		if row >= h-1 {
			break
		}
		putLine(r.screen, 0, row, fmt.Sprintf("%-32s %s", s.Key, s.Value), overlayStyle, w)
		row++
	}
	if h > 1 {
		putLine(r.screen, 0, h-1, helpLine, helpStyle, w)
	}
}

// putLine writes s from column x, clipped at w
func putLine(screen tcell.Screen, x, y int, s string, style tcell.Style, w int) {
	for _, ch := range s {
		if x >= w {
			return
		}
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
