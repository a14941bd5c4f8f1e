package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/vmath"
)

// Action is the non-movement outcome of a key press
type Action uint8

const (
	ActionNone Action = iota
	ActionMove
	ActionQuit
	ActionToggleOverlay
)

type direction uint8

const (
	dirLeft direction = iota
	dirRight
	dirUp
	dirDown
	dirCount
)

// KeyInput is an engine.InputSource fed by terminal key events
// Terminals report presses and auto-repeat but no release, so each press holds
// its direction for a fixed duration; auto-repeat keeps a held key alive
type KeyInput struct {
	mu    sync.Mutex
	clock engine.Clock
	hold  time.Duration
	until [dirCount]time.Time
}

func NewKeyInput(clock engine.Clock, hold time.Duration) *KeyInput {
	return &KeyInput{clock: clock, hold: hold}
}

// HandleKey maps a tcell key event; safe to call from the event polling goroutine
func (k *KeyInput) HandleKey(ev *tcell.EventKey) Action {
	return k.Handle(ev.Key(), ev.Rune())
}

// Handle maps a key code and rune to an action, recording movement presses
func (k *KeyInput) Handle(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyTab:
		return ActionToggleOverlay
	case tcell.KeyLeft:
		return k.press(dirLeft)
	case tcell.KeyRight:
		return k.press(dirRight)
	case tcell.KeyUp:
		return k.press(dirUp)
	case tcell.KeyDown:
		return k.press(dirDown)
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	switch r {
	case 'q', 'Q':
		return ActionQuit
	case 'a', 'h':
		return k.press(dirLeft)
	case 'd', 'l':
		return k.press(dirRight)
	case 'w', 'k':
		return k.press(dirUp)
	case 's', 'j':
		return k.press(dirDown)
	}
	return ActionNone
}

func (k *KeyInput) press(d direction) Action {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.until[d] = k.clock.Now().Add(k.hold)
	// Opposite key cancels instead of summing to zero
	switch d {
	case dirLeft:
		k.until[dirRight] = time.Time{}
	case dirRight:
		k.until[dirLeft] = time.Time{}
	case dirUp:
		k.until[dirDown] = time.Time{}
	case dirDown:
		k.until[dirUp] = time.Time{}
	}
	return ActionMove
}

// Release drops every held direction
func (k *KeyInput) Release() {
	k.mu.Lock()
	k.until = [dirCount]time.Time{}
	k.mu.Unlock()
}

// Axis returns the held movement direction; screen up is world -Z
func (k *KeyInput) Axis() vmath.Vec2 {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.clock.Now()
	held := func(d direction) float64 {
		if now.Before(k.until[d]) {
			return 1
		}
		return 0
	}
	return vmath.ClampAxis(vmath.Vec2{
		held(dirRight) - held(dirLeft),
		held(dirDown) - held(dirUp),
	})
}
