package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/vmath"
)

func TestKeyActions(t *testing.T) {
	k := NewKeyInput(engine.NewManualClock(time.Unix(0, 0)), 100*time.Millisecond)
	tests := []struct {
		key  tcell.Key
		r    rune
		want Action
	}{
		{tcell.KeyEscape, 0, ActionQuit},
		{tcell.KeyCtrlC, 0, ActionQuit},
		{tcell.KeyRune, 'q', ActionQuit},
		{tcell.KeyTab, 0, ActionToggleOverlay},
		{tcell.KeyLeft, 0, ActionMove},
		{tcell.KeyRune, 'w', ActionMove},
		{tcell.KeyRune, 'j', ActionMove},
		{tcell.KeyRune, 'x', ActionNone},
		{tcell.KeyF1, 0, ActionNone},
	}
	for _, tt := range tests {
		if got := k.Handle(tt.key, tt.r); got != tt.want {
			t.Errorf("Handle(%v, %q) = %v, want %v", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestAxisHoldsThenDecays(t *testing.T) {
	clock := engine.NewManualClock(time.Unix(0, 0))
	k := NewKeyInput(clock, 100*time.Millisecond)

	if a := k.Axis(); a != (vmath.Vec2{}) {
		t.Fatalf("idle axis = %v", a)
	}

	k.Handle(tcell.KeyRune, 'd')
	if a := k.Axis(); a != (vmath.Vec2{1, 0}) {
		t.Errorf("right axis = %v", a)
	}

	clock.Advance(60 * time.Millisecond)
	k.Handle(tcell.KeyRune, 'd') // auto-repeat
	clock.Advance(60 * time.Millisecond)
	if a := k.Axis(); a != (vmath.Vec2{1, 0}) {
		t.Errorf("repeated key lost hold: %v", a)
	}

	clock.Advance(50 * time.Millisecond)
	if a := k.Axis(); a != (vmath.Vec2{}) {
		t.Errorf("expired axis = %v", a)
	}
}

func TestAxisDiagonalAndOpposites(t *testing.T) {
	clock := engine.NewManualClock(time.Unix(0, 0))
	k := NewKeyInput(clock, time.Second)

	k.Handle(tcell.KeyRight, 0)
	k.Handle(tcell.KeyUp, 0)
	a := k.Axis()
	if l := a.Len(); l > 1+1e-9 {
		t.Errorf("diagonal length = %v", l)
	}
	if a[0] <= 0 || a[1] >= 0 {
		t.Errorf("diagonal = %v, want +x and -z", a)
	}

	k.Handle(tcell.KeyLeft, 0)
	if a := k.Axis(); a[0] >= 0 {
		t.Errorf("opposite key did not take over: %v", a)
	}

	k.Release()
	if a := k.Axis(); a != (vmath.Vec2{}) {
		t.Errorf("released axis = %v", a)
	}
}
