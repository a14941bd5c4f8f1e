package parameter

import "time"

// Loop & engine timing
const (
	// TickInterval is the fixed simulation step (60 Hz)
	TickInterval = time.Second / 60

	// MaxFrameTime caps the wall-clock time credited to one rendered frame
	// Time beyond the cap is discarded so a stalled frame cannot trigger catch-up spirals
	MaxFrameTime = 250 * time.Millisecond

	// FrameUpdateInterval is the render cadence of the terminal demo (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// InputHoldDuration keeps a key's axis active after a press; terminals report no key release
	InputHoldDuration = 120 * time.Millisecond
)

// Store & queue limits
const (
	// InitialEntityCapacity pre-sizes the dense columns
	InitialEntityCapacity = 256

	// EventQueueSize bounds pending advisory events between two dispatches
	// Lifecycle events are not counted against it
	EventQueueSize = 2048
)
