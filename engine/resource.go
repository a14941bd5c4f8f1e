package engine

import (
	"time"

	"github.com/lixenwraith/arena/event"
	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/status"
	"github.com/lixenwraith/arena/vmath"
)

// Resource holds singleton simulation resources, initialized by NewWorld, accessed via World.Resources
type Resource struct {
	Time   *TimeResource
	Config *parameter.Config
	Event  *EventQueueResource
	Input  *InputResource

	// Telemetry
	Status *status.Registry
}

// TimeResource wraps tick timing for systems
// Updated by World.Update at the start of every fixed tick
type TimeResource struct {
	// DeltaTime is the fixed tick duration
	DeltaTime time.Duration

	// Elapsed is the total simulated time
	Elapsed time.Duration

	// Tick is the index of the tick being simulated, starting at 1
	Tick uint64
}

// Seconds returns DeltaTime as float seconds for integration
func (tr *TimeResource) Seconds() float64 {
	return tr.DeltaTime.Seconds()
}

// advance modifies TimeResource fields in-place
func (tr *TimeResource) advance(dt time.Duration) {
	tr.DeltaTime = dt
	tr.Elapsed += dt
	tr.Tick++
}

// EventQueueResource wraps the event queue for systems access
type EventQueueResource struct {
	Queue *event.EventQueue
}

// InputResource holds the movement axis sampled for the current tick
// Written by the input collaborator, read by InputSystem
type InputResource struct {
	Axis vmath.Vec2
}

// InputSource yields a desired movement axis once per tick
// Components are expected in [-1,1]; consumers clamp to unit length
type InputSource interface {
	Axis() vmath.Vec2
}

// Sample pulls the next axis from src, clamped to unit length
func (ir *InputResource) Sample(src InputSource) {
	if src == nil {
		ir.Axis = vmath.Vec2{}
		return
	}
	ir.Axis = vmath.ClampAxis(src.Axis())
}
