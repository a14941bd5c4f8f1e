package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/status"
)

// FixedStep accumulates variable frame time into whole fixed ticks
// Each frame contributes at most maxFrame; the excess is discarded, never queued
type FixedStep struct {
	tick     time.Duration
	maxFrame time.Duration

	accumulator time.Duration
	ticks       uint64
	discarded   time.Duration
}

// NewFixedStep validates the tick configuration
func NewFixedStep(tick, maxFrame time.Duration) (*FixedStep, error) {
	if tick <= 0 {
		return nil, fmt.Errorf("%w: tick must be positive, got %v", core.ErrConfiguration, tick)
	}
	if maxFrame < tick {
		return nil, fmt.Errorf("%w: max frame time %v below tick %v", core.ErrConfiguration, maxFrame, tick)
	}
	return &FixedStep{tick: tick, maxFrame: maxFrame}, nil
}

// Advance adds one frame of elapsed time and returns how many ticks are due
func (f *FixedStep) Advance(frame time.Duration) int {
	if frame < 0 {
		frame = 0
	}
	if frame > f.maxFrame {
		f.discarded += frame - f.maxFrame
		frame = f.maxFrame
	}
	f.accumulator += frame

	n := int(f.accumulator / f.tick)
	f.accumulator -= time.Duration(n) * f.tick
	f.ticks += uint64(n)
	return n
}

// Tick returns the fixed tick duration
func (f *FixedStep) Tick() time.Duration {
	return f.tick
}

// Accumulated returns the time carried over to the next frame, always below one tick
func (f *FixedStep) Accumulated() time.Duration {
	return f.accumulator
}

// Discarded returns the total frame time dropped by the ceiling
func (f *FixedStep) Discarded() time.Duration {
	return f.discarded
}

// Ticks returns the total number of ticks handed out
func (f *FixedStep) Ticks() uint64 {
	return f.ticks
}

// Loop drives the world from a clock: events are dispatched before every tick
// Rendering samples committed state between Frame calls
type Loop struct {
	world  *World
	router *EventRouter
	step   *FixedStep
	clock  Clock
	input  InputSource

	last    time.Time
	started bool

	statDiscarded *atomic.Int64
}

// NewLoop wires a frame driver; input may be nil for headless runs
func NewLoop(world *World, router *EventRouter, step *FixedStep, clock Clock, input InputSource) *Loop {
	return &Loop{
		world:         world,
		router:        router,
		step:          step,
		clock:         clock,
		input:         input,
		statDiscarded: world.Resources.Status.Counter(status.KeyTicksDropped),
	}
}

// Frame runs every tick due since the previous call and returns the count
// The first call only records the start time
func (l *Loop) Frame() int {
	now := l.clock.Now()
	if !l.started {
		l.started = true
		l.last = now
		return 0
	}
	frame := now.Sub(l.last)
	l.last = now

	n := l.step.Advance(frame)
	for i := 0; i < n; i++ {
		l.Step()
	}
	l.statDiscarded.Store(l.step.Discarded().Milliseconds())
	return n
}

// Step runs exactly one fixed tick regardless of elapsed time
func (l *Loop) Step() {
	l.world.Resources.Input.Sample(l.input)
	if l.router != nil {
		l.router.DispatchAll()
	}
	l.world.Update(l.step.Tick())
}

// Run calls Frame every interval and then render, until ctx is done
func (l *Loop) Run(ctx context.Context, interval time.Duration, render func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.Frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Frame()
			if render != nil {
				render()
			}
		}
	}
}
