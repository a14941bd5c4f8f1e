package engine

import (
	"sync/atomic"
	"time"
)

// ManualClock is a Clock that moves only when told to; used to drive loops deterministically
type ManualClock struct {
	base   time.Time
	offset atomic.Int64 // Nanoseconds past base
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{base: start}
}

func (c *ManualClock) Now() time.Time {
	return c.base.Add(time.Duration(c.offset.Load()))
}

// Advance moves the clock forward by d; safe for concurrent use
func (c *ManualClock) Advance(d time.Duration) {
	c.offset.Add(int64(d))
}

// Set jumps the clock to t, which may lie before the current time
func (c *ManualClock) Set(t time.Time) {
	c.offset.Store(int64(t.Sub(c.base)))
}
