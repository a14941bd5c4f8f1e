package engine

import "time"

// Clock is the time source of the frame driver
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall time; readings carry the monotonic component, so frame
// deltas are immune to wall-clock adjustments
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
