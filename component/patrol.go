package component

import (
	"time"

	"github.com/lixenwraith/arena/vmath"
)

// PatrolComponent steers an obstacle back and forth between two waypoints
type PatrolComponent struct {
	A, B      vmath.Vec3
	TowardB   bool
	Tolerance float64 // Planar distance at which a waypoint counts as reached
	Scale     float64 // Intent magnitude in (0,1]
}

// LifetimeComponent schedules deferred destruction once Remaining runs out
type LifetimeComponent struct {
	Remaining time.Duration
}
