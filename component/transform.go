package component

import "github.com/lixenwraith/arena/vmath"

// TransformComponent is the committed world placement of an entity
// Dynamic actors are written only by the movement system; static decoration only at creation
type TransformComponent struct {
	Position vmath.Vec3
	Yaw      float64 // Radians about +Y, 0 faces +Z
}

// VelocityComponent is the per-tick linear velocity in world units per second
type VelocityComponent struct {
	Linear vmath.Vec3
}

// IntentComponent carries the desired planar movement axis for the current tick
// Axis is already camera/world relative and clamped to unit length
type IntentComponent struct {
	Axis vmath.Vec2
}
