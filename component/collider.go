package component

import "github.com/lixenwraith/arena/vmath"

// ColliderFlags classify a collider for query and integration filtering
type ColliderFlags uint8

const (
	// ColliderStatic never moves and is skipped by the movement system
	ColliderStatic ColliderFlags = 1 << iota
	// ColliderTrigger reports contact but never blocks
	ColliderTrigger
	// ColliderPlayer marks the input-driven actor
	ColliderPlayer
	// ColliderObstacle marks autonomous actors the player can bump into
	ColliderObstacle
)

// Has reports whether every flag in f is set
func (c ColliderFlags) Has(f ColliderFlags) bool {
	return c&f == f
}

// ColliderComponent describes an upright capsule centered on the entity position
// Axis length is Height - 2*Radius, capped by hemispheres of Radius
type ColliderComponent struct {
	Radius float64
	Height float64
	Flags  ColliderFlags
}

// CapsuleAt places the collider's capsule at pos
// ok is false when Height <= 2*Radius and the capsule degenerates to a sphere
func (c ColliderComponent) CapsuleAt(pos vmath.Vec3) (vmath.Capsule, bool) {
	return vmath.CapsuleAt(pos, c.Radius, c.Height)
}
