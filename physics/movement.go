package physics

import (
	"github.com/lixenwraith/arena/vmath"
)

// restSpeedSq is the squared speed below which friction snaps velocity to zero
const restSpeedSq = 1e-12

// Accelerate adds dir*accel*dt to velocity
func Accelerate(v, dir vmath.Vec3, accel, dt float64) vmath.Vec3 {
	return v.Add(dir.Mul(accel * dt))
}

// ApplyFriction damps velocity by a per-tick multiplier
// Residual speeds below float noise settle to rest
func ApplyFriction(v vmath.Vec3, friction float64) vmath.Vec3 {
	v = v.Mul(friction)
	if v.LenSqr() < restSpeedSq {
		return vmath.Vec3{}
	}
	return v
}

// CapSpeed limits the velocity magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(v vmath.Vec3, maxSpeed float64) (vmath.Vec3, bool) {
	return vmath.ClampLength(v, maxSpeed)
}

// Integrate returns the position reached after moving at v for dt
func Integrate(p, v vmath.Vec3, dt float64) vmath.Vec3 {
	return p.Add(v.Mul(dt))
}
