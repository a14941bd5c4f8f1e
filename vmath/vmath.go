// Package vmath holds the float64 geometry used by the collision pipeline
// Vectors are mgl64 arrays; helpers here add the zero-safe variants the
// resolver needs so no code path can produce NaN from a zero-length vector
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the world-space vector type (x right, y up, z forward)
type Vec3 = mgl64.Vec3

// Vec2 is the planar input axis type (x strafe, y forward)
type Vec2 = mgl64.Vec2

// Epsilon is the length below which a vector is treated as zero
const Epsilon = 1e-9

var (
	// Up is the capsule axis direction
	Up = Vec3{0, 1, 0}

	// DefaultAxis substitutes for an undefined direction (zero-length normal)
	DefaultAxis = Vec3{1, 0, 0}
)

// NormalizeOr returns v scaled to unit length, or fallback when v is zero-length
// ok reports whether v had a usable direction
func NormalizeOr(v, fallback Vec3) (n Vec3, ok bool) {
	l := v.Len()
	if l <= Epsilon || math.IsNaN(l) {
		return fallback, false
	}
	return v.Mul(1 / l), true
}

// ClampLength caps the magnitude of v at max (normalize-then-scale)
// Returns true if v was clamped
func ClampLength(v Vec3, max float64) (Vec3, bool) {
	if max <= 0 {
		return Vec3{}, v.LenSqr() > 0
	}
	lenSq := v.LenSqr()
	if lenSq <= max*max {
		return v, false
	}
	return v.Mul(max / math.Sqrt(lenSq)), true
}

// ClampAxis bounds a planar input axis to [-1,1] per component and unit length overall
// Diagonal input from two keys must not move faster than a single key
func ClampAxis(a Vec2) Vec2 {
	a = Vec2{mgl64.Clamp(a[0], -1, 1), mgl64.Clamp(a[1], -1, 1)}
	if math.IsNaN(a[0]) || math.IsNaN(a[1]) {
		return Vec2{}
	}
	if l := a.Len(); l > 1 {
		a = a.Mul(1 / l)
	}
	return a
}

// PlanarDirection lifts a 2D axis into the XZ plane (axis.y maps to world +Z)
func PlanarDirection(a Vec2) Vec3 {
	return Vec3{a[0], 0, a[1]}
}

// Planar drops the vertical component of v
func Planar(v Vec3) Vec3 {
	return Vec3{v[0], 0, v[2]}
}

// IsZero reports whether every component of v is within Epsilon of zero
func IsZero(v Vec3) bool {
	return math.Abs(v[0]) <= Epsilon && math.Abs(v[1]) <= Epsilon && math.Abs(v[2]) <= Epsilon
}

// YawOf returns the heading of a planar velocity in radians (0 = +Z, increasing toward +X)
// ok is false for a vector with no planar component
func YawOf(v Vec3) (yaw float64, ok bool) {
	if math.Abs(v[0]) <= Epsilon && math.Abs(v[2]) <= Epsilon {
		return 0, false
	}
	return math.Atan2(v[0], v[2]), true
}
