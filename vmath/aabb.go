package vmath

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box in world space
type AABB struct {
	Min Vec3
	Max Vec3
}

// AABBFromCenter creates an AABB from a center point and half extents
func AABBFromCenter(center, half Vec3) AABB {
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// Center returns the box midpoint
func (a AABB) Center() Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Size returns the full extent on each axis
func (a AABB) Size() Vec3 {
	return a.Max.Sub(a.Min)
}

// Valid reports whether every extent is strictly positive
func (a AABB) Valid() bool {
	return a.Max[0] > a.Min[0] && a.Max[1] > a.Min[1] && a.Max[2] > a.Min[2]
}

// ContainsPoint checks if a point is inside the AABB (boundary inclusive)
func (a AABB) ContainsPoint(p Vec3) bool {
	return p[0] >= a.Min[0] && p[0] <= a.Max[0] &&
		p[1] >= a.Min[1] && p[1] <= a.Max[1] &&
		p[2] >= a.Min[2] && p[2] <= a.Max[2]
}

// Overlaps checks if two AABBs overlap on all three axes
func (a AABB) Overlaps(b AABB) bool {
	return a.Max[0] >= b.Min[0] && a.Min[0] <= b.Max[0] &&
		a.Max[1] >= b.Min[1] && a.Min[1] <= b.Max[1] &&
		a.Max[2] >= b.Min[2] && a.Min[2] <= b.Max[2]
}

// ClosestPoint clamps p onto the box per axis
func (a AABB) ClosestPoint(p Vec3) Vec3 {
	return Vec3{
		mgl64.Clamp(p[0], a.Min[0], a.Max[0]),
		mgl64.Clamp(p[1], a.Min[1], a.Max[1]),
		mgl64.Clamp(p[2], a.Min[2], a.Max[2]),
	}
}

// SphereOverlaps is the closest-point sphere test: distance from c to the box <= r
func (a AABB) SphereOverlaps(c Vec3, r float64) bool {
	return c.Sub(a.ClosestPoint(c)).LenSqr() <= r*r
}

// SphereDepth returns how far a sphere reaches into the box (0 when separated)
// A center inside the box reports the full radius
func (a AABB) SphereDepth(c Vec3, r float64) float64 {
	d := c.Sub(a.ClosestPoint(c)).Len()
	if d >= r {
		return 0
	}
	return r - d
}

// Expand grows the box by m on every side
func (a AABB) Expand(m float64) AABB {
	pad := Vec3{m, m, m}
	return AABB{Min: a.Min.Sub(pad), Max: a.Max.Add(pad)}
}
