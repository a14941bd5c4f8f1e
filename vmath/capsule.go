package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// closestIterations bounds the alternating projection in ClosestSegmentAABB
// Segment and box are both convex so the sequence converges; four passes
// land within float noise for actor-sized shapes
const closestIterations = 4

// Capsule is a line segment with a uniform radius
// Start is the lower endpoint, End the upper one
type Capsule struct {
	Start  Vec3
	End    Vec3
	Radius float64
}

// CapsuleAt builds an upright capsule centered on center
// The axis length is height - 2*radius; when that is not positive the capsule
// collapses to a sphere at center and ok is false (degenerate axis)
func CapsuleAt(center Vec3, radius, height float64) (c Capsule, ok bool) {
	half := (height - 2*radius) / 2
	if half <= 0 || math.IsNaN(half) {
		return Capsule{Start: center, End: center, Radius: radius}, false
	}
	offset := Up.Mul(half)
	return Capsule{
		Start:  center.Sub(offset),
		End:    center.Add(offset),
		Radius: radius,
	}, true
}

// Center returns the segment midpoint
func (c Capsule) Center() Vec3 {
	return c.Start.Add(c.End).Mul(0.5)
}

// Translate returns the capsule moved by d
func (c Capsule) Translate(d Vec3) Capsule {
	return Capsule{Start: c.Start.Add(d), End: c.End.Add(d), Radius: c.Radius}
}

// Bounds returns the tight AABB around the swept spheres
func (c Capsule) Bounds() AABB {
	lo := Vec3{math.Min(c.Start[0], c.End[0]), math.Min(c.Start[1], c.End[1]), math.Min(c.Start[2], c.End[2])}
	hi := Vec3{math.Max(c.Start[0], c.End[0]), math.Max(c.Start[1], c.End[1]), math.Max(c.Start[2], c.End[2])}
	return AABB{Min: lo, Max: hi}.Expand(c.Radius)
}

// ClosestOnSegment projects p onto the capsule axis, clamped to the endpoints
func (c Capsule) ClosestOnSegment(p Vec3) Vec3 {
	return closestOnSegment(c.Start, c.End, p)
}

// EndpointsOverlap is the endpoint-sphere test: the Start sphere OR the End sphere touches the box
// Undercounts contact along the middle of a long capsule
func (c Capsule) EndpointsOverlap(box AABB) bool {
	return box.SphereOverlaps(c.Start, c.Radius) || box.SphereOverlaps(c.End, c.Radius)
}

// SegmentOverlaps is the exact capsule-vs-box test using the segment point closest to the box
func (c Capsule) SegmentOverlaps(box AABB) bool {
	onSeg, onBox := ClosestSegmentAABB(c.Start, c.End, box)
	return onSeg.Sub(onBox).LenSqr() <= c.Radius*c.Radius
}

// ClosestSegmentAABB returns the pair of closest points between segment [a,b] and box
func ClosestSegmentAABB(a, b Vec3, box AABB) (onSeg, onBox Vec3) {
	onSeg = a.Add(b).Mul(0.5)
	for range closestIterations {
		onBox = box.ClosestPoint(onSeg)
		onSeg = closestOnSegment(a, b, onBox)
	}
	onBox = box.ClosestPoint(onSeg)
	return onSeg, onBox
}

// Overlaps tests two capsules for contact via segment-segment distance
func (c Capsule) Overlaps(o Capsule) bool {
	r := c.Radius + o.Radius
	return SegmentDistanceSq(c.Start, c.End, o.Start, o.End) <= r*r
}

// SegmentDistanceSq returns the squared distance between segments [p1,q1] and [p2,q2]
// Degenerate (point) segments are handled
func SegmentDistanceSq(p1, q1, p2, q2 Vec3) float64 {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.LenSqr()
	e := d2.LenSqr()
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a <= Epsilon && e <= Epsilon:
		return r.LenSqr()
	case a <= Epsilon:
		t = mgl64.Clamp(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e <= Epsilon {
			s = mgl64.Clamp(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom > Epsilon {
				s = mgl64.Clamp((b*f-c*e)/denom, 0, 1)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = mgl64.Clamp(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = mgl64.Clamp((b-c)/a, 0, 1)
			}
		}
	}

	c1 := p1.Add(d1.Mul(s))
	c2 := p2.Add(d2.Mul(t))
	return c1.Sub(c2).LenSqr()
}

func closestOnSegment(a, b, p Vec3) Vec3 {
	ab := b.Sub(a)
	lenSq := ab.LenSqr()
	if lenSq <= Epsilon {
		return a
	}
	t := mgl64.Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return a.Add(ab.Mul(t))
}
