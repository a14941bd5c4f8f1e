package physics

import (
	"slices"

	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/vmath"
)

// ResolveParams are the resolver tunables
type ResolveParams struct {
	// PushOutBias is added along each corrected contact normal to prevent numerical sticking
	PushOutBias float64
	// CornerStuckThreshold is the squared speed below which a multi-box contact counts as stuck
	CornerStuckThreshold float64
	// CornerNudge is the speed added along the average outward direction when stuck
	CornerNudge float64
	// SortByDepth resolves the deepest box first instead of query order
	SortByDepth bool
}

// DefaultParams returns the resolver defaults
func DefaultParams() ResolveParams {
	return ResolveParams{
		PushOutBias:          parameter.DefaultPushOutBias,
		CornerStuckThreshold: parameter.DefaultCornerStuckThreshold,
		CornerNudge:          parameter.DefaultCornerNudge,
	}
}

// ParamsFromConfig extracts resolver tunables from a validated config
func ParamsFromConfig(cfg *parameter.Config) ResolveParams {
	return ResolveParams{
		PushOutBias:          cfg.PushOutBias,
		CornerStuckThreshold: cfg.CornerStuckThreshold,
		CornerNudge:          cfg.CornerNudge,
		SortByDepth:          cfg.SortByDepth,
	}
}

// Report summarizes one resolution for diagnostics
type Report struct {
	// Contacts counts boxes the start endpoint sphere actually penetrates
	Contacts int
	// Corrections counts boxes whose into-surface velocity component was removed
	Corrections int
	// Degenerate counts contacts with a zero-length penetration vector, resolved along +X
	Degenerate int
	// CornerNudge is set when the stuck fallback fired
	CornerNudge bool
	// MaxDepth is the deepest penetration seen, radius minus separation
	MaxDepth float64
}

// Changed reports whether resolution altered the velocity
func (r Report) Changed() bool {
	return r.Corrections > 0 || r.CornerNudge
}

// contact is one box with its precomputed penetration from the start endpoint
type contact struct {
	box        vmath.AABB
	separation float64
	offset     vmath.Vec3
}

// Resolve removes the into-surface component of velocity for every overlapping box
// Single pass in box order; corrections accumulate into the same vector
// The tangential component survives, so the actor slides along surfaces
func Resolve(c vmath.Capsule, velocity vmath.Vec3, boxes []vmath.AABB, p ResolveParams) (vmath.Vec3, Report) {
	var rep Report
	if len(boxes) == 0 {
		return velocity, rep
	}

	var buf [8]contact
	contacts := buf[:0]
	for _, box := range boxes {
		offset := c.Start.Sub(box.ClosestPoint(c.Start))
		contacts = append(contacts, contact{box: box, separation: offset.Len(), offset: offset})
	}
	if p.SortByDepth {
		slices.SortStableFunc(contacts, func(a, b contact) int {
			switch {
			case a.separation < b.separation:
				return -1
			case a.separation > b.separation:
				return 1
			}
			return 0
		})
	}

	v := velocity
	for _, ct := range contacts {
		if ct.separation >= c.Radius {
			continue
		}
		rep.Contacts++
		if depth := c.Radius - ct.separation; depth > rep.MaxDepth {
			rep.MaxDepth = depth
		}

		n, ok := vmath.NormalizeOr(ct.offset, vmath.DefaultAxis)
		if !ok {
			rep.Degenerate++
		}

		if d := v.Dot(n); d < 0 {
			v = v.Sub(n.Mul(d)).Add(n.Mul(p.PushOutBias))
			rep.Corrections++
		}
	}

	if len(boxes) >= 2 && v.LenSqr() < p.CornerStuckThreshold {
		v = v.Add(cornerDirection(c, boxes).Mul(p.CornerNudge))
		rep.CornerNudge = true
	}

	return v, rep
}

// cornerDirection averages the outward directions from each box to the capsule start
// Measured in the XZ plane from the closest point on the box, or from the box center
// when the start lies inside it; falls back to +X when the average cancels out
func cornerDirection(c vmath.Capsule, boxes []vmath.AABB) vmath.Vec3 {
	var sum vmath.Vec3
	for _, box := range boxes {
		out := vmath.Planar(c.Start.Sub(box.ClosestPoint(c.Start)))
		if vmath.IsZero(out) {
			out = vmath.Planar(c.Start.Sub(box.Center()))
		}
		if n, ok := vmath.NormalizeOr(out, vmath.Vec3{}); ok {
			sum = sum.Add(n)
		}
	}
	dir, ok := vmath.NormalizeOr(sum, vmath.DefaultAxis)
	if !ok {
		return vmath.DefaultAxis
	}
	return dir
}

// Penetration returns the deepest endpoint-sphere penetration of c into any box
func Penetration(c vmath.Capsule, boxes []vmath.AABB) float64 {
	var deepest float64
	for _, box := range boxes {
		deepest = max(deepest, box.SphereDepth(c.Start, c.Radius), box.SphereDepth(c.End, c.Radius))
	}
	return deepest
}

// StartPenetration returns how far the start endpoint sphere of c reaches into the deepest box
// This is the overlap Resolve works against
func StartPenetration(c vmath.Capsule, boxes []vmath.AABB) float64 {
	var deepest float64
	for _, box := range boxes {
		deepest = max(deepest, box.SphereDepth(c.Start, c.Radius))
	}
	return deepest
}
