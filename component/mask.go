package component

// Mask is a bit set of component kinds, one bit per column in the store
type Mask uint32

const (
	MaskTransform Mask = 1 << iota
	MaskVelocity
	MaskCollider
	MaskIntent
	MaskRenderable
	MaskPatrol
	MaskLifetime
)

// MaskNone matches every entity when used as a query requirement
const MaskNone Mask = 0

// Has reports whether every bit in other is set
func (m Mask) Has(other Mask) bool {
	return m&other == other
}

// Any reports whether at least one bit in other is set
func (m Mask) Any(other Mask) bool {
	return m&other != 0
}
