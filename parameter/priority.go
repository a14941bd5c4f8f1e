package parameter

// System execution priorities (lower runs first)
// Intent producers run before the movement system; contact and lifetime observe committed state
const (
	PriorityInput    = 10
	PriorityPatrol   = 20
	PriorityMovement = 100
	PriorityContact  = 200
	PriorityLifetime = 900 // Marks expired entities, purge follows at end of tick
)
