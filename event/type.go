package event

// EventType represents the type of simulation event
type EventType int

const (
	// EventEntityCreated signals a committed entity creation
	// Trigger: World.Create | Consumer: renderer | Payload: *EntityPayload
	EventEntityCreated EventType = iota

	// EventEntityDestroyed signals a purge at the end of a tick
	// Trigger: World.CommitDestructions | Consumer: renderer | Payload: *EntityPayload
	EventEntityDestroyed

	// EventActorBlocked signals the resolver removed motion into static geometry
	// Trigger: MovementSystem | Consumer: audio, debug | Payload: *BlockedPayload
	EventActorBlocked

	// EventActorContact signals the player capsule touching an obstacle or trigger
	// Trigger: ContactSystem | Consumer: audio, debug | Payload: *ContactPayload
	EventActorContact

	// EventCornerNudge signals the corner-stuck fallback fired
	// Trigger: MovementSystem | Consumer: debug | Payload: *BlockedPayload
	EventCornerNudge
)

var typeNames = [...]string{
	EventEntityCreated:   "entity_created",
	EventEntityDestroyed: "entity_destroyed",
	EventActorBlocked:    "actor_blocked",
	EventActorContact:    "actor_contact",
	EventCornerNudge:     "corner_nudge",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Lifecycle reports whether t announces entity creation or destruction
// Lifecycle events are never dropped by the queue
func (t EventType) Lifecycle() bool {
	return t == EventEntityCreated || t == EventEntityDestroyed
}
