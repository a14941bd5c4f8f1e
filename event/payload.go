package event

import (
	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/vmath"
)

// GameEvent is a queued notification stamped with the tick that produced it
type GameEvent struct {
	Type    EventType
	Payload any
	Tick    uint64
}

// EntityPayload identifies the entity of a lifecycle notification
type EntityPayload struct {
	Entity core.Entity
	Mesh   component.MeshKind
}

// BlockedPayload describes a resolved contact against static geometry
type BlockedPayload struct {
	Entity   core.Entity
	Contacts int
	Depth    float64
	Position vmath.Vec3
}

// ContactPayload describes a player-versus-actor capsule contact
type ContactPayload struct {
	Player  core.Entity
	Other   core.Entity
	Trigger bool
}
