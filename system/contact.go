package system

import (
	"sync/atomic"

	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/event"
	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/status"
	"github.com/lixenwraith/arena/vmath"
)

type contactPair struct {
	player, other core.Entity
}

type contactEntry struct {
	entity  core.Entity
	capsule vmath.Capsule
	flags   component.ColliderFlags
}

// ContactSystem detects player capsules touching obstacle or trigger capsules
// Contacts are reported on onset only and never alter motion
type ContactSystem struct {
	world *engine.World

	// Per-tick caches
	players []contactEntry
	others  []contactEntry

	touching     map[contactPair]struct{}
	touchingNext map[contactPair]struct{}

	statContacts *atomic.Int64
}

func NewContactSystem(world *engine.World) engine.System {
	s := &ContactSystem{
		world:        world,
		players:      make([]contactEntry, 0, 1),
		others:       make([]contactEntry, 0, 16),
		statContacts: world.Resources.Status.Counter(status.KeyActorContacts),
	}
	s.Init()
	return s
}

func (s *ContactSystem) Init() {
	s.touching = make(map[contactPair]struct{})
	s.touchingNext = make(map[contactPair]struct{})
}

// Name returns system's name
func (s *ContactSystem) Name() string {
	return "contact"
}

func (s *ContactSystem) Priority() int {
	return parameter.PriorityContact
}

func (s *ContactSystem) Update() {
	c := &s.world.Components
	s.players = s.players[:0]
	s.others = s.others[:0]

	s.world.ForEach(component.MaskTransform|component.MaskCollider, func(e core.Entity) {
		col, _ := c.Collider.Get(e)
		if col.Flags.Has(component.ColliderStatic) {
			return
		}
		tr, _ := c.Transform.Get(e)
		capsule, _ := col.CapsuleAt(tr.Position)
		entry := contactEntry{entity: e, capsule: capsule, flags: col.Flags}

		switch {
		case col.Flags.Has(component.ColliderPlayer):
			s.players = append(s.players, entry)
		case col.Flags&(component.ColliderObstacle|component.ColliderTrigger) != 0:
			s.others = append(s.others, entry)
		}
	})

	for _, p := range s.players {
		for _, o := range s.others {
			if !p.capsule.Overlaps(o.capsule) {
				continue
			}
			key := contactPair{player: p.entity, other: o.entity}
			s.touchingNext[key] = struct{}{}
			if _, was := s.touching[key]; was {
				continue
			}
			s.statContacts.Add(1)
			s.world.PushEvent(event.EventActorContact, &event.ContactPayload{
				Player:  p.entity,
				Other:   o.entity,
				Trigger: o.flags.Has(component.ColliderTrigger),
			})
		}
	}

	s.touching, s.touchingNext = s.touchingNext, s.touching
	clear(s.touchingNext)
}
