package system

import (
	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/parameter"
)

// LifetimeSystem counts down lifetimes and marks expired entities for destruction
// The purge itself happens at the end of the tick
type LifetimeSystem struct {
	world *engine.World
}

func NewLifetimeSystem(world *engine.World) engine.System {
	return &LifetimeSystem{world: world}
}

func (s *LifetimeSystem) Init() {}

// Name returns system's name
func (s *LifetimeSystem) Name() string {
	return "lifetime"
}

// Priority returns the system's priority (highest value = runs last)
func (s *LifetimeSystem) Priority() int {
	return parameter.PriorityLifetime
}

func (s *LifetimeSystem) Update() {
	dt := s.world.Resources.Time.DeltaTime
	c := &s.world.Components

	s.world.ForEach(component.MaskLifetime, func(e core.Entity) {
		if s.world.Pending(e) {
			return
		}
		lt := c.Lifetime.Ptr(e)
		lt.Remaining -= dt
		if lt.Remaining <= 0 {
			// Handle came from this tick's iteration, always alive
			_ = s.world.Destroy(e)
		}
	})
}
