package engine

import (
	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/event"
)

// EntityBuilder collects components and commits them to a new entity in one step
// No handle exists until Build, so no system can observe a partially assembled entity
//
// Example usage:
//
//	e := engine.With(
//	    engine.With(world.NewEntity(), world.Components.Transform, component.TransformComponent{}),
//	    world.Components.Velocity, component.VelocityComponent{},
//	).Build()
type EntityBuilder struct {
	world *World
	ops   []func(core.Entity)
	mesh  component.MeshKind
	built bool
}

// NewEntity creates an empty EntityBuilder bound to the world
func (w *World) NewEntity() *EntityBuilder {
	return &EntityBuilder{
		world: w,
		ops:   make([]func(core.Entity), 0, 4),
	}
}

// With queues a component of type T for the entity being built
// Panics if called after Build()
func With[T any](eb *EntityBuilder, store *Store[T], c T) *EntityBuilder {
	if eb.built {
		panic("entity already built - cannot add components after Build()")
	}
	if r, ok := any(c).(component.RenderableComponent); ok {
		eb.mesh = r.Mesh
	}
	eb.ops = append(eb.ops, func(e core.Entity) {
		// Freshly allocated handles are always alive
		_ = store.Set(e, c)
	})
	return eb
}

// Build allocates the entity, assigns every queued component and emits the creation event
// Panics if called twice
func (eb *EntityBuilder) Build() core.Entity {
	if eb.built {
		panic("entity already built")
	}
	eb.built = true

	e := eb.world.allocate()
	for _, op := range eb.ops {
		op(e)
	}
	eb.ops = nil
	eb.world.PushEvent(event.EventEntityCreated, &event.EntityPayload{Entity: e, Mesh: eb.mesh})
	return e
}

// Spawn builds the entity described by eb
func (w *World) Spawn(eb *EntityBuilder) core.Entity {
	return eb.Build()
}
