package engine

import (
	"github.com/lixenwraith/arena/component"
)

// ComponentStore provides cached pointers to the typed component columns
// Populated once by NewWorld; pointers remain valid for the world lifetime
type ComponentStore struct {
	Transform  *Store[component.TransformComponent]
	Velocity   *Store[component.VelocityComponent]
	Collider   *Store[component.ColliderComponent]
	Intent     *Store[component.IntentComponent]
	Renderable *Store[component.RenderableComponent]
	Patrol     *Store[component.PatrolComponent]
	Lifetime   *Store[component.LifetimeComponent]
}

// initComponentStores creates every column and registers it for lifecycle operations
func initComponentStores(w *World) {
	w.Components = ComponentStore{
		Transform:  NewStore[component.TransformComponent](component.MaskTransform, w.Alive),
		Velocity:   NewStore[component.VelocityComponent](component.MaskVelocity, w.Alive),
		Collider:   NewStore[component.ColliderComponent](component.MaskCollider, w.Alive),
		Intent:     NewStore[component.IntentComponent](component.MaskIntent, w.Alive),
		Renderable: NewStore[component.RenderableComponent](component.MaskRenderable, w.Alive),
		Patrol:     NewStore[component.PatrolComponent](component.MaskPatrol, w.Alive),
		Lifetime:   NewStore[component.LifetimeComponent](component.MaskLifetime, w.Alive),
	}

	c := &w.Components
	w.stores = []AnyStore{
		c.Transform,
		c.Velocity,
		c.Collider,
		c.Intent,
		c.Renderable,
		c.Patrol,
		c.Lifetime,
	}
}
