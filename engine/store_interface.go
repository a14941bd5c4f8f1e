package engine

import (
	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
)

// AnyStore provides type-erased operations for lifecycle management
// This interface allows World to manage all stores uniformly
// for operations like purging an entity without knowing the concrete type
type AnyStore interface {
	// Remove deletes the component of an entity, no-op when absent
	Remove(e core.Entity)

	// Has checks if an entity has this component
	Has(e core.Entity) bool

	// Count returns the number of entities with this component
	Count() int

	// Clear removes all components from this store
	Clear()

	// Mask returns the component bit this store answers for
	Mask() component.Mask

	// Entities returns the dense entity column, owned by the store
	// Callers must not retain or mutate it across a compaction
	Entities() []core.Entity
}
