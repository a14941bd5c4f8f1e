package engine

import (
	"fmt"

	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
)

const absent = -1

// Store is a dense column of components of type T
// Sparse set keyed by entity slot: sparse[slot] indexes the parallel dense arrays
// Dense entries keep the full handle so stale generations never alias a reused slot
type Store[T any] struct {
	mask  component.Mask
	valid func(core.Entity) bool

	sparse   []int32
	entities []core.Entity
	data     []T
}

// NewStore creates a standalone store; valid may be nil to accept any handle
func NewStore[T any](mask component.Mask, valid func(core.Entity) bool) *Store[T] {
	return &Store[T]{
		mask:     mask,
		valid:    valid,
		entities: make([]core.Entity, 0, 64),
		data:     make([]T, 0, 64),
	}
}

func (s *Store[T]) index(e core.Entity) int {
	slot := int(e.Slot())
	if slot >= len(s.sparse) {
		return absent
	}
	i := int(s.sparse[slot])
	if i == absent || s.entities[i] != e {
		return absent
	}
	return i
}

// Set inserts or updates the component for an entity
func (s *Store[T]) Set(e core.Entity, val T) error {
	if s.valid != nil && !s.valid(e) {
		return fmt.Errorf("set component on %s: %w", e, core.ErrInvalidHandle)
	}
	if i := s.index(e); i != absent {
		s.data[i] = val
		return nil
	}

	slot := int(e.Slot())
	for len(s.sparse) <= slot {
		s.sparse = append(s.sparse, absent)
	}
	s.sparse[slot] = int32(len(s.entities))
	s.entities = append(s.entities, e)
	s.data = append(s.data, val)
	return nil
}

// Get retrieves a copy of the component for an entity
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	if i := s.index(e); i != absent {
		return s.data[i], true
	}
	var zero T
	return zero, false
}

// Ptr returns a pointer into the column for in-place mutation
// The pointer is invalidated by the next insertion or compaction
func (s *Store[T]) Ptr(e core.Entity) *T {
	if i := s.index(e); i != absent {
		return &s.data[i]
	}
	return nil
}

// Has checks if entity has this component
func (s *Store[T]) Has(e core.Entity) bool {
	return s.index(e) != absent
}

// Remove swap-removes the component of an entity
// The column reorders immediately; removing while ranging over All() is the caller's risk
func (s *Store[T]) Remove(e core.Entity) {
	i := s.index(e)
	if i == absent {
		return
	}
	last := len(s.entities) - 1
	if i != last {
		moved := s.entities[last]
		s.entities[i] = moved
		s.data[i] = s.data[last]
		s.sparse[moved.Slot()] = int32(i)
	}
	var zero T
	s.data[last] = zero
	s.entities = s.entities[:last]
	s.data = s.data[:last]
	s.sparse[e.Slot()] = absent
}

// All returns a copy of the entities holding this component in dense order
func (s *Store[T]) All() []core.Entity {
	out := make([]core.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Entities returns the dense entity column without copying
func (s *Store[T]) Entities() []core.Entity {
	return s.entities
}

// Count returns number of entities with this component
func (s *Store[T]) Count() int {
	return len(s.entities)
}

// Mask returns the component bit of this store
func (s *Store[T]) Mask() component.Mask {
	return s.mask
}

// Clear removes all components from this store
func (s *Store[T]) Clear() {
	s.sparse = s.sparse[:0]
	s.entities = s.entities[:0]
	clear(s.data)
	s.data = s.data[:0]
}
