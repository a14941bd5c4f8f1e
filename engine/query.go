package engine

import (
	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
)

// QueryBuilder provides a fluent interface for querying entities by component mask
// It starts from the smallest required column and filters through the others
type QueryBuilder struct {
	world    *World
	with     component.Mask
	without  component.Mask
	executed bool
	results  []core.Entity
}

// Query creates a new QueryBuilder
//
// Example:
//
//	actors := world.Query().
//	    With(component.MaskTransform | component.MaskVelocity).
//	    Without(component.MaskLifetime).
//	    Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{world: w}
}

// With requires every component in mask
// Panics if called after Execute()
func (qb *QueryBuilder) With(mask component.Mask) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.with |= mask
	return qb
}

// Without excludes entities holding any component in mask
// Panics if called after Execute()
func (qb *QueryBuilder) Without(mask component.Mask) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.without |= mask
	return qb
}

// Execute returns matching entities in the dense order of the driving column
// With no required components every alive entity is returned in slot order
// Calling Execute() multiple times returns the cached result
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	w := qb.world
	var required, excluded []AnyStore
	var driver AnyStore
	for _, s := range w.stores {
		switch {
		case qb.with.Has(s.Mask()):
			required = append(required, s)
			if driver == nil || s.Count() < driver.Count() {
				driver = s
			}
		case qb.without.Any(s.Mask()):
			excluded = append(excluded, s)
		}
	}

	var candidates []core.Entity
	if driver == nil {
		candidates = make([]core.Entity, 0, w.EntityCount())
		for slot, live := range w.live {
			if live {
				candidates = append(candidates, core.NewEntity(uint32(slot), w.generations[slot]))
			}
		}
	} else {
		src := driver.Entities()
		candidates = make([]core.Entity, len(src))
		copy(candidates, src)
	}

	filtered := candidates[:0]
next:
	for _, e := range candidates {
		for _, s := range required {
			if s != driver && !s.Has(e) {
				continue next
			}
		}
		for _, s := range excluded {
			if s.Has(e) {
				continue next
			}
		}
		filtered = append(filtered, e)
	}

	qb.results = filtered
	return qb.results
}
