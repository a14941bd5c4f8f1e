// Package status holds named simulation metrics for the debug overlay and headless reports
package status

import (
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
)

// Well-known metric keys written by the engine and systems
const (
	KeyTicks            = "engine.ticks"
	KeyTicksDropped     = "engine.frame_time_discarded_ms"
	KeyEntities         = "engine.entities"
	KeyPurged           = "engine.purged"
	KeyStaticBoxes      = "physics.static_boxes"
	KeyContacts         = "physics.contacts"
	KeyCornerNudges     = "physics.corner_nudges"
	KeyDegenerate       = "physics.degenerate"
	KeyMaxDepth         = "physics.max_depth"
	KeyMissingComponent = "integrity.missing_component"
	KeyPenetration      = "integrity.penetration"
	KeyActorContacts    = "actor.contacts"
)

// table maps keys to metric cells; keys stay sorted for reporting
// Lookups after registration return the same pointer, so hot paths cache it once
type table[T any] struct {
	cells map[string]*T
	keys  []string
}

func (t *table[T]) lookup(key string) (*T, bool) {
	c, ok := t.cells[key]
	return c, ok
}

func (t *table[T]) insert(key string) *T {
	if t.cells == nil {
		t.cells = make(map[string]*T)
	}
	c := new(T)
	t.cells[key] = c
	i, _ := slices.BinarySearch(t.keys, key)
	t.keys = slices.Insert(t.keys, i, key)
	return c
}

// Registry is the central metrics facade
// Systems cache pointers during init; update loops write directly to atomics
type Registry struct {
	mu     sync.RWMutex
	ints   table[atomic.Int64]
	floats table[Gauge]
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Counter returns the integer metric for key, registering it on first use
func (r *Registry) Counter(key string) *atomic.Int64 {
	return register(r, &r.ints, key)
}

// Gauge returns the float metric for key, registering it on first use
func (r *Registry) Gauge(key string) *Gauge {
	return register(r, &r.floats, key)
}

func register[T any](r *Registry, t *table[T], key string) *T {
	r.mu.RLock()
	c, ok := t.lookup(key)
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := t.lookup(key); ok {
		return c
	}
	return t.insert(key)
}

// Sample is one formatted metric line
type Sample struct {
	Key   string
	Value string
}

// Samples returns every metric in sorted key order, integers first
func (r *Registry) Samples() []Sample {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Sample, 0, len(r.ints.keys)+len(r.floats.keys))
	for _, k := range r.ints.keys {
		out = append(out, Sample{Key: k, Value: strconv.FormatInt(r.ints.cells[k].Load(), 10)})
	}
	for _, k := range r.floats.keys {
		out = append(out, Sample{Key: k, Value: strconv.FormatFloat(r.floats.cells[k].Load(), 'f', 4, 64)})
	}
	return out
}

// Len returns the number of registered metrics
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ints.keys) + len(r.floats.keys)
}
