package engine

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/event"
	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/status"
)

// System is a unit of per-tick simulation logic
type System interface {
	// Init resets session state
	Init()
	// Name identifies the system in logs and diagnostics
	Name() string
	// Priority orders execution, lower values run first
	Priority() int
	// Update advances the system by one fixed tick
	Update()
}

// World owns all entities, their component columns and the registered systems
// Single writer: only the simulation phase mutates it, readers run between ticks
type World struct {
	Components ComponentStore
	Resources  Resource

	stores []AnyStore

	// Slot table, indexed by Entity.Slot()
	generations []uint32
	live        []bool
	doomed      []bool
	free        []uint32

	// Handles destroyed this tick, purged by CommitDestructions
	pending []core.Entity

	systems []System

	statEntities *atomic.Int64
	statPurged   *atomic.Int64
	statTicks    *atomic.Int64
}

// NewWorld creates an empty world with every component column registered
// A nil cfg uses parameter.Default
func NewWorld(cfg *parameter.Config) *World {
	if cfg == nil {
		def := parameter.Default()
		cfg = &def
	}
	reg := status.NewRegistry()

	w := &World{
		Resources: Resource{
			Time:   &TimeResource{},
			Config: cfg,
			Event:  &EventQueueResource{Queue: event.NewEventQueue(parameter.EventQueueSize)},
			Input:  &InputResource{},
			Status: reg,
		},
		generations:  make([]uint32, 0, parameter.InitialEntityCapacity),
		live:         make([]bool, 0, parameter.InitialEntityCapacity),
		doomed:       make([]bool, 0, parameter.InitialEntityCapacity),
		statEntities: reg.Counter(status.KeyEntities),
		statPurged:   reg.Counter(status.KeyPurged),
		statTicks:    reg.Counter(status.KeyTicks),
	}

	initComponentStores(w)
	return w
}

// Create reserves a new entity handle without components
func (w *World) Create() core.Entity {
	e := w.allocate()
	w.PushEvent(event.EventEntityCreated, &event.EntityPayload{Entity: e})
	return e
}

// allocate reuses a free slot or grows the slot table
func (w *World) allocate() core.Entity {
	var slot uint32
	if n := len(w.free); n > 0 {
		slot = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		slot = uint32(len(w.generations))
		w.generations = append(w.generations, 1)
		w.live = append(w.live, false)
		w.doomed = append(w.doomed, false)
	}
	w.live[slot] = true
	w.doomed[slot] = false
	w.statEntities.Add(1)
	return core.NewEntity(slot, w.generations[slot])
}

// Alive reports whether a handle refers to a created, not yet purged entity
// Entities pending destruction are still alive until CommitDestructions
func (w *World) Alive(e core.Entity) bool {
	slot := e.Slot()
	if int(slot) >= len(w.generations) {
		return false
	}
	return w.live[slot] && w.generations[slot] == e.Generation()
}

// Pending reports whether an alive entity is marked for destruction
func (w *World) Pending(e core.Entity) bool {
	return w.Alive(e) && w.doomed[e.Slot()]
}

// Destroy marks an entity for removal at the end of the tick
// Repeated calls before the purge are no-ops
func (w *World) Destroy(e core.Entity) error {
	if !w.Alive(e) {
		return fmt.Errorf("destroy %s: %w", e, core.ErrInvalidHandle)
	}
	slot := e.Slot()
	if w.doomed[slot] {
		return nil
	}
	w.doomed[slot] = true
	w.pending = append(w.pending, e)
	return nil
}

// CommitDestructions purges every marked entity and returns how many were purged
// This is the only point where entity slots are purged; Store.Remove compacts a single column at any time
func (w *World) CommitDestructions() int {
	if len(w.pending) == 0 {
		return 0
	}

	for _, e := range w.pending {
		mesh := component.MeshNone
		if r, ok := w.Components.Renderable.Get(e); ok {
			mesh = r.Mesh
		}
		for _, s := range w.stores {
			s.Remove(e)
		}

		slot := e.Slot()
		w.live[slot] = false
		w.doomed[slot] = false
		w.generations[slot]++
		if w.generations[slot] == 0 {
			w.generations[slot] = 1
		}
		w.free = append(w.free, slot)

		w.PushEvent(event.EventEntityDestroyed, &event.EntityPayload{Entity: e, Mesh: mesh})
	}

	n := len(w.pending)
	clear(w.pending)
	w.pending = w.pending[:0]
	w.statEntities.Add(int64(-n))
	w.statPurged.Add(int64(n))
	return n
}

// PendingCount returns the number of entities awaiting purge
func (w *World) PendingCount() int {
	return len(w.pending)
}

// EntityCount returns the number of alive entities, pending ones included
func (w *World) EntityCount() int {
	return len(w.generations) - len(w.free)
}

// MaskOf returns the component bits currently held by an entity
func (w *World) MaskOf(e core.Entity) (component.Mask, error) {
	if !w.Alive(e) {
		return component.MaskNone, fmt.Errorf("mask of %s: %w", e, core.ErrInvalidHandle)
	}
	var m component.Mask
	for _, s := range w.stores {
		if s.Has(e) {
			m |= s.Mask()
		}
	}
	return m, nil
}

// ForEach calls fn for every entity holding all components in mask, in dense order
// Iteration runs over a copy of the driving column, so fn may add, remove or destroy
func (w *World) ForEach(mask component.Mask, fn func(e core.Entity)) {
	for _, e := range w.Query().With(mask).Execute() {
		fn(e)
	}
}

// Clear removes all entities and components, including pending ones
// Generations are bumped so handles issued before Clear stay invalid
func (w *World) Clear() {
	for _, s := range w.stores {
		s.Clear()
	}
	w.free = w.free[:0]
	for slot := range w.generations {
		if w.live[slot] {
			w.generations[slot]++
			if w.generations[slot] == 0 {
				w.generations[slot] = 1
			}
		}
		w.live[slot] = false
		w.doomed[slot] = false
		w.free = append(w.free, uint32(slot))
	}
	clear(w.pending)
	w.pending = w.pending[:0]
	w.statEntities.Store(0)
}

// AddSystem adds a system to the world and keeps systems sorted by priority
// Systems of equal priority keep their registration order
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Systems returns a copy of all registered systems in execution order
func (w *World) Systems() []System {
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// Update runs one fixed tick: every system in priority order, then the destruction purge
func (w *World) Update(dt time.Duration) {
	w.Resources.Time.advance(dt)
	for _, system := range w.systems {
		system.Update()
	}
	w.CommitDestructions()
	w.statTicks.Add(1)
}

// PushEvent emits a game event stamped with the current tick
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.Resources.Event.Queue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Tick:    w.Resources.Time.Tick,
	})
}
