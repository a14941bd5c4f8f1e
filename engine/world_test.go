package engine

import (
	"errors"
	"testing"

	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/event"
	"github.com/lixenwraith/arena/vmath"
)

func collect(w *World, mask component.Mask) []core.Entity {
	var out []core.Entity
	w.ForEach(mask, func(e core.Entity) { out = append(out, e) })
	return out
}

func contains(list []core.Entity, e core.Entity) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

// Destroyed entities stay visible until the purge, then every operation rejects them
func TestDeferredDestruction(t *testing.T) {
	w := NewWorld(nil)
	e := w.Create()
	if err := w.Components.Transform.Set(e, component.TransformComponent{}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := w.Destroy(e); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if !contains(collect(w, component.MaskTransform), e) {
		t.Fatal("pending entity missing from ForEach before commit")
	}
	if !w.Pending(e) {
		t.Error("entity should be pending")
	}
	// Still logically valid before the purge
	if err := w.Components.Transform.Set(e, component.TransformComponent{Yaw: 1}); err != nil {
		t.Errorf("Set on pending entity: %v", err)
	}
	if err := w.Destroy(e); err != nil {
		t.Errorf("second Destroy should be idempotent: %v", err)
	}

	if n := w.CommitDestructions(); n != 1 {
		t.Fatalf("CommitDestructions = %d, want 1", n)
	}
	if contains(collect(w, component.MaskTransform), e) {
		t.Fatal("purged entity still yielded by ForEach")
	}
	if err := w.Destroy(e); !errors.Is(err, core.ErrInvalidHandle) {
		t.Errorf("Destroy after purge: %v, want ErrInvalidHandle", err)
	}
	if err := w.Components.Transform.Set(e, component.TransformComponent{}); !errors.Is(err, core.ErrInvalidHandle) {
		t.Errorf("Set after purge: %v, want ErrInvalidHandle", err)
	}
	if _, err := w.MaskOf(e); !errors.Is(err, core.ErrInvalidHandle) {
		t.Errorf("MaskOf after purge: %v, want ErrInvalidHandle", err)
	}
	if w.Components.Transform.Has(e) {
		t.Error("purged entity still has a transform")
	}
}

func TestNeverCreatedHandle(t *testing.T) {
	w := NewWorld(nil)
	for _, e := range []core.Entity{core.NoEntity, core.NewEntity(7, 1)} {
		if err := w.Destroy(e); !errors.Is(err, core.ErrInvalidHandle) {
			t.Errorf("Destroy(%s) = %v, want ErrInvalidHandle", e, err)
		}
	}
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	w := NewWorld(nil)
	old := w.Create()
	_ = w.Components.Velocity.Set(old, component.VelocityComponent{Linear: vmath.Vec3{1, 0, 0}})
	_ = w.Destroy(old)
	w.CommitDestructions()

	fresh := w.Create()
	if fresh.Slot() != old.Slot() {
		t.Fatalf("expected slot reuse, got %s after %s", fresh, old)
	}
	if fresh.Generation() == old.Generation() {
		t.Fatal("reused slot kept its generation")
	}
	if w.Alive(old) {
		t.Error("stale handle reported alive")
	}
	if _, ok := w.Components.Velocity.Get(old); ok {
		t.Error("stale handle read a component")
	}
	if w.Components.Velocity.Has(fresh) {
		t.Error("fresh entity inherited a component")
	}
}

func TestStoreSwapRemoveKeepsIndex(t *testing.T) {
	w := NewWorld(nil)
	var es []core.Entity
	for i := 0; i < 4; i++ {
		e := w.Create()
		_ = w.Components.Transform.Set(e, component.TransformComponent{Yaw: float64(i)})
		es = append(es, e)
	}

	_ = w.Destroy(es[1])
	w.CommitDestructions()

	for i, e := range es {
		if i == 1 {
			continue
		}
		tr, ok := w.Components.Transform.Get(e)
		if !ok || tr.Yaw != float64(i) {
			t.Errorf("entity %d: got %+v, %v", i, tr, ok)
		}
	}
	if w.Components.Transform.Count() != 3 {
		t.Errorf("count = %d, want 3", w.Components.Transform.Count())
	}
}

func TestForEachStableAndMutationSafe(t *testing.T) {
	w := NewWorld(nil)
	for i := 0; i < 5; i++ {
		e := w.Create()
		_ = w.Components.Transform.Set(e, component.TransformComponent{})
		_ = w.Components.Velocity.Set(e, component.VelocityComponent{})
	}

	first := collect(w, component.MaskTransform|component.MaskVelocity)
	second := collect(w, component.MaskTransform|component.MaskVelocity)
	if len(first) != 5 || len(first) != len(second) {
		t.Fatalf("got %d and %d entities", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order changed at %d", i)
		}
	}

	// Removing components while iterating visits every original entity once
	visited := 0
	w.ForEach(component.MaskVelocity, func(e core.Entity) {
		visited++
		w.Components.Velocity.Remove(e)
	})
	if visited != 5 {
		t.Errorf("visited %d, want 5", visited)
	}
}

func TestQueryWithout(t *testing.T) {
	w := NewWorld(nil)

	actor := w.Spawn(With(With(w.NewEntity(),
		w.Components.Transform, component.TransformComponent{}),
		w.Components.Velocity, component.VelocityComponent{}))
	wall := w.Spawn(With(With(w.NewEntity(),
		w.Components.Transform, component.TransformComponent{}),
		w.Components.Collider, component.ColliderComponent{Flags: component.ColliderStatic}))
	bare := w.Create()

	moving := w.Query().With(component.MaskTransform).Without(component.MaskCollider).Execute()
	if len(moving) != 1 || moving[0] != actor {
		t.Errorf("With/Without = %v, want [%s]", moving, actor)
	}

	all := w.Query().Execute()
	if len(all) != 3 || !contains(all, wall) || !contains(all, bare) {
		t.Errorf("empty query = %v, want all three", all)
	}
}

func TestQueryPanicsAfterExecute(t *testing.T) {
	w := NewWorld(nil)
	q := w.Query().With(component.MaskTransform)
	q.Execute()

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	q.With(component.MaskVelocity)
}

func TestLifecycleEvents(t *testing.T) {
	w := NewWorld(nil)
	q := w.Resources.Event.Queue

	e := w.Spawn(With(w.NewEntity(), w.Components.Renderable, component.RenderableComponent{Mesh: component.MeshPlayer}))
	_ = w.Destroy(e)
	if q.Len() != 1 {
		t.Fatalf("Destroy must not emit before commit, queue len %d", q.Len())
	}
	w.CommitDestructions()

	events := q.Consume()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != event.EventEntityCreated || events[1].Type != event.EventEntityDestroyed {
		t.Errorf("event order = %v, %v", events[0].Type, events[1].Type)
	}
	p, ok := events[1].Payload.(*event.EntityPayload)
	if !ok || p.Entity != e || p.Mesh != component.MeshPlayer {
		t.Errorf("destroyed payload = %+v", events[1].Payload)
	}
}

// Lifecycle notifications survive levels larger than the advisory ring
func TestLifecycleEventsNeverDropped(t *testing.T) {
	w := NewWorld(nil)
	q := w.Resources.Event.Queue

	const n = 5000
	for i := 0; i < n; i++ {
		w.Create()
		w.PushEvent(event.EventActorBlocked, nil)
	}

	created, blocked := 0, 0
	for _, ev := range q.Consume() {
		switch ev.Type {
		case event.EventEntityCreated:
			created++
		case event.EventActorBlocked:
			blocked++
		}
	}
	if created != n {
		t.Errorf("created events = %d, want %d", created, n)
	}
	if blocked >= n || q.Dropped() != uint64(n-blocked) {
		t.Errorf("blocked delivered %d, dropped %d", blocked, q.Dropped())
	}
}

func TestBuilderPanicsOnReuse(t *testing.T) {
	w := NewWorld(nil)
	b := w.NewEntity()
	b.Build()

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	With(b, w.Components.Transform, component.TransformComponent{})
}

func TestClearInvalidatesHandles(t *testing.T) {
	w := NewWorld(nil)
	e := w.Create()
	_ = w.Components.Transform.Set(e, component.TransformComponent{})
	w.Clear()

	if w.Alive(e) {
		t.Error("handle alive after Clear")
	}
	if w.EntityCount() != 0 {
		t.Errorf("EntityCount = %d", w.EntityCount())
	}
	if again := w.Create(); again == e {
		t.Error("Clear reissued an old handle")
	}
}

func TestSnapshotDetached(t *testing.T) {
	w := NewWorld(nil)
	e := w.Spawn(With(With(w.NewEntity(),
		w.Components.Transform, component.TransformComponent{Position: vmath.Vec3{1, 2, 3}, Yaw: 0.5}),
		w.Components.Renderable, component.RenderableComponent{Mesh: component.MeshObstacle}))

	snap := w.Snapshot()
	if len(snap) != 1 || snap[0].Entity != e || snap[0].Mesh != component.MeshObstacle {
		t.Fatalf("snapshot = %+v", snap)
	}

	w.Components.Transform.Ptr(e).Position = vmath.Vec3{}
	if snap[0].Position != (vmath.Vec3{1, 2, 3}) {
		t.Error("snapshot aliases store memory")
	}
}

type orderSystem struct {
	name     string
	priority int
	log      *[]string
	destroy  func()
}

func (s *orderSystem) Init()         {}
func (s *orderSystem) Name() string  { return s.name }
func (s *orderSystem) Priority() int { return s.priority }
func (s *orderSystem) Update() {
	*s.log = append(*s.log, s.name)
	if s.destroy != nil {
		s.destroy()
	}
}

func TestUpdateRunsByPriorityThenCommits(t *testing.T) {
	w := NewWorld(nil)
	var log []string
	e := w.Create()

	w.AddSystem(&orderSystem{name: "late", priority: 50, log: &log})
	w.AddSystem(&orderSystem{name: "early", priority: 10, log: &log, destroy: func() { _ = w.Destroy(e) }})
	w.AddSystem(&orderSystem{name: "mid", priority: 20, log: &log, destroy: func() {
		if !w.Alive(e) {
			t.Error("entity purged mid-tick")
		}
	}})

	w.Update(w.Resources.Config.Tick)

	want := []string{"early", "mid", "late"}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("order = %v, want %v", log, want)
		}
	}
	if w.Alive(e) {
		t.Error("entity should be purged at end of tick")
	}
	if w.Resources.Time.Tick != 1 {
		t.Errorf("tick = %d", w.Resources.Time.Tick)
	}
}

func BenchmarkForEach(b *testing.B) {
	w := NewWorld(nil)
	for i := 0; i < 1000; i++ {
		e := w.Create()
		_ = w.Components.Transform.Set(e, component.TransformComponent{})
		if i%2 == 0 {
			_ = w.Components.Velocity.Set(e, component.VelocityComponent{})
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.ForEach(component.MaskTransform|component.MaskVelocity, func(core.Entity) {})
	}
}
