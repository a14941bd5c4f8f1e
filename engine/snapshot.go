package engine

import (
	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/vmath"
)

// EntityView is a read-only copy of an entity's committed render state
type EntityView struct {
	Entity   core.Entity
	Position vmath.Vec3
	Yaw      float64
	Mesh     component.MeshKind
	Flags    component.ColliderFlags
	Pending  bool
}

// Snapshot copies the committed state of every entity with a Transform
// The result is detached from the store and safe to keep across ticks
func (w *World) Snapshot() []EntityView {
	return w.AppendSnapshot(nil)
}

// AppendSnapshot appends views to dst, reusing its capacity
func (w *World) AppendSnapshot(dst []EntityView) []EntityView {
	c := &w.Components
	for _, e := range c.Transform.Entities() {
		t, _ := c.Transform.Get(e)
		v := EntityView{
			Entity:   e,
			Position: t.Position,
			Yaw:      t.Yaw,
			Pending:  w.doomed[e.Slot()],
		}
		if r, ok := c.Renderable.Get(e); ok {
			v.Mesh = r.Mesh
		}
		if col, ok := c.Collider.Get(e); ok {
			v.Flags = col.Flags
		}
		dst = append(dst, v)
	}
	return dst
}
