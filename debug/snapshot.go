package debug

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/physics"
	"github.com/lixenwraith/arena/vmath"
)

// Box is a static AABB in snapshot form
type Box struct {
	Min [3]float64 `msgpack:"min"`
	Max [3]float64 `msgpack:"max"`
}

// Capsule is one actor collider in snapshot form
type Capsule struct {
	Entity core.Entity `msgpack:"e"`
	Start  [3]float64  `msgpack:"a"`
	End    [3]float64  `msgpack:"b"`
	Radius float64     `msgpack:"r"`
	Flags  uint8       `msgpack:"f"`
}

// Snapshot is a read-only picture of the collision state for visualization
type Snapshot struct {
	Tick     uint64    `msgpack:"tick"`
	Boxes    []Box     `msgpack:"boxes"`
	Capsules []Capsule `msgpack:"capsules"`
}

// Capture copies the static boxes and every dynamic actor capsule without mutating either
// index may be nil when no level is loaded
func Capture(world *engine.World, index *physics.StaticIndex) Snapshot {
	snap := Snapshot{Tick: world.Resources.Time.Tick}

	if index != nil {
		boxes := index.Boxes()
		snap.Boxes = make([]Box, len(boxes))
		for i, b := range boxes {
			snap.Boxes[i] = Box{Min: b.Min, Max: b.Max}
		}
	}

	c := &world.Components
	world.ForEach(component.MaskTransform|component.MaskCollider, func(e core.Entity) {
		col, _ := c.Collider.Get(e)
		if col.Flags.Has(component.ColliderStatic) {
			return
		}
		tr, _ := c.Transform.Get(e)
		capsule, _ := col.CapsuleAt(tr.Position)
		snap.Capsules = append(snap.Capsules, Capsule{
			Entity: e,
			Start:  capsule.Start,
			End:    capsule.End,
			Radius: capsule.Radius,
			Flags:  uint8(col.Flags),
		})
	})
	return snap
}

// AABBs converts the snapshot boxes back to geometry
func (s Snapshot) AABBs() []vmath.AABB {
	out := make([]vmath.AABB, len(s.Boxes))
	for i, b := range s.Boxes {
		out[i] = vmath.AABB{Min: b.Min, Max: b.Max}
	}
	return out
}

// Encode serializes the snapshot with msgpack
func (s Snapshot) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a msgpack snapshot
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
