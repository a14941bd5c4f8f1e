package system

import (
	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/parameter"
)

// InputSystem copies the sampled movement axis into every player intent
type InputSystem struct {
	world *engine.World
}

func NewInputSystem(world *engine.World) engine.System {
	s := &InputSystem{world: world}
	s.Init()
	return s
}

func (s *InputSystem) Init() {}

// Name returns system's name
func (s *InputSystem) Name() string {
	return "input"
}

func (s *InputSystem) Priority() int {
	return parameter.PriorityInput
}

func (s *InputSystem) Update() {
	axis := s.world.Resources.Input.Axis
	c := &s.world.Components
	s.world.ForEach(component.MaskIntent|component.MaskCollider, func(e core.Entity) {
		col, _ := c.Collider.Get(e)
		if !col.Flags.Has(component.ColliderPlayer) {
			return
		}
		if in := c.Intent.Ptr(e); in != nil {
			in.Axis = axis
		}
	})
}
