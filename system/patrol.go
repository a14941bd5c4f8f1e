package system

import (
	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/vmath"
)

// PatrolSystem steers patrolling actors toward their current waypoint
// Steering writes intent only; movement and collision stay with MovementSystem
type PatrolSystem struct {
	world *engine.World

	enabled bool
}

func NewPatrolSystem(world *engine.World) engine.System {
	s := &PatrolSystem{world: world}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *PatrolSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *PatrolSystem) Name() string {
	return "patrol"
}

func (s *PatrolSystem) Priority() int {
	return parameter.PriorityPatrol
}

func (s *PatrolSystem) Update() {
	if !s.enabled {
		return
	}
	c := &s.world.Components

	s.world.ForEach(component.MaskPatrol|component.MaskTransform|component.MaskIntent, func(e core.Entity) {
		p := c.Patrol.Ptr(e)
		tr, _ := c.Transform.Get(e)

		target := p.A
		if p.TowardB {
			target = p.B
		}
		delta := vmath.Vec2{target[0] - tr.Position[0], target[2] - tr.Position[2]}
		if delta.Len() <= p.Tolerance {
			p.TowardB = !p.TowardB
			target = p.A
			if p.TowardB {
				target = p.B
			}
			delta = vmath.Vec2{target[0] - tr.Position[0], target[2] - tr.Position[2]}
		}

		var axis vmath.Vec2
		if l := delta.Len(); l > vmath.Epsilon {
			axis = delta.Mul(p.Scale / l)
		}
		c.Intent.Ptr(e).Axis = vmath.ClampAxis(axis)
	})
}
