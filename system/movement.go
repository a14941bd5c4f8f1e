package system

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/debug"
	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/event"
	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/physics"
	"github.com/lixenwraith/arena/status"
	"github.com/lixenwraith/arena/vmath"
)

// MovementSystem integrates every dynamic actor and slides it along static geometry
// Per actor and tick: ReadIntent, Accelerate, Clamp, ProposePosition, Resolve, Commit
type MovementSystem struct {
	world *engine.World
	index *physics.StaticIndex
	diag  *debug.Diagnostics

	accel    float64
	friction float64
	maxSpeed float64
	epsilon  float64
	params   physics.ResolveParams

	// Scratch buffer reused across queries
	boxes []vmath.AABB

	// Actors in contact last tick, for edge-triggered blocked events
	blocked     map[core.Entity]struct{}
	blockedNext map[core.Entity]struct{}

	statContacts *atomic.Int64
	statNudges   *atomic.Int64
	statMaxDepth *status.Gauge

	enabled bool
}

// NewMovementSystem creates the integrator; index may be nil for an empty level
func NewMovementSystem(world *engine.World, index *physics.StaticIndex, diag *debug.Diagnostics) engine.System {
	cfg := world.Resources.Config
	reg := world.Resources.Status

	if index != nil {
		index = index.WithOverlapMode(cfg.OverlapMode)
		reg.Counter(status.KeyStaticBoxes).Store(int64(index.Len()))
	}

	s := &MovementSystem{
		world:    world,
		index:    index,
		diag:     diag,
		accel:    cfg.Accel,
		friction: cfg.Friction,
		maxSpeed: cfg.MaxSpeed,
		epsilon:  cfg.PenetrationEpsilon,
		params:   physics.ParamsFromConfig(cfg),
		boxes:    make([]vmath.AABB, 0, 8),

		statContacts: reg.Counter(status.KeyContacts),
		statNudges:   reg.Counter(status.KeyCornerNudges),
		statMaxDepth: reg.Gauge(status.KeyMaxDepth),
	}
	s.Init()
	return s
}

// Init resets session state
func (s *MovementSystem) Init() {
	s.blocked = make(map[core.Entity]struct{})
	s.blockedNext = make(map[core.Entity]struct{})
	s.enabled = true
}

// Name returns system's name
func (s *MovementSystem) Name() string {
	return "movement"
}

func (s *MovementSystem) Priority() int {
	return parameter.PriorityMovement
}

func (s *MovementSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventEntityDestroyed}
}

func (s *MovementSystem) HandleEvent(ev event.GameEvent) {
	if p, ok := ev.Payload.(*event.EntityPayload); ok {
		delete(s.blocked, p.Entity)
	}
}

func (s *MovementSystem) Update() {
	if !s.enabled {
		return
	}

	timeRes := s.world.Resources.Time
	dt := timeRes.Seconds()
	s.diag.BeginTick(timeRes.Tick)
	c := &s.world.Components

	// Intent without velocity cannot move
	for _, e := range s.world.Query().With(component.MaskIntent).Without(component.MaskVelocity).Execute() {
		s.diag.Report(debug.KindMissingVelocity, e, fmt.Errorf("movement %s: velocity: %w", e, core.ErrMissingComponent))
	}

	for _, e := range c.Velocity.All() {
		col, hasCollider := c.Collider.Get(e)
		if hasCollider && col.Flags.Has(component.ColliderStatic) {
			continue
		}

		tr := c.Transform.Ptr(e)
		if tr == nil {
			s.diag.Report(debug.KindMissingTransform, e, fmt.Errorf("movement %s: transform: %w", e, core.ErrMissingComponent))
			continue
		}
		vel := c.Velocity.Ptr(e)

		// ReadIntent
		var dir vmath.Vec3
		if in, ok := c.Intent.Get(e); ok {
			dir = vmath.PlanarDirection(vmath.ClampAxis(in.Axis))
		}

		// Accelerate, Clamp
		// Actors move in the ground plane; nothing may carry them vertically
		v := physics.Accelerate(vmath.Planar(vel.Linear), dir, s.accel, dt)
		v = physics.ApplyFriction(v, s.friction)
		v, _ = physics.CapSpeed(v, s.maxSpeed)

		// ProposePosition
		candidate := physics.Integrate(tr.Position, v, dt)

		// Resolve
		var touched bool
		if hasCollider {
			candidate, v, touched = s.resolve(e, col, tr.Position, candidate, v, dt)
		} else {
			s.diag.Report(debug.KindMissingCollider, e, fmt.Errorf("movement %s: collider: %w", e, core.ErrMissingComponent))
		}

		// Commit
		tr.Position = candidate
		vel.Linear = v
		if touched {
			s.checkPenetration(e, col, candidate)
		}
		if !vmath.IsZero(dir) {
			if yaw, ok := vmath.YawOf(v); ok {
				tr.Yaw = yaw
			}
		}
	}

	s.blocked, s.blockedNext = s.blockedNext, s.blocked
	clear(s.blockedNext)
}

// resolve queries static boxes at the candidate position and corrects velocity
// A changed velocity re-projects the candidate once from the original position
// touched reports whether any static box was near the candidate
func (s *MovementSystem) resolve(e core.Entity, col component.ColliderComponent, pos, candidate, v vmath.Vec3, dt float64) (vmath.Vec3, vmath.Vec3, bool) {
	if s.index == nil || s.index.Len() == 0 {
		return candidate, v, false
	}

	capsule, ok := col.CapsuleAt(candidate)
	if !ok {
		s.diag.Report(debug.KindDegenerateCapsule, e,
			fmt.Errorf("%w: height %.3f not above diameter %.3f", core.ErrDegenerateGeometry, col.Height, 2*col.Radius))
	}

	s.boxes = s.index.QueryOverlapping(capsule, s.boxes[:0])
	if len(s.boxes) == 0 {
		return candidate, v, false
	}

	corrected, rep := physics.Resolve(capsule, v, s.boxes, s.params)
	s.statContacts.Add(int64(rep.Contacts))
	s.statMaxDepth.Max(rep.MaxDepth)
	if rep.CornerNudge {
		s.statNudges.Add(1)
	}
	if rep.Degenerate > 0 {
		s.diag.Report(debug.KindDegenerateNormal, e,
			fmt.Errorf("%d contacts resolved along +X: %w", rep.Degenerate, core.ErrDegenerateGeometry))
	}

	if !rep.Changed() {
		return candidate, v, true
	}

	// Push-out along a tilted normal must not lift or sink the actor
	corrected = vmath.Planar(corrected)
	candidate = physics.Integrate(pos, corrected, dt)
	if rep.CornerNudge {
		s.world.PushEvent(event.EventCornerNudge, &event.BlockedPayload{
			Entity:   e,
			Contacts: rep.Contacts,
			Depth:    rep.MaxDepth,
			Position: candidate,
		})
	}
	s.blockedNext[e] = struct{}{}
	if _, was := s.blocked[e]; !was {
		s.world.PushEvent(event.EventActorBlocked, &event.BlockedPayload{
			Entity:   e,
			Contacts: rep.Contacts,
			Depth:    rep.MaxDepth,
			Position: candidate,
		})
	}
	return candidate, corrected, true
}

// checkPenetration reports a committed position still inside static geometry beyond epsilon
func (s *MovementSystem) checkPenetration(e core.Entity, col component.ColliderComponent, pos vmath.Vec3) {
	capsule, _ := col.CapsuleAt(pos)
	s.boxes = s.index.QueryOverlapping(capsule, s.boxes[:0])
	if depth := physics.StartPenetration(capsule, s.boxes); depth > s.epsilon {
		s.diag.Report(debug.KindPenetration, e,
			fmt.Errorf("start endpoint %.4f inside static geometry at %v", depth, pos))
	}
}
