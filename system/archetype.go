package system

import (
	"time"

	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/debug"
	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/level"
	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/physics"
	"github.com/lixenwraith/arena/vmath"
)

// Install registers every simulation system on the world in priority order
func Install(world *engine.World, index *physics.StaticIndex, diag *debug.Diagnostics) []engine.System {
	systems := []engine.System{
		NewInputSystem(world),
		NewPatrolSystem(world),
		NewMovementSystem(world, index, diag),
		NewContactSystem(world),
		NewLifetimeSystem(world),
	}
	for _, s := range systems {
		world.AddSystem(s)
	}
	return world.Systems()
}

// actor queues the components shared by every dynamic archetype
func actor(world *engine.World, pos vmath.Vec3, a parameter.Archetype, flags component.ColliderFlags, mesh component.MeshKind) *engine.EntityBuilder {
	c := &world.Components
	eb := world.NewEntity()
	engine.With(eb, c.Transform, component.TransformComponent{Position: pos})
	engine.With(eb, c.Velocity, component.VelocityComponent{})
	engine.With(eb, c.Collider, component.ColliderComponent{Radius: a.Radius, Height: a.Height, Flags: flags})
	engine.With(eb, c.Intent, component.IntentComponent{})
	engine.With(eb, c.Renderable, component.RenderableComponent{Mesh: mesh})
	return eb
}

// groundY lifts a floor position so the capsule bottom rests on y=0
func groundY(pos vmath.Vec3, a parameter.Archetype) vmath.Vec3 {
	pos[1] = a.Height / 2
	return pos
}

// SpawnPlayer creates the input-driven actor standing at pos
func SpawnPlayer(world *engine.World, pos vmath.Vec3) core.Entity {
	a := world.Resources.Config.Player
	return world.Spawn(actor(world, groundY(pos, a), a, component.ColliderPlayer, component.MeshPlayer))
}

// SpawnObstacle creates an actor patrolling between pos and to
func SpawnObstacle(world *engine.World, pos, to vmath.Vec3) core.Entity {
	a := world.Resources.Config.Obstacle
	from := groundY(pos, a)
	eb := actor(world, from, a, component.ColliderObstacle, component.MeshObstacle)
	engine.With(eb, world.Components.Patrol, component.PatrolComponent{
		A:         from,
		B:         groundY(to, a),
		TowardB:   true,
		Tolerance: parameter.DefaultPatrolTolerance,
		Scale:     parameter.DefaultPatrolScale,
	})
	return world.Spawn(eb)
}

// SpawnTrigger creates a stationary contact volume that expires after ttl, or never when ttl <= 0
func SpawnTrigger(world *engine.World, pos vmath.Vec3, ttl time.Duration) core.Entity {
	a := world.Resources.Config.Trigger
	c := &world.Components
	eb := world.NewEntity()
	engine.With(eb, c.Transform, component.TransformComponent{Position: groundY(pos, a)})
	engine.With(eb, c.Collider, component.ColliderComponent{Radius: a.Radius, Height: a.Height, Flags: component.ColliderTrigger})
	engine.With(eb, c.Renderable, component.RenderableComponent{Mesh: component.MeshTrigger})
	if ttl > 0 {
		engine.With(eb, c.Lifetime, component.LifetimeComponent{Remaining: ttl})
	}
	return world.Spawn(eb)
}

// SpawnWall creates a static decoration entity for a wall tile so renderers see it as an entity
func SpawnWall(world *engine.World, fp physics.Footprint) core.Entity {
	c := &world.Components
	return world.Spawn(engine.With(engine.With(engine.With(world.NewEntity(),
		c.Transform, component.TransformComponent{Position: fp.Center}),
		c.Collider, component.ColliderComponent{Radius: fp.HalfExtents[0], Height: 2 * fp.HalfExtents[1], Flags: component.ColliderStatic}),
		c.Renderable, component.RenderableComponent{Mesh: component.MeshWall}))
}

// Populate spawns the level's walls, player, obstacles and triggers and returns the player
func Populate(world *engine.World, l *level.Level) core.Entity {
	for _, fp := range l.Walls {
		SpawnWall(world, fp)
	}
	for _, p := range l.Obstacles {
		SpawnObstacle(world, p.From, p.To)
	}
	for _, t := range l.Triggers {
		SpawnTrigger(world, t, 0)
	}
	return SpawnPlayer(world, l.Player)
}
