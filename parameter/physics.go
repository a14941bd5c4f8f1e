package parameter

// Movement tunables
const (
	// DefaultAccel is the intent acceleration in units/s²
	DefaultAccel = 40.0

	// DefaultFriction is the per-tick velocity multiplier applied before the speed cap
	DefaultFriction = 0.85

	// DefaultMaxSpeed caps actor speed in units/s
	DefaultMaxSpeed = 6.0
)

// Resolver tunables
const (
	// DefaultPushOutBias is added along a contact normal to keep actors from sticking to faces
	DefaultPushOutBias = 0.01

	// DefaultCornerStuckThreshold is the squared speed below which a multi-contact actor counts as wedged
	DefaultCornerStuckThreshold = 1e-3

	// DefaultCornerNudge is the speed added along the averaged escape direction when wedged
	DefaultCornerNudge = 0.05

	// DefaultPenetrationEpsilon is the tolerated residual overlap after Commit; deeper overlap is reported
	DefaultPenetrationEpsilon = 1e-3
)

// Archetype shapes (world units)
const (
	PlayerRadius   = 0.4
	PlayerHeight   = 1.8
	ObstacleRadius = 0.45
	ObstacleHeight = 1.6
	TriggerRadius  = 0.6
	TriggerHeight  = 2.0
)

// Level geometry
const (
	// DefaultTileSize is the footprint edge of one wall tile
	DefaultTileSize = 1.0

	// DefaultWallHeight is the vertical extent of wall boxes from y=0
	DefaultWallHeight = 2.0

	// DefaultGridCellSize is the broadphase bucket edge for the static index
	DefaultGridCellSize = 2.0
)

// Patrol steering
const (
	// DefaultPatrolTolerance is the planar distance at which a waypoint counts as reached
	DefaultPatrolTolerance = 0.25

	// DefaultPatrolScale is the intent magnitude of patrolling actors
	DefaultPatrolScale = 0.6
)
