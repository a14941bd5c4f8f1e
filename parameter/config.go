package parameter

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/arena/core"
)

// OverlapMode selects the capsule-vs-box overlap test used by the static index
type OverlapMode string

const (
	// OverlapEndpoints tests only the two endpoint spheres; the default
	OverlapEndpoints OverlapMode = "endpoints"
	// OverlapSegment tests the segment point closest to the box
	OverlapSegment OverlapMode = "segment"
)

// Archetype is the collider shape shared by every actor of one kind
type Archetype struct {
	Radius float64 `toml:"radius"`
	Height float64 `toml:"height"`
}

// Config is the static tunable set, fixed after initialization
type Config struct {
	Accel    float64 `toml:"accel"`
	Friction float64 `toml:"friction"`
	MaxSpeed float64 `toml:"max_speed"`

	Tick         time.Duration `toml:"tick"`
	MaxFrameTime time.Duration `toml:"max_frame_time"`

	PushOutBias          float64     `toml:"push_out_bias"`
	CornerStuckThreshold float64     `toml:"corner_stuck_threshold"`
	CornerNudge          float64     `toml:"corner_nudge"`
	PenetrationEpsilon   float64     `toml:"penetration_epsilon"`
	OverlapMode          OverlapMode `toml:"overlap_mode"`
	SortByDepth          bool        `toml:"sort_by_depth"`

	TileSize     float64 `toml:"tile_size"`
	WallHeight   float64 `toml:"wall_height"`
	GridCellSize float64 `toml:"grid_cell_size"`

	Player   Archetype `toml:"player"`
	Obstacle Archetype `toml:"obstacle"`
	Trigger  Archetype `toml:"trigger"`
}

// Default returns the built-in tunables
func Default() Config {
	return Config{
		Accel:    DefaultAccel,
		Friction: DefaultFriction,
		MaxSpeed: DefaultMaxSpeed,

		Tick:         TickInterval,
		MaxFrameTime: MaxFrameTime,

		PushOutBias:          DefaultPushOutBias,
		CornerStuckThreshold: DefaultCornerStuckThreshold,
		CornerNudge:          DefaultCornerNudge,
		PenetrationEpsilon:   DefaultPenetrationEpsilon,
		OverlapMode:          OverlapEndpoints,

		TileSize:     DefaultTileSize,
		WallHeight:   DefaultWallHeight,
		GridCellSize: DefaultGridCellSize,

		Player:   Archetype{Radius: PlayerRadius, Height: PlayerHeight},
		Obstacle: Archetype{Radius: ObstacleRadius, Height: ObstacleHeight},
		Trigger:  Archetype{Radius: TriggerRadius, Height: TriggerHeight},
	}
}

// Validate reports every invalid tunable, wrapped in core.ErrConfiguration
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Accel >= 0, "accel must be >= 0, got %v", c.Accel)
	check(c.Friction > 0 && c.Friction <= 1, "friction must be in (0,1], got %v", c.Friction)
	check(c.MaxSpeed > 0, "max_speed must be > 0, got %v", c.MaxSpeed)
	check(c.Tick > 0, "tick must be > 0, got %v", c.Tick)
	check(c.MaxFrameTime >= c.Tick, "max_frame_time %v must be >= tick %v", c.MaxFrameTime, c.Tick)
	check(c.PushOutBias >= 0, "push_out_bias must be >= 0, got %v", c.PushOutBias)
	check(c.CornerStuckThreshold >= 0, "corner_stuck_threshold must be >= 0, got %v", c.CornerStuckThreshold)
	check(c.CornerNudge >= 0, "corner_nudge must be >= 0, got %v", c.CornerNudge)
	check(c.PenetrationEpsilon >= 0, "penetration_epsilon must be >= 0, got %v", c.PenetrationEpsilon)
	check(c.OverlapMode == OverlapEndpoints || c.OverlapMode == OverlapSegment,
		"overlap_mode must be %q or %q, got %q", OverlapEndpoints, OverlapSegment, c.OverlapMode)
	check(c.TileSize > 0, "tile_size must be > 0, got %v", c.TileSize)
	check(c.WallHeight > 0, "wall_height must be > 0, got %v", c.WallHeight)
	check(c.GridCellSize > 0, "grid_cell_size must be > 0, got %v", c.GridCellSize)

	for _, a := range []struct {
		name string
		arch Archetype
	}{{"player", c.Player}, {"obstacle", c.Obstacle}, {"trigger", c.Trigger}} {
		check(a.arch.Radius > 0, "%s.radius must be > 0, got %v", a.name, a.arch.Radius)
		check(a.arch.Height > 0, "%s.height must be > 0, got %v", a.name, a.arch.Height)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", core.ErrConfiguration, errors.Join(errs...))
}

// Load overlays a TOML file onto Default and validates the result
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %w", core.ErrConfiguration, path, err)
	}
	cfg, err := Decode(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML text onto Default and validates the result
// Unknown keys are rejected so typos do not silently fall back to defaults
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: decode: %w", core.ErrConfiguration, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: unknown keys: %s", core.ErrConfiguration, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
