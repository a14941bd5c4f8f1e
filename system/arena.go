package system

import (
	"fmt"
	"log"

	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/debug"
	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/level"
	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/physics"
)

// Arena is a populated world with its static index and installed systems
type Arena struct {
	World   *engine.World
	Index   *physics.StaticIndex
	Diag    *debug.Diagnostics
	Router  *engine.EventRouter
	Systems []engine.System
	Player  core.Entity
}

// NewArena builds the static index for l, installs every system and spawns the level
// logger receives integrity diagnostics; nil uses the standard logger
func NewArena(cfg *parameter.Config, l *level.Level, logger *log.Logger) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	index, err := l.BuildIndex(cfg.GridCellSize)
	if err != nil {
		return nil, fmt.Errorf("build static index: %w", err)
	}

	world := engine.NewWorld(cfg)
	diag := debug.NewDiagnostics(world.Resources.Status, logger)
	systems := Install(world, index, diag)

	router := engine.NewEventRouter(world.Resources.Event.Queue)
	router.RegisterSystems(systems)

	return &Arena{
		World:   world,
		Index:   index,
		Diag:    diag,
		Router:  router,
		Systems: systems,
		Player:  Populate(world, l),
	}, nil
}
