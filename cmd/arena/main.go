package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/arena/audio"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/level"
	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/system"
	"github.com/lixenwraith/arena/terminal"
)

var (
	configPath = flag.String("config", "", "TOML file overlaying the default tunables")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/arena.log")
	levelPath  = flag.String("level", "", "ASCII level file; empty generates a maze arena")
	seed       = flag.Int64("seed", 0, "Maze seed, 0 for random")
	size       = flag.Int("size", 31, "Generated maze edge in tiles")
	loops      = flag.Float64("loops", 0.3, "Generated maze loop density in [0,1]")
	obstacles  = flag.Int("obstacles", 4, "Patrolling obstacles in a generated maze")
	mute       = flag.Bool("mute", false, "Disable audio cues")
	volume     = flag.Float64("volume", 0.4, "Audio cue volume in [0,1]")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "arena: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (parameter.Config, error) {
	if *configPath == "" {
		return parameter.Default(), nil
	}
	return parameter.Load(*configPath)
}

func loadLevel(cfg parameter.Config) (*level.Level, error) {
	if *levelPath != "" {
		return level.LoadFile(*levelPath, cfg.TileSize, cfg.WallHeight)
	}
	return level.Generate(level.GenerateConfig{
		Cols:       *size,
		Rows:       *size,
		Loops:      *loops,
		Obstacles:  *obstacles,
		TileSize:   cfg.TileSize,
		WallHeight: cfg.WallHeight,
		Seed:       *seed,
	})
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lvl, err := loadLevel(cfg)
	if err != nil {
		return err
	}
	arena, err := system.NewArena(&cfg, lvl, nil)
	if err != nil {
		return err
	}
	log.Printf("arena: %dx%d tiles, %d walls, %d obstacles", lvl.Cols, lvl.Rows, len(lvl.Walls), len(lvl.Obstacles))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	// Dependency Injection: engine goroutines restore the terminal through core
	core.SetCrashReset(screen.Fini)

	if !*mute {
		sound := audio.NewSoundManager(*volume)
		if err := sound.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sound.Cleanup()
			arena.Router.Register(sound)
		}
	}

	step, err := engine.NewFixedStep(cfg.Tick, cfg.MaxFrameTime)
	if err != nil {
		return err
	}
	var clock engine.SystemClock
	keys := terminal.NewKeyInput(clock, parameter.InputHoldDuration)
	loop := engine.NewLoop(arena.World, arena.Router, step, clock, keys)
	renderer := terminal.NewRenderer(screen, terminal.DefaultMeshes, terminal.DefaultCamera)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var toggleOverlay atomic.Bool
	core.Go(func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				switch keys.HandleKey(ev) {
				case terminal.ActionQuit:
					cancel()
					return
				case terminal.ActionToggleOverlay:
					toggleOverlay.Store(true)
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	})

	focus := lvl.Player
	render := func() {
		if toggleOverlay.Swap(false) {
			renderer.ToggleOverlay()
		}
		if tr, ok := arena.World.Components.Transform.Get(arena.Player); ok {
			focus = tr.Position
		}
		renderer.Draw(arena.World, focus)
	}

	err = loop.Run(ctx, parameter.FrameUpdateInterval, render)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
