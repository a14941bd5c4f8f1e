// Headless arena run for profiling the movement pipeline
//
// Profiling:
// go build ./cmd/arena-bench
// ./arena-bench -ticks 100000 -profile cpu
// go tool pprof -http=":8000" ./arena-bench cpu.pprof
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/lixenwraith/arena/debug"
	"github.com/lixenwraith/arena/level"
	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/system"
	"github.com/lixenwraith/arena/vmath"
)

var (
	configPath  = flag.String("config", "", "TOML file overlaying the default tunables")
	levelPath   = flag.String("level", "", "ASCII level file; empty generates a maze arena")
	seed        = flag.Int64("seed", 1, "Maze seed")
	size        = flag.Int("size", 63, "Generated maze edge in tiles")
	obstacles   = flag.Int("obstacles", 32, "Patrolling obstacles in a generated maze")
	ticks       = flag.Int("ticks", 36000, "Fixed ticks to simulate")
	profileMode = flag.String("profile", "", "Profile mode: cpu, mem, allocs; empty disables")
	dumpPath    = flag.String("dump", "", "Write a msgpack collision snapshot here after the run")
	verbose     = flag.Bool("v", false, "Log integrity diagnostics to stderr")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "arena-bench: %v\n", err)
		os.Exit(1)
	}
}

func startProfile(mode string) (interface{ Stop() }, error) {
	var opt func(*profile.Profile)
	switch mode {
	case "":
		return nil, nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	case "allocs":
		opt = profile.MemProfileAllocs
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
	return profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet), nil
}

func run() error {
	cfg := parameter.Default()
	if *configPath != "" {
		var err error
		if cfg, err = parameter.Load(*configPath); err != nil {
			return err
		}
	}

	var (
		lvl *level.Level
		err error
	)
	if *levelPath != "" {
		lvl, err = level.LoadFile(*levelPath, cfg.TileSize, cfg.WallHeight)
	} else {
		lvl, err = level.Generate(level.GenerateConfig{
			Cols: *size, Rows: *size, Loops: 0.5, Obstacles: *obstacles,
			TileSize: cfg.TileSize, WallHeight: cfg.WallHeight, Seed: *seed,
		})
	}
	if err != nil {
		return err
	}

	arena, err := system.NewArena(&cfg, lvl, nil)
	if err != nil {
		return err
	}

	p, err := startProfile(*profileMode)
	if err != nil {
		return err
	}

	start := time.Now()
	input := &arena.World.Resources.Input.Axis
	for i := 0; i < *ticks; i++ {
		// Sweep the stick slowly so the player scrapes along every wall orientation
		angle := float64(i) / 90
		*input = vmath.Vec2{math.Cos(angle), math.Sin(angle)}
		arena.Router.DispatchAll()
		arena.World.Update(cfg.Tick)
	}
	elapsed := time.Since(start)

	if p != nil {
		p.Stop()
	}

	fmt.Printf("%d ticks in %v (%.2f µs/tick), %d entities, %d walls\n",
		*ticks, elapsed, float64(elapsed.Microseconds())/float64(max(*ticks, 1)),
		arena.World.EntityCount(), len(lvl.Walls))
	for _, s := range arena.World.Resources.Status.Samples() {
		fmt.Printf("  %-32s %s\n", s.Key, s.Value)
	}

	if *dumpPath != "" {
		data, err := debug.Capture(arena.World, arena.Index).Encode()
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if err := os.WriteFile(*dumpPath, data, 0644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		fmt.Printf("snapshot: %s (%d bytes)\n", *dumpPath, len(data))
	}
	return nil
}
