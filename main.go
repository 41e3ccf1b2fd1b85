package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/leaves/config"
	"github.com/pthm-cable/leaves/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Ticks per update call in headless mode")
	listen := flag.String("listen", "", "Detection feed address (overrides detection.addr and enables the feed)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *listen != "" {
		cfg.Detection.Enabled = true
		cfg.Detection.Addr = *listen
	}

	opts := game.Options{
		Seed:           *seed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *headless {
		// Headless mode - field only, no raylib window
		g := game.NewGameWithOptions(opts)
		defer g.Unload()
		serveFeed(ctx, cfg, g)

		// Pace to the tick rate while a tracker is attached; otherwise run flat out.
		var interval time.Duration
		if cfg.Detection.Enabled {
			interval = cfg.Derived.TickDuration * time.Duration(max(*stepsPerUpdate, 1))
		}

		slog.Info("starting headless run",
			"seed", g.Seed(),
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
			"interval", interval,
		)

		g.RunHeadless(ctx, *maxTicks, interval)
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()
	serveFeed(ctx, cfg, g)

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// serveFeed starts the detection websocket when enabled. Feed failures are
// logged; the field keeps running on the mouse pointer.
func serveFeed(ctx context.Context, cfg *config.Config, g *game.Game) {
	if !cfg.Detection.Enabled {
		return
	}
	go func() {
		if err := g.Feed().ListenAndServe(ctx, cfg.Detection.Addr, cfg.Detection.Path); err != nil {
			slog.Error("detection feed stopped", "error", err)
		}
	}()
}
