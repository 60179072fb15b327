package main

import (
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/joho/godotenv"

	"github.com/pthm-cable/snakes/config"
	"github.com/pthm-cable/snakes/game"
	"github.com/pthm-cable/snakes/telemetry"
	"github.com/pthm-cable/snakes/ui"
)

func main() {
	// Optional .env presets flag defaults
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// CLI flags
	configPath := flag.String("config", os.Getenv("SNAKES_CONFIG"), "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark snapshot files")
	outputDir := flag.String("output-dir", os.Getenv("SNAKES_OUTPUT_DIR"), "Output directory for per-run CSV logs and config")
	seed := flag.Int64("seed", envInt64("SNAKES_SEED"), "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	agents := flag.Int("agents", 0, "Agent count (0 = use config)")
	food := flag.Int("food", 0, "Food count (0 = use config)")
	interval := flag.Float64("interval", 0, "Move interval in ms (0 = use config)")
	noDeath := flag.Bool("no-death", false, "Disable death after repeated collisions")
	stepMs := flag.Float64("step-ms", 0, "Simulated ms per headless tick (0 = use config)")
	loadSnapshot := flag.String("load-snapshot", "", "Resume a headless run from a snapshot file")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	settings := game.DefaultSettings(cfg)
	if *agents > 0 {
		settings.AgentCount = *agents
	}
	if *food > 0 {
		settings.FoodCount = *food
	}
	if *interval > 0 {
		settings.MoveIntervalMs = *interval
	}
	if *noDeath {
		settings.DeathEnabled = false
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
	}

	g := game.NewGame(cfg, opts)
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("failed to close run", "error", err)
		}
	}()

	if *headless {
		step := cfg.Simulation.HeadlessStepMs
		if *stepMs > 0 {
			step = *stepMs
		}
		var err error
		settings, err = startHeadless(g, settings, *loadSnapshot, *interval)
		if err != nil {
			slog.Error("failed to start run", "error", err)
			os.Exit(1)
		}

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"step_ms", step,
			"max_ticks", *maxTicks,
		)

		for g.AgentCount() > 0 {
			g.Tick(step, settings)

			if *maxTicks > 0 && int(g.Ticks()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Ticks())
				return
			}
		}
		slog.Info("all agents dead", "tick", g.Ticks(), "sim_time_sec", g.SimTimeMs()/1000)
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Snakes")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape goes back to the menu instead of closing the window
	rl.SetExitKey(0)

	app := ui.NewApp(cfg, g, settings)
	for !rl.WindowShouldClose() && !app.ShouldQuit() {
		app.Update()
		app.Draw()

		if *maxTicks > 0 && int(g.Ticks()) >= *maxTicks {
			break
		}
	}
}

// startHeadless begins a fresh run, or resumes one from a snapshot file.
// A resumed run keeps the snapshot's move interval unless -interval was given.
func startHeadless(g *game.Game, s game.Settings, snapshotPath string, interval float64) (game.Settings, error) {
	if snapshotPath == "" {
		return s, g.Start(s)
	}
	snap, err := telemetry.LoadSnapshot(snapshotPath)
	if err != nil {
		return s, err
	}
	s = s.WithSnapshot(snap)
	if interval > 0 {
		s.MoveIntervalMs = interval
	}
	return s, g.Restore(snap, s)
}

func envInt64(key string) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
