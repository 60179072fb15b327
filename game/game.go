// Package game owns the simulation world and runs ticks over it.
package game

import (
	"iter"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakes/components"
	"github.com/pthm-cable/snakes/config"
	"github.com/pthm-cable/snakes/systems"
	"github.com/pthm-cable/snakes/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed           int64   // RNG seed (0 = time-based)
	LogStats       bool    // log window stats via slog
	StatsWindowSec float64 // stats window in simulated seconds (0 = config)
	SnapshotDir    string  // write bookmark snapshots here (empty = off)
	OutputDir      string  // per-run CSV output root (empty = off)
}

// Settings are the values the front end controls.
// MoveIntervalMs and FoodCount are read every tick; AgentCount and
// DeathEnabled only when a run starts.
type Settings struct {
	MoveIntervalMs float64
	FoodCount      int
	AgentCount     int
	DeathEnabled   bool
}

// WithSnapshot returns s with the move interval and death setting saved in snap.
// A zero saved interval keeps s.MoveIntervalMs.
func (s Settings) WithSnapshot(snap *telemetry.Snapshot) Settings {
	if snap.MoveIntervalMs > 0 {
		s.MoveIntervalMs = snap.MoveIntervalMs
	}
	s.DeathEnabled = snap.DeathEnabled
	return s
}

// DefaultSettings returns the settings from the simulation config section.
func DefaultSettings(cfg *config.Config) Settings {
	return Settings{
		MoveIntervalMs: cfg.Simulation.MoveIntervalMs,
		FoodCount:      cfg.Simulation.FoodCount,
		AgentCount:     cfg.Simulation.AgentCount,
		DeathEnabled:   cfg.Simulation.DeathEnabled,
	}
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand
	seed  int64

	agentMapper *ecs.Map5[
		components.Agent,
		components.Body,
		components.Heading,
		components.Motion,
		components.Vitals,
	]

	// Living agents in creation order. Updates and consumption both walk this.
	agents []ecs.Entity
	occ    *systems.Occupancy
	food   *systems.FoodPool
	board  systems.Board

	// Captured when a run starts
	rules systems.Rules
	runID string

	// State
	running bool
	tick    int32
	simMs   float64
	nextID  uint32

	// Scratch buffers reused every tick
	foodBuf []components.Position
	heads   map[components.Position]ecs.Entity

	// Telemetry
	collector        *telemetry.Collector
	perf             *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	lifetimeTracker  *telemetry.LifetimeTracker
	outputManager    *telemetry.OutputManager
	outputRoot       string
	snapshotDir      string
	logStats         bool
}

// NewGame creates a game with an empty board. Call Start to begin a run.
func NewGame(cfg *config.Config, opts Options) *Game {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	statsWindow := cfg.Telemetry.StatsWindowSec
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))
	board := systems.Board{Width: cfg.Derived.BoardW, Height: cfg.Derived.BoardH}

	return &Game{
		cfg:   cfg,
		world: world,
		rng:   rng,
		seed:  seed,
		agentMapper: ecs.NewMap5[
			components.Agent,
			components.Body,
			components.Heading,
			components.Motion,
			components.Vitals,
		](world),
		occ:   systems.NewOccupancy(),
		food:  systems.NewFoodPool(world, board, rng),
		board: board,
		heads: make(map[components.Position]ecs.Entity),

		collector:        telemetry.NewCollector(statsWindow),
		perf:             telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		outputRoot:       opts.OutputDir,
		snapshotDir:      opts.SnapshotDir,
		logStats:         opts.LogStats,
	}
}

// agent returns the component view of an agent entity.
func (g *Game) agent(e ecs.Entity) (*components.Agent, systems.Agent) {
	id, body, heading, motion, vitals := g.agentMapper.Get(e)
	return id, systems.Agent{
		Entity:  e,
		Body:    *body,
		Heading: heading,
		Motion:  motion,
		Vitals:  vitals,
	}
}

// AgentView is the read-only state of one living agent.
type AgentView struct {
	ID      uint32
	Body    components.Body // head first; must not be modified
	Heading components.Direction
	State   systems.AgentState
}

// Agents yields every living agent in update order.
func (g *Game) Agents() iter.Seq[AgentView] {
	return func(yield func(AgentView) bool) {
		for _, e := range g.agents {
			id, a := g.agent(e)
			if !a.Vitals.Alive {
				continue
			}
			v := AgentView{ID: id.ID, Body: a.Body, Heading: a.Heading.Dir, State: a.State()}
			if !yield(v) {
				return
			}
		}
	}
}

// Foods appends every food cell to dst.
func (g *Game) Foods(dst []components.Position) []components.Position {
	return g.food.Positions(dst)
}

// AgentCount returns the number of living agents.
func (g *Game) AgentCount() int {
	var n int
	for _, e := range g.agents {
		if _, a := g.agent(e); a.Vitals.Alive {
			n++
		}
	}
	return n
}

// StunnedCount returns the number of living agents that are stunned.
func (g *Game) StunnedCount() int {
	var n int
	for _, e := range g.agents {
		if _, a := g.agent(e); a.State() == systems.StateStunned {
			n++
		}
	}
	return n
}

// FoodCount returns the number of food items.
func (g *Game) FoodCount() int { return g.food.Len() }

// Ticks returns the number of ticks run since Start.
func (g *Game) Ticks() int32 { return g.tick }

// SimTimeMs returns the simulated time since Start.
func (g *Game) SimTimeMs() float64 { return g.simMs }

// RunID returns the current run's ID, empty before the first Start.
func (g *Game) RunID() string { return g.runID }

// Seed returns the RNG seed.
func (g *Game) Seed() int64 { return g.seed }

// Running reports whether a run is in progress.
func (g *Game) Running() bool { return g.running }

// DeathEnabled reports the death setting captured for this run.
func (g *Game) DeathEnabled() bool { return g.rules.DeathEnabled }

// Board returns the board bounds.
func (g *Game) Board() systems.Board { return g.board }

// PerfStats returns timing over the recent tick window.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perf.Stats() }

// RecordFrame records frame timing for graphics mode.
func (g *Game) RecordFrame() { g.perf.RecordFrame() }

// Close ends the current run and closes its output files.
func (g *Game) Close() error {
	g.running = false
	err := g.outputManager.Close()
	g.outputManager = nil
	return err
}
