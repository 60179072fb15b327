package game

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakes/components"
	"github.com/pthm-cable/snakes/systems"
	"github.com/pthm-cable/snakes/telemetry"
)

// Start clears the board and begins a new run with s.
// Agent count, death and stun duration are fixed until the next Start.
func (g *Game) Start(s Settings) error {
	if err := g.beginRun(s); err != nil {
		return err
	}

	for i := 0; i < s.AgentCount; i++ {
		g.spawnAgent(components.NewBody(g.randomCell()), components.Right)
	}
	g.food.Resize(s.FoodCount)

	slog.Info("run_started",
		"run_id", g.runID,
		"seed", g.seed,
		"agents", s.AgentCount,
		"food", s.FoodCount,
		"death_enabled", s.DeathEnabled,
	)
	return nil
}

// Restore clears the board and rebuilds it from a snapshot.
// The snapshot's board must fit the configured board and its food must lie on it.
// The run takes its move interval and death setting from the snapshot; see
// Settings.WithSnapshot for carrying them into later ticks.
func (g *Game) Restore(snap *telemetry.Snapshot, s Settings) error {
	if snap.BoardWidth > g.board.Width || snap.BoardHeight > g.board.Height {
		return fmt.Errorf("snapshot board %dx%d exceeds %dx%d",
			snap.BoardWidth, snap.BoardHeight, g.board.Width, g.board.Height)
	}

	for _, p := range snap.Food {
		if !g.board.Contains(p) {
			return fmt.Errorf("snapshot food at %v is off the %dx%d board", p, g.board.Width, g.board.Height)
		}
	}

	if err := g.beginRun(s.WithSnapshot(snap)); err != nil {
		return err
	}

	for _, as := range snap.Agents {
		if len(as.Body) == 0 {
			continue
		}
		body := components.NewBody(as.Body[len(as.Body)-1])
		for i := len(as.Body) - 2; i >= 0; i-- {
			body.PushHead(as.Body[i])
		}
		e := g.spawnAgent(body, parseDirection(as.Heading))

		_, a := g.agent(e)
		a.Motion.MoveTimer = as.MoveTimerMs
		a.Motion.GrowPending = as.GrowPending
		a.Vitals.CollisionCount = as.CollisionCount
		if as.State == systems.StateStunned.String() {
			a.Vitals.Stunned = true
			a.Vitals.StunTimer = as.StunTimerMs
		}
	}
	for _, p := range snap.Food {
		g.food.Place(p)
	}

	slog.Info("run_restored",
		"run_id", g.runID,
		"from_run", snap.RunID,
		"from_tick", snap.Tick,
		"agents", len(g.agents),
		"food", g.food.Len(),
	)
	return nil
}

// beginRun resets the world, telemetry and output for a fresh run.
func (g *Game) beginRun(s Settings) error {
	g.clear()

	g.rules = systems.Rules{
		Board:          g.board,
		MoveIntervalMs: s.MoveIntervalMs,
		StunDurationMs: g.cfg.Simulation.StunDurationMs,
		DeathAfter:     g.cfg.Simulation.DeathAfterCollisions,
		DeathEnabled:   s.DeathEnabled,
	}
	g.runID = uuid.NewString()
	g.tick = 0
	g.simMs = 0
	g.nextID = 0

	g.collector.Reset(0, 0)
	g.bookmarkDetector.Reset()
	g.lifetimeTracker.Reset()

	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
	if g.outputRoot != "" {
		om, err := telemetry.NewOutputManager(filepath.Join(g.outputRoot, g.runID))
		if err != nil {
			return fmt.Errorf("starting run output: %w", err)
		}
		if err := om.WriteConfig(g.cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		slog.Debug("run_output", "run_id", g.runID, "dir", om.Dir())
		g.outputManager = om
	}

	g.running = true
	return nil
}

// spawnAgent adds a living agent with the given body at the end of the update order.
func (g *Game) spawnAgent(body components.Body, dir components.Direction) ecs.Entity {
	id := components.Agent{ID: g.nextID, BornTick: g.tick}
	g.nextID++

	heading := components.Heading{Dir: dir}
	motion := components.Motion{}
	vitals := components.Vitals{Alive: true}

	e := g.agentMapper.NewEntity(&id, &body, &heading, &motion, &vitals)
	g.agents = append(g.agents, e)
	g.occ.InsertBody(e, body)

	g.lifetimeTracker.Register(id.ID, g.tick, g.simMs, body.Len())
	g.collector.Record(telemetry.NewEvent(telemetry.EventSpawn, g.tick, id.ID, body.Head()))
	return e
}

// removeAgent deletes a dead agent's entity and logs its lifetime.
func (g *Game) removeAgent(e ecs.Entity) {
	id, _ := g.agent(e)
	if ls := g.lifetimeTracker.Remove(id.ID, g.simMs); ls != nil {
		slog.Debug("agent_died",
			"run_id", g.runID,
			"agent", id.ID,
			"tick", g.tick,
			"survival_sec", ls.SurvivalSec,
			"food_eaten", ls.FoodEaten,
			"collisions", ls.Collisions,
			"peak_length", ls.PeakLength,
		)
	}
	g.world.RemoveEntity(e)
}

// clear removes every agent and food item.
func (g *Game) clear() {
	for _, e := range g.agents {
		g.world.RemoveEntity(e)
	}
	clear(g.agents)
	g.agents = g.agents[:0]
	g.food.Clear()
	g.occ.Clear()
}

func (g *Game) randomCell() components.Position {
	return components.Position{
		X: g.rng.Intn(g.board.Width),
		Y: g.rng.Intn(g.board.Height),
	}
}

func parseDirection(s string) components.Direction {
	for _, d := range components.Directions {
		if d.String() == s {
			return d
		}
	}
	return components.Right
}
