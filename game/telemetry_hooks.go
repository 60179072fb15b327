package game

import (
	"log/slog"

	"github.com/pthm-cable/snakes/systems"
	"github.com/pthm-cable/snakes/telemetry"
)

// record feeds an event to the window collector and the lifetime tracker.
func (g *Game) record(ev telemetry.Event) {
	g.collector.Record(ev)
	g.lifetimeTracker.Record(ev)
}

// recordStep turns one agent update into events.
func (g *Game) recordStep(id uint32, a systems.Agent, res systems.StepResult) {
	switch {
	case res.Moved:
		g.record(telemetry.NewEvent(telemetry.EventMove, g.tick, id, res.Head))
		g.lifetimeTracker.UpdateLength(id, a.Body.Len())
	case res.Collided:
		g.record(telemetry.NewEvent(telemetry.EventCollision, g.tick, id, res.Head))
		if res.Died {
			g.record(telemetry.NewEvent(telemetry.EventDeath, g.tick, id, res.Head))
		}
	case res.Recovered:
		g.record(telemetry.NewEvent(telemetry.EventRecover, g.tick, id, res.Head))
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.simMs) {
		return
	}

	stats := g.collector.Flush(g.tick, g.simMs, g.samplePopulation())
	g.perf.SampleProcess()
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		g.saveSnapshot(&bm)
	}
}

// samplePopulation counts living and stunned agents and collects body lengths.
func (g *Game) samplePopulation() telemetry.PopulationSample {
	pop := telemetry.PopulationSample{
		Food:    g.food.Len(),
		Lengths: make([]float64, 0, len(g.agents)),
	}
	for _, e := range g.agents {
		id, a := g.agent(e)
		if !a.Vitals.Alive {
			continue
		}
		pop.Alive++
		if a.Vitals.Stunned {
			pop.Stunned++
		}
		pop.Lengths = append(pop.Lengths, float64(a.Body.Len()))
		g.lifetimeTracker.UpdateLength(id.ID, a.Body.Len())
	}
	return pop
}

// saveSnapshot writes a board snapshot to the snapshot dir and the run output.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	if g.snapshotDir == "" && g.outputManager == nil {
		return
	}
	snap := g.Snapshot(bookmark)

	if g.snapshotDir != "" {
		path, err := telemetry.SaveSnapshot(snap, g.snapshotDir)
		if err != nil {
			slog.Error("failed to save snapshot", "error", err)
		} else {
			slog.Info("snapshot saved", "path", path, "tick", g.tick)
		}
	}
	if _, err := g.outputManager.WriteSnapshot(snap); err != nil {
		slog.Error("failed to save snapshot", "error", err)
	}
}

// Snapshot builds a snapshot of the current board.
func (g *Game) Snapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:        telemetry.SnapshotVersion,
		RunID:          g.runID,
		Seed:           g.seed,
		BoardWidth:     g.board.Width,
		BoardHeight:    g.board.Height,
		Tick:           g.tick,
		SimTimeMs:      g.simMs,
		MoveIntervalMs: g.rules.MoveIntervalMs,
		DeathEnabled:   g.rules.DeathEnabled,
		Food:           g.food.Positions(nil),
		Bookmark:       bookmark,
	}

	for _, e := range g.agents {
		id, a := g.agent(e)
		if !a.Vitals.Alive {
			continue
		}
		snap.Agents = append(snap.Agents, telemetry.AgentState{
			ID:             id.ID,
			State:          a.State().String(),
			Heading:        a.Heading.Dir.String(),
			MoveTimerMs:    a.Motion.MoveTimer,
			GrowPending:    a.Motion.GrowPending,
			CollisionCount: a.Vitals.CollisionCount,
			StunTimerMs:    a.Vitals.StunTimer,
			Body:           a.Body.Cells(),
			Lifetime:       g.lifetimeTracker.Get(id.ID),
		})
	}
	return snap
}
