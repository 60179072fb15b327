package game

import (
	"github.com/pthm-cable/snakes/systems"
	"github.com/pthm-cable/snakes/telemetry"
)

// Tick advances the run by elapsedMs using the live settings.
// Negative elapsed time counts as zero. Does nothing when no run is active.
func (g *Game) Tick(elapsedMs float64, s Settings) {
	if !g.running {
		return
	}
	if elapsedMs < 0 {
		elapsedMs = 0
	}

	g.rules.MoveIntervalMs = s.MoveIntervalMs

	g.perf.StartTick()

	// Phase 1: food pool follows the target count
	g.perf.StartPhase(telemetry.PhaseFoodPool)
	g.food.Resize(s.FoodCount)

	// Phase 2: agents decide and move in creation order
	g.perf.StartPhase(telemetry.PhaseAgents)
	g.updateAgents(elapsedMs)

	// Phase 3: drop agents that died this tick
	g.perf.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead()

	// Phase 4: heads on food eat it
	g.perf.StartPhase(telemetry.PhaseConsumption)
	g.consumeFood()

	g.tick++
	g.simMs += elapsedMs

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perf.EndTick()
}

// updateAgents runs every agent's state machine against the live occupancy index,
// so later agents see moves made earlier in the same pass.
func (g *Game) updateAgents(elapsedMs float64) {
	g.foodBuf = g.food.Positions(g.foodBuf[:0])

	for _, e := range g.agents {
		id, a := g.agent(e)
		res := systems.UpdateAgent(a, elapsedMs, g.foodBuf, g.occ, g.rules, g.rng)
		g.recordStep(id.ID, a, res)
	}
}

// cleanupDead removes dead agents, keeping the order of the survivors.
func (g *Game) cleanupDead() {
	live := g.agents[:0]
	var dead int
	for _, e := range g.agents {
		if _, a := g.agent(e); a.Vitals.Alive {
			live = append(live, e)
			continue
		}
		g.removeAgent(e)
		dead++
	}
	if dead == 0 {
		return
	}
	clear(g.agents[len(live):])
	g.agents = live
}

// consumeFood lets the first agent in update order whose head is on a food
// item eat it. Each food is checked once, so respawned food waits for the next tick.
func (g *Game) consumeFood() {
	clear(g.heads)
	for _, e := range g.agents {
		_, a := g.agent(e)
		head := a.Body.Head()
		if _, taken := g.heads[head]; !taken {
			g.heads[head] = e
		}
	}

	for _, f := range g.food.Items() {
		e, ok := g.heads[g.food.Pos(f)]
		if !ok {
			continue
		}
		id, a := g.agent(e)
		systems.Grow(a.Motion, 1)
		g.food.Respawn(f)
		g.record(telemetry.NewEvent(telemetry.EventEat, g.tick, id.ID, a.Body.Head()))
	}
}
