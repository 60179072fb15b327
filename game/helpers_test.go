package game

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakes/components"
	"github.com/pthm-cable/snakes/config"
	"github.com/pthm-cable/snakes/systems"
)

func newTestGame(t *testing.T, w, h int, opts Options) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Board.Width, cfg.Board.Height = w, h
	cfg.Derived.BoardW, cfg.Derived.BoardH = w, h
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	return NewGame(cfg, opts)
}

// emptyRun starts a run with no agents and no food.
func emptyRun(t *testing.T, g *Game, deathEnabled bool) {
	t.Helper()
	if err := g.Start(Settings{MoveIntervalMs: 100, DeathEnabled: deathEnabled}); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

// place spawns an agent whose cells are given head first.
func place(g *Game, dir components.Direction, cells ...components.Position) ecs.Entity {
	body := components.NewBody(cells[len(cells)-1])
	for i := len(cells) - 2; i >= 0; i-- {
		body.PushHead(cells[i])
	}
	return g.spawnAgent(body, dir)
}

// hold keeps an agent from moving for the rest of the test.
func hold(g *Game, e ecs.Entity) {
	_, a := g.agent(e)
	a.Motion.MoveTimer = 1e12
}

func view(g *Game, e ecs.Entity) systems.Agent {
	_, a := g.agent(e)
	return a
}

func live(food int) Settings {
	return Settings{MoveIntervalMs: 100, FoodCount: food}
}

func pos(x, y int) components.Position {
	return components.Position{X: x, Y: y}
}

// checkOccupancy compares the occupancy index with the living bodies.
func checkOccupancy(t *testing.T, g *Game) {
	t.Helper()
	want := make(map[components.Position]int)
	for a := range g.Agents() {
		for p := range a.Body.All() {
			want[p]++
		}
	}
	if g.occ.Len() != len(want) {
		t.Errorf("occupancy covers %d cells, bodies cover %d", g.occ.Len(), len(want))
	}
	for p, n := range want {
		if got := g.occ.Count(p); got != n {
			t.Errorf("cell %v: occupancy %d, bodies %d", p, got, n)
		}
	}
}
