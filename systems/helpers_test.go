package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakes/components"
)

type testWorld struct {
	world *ecs.World
	ids   *ecs.Map1[components.Agent]
	occ   *Occupancy
	next  uint32
}

func newTestWorld() *testWorld {
	world := ecs.NewWorld()
	return &testWorld{
		world: world,
		ids:   ecs.NewMap1[components.Agent](world),
		occ:   NewOccupancy(),
	}
}

// agent creates a living agent whose cells are given head first and
// registers it in the occupancy index.
func (tw *testWorld) agent(dir components.Direction, cells ...components.Position) Agent {
	id := components.Agent{ID: tw.next}
	tw.next++
	e := tw.ids.NewEntity(&id)

	body := components.NewBody(cells[len(cells)-1])
	for i := len(cells) - 2; i >= 0; i-- {
		body.PushHead(cells[i])
	}

	tw.occ.InsertBody(e, body)
	return Agent{
		Entity:  e,
		Body:    body,
		Heading: &components.Heading{Dir: dir},
		Motion:  &components.Motion{},
		Vitals:  &components.Vitals{Alive: true},
	}
}

func testRules() Rules {
	return Rules{
		Board:          Board{Width: 10, Height: 10},
		MoveIntervalMs: 100,
		StunDurationMs: 2000,
		DeathAfter:     3,
		DeathEnabled:   true,
	}
}

func pos(x, y int) components.Position {
	return components.Position{X: x, Y: y}
}

func steerOf(a Agent) Steer {
	return Steer{
		Self:    a.Entity,
		Body:    a.Body,
		Heading: a.Heading.Dir,
		Growing: a.Motion.GrowPending > 0,
	}
}
