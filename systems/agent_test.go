package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/snakes/components"
)

func TestUpdateAgentStepTowardFood(t *testing.T) {
	tw := newTestWorld()
	rng := rand.New(rand.NewSource(1))
	a := tw.agent(components.Right, pos(5, 5))
	foods := []components.Position{pos(8, 5)}

	res := UpdateAgent(a, 100, foods, tw.occ, testRules(), rng)

	if !res.Moved {
		t.Fatal("expected a move")
	}
	if a.Body.Head() != pos(6, 5) {
		t.Errorf("head = %v, want (6,5)", a.Body.Head())
	}
	if a.Body.Len() != 1 {
		t.Errorf("len = %d, want 1", a.Body.Len())
	}
	if a.Heading.Dir != components.Right {
		t.Errorf("heading = %v, want right", a.Heading.Dir)
	}
	if a.Motion.MoveTimer != 100 {
		t.Errorf("move timer = %v, want 100", a.Motion.MoveTimer)
	}
	if tw.occ.Count(pos(5, 5)) != 0 || tw.occ.Count(pos(6, 5)) != 1 {
		t.Error("occupancy not updated with the move")
	}
}

func TestUpdateAgentWaitsForTimer(t *testing.T) {
	tw := newTestWorld()
	rng := rand.New(rand.NewSource(1))
	a := tw.agent(components.Right, pos(5, 5))
	a.Motion.MoveTimer = 100

	res := UpdateAgent(a, 40, nil, tw.occ, testRules(), rng)
	if res.Moved || a.Body.Head() != pos(5, 5) {
		t.Fatal("moved before the timer ran out")
	}
	if a.Motion.MoveTimer != 60 {
		t.Errorf("move timer = %v, want 60", a.Motion.MoveTimer)
	}

	// Overshooting the timer still yields a single step
	res = UpdateAgent(a, 500, nil, tw.occ, testRules(), rng)
	if !res.Moved || a.Body.Head() != pos(6, 5) {
		t.Errorf("expected one step to (6,5), got %v", a.Body.Head())
	}
	if a.Motion.MoveTimer != 100 {
		t.Errorf("move timer = %v, want reset to 100", a.Motion.MoveTimer)
	}
}

func TestUpdateAgentZeroElapsedFirstTick(t *testing.T) {
	tw := newTestWorld()
	a := tw.agent(components.Right, pos(5, 5))

	res := UpdateAgent(a, 0, nil, tw.occ, testRules(), rand.New(rand.NewSource(1)))
	if !res.Moved {
		t.Error("a fresh agent has a zero timer and should move")
	}
}

func TestUpdateAgentCollision(t *testing.T) {
	tw := newTestWorld()
	rng := rand.New(rand.NewSource(1))
	a := tw.agent(components.Right, pos(5, 5), pos(4, 5))
	tw.agent(components.Down, pos(6, 5))

	res := UpdateAgent(a, 100, nil, tw.occ, testRules(), rng)

	if !res.Collided || res.Moved {
		t.Fatalf("result = %+v, want collision without move", res)
	}
	if !a.Vitals.Stunned || a.Vitals.StunTimer != 2000 || a.Vitals.CollisionCount != 1 {
		t.Errorf("vitals = %+v, want stunned 2000ms count 1", *a.Vitals)
	}
	if a.Body.Head() != pos(5, 5) || a.Body.Len() != 2 {
		t.Errorf("body changed: %v", a.Body.Cells())
	}
	if a.Heading.Dir != components.Right {
		t.Errorf("heading = %v, want right", a.Heading.Dir)
	}
	if a.State() != StateStunned {
		t.Errorf("state = %v, want stunned", a.State())
	}
}

func TestUpdateAgentStunCountdown(t *testing.T) {
	tw := newTestWorld()
	rng := rand.New(rand.NewSource(1))
	a := tw.agent(components.Right, pos(5, 5))
	a.Vitals.Stunned = true
	a.Vitals.StunTimer = 2000
	foods := []components.Position{pos(0, 0)}

	res := UpdateAgent(a, 1500, foods, tw.occ, testRules(), rng)
	if res.Moved || res.Recovered {
		t.Fatalf("result = %+v during stun", res)
	}
	if a.Vitals.StunTimer != 500 {
		t.Errorf("stun timer = %v, want 500", a.Vitals.StunTimer)
	}
	if a.Heading.Dir != components.Right || a.Body.Head() != pos(5, 5) {
		t.Error("stunned agent changed heading or body")
	}

	res = UpdateAgent(a, 600, foods, tw.occ, testRules(), rng)
	if !res.Recovered || res.Moved {
		t.Fatalf("result = %+v, want recovery without move", res)
	}
	if a.Vitals.Stunned || a.Vitals.StunTimer != 0 {
		t.Errorf("vitals = %+v after recovery", *a.Vitals)
	}
	if a.Heading.Dir != components.Right {
		t.Errorf("heading = %v, recovery tick must not decide", a.Heading.Dir)
	}
}

// bump drives one recover-then-collide cycle against a fixed blocker.
func bump(t *testing.T, tw *testWorld, a Agent, rules Rules) StepResult {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	if a.Vitals.Stunned {
		UpdateAgent(a, rules.StunDurationMs, nil, tw.occ, rules, rng)
	}
	return UpdateAgent(a, rules.MoveIntervalMs, nil, tw.occ, rules, rng)
}

func TestUpdateAgentDeath(t *testing.T) {
	tests := []struct {
		name      string
		death     bool
		bumps     int
		wantAlive bool
	}{
		{"death enabled, two collisions", true, 2, true},
		{"death enabled, three collisions", true, 3, false},
		{"death disabled, six collisions", false, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWorld()
			rules := testRules()
			rules.DeathEnabled = tt.death
			a := tw.agent(components.Right, pos(5, 5))
			tw.agent(components.Down, pos(6, 5))

			var res StepResult
			for i := 0; i < tt.bumps; i++ {
				res = bump(t, tw, a, rules)
				if !res.Collided {
					t.Fatalf("bump %d did not collide", i+1)
				}
			}

			if a.Vitals.CollisionCount != tt.bumps {
				t.Errorf("collision count = %d, want %d", a.Vitals.CollisionCount, tt.bumps)
			}
			if a.Vitals.Alive != tt.wantAlive {
				t.Errorf("alive = %v, want %v", a.Vitals.Alive, tt.wantAlive)
			}
			if res.Died == tt.wantAlive {
				t.Errorf("last result Died = %v", res.Died)
			}
			if !tt.wantAlive && tw.occ.Count(pos(5, 5)) != 0 {
				t.Error("dead agent still in occupancy")
			}
		})
	}
}

func TestUpdateAgentDeadIsInert(t *testing.T) {
	tw := newTestWorld()
	a := tw.agent(components.Right, pos(5, 5))
	a.Vitals.Alive = false
	a.Motion.MoveTimer = 0

	res := UpdateAgent(a, 1000, []components.Position{pos(9, 5)}, tw.occ, testRules(), rand.New(rand.NewSource(1)))
	if res.Moved || res.Collided || a.Body.Head() != pos(5, 5) || a.Motion.MoveTimer != 0 {
		t.Errorf("dead agent changed: %+v", res)
	}
	if a.State() != StateDead {
		t.Errorf("state = %v, want dead", a.State())
	}
}

func TestGrowKeepsTail(t *testing.T) {
	tw := newTestWorld()
	rng := rand.New(rand.NewSource(1))
	rules := testRules()
	a := tw.agent(components.Right, pos(1, 5))
	Grow(a.Motion, 1)
	Grow(a.Motion, 1)
	Grow(a.Motion, 0)

	if a.Motion.GrowPending != 2 {
		t.Fatalf("grow pending = %d, want 2", a.Motion.GrowPending)
	}

	for i := 0; i < 4; i++ {
		res := UpdateAgent(a, rules.MoveIntervalMs, nil, tw.occ, rules, rng)
		if !res.Moved {
			t.Fatalf("step %d did not move", i)
		}
		if wantGrew := i < 2; res.Grew != wantGrew {
			t.Errorf("step %d grew = %v, want %v", i, res.Grew, wantGrew)
		}
	}

	if a.Body.Len() != 3 {
		t.Errorf("len = %d, want 3", a.Body.Len())
	}
	if a.Motion.GrowPending != 0 {
		t.Errorf("grow pending = %d, want 0", a.Motion.GrowPending)
	}
	want := []components.Position{pos(5, 5), pos(4, 5), pos(3, 5)}
	for i, p := range a.Body.Cells() {
		if p != want[i] {
			t.Errorf("cell %d = %v, want %v", i, p, want[i])
		}
		if tw.occ.Count(p) != 1 {
			t.Errorf("occupancy at %v = %d, want 1", p, tw.occ.Count(p))
		}
	}
	if tw.occ.Len() != 3 {
		t.Errorf("occupied cells = %d, want 3", tw.occ.Len())
	}
}

func TestSequentialVisibility(t *testing.T) {
	// Two agents race for (4,5). Whoever updates first wins it.
	for _, firstLeft := range []bool{true, false} {
		tw := newTestWorld()
		rng := rand.New(rand.NewSource(1))
		rules := testRules()
		left := tw.agent(components.Right, pos(3, 5))
		right := tw.agent(components.Left, pos(5, 5))

		order := []Agent{left, right}
		if !firstLeft {
			order = []Agent{right, left}
		}
		first := UpdateAgent(order[0], 100, nil, tw.occ, rules, rng)
		second := UpdateAgent(order[1], 100, nil, tw.occ, rules, rng)

		if !first.Moved || first.Head != pos(4, 5) {
			t.Errorf("firstLeft=%v: first mover result %+v", firstLeft, first)
		}
		if !second.Collided {
			t.Errorf("firstLeft=%v: second mover should see the new head and collide", firstLeft)
		}
	}
}

func TestHandleCollision(t *testing.T) {
	rules := testRules()
	v := &components.Vitals{Alive: true, CollisionCount: 2}
	if !HandleCollision(v, rules) {
		t.Error("third collision with death enabled should kill")
	}
	if !v.Stunned || v.StunTimer != rules.StunDurationMs {
		t.Errorf("vitals = %+v, want stunned", *v)
	}

	rules.DeathEnabled = false
	v = &components.Vitals{Alive: true, CollisionCount: 10}
	if HandleCollision(v, rules) || !v.Alive {
		t.Error("death disabled should never kill")
	}
}
