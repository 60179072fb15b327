package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakes/components"
)

// Rules are the per-tick parameters an agent update needs.
type Rules struct {
	Board          Board
	MoveIntervalMs float64
	StunDurationMs float64
	DeathAfter     int  // collisions that kill when death is enabled
	DeathEnabled   bool // fixed for a run
}

// AgentState is the lifecycle state of an agent.
type AgentState uint8

const (
	StateMoving AgentState = iota
	StateStunned
	StateDead
)

func (s AgentState) String() string {
	switch s {
	case StateMoving:
		return "moving"
	case StateStunned:
		return "stunned"
	case StateDead:
		return "dead"
	}
	return "unknown"
}

// Agent bundles the components of one snake entity.
type Agent struct {
	Entity  ecs.Entity
	Body    components.Body
	Heading *components.Heading
	Motion  *components.Motion
	Vitals  *components.Vitals
}

// State derives the lifecycle state from vitals.
func (a Agent) State() AgentState {
	switch {
	case !a.Vitals.Alive:
		return StateDead
	case a.Vitals.Stunned:
		return StateStunned
	default:
		return StateMoving
	}
}

// StepResult reports what an update did.
type StepResult struct {
	Moved     bool
	Grew      bool // tail kept on this move
	Collided  bool
	Died      bool
	Recovered bool // stun ended
	Head      components.Position
}

// UpdateAgent advances one agent by elapsedMs.
// occ must reflect the current bodies of all living agents; it is updated
// in place so agents processed later in the same tick see this move.
func UpdateAgent(a Agent, elapsedMs float64, foods []components.Position, occ *Occupancy, rules Rules, rng *rand.Rand) StepResult {
	res := StepResult{Head: a.Body.Head()}

	switch a.State() {
	case StateDead:
		return res

	case StateStunned:
		a.Vitals.StunTimer -= elapsedMs
		if a.Vitals.StunTimer <= 0 {
			a.Vitals.StunTimer = 0
			a.Vitals.Stunned = false
			res.Recovered = true
		}
		return res
	}

	a.Motion.MoveTimer -= elapsedMs
	if a.Motion.MoveTimer > 0 {
		return res
	}
	a.Motion.MoveTimer = rules.MoveIntervalMs

	steer := Steer{
		Self:    a.Entity,
		Body:    a.Body,
		Heading: a.Heading.Dir,
		Growing: a.Motion.GrowPending > 0,
	}
	a.Heading.Dir = DecideDirection(steer, foods, rules.Board, occ, rng)

	candidate := a.Body.Head().Add(a.Heading.Dir)
	if occ.OccupiedByOther(candidate, a.Entity) {
		res.Collided = true
		if HandleCollision(a.Vitals, rules) {
			res.Died = true
			occ.RemoveBody(a.Entity, a.Body)
		}
		return res
	}

	a.Body.PushHead(candidate)
	occ.Insert(a.Entity, candidate)
	if a.Motion.GrowPending > 0 {
		a.Motion.GrowPending--
		res.Grew = true
	} else {
		occ.Remove(a.Entity, a.Body.PopTail())
	}

	res.Moved = true
	res.Head = candidate
	return res
}

// HandleCollision stuns the agent and reports whether the collision killed it.
func HandleCollision(v *components.Vitals, rules Rules) bool {
	v.Stunned = true
	v.StunTimer = rules.StunDurationMs
	v.CollisionCount++
	if v.CollisionCount >= rules.DeathAfter && rules.DeathEnabled {
		v.Alive = false
		return true
	}
	return false
}

// Grow owes the agent n more tail-keeping steps.
func Grow(m *components.Motion, n int) {
	if n > 0 {
		m.GrowPending += n
	}
}
