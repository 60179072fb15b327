package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakes/components"
)

// Steer is the agent state a direction decision reads.
type Steer struct {
	Self    ecs.Entity
	Body    components.Body
	Heading components.Direction
	Growing bool // tail stays put on the next step
}

// IsSafe reports whether stepping in d lands on a free in-bounds cell.
// Other living agents' bodies block. The agent's own body blocks too,
// except its tail, which vacates on the step unless growth is pending.
func IsSafe(s Steer, d components.Direction, board Board, occ *Occupancy) bool {
	candidate := s.Body.Head().Add(d)
	if !board.Contains(candidate) {
		return false
	}
	if occ.OccupiedByOther(candidate, s.Self) {
		return false
	}

	limit := s.Body.Len() - 1
	if s.Growing {
		limit = s.Body.Len()
	}
	for i := 0; i < limit; i++ {
		if s.Body.At(i) == candidate {
			return false
		}
	}
	return true
}

// NearestFood returns the food closest to head. Ties keep the earlier item.
func NearestFood(head components.Position, foods []components.Position) (components.Position, bool) {
	if len(foods) == 0 {
		return components.Position{}, false
	}
	best := foods[0]
	bestDist := head.DistSq(best)
	for _, f := range foods[1:] {
		if d := head.DistSq(f); d < bestDist {
			best, bestDist = f, d
		}
	}
	return best, true
}

// AxisHeadings splits a difference vector into a preferred heading along the
// dominant axis and an alternate along the other one. Ties favour the y axis.
// A zero component on the alternate axis resolves to its positive direction.
func AxisHeadings(diff components.Position) (preferred, alternate components.Direction) {
	if abs(diff.X) > abs(diff.Y) {
		return horizontal(diff.X), vertical(diff.Y)
	}
	return vertical(diff.Y), horizontal(diff.X)
}

// DecideDirection picks the heading for the next step: greedy toward the
// nearest food, gated by IsSafe.
func DecideDirection(s Steer, foods []components.Position, board Board, occ *Occupancy, rng *rand.Rand) components.Direction {
	head := s.Body.Head()
	target, ok := NearestFood(head, foods)
	if !ok {
		return s.Heading
	}
	diff := target.Sub(head)
	if diff == (components.Position{}) {
		return s.Heading
	}

	// Keep going straight while it still closes the gap
	if IsSafe(s, s.Heading, board, occ) && head.Add(s.Heading).DistSq(target) < head.DistSq(target) {
		return s.Heading
	}

	preferred, alternate := AxisHeadings(diff)
	if IsSafe(s, preferred, board, occ) {
		return preferred
	}
	if IsSafe(s, alternate, board, occ) {
		return alternate
	}

	var safe [2]components.Direction
	n := 0
	for _, d := range components.Directions {
		if d == preferred || d == alternate {
			continue
		}
		if IsSafe(s, d, board, occ) {
			safe[n] = d
			n++
		}
	}
	if n == 0 {
		return s.Heading
	}
	return safe[rng.Intn(n)]
}

func horizontal(dx int) components.Direction {
	if dx < 0 {
		return components.Left
	}
	return components.Right
}

func vertical(dy int) components.Direction {
	if dy < 0 {
		return components.Up
	}
	return components.Down
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
