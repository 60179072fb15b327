package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakes/components"
)

// FoodPool keeps an ordered set of food entities at random board cells.
// Spawns ignore agents.
type FoodPool struct {
	world  *ecs.World
	mapper *ecs.Map1[components.Food]
	items  []ecs.Entity
	board  Board
	rng    *rand.Rand
}

// NewFoodPool creates an empty pool.
func NewFoodPool(world *ecs.World, board Board, rng *rand.Rand) *FoodPool {
	return &FoodPool{
		world:  world,
		mapper: ecs.NewMap1[components.Food](world),
		board:  board,
		rng:    rng,
	}
}

// Resize grows the pool with randomly placed food or truncates it from the
// end until it holds exactly target items.
func (p *FoodPool) Resize(target int) (added, removed int) {
	if target < 0 {
		target = 0
	}
	for len(p.items) < target {
		f := components.Food{Pos: p.randomCell()}
		p.items = append(p.items, p.mapper.NewEntity(&f))
		added++
	}
	for len(p.items) > target {
		last := len(p.items) - 1
		p.world.RemoveEntity(p.items[last])
		p.items = p.items[:last]
		removed++
	}
	return added, removed
}

// Place appends food at a given cell.
func (p *FoodPool) Place(pos components.Position) ecs.Entity {
	f := components.Food{Pos: pos}
	e := p.mapper.NewEntity(&f)
	p.items = append(p.items, e)
	return e
}

// Respawn moves food to a new random cell.
func (p *FoodPool) Respawn(e ecs.Entity) components.Position {
	f := p.mapper.Get(e)
	f.Pos = p.randomCell()
	return f.Pos
}

// Clear removes all food.
func (p *FoodPool) Clear() {
	p.Resize(0)
}

// Len returns the number of food items.
func (p *FoodPool) Len() int {
	return len(p.items)
}

// Items returns the food entities in pool order. Callers must not modify it.
func (p *FoodPool) Items() []ecs.Entity {
	return p.items
}

// Pos returns the cell of a food entity.
func (p *FoodPool) Pos(e ecs.Entity) components.Position {
	return p.mapper.Get(e).Pos
}

// Positions appends every food cell to dst in pool order.
func (p *FoodPool) Positions(dst []components.Position) []components.Position {
	for _, e := range p.items {
		dst = append(dst, p.mapper.Get(e).Pos)
	}
	return dst
}

func (p *FoodPool) randomCell() components.Position {
	return components.Position{
		X: p.rng.Intn(p.board.Width),
		Y: p.rng.Intn(p.board.Height),
	}
}
