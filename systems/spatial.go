// Package systems provides the per-tick rules of the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakes/components"
)

// Board is the bounded playing field in cells.
type Board struct {
	Width, Height int
}

// Contains reports whether p lies on the board.
func (b Board) Contains(p components.Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Occupancy indexes which living agents cover each cell.
// A cell can hold the same entity more than once when a body overlaps itself,
// so each entry is a multiset and Remove drops one instance.
type Occupancy struct {
	cells map[components.Position][]ecs.Entity
}

// NewOccupancy creates an empty index.
func NewOccupancy() *Occupancy {
	return &Occupancy{cells: make(map[components.Position][]ecs.Entity)}
}

// Clear removes all entries.
func (o *Occupancy) Clear() {
	clear(o.cells)
}

// Insert records e at p.
func (o *Occupancy) Insert(e ecs.Entity, p components.Position) {
	o.cells[p] = append(o.cells[p], e)
}

// Remove drops one record of e at p.
func (o *Occupancy) Remove(e ecs.Entity, p components.Position) {
	list := o.cells[p]
	for i, x := range list {
		if x != e {
			continue
		}
		list[i] = list[len(list)-1]
		list = list[:len(list)-1]
		if len(list) == 0 {
			delete(o.cells, p)
		} else {
			o.cells[p] = list
		}
		return
	}
}

// InsertBody records every cell of body for e.
func (o *Occupancy) InsertBody(e ecs.Entity, body components.Body) {
	for p := range body.All() {
		o.Insert(e, p)
	}
}

// RemoveBody drops every cell of body for e.
func (o *Occupancy) RemoveBody(e ecs.Entity, body components.Body) {
	for p := range body.All() {
		o.Remove(e, p)
	}
}

// OccupiedByOther reports whether any entity other than self covers p.
func (o *Occupancy) OccupiedByOther(p components.Position, self ecs.Entity) bool {
	for _, e := range o.cells[p] {
		if e != self {
			return true
		}
	}
	return false
}

// Count returns the number of records at p.
func (o *Occupancy) Count(p components.Position) int {
	return len(o.cells[p])
}

// Len returns the number of occupied cells.
func (o *Occupancy) Len() int {
	return len(o.cells)
}
