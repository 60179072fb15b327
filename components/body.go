package components

import (
	"iter"

	"github.com/gammazero/deque"
)

// Body is an agent's occupied cells, head first and tail last.
// Both ends change every move, so cells live in a ring-buffer deque.
type Body struct {
	cells *deque.Deque[Position]
}

// NewBody creates a one-cell body at head.
func NewBody(head Position) Body {
	d := &deque.Deque[Position]{}
	d.PushFront(head)
	return Body{cells: d}
}

// Head returns the first cell.
func (b Body) Head() Position { return b.cells.Front() }

// Tail returns the last cell.
func (b Body) Tail() Position { return b.cells.Back() }

// Len returns the number of cells.
func (b Body) Len() int { return b.cells.Len() }

// At returns the i-th cell counted from the head.
func (b Body) At(i int) Position { return b.cells.At(i) }

// PushHead prepends a new head cell.
func (b Body) PushHead(p Position) { b.cells.PushFront(p) }

// PopTail removes and returns the tail cell.
func (b Body) PopTail() Position { return b.cells.PopBack() }

// Contains reports whether any cell equals p.
func (b Body) Contains(p Position) bool {
	return b.cells.Index(func(c Position) bool { return c == p }) >= 0
}

// All iterates cells from head to tail.
func (b Body) All() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for i := 0; i < b.cells.Len(); i++ {
			if !yield(b.cells.At(i)) {
				return
			}
		}
	}
}

// Cells copies the body into a new slice, head first.
func (b Body) Cells() []Position {
	out := make([]Position, 0, b.cells.Len())
	for p := range b.All() {
		out = append(out, p)
	}
	return out
}
