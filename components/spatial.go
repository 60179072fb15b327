package components

// Position is a cell on the integer board grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell one step from p in direction d.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Sub returns the coordinate-wise difference p - q.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// DistSq returns the squared Euclidean distance between p and q.
func (p Position) DistSq(q Position) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Direction is one of the four axis-aligned headings.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every heading in a fixed order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Delta returns the unit offset for d. Y grows downward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}
