package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakes/config"
	"github.com/pthm-cable/snakes/game"
)

// Menu is the start screen where a run is configured.
type Menu struct {
	renderer *Renderer
	ranges   config.UIConfig
}

// NewMenu creates a menu over the given slider ranges.
func NewMenu(ranges config.UIConfig) *Menu {
	return &Menu{renderer: NewRenderer(), ranges: ranges}
}

// Draw renders the menu centred on screen, editing s in place.
// Returns true when Start was pressed.
func (m *Menu) Draw(s *game.Settings, screenW, screenH int32) bool {
	r := m.renderer
	const width, height = 420, 330

	px := (screenW - width) / 2
	py := (screenH - height) / 2
	r.DrawPanel(px, py, width, height)

	x := px + 20
	inner := int32(width - 40)

	rl.DrawText("Snakes", x, py+16, 28, rl.White)
	y := py + 60

	s.MoveIntervalMs, y = r.Slider(x, y, inner, "Speed (ms per step)", s.MoveIntervalMs, m.ranges.MoveInterval)

	var v float64
	v, y = r.Slider(x, y, inner, "Food Spawn", float64(s.FoodCount), m.ranges.FoodCount)
	s.FoodCount = int(v)

	v, y = r.Slider(x, y, inner, "Num Snakes", float64(s.AgentCount), m.ranges.AgentCount)
	s.AgentCount = int(v)

	s.DeathEnabled, y = r.CheckBox(x, y, "Snake Death", s.DeathEnabled)

	start := r.Button(x, y+6, inner, 36, "Start")
	rl.DrawText("Esc to quit", x, py+height-22, 12, rl.Gray)
	return start
}
