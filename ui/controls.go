package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakes/config"
	"github.com/pthm-cable/snakes/game"
)

// SettingsPanel is the in-run panel for the live settings, toggled with H.
type SettingsPanel struct {
	renderer *Renderer
	ranges   config.UIConfig
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewSettingsPanel creates a settings panel, open if ranges.ShowSettings is set.
func NewSettingsPanel(ranges config.UIConfig, x, y, width int32) *SettingsPanel {
	return &SettingsPanel{
		renderer: NewRenderer(),
		ranges:   ranges,
		x:        x,
		y:        y,
		width:    width,
		height:   170,
		visible:  ranges.ShowSettings,
	}
}

// SetPosition updates the panel position.
func (c *SettingsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *SettingsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *SettingsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is on the visible panel.
func (c *SettingsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	bounds := rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height)}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, bounds)
}

// Draw renders the panel and applies slider changes to s.
// Death is shown but not editable because it is fixed for the run.
func (c *SettingsPanel) Draw(s *game.Settings, deathEnabled bool) {
	if !c.visible {
		return
	}

	r := c.renderer
	padding := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := c.x + padding
	y := r.DrawSectionHeader(x, c.y+padding, "Settings [H]")
	inner := c.width - padding*2

	s.MoveIntervalMs, y = r.Slider(x, y, inner, "Speed (ms per step)", s.MoveIntervalMs, c.ranges.MoveInterval)

	var food float64
	food, y = r.Slider(x, y, inner, "Food", float64(s.FoodCount), c.ranges.FoodCount)
	s.FoodCount = int(food)

	death := "off"
	if deathEnabled {
		death = "on"
	}
	r.DrawLabelValue(x, y, "Snake death", death+" (set at start)")
}
