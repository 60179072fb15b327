package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakes/camera"
	"github.com/pthm-cable/snakes/components"
	"github.com/pthm-cable/snakes/game"
	"github.com/pthm-cable/snakes/systems"
)

// BoardView draws the board, food and agents through a camera.
type BoardView struct {
	renderer *Renderer
	foodBuf  []components.Position
}

// NewBoardView creates a board view.
func NewBoardView() *BoardView {
	return &BoardView{renderer: NewRenderer()}
}

// Draw renders the current board state. Dead agents are never drawn.
func (b *BoardView) Draw(cam *camera.Camera, g *game.Game) {
	theme := b.renderer.Theme
	board := g.Board()

	x0, y0 := cam.WorldToScreen(0, 0)
	rl.DrawRectangleV(
		rl.Vector2{X: x0, Y: y0},
		rl.Vector2{X: float32(board.Width) * cam.Zoom, Y: float32(board.Height) * cam.Zoom},
		theme.BoardBg,
	)

	// Cells stay at least one pixel wide when zoomed out
	size := max(cam.Zoom, 1)

	b.foodBuf = g.Foods(b.foodBuf[:0])
	for _, p := range b.foodBuf {
		b.drawCell(cam, p, size, theme.FoodColor)
	}

	for a := range g.Agents() {
		body, head := theme.AgentColor, theme.HeadColor
		if a.State == systems.StateStunned {
			body, head = theme.StunnedColor, theme.StunnedColor
		}
		color := head
		for p := range a.Body.All() {
			b.drawCell(cam, p, size, color)
			color = body
		}
	}
}

func (b *BoardView) drawCell(cam *camera.Camera, p components.Position, size float32, color rl.Color) {
	wx, wy := float32(p.X), float32(p.Y)
	if !cam.IsVisible(wx, wy, 1) {
		return
	}
	sx, sy := cam.WorldToScreen(wx, wy)
	rl.DrawRectangleV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: size, Y: size}, color)
}
