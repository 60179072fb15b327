package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakes/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	RunID        string
	Seed         int64
	Alive        int
	Stunned      int
	Food         int
	Tick         int32
	SimTimeSec   float64
	FPS          int32
	DeathEnabled bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	r.DrawPanel(5, 5, 330, 118)

	rl.DrawText("Snakes", 15, 12, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Alive: %d | Stunned: %d | Food: %d", data.Alive, data.Stunned, data.Food),
		15, 37, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.0fs | FPS: %d", data.Tick, data.SimTimeSec, data.FPS),
		15, 57, 16, rl.LightGray,
	)

	death := "Death: off"
	if data.DeathEnabled {
		death = "Death: on"
	}
	rl.DrawText(death, 15, 77, 14, rl.Yellow)
	if len(data.RunID) >= 8 {
		rl.DrawText(fmt.Sprintf("run %s seed %d", data.RunID[:8], data.Seed), 100, 77, 14, rl.Gray)
	}

	var stunned float32
	if data.Alive > 0 {
		stunned = float32(data.Stunned) / float32(data.Alive)
	}
	r.DrawBar(15, 97, "Stunned", stunned, 310)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the tick phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	p.renderer.DrawPanel(x-8, y-8, 280, int32(len(telemetry.Phases))*14+70)

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg tick: %s", stats.AvgTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}

	if stats.RSSBytes > 0 {
		rl.DrawText(fmt.Sprintf("RSS: %.1f MB | CPU: %.0f%%", float64(stats.RSSBytes)/(1<<20), stats.CPUPercent), x, y+4, 12, rl.Gray)
	}
}
