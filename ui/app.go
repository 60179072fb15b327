package ui

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakes/camera"
	"github.com/pthm-cable/snakes/config"
	"github.com/pthm-cable/snakes/game"
)

const controlsLegend = "Drag: pan | Wheel: zoom | Home: reset view | H: settings | P: perf | Esc: menu"

// Screen is the front end state.
type Screen uint8

const (
	ScreenMenu Screen = iota
	ScreenRun
)

// App drives the windowed front end: menu, run view and input.
type App struct {
	cfg  *config.Config
	game *game.Game
	cam  *camera.Camera
	drag camera.Drag

	renderer  *Renderer
	menu      *Menu
	settings  *SettingsPanel
	hud       *HUD
	perfPanel *PerfPanel
	board     *BoardView

	screen   Screen
	live     game.Settings
	showPerf bool
	quit     bool
}

// NewApp creates the front end over g, starting at the menu.
// Call after rl.InitWindow.
func NewApp(cfg *config.Config, g *game.Game, initial game.Settings) *App {
	return &App{
		cfg:       cfg,
		game:      g,
		cam:       camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Derived.BoardW32, cfg.Derived.BoardH32),
		renderer:  NewRenderer(),
		menu:      NewMenu(cfg.UI),
		settings:  NewSettingsPanel(cfg.UI, int32(cfg.Screen.Width)-330, 10, 320),
		hud:       NewHUD(),
		perfPanel: NewPerfPanel(18, 140),
		board:     NewBoardView(),
		live:      initial,
	}
}

// ShouldQuit reports whether Escape was pressed on the menu.
func (a *App) ShouldQuit() bool {
	return a.quit
}

// Update handles input and advances the run by the last frame time.
func (a *App) Update() {
	a.game.RecordFrame()

	sw, sh := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	a.cam.Resize(sw, sh)
	a.settings.SetPosition(int32(sw)-330, 10)

	if a.screen == ScreenMenu {
		if rl.IsKeyPressed(rl.KeyEscape) {
			a.quit = true
		}
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) || !a.game.Running() {
		a.stopRun()
		return
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.settings.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.showPerf = !a.showPerf
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		a.cam.Reset()
	}

	mouse := rl.GetMousePosition()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.cam.ZoomAt(camera.WheelZoomFactor(wheel), mouse.X, mouse.Y)
	}
	dx, dy := a.drag.Update(mouse.X, mouse.Y,
		rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		rl.IsMouseButtonDown(rl.MouseButtonLeft),
		a.settings.Contains(mouse.X, mouse.Y),
	)
	if dx != 0 || dy != 0 {
		a.cam.Pan(dx, dy)
	}

	a.game.Tick(float64(rl.GetFrameTime())*1000, a.live)
}

// Draw renders the current screen.
func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(a.renderer.Theme.Background)
	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())

	if a.screen == ScreenMenu {
		if a.menu.Draw(&a.live, sw, sh) {
			a.startRun()
		}
		return
	}

	a.board.Draw(a.cam, a.game)
	a.hud.Draw(HUDData{
		RunID:        a.game.RunID(),
		Seed:         a.game.Seed(),
		Alive:        a.game.AgentCount(),
		Stunned:      a.game.StunnedCount(),
		Food:         a.game.FoodCount(),
		Tick:         a.game.Ticks(),
		SimTimeSec:   a.game.SimTimeMs() / 1000,
		FPS:          rl.GetFPS(),
		DeathEnabled: a.game.DeathEnabled(),
	})
	a.settings.Draw(&a.live, a.game.DeathEnabled())
	if a.showPerf {
		a.perfPanel.Draw(a.game.PerfStats())
	}
	a.hud.DrawControls(sh, controlsLegend)
}

func (a *App) startRun() {
	if err := a.game.Start(a.live); err != nil {
		slog.Error("failed to start run", "error", err)
		return
	}
	a.cam.Reset()
	a.screen = ScreenRun
}

func (a *App) stopRun() {
	if err := a.game.Close(); err != nil {
		slog.Error("failed to close run", "error", err)
	}
	a.screen = ScreenMenu
}
