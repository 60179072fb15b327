// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Board      BoardConfig      `yaml:"board"`
	Simulation SimulationConfig `yaml:"simulation"`
	UI         UIConfig         `yaml:"ui"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// BoardConfig holds the grid size in cells.
// The board can be larger than the screen; the camera handles the viewport.
type BoardConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// SimulationConfig holds run defaults and fixed rules.
type SimulationConfig struct {
	MoveIntervalMs       float64 `yaml:"move_interval_ms"`
	FoodCount            int     `yaml:"food_count"`
	AgentCount           int     `yaml:"agent_count"`
	DeathEnabled         bool    `yaml:"death_enabled"`
	StunDurationMs       float64 `yaml:"stun_duration_ms"`
	DeathAfterCollisions int     `yaml:"death_after_collisions"`
	HeadlessStepMs       float64 `yaml:"headless_step_ms"` // elapsed time fed per headless tick
}

// SliderRange bounds a menu slider.
type SliderRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Clamp limits v to the range.
func (r SliderRange) Clamp(v float64) float64 {
	return max(r.Min, min(v, r.Max))
}

// UIConfig holds widget ranges for the menu and settings panel.
type UIConfig struct {
	MoveInterval SliderRange `yaml:"move_interval"`
	FoodCount    SliderRange `yaml:"food_count"`
	AgentCount   SliderRange `yaml:"agent_count"`
	ShowSettings bool        `yaml:"show_settings"` // settings panel open at launch
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindowSec      float64 `yaml:"stats_window_sec"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PopulationCrash PopulationCrashConfig `yaml:"population_crash"`
	Gridlock        GridlockConfig        `yaml:"gridlock"`
	FeedingFrenzy   FeedingFrenzyConfig   `yaml:"feeding_frenzy"`
}

// PopulationCrashConfig holds population crash detection parameters.
type PopulationCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// GridlockConfig holds gridlock detection parameters.
type GridlockConfig struct {
	StunnedShare float64 `yaml:"stunned_share"` // stunned / alive at window end
	MinAlive     int     `yaml:"min_alive"`
}

// FeedingFrenzyConfig holds feeding spike detection parameters.
type FeedingFrenzyConfig struct {
	Multiplier float64 `yaml:"multiplier"`
	MinEats    int     `yaml:"min_eats"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	BoardW    int
	BoardH    int
	BoardW32  float32
	BoardH32  float32
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Board dimensions default to screen size if not specified
	w := c.Board.Width
	if w == 0 {
		w = c.Screen.Width
	}
	h := c.Board.Height
	if h == 0 {
		h = c.Screen.Height
	}
	c.Derived.BoardW = w
	c.Derived.BoardH = h
	c.Derived.BoardW32 = float32(w)
	c.Derived.BoardH32 = float32(h)
}

func (c *Config) validate() error {
	var errs []error
	if c.Derived.BoardW <= 0 || c.Derived.BoardH <= 0 {
		errs = append(errs, fmt.Errorf("board size %dx%d must be positive", c.Derived.BoardW, c.Derived.BoardH))
	}
	if c.Simulation.MoveIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("simulation.move_interval_ms %v must be positive", c.Simulation.MoveIntervalMs))
	}
	if c.Simulation.StunDurationMs <= 0 {
		errs = append(errs, fmt.Errorf("simulation.stun_duration_ms %v must be positive", c.Simulation.StunDurationMs))
	}
	if c.Simulation.DeathAfterCollisions < 1 {
		errs = append(errs, fmt.Errorf("simulation.death_after_collisions %d must be at least 1", c.Simulation.DeathAfterCollisions))
	}
	if c.Simulation.FoodCount < 0 || c.Simulation.AgentCount < 0 {
		errs = append(errs, errors.New("simulation food and agent counts must not be negative"))
	}
	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
