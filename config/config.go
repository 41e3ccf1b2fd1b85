// Package config provides configuration loading and access for the leaf field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/leaves/detect"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all program configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Force     ForceConfig     `yaml:"force"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Detection DetectionConfig `yaml:"detection"`
	Controls  ControlsConfig  `yaml:"controls"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"` // Tick cadence; leaf motion is per frame, not per second
	Title     string `yaml:"title"`
}

// FieldConfig holds the initial leaf field parameters.
type FieldConfig struct {
	Count         int     `yaml:"count"`
	Size          float64 `yaml:"size"`
	Speed         float64 `yaml:"speed"`
	Depth         float64 `yaml:"depth"`          // z band is [-depth, +depth]
	EdgeMargin    string  `yaml:"edge_margin"`    // "half_size" or "none"
	InitialSpin   float64 `yaml:"initial_spin"`   // Magnitude of the spin vector at spawn
	DrawInfluence bool    `yaml:"draw_influence"` // Draw the influence ring around the pointer
	Seed          int64   `yaml:"seed"`           // 0 = time based
}

// ForceConfig holds pointer force parameters.
type ForceConfig struct {
	InfluenceRadius float64 `yaml:"influence_radius"`
	Gain            string  `yaml:"gain"`       // Named preset: gentle (2), strong (4), burst (10)
	GainValue       float64 `yaml:"gain_value"` // Overrides the preset when > 0
	SpinReset       float64 `yaml:"spin_reset"` // Spin components resample in [-spin_reset, spin_reset]
	MaxSpinBoost    float64 `yaml:"max_spin_boost"`
}

// GestureConfig holds gesture recognition thresholds.
type GestureConfig struct {
	MinScore float64 `yaml:"min_score"`
	Trigger  string  `yaml:"trigger"` // Gesture category that resets the field into a grid
}

// DetectionConfig holds the hand tracker feed settings.
type DetectionConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Addr       string  `yaml:"addr"`
	Path       string  `yaml:"path"`
	StaleAfter float64 `yaml:"stale_after"` // Seconds before the pointer falls back to the cursor
	ReadLimit  int64   `yaml:"read_limit"`
}

// ControlsConfig holds slider ranges for the controls panel.
type ControlsConfig struct {
	Visible   bool    `yaml:"visible"`
	MaxCount  int     `yaml:"max_count"`
	MinSize   float64 `yaml:"min_size"`
	MaxSize   float64 `yaml:"max_size"`
	MaxSpeed  float64 `yaml:"max_speed"`
	MaxRadius float64 `yaml:"max_radius"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of ticks per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Gain          float64 // Resolved force gain
	HalfSizeEdges bool    // Edge bounds inset by half the leaf size
	TickSeconds   float64       // 1 / TargetFPS
	TickDuration  time.Duration // TickSeconds as a wall-clock budget
	Trigger       detect.Gesture
}

// Named gain presets.
var gainPresets = map[string]float64{
	"gentle": 2,
	"strong": 4,
	"burst":  10,
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the field cannot start with.
func (c *Config) validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS)
	case c.Field.Count < 0:
		return fmt.Errorf("field.count must be >= 0, got %d", c.Field.Count)
	case c.Field.Size <= 0:
		return fmt.Errorf("field.size must be > 0, got %g", c.Field.Size)
	case c.Field.Speed < 0:
		return fmt.Errorf("field.speed must be >= 0, got %g", c.Field.Speed)
	case c.Field.Depth < 0:
		return fmt.Errorf("field.depth must be >= 0, got %g", c.Field.Depth)
	case c.Force.InfluenceRadius < 0:
		return fmt.Errorf("force.influence_radius must be >= 0, got %g", c.Force.InfluenceRadius)
	}
	if c.Field.EdgeMargin != "half_size" && c.Field.EdgeMargin != "none" {
		return fmt.Errorf("field.edge_margin must be half_size or none, got %q", c.Field.EdgeMargin)
	}
	if detect.ParseGesture(c.Gesture.Trigger) == detect.GestureNone {
		return fmt.Errorf("gesture.trigger: unknown gesture %q", c.Gesture.Trigger)
	}
	if c.Force.GainValue <= 0 {
		if _, ok := gainPresets[c.Force.Gain]; !ok {
			return fmt.Errorf("force.gain: unknown preset %q", c.Force.Gain)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Gain = c.Force.GainValue
	if c.Derived.Gain <= 0 {
		c.Derived.Gain = gainPresets[c.Force.Gain]
	}
	c.Derived.HalfSizeEdges = c.Field.EdgeMargin == "half_size"
	c.Derived.TickSeconds = 1.0 / float64(c.Screen.TargetFPS)
	c.Derived.TickDuration = time.Second / time.Duration(c.Screen.TargetFPS)
	c.Derived.Trigger = detect.ParseGesture(c.Gesture.Trigger)
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
