package game

import (
	"github.com/pthm-cable/leaves/config"
	"github.com/pthm-cable/leaves/systems"
	"github.com/pthm-cable/leaves/telemetry"
)

// Options holds configuration for game initialization.
type Options struct {
	Seed           int64          // RNG seed; 0 falls back to field.seed, then the clock
	Headless       bool           // No window, input or drawing
	LogStats       bool           // Log window stats and events via slog
	StatsWindowSec float64        // Overrides telemetry.stats_window when > 0
	OutputDir      string         // CSV output directory; empty disables output
	StepsPerUpdate int            // Ticks per UpdateHeadless call
	Config         *config.Config // nil uses config.Cfg()

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// fieldSettings builds the field's settings from the loaded config.
func fieldSettings(cfg *config.Config) systems.Settings {
	return systems.Settings{
		Count:           cfg.Field.Count,
		Size:            cfg.Field.Size,
		Speed:           cfg.Field.Speed,
		InfluenceRadius: cfg.Force.InfluenceRadius,
		Gain:            cfg.Derived.Gain,
		Depth:           cfg.Field.Depth,
		HalfSizeEdges:   cfg.Derived.HalfSizeEdges,
		InitialSpin:     cfg.Field.InitialSpin,
		SpinReset:       cfg.Force.SpinReset,
		MaxSpinBoost:    cfg.Force.MaxSpinBoost,
		DrawInfluence:   cfg.Field.DrawInfluence,
	}
}
