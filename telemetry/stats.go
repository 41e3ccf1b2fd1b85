package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Field state at window end
	Leaves int     `csv:"leaves"`
	Size   float64 `csv:"size"`
	Radius float64 `csv:"radius"`

	// Speed distribution (sampled at window end).
	// Pointer pushes accumulate without a clamp, so the tail can grow.
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Events during window
	ForceTicks     int `csv:"force_ticks"`
	HandTicks      int `csv:"hand_ticks"`
	GridLayouts    int `csv:"grid_layouts"`
	ControlChanges int `csv:"control_changes"`
	DroppedFrames  int `csv:"dropped_frames"`
}

// Percentile returns the p-th quantile of a sorted slice using gonum's linear
// interpolation of the empirical distribution. p is clamped to [0, 1].
// Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(math.Max(0, math.Min(1, p)), stat.LinInterp, sorted, nil)
}

// SpeedStats summarises a set of leaf speeds.
type SpeedStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeSpeedStats calculates mean, population std, percentiles and max.
func ComputeSpeedStats(values []float64) SpeedStats {
	if len(values) == 0 {
		return SpeedStats{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return SpeedStats{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  floats.Max(sorted),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("leaves", s.Leaves),
		slog.Float64("size", s.Size),
		slog.Float64("radius", s.Radius),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Int("force_ticks", s.ForceTicks),
		slog.Int("hand_ticks", s.HandTicks),
		slog.Int("grid_layouts", s.GridLayouts),
		slog.Int("control_changes", s.ControlChanges),
		slog.Int("dropped_frames", s.DroppedFrames),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"leaves", s.Leaves,
		"speed_mean", s.SpeedMean,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"force_ticks", s.ForceTicks,
		"hand_ticks", s.HandTicks,
		"grid_layouts", s.GridLayouts,
		"control_changes", s.ControlChanges,
		"dropped_frames", s.DroppedFrames,
	)
}
