package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	forceTicks     int
	handTicks      int
	gridLayouts    int
	controlChanges int
	droppedStart   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordForce records a tick where the pointer force was applied.
// fromHand is true when the pointer came from the detection feed.
func (c *Collector) RecordForce(fromHand bool) {
	c.forceTicks++
	if fromHand {
		c.handTicks++
	}
}

// RecordGridLayout records a grid reset.
func (c *Collector) RecordGridLayout() {
	c.gridLayouts++
}

// RecordControl records an accepted control change.
func (c *Collector) RecordControl() {
	c.controlChanges++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// FieldSample is the field state sampled at window end.
type FieldSample struct {
	Leaves int
	Size   float64
	Radius float64
	Speeds []float64
	// Dropped is the cumulative dropped detection frame count.
	Dropped int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample FieldSample) WindowStats {
	speed := ComputeSpeedStats(sample.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Leaves: sample.Leaves,
		Size:   sample.Size,
		Radius: sample.Radius,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,
		SpeedMax:  speed.Max,

		ForceTicks:     c.forceTicks,
		HandTicks:      c.handTicks,
		GridLayouts:    c.gridLayouts,
		ControlChanges: c.controlChanges,
		DroppedFrames:  sample.Dropped - c.droppedStart,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.forceTicks = 0
	c.handTicks = 0
	c.gridLayouts = 0
	c.controlChanges = 0
	c.droppedStart = sample.Dropped

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
