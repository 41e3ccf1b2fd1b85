package game

import (
	"log/slog"

	"github.com/pthm-cable/leaves/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	settings := g.field.Settings()
	stats := g.collector.Flush(g.tick, telemetry.FieldSample{
		Leaves:  g.field.Len(),
		Size:    settings.Size,
		Radius:  settings.InfluenceRadius,
		Speeds:  g.field.Speeds(),
		Dropped: int(g.latest.Dropped()),
	})
	perfStats := g.perfCollector.Flush()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// recordEvent logs and writes a discrete field event.
func (g *Game) recordEvent(e telemetry.Event) {
	if g.logStats {
		e.LogEvent()
	}
	if err := g.outputManager.WriteEvent(e); err != nil {
		slog.Error("failed to write event", "error", err)
	}
}
