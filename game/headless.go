package game

import (
	"context"
	"log/slog"
	"time"
)

// RunHeadless calls UpdateHeadless until ctx is done or maxTicks ticks have run
// (0 = unlimited). A positive interval paces updates to wall-clock time, which
// keeps detection staleness meaningful while a feed is attached.
func (g *Game) RunHeadless(ctx context.Context, maxTicks int, interval time.Duration) {
	var pace <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		pace = ticker.C
	}

	for ctx.Err() == nil {
		if pace != nil {
			select {
			case <-ctx.Done():
				return
			case <-pace:
			}
		}

		g.UpdateHeadless()

		if maxTicks > 0 && int(g.tick) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.tick)
			return
		}
	}
}
