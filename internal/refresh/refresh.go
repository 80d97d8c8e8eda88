// Package refresh drives the live-updating replies: a sent message is
// re-rendered on a fixed cadence until the update budget is spent or the
// upstream reports a terminal state.
package refresh

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// TickFunc re-runs the fetch/render pipeline for one update. count is
// 1-based; total is the full budget. Returning true reports a terminal
// upstream state and stops the driver early. A failed fetch inside the tick
// should render a degraded update and return false, not skip the tick.
type TickFunc func(ctx context.Context, count, total int) (terminal bool)

// Config mirrors the stock command settings.
type Config struct {
	Interval    time.Duration
	MaxDuration time.Duration
}

// TotalUpdates is the tick budget: how many whole intervals fit in the
// maximum refresh duration.
func (c Config) TotalUpdates() int {
	if c.Interval <= 0 {
		return 0
	}
	return int(c.MaxDuration / c.Interval)
}

// Run ticks until the budget is exhausted, tick reports terminal, or the
// context is canceled. It blocks; callers start it on its own goroutine.
func Run(ctx context.Context, cfg Config, tick TickFunc) {
	total := cfg.TotalUpdates()
	if total <= 0 {
		return
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for count := 1; count <= total; count++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if tick(ctx, count, total) {
			log.Debugf("refresh terminated by upstream state after %d/%d updates", count, total)
			return
		}
	}
}
