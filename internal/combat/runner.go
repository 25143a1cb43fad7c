package combat

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner drives the director at a fixed tick interval. All agent mutation
// happens on the Start goroutine, which is what makes the director's
// single-threaded contract hold in the running server.
type Runner struct {
	director *Director
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

const defaultTickInterval = 50 * time.Millisecond

// NewRunner creates a runner. interval <= 0 falls back to 50ms.
func NewRunner(director *Director, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = defaultTickInterval
	}
	return &Runner{
		director: director,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the tick loop until the context is cancelled or Stop is
// called. Fixed timestep: every tick advances the simulation by exactly
// the configured interval.
func (r *Runner) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	dt := r.interval.Seconds()
	slog.Info("combat tick loop started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("combat tick loop stopping")
			return ctx.Err()

		case <-r.stopCh:
			slog.Info("combat tick loop stopped")
			return nil

		case <-ticker.C:
			r.director.Tick(dt)
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}
