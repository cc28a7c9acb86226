package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/lukasminkov/creative-funding-hub/internal/core/port"
)

// Sweeper drives the lifecycle engine's sweep on a recurring timer. Each
// pass is independently safe, so an overlapping or repeated run is harmless;
// the engine's CAS commits make sweep workers contend cleanly with
// concurrent admin requests.
type Sweeper struct {
	svc      port.LifecycleUseCase
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper returns a sweeper ticking at the given interval.
func NewSweeper(svc port.LifecycleUseCase, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{svc: svc, interval: interval, logger: logger}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled. A failed pass is logged and retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	report, err := s.svc.Sweep(ctx)
	if err != nil {
		s.logger.Error("sweep pass failed", slog.Any("error", err))
		return
	}
	s.logger.Info("sweep pass finished",
		slog.Int("scanned", report.Scanned),
		slog.Int("auto_approved", len(report.AutoApproved)),
		slog.Int("frozen", len(report.Frozen)),
		slog.Int("skipped", report.Skipped))
}
