package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lukasminkov/creative-funding-hub/internal/core/domain"
	"github.com/lukasminkov/creative-funding-hub/internal/core/port"
	"github.com/lukasminkov/creative-funding-hub/internal/telemetry"
)

// Sweep applies every automatic transition that is due: pending
// pay-per-view submissions past their approval deadline are approved as
// SystemActor, and approved pay-per-view submissions whose view window has
// closed get their payout frozen. Evaluation is pure and runs on a small
// worker pool; every commit goes through the same CAS path as manual
// actions, so a concurrent admin decision wins or loses the race cleanly.
//
// One misconfigured campaign never aborts the pass: its submissions are
// logged and skipped, everything else proceeds.
func (s *LifecycleService) Sweep(ctx context.Context) (*port.SweepReport, error) {
	now := s.clock.Now()
	report := &port.SweepReport{StartedAt: now}

	pending, err := s.subs.ListPending(ctx, nil)
	if err != nil {
		return nil, err
	}
	freezable, err := s.subs.ListFreezable(ctx)
	if err != nil {
		return nil, err
	}
	report.Scanned = len(pending) + len(freezable)

	cache := newCampaignCache(s.campaigns)
	var mu sync.Mutex

	jobs := make(chan domain.Submission)
	var wg sync.WaitGroup
	workers := s.sweepWorkers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range jobs {
				c, cerr := cache.get(ctx, sub.CampaignID)
				if cerr != nil {
					s.logger.Warn("sweep: skipping submission",
						slog.String("submission_id", sub.ID),
						slog.String("campaign_id", sub.CampaignID),
						slog.Any("error", cerr))
					mu.Lock()
					report.Skipped++
					mu.Unlock()
					continue
				}
				switch domain.EvaluateDeadline(sub, *c, now).Action {
				case domain.AutoApprove:
					committed, aerr := s.approve(ctx, sub.ID, port.SystemActor)
					switch {
					case aerr == nil:
						mu.Lock()
						report.AutoApproved = append(report.AutoApproved, *committed)
						mu.Unlock()
					case errors.Is(aerr, domain.ErrConcurrentModification), errors.Is(aerr, domain.ErrInvalidTransition):
						// Someone else already resolved it; not an error.
						mu.Lock()
						report.Skipped++
						mu.Unlock()
					default:
						s.logger.Error("sweep: auto-approve failed",
							slog.String("submission_id", sub.ID),
							slog.Any("error", aerr))
						mu.Lock()
						report.Skipped++
						mu.Unlock()
					}
				case domain.ViewWindowClosed:
					committed, ferr := s.freeze(ctx, sub, *c)
					switch {
					case ferr == nil:
						mu.Lock()
						report.Frozen = append(report.Frozen, *committed)
						mu.Unlock()
					case errors.Is(ferr, domain.ErrConcurrentModification):
						mu.Lock()
						report.Skipped++
						mu.Unlock()
					default:
						s.logger.Error("sweep: freeze failed",
							slog.String("submission_id", sub.ID),
							slog.Any("error", ferr))
						mu.Lock()
						report.Skipped++
						mu.Unlock()
					}
				}
			}
		}()
	}

	for _, sub := range pending {
		jobs <- sub
	}
	for _, sub := range freezable {
		jobs <- sub
	}
	close(jobs)
	wg.Wait()

	telemetry.RecordSweep(len(report.AutoApproved), len(report.Frozen), report.Skipped)
	return report, nil
}

// freeze fixes the payable amount of an approved pay-per-view submission at
// the moment its view window closes. From then on the figure never
// recomputes, even if views keep changing upstream.
func (s *LifecycleService) freeze(ctx context.Context, sub domain.Submission, c domain.Campaign) (*domain.Submission, error) {
	if sub.FrozenAmount != nil {
		return &sub, nil
	}
	amount, err := domain.PayoutAmount(sub, c)
	if err != nil {
		return nil, err
	}
	next := sub
	next.FrozenAmount = &amount
	next.PaymentAmount = amount
	next.UpdatedAt = s.clock.Now()
	return s.subs.Commit(ctx, next, domain.StatusApproved)
}

// campaignCache memoizes campaign reads and validation results for the
// duration of one sweep pass.
type campaignCache struct {
	reader port.CampaignReader

	mu        sync.Mutex
	campaigns map[string]*domain.Campaign
	failures  map[string]error
}

func newCampaignCache(reader port.CampaignReader) *campaignCache {
	return &campaignCache{
		reader:    reader,
		campaigns: make(map[string]*domain.Campaign),
		failures:  make(map[string]error),
	}
}

func (cc *campaignCache) get(ctx context.Context, id string) (*domain.Campaign, error) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if c, ok := cc.campaigns[id]; ok {
		return c, nil
	}
	if err, ok := cc.failures[id]; ok {
		return nil, err
	}
	c, err := cc.reader.GetCampaign(ctx, id)
	if err == nil {
		err = c.Validate()
	}
	if err != nil {
		cc.failures[id] = err
		return nil, err
	}
	cc.campaigns[id] = c
	return c, nil
}
