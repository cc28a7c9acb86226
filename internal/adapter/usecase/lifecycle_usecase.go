package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lukasminkov/creative-funding-hub/internal/core/domain"
	"github.com/lukasminkov/creative-funding-hub/internal/core/port"
	"github.com/lukasminkov/creative-funding-hub/internal/telemetry"
)

// LifecycleService is the single stateful component of the engine. It
// applies admin actions and scheduled sweeps to submissions, enforcing the
// state machine, and appends a ledger entry exactly once per paid
// submission. Every mutation goes through the store's compare-and-swap
// Commit, so concurrent writers contend safely.
type LifecycleService struct {
	campaigns port.CampaignReader
	subs      port.SubmissionStore
	ledger    port.PaymentLedger
	clock     port.Clock
	logger    *slog.Logger

	// sweepWorkers bounds the parallelism of a sweep pass. Evaluation is
	// pure; only the CAS commits contend.
	sweepWorkers int
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NewLifecycleService wires the controller with its collaborators. A nil
// clock falls back to the system clock; a nil logger falls back to
// slog.Default.
func NewLifecycleService(campaigns port.CampaignReader, subs port.SubmissionStore, ledger port.PaymentLedger, clock port.Clock, logger *slog.Logger) *LifecycleService {
	if clock == nil {
		clock = systemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LifecycleService{
		campaigns:    campaigns,
		subs:         subs,
		ledger:       ledger,
		clock:        clock,
		logger:       logger,
		sweepWorkers: 4,
	}
}

// SetSweepWorkers overrides the sweep worker count. Values below one are
// ignored.
func (s *LifecycleService) SetSweepWorkers(n int) {
	if n > 0 {
		s.sweepWorkers = n
	}
}

// Approve moves a pending submission to approved and stamps its initial
// payable amount from the payout calculator.
func (s *LifecycleService) Approve(ctx context.Context, submissionID, actorID string) (*domain.Submission, error) {
	return s.approve(ctx, submissionID, actorID)
}

func (s *LifecycleService) approve(ctx context.Context, submissionID, actorID string) (*domain.Submission, error) {
	sub, err := s.subs.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: cannot approve submission %s in status %s", domain.ErrInvalidTransition, sub.ID, sub.Status)
	}
	c, err := s.campaigns.GetCampaign(ctx, sub.CampaignID)
	if err != nil {
		return nil, err
	}
	amount, err := domain.PayoutAmount(*sub, *c)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	next := *sub
	next.Status = domain.StatusApproved
	next.PaymentAmount = amount
	next.DecidedBy = actorID
	next.DecidedAt = &now
	next.UpdatedAt = now

	committed, err := s.subs.Commit(ctx, next, domain.StatusPending)
	if err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) {
			telemetry.RecordCASConflict()
		}
		return nil, err
	}
	telemetry.RecordTransition(string(domain.StatusPending), string(domain.StatusApproved), actorKind(actorID))
	return committed, nil
}

// Deny moves a pending submission to rejected. The reason is mandatory:
// rejections are surfaced to creators and an empty explanation is not
// actionable.
func (s *LifecycleService) Deny(ctx context.Context, submissionID, actorID, reason string) (*domain.Submission, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: denial reason must not be empty", domain.ErrValidation)
	}
	sub, err := s.subs.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: cannot deny submission %s in status %s", domain.ErrInvalidTransition, sub.ID, sub.Status)
	}

	now := s.clock.Now()
	next := *sub
	next.Status = domain.StatusRejected
	next.DecisionReason = strings.TrimSpace(reason)
	next.DecidedBy = actorID
	next.DecidedAt = &now
	next.UpdatedAt = now

	// A denial losing the race against a sweep auto-approval must fail
	// loudly rather than flip into an approval behind the admin's back.
	committed, err := s.subs.Commit(ctx, next, domain.StatusPending)
	if err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) {
			telemetry.RecordCASConflict()
		}
		return nil, err
	}
	telemetry.RecordTransition(string(domain.StatusPending), string(domain.StatusRejected), actorKind(actorID))
	return committed, nil
}

// Payout issues the payment for an approved submission and moves it to
// paid. The ledger append happens before the status commit and is
// idempotent on submission id, so a crash or a lost race between the two
// steps can never duplicate a payment: retries converge on the same record.
func (s *LifecycleService) Payout(ctx context.Context, submissionID, actorID string) (*domain.PaymentRecord, error) {
	sub, err := s.subs.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status == domain.StatusPaid {
		return s.ledger.PaymentBySubmission(ctx, sub.ID)
	}
	if sub.Status != domain.StatusApproved {
		return nil, fmt.Errorf("%w: cannot pay out submission %s in status %s", domain.ErrInvalidTransition, sub.ID, sub.Status)
	}
	c, err := s.campaigns.GetCampaign(ctx, sub.CampaignID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	next := *sub
	if sub.CampaignType == domain.CampaignPayPerView {
		switch domain.EvaluateDeadline(*sub, *c, now).Action {
		case domain.ViewWindowOpen:
			return nil, fmt.Errorf("%w: submission %s view window is still open", domain.ErrInvalidTransition, sub.ID)
		case domain.ViewWindowClosed:
			if next.FrozenAmount == nil {
				amount, perr := domain.PayoutAmount(next, *c)
				if perr != nil {
					return nil, perr
				}
				next.FrozenAmount = &amount
				next.PaymentAmount = amount
			}
		default:
			// An approved pay-per-view submission always sits on one side of
			// its view window; anything else means the campaign lost its
			// pay-per-view params and no amount can be trusted.
			return nil, fmt.Errorf("%w: campaign %s missing pay-per-view params", domain.ErrConfiguration, c.ID)
		}
	}

	rec := domain.PaymentRecord{
		ID:           uuid.NewString(),
		SubmissionID: next.ID,
		Amount:       next.PaymentAmount,
		Currency:     c.Currency,
		TxRef:        uuid.NewString(),
		CreatedAt:    now,
	}
	stored, err := s.ledger.AppendPayment(ctx, rec)
	if err != nil {
		return nil, err
	}

	next.Status = domain.StatusPaid
	next.UpdatedAt = now
	if _, err = s.subs.Commit(ctx, next, domain.StatusApproved); err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) {
			telemetry.RecordCASConflict()
			// Someone else completed the payout between our read and
			// commit; the ledger entry is shared, so hand it back.
			fresh, gerr := s.subs.GetSubmission(ctx, next.ID)
			if gerr == nil && fresh.Status == domain.StatusPaid {
				return stored, nil
			}
		}
		return nil, err
	}
	telemetry.RecordTransition(string(domain.StatusApproved), string(domain.StatusPaid), actorKind(actorID))
	telemetry.RecordPayment(stored.Amount, stored.Currency)
	return stored, nil
}

// RecordViews syncs the observed view count from the platform tracker.
// Counts never decrease while a submission is under observation; once the
// payout is frozen or the submission is terminal the sync is a no-op.
func (s *LifecycleService) RecordViews(ctx context.Context, submissionID string, views int64) (*domain.Submission, error) {
	if views < 0 {
		return nil, fmt.Errorf("%w: negative view count", domain.ErrValidation)
	}
	sub, err := s.subs.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status.Terminal() || sub.FrozenAmount != nil {
		return sub, nil
	}
	if views < sub.Views {
		return nil, fmt.Errorf("%w: view count for %s regressed from %d to %d", domain.ErrValidation, sub.ID, sub.Views, views)
	}
	if views == sub.Views {
		return sub, nil
	}

	next := *sub
	next.Views = views
	next.UpdatedAt = s.clock.Now()
	if next.Status == domain.StatusApproved && next.CampaignType == domain.CampaignPayPerView {
		c, cerr := s.campaigns.GetCampaign(ctx, next.CampaignID)
		if cerr != nil {
			return nil, cerr
		}
		amount, perr := domain.PayoutAmount(next, *c)
		if perr != nil {
			return nil, perr
		}
		next.PaymentAmount = amount
	}
	return s.subs.Commit(ctx, next, sub.Status)
}

// AwardPrize records the position a challenge submission's creator was
// awarded by the external judging process, stamping the corresponding prize
// as the payable amount. Judging only opens once the submission deadline
// has passed.
func (s *LifecycleService) AwardPrize(ctx context.Context, submissionID string, position int, actorID string) (*domain.Submission, error) {
	sub, err := s.subs.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.CampaignType != domain.CampaignChallenge {
		return nil, fmt.Errorf("%w: submission %s is not part of a challenge", domain.ErrValidation, sub.ID)
	}
	if sub.Status != domain.StatusApproved {
		return nil, fmt.Errorf("%w: cannot award submission %s in status %s", domain.ErrInvalidTransition, sub.ID, sub.Status)
	}
	c, err := s.campaigns.GetCampaign(ctx, sub.CampaignID)
	if err != nil {
		return nil, err
	}
	if c.Challenge == nil {
		return nil, fmt.Errorf("%w: campaign %s missing challenge params", domain.ErrConfiguration, c.ID)
	}
	now := s.clock.Now()
	if now.Before(c.Challenge.SubmissionDeadline) {
		return nil, fmt.Errorf("%w: campaign %s judging opens after the submission deadline", domain.ErrInvalidTransition, c.ID)
	}
	prize, err := domain.ChallengePrize(*c, position)
	if err != nil {
		return nil, err
	}

	next := *sub
	next.PaymentAmount = prize
	next.DecidedBy = actorID
	next.UpdatedAt = now
	return s.subs.Commit(ctx, next, domain.StatusApproved)
}

// CompleteRetainer settles a creator's fulfilled retainer quota: it checks
// the deliverable target is fully approved and stamps the tier price on the
// creator's most recent approved unpaid submission. Payout on that
// submission then issues the tier payment with the usual idempotency.
func (s *LifecycleService) CompleteRetainer(ctx context.Context, campaignID, creatorID, tierName, actorID string) (*domain.Submission, error) {
	c, err := s.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.Type != domain.CampaignRetainer {
		return nil, fmt.Errorf("%w: campaign %s is not a retainer campaign", domain.ErrValidation, campaignID)
	}
	price, err := domain.RetainerTierPrice(*c, tierName)
	if err != nil {
		return nil, err
	}
	subs, err := s.subs.ListByCreator(ctx, campaignID, creatorID)
	if err != nil {
		return nil, err
	}
	progress, err := domain.ComputeRetainerProgress(*c, creatorID, subs, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if progress.CompletionPercentage < 100 {
		return nil, fmt.Errorf("%w: creator %s is at %d%% of campaign %s deliverables", domain.ErrInvalidTransition, creatorID, progress.CompletionPercentage, campaignID)
	}

	var target *domain.Submission
	for i := range subs {
		sub := &subs[i]
		if sub.Status != domain.StatusApproved {
			continue
		}
		if target == nil || sub.SubmittedAt.After(target.SubmittedAt) {
			target = sub
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: creator %s has no approved unpaid submission on campaign %s", domain.ErrInvalidTransition, creatorID, campaignID)
	}

	next := *target
	next.PaymentAmount = price
	next.DecidedBy = actorID
	next.UpdatedAt = s.clock.Now()
	return s.subs.Commit(ctx, next, domain.StatusApproved)
}

// Progress returns the creator's aggregated completion state against a
// retainer campaign. It is recomputed from the full submission set on every
// call.
func (s *LifecycleService) Progress(ctx context.Context, campaignID, creatorID string) (*domain.RetainerProgress, error) {
	c, err := s.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	subs, err := s.subs.ListByCreator(ctx, campaignID, creatorID)
	if err != nil {
		return nil, err
	}
	progress, err := domain.ComputeRetainerProgress(*c, creatorID, subs, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func actorKind(actorID string) string {
	if actorID == port.SystemActor {
		return "system"
	}
	return "admin"
}
