package port

import (
	"context"
	"time"

	"github.com/lukasminkov/creative-funding-hub/internal/core/domain"
)

// SystemActor identifies transitions performed by the scheduled sweep
// rather than an admin.
const SystemActor = "system"

// LifecycleUseCase defines the business operations exposed by the
// submission lifecycle engine. This interface is the primary port into the
// application domain; the HTTP layer and the sweep scheduler both drive it.
type LifecycleUseCase interface {
	// Approve moves a pending submission to approved and stamps its
	// initial payable amount. Fails with domain.ErrInvalidTransition when
	// the submission is not pending.
	Approve(ctx context.Context, submissionID, actorID string) (*domain.Submission, error)

	// Deny moves a pending submission to rejected, storing the decision
	// reason. A blank reason fails with domain.ErrValidation.
	Deny(ctx context.Context, submissionID, actorID, reason string) (*domain.Submission, error)

	// Payout issues the payment for an approved submission, moves it to
	// paid and appends exactly one ledger entry. For pay-per-view the view
	// window must have closed; payment is never issued while views can
	// still change. Invoking Payout on an already paid submission returns
	// the existing record without creating a duplicate.
	Payout(ctx context.Context, submissionID, actorID string) (*domain.PaymentRecord, error)

	// Sweep scans pending submissions and applies every automatic
	// transition that is due, acting as SystemActor. It also freezes the
	// payable amount of approved pay-per-view submissions whose view
	// window has closed. Safe to invoke repeatedly and concurrently.
	Sweep(ctx context.Context) (*SweepReport, error)

	// RecordViews syncs the observed view count for a submission. Counts
	// are monotonically non-decreasing; a decrease fails with
	// domain.ErrValidation. Once the payout is frozen the call is a no-op.
	RecordViews(ctx context.Context, submissionID string, views int64) (*domain.Submission, error)

	// AwardPrize records the judged position for an approved challenge
	// submission, stamping the corresponding prize as its payable amount.
	AwardPrize(ctx context.Context, submissionID string, position int, actorID string) (*domain.Submission, error)

	// CompleteRetainer verifies the creator has fulfilled the campaign's
	// deliverable quota and stamps the tier price on their most recent
	// approved unpaid submission, which Payout then settles.
	CompleteRetainer(ctx context.Context, campaignID, creatorID, tierName, actorID string) (*domain.Submission, error)

	// Progress returns the creator's aggregated completion state against a
	// retainer campaign.
	Progress(ctx context.Context, campaignID, creatorID string) (*domain.RetainerProgress, error)
}

// SweepReport summarises one sweep pass.
type SweepReport struct {
	StartedAt    time.Time
	Scanned      int
	AutoApproved []domain.Submission
	Frozen       []domain.Submission
	// Skipped counts submissions left untouched because their campaign is
	// misconfigured or another writer resolved them first.
	Skipped int
}
