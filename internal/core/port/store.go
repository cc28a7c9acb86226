package port

import (
	"context"
	"time"

	"github.com/lukasminkov/creative-funding-hub/internal/core/domain"
)

// CampaignReader supplies campaign records to the lifecycle engine. The
// engine never creates or mutates campaigns.
type CampaignReader interface {
	// GetCampaign returns the campaign or domain.ErrNotFound.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
}

// SubmissionStore is the persistence port for submissions. Implementations
// must be concurrency-safe; Commit is the single mutation path and carries
// compare-and-swap semantics on status.
type SubmissionStore interface {
	// GetSubmission returns the submission or domain.ErrNotFound.
	GetSubmission(ctx context.Context, id string) (*domain.Submission, error)

	// ListPending returns all pending submissions, optionally scoped to a
	// campaign.
	ListPending(ctx context.Context, campaignID *string) ([]domain.Submission, error)

	// ListByCreator returns every submission a creator made against a
	// campaign, regardless of status.
	ListByCreator(ctx context.Context, campaignID, creatorID string) ([]domain.Submission, error)

	// ListFreezable returns approved pay-per-view submissions whose payout
	// has not been frozen yet.
	ListFreezable(ctx context.Context) ([]domain.Submission, error)

	// Commit persists the submission only if its stored status still equals
	// expectedPriorStatus, returning the committed state. A concurrent
	// writer having moved the status first yields
	// domain.ErrConcurrentModification.
	Commit(ctx context.Context, sub domain.Submission, expectedPriorStatus domain.SubmissionStatus) (*domain.Submission, error)
}

// PaymentLedger is the append-only payment log. Append is idempotent keyed
// on SubmissionID: at most one record is ever created per submission.
type PaymentLedger interface {
	// AppendPayment stores the record unless one already exists for the
	// submission, in which case the existing record is returned unchanged.
	AppendPayment(ctx context.Context, rec domain.PaymentRecord) (*domain.PaymentRecord, error)

	// PaymentBySubmission returns the ledger entry for a submission or
	// domain.ErrNotFound.
	PaymentBySubmission(ctx context.Context, submissionID string) (*domain.PaymentRecord, error)
}

// Clock abstracts wall-clock time so deadline evaluation and the sweep are
// deterministic under test.
type Clock interface {
	Now() time.Time
}
