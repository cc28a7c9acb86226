package domain

import "time"

// SubmissionStatus is the lifecycle state of a submission. Transitions are
// monotone: pending → approved | rejected, approved → paid. Rejected and
// paid are terminal.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
	StatusPaid     SubmissionStatus = "paid"
)

// Terminal reports whether no further transition is possible.
func (s SubmissionStatus) Terminal() bool {
	return s == StatusRejected || s == StatusPaid
}

// CanTransitionTo reports whether the state machine permits moving from s
// to next.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusPaid
	default:
		return false
	}
}

// Submission is a single piece of creator content submitted against a
// campaign. The core never constructs submissions, only transitions them.
type Submission struct {
	ID           string
	CreatorID    string
	CampaignID   string
	CampaignType CampaignType // denormalized from the owning campaign, fixed at creation
	Platform     string
	ContentURL   string

	// Views is monotonically non-decreasing while the submission is under
	// observation. Once FrozenAmount is set the payout no longer follows it.
	Views int64

	Status SubmissionStatus

	// PaymentAmount is the current payable amount in minor units. It is
	// meaningful once the submission is approved.
	PaymentAmount int64

	// FrozenAmount is set when a pay-per-view submission's view window
	// closes. From then on the payout is fixed regardless of later view
	// changes upstream.
	FrozenAmount *int64

	// DecisionReason is required non-empty when the submission is rejected.
	DecisionReason string
	DecidedBy      string
	DecidedAt      *time.Time

	SubmittedAt time.Time
	UpdatedAt   time.Time
}
