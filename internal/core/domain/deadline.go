package domain

import "time"

// AutoApproveAfter is the fixed deadline after which a pending pay-per-view
// submission is approved without admin action.
const AutoApproveAfter = 240 * time.Hour

// DeadlineAction is the outcome of evaluating a submission's deadlines at a
// point in time.
type DeadlineAction string

const (
	NoAction         DeadlineAction = "no_action"
	AutoApprove      DeadlineAction = "auto_approve"
	ViewWindowOpen   DeadlineAction = "view_window_open"
	ViewWindowClosed DeadlineAction = "view_window_closed"
)

// DeadlineResult carries the action due for a submission. DaysRemaining is
// populated only for ViewWindowOpen.
type DeadlineResult struct {
	Action        DeadlineAction
	DaysRemaining int
}

// EvaluateDeadline computes whether an automatic transition is due for a
// submission at the given instant. It is pure and total over well-formed
// data.
//
// Only pay-per-view has a monetary reason to force a decision — creators
// must not wait indefinitely to be paid for organic performance — so only
// that type ever yields AutoApprove. Retainer and challenge submissions
// require manual decisions regardless of elapsed time.
func EvaluateDeadline(sub Submission, c Campaign, now time.Time) DeadlineResult {
	if sub.CampaignType != CampaignPayPerView || c.PayPerView == nil {
		return DeadlineResult{Action: NoAction}
	}

	switch sub.Status {
	case StatusPending:
		deadline := sub.SubmittedAt.Add(AutoApproveAfter)
		if !now.Before(deadline) {
			return DeadlineResult{Action: AutoApprove}
		}
		return DeadlineResult{Action: NoAction}
	case StatusApproved:
		closeAt := ViewWindowEnd(sub, c)
		if now.Before(closeAt) {
			remaining := closeAt.Sub(now)
			days := int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
			return DeadlineResult{Action: ViewWindowOpen, DaysRemaining: days}
		}
		return DeadlineResult{Action: ViewWindowClosed}
	default:
		return DeadlineResult{Action: NoAction}
	}
}

// ViewWindowEnd returns the instant a pay-per-view submission's
// view-accumulation window closes. The window is anchored at submission
// time, independent of when the approval happened.
func ViewWindowEnd(sub Submission, c Campaign) time.Time {
	days := defaultViewValidationDays
	if c.PayPerView != nil {
		days = c.PayPerView.ValidationWindowDays()
	}
	return sub.SubmittedAt.Add(time.Duration(days) * 24 * time.Hour)
}

// Lapsed reports whether a pending retainer submission has outlived its
// campaign. Lapsed submissions are surfaced to admins, never transitioned.
func Lapsed(sub Submission, c Campaign, now time.Time) bool {
	return sub.CampaignType == CampaignRetainer &&
		sub.Status == StatusPending &&
		now.After(c.EndDate)
}
