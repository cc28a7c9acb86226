package domain

import (
	"fmt"
	"math"
	"time"
)

// RetainerProgress aggregates a creator's submissions against a retainer
// campaign's deliverable target. It is derived on demand from the full
// submission set and never persisted, so it cannot go stale.
type RetainerProgress struct {
	CampaignID string
	CreatorID  string

	TotalRequired int
	Submitted     int
	Approved      int
	Rejected      int
	Pending       int

	// Lapsed counts pending submissions that outlived the campaign. They
	// are reported for admin attention but never auto-transitioned.
	Lapsed int

	CompletionPercentage int
}

// RequiredDeliverables computes the deliverable target from a retainer
// campaign's configuration.
func RequiredDeliverables(c Campaign) (int, error) {
	if c.Retainer == nil {
		return 0, fmt.Errorf("%w: campaign %s missing retainer params", ErrConfiguration, c.ID)
	}
	d := c.Retainer.Deliverables
	switch d.Mode {
	case DeliverablesVideosPerDay:
		return d.VideosPerDay * d.DurationDays, nil
	case DeliverablesTotalVideos:
		return d.TotalVideos, nil
	default:
		return 0, fmt.Errorf("%w: campaign %s has unknown deliverable mode %q", ErrConfiguration, c.ID, d.Mode)
	}
}

// ComputeRetainerProgress aggregates the given creator's submissions into a
// completion state. Rejected submissions never count toward approved; a
// replacement submitted after rejection is an independent submission.
func ComputeRetainerProgress(c Campaign, creatorID string, subs []Submission, now time.Time) (RetainerProgress, error) {
	required, err := RequiredDeliverables(c)
	if err != nil {
		return RetainerProgress{}, err
	}
	p := RetainerProgress{
		CampaignID:    c.ID,
		CreatorID:     creatorID,
		TotalRequired: required,
	}
	for _, s := range subs {
		if s.CreatorID != creatorID || s.CampaignID != c.ID {
			continue
		}
		p.Submitted++
		switch s.Status {
		case StatusApproved, StatusPaid:
			p.Approved++
		case StatusRejected:
			p.Rejected++
		case StatusPending:
			p.Pending++
			if Lapsed(s, c, now) {
				p.Lapsed++
			}
		}
	}
	if required <= 0 {
		p.CompletionPercentage = 100
		return p, nil
	}
	pct := int(math.Round(float64(p.Approved) / float64(required) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	p.CompletionPercentage = pct
	return p, nil
}
