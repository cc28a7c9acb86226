package domain

import (
	"fmt"
	"time"
)

// CampaignType discriminates the three campaign variants. Exactly one of
// the variant structs on Campaign is populated for a given type.
type CampaignType string

const (
	CampaignRetainer   CampaignType = "retainer"
	CampaignPayPerView CampaignType = "pay_per_view"
	CampaignChallenge  CampaignType = "challenge"
)

// DeliverableMode selects how a retainer campaign's required deliverable
// count is expressed.
type DeliverableMode string

const (
	DeliverablesVideosPerDay DeliverableMode = "videos_per_day"
	DeliverablesTotalVideos  DeliverableMode = "total_videos"
)

// defaultViewValidationDays is the view-accumulation window applied to
// pay-per-view campaigns that do not configure one explicitly.
const defaultViewValidationDays = 10

// Campaign represents a creator-marketing campaign.
// Monetary amounts are stored in integer minor units (e.g. cents).
type Campaign struct {
	ID          string
	Title       string
	Type        CampaignType
	TotalBudget int64
	Currency    string
	Platforms   []string
	EndDate     time.Time

	Retainer   *RetainerParams
	PayPerView *PayPerViewParams
	Challenge  *ChallengeParams

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatorTier is a named price point a creator is paid upon fulfilling a
// retainer campaign's deliverable quota.
type CreatorTier struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Deliverables expresses a retainer campaign's required output in exactly
// one of two modes.
type Deliverables struct {
	Mode         DeliverableMode `json:"mode"`
	VideosPerDay int             `json:"videosPerDay,omitempty"`
	DurationDays int             `json:"durationDays,omitempty"`
	TotalVideos  int             `json:"totalVideos,omitempty"`
}

// RetainerParams holds the retainer-specific campaign configuration.
type RetainerParams struct {
	CreatorTiers        []CreatorTier `json:"creatorTiers"`
	Deliverables        Deliverables  `json:"deliverables"`
	ApplicationDeadline time.Time     `json:"applicationDeadline"`
}

// PayPerViewParams holds the pay-per-view campaign configuration. The rate
// is minor units per thousand views. A nil MaxPayoutPerSubmission means
// uncapped.
type PayPerViewParams struct {
	RatePerThousand          int64  `json:"ratePerThousand"`
	MaxPayoutPerSubmission   *int64 `json:"maxPayoutPerSubmission,omitempty"`
	ViewValidationPeriodDays int    `json:"viewValidationPeriodDays,omitempty"`
}

// ValidationWindowDays returns the configured view-accumulation window,
// falling back to the default when unset.
func (p PayPerViewParams) ValidationWindowDays() int {
	if p.ViewValidationPeriodDays < 1 {
		return defaultViewValidationDays
	}
	return p.ViewValidationPeriodDays
}

// PrizePlace is one position in a challenge campaign's prize pool.
type PrizePlace struct {
	Position int   `json:"position"`
	Prize    int64 `json:"prize"`
}

// ChallengeParams holds the challenge-specific campaign configuration.
type ChallengeParams struct {
	PrizePool          []PrizePlace `json:"prizePool"`
	SubmissionDeadline time.Time    `json:"submissionDeadline"`
}

// Validate checks the shape invariants of a campaign: common required
// fields, exactly one variant matching Type, and the variant's own
// constraints. All failures wrap ErrConfiguration because the core only
// consumes campaigns handed over by collaborators; a malformed one is a
// configuration fault, not caller input.
func (c Campaign) Validate() error {
	if c.ID == "" || c.Title == "" {
		return fmt.Errorf("%w: missing id or title", ErrConfiguration)
	}
	if len(c.Platforms) == 0 {
		return fmt.Errorf("%w: campaign %s has no platforms", ErrConfiguration, c.ID)
	}
	if c.EndDate.IsZero() {
		return fmt.Errorf("%w: campaign %s has no end date", ErrConfiguration, c.ID)
	}
	variants := 0
	if c.Retainer != nil {
		variants++
	}
	if c.PayPerView != nil {
		variants++
	}
	if c.Challenge != nil {
		variants++
	}
	if variants != 1 {
		return fmt.Errorf("%w: campaign %s carries %d variants, want exactly 1", ErrConfiguration, c.ID, variants)
	}

	switch c.Type {
	case CampaignRetainer:
		if c.Retainer == nil {
			return fmt.Errorf("%w: campaign %s typed retainer without retainer params", ErrConfiguration, c.ID)
		}
		return c.Retainer.validate(c)
	case CampaignPayPerView:
		if c.PayPerView == nil {
			return fmt.Errorf("%w: campaign %s typed pay_per_view without pay-per-view params", ErrConfiguration, c.ID)
		}
		return c.PayPerView.validate(c)
	case CampaignChallenge:
		if c.Challenge == nil {
			return fmt.Errorf("%w: campaign %s typed challenge without challenge params", ErrConfiguration, c.ID)
		}
		return c.Challenge.validate(c)
	default:
		return fmt.Errorf("%w: campaign %s has unknown type %q", ErrConfiguration, c.ID, c.Type)
	}
}

func (p RetainerParams) validate(c Campaign) error {
	if len(p.CreatorTiers) == 0 {
		return fmt.Errorf("%w: retainer campaign %s has no creator tiers", ErrConfiguration, c.ID)
	}
	for _, t := range p.CreatorTiers {
		if t.Name == "" || t.Price <= 0 {
			return fmt.Errorf("%w: retainer campaign %s has invalid tier %q", ErrConfiguration, c.ID, t.Name)
		}
	}
	switch p.Deliverables.Mode {
	case DeliverablesVideosPerDay:
		if p.Deliverables.VideosPerDay <= 0 || p.Deliverables.DurationDays <= 0 {
			return fmt.Errorf("%w: retainer campaign %s needs positive videosPerDay and durationDays", ErrConfiguration, c.ID)
		}
	case DeliverablesTotalVideos:
		if p.Deliverables.TotalVideos <= 0 {
			return fmt.Errorf("%w: retainer campaign %s needs positive totalVideos", ErrConfiguration, c.ID)
		}
	default:
		return fmt.Errorf("%w: retainer campaign %s has unknown deliverable mode %q", ErrConfiguration, c.ID, p.Deliverables.Mode)
	}
	if !p.ApplicationDeadline.Before(c.EndDate) {
		return fmt.Errorf("%w: retainer campaign %s application deadline must precede end date", ErrConfiguration, c.ID)
	}
	return nil
}

func (p PayPerViewParams) validate(c Campaign) error {
	if p.RatePerThousand <= 0 {
		return fmt.Errorf("%w: pay-per-view campaign %s needs a positive rate", ErrConfiguration, c.ID)
	}
	if p.MaxPayoutPerSubmission != nil && *p.MaxPayoutPerSubmission <= 0 {
		return fmt.Errorf("%w: pay-per-view campaign %s has non-positive payout cap", ErrConfiguration, c.ID)
	}
	if p.ViewValidationPeriodDays < 0 {
		return fmt.Errorf("%w: pay-per-view campaign %s has negative validation period", ErrConfiguration, c.ID)
	}
	return nil
}

func (p ChallengeParams) validate(c Campaign) error {
	if len(p.PrizePool) == 0 {
		return fmt.Errorf("%w: challenge campaign %s has an empty prize pool", ErrConfiguration, c.ID)
	}
	seen := make(map[int]bool, len(p.PrizePool))
	var total int64
	for _, place := range p.PrizePool {
		if place.Position < 1 {
			return fmt.Errorf("%w: challenge campaign %s has prize position %d", ErrConfiguration, c.ID, place.Position)
		}
		if seen[place.Position] {
			return fmt.Errorf("%w: challenge campaign %s repeats prize position %d", ErrConfiguration, c.ID, place.Position)
		}
		seen[place.Position] = true
		if place.Prize <= 0 {
			return fmt.Errorf("%w: challenge campaign %s has non-positive prize at position %d", ErrConfiguration, c.ID, place.Position)
		}
		total += place.Prize
	}
	if total > c.TotalBudget {
		return fmt.Errorf("%w: challenge campaign %s prize pool %d exceeds budget %d", ErrConfiguration, c.ID, total, c.TotalBudget)
	}
	if !p.SubmissionDeadline.Before(c.EndDate) {
		return fmt.Errorf("%w: challenge campaign %s submission deadline must precede end date", ErrConfiguration, c.ID)
	}
	return nil
}
