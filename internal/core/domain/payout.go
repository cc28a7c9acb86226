package domain

import "fmt"

// PayoutAmount computes the current payable amount for a submission in
// minor units. For pay-per-view this is a live estimate from the latest
// view count until the view window closes, after which the frozen figure is
// returned unconditionally. Retainer and challenge submissions carry no
// automatic per-submission payout; their amounts are stamped by the
// controller (tier completion, prize award) and live on the submission
// itself.
func PayoutAmount(sub Submission, c Campaign) (int64, error) {
	switch sub.CampaignType {
	case CampaignPayPerView:
		if c.PayPerView == nil {
			return 0, fmt.Errorf("%w: campaign %s missing pay-per-view params", ErrConfiguration, c.ID)
		}
		if sub.FrozenAmount != nil {
			return *sub.FrozenAmount, nil
		}
		raw := sub.Views * c.PayPerView.RatePerThousand / 1000
		if limit := c.PayPerView.MaxPayoutPerSubmission; limit != nil && raw > *limit {
			return *limit, nil
		}
		return raw, nil
	case CampaignRetainer, CampaignChallenge:
		return sub.PaymentAmount, nil
	default:
		return 0, fmt.Errorf("%w: submission %s has unknown campaign type %q", ErrConfiguration, sub.ID, sub.CampaignType)
	}
}

// RetainerTierPrice resolves the price of a named tier on a retainer
// campaign. The tier is the payable unit owed once a creator's progress
// reaches full completion.
func RetainerTierPrice(c Campaign, tierName string) (int64, error) {
	if c.Retainer == nil {
		return 0, fmt.Errorf("%w: campaign %s missing retainer params", ErrConfiguration, c.ID)
	}
	for _, t := range c.Retainer.CreatorTiers {
		if t.Name == tierName {
			return t.Price, nil
		}
	}
	return 0, fmt.Errorf("%w: campaign %s has no tier %q", ErrValidation, c.ID, tierName)
}

// ChallengePrize resolves the prize for a judged position in a challenge
// campaign's prize pool.
func ChallengePrize(c Campaign, position int) (int64, error) {
	if c.Challenge == nil {
		return 0, fmt.Errorf("%w: campaign %s missing challenge params", ErrConfiguration, c.ID)
	}
	for _, place := range c.Challenge.PrizePool {
		if place.Position == position {
			return place.Prize, nil
		}
	}
	return 0, fmt.Errorf("%w: campaign %s awards no prize for position %d", ErrValidation, c.ID, position)
}
