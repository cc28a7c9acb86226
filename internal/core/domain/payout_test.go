package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ppvCampaign(maxPayout *int64) Campaign {
	return Campaign{
		ID:          "c1",
		Title:       "Spring Launch",
		Type:        CampaignPayPerView,
		TotalBudget: 1_000_000,
		Currency:    "USD",
		Platforms:   []string{"tiktok"},
		EndDate:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		PayPerView: &PayPerViewParams{
			RatePerThousand:          5,
			MaxPayoutPerSubmission:   maxPayout,
			ViewValidationPeriodDays: 10,
		},
	}
}

func TestPayoutAmountCapped(t *testing.T) {
	limit := int64(50)
	c := ppvCampaign(&limit)
	sub := Submission{ID: "s1", CampaignID: "c1", CampaignType: CampaignPayPerView, Views: 12_000}

	got, err := PayoutAmount(sub, c)
	require.NoError(t, err)
	// raw = 12000/1000 * 5 = 60, capped at 50
	assert.Equal(t, int64(50), got)
}

func TestPayoutAmountUncapped(t *testing.T) {
	c := ppvCampaign(nil)
	sub := Submission{ID: "s1", CampaignID: "c1", CampaignType: CampaignPayPerView, Views: 12_000}

	got, err := PayoutAmount(sub, c)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got)
}

func TestPayoutAmountFrozenIgnoresViews(t *testing.T) {
	c := ppvCampaign(nil)
	frozen := int64(42)
	sub := Submission{
		ID:           "s1",
		CampaignID:   "c1",
		CampaignType: CampaignPayPerView,
		Views:        12_000,
		FrozenAmount: &frozen,
	}

	first, err := PayoutAmount(sub, c)
	require.NoError(t, err)

	// views keep moving upstream after the window closed; the frozen figure
	// must not.
	sub.Views = 900_000
	second, err := PayoutAmount(sub, c)
	require.NoError(t, err)

	assert.Equal(t, int64(42), first)
	assert.Equal(t, first, second)
}

func TestPayoutAmountMissingParams(t *testing.T) {
	c := ppvCampaign(nil)
	c.PayPerView = nil
	sub := Submission{ID: "s1", CampaignType: CampaignPayPerView}

	_, err := PayoutAmount(sub, c)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRetainerTierPrice(t *testing.T) {
	c := Campaign{
		ID:   "c2",
		Type: CampaignRetainer,
		Retainer: &RetainerParams{
			CreatorTiers: []CreatorTier{
				{Name: "bronze", Price: 50_000},
				{Name: "gold", Price: 250_000},
			},
		},
	}

	price, err := RetainerTierPrice(c, "gold")
	require.NoError(t, err)
	assert.Equal(t, int64(250_000), price)

	_, err = RetainerTierPrice(c, "platinum")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChallengePrize(t *testing.T) {
	c := Campaign{
		ID:   "c3",
		Type: CampaignChallenge,
		Challenge: &ChallengeParams{
			PrizePool: []PrizePlace{
				{Position: 1, Prize: 100_000},
				{Position: 2, Prize: 50_000},
			},
		},
	}

	prize, err := ChallengePrize(c, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), prize)

	_, err = ChallengePrize(c, 7)
	assert.ErrorIs(t, err, ErrValidation)
}
