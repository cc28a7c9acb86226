package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestEvaluateDeadlinePayPerViewAutoApprove(t *testing.T) {
	c := ppvCampaign(nil)

	// one second past the 240h approval deadline
	sub := Submission{
		ID:           "s1",
		CampaignType: CampaignPayPerView,
		Status:       StatusPending,
		SubmittedAt:  testNow.Add(-AutoApproveAfter - time.Second),
	}
	assert.Equal(t, AutoApprove, EvaluateDeadline(sub, c, testNow).Action)

	// exactly at the deadline still fires
	sub.SubmittedAt = testNow.Add(-AutoApproveAfter)
	assert.Equal(t, AutoApprove, EvaluateDeadline(sub, c, testNow).Action)

	// one minute short of it does not
	sub.SubmittedAt = testNow.Add(-AutoApproveAfter + time.Minute)
	assert.Equal(t, NoAction, EvaluateDeadline(sub, c, testNow).Action)
}

func TestEvaluateDeadlineViewWindow(t *testing.T) {
	c := ppvCampaign(nil)
	sub := Submission{
		ID:           "s1",
		CampaignType: CampaignPayPerView,
		Status:       StatusApproved,
		SubmittedAt:  testNow.Add(-9 * 24 * time.Hour),
	}

	res := EvaluateDeadline(sub, c, testNow)
	assert.Equal(t, ViewWindowOpen, res.Action)
	assert.Equal(t, 1, res.DaysRemaining)

	sub.SubmittedAt = testNow.Add(-10*24*time.Hour - time.Second)
	assert.Equal(t, ViewWindowClosed, EvaluateDeadline(sub, c, testNow).Action)
}

func TestEvaluateDeadlineWindowUsesConfiguredPeriod(t *testing.T) {
	c := ppvCampaign(nil)
	c.PayPerView.ViewValidationPeriodDays = 3
	sub := Submission{
		ID:           "s1",
		CampaignType: CampaignPayPerView,
		Status:       StatusApproved,
		SubmittedAt:  testNow.Add(-4 * 24 * time.Hour),
	}
	assert.Equal(t, ViewWindowClosed, EvaluateDeadline(sub, c, testNow).Action)
}

func TestEvaluateDeadlineRetainerNeverAutoApproves(t *testing.T) {
	c := Campaign{
		ID:      "c2",
		Type:    CampaignRetainer,
		EndDate: testNow.Add(30 * 24 * time.Hour),
		Retainer: &RetainerParams{
			CreatorTiers: []CreatorTier{{Name: "bronze", Price: 50_000}},
			Deliverables: Deliverables{Mode: DeliverablesTotalVideos, TotalVideos: 10},
		},
	}
	sub := Submission{
		ID:           "s1",
		CampaignType: CampaignRetainer,
		Status:       StatusPending,
		SubmittedAt:  testNow.Add(-90 * 24 * time.Hour),
	}
	assert.Equal(t, NoAction, EvaluateDeadline(sub, c, testNow).Action)
}

func TestEvaluateDeadlineChallengeNeverAutoApproves(t *testing.T) {
	c := Campaign{
		ID:      "c3",
		Type:    CampaignChallenge,
		EndDate: testNow.Add(30 * 24 * time.Hour),
		Challenge: &ChallengeParams{
			PrizePool:          []PrizePlace{{Position: 1, Prize: 1000}},
			SubmissionDeadline: testNow.Add(-24 * time.Hour),
		},
	}
	sub := Submission{
		ID:           "s1",
		CampaignType: CampaignChallenge,
		Status:       StatusPending,
		SubmittedAt:  testNow.Add(-90 * 24 * time.Hour),
	}
	assert.Equal(t, NoAction, EvaluateDeadline(sub, c, testNow).Action)
}

func TestLapsed(t *testing.T) {
	c := Campaign{ID: "c2", Type: CampaignRetainer, EndDate: testNow.Add(-time.Hour)}
	sub := Submission{ID: "s1", CampaignType: CampaignRetainer, Status: StatusPending}
	assert.True(t, Lapsed(sub, c, testNow))

	sub.Status = StatusApproved
	assert.False(t, Lapsed(sub, c, testNow))

	sub.Status = StatusPending
	c.EndDate = testNow.Add(time.Hour)
	assert.False(t, Lapsed(sub, c, testNow))
}
