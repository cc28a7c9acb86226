package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retainerCampaign(d Deliverables) Campaign {
	return Campaign{
		ID:      "camp",
		Title:   "Monthly Retainer",
		Type:    CampaignRetainer,
		EndDate: testNow.Add(30 * 24 * time.Hour),
		Retainer: &RetainerParams{
			CreatorTiers: []CreatorTier{{Name: "bronze", Price: 50_000}},
			Deliverables: d,
		},
	}
}

func submissionsWithStatuses(statuses ...SubmissionStatus) []Submission {
	subs := make([]Submission, 0, len(statuses))
	for i, st := range statuses {
		subs = append(subs, Submission{
			ID:           fmt.Sprintf("s%d", i),
			CreatorID:    "creator-1",
			CampaignID:   "camp",
			CampaignType: CampaignRetainer,
			Status:       st,
			SubmittedAt:  testNow.Add(-time.Duration(i) * time.Hour),
		})
	}
	return subs
}

func TestRetainerProgressFullCompletion(t *testing.T) {
	c := retainerCampaign(Deliverables{Mode: DeliverablesTotalVideos, TotalVideos: 10})
	statuses := make([]SubmissionStatus, 10)
	for i := range statuses {
		statuses[i] = StatusApproved
	}

	p, err := ComputeRetainerProgress(c, "creator-1", submissionsWithStatuses(statuses...), testNow)
	require.NoError(t, err)
	assert.Equal(t, 10, p.TotalRequired)
	assert.Equal(t, 10, p.Approved)
	assert.Equal(t, 100, p.CompletionPercentage)
}

func TestRetainerProgressPartial(t *testing.T) {
	c := retainerCampaign(Deliverables{Mode: DeliverablesTotalVideos, TotalVideos: 10})
	subs := submissionsWithStatuses(
		StatusApproved, StatusApproved, StatusApproved, StatusApproved,
		StatusApproved, StatusApproved, StatusApproved,
		StatusRejected,
		StatusPending, StatusPending,
	)

	p, err := ComputeRetainerProgress(c, "creator-1", subs, testNow)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Submitted)
	assert.Equal(t, 7, p.Approved)
	assert.Equal(t, 1, p.Rejected)
	assert.Equal(t, 2, p.Pending)
	assert.Equal(t, 70, p.CompletionPercentage)
}

func TestRetainerProgressVideosPerDayMode(t *testing.T) {
	c := retainerCampaign(Deliverables{Mode: DeliverablesVideosPerDay, VideosPerDay: 2, DurationDays: 15})

	p, err := ComputeRetainerProgress(c, "creator-1", nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, 30, p.TotalRequired)
	assert.Equal(t, 0, p.CompletionPercentage)
}

func TestRetainerProgressCountsPaidAsApproved(t *testing.T) {
	c := retainerCampaign(Deliverables{Mode: DeliverablesTotalVideos, TotalVideos: 2})
	subs := submissionsWithStatuses(StatusPaid, StatusApproved)

	p, err := ComputeRetainerProgress(c, "creator-1", subs, testNow)
	require.NoError(t, err)
	assert.Equal(t, 100, p.CompletionPercentage)
}

func TestRetainerProgressIgnoresOtherCreators(t *testing.T) {
	c := retainerCampaign(Deliverables{Mode: DeliverablesTotalVideos, TotalVideos: 4})
	subs := submissionsWithStatuses(StatusApproved, StatusApproved)
	subs = append(subs, Submission{
		ID: "other", CreatorID: "creator-2", CampaignID: "camp",
		CampaignType: CampaignRetainer, Status: StatusApproved,
	})

	p, err := ComputeRetainerProgress(c, "creator-1", subs, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Approved)
	assert.Equal(t, 50, p.CompletionPercentage)
}

func TestRetainerProgressLapsedReporting(t *testing.T) {
	c := retainerCampaign(Deliverables{Mode: DeliverablesTotalVideos, TotalVideos: 5})
	c.EndDate = testNow.Add(-time.Hour)
	subs := submissionsWithStatuses(StatusPending, StatusApproved)

	p, err := ComputeRetainerProgress(c, "creator-1", subs, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Lapsed)
	// lapsed submissions stay pending; reporting is the only effect
	assert.Equal(t, 1, p.Pending)
}

func TestRetainerProgressZeroRequired(t *testing.T) {
	c := retainerCampaign(Deliverables{Mode: DeliverablesTotalVideos, TotalVideos: 0})

	// a campaign with nothing required is trivially complete
	p, err := ComputeRetainerProgress(c, "creator-1", nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, 100, p.CompletionPercentage)
}

func TestRequiredDeliverablesMissingParams(t *testing.T) {
	c := Campaign{ID: "x", Type: CampaignRetainer}
	_, err := RequiredDeliverables(c)
	assert.ErrorIs(t, err, ErrConfiguration)
}
