package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasminkov/creative-funding-hub/internal/core/domain"
	"github.com/lukasminkov/creative-funding-hub/internal/core/port"
)

func TestSweepAutoApprovesOverdueSubmissions(t *testing.T) {
	f := newFixture(t)
	c := f.addPPVCampaign(nil)
	f.addSubmission("old", c, domain.StatusPending, 8_000, testNow.Add(-domain.AutoApproveAfter-time.Hour))
	f.addSubmission("fresh", c, domain.StatusPending, 3_000, testNow.Add(-time.Hour))

	report, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)

	require.Len(t, report.AutoApproved, 1)
	assert.Equal(t, "old", report.AutoApproved[0].ID)
	assert.Equal(t, port.SystemActor, report.AutoApproved[0].DecidedBy)
	assert.Equal(t, 2, report.Scanned)

	old, gerr := f.store.GetSubmission(context.Background(), "old")
	require.NoError(t, gerr)
	assert.Equal(t, domain.StatusApproved, old.Status)
	// rate 5 per thousand on 8000 views
	assert.Equal(t, int64(40), old.PaymentAmount)

	fresh, gerr := f.store.GetSubmission(context.Background(), "fresh")
	require.NoError(t, gerr)
	assert.Equal(t, domain.StatusPending, fresh.Status)
}

func TestSweepNeverAutoApprovesRetainerOrChallenge(t *testing.T) {
	f := newFixture(t)
	ret := f.addRetainerCampaign(5)
	ch := f.addChallengeCampaign()
	f.addSubmission("r1", ret, domain.StatusPending, 0, testNow.Add(-30*24*time.Hour))
	f.addSubmission("c1", ch, domain.StatusPending, 0, testNow.Add(-30*24*time.Hour))

	report, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.AutoApproved)
	for _, id := range []string{"r1", "c1"} {
		sub, gerr := f.store.GetSubmission(context.Background(), id)
		require.NoError(t, gerr)
		assert.Equal(t, domain.StatusPending, sub.Status)
	}
}

func TestSweepFreezesClosedViewWindows(t *testing.T) {
	f := newFixture(t)
	limit := int64(50)
	c := f.addPPVCampaign(&limit)
	f.addSubmission("closed", c, domain.StatusApproved, 12_000, testNow.Add(-11*24*time.Hour))
	f.addSubmission("open", c, domain.StatusApproved, 4_000, testNow.Add(-3*24*time.Hour))

	report, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Frozen, 1)
	assert.Equal(t, "closed", report.Frozen[0].ID)

	closed, gerr := f.store.GetSubmission(context.Background(), "closed")
	require.NoError(t, gerr)
	require.NotNil(t, closed.FrozenAmount)
	assert.Equal(t, int64(50), *closed.FrozenAmount)
	assert.Equal(t, int64(50), closed.PaymentAmount)
	// freezing does not pay; the submission stays approved
	assert.Equal(t, domain.StatusApproved, closed.Status)

	open, gerr := f.store.GetSubmission(context.Background(), "open")
	require.NoError(t, gerr)
	assert.Nil(t, open.FrozenAmount)
}

func TestSweepSkipsMisconfiguredCampaign(t *testing.T) {
	f := newFixture(t)
	good := f.addPPVCampaign(nil)
	f.addSubmission("ok", good, domain.StatusPending, 1_000, testNow.Add(-domain.AutoApproveAfter-time.Hour))

	// typed pay_per_view but missing its params
	f.store.PutCampaign(domain.Campaign{
		ID:        "broken",
		Title:     "Broken",
		Type:      domain.CampaignPayPerView,
		Currency:  "USD",
		Platforms: []string{"tiktok"},
		EndDate:   testNow.Add(30 * 24 * time.Hour),
	})
	f.addSubmission("stuck", domain.Campaign{ID: "broken", Type: domain.CampaignPayPerView}, domain.StatusPending, 0, testNow.Add(-domain.AutoApproveAfter-time.Hour))

	report, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)

	require.Len(t, report.AutoApproved, 1)
	assert.Equal(t, "ok", report.AutoApproved[0].ID)
	assert.Equal(t, 1, report.Skipped)

	stuck, gerr := f.store.GetSubmission(context.Background(), "stuck")
	require.NoError(t, gerr)
	assert.Equal(t, domain.StatusPending, stuck.Status)
}

func TestSweepSkipsSubmissionOfUnknownCampaign(t *testing.T) {
	f := newFixture(t)
	f.addSubmission("orphan", domain.Campaign{ID: "ghost", Type: domain.CampaignPayPerView}, domain.StatusPending, 0, testNow.Add(-domain.AutoApproveAfter-time.Hour))

	report, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.AutoApproved)
}

func TestSweepIsIdempotent(t *testing.T) {
	f := newFixture(t)
	c := f.addPPVCampaign(nil)
	// a wide validation window keeps the auto-approved submission's view
	// window open, so the second pass has nothing left to do
	c.PayPerView.ViewValidationPeriodDays = 21
	f.store.PutCampaign(c)
	f.addSubmission("old", c, domain.StatusPending, 8_000, testNow.Add(-domain.AutoApproveAfter-time.Hour))
	f.addSubmission("done", c, domain.StatusApproved, 12_000, testNow.Add(-22*24*time.Hour))

	first, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Len(t, first.AutoApproved, 1)
	assert.Len(t, first.Frozen, 1)

	second, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second.AutoApproved)
	assert.Empty(t, second.Frozen)
}

func TestSweepLosesRaceToAdminDecision(t *testing.T) {
	f := newFixture(t)
	c := f.addPPVCampaign(nil)
	f.addSubmission("s1", c, domain.StatusPending, 0, testNow.Add(-domain.AutoApproveAfter-time.Hour))

	// admin denies just before the sweep's commit lands
	_, err := f.svc.Deny(context.Background(), "s1", "admin-7", "off brief")
	require.NoError(t, err)

	report, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.AutoApproved)

	sub, gerr := f.store.GetSubmission(context.Background(), "s1")
	require.NoError(t, gerr)
	assert.Equal(t, domain.StatusRejected, sub.Status)
}
