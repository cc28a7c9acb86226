package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasminkov/creative-funding-hub/internal/core/domain"
)

func TestCommitEnforcesExpectedStatus(t *testing.T) {
	s := NewStore()
	s.PutSubmission(domain.Submission{ID: "s1", Status: domain.StatusPending})

	next := domain.Submission{ID: "s1", Status: domain.StatusApproved}
	_, err := s.Commit(context.Background(), next, domain.StatusPending)
	require.NoError(t, err)

	// the prior writer moved it; a stale commit must fail
	stale := domain.Submission{ID: "s1", Status: domain.StatusRejected}
	_, err = s.Commit(context.Background(), stale, domain.StatusPending)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)

	_, err = s.Commit(context.Background(), domain.Submission{ID: "ghost"}, domain.StatusPending)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommitConcurrentWritersSingleWinner(t *testing.T) {
	s := NewStore()
	s.PutSubmission(domain.Submission{ID: "s1", Status: domain.StatusPending})

	const writers = 16
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := domain.StatusApproved
			if i%2 == 0 {
				status = domain.StatusRejected
			}
			_, errs[i] = s.Commit(context.Background(), domain.Submission{ID: "s1", Status: status}, domain.StatusPending)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrConcurrentModification)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestListFreezable(t *testing.T) {
	s := NewStore()
	frozen := int64(10)
	now := time.Now()
	s.PutSubmission(domain.Submission{ID: "a", Status: domain.StatusApproved, CampaignType: domain.CampaignPayPerView, SubmittedAt: now})
	s.PutSubmission(domain.Submission{ID: "b", Status: domain.StatusApproved, CampaignType: domain.CampaignPayPerView, FrozenAmount: &frozen, SubmittedAt: now})
	s.PutSubmission(domain.Submission{ID: "c", Status: domain.StatusApproved, CampaignType: domain.CampaignRetainer, SubmittedAt: now})
	s.PutSubmission(domain.Submission{ID: "d", Status: domain.StatusPending, CampaignType: domain.CampaignPayPerView, SubmittedAt: now})

	out, err := s.ListFreezable(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}
