package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/lukasminkov/creative-funding-hub/internal/core/domain"
)

// Store is an in-memory implementation of the campaign reader and
// submission store ports. It backs the local store driver and the unit
// tests. Commit carries the same compare-and-swap semantics as the
// postgres adapter.
type Store struct {
	mu          sync.RWMutex
	campaigns   map[string]domain.Campaign
	submissions map[string]domain.Submission
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		campaigns:   make(map[string]domain.Campaign),
		submissions: make(map[string]domain.Submission),
	}
}

// PutCampaign loads a campaign record. Campaigns enter the system through
// external collaborators; this is their hand-over point in local mode.
func (s *Store) PutCampaign(c domain.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[c.ID] = c
}

// PutSubmission loads a submission record, overwriting any prior state.
// Intended for hand-over of freshly created submissions and for tests.
func (s *Store) PutSubmission(sub domain.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[sub.ID] = sub
}

// GetCampaign implements port.CampaignReader.
func (s *Store) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, id)
	}
	out := c
	return &out, nil
}

// GetSubmission implements port.SubmissionStore.
func (s *Store) GetSubmission(_ context.Context, id string) (*domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, fmt.Errorf("%w: submission %s", domain.ErrNotFound, id)
	}
	out := sub
	return &out, nil
}

// ListPending returns pending submissions, optionally scoped to a campaign.
func (s *Store) ListPending(_ context.Context, campaignID *string) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Submission
	for _, sub := range s.submissions {
		if sub.Status != domain.StatusPending {
			continue
		}
		if campaignID != nil && sub.CampaignID != *campaignID {
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

// ListByCreator returns every submission a creator made against a campaign.
func (s *Store) ListByCreator(_ context.Context, campaignID, creatorID string) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Submission
	for _, sub := range s.submissions {
		if sub.CampaignID == campaignID && sub.CreatorID == creatorID {
			out = append(out, sub)
		}
	}
	return out, nil
}

// ListFreezable returns approved pay-per-view submissions without a frozen
// payout.
func (s *Store) ListFreezable(_ context.Context) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Submission
	for _, sub := range s.submissions {
		if sub.Status == domain.StatusApproved &&
			sub.CampaignType == domain.CampaignPayPerView &&
			sub.FrozenAmount == nil {
			out = append(out, sub)
		}
	}
	return out, nil
}

// Commit persists the submission only if its stored status still equals
// expectedPriorStatus. The write lock makes the check-and-set atomic.
func (s *Store) Commit(_ context.Context, sub domain.Submission, expectedPriorStatus domain.SubmissionStatus) (*domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.submissions[sub.ID]
	if !ok {
		return nil, fmt.Errorf("%w: submission %s", domain.ErrNotFound, sub.ID)
	}
	if current.Status != expectedPriorStatus {
		return nil, fmt.Errorf("%w: submission %s moved to %s", domain.ErrConcurrentModification, sub.ID, current.Status)
	}
	s.submissions[sub.ID] = sub
	out := sub
	return &out, nil
}
