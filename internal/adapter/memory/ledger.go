package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/lukasminkov/creative-funding-hub/internal/core/domain"
)

// Ledger is an in-memory payment ledger, idempotent on submission id.
type Ledger struct {
	mu      sync.RWMutex
	records map[string]domain.PaymentRecord // keyed on submission id
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make(map[string]domain.PaymentRecord)}
}

// AppendPayment stores the record unless one already exists for the
// submission, in which case the existing record is returned unchanged.
func (l *Ledger) AppendPayment(_ context.Context, rec domain.PaymentRecord) (*domain.PaymentRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.records[rec.SubmissionID]; ok {
		out := existing
		return &out, nil
	}
	l.records[rec.SubmissionID] = rec
	out := rec
	return &out, nil
}

// PaymentBySubmission returns the ledger entry for a submission.
func (l *Ledger) PaymentBySubmission(_ context.Context, submissionID string) (*domain.PaymentRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[submissionID]
	if !ok {
		return nil, fmt.Errorf("%w: no payment for submission %s", domain.ErrNotFound, submissionID)
	}
	out := rec
	return &out, nil
}

// Len reports the number of ledger entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
