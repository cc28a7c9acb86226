package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lukasminkov/creative-funding-hub/internal/core/domain"
)

// PaymentRepository implements port.PaymentLedger using pgxpool. The unique
// index on submission_id makes the append idempotent: a duplicate insert is
// swallowed and the existing row is returned instead.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository returns a new repository instance.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// AppendPayment stores the record unless one already exists for the
// submission, in which case the existing record is returned unchanged.
func (r *PaymentRepository) AppendPayment(ctx context.Context, rec domain.PaymentRecord) (*domain.PaymentRecord, error) {
	_, err := r.pool.Exec(ctx, `INSERT INTO payments (id, submission_id, amount, currency, tx_ref, created_at)
        VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (submission_id) DO NOTHING`,
		rec.ID, rec.SubmissionID, rec.Amount, rec.Currency, rec.TxRef, rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return r.PaymentBySubmission(ctx, rec.SubmissionID)
}

// PaymentBySubmission returns the ledger entry for a submission.
func (r *PaymentRepository) PaymentBySubmission(ctx context.Context, submissionID string) (*domain.PaymentRecord, error) {
	var rec domain.PaymentRecord
	err := r.pool.QueryRow(ctx, `SELECT id, submission_id, amount, currency, tx_ref, created_at FROM payments WHERE submission_id = $1`, submissionID).
		Scan(&rec.ID, &rec.SubmissionID, &rec.Amount, &rec.Currency, &rec.TxRef, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: no payment for submission %s", domain.ErrNotFound, submissionID)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
