package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lukasminkov/creative-funding-hub/internal/core/domain"
)

const submissionColumns = `id, campaign_id, creator_id, campaign_type, platform, content_url, views, status, payment_amount, frozen_amount, decision_reason, decided_by, decided_at, submitted_at, updated_at`

// SubmissionRepository implements port.SubmissionStore using pgxpool.
// Commit relies on a status-guarded UPDATE so concurrent writers resolve to
// exactly one winner without explicit locking.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository returns a new repository instance.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

func scanSubmission(row pgx.CollectableRow) (domain.Submission, error) {
	var s domain.Submission
	err := row.Scan(
		&s.ID,
		&s.CampaignID,
		&s.CreatorID,
		&s.CampaignType,
		&s.Platform,
		&s.ContentURL,
		&s.Views,
		&s.Status,
		&s.PaymentAmount,
		&s.FrozenAmount,
		&s.DecisionReason,
		&s.DecidedBy,
		&s.DecidedAt,
		&s.SubmittedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// GetSubmission returns a submission by id.
func (r *SubmissionRepository) GetSubmission(ctx context.Context, id string) (*domain.Submission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	sub, err := pgx.CollectOneRow(rows, scanSubmission)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: submission %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListPending returns pending submissions, optionally scoped to a campaign.
func (r *SubmissionRepository) ListPending(ctx context.Context, campaignID *string) ([]domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE status = $1`
	args := []interface{}{domain.StatusPending}
	if campaignID != nil {
		query += ` AND campaign_id = $2`
		args = append(args, *campaignID)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanSubmission)
}

// ListByCreator returns every submission a creator made against a campaign.
func (r *SubmissionRepository) ListByCreator(ctx context.Context, campaignID, creatorID string) ([]domain.Submission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE campaign_id = $1 AND creator_id = $2`, campaignID, creatorID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanSubmission)
}

// ListFreezable returns approved pay-per-view submissions whose payout has
// not been frozen yet.
func (r *SubmissionRepository) ListFreezable(ctx context.Context) ([]domain.Submission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE status = $1 AND campaign_type = $2 AND frozen_amount IS NULL`,
		domain.StatusApproved, domain.CampaignPayPerView)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanSubmission)
}

// Commit persists the submission only if its stored status still equals
// expectedPriorStatus. Zero rows updated means either the submission is
// gone or another writer moved its status first; the follow-up read tells
// the two apart.
func (r *SubmissionRepository) Commit(ctx context.Context, sub domain.Submission, expectedPriorStatus domain.SubmissionStatus) (*domain.Submission, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE submissions
        SET views = $1, status = $2, payment_amount = $3, frozen_amount = $4,
            decision_reason = $5, decided_by = $6, decided_at = $7, updated_at = $8
        WHERE id = $9 AND status = $10`,
		sub.Views, sub.Status, sub.PaymentAmount, sub.FrozenAmount,
		sub.DecisionReason, sub.DecidedBy, sub.DecidedAt, sub.UpdatedAt,
		sub.ID, expectedPriorStatus)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		current, gerr := r.GetSubmission(ctx, sub.ID)
		if gerr != nil {
			return nil, gerr
		}
		return nil, fmt.Errorf("%w: submission %s moved to %s", domain.ErrConcurrentModification, sub.ID, current.Status)
	}
	out := sub
	return &out, nil
}
