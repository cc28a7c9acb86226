package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lukasminkov/creative-funding-hub/internal/core/domain"
)

// CampaignRepository implements port.CampaignReader using pgxpool. The
// type-specific campaign parameters are stored as a JSONB column and
// unmarshalled into the variant matching the campaign's type.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// GetCampaign returns a campaign by id.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	var (
		c            domain.Campaign
		platformsRaw []byte
		paramsRaw    []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, title, campaign_type, total_budget, currency, platforms, end_date, params, created_at, updated_at FROM campaigns WHERE id = $1`, id).
		Scan(&c.ID, &c.Title, &c.Type, &c.TotalBudget, &c.Currency, &platformsRaw, &c.EndDate, &paramsRaw, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(platformsRaw, &c.Platforms); err != nil {
		return nil, fmt.Errorf("%w: campaign %s has malformed platforms: %v", domain.ErrConfiguration, id, err)
	}
	if err = unmarshalParams(&c, paramsRaw); err != nil {
		return nil, err
	}
	return &c, nil
}

func unmarshalParams(c *domain.Campaign, raw []byte) error {
	switch c.Type {
	case domain.CampaignRetainer:
		var p domain.RetainerParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("%w: campaign %s has malformed retainer params: %v", domain.ErrConfiguration, c.ID, err)
		}
		c.Retainer = &p
	case domain.CampaignPayPerView:
		var p domain.PayPerViewParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("%w: campaign %s has malformed pay-per-view params: %v", domain.ErrConfiguration, c.ID, err)
		}
		c.PayPerView = &p
	case domain.CampaignChallenge:
		var p domain.ChallengeParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("%w: campaign %s has malformed challenge params: %v", domain.ErrConfiguration, c.ID, err)
		}
		c.Challenge = &p
	default:
		return fmt.Errorf("%w: campaign %s has unknown type %q", domain.ErrConfiguration, c.ID, c.Type)
	}
	return nil
}
