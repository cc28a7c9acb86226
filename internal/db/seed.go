package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo campaigns and submissions for local exploration: one
// of each campaign type plus a spread of pending, approved and aged
// submissions so the sweep has something to chew on.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()
	end := now.AddDate(0, 1, 0)

	platforms, _ := json.Marshal([]string{"tiktok", "instagram", "youtube"})

	retainerID := uuid.NewString()
	retainerParams, _ := json.Marshal(map[string]interface{}{
		"creatorTiers": []map[string]interface{}{
			{"name": "bronze", "price": 50000},
			{"name": "silver", "price": 100000},
			{"name": "gold", "price": 250000},
		},
		"deliverables":        map[string]interface{}{"mode": "total_videos", "totalVideos": 10},
		"applicationDeadline": now.AddDate(0, 0, 7),
	})
	ppvID := uuid.NewString()
	ppvParams, _ := json.Marshal(map[string]interface{}{
		"ratePerThousand":          500, // 5.00 per thousand views
		"maxPayoutPerSubmission":   50000,
		"viewValidationPeriodDays": 10,
	})
	challengeID := uuid.NewString()
	challengeParams, _ := json.Marshal(map[string]interface{}{
		"prizePool": []map[string]interface{}{
			{"position": 1, "prize": 100000},
			{"position": 2, "prize": 50000},
			{"position": 3, "prize": 25000},
		},
		"submissionDeadline": now.AddDate(0, 0, 14),
	})

	campaigns := []struct {
		id, title, typ string
		budget         int64
		params         []byte
	}{
		{retainerID, "Monthly Creator Retainer", "retainer", 1000000, retainerParams},
		{ppvID, "Spring Launch Pay-Per-View", "pay_per_view", 2000000, ppvParams},
		{challengeID, "Best Unboxing Challenge", "challenge", 200000, challengeParams},
	}
	for _, c := range campaigns {
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, title, campaign_type, total_budget, currency, platforms, end_date, params, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now()) ON CONFLICT DO NOTHING`,
			c.id, c.title, c.typ, c.budget, "USD", platforms, end, c.params)
		if err != nil {
			return err
		}
	}

	// submissions across creators, some old enough to auto-approve
	platformNames := []string{"tiktok", "instagram", "youtube"}
	for i := 0; i < 20; i++ {
		campaign := campaigns[r.Intn(len(campaigns))]
		creator := fmt.Sprintf("creator-%d", r.Intn(6)+1)
		platform := platformNames[r.Intn(len(platformNames))]
		submittedAt := now.Add(-time.Duration(r.Intn(14*24)) * time.Hour)
		views := int64(r.Intn(100000))
		_, err := db.Exec(ctx, `INSERT INTO submissions
    (id, campaign_id, creator_id, campaign_type, platform, content_url, views, status, submitted_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,'pending',$8,now()) ON CONFLICT DO NOTHING`,
			uuid.NewString(), campaign.id, creator, campaign.typ, platform,
			fmt.Sprintf("https://example.com/%s/post/%d", platform, i), views, submittedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
