package distribution

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/promojour/promojour/storage/db"
)

// DayBounds returns the UTC calendar-day window [start, end) containing t.
// All daily-quota accounting uses UTC day boundaries.
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EligibleCampaigns filters campaigns to those active and in their date
// window on the given day. Date comparison is by calendar day, inclusive on
// both ends.
func EligibleCampaigns(campaigns []db.Campaign, today time.Time) []db.Campaign {
	day := dateOnly(today)

	var eligible []db.Campaign
	for _, c := range campaigns {
		if c.Status != "active" {
			continue
		}
		if day.Before(dateOnly(c.StartDate)) || day.After(dateOnly(c.EndDate)) {
			continue
		}
		eligible = append(eligible, c)
	}
	return eligible
}

// SelectPromotions picks the promotions to distribute for a campaign today.
// A promotion published to any store today counts once toward the campaign's
// daily quota, so quota is per campaign-day, not per store-day. Only success
// rows consume quota; a failed attempt leaves the promotion selectable on the
// next run. Under-delivery when the pool is short is not an error.
func SelectPromotions(ctx context.Context, q *db.Queries, campaign db.Campaign, pool []db.Promotion, now time.Time, rng *rand.Rand) ([]db.Promotion, error) {
	dayStart, dayEnd := DayBounds(now)

	published, err := q.ListCampaignSuccessesBetween(ctx, db.ListCampaignSuccessesBetweenParams{
		CampaignID:    sql.NullString{String: campaign.ID, Valid: true},
		PublishedAt:   dayStart,
		PublishedAt_2: dayEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("list today's publications: %w", err)
	}

	distributed := make(map[string]bool)
	for _, row := range published {
		distributed[row.PromotionID] = true
	}

	remaining := campaign.DailyPromotionCount - int64(len(distributed))
	if remaining <= 0 {
		return nil, nil
	}

	candidates := make([]db.Promotion, 0, len(pool))
	for _, p := range pool {
		if !distributed[p.ID] {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	if campaign.RandomOrder {
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	if int64(len(candidates)) > remaining {
		candidates = candidates[:remaining]
	}
	return candidates, nil
}

// TargetStores expands a campaign's scope into concrete publication targets:
// the pinned store when one is set, otherwise every active store in the
// campaign's organization. An empty result is valid.
func TargetStores(ctx context.Context, q *db.Queries, campaign db.Campaign) ([]db.Store, error) {
	if campaign.StoreID.Valid {
		store, err := q.GetStore(ctx, campaign.StoreID.String)
		if err != nil {
			return nil, fmt.Errorf("get campaign store: %w", err)
		}
		return []db.Store{store}, nil
	}

	stores, err := q.ListActiveStoresByOrganization(ctx, campaign.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("list organization stores: %w", err)
	}
	return stores, nil
}

// Caption builds the post caption for a promotion from its title,
// description and price.
func Caption(promo db.Promotion) string {
	caption := promo.Title
	if promo.Description.Valid && promo.Description.String != "" {
		caption += "\n\n" + promo.Description.String
	}
	if promo.PriceCents.Valid {
		caption += fmt.Sprintf("\n\nNow $%d.%02d", promo.PriceCents.Int64/100, promo.PriceCents.Int64%100)
	}
	return caption
}
