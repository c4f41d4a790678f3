package distribution

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/promojour/promojour/internal/graph"
	"github.com/promojour/promojour/internal/metrics"
	"github.com/promojour/promojour/internal/publisher"
	"github.com/promojour/promojour/storage"
	"github.com/promojour/promojour/storage/db"
)

// ErrAlreadyRunning is returned when a distribution run is triggered while a
// previous run is still in flight. The daily-quota check is not transactional
// with the history write, so overlapping runs could over-distribute; the lock
// makes the single-invocation requirement explicit.
var ErrAlreadyRunning = errors.New("a distribution run is already in progress")

// Tally summarizes one distribution run. Unit-level failures are counted, not
// propagated; the run itself only fails on orchestration-level errors.
type Tally struct {
	Campaigns int
	Published int
	Failed    int
	Skipped   int
}

// Distributor walks all eligible campaigns once per run, selects each
// campaign's promotions for the day, fans them out across target stores and
// publishes to every platform the store has auto-publish enabled for.
type Distributor struct {
	storage    *storage.Storage
	publishers map[string]publisher.Publisher

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewDistributor(st *storage.Storage, client *graph.Client) *Distributor {
	publishers := make(map[string]publisher.Publisher)
	for _, platform := range []string{publisher.PlatformFacebook, publisher.PlatformInstagram} {
		p, err := publisher.ForPlatform(platform, client)
		if err != nil {
			panic(err)
		}
		publishers[platform] = p
	}

	return &Distributor{
		storage:    st,
		publishers: publishers,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
}

// Run executes one distribution pass. Per-campaign and per-unit errors are
// logged and tallied; only orchestration-level failures return an error.
func (d *Distributor) Run(ctx context.Context) (Tally, error) {
	if !d.mu.TryLock() {
		return Tally{}, ErrAlreadyRunning
	}
	defer d.mu.Unlock()

	now := d.now().UTC()
	var tally Tally

	campaigns, err := d.storage.Queries.ListCampaignsByStatus(ctx, "active")
	if err != nil {
		return tally, fmt.Errorf("list active campaigns: %w", err)
	}

	eligible := EligibleCampaigns(campaigns, now)
	slog.Info("distribution run starting", "active_campaigns", len(campaigns), "eligible_campaigns", len(eligible))

	for _, campaign := range eligible {
		if err := d.processCampaign(ctx, campaign, now, &tally); err != nil {
			slog.Error("campaign distribution failed, skipping", "campaign_id", campaign.ID, "error", err)
			continue
		}
		tally.Campaigns++
	}

	metrics.DistributionRuns.Inc()
	slog.Info("distribution run complete",
		"campaigns", tally.Campaigns,
		"published", tally.Published,
		"failed", tally.Failed,
		"skipped", tally.Skipped,
	)
	return tally, nil
}

func (d *Distributor) processCampaign(ctx context.Context, campaign db.Campaign, now time.Time, tally *Tally) error {
	pool, err := d.storage.Queries.ListActivePromotionsByCampaign(ctx, sql.NullString{String: campaign.ID, Valid: true})
	if err != nil {
		return fmt.Errorf("list campaign promotions: %w", err)
	}

	selected, err := SelectPromotions(ctx, d.storage.Queries, campaign, pool, now, d.rng)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		slog.Debug("nothing to distribute", "campaign_id", campaign.ID, "pool_size", len(pool))
		return nil
	}

	stores, err := TargetStores(ctx, d.storage.Queries, campaign)
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		slog.Debug("campaign has no target stores", "campaign_id", campaign.ID)
		return nil
	}

	for _, promo := range selected {
		// Campaign distribution only drives the Reel path; image-only
		// promotions are reachable through manual publishing.
		if !promo.VideoUrl.Valid || promo.VideoUrl.String == "" {
			slog.Info("promotion has no video, skipping", "promotion_id", promo.ID, "campaign_id", campaign.ID)
			tally.Skipped++
			continue
		}

		for _, store := range stores {
			d.distributeToStore(ctx, campaign, promo, store, tally)
		}
	}
	return nil
}

func (d *Distributor) distributeToStore(ctx context.Context, campaign db.Campaign, promo db.Promotion, store db.Store, tally *Tally) {
	platforms, err := d.enabledPlatforms(ctx, store.ID)
	if err != nil {
		slog.Error("failed to load store settings", "store_id", store.ID, "error", err)
		tally.Skipped++
		return
	}
	if len(platforms) == 0 {
		slog.Debug("store has auto-publish disabled", "store_id", store.ID, "promotion_id", promo.ID)
		tally.Skipped++
		return
	}

	for _, platform := range platforms {
		d.publishUnit(ctx, campaign, promo, store, platform, tally)
	}
}

func (d *Distributor) enabledPlatforms(ctx context.Context, storeID string) ([]string, error) {
	settings, err := d.storage.Queries.GetStoreSettings(ctx, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var platforms []string
	if settings.AutoPublishFacebook {
		platforms = append(platforms, publisher.PlatformFacebook)
	}
	if settings.AutoPublishInstagram {
		platforms = append(platforms, publisher.PlatformInstagram)
	}
	return platforms, nil
}

// publishUnit runs one (promotion, store, platform) publish attempt. A store
// that was never connected to the platform is skipped without a history row;
// every attempted publish writes exactly one history row, success or error.
func (d *Distributor) publishUnit(ctx context.Context, campaign db.Campaign, promo db.Promotion, store db.Store, platform string, tally *Tally) {
	conn, err := d.storage.Queries.GetSocialConnection(ctx, db.GetSocialConnectionParams{
		StoreID:  store.ID,
		Platform: platform,
	})
	if errors.Is(err, sql.ErrNoRows) {
		slog.Info("store was never connected to platform, skipping", "store_id", store.ID, "platform", platform)
		tally.Skipped++
		return
	}
	if err != nil {
		slog.Error("failed to load social connection", "store_id", store.ID, "platform", platform, "error", err)
		tally.Skipped++
		return
	}

	media := publisher.Media{
		Caption:  Caption(promo),
		VideoURL: promo.VideoUrl.String,
	}
	if promo.ImageUrl.Valid {
		media.ImageURL = promo.ImageUrl.String
	}

	postID, pubErr := d.publishers[platform].Publish(ctx, conn, media)
	d.recordOutcome(ctx, campaign, promo, store, platform, postID, pubErr, tally)
}

func (d *Distributor) recordOutcome(ctx context.Context, campaign db.Campaign, promo db.Promotion, store db.Store, platform, postID string, pubErr error, tally *Tally) {
	params := db.CreatePublicationHistoryParams{
		ID:          uuid.New().String(),
		PromotionID: promo.ID,
		StoreID:     store.ID,
		CampaignID:  sql.NullString{String: campaign.ID, Valid: true},
		Platform:    platform,
		PublishedAt: d.now().UTC(),
	}

	if pubErr != nil {
		params.Status = "error"
		params.ErrorMessage = sql.NullString{String: pubErr.Error(), Valid: true}
		tally.Failed++
		slog.Error("publish failed",
			"promotion_id", promo.ID,
			"store_id", store.ID,
			"platform", platform,
			"error", pubErr,
		)
	} else {
		params.Status = "success"
		params.PostID = sql.NullString{String: postID, Valid: postID != ""}
		tally.Published++
		slog.Info("published promotion",
			"promotion_id", promo.ID,
			"store_id", store.ID,
			"platform", platform,
			"post_id", postID,
		)
	}

	metrics.PublishAttempts.WithLabelValues(platform, params.Status).Inc()

	if _, err := d.storage.Queries.CreatePublicationHistory(ctx, params); err != nil {
		slog.Error("failed to record publication history", "promotion_id", promo.ID, "store_id", store.ID, "platform", platform, "error", err)
	}
}
