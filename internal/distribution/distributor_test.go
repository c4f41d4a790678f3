package distribution

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/promojour/promojour/internal/graph"
	"github.com/promojour/promojour/storage"
	"github.com/promojour/promojour/storage/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDistributor(t *testing.T, graphURL string) (*Distributor, *db.Queries) {
	t.Helper()
	st, cleanup, err := storage.NewTestStorage()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	d := NewDistributor(st, graph.NewClientWithBaseURLs(graphURL, graphURL))
	d.now = func() time.Time { return day(0).Add(10 * time.Hour) }
	return d, st.Queries
}

func seedSettings(t *testing.T, q *db.Queries, storeID string, facebook, instagram bool) {
	t.Helper()
	_, err := q.UpsertStoreSettings(context.Background(), db.UpsertStoreSettingsParams{
		StoreID:              storeID,
		AutoPublishFacebook:  facebook,
		AutoPublishInstagram: instagram,
	})
	require.NoError(t, err)
}

func seedConnection(t *testing.T, q *db.Queries, storeID, platform string, connected bool) db.SocialConnection {
	t.Helper()
	params := db.UpsertSocialConnectionParams{
		ID:          ulid.Make().String(),
		StoreID:     storeID,
		Platform:    platform,
		AccountID:   sql.NullString{String: "account-" + platform, Valid: true},
		IsConnected: connected,
	}
	if connected {
		params.AccessToken = sql.NullString{String: "token-" + platform, Valid: true}
	}
	conn, err := q.UpsertSocialConnection(context.Background(), params)
	require.NoError(t, err)
	return conn
}

// reelServer fakes the Facebook Reels start/upload/finish endpoints and
// counts every request it sees.
func reelServer(t *testing.T, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v21.0/account-facebook/video_reels":
			_, _ = w.Write([]byte(`{"video_id":"video-9"}`))
		case "/video-upload/v21.0/video-9":
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			t.Errorf("unexpected graph call %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestRunPublishesReelAndRecordsHistory(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int64
	server := reelServer(t, &calls)
	defer server.Close()

	d, q := newTestDistributor(t, server.URL)
	org := seedOrganization(t, q)
	store := seedStore(t, q, org.ID, true)
	seedSettings(t, q, store.ID, true, false)
	seedConnection(t, q, store.ID, "facebook", true)

	campaign := seedCampaign(t, q, org.ID, sql.NullString{}, 1, false, day(-1), day(1))
	promo := seedPromotion(t, q, org.ID, campaign.ID, "promo-1", true)

	tally, err := d.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Published)
	assert.Equal(t, 0, tally.Failed)

	history, err := q.ListHistoryByPromotion(ctx, promo.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "success", history[0].Status)
	assert.Equal(t, "facebook", history[0].Platform)
	assert.Equal(t, "video-9", history[0].PostID.String)
	assert.Equal(t, campaign.ID, history[0].CampaignID.String)

	// The quota is consumed: a second run on the same day publishes nothing.
	callsAfterFirstRun := calls.Load()
	tally, err = d.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, tally.Published)
	assert.Equal(t, callsAfterFirstRun, calls.Load())

	history, err = q.ListHistoryByPromotion(ctx, promo.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRunSkipsPromotionWithoutVideo(t *testing.T) {
	var calls atomic.Int64
	server := reelServer(t, &calls)
	defer server.Close()

	d, q := newTestDistributor(t, server.URL)
	org := seedOrganization(t, q)
	store := seedStore(t, q, org.ID, true)
	seedSettings(t, q, store.ID, true, true)
	seedConnection(t, q, store.ID, "facebook", true)
	seedConnection(t, q, store.ID, "instagram", true)

	campaign := seedCampaign(t, q, org.ID, sql.NullString{}, 1, false, day(-1), day(1))
	promo := seedPromotion(t, q, org.ID, campaign.ID, "promo-1", false)

	tally, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, tally.Published)
	assert.Equal(t, 0, tally.Failed)
	assert.Equal(t, 1, tally.Skipped)
	assert.Equal(t, int64(0), calls.Load())

	history, err := q.ListHistoryByPromotion(context.Background(), promo.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRunRecordsErrorForDeadConnection(t *testing.T) {
	var calls atomic.Int64
	server := reelServer(t, &calls)
	defer server.Close()

	d, q := newTestDistributor(t, server.URL)
	org := seedOrganization(t, q)
	store := seedStore(t, q, org.ID, true)

	// Facebook auto-publish is on but its connection is dead; the healthy
	// Instagram connection is never requested because its toggle is off.
	seedSettings(t, q, store.ID, true, false)
	seedConnection(t, q, store.ID, "facebook", false)
	seedConnection(t, q, store.ID, "instagram", true)

	campaign := seedCampaign(t, q, org.ID, sql.NullString{}, 1, false, day(-1), day(1))
	promo := seedPromotion(t, q, org.ID, campaign.ID, "promo-1", true)

	tally, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, tally.Published)
	assert.Equal(t, 1, tally.Failed)
	assert.Equal(t, int64(0), calls.Load())

	history, err := q.ListHistoryByPromotion(context.Background(), promo.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "error", history[0].Status)
	assert.Equal(t, "facebook", history[0].Platform)
	assert.Contains(t, history[0].ErrorMessage.String, "no active facebook connection")
}

func TestRunSkipsStoreNeverConnected(t *testing.T) {
	var calls atomic.Int64
	server := reelServer(t, &calls)
	defer server.Close()

	d, q := newTestDistributor(t, server.URL)
	org := seedOrganization(t, q)
	store := seedStore(t, q, org.ID, true)
	seedSettings(t, q, store.ID, true, false)

	campaign := seedCampaign(t, q, org.ID, sql.NullString{}, 1, false, day(-1), day(1))
	promo := seedPromotion(t, q, org.ID, campaign.ID, "promo-1", true)

	tally, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, tally.Published)
	assert.Equal(t, 0, tally.Failed)
	assert.Equal(t, int64(0), calls.Load())

	history, err := q.ListHistoryByPromotion(context.Background(), promo.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRunSkipsStoreWithAutoPublishDisabled(t *testing.T) {
	var calls atomic.Int64
	server := reelServer(t, &calls)
	defer server.Close()

	d, q := newTestDistributor(t, server.URL)
	org := seedOrganization(t, q)
	store := seedStore(t, q, org.ID, true)
	seedSettings(t, q, store.ID, false, false)
	seedConnection(t, q, store.ID, "facebook", true)

	campaign := seedCampaign(t, q, org.ID, sql.NullString{}, 1, false, day(-1), day(1))
	promo := seedPromotion(t, q, org.ID, campaign.ID, "promo-1", true)

	tally, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Skipped)
	assert.Equal(t, int64(0), calls.Load())

	history, err := q.ListHistoryByPromotion(context.Background(), promo.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRunIgnoresCampaignOutsideWindow(t *testing.T) {
	var calls atomic.Int64
	server := reelServer(t, &calls)
	defer server.Close()

	d, q := newTestDistributor(t, server.URL)
	org := seedOrganization(t, q)
	store := seedStore(t, q, org.ID, true)
	seedSettings(t, q, store.ID, true, false)
	seedConnection(t, q, store.ID, "facebook", true)

	campaign := seedCampaign(t, q, org.ID, sql.NullString{}, 1, false, day(-10), day(-1))
	seedPromotion(t, q, org.ID, campaign.ID, "promo-1", true)

	tally, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, tally.Campaigns)
	assert.Equal(t, 0, tally.Published)
	assert.Equal(t, int64(0), calls.Load())
}

func TestRunFansOutAcrossStores(t *testing.T) {
	var calls atomic.Int64
	server := reelServer(t, &calls)
	defer server.Close()

	d, q := newTestDistributor(t, server.URL)
	org := seedOrganization(t, q)
	store1 := seedStore(t, q, org.ID, true)
	store2 := seedStore(t, q, org.ID, true)
	for _, storeID := range []string{store1.ID, store2.ID} {
		seedSettings(t, q, storeID, true, false)
		seedConnection(t, q, storeID, "facebook", true)
	}

	campaign := seedCampaign(t, q, org.ID, sql.NullString{}, 1, false, day(-1), day(1))
	promo := seedPromotion(t, q, org.ID, campaign.ID, "promo-1", true)

	tally, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, tally.Published)

	history, err := q.ListHistoryByPromotion(context.Background(), promo.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestRunRejectsConcurrentInvocation(t *testing.T) {
	d, _ := newTestDistributor(t, "http://127.0.0.1:0")

	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}
