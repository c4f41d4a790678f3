package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/promojour/promojour/internal/graph"
	"github.com/promojour/promojour/storage/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPublishFixture(t *testing.T, queries *db.Queries, user *db.User) (db.Promotion, db.Store) {
	t.Helper()
	ctx := context.Background()

	store, err := queries.CreateStore(ctx, db.CreateStoreParams{
		ID:             ulid.Make().String(),
		OrganizationID: user.OrganizationID,
		Name:           "Main Street",
		IsActive:       true,
	})
	require.NoError(t, err)

	promo, err := queries.CreatePromotion(ctx, db.CreatePromotionParams{
		ID:             ulid.Make().String(),
		OrganizationID: user.OrganizationID,
		Title:          "Weekend deal",
		ImageUrl:       sql.NullString{String: "https://cdn.example.com/deal.jpg", Valid: true},
		Status:         "active",
	})
	require.NoError(t, err)

	return promo, store
}

func connectFacebook(t *testing.T, queries *db.Queries, storeID string) {
	t.Helper()
	_, err := queries.UpsertSocialConnection(context.Background(), db.UpsertSocialConnectionParams{
		ID:          ulid.Make().String(),
		StoreID:     storeID,
		Platform:    "facebook",
		AccountID:   sql.NullString{String: "page-1", Valid: true},
		IsConnected: true,
		AccessToken: sql.NullString{String: "token-fb", Valid: true},
	})
	require.NoError(t, err)
}

func TestHandlePublishPhotoToFacebook(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	user, err := CreateTestUser(queries)
	require.NoError(t, err)
	promo, store := seedPublishFixture(t, queries, user)
	connectFacebook(t, queries, store.ID)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v21.0/page-1/photos", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "photo-1", "post_id": "page-1_post-9"})
	}))
	defer server.Close()

	handler := NewPublishHandler(queries, graph.NewClientWithBaseURLs(server.URL, server.URL), nil)

	c, rec := NewTestContext(http.MethodPost, "/api/publish", map[string]any{
		"promotion_id": promo.ID,
		"store_id":     store.ID,
		"platforms":    []string{"facebook"},
	})
	SetTestUser(c, user)
	require.NoError(t, handler.HandlePublish(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []publishResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "success", resp.Results[0].Status)
	assert.Equal(t, "page-1_post-9", resp.Results[0].PostID)

	rows, err := queries.ListHistoryByPromotion(context.Background(), promo.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "success", rows[0].Status)
	assert.Equal(t, "facebook", rows[0].Platform)
	assert.False(t, rows[0].CampaignID.Valid)
}

func TestHandlePublishRecordsErrorWithoutConnection(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	user, err := CreateTestUser(queries)
	require.NoError(t, err)
	promo, store := seedPublishFixture(t, queries, user)

	handler := NewPublishHandler(queries, graph.NewClient(), nil)

	c, rec := NewTestContext(http.MethodPost, "/api/publish", map[string]any{
		"promotion_id": promo.ID,
		"store_id":     store.ID,
		"platforms":    []string{"facebook"},
	})
	SetTestUser(c, user)
	require.NoError(t, handler.HandlePublish(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []publishResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "error", resp.Results[0].Status)
	assert.Contains(t, resp.Results[0].Error, "no facebook connection")

	rows, err := queries.ListHistoryByPromotion(context.Background(), promo.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "error", rows[0].Status)
	assert.True(t, rows[0].ErrorMessage.Valid)
}

func TestHandlePublishRejectsMedialessPromotion(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	user, err := CreateTestUser(queries)
	require.NoError(t, err)
	_, store := seedPublishFixture(t, queries, user)

	bare, err := queries.CreatePromotion(context.Background(), db.CreatePromotionParams{
		ID:             ulid.Make().String(),
		OrganizationID: user.OrganizationID,
		Title:          "No media",
		Status:         "active",
	})
	require.NoError(t, err)

	handler := NewPublishHandler(queries, graph.NewClient(), nil)

	c, _ := NewTestContext(http.MethodPost, "/api/publish", map[string]any{
		"promotion_id": bare.ID,
		"store_id":     store.ID,
		"platforms":    []string{"facebook"},
	})
	SetTestUser(c, user)
	err = handler.HandlePublish(c)
	require.Error(t, err)

	rows, err := queries.ListHistoryByPromotion(context.Background(), bare.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestHandlePublishRejectsUnknownPlatform(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	user, err := CreateTestUser(queries)
	require.NoError(t, err)
	promo, store := seedPublishFixture(t, queries, user)

	handler := NewPublishHandler(queries, graph.NewClient(), nil)

	c, _ := NewTestContext(http.MethodPost, "/api/publish", map[string]any{
		"promotion_id": promo.ID,
		"store_id":     store.ID,
		"platforms":    []string{"myspace"},
	})
	SetTestUser(c, user)
	assert.Error(t, handler.HandlePublish(c))
}
