package jobs

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/promojour/promojour/internal/email"
	"github.com/promojour/promojour/storage"
	"github.com/promojour/promojour/storage/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	st, cleanup, err := storage.NewTestStorage()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return st
}

func seedCampaignWithStatus(t *testing.T, q *db.Queries, orgID, status string, start, end time.Time) db.Campaign {
	t.Helper()
	campaign, err := q.CreateCampaign(context.Background(), db.CreateCampaignParams{
		ID:                  ulid.Make().String(),
		OrganizationID:      orgID,
		Name:                "Campaign",
		Status:              status,
		StartDate:           start,
		EndDate:             end,
		DailyPromotionCount: 1,
	})
	require.NoError(t, err)
	return campaign
}

func TestCampaignCloserCompletesExpiredCampaigns(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	org, err := st.Queries.CreateOrganization(ctx, db.CreateOrganizationParams{ID: ulid.Make().String(), Name: "Org", Plan: "starter"})
	require.NoError(t, err)

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	expired := seedCampaignWithStatus(t, st.Queries, org.ID, "active", today.AddDate(0, 0, -10), today.AddDate(0, 0, -1))
	running := seedCampaignWithStatus(t, st.Queries, org.ID, "active", today.AddDate(0, 0, -10), today)
	draft := seedCampaignWithStatus(t, st.Queries, org.ID, "draft", today.AddDate(0, 0, -10), today.AddDate(0, 0, -1))

	expiredPromo, err := st.Queries.CreatePromotion(ctx, db.CreatePromotionParams{
		ID:             ulid.Make().String(),
		OrganizationID: org.ID,
		CampaignID:     sql.NullString{String: expired.ID, Valid: true},
		Title:          "Old promo",
		Status:         "active",
	})
	require.NoError(t, err)

	closer := NewCampaignCloser(st)
	closer.closeExpiredCampaigns(ctx)

	got, err := st.Queries.GetCampaign(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)

	// A campaign stays active through the whole of its end date.
	got, err = st.Queries.GetCampaign(ctx, running.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", got.Status)

	// Only active campaigns are touched.
	got, err = st.Queries.GetCampaign(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", got.Status)

	promo, err := st.Queries.GetPromotion(ctx, expiredPromo.ID)
	require.NoError(t, err)
	assert.Equal(t, "expired", promo.Status)
}

func TestDigestRecipientPrefersAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	org, err := st.Queries.CreateOrganization(ctx, db.CreateOrganizationParams{ID: ulid.Make().String(), Name: "Org", Plan: "starter"})
	require.NoError(t, err)

	sender := NewDigestSender(st, email.NewService())

	_, ok := sender.digestRecipient(ctx, org.ID)
	assert.False(t, ok)

	_, err = st.Queries.CreateUser(ctx, db.CreateUserParams{
		ID: ulid.Make().String(), Email: "member@example.com", FullName: "Member", OrganizationID: org.ID,
	})
	require.NoError(t, err)

	recipient, ok := sender.digestRecipient(ctx, org.ID)
	require.True(t, ok)
	assert.Equal(t, "member@example.com", recipient)

	_, err = st.Queries.CreateUser(ctx, db.CreateUserParams{
		ID: ulid.Make().String(), Email: "owner@example.com", FullName: "Owner", OrganizationID: org.ID, IsAdmin: true,
	})
	require.NoError(t, err)

	recipient, ok = sender.digestRecipient(ctx, org.ID)
	require.True(t, ok)
	assert.Equal(t, "owner@example.com", recipient)
}
