package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/oklog/ulid/v2"
	"github.com/promojour/promojour/storage"
	"github.com/promojour/promojour/storage/db"
)

const (
	numOrganizations     = 3
	numStoresPerOrg      = 4
	numCampaignsPerOrg   = 2
	numPromosPerCampaign = 6
	numLoosePromosPerOrg = 3
)

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./db/promojour.db"
	}

	st, err := storage.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	q := st.Queries

	fmt.Println("🌱 Seeding demo data...")

	for i := 0; i < numOrganizations; i++ {
		org := seedOrganization(ctx, q)
		stores := seedStores(ctx, q, org)
		seedUsers(ctx, q, org)
		for j := 0; j < numCampaignsPerOrg; j++ {
			campaign := seedCampaign(ctx, q, org, stores)
			for k := 0; k < numPromosPerCampaign; k++ {
				seedPromotion(ctx, q, org, campaign.ID)
			}
		}
		for j := 0; j < numLoosePromosPerOrg; j++ {
			seedPromotion(ctx, q, org, "")
		}
		fmt.Printf("✓ %s: %d stores, %d campaigns\n", org.Name, len(stores), numCampaignsPerOrg)
	}

	fmt.Println("✅ Done")
}

func seedOrganization(ctx context.Context, q *db.Queries) db.Organization {
	plans := []string{"starter", "pro"}
	org, err := q.CreateOrganization(ctx, db.CreateOrganizationParams{
		ID:   ulid.Make().String(),
		Name: gofakeit.Company(),
		Plan: plans[rand.Intn(len(plans))],
	})
	if err != nil {
		log.Fatalf("Failed to create organization: %v", err)
	}
	return org
}

func seedUsers(ctx context.Context, q *db.Queries, org db.Organization) {
	for i := 0; i < 3; i++ {
		_, err := q.CreateUser(ctx, db.CreateUserParams{
			ID:             ulid.Make().String(),
			Email:          gofakeit.Email(),
			FullName:       gofakeit.Name(),
			OrganizationID: org.ID,
			IsAdmin:        i == 0,
		})
		if err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
	}
}

func seedStores(ctx context.Context, q *db.Queries, org db.Organization) []db.Store {
	stores := make([]db.Store, 0, numStoresPerOrg)
	for i := 0; i < numStoresPerOrg; i++ {
		store, err := q.CreateStore(ctx, db.CreateStoreParams{
			ID:             ulid.Make().String(),
			OrganizationID: org.ID,
			Name:           gofakeit.City() + " Store",
			Address:        sql.NullString{String: gofakeit.Address().Address, Valid: true},
			IsActive:       i != numStoresPerOrg-1,
		})
		if err != nil {
			log.Fatalf("Failed to create store: %v", err)
		}

		_, err = q.UpsertStoreSettings(ctx, db.UpsertStoreSettingsParams{
			StoreID:              store.ID,
			AutoPublishFacebook:  gofakeit.Bool(),
			AutoPublishInstagram: gofakeit.Bool(),
		})
		if err != nil {
			log.Fatalf("Failed to create store settings: %v", err)
		}

		for _, platform := range []string{"facebook", "instagram"} {
			if !gofakeit.Bool() {
				continue
			}
			_, err := q.UpsertSocialConnection(ctx, db.UpsertSocialConnectionParams{
				ID:          ulid.Make().String(),
				StoreID:     store.ID,
				Platform:    platform,
				AccountID:   sql.NullString{String: gofakeit.DigitN(15), Valid: true},
				AccountName: sql.NullString{String: store.Name, Valid: true},
				IsConnected: true,
				AccessToken: sql.NullString{String: gofakeit.UUID(), Valid: true},
			})
			if err != nil {
				log.Fatalf("Failed to create connection: %v", err)
			}
		}

		stores = append(stores, store)
	}
	return stores
}

func seedCampaign(ctx context.Context, q *db.Queries, org db.Organization, stores []db.Store) db.Campaign {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -rand.Intn(10))
	end := now.AddDate(0, 0, 7+rand.Intn(21))

	var storeID sql.NullString
	if rand.Intn(3) == 0 && len(stores) > 0 {
		storeID = sql.NullString{String: stores[rand.Intn(len(stores))].ID, Valid: true}
	}

	campaign, err := q.CreateCampaign(ctx, db.CreateCampaignParams{
		ID:                  ulid.Make().String(),
		OrganizationID:      org.ID,
		StoreID:             storeID,
		Name:                gofakeit.ProductName() + " Campaign",
		Status:              "active",
		StartDate:           time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		EndDate:             time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC),
		DailyPromotionCount: int64(1 + rand.Intn(3)),
		RandomOrder:         gofakeit.Bool(),
	})
	if err != nil {
		log.Fatalf("Failed to create campaign: %v", err)
	}
	return campaign
}

func seedPromotion(ctx context.Context, q *db.Queries, org db.Organization, campaignID string) {
	var campaign sql.NullString
	if campaignID != "" {
		campaign = sql.NullString{String: campaignID, Valid: true}
	}

	var videoURL sql.NullString
	if gofakeit.Bool() {
		videoURL = sql.NullString{String: gofakeit.URL() + "/promo.mp4", Valid: true}
	}

	_, err := q.CreatePromotion(ctx, db.CreatePromotionParams{
		ID:             ulid.Make().String(),
		OrganizationID: org.ID,
		CampaignID:     campaign,
		Title:          gofakeit.ProductName(),
		Description:    sql.NullString{String: gofakeit.ProductDescription(), Valid: true},
		ImageUrl:       sql.NullString{String: gofakeit.URL() + "/promo.jpg", Valid: true},
		VideoUrl:       videoURL,
		PriceCents:     sql.NullInt64{Int64: int64(gofakeit.Number(199, 9999)), Valid: true},
		Status:         "active",
	})
	if err != nil {
		log.Fatalf("Failed to create promotion: %v", err)
	}
}
