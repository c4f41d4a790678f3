package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/promojour/promojour/internal/distribution"
	"github.com/promojour/promojour/internal/email"
	"github.com/promojour/promojour/storage"
	"github.com/promojour/promojour/storage/db"
)

// DigestInterval is how often the digest job wakes up. Each organization gets
// at most one digest per calendar day.
const DigestInterval = time.Hour

// DigestSender emails each organization a summary of the previous day's
// publication outcomes.
type DigestSender struct {
	storage *storage.Storage
	email   *email.Service
	ticker  *time.Ticker
	done    chan bool

	lastSentDay map[string]string
}

func NewDigestSender(st *storage.Storage, emailService *email.Service) *DigestSender {
	return &DigestSender{
		storage:     st,
		email:       emailService,
		done:        make(chan bool),
		lastSentDay: make(map[string]string),
	}
}

// Start begins the digest background job
func (d *DigestSender) Start(ctx context.Context) {
	if !d.email.IsConfigured() {
		slog.Warn("email service not configured, digest sender disabled")
		return
	}

	slog.Info("starting digest sender", "interval", DigestInterval)

	d.sendDigests(ctx)

	d.ticker = time.NewTicker(DigestInterval)

	go func() {
		for {
			select {
			case <-d.ticker.C:
				d.sendDigests(ctx)
			case <-d.done:
				slog.Info("digest sender stopped")
				return
			}
		}
	}()
}

// Stop stops the background job
func (d *DigestSender) Stop() {
	if d.ticker != nil {
		d.ticker.Stop()
	}
	if d.email.IsConfigured() {
		close(d.done)
	}
}

func (d *DigestSender) sendDigests(ctx context.Context) {
	dayStart, dayEnd := distribution.DayBounds(time.Now().UTC().AddDate(0, 0, -1))
	day := dayStart.Format("2006-01-02")

	orgs, err := d.storage.Queries.ListOrganizations(ctx)
	if err != nil {
		slog.Error("failed to list organizations for digest", "error", err)
		return
	}

	for _, org := range orgs {
		if d.lastSentDay[org.ID] == day {
			continue
		}
		if err := d.sendOrganizationDigest(ctx, org, day, dayStart, dayEnd); err != nil {
			slog.Error("failed to send digest", "organization_id", org.ID, "error", err)
			continue
		}
		d.lastSentDay[org.ID] = day
	}
}

func (d *DigestSender) sendOrganizationDigest(ctx context.Context, org db.Organization, day string, dayStart, dayEnd time.Time) error {
	rows, err := d.storage.Queries.ListOrganizationHistoryBetween(ctx, db.ListOrganizationHistoryBetweenParams{
		OrganizationID: org.ID,
		PublishedAt:    dayStart,
		PublishedAt_2:  dayEnd,
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		slog.Debug("no publications yesterday, skipping digest", "organization_id", org.ID)
		return nil
	}

	recipient, ok := d.digestRecipient(ctx, org.ID)
	if !ok {
		slog.Debug("organization has no digest recipient", "organization_id", org.ID)
		return nil
	}

	data := &email.DigestData{
		OrganizationName: org.Name,
		Date:             day,
	}
	for _, row := range rows {
		digestRow := email.DigestRow{
			Platform: row.Platform,
			Status:   row.Status,
		}
		if promo, err := d.storage.Queries.GetPromotion(ctx, row.PromotionID); err == nil {
			digestRow.PromotionTitle = promo.Title
		}
		if store, err := d.storage.Queries.GetStore(ctx, row.StoreID); err == nil {
			digestRow.StoreName = store.Name
		}
		if row.Status == "success" {
			data.Published++
		} else {
			data.Failed++
			if row.ErrorMessage.Valid {
				digestRow.Detail = row.ErrorMessage.String
			}
		}
		data.Rows = append(data.Rows, digestRow)
	}

	return d.email.SendDistributionDigest(recipient, data)
}

// digestRecipient picks the organization's first admin, falling back to any
// member.
func (d *DigestSender) digestRecipient(ctx context.Context, orgID string) (string, bool) {
	users, err := d.storage.Queries.ListUsersByOrganization(ctx, orgID)
	if err != nil || len(users) == 0 {
		return "", false
	}
	for _, user := range users {
		if user.IsAdmin {
			return user.Email, true
		}
	}
	return users[0].Email, true
}
