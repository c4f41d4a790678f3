package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/promojour/promojour/storage"
)

// CloseInterval is how often campaigns are checked for having passed their
// end date.
const CloseInterval = time.Hour

// CampaignCloser marks active campaigns past their end date as completed and
// expires the promotions attached to them.
type CampaignCloser struct {
	storage *storage.Storage
	ticker  *time.Ticker
	done    chan bool
}

func NewCampaignCloser(st *storage.Storage) *CampaignCloser {
	return &CampaignCloser{
		storage: st,
		done:    make(chan bool),
	}
}

// Start begins the campaign closing background job
func (c *CampaignCloser) Start(ctx context.Context) {
	slog.Info("starting campaign closer", "interval", CloseInterval)

	c.closeExpiredCampaigns(ctx)

	c.ticker = time.NewTicker(CloseInterval)

	go func() {
		for {
			select {
			case <-c.ticker.C:
				c.closeExpiredCampaigns(ctx)
			case <-c.done:
				slog.Info("campaign closer stopped")
				return
			}
		}
	}()
}

// Stop stops the background job
func (c *CampaignCloser) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	close(c.done)
}

func (c *CampaignCloser) closeExpiredCampaigns(ctx context.Context) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// A campaign stays active through the whole of its end date.
	if err := c.storage.Queries.CompleteCampaignsPastEndDate(ctx, today); err != nil {
		slog.Error("failed to complete expired campaigns", "error", err)
		return
	}

	if err := c.storage.Queries.ExpirePromotionsOfCompletedCampaigns(ctx); err != nil {
		slog.Error("failed to expire promotions of completed campaigns", "error", err)
		return
	}

	slog.Debug("campaign close pass complete")
}
