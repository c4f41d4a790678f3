package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/promojour/promojour/internal/distribution"
)

// DistributionInterval is how often the self-scheduled distribution pass runs
// in addition to the external HTTP trigger.
const DistributionInterval = time.Hour

type DistributionRunner struct {
	distributor *distribution.Distributor
	ticker      *time.Ticker
	done        chan bool
}

func NewDistributionRunner(distributor *distribution.Distributor) *DistributionRunner {
	return &DistributionRunner{
		distributor: distributor,
		done:        make(chan bool),
	}
}

// Start begins the distribution background job
func (r *DistributionRunner) Start(ctx context.Context) {
	slog.Info("starting distribution runner", "interval", DistributionInterval)

	// Run immediately on start
	r.runOnce(ctx)

	// Then run on interval
	r.ticker = time.NewTicker(DistributionInterval)

	go func() {
		for {
			select {
			case <-r.ticker.C:
				r.runOnce(ctx)
			case <-r.done:
				slog.Info("distribution runner stopped")
				return
			}
		}
	}()
}

// Stop stops the background job
func (r *DistributionRunner) Stop() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
	close(r.done)
}

func (r *DistributionRunner) runOnce(ctx context.Context) {
	tally, err := r.distributor.Run(ctx)
	if errors.Is(err, distribution.ErrAlreadyRunning) {
		slog.Warn("skipping scheduled distribution, a run is already in progress")
		return
	}
	if err != nil {
		slog.Error("scheduled distribution run failed", "error", err)
		return
	}
	slog.Debug("scheduled distribution run finished", "published", tally.Published, "failed", tally.Failed)
}
