package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PublishAttempts counts terminal publish attempts by platform and outcome.
	PublishAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promojour_publish_attempts_total",
		Help: "Terminal publish attempts by platform and outcome.",
	}, []string{"platform", "status"})

	// DistributionRuns counts completed distribution runs.
	DistributionRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promojour_distribution_runs_total",
		Help: "Completed distribution runs.",
	})
)
