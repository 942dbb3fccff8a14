// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoreboard_submissions_loaded_total",
			Help: "Total number of submission facts loaded",
		},
		[]string{"ruleset"},
	)

	ComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scoreboard_compute_duration_seconds",
			Help:    "Standings pipeline duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"ruleset"},
	)

	RankedUsers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scoreboard_ranked_users",
			Help: "Number of users in the rendered scoreboard",
		},
		[]string{"contest", "ruleset"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
