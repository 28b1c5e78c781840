package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	LifecycleTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_lifecycle_transitions_total",
			Help: "Total number of project status transitions",
		},
		[]string{"to_status"},
	)

	CheckpointReviews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkpoint_reviews_total",
			Help: "Total number of checkpoint review decisions",
		},
		[]string{"decision"},
	)

	PaymentsConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_confirmed_total",
			Help: "Total number of confirmed payments",
		},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordLifecycleTransition(toStatus string) {
	LifecycleTransitions.WithLabelValues(toStatus).Inc()
}

func RecordCheckpointReview(decision string) {
	CheckpointReviews.WithLabelValues(decision).Inc()
}
