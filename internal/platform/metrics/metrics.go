package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giggles",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "giggles",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giggles",
			Subsystem: "media",
			Name:      "uploads_total",
			Help:      "Media uploads by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	UploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giggles",
			Subsystem: "media",
			Name:      "upload_bytes_total",
			Help:      "Total bytes accepted for storage",
		},
		[]string{"kind"},
	)

	PromotionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giggles",
			Subsystem: "queue",
			Name:      "promotions_total",
			Help:      "Submission promotions by trigger and outcome",
		},
		[]string{"trigger", "outcome"},
	)

	RatingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giggles",
			Subsystem: "captions",
			Name:      "ratings_total",
			Help:      "Caption likes and hates applied",
		},
		[]string{"kind", "outcome"},
	)

	ReceiptVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giggles",
			Subsystem: "receipts",
			Name:      "verifications_total",
			Help:      "Store receipt verifications by platform and outcome",
		},
		[]string{"platform", "outcome"},
	)

	ReceiptVerificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "giggles",
			Subsystem: "receipts",
			Name:      "verification_duration_seconds",
			Help:      "Store receipt verification latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"platform"},
	)

	PushDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giggles",
			Subsystem: "push",
			Name:      "deliveries_total",
			Help:      "Push notifications by target kind and outcome",
		},
		[]string{"target", "outcome"},
	)

	QueueSizeCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giggles",
			Subsystem: "queue",
			Name:      "size_cache_total",
			Help:      "Queue size hint cache lookups by result",
		},
		[]string{"result"},
	)
)

// Outcome collapses an error into the label used across counters.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
