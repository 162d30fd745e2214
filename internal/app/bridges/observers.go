package bridges

import "giggles/internal/platform/metrics"

// MetricsObserver records queue and rating outcomes as Prometheus counters.
type MetricsObserver struct{}

func (MetricsObserver) ObservePromotion(trigger string, outcome string) {
	metrics.PromotionsTotal.WithLabelValues(trigger, outcome).Inc()
}

func (MetricsObserver) ObserveRating(kind string, outcome string) {
	metrics.RatingsTotal.WithLabelValues(kind, outcome).Inc()
}
