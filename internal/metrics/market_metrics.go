// Package metrics defines market-data-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Market data counter vectors
var (
	OddsRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "odds_requests_total",
		Help:      "Total number of odds lookups by result",
	}, []string{"result"})

	OddsCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "odds_cache_hits_total",
		Help:      "Total number of odds lookups served from cache",
	})

	MarketGamesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "market_games_skipped_total",
		Help:      "Total number of games dropped for incomplete market data",
	})
)

// Market data gauges
var (
	OddsRequestsRemaining = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "odds_requests_remaining",
		Help:      "Remaining request quota reported by the odds provider",
	})
)

// RecordMarketFetch records an odds lookup and its provider bookkeeping.
// result should be one of: "success", "failure"
func RecordMarketFetch(result string, skipped int, cacheHit bool, quotaRemaining *int) {
	OddsRequestsTotal.WithLabelValues(result).Inc()
	if cacheHit {
		OddsCacheHitsTotal.Inc()
	}
	if skipped > 0 {
		MarketGamesSkippedTotal.Add(float64(skipped))
	}
	if quotaRemaining != nil {
		OddsRequestsRemaining.Set(float64(*quotaRemaining))
	}
}
