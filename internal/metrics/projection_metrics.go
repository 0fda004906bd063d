// Package metrics defines projection-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Projection gauges
var (
	GamesProjected = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "games_projected",
		Help:      "Games projected in the most recent analysis by week",
	}, []string{"week"})

	GamesSkipped = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "games_skipped",
		Help:      "Games skipped in the most recent analysis by week",
	}, []string{"week"})

	PlayersPriced = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "players_priced",
		Help:      "Players priced in the most recent odds build",
	})
)

// Projection counters
var (
	DegeneratePricesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "degenerate_prices_total",
		Help:      "Total number of player prices clamped out of a degenerate range",
	})
)

// RecordWeekAnalysis records the outcome of a week analysis build.
func RecordWeekAnalysis(week string, games, skipped int, durationSeconds float64) {
	GamesProjected.WithLabelValues(week).Set(float64(games))
	GamesSkipped.WithLabelValues(week).Set(float64(skipped))
	AnalysisDuration.Observe(durationSeconds)
}

// RecordPlayersPriced records the size of the most recent odds build.
func RecordPlayersPriced(players int) {
	PlayersPriced.Set(float64(players))
}

// RecordDegeneratePrice records a price clamped out of a degenerate range.
func RecordDegeneratePrice() {
	DegeneratePricesTotal.Inc()
}
