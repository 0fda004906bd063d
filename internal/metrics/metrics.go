// Package metrics provides the centralized Prometheus registry for the
// projection service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RefreshSuccessTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "refresh_success_total",
		Help:      "Total number of successful dataset refreshes",
	})
	RefreshFailureTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "refresh_failure_total",
		Help:      "Total number of failed dataset refreshes by stage",
	}, []string{"stage"})
)

// Gauge metrics
var (
	PlaysLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "plays_loaded",
		Help:      "Number of plays in the current snapshot",
	})
	TeamsModeled = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "teams_modeled",
		Help:      "Number of teams with season stats in the current snapshot",
	})
	MaxCompletedWeek = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "max_completed_week",
		Help:      "Highest week number present in the current snapshot",
	})
	LastRefreshTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the last successful refresh",
	})
)

// Histogram metrics
var (
	RefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of full dataset refreshes in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of week analysis builds in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(RefreshSuccessTotal)
		registry.MustRegister(RefreshFailureTotal)

		// Register gauge metrics
		registry.MustRegister(PlaysLoaded)
		registry.MustRegister(TeamsModeled)
		registry.MustRegister(MaxCompletedWeek)
		registry.MustRegister(LastRefreshTimestamp)

		// Register histogram metrics
		registry.MustRegister(RefreshDuration)
		registry.MustRegister(AnalysisDuration)

		// Register market metrics
		registry.MustRegister(OddsRequestsTotal)
		registry.MustRegister(OddsCacheHitsTotal)
		registry.MustRegister(OddsRequestsRemaining)
		registry.MustRegister(MarketGamesSkippedTotal)

		// Register projection metrics
		registry.MustRegister(GamesProjected)
		registry.MustRegister(GamesSkipped)
		registry.MustRegister(PlayersPriced)
		registry.MustRegister(DegeneratePricesTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordRefreshSuccess records a completed refresh and updates snapshot gauges.
func RecordRefreshSuccess(plays, teams, maxWeek int, durationSeconds float64, completedAtUnix int64) {
	RefreshSuccessTotal.Inc()
	RefreshDuration.Observe(durationSeconds)
	PlaysLoaded.Set(float64(plays))
	TeamsModeled.Set(float64(teams))
	MaxCompletedWeek.Set(float64(maxWeek))
	LastRefreshTimestamp.Set(float64(completedAtUnix))
}

// RecordRefreshFailure records a failed refresh against the stage that broke.
func RecordRefreshFailure(stage string, durationSeconds float64) {
	RefreshFailureTotal.WithLabelValues(stage).Inc()
	RefreshDuration.Observe(durationSeconds)
}
