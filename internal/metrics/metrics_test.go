package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordRefreshSuccess(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordRefreshSuccess(45000, 32, 11, 42.5, 1757000000)
	})
}

func TestRecordRefreshFailure(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name  string
		stage string
	}{
		{
			name:  "fetch stage",
			stage: "fetch_plays",
		},
		{
			name:  "validate stage",
			stage: "validate",
		},
		{
			name:  "persist stage",
			stage: "persist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordRefreshFailure(tt.stage, 3.2)
			})
		})
	}
}

func TestRecordMarketFetch(t *testing.T) {
	InitRegistry()

	quota := 480
	tests := []struct {
		name     string
		result   string
		skipped  int
		cacheHit bool
		quota    *int
	}{
		{
			name:    "fresh fetch with skips",
			result:  "success",
			skipped: 2,
			quota:   &quota,
		},
		{
			name:     "cache hit",
			result:   "success",
			cacheHit: true,
		},
		{
			name:   "provider failure",
			result: "failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordMarketFetch(tt.result, tt.skipped, tt.cacheHit, tt.quota)
			})
		})
	}
}

func TestProjectionMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordWeekAnalysis("3", 14, 2, 0.8)
	})

	assert.NotPanics(t, func() {
		RecordPlayersPriced(148)
	})

	assert.NotPanics(t, func() {
		RecordDegeneratePrice()
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordRefreshSuccess(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordRefreshSuccess(45000, 32, 11, 42.5, 1757000000)
	}
}

func BenchmarkRecordMarketFetch(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordMarketFetch("success", 0, true, nil)
	}
}
