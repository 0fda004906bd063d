package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// PlayByPlaySource fetches a season of play-by-play event data.
type PlayByPlaySource interface {
	// FetchPlays retrieves all plays recorded for the given season
	FetchPlays(ctx context.Context, season int) ([]models.Play, error)

	// Name returns the name of the data source
	Name() string
}

// ScheduleSource fetches the season schedule.
type ScheduleSource interface {
	// FetchSchedule retrieves the scheduled games for the given season
	FetchSchedule(ctx context.Context, season int) ([]models.ScheduledGame, error)

	// Name returns the name of the data source
	Name() string
}

// OddsSource fetches current market lines for upcoming games.
type OddsSource interface {
	// FetchLines retrieves the current totals and spreads for all priceable games
	FetchLines(ctx context.Context) (*OddsResult, error)

	// Name returns the name of the data source
	Name() string
}

// OddsResult is the outcome of one market line fetch.
type OddsResult struct {
	Lines []models.MarketLine `json:"lines"`

	// Skipped counts events dropped for unmapped teams or incomplete markets
	Skipped int `json:"skipped"`

	// CacheHit is true when the result was served from the response cache
	CacheHit bool `json:"cache_hit"`

	// QuotaRemaining mirrors the vendor's remaining-request header when present
	QuotaRemaining *int `json:"quota_remaining,omitempty"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
