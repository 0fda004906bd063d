package models

import (
	"errors"
	"fmt"
)

// Domain errors. Per-team and per-game failures degrade to empty or skipped
// results; only a failed refresh aborts a whole cycle, and even then the
// previous snapshot stays authoritative.
var (
	// ErrDataUnavailable means no play-by-play snapshot has been published
	// yet. Callers return empty results, not faults.
	ErrDataUnavailable = errors.New("play-by-play data unavailable")

	// ErrMarketDataMissing means a game had no usable line from any
	// prioritized bookmaker. The game is skipped with a marker.
	ErrMarketDataMissing = errors.New("market data missing")

	// ErrComputationDegenerate means an intermediate value left its legal
	// range and was clamped rather than propagated.
	ErrComputationDegenerate = errors.New("degenerate computation")

	// ErrRefreshFailed means a refresh cycle was rejected wholesale.
	ErrRefreshFailed = errors.New("refresh failed")

	// ErrUnknownTeam means a team name or abbreviation is not one of the 32
	// franchises.
	ErrUnknownTeam = errors.New("unknown team")
)

// Repository errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrInvalidID    = errors.New("invalid ID")
)

// RefreshError wraps a refresh failure with the pipeline stage that caused
// it.
type RefreshError struct {
	Stage string
	Err   error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("refresh stage %s: %v", e.Stage, e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// Is reports ErrRefreshFailed for any RefreshError so callers can match the
// whole family with errors.Is.
func (e *RefreshError) Is(target error) bool {
	return target == ErrRefreshFailed
}

// NewRefreshError builds a RefreshError for the given stage.
func NewRefreshError(stage string, err error) *RefreshError {
	return &RefreshError{Stage: stage, Err: err}
}
