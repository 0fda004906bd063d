package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/snapshot"
)

// SnapshotRepository defines the interface for snapshot metadata access
type SnapshotRepository interface {
	Record(ctx context.Context, snap *snapshot.Snapshot) error
	LatestID(ctx context.Context, season int) (uuid.UUID, error)
}

// PlayRepository defines the interface for play-by-play data access
type PlayRepository interface {
	ReplaceSeason(ctx context.Context, season int, plays []models.Play) error
	GetBySeason(ctx context.Context, season int) ([]models.Play, error)
	CountBySeason(ctx context.Context, season int) (int64, error)
}

// TeamStatsRepository defines the interface for drive-rate data access
type TeamStatsRepository interface {
	SaveSeasonStats(ctx context.Context, snapshotID uuid.UUID, stats *models.SeasonStats) error
	GetBySnapshot(ctx context.Context, snapshotID uuid.UUID, season int) (*models.SeasonStats, error)
}

// ProjectionRepository defines the interface for week analysis archives
type ProjectionRepository interface {
	SaveWeekAnalysis(ctx context.Context, analysis *models.WeekAnalysis) error
	GetLatestWeek(ctx context.Context, season, week int) ([]models.GameProjection, error)
}

// PlayerOddsRepository defines the interface for weekly player board archives
type PlayerOddsRepository interface {
	SaveWeekOdds(ctx context.Context, board *models.WeekPlayerOdds) error
	GetLatestWeek(ctx context.Context, season, week int) (*models.WeekPlayerOdds, error)
}
