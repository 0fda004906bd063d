package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/snapshot"
)

// PostgresSnapshotRepository implements SnapshotRepository for PostgreSQL
type PostgresSnapshotRepository struct {
	db *database.DB
}

// NewPostgresSnapshotRepository creates a new snapshot repository
func NewPostgresSnapshotRepository(db *database.DB) SnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// Record inserts one published snapshot's metadata
func (r *PostgresSnapshotRepository) Record(ctx context.Context, snap *snapshot.Snapshot) error {
	query := `
		INSERT INTO snapshots (id, season, fetched_at, play_count, max_completed_week)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		snap.ID, snap.Season, snap.FetchedAt, len(snap.Plays), snap.MaxCompletedWeek,
	)
	if err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}

	return nil
}

// LatestID retrieves the most recently recorded snapshot id for a season
func (r *PostgresSnapshotRepository) LatestID(ctx context.Context, season int) (uuid.UUID, error) {
	query := `
		SELECT id FROM snapshots
		WHERE season = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var id uuid.UUID
	err := r.db.GetPool().QueryRow(ctx, query, season).Scan(&id)
	if err == pgx.ErrNoRows {
		return uuid.Nil, models.ErrNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	return id, nil
}
