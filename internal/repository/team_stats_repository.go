package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Rate family discriminators for the team_stats table.
const (
	familyRedZoneOffense   = "rz_offense"
	familyRedZoneDefense   = "rz_defense"
	familyAllDrivesOffense = "all_offense"
	familyAllDrivesDefense = "all_defense"
)

// PostgresTeamStatsRepository implements TeamStatsRepository for PostgreSQL
type PostgresTeamStatsRepository struct {
	db *database.DB
}

// NewPostgresTeamStatsRepository creates a new team stats repository
func NewPostgresTeamStatsRepository(db *database.DB) TeamStatsRepository {
	return &PostgresTeamStatsRepository{db: db}
}

// SaveSeasonStats writes every team's rate samples for one snapshot
func (r *PostgresTeamStatsRepository) SaveSeasonStats(ctx context.Context, snapshotID uuid.UUID, stats *models.SeasonStats) error {
	query := `
		INSERT INTO team_stats (snapshot_id, season, team, family, drives, touchdowns, rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (snapshot_id, team, family) DO NOTHING
	`

	batch := &pgx.Batch{}
	queueFamily := func(family string, samples map[string]models.RateSample) {
		for team, sample := range samples {
			batch.Queue(query, snapshotID, stats.Season, team, family, sample.Drives, sample.Touchdowns, sample.Rate)
		}
	}
	queueFamily(familyRedZoneOffense, stats.RedZoneOffense)
	queueFamily(familyRedZoneDefense, stats.RedZoneDefense)
	queueFamily(familyAllDrivesOffense, stats.AllDrivesOffense)
	queueFamily(familyAllDrivesDefense, stats.AllDrivesDefense)

	if batch.Len() == 0 {
		return nil
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save team stats: %w", err)
		}
	}

	return nil
}

// GetBySnapshot rebuilds a snapshot's SeasonStats from its stored rows
func (r *PostgresTeamStatsRepository) GetBySnapshot(ctx context.Context, snapshotID uuid.UUID, season int) (*models.SeasonStats, error) {
	query := `
		SELECT team, family, drives, touchdowns, rate
		FROM team_stats
		WHERE snapshot_id = $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team stats: %w", err)
	}
	defer rows.Close()

	stats := &models.SeasonStats{
		Season:           season,
		RedZoneOffense:   make(map[string]models.RateSample),
		RedZoneDefense:   make(map[string]models.RateSample),
		AllDrivesOffense: make(map[string]models.RateSample),
		AllDrivesDefense: make(map[string]models.RateSample),
	}

	found := false
	for rows.Next() {
		var team, family string
		var sample models.RateSample
		if err := rows.Scan(&team, &family, &sample.Drives, &sample.Touchdowns, &sample.Rate); err != nil {
			return nil, fmt.Errorf("failed to scan team stats: %w", err)
		}
		found = true

		switch family {
		case familyRedZoneOffense:
			stats.RedZoneOffense[team] = sample
		case familyRedZoneDefense:
			stats.RedZoneDefense[team] = sample
		case familyAllDrivesOffense:
			stats.AllDrivesOffense[team] = sample
		case familyAllDrivesDefense:
			stats.AllDrivesDefense[team] = sample
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team stats: %w", err)
	}

	if !found {
		return nil, models.ErrNotFound
	}

	return stats, nil
}
