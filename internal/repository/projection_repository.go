package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// PostgresProjectionRepository implements ProjectionRepository for PostgreSQL
type PostgresProjectionRepository struct {
	db *database.DB
}

// NewPostgresProjectionRepository creates a new projection repository
func NewPostgresProjectionRepository(db *database.DB) ProjectionRepository {
	return &PostgresProjectionRepository{db: db}
}

// SaveWeekAnalysis archives one week's game projections. Matchup advantage
// detail stays in memory; only the blended numbers are stored.
func (r *PostgresProjectionRepository) SaveWeekAnalysis(ctx context.Context, analysis *models.WeekAnalysis) error {
	if len(analysis.Games) == 0 {
		return nil
	}

	query := `
		INSERT INTO game_projections (
			snapshot_id, season, week, game_key, bookmaker, total, away_spread, home_spread,
			away_team, away_implied_points, away_baseline_tds, away_projected_tds,
			home_team, home_implied_points, home_baseline_tds, home_projected_tds,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (snapshot_id, week, game_key) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, g := range analysis.Games {
		batch.Queue(query,
			analysis.SnapshotID, analysis.Season, g.Week, g.GameKey, g.Bookmaker,
			g.Total, g.AwaySpread, g.HomeSpread,
			g.Away.Team, g.Away.ImpliedPoints, g.Away.BaselineTDs, g.Away.ProjectedTDs,
			g.Home.Team, g.Home.ImpliedPoints, g.Home.BaselineTDs, g.Home.ProjectedTDs,
			analysis.GeneratedAt,
		)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save game projection: %w", err)
		}
	}

	return nil
}

// GetLatestWeek retrieves the most recently archived projections for a
// season and week, ordered by game key
func (r *PostgresProjectionRepository) GetLatestWeek(ctx context.Context, season, week int) ([]models.GameProjection, error) {
	latestQuery := `
		SELECT snapshot_id FROM game_projections
		WHERE season = $1 AND week = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var snapshotID uuid.UUID
	err := r.db.GetPool().QueryRow(ctx, latestQuery, season, week).Scan(&snapshotID)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find archived week: %w", err)
	}

	query := `
		SELECT game_key, week, bookmaker, total, away_spread, home_spread,
		       away_team, away_implied_points, away_baseline_tds, away_projected_tds,
		       home_team, home_implied_points, home_baseline_tds, home_projected_tds
		FROM game_projections
		WHERE snapshot_id = $1 AND week = $2
		ORDER BY game_key
	`

	rows, err := r.db.GetPool().Query(ctx, query, snapshotID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to query game projections: %w", err)
	}
	defer rows.Close()

	var games []models.GameProjection
	for rows.Next() {
		var g models.GameProjection
		err := rows.Scan(
			&g.GameKey, &g.Week, &g.Bookmaker, &g.Total, &g.AwaySpread, &g.HomeSpread,
			&g.Away.Team, &g.Away.ImpliedPoints, &g.Away.BaselineTDs, &g.Away.ProjectedTDs,
			&g.Home.Team, &g.Home.ImpliedPoints, &g.Home.BaselineTDs, &g.Home.ProjectedTDs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game projection: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game projections: %w", err)
	}

	return games, nil
}
