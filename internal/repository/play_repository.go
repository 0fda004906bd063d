package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

var playColumns = []string{
	"season", "game_id", "week", "season_type", "offense_team", "defense_team",
	"drive", "yards_to_goal", "is_rush", "is_pass", "is_touchdown",
	"is_two_point_attempt", "rusher_id", "rusher_name", "receiver_id", "receiver_name",
}

// PostgresPlayRepository implements PlayRepository for PostgreSQL
type PostgresPlayRepository struct {
	db *database.DB
}

// NewPostgresPlayRepository creates a new play repository
func NewPostgresPlayRepository(db *database.DB) PlayRepository {
	return &PostgresPlayRepository{db: db}
}

// ReplaceSeason swaps a season's play set atomically: the old rows go and
// the refreshed export is bulk-copied in, all inside one transaction.
func (r *PostgresPlayRepository) ReplaceSeason(ctx context.Context, season int, plays []models.Play) error {
	rows := make([][]interface{}, len(plays))
	for i, p := range plays {
		rows[i] = []interface{}{
			p.Season, p.GameID, p.Week, p.SeasonType, p.OffenseTeam, p.DefenseTeam,
			p.Drive, p.YardsToGoal, p.IsRush, p.IsPass, p.IsTouchdown,
			p.IsTwoPointAttempt, p.RusherID, p.RusherName, p.ReceiverID, p.ReceiverName,
		}
	}

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM plays WHERE season = $1`, season); err != nil {
			return fmt.Errorf("failed to clear season plays: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		count, err := tx.CopyFrom(ctx, pgx.Identifier{"plays"}, playColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("failed to batch insert plays: %w", err)
		}
		if count != int64(len(rows)) {
			return fmt.Errorf("inserted %d plays, expected %d", count, len(rows))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace season %d plays: %w", season, err)
	}

	return nil
}

// GetBySeason retrieves every stored play for a season
func (r *PostgresPlayRepository) GetBySeason(ctx context.Context, season int) ([]models.Play, error) {
	query := `
		SELECT season, game_id, week, season_type, offense_team, defense_team,
		       drive, yards_to_goal, is_rush, is_pass, is_touchdown,
		       is_two_point_attempt, rusher_id, rusher_name, receiver_id, receiver_name
		FROM plays
		WHERE season = $1
		ORDER BY game_id, drive NULLS LAST
	`

	rows, err := r.db.GetPool().Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query plays: %w", err)
	}
	defer rows.Close()

	var plays []models.Play
	for rows.Next() {
		var p models.Play
		err := rows.Scan(
			&p.Season, &p.GameID, &p.Week, &p.SeasonType, &p.OffenseTeam, &p.DefenseTeam,
			&p.Drive, &p.YardsToGoal, &p.IsRush, &p.IsPass, &p.IsTouchdown,
			&p.IsTwoPointAttempt, &p.RusherID, &p.RusherName, &p.ReceiverID, &p.ReceiverName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan play: %w", err)
		}
		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plays: %w", err)
	}

	return plays, nil
}

// CountBySeason counts a season's stored plays
func (r *PostgresPlayRepository) CountBySeason(ctx context.Context, season int) (int64, error) {
	var count int64
	err := r.db.GetPool().QueryRow(ctx, `SELECT COUNT(*) FROM plays WHERE season = $1`, season).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count plays: %w", err)
	}
	return count, nil
}
