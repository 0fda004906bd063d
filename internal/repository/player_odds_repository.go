package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

var playerOddsColumns = []string{
	"snapshot_id", "season", "week", "game_key", "team", "opponent", "projected_tds",
	"player_id", "player_name", "rz_usage_share", "td_share", "allocation",
	"expected_tds", "probability", "american_odds", "degenerate", "created_at",
}

// PostgresPlayerOddsRepository implements PlayerOddsRepository for PostgreSQL
type PostgresPlayerOddsRepository struct {
	db *database.DB
}

// NewPostgresPlayerOddsRepository creates a new player odds repository
func NewPostgresPlayerOddsRepository(db *database.DB) PlayerOddsRepository {
	return &PostgresPlayerOddsRepository{db: db}
}

// SaveWeekOdds archives one week's player board. Re-archiving the same
// snapshot and week replaces the earlier rows.
func (r *PostgresPlayerOddsRepository) SaveWeekOdds(ctx context.Context, board *models.WeekPlayerOdds) error {
	var rows [][]interface{}
	appendSide := func(gameKey string, side models.TeamPlayerOdds) {
		for _, p := range side.Players {
			rows = append(rows, []interface{}{
				board.SnapshotID, board.Season, board.Week, gameKey, side.Team, side.Opponent,
				side.ProjectedTDs, p.PlayerID, p.PlayerName, p.RZUsageShare, p.TDShare,
				p.Allocation, p.ExpectedTDs, p.Probability, p.AmericanOdds, p.Degenerate,
				board.GeneratedAt,
			})
		}
	}
	for _, g := range board.Games {
		appendSide(g.GameKey, g.Away)
		appendSide(g.GameKey, g.Home)
	}

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM player_odds WHERE snapshot_id = $1 AND week = $2`,
			board.SnapshotID, board.Week,
		)
		if err != nil {
			return fmt.Errorf("failed to clear week board: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		count, err := tx.CopyFrom(ctx, pgx.Identifier{"player_odds"}, playerOddsColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("failed to batch insert player odds: %w", err)
		}
		if count != int64(len(rows)) {
			return fmt.Errorf("inserted %d player odds rows, expected %d", count, len(rows))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save week %d player odds: %w", board.Week, err)
	}

	return nil
}

// GetLatestWeek rebuilds the most recently archived board for a season and
// week. Skipped-game markers are not archived and come back empty.
func (r *PostgresPlayerOddsRepository) GetLatestWeek(ctx context.Context, season, week int) (*models.WeekPlayerOdds, error) {
	latestQuery := `
		SELECT snapshot_id FROM player_odds
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
		return nil, fmt.Errorf("failed to find archived board: %w", err)
	}

	query := `
		SELECT game_key, team, opponent, projected_tds, player_id, player_name,
		       rz_usage_share, td_share, allocation, expected_tds, probability,
		       american_odds, degenerate, created_at
		FROM player_odds
		WHERE snapshot_id = $1 AND week = $2
		ORDER BY game_key, team, allocation DESC, player_id
	`

	rows, err := r.db.GetPool().Query(ctx, query, snapshotID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to query player odds: %w", err)
	}
	defer rows.Close()

	board := &models.WeekPlayerOdds{
		SnapshotID: snapshotID,
		Season:     season,
		Week:       week,
	}
	byGame := make(map[string]*models.GamePlayerOdds)

	for rows.Next() {
		var gameKey, team, opponent string
		var projectedTDs float64
		var entry models.PlayerOddsEntry
		var createdAt time.Time
		err := rows.Scan(
			&gameKey, &team, &opponent, &projectedTDs, &entry.PlayerID, &entry.PlayerName,
			&entry.RZUsageShare, &entry.TDShare, &entry.Allocation, &entry.ExpectedTDs,
			&entry.Probability, &entry.AmericanOdds, &entry.Degenerate, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player odds: %w", err)
		}

		if createdAt.After(board.GeneratedAt) {
			board.GeneratedAt = createdAt
		}

		game, ok := byGame[gameKey]
		if !ok {
			game = &models.GamePlayerOdds{GameKey: gameKey, Week: week}
			byGame[gameKey] = game
		}

		awayTeam, _, found := strings.Cut(gameKey, "@")
		side := &game.Home
		if found && team == awayTeam {
			side = &game.Away
		}
		side.Team = team
		side.Opponent = opponent
		side.ProjectedTDs = projectedTDs
		side.Players = append(side.Players, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read player odds: %w", err)
	}

	keys := make([]string, 0, len(byGame))
	for key := range byGame {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		board.Games = append(board.Games, *byGame[key])
	}

	return board, nil
}
