package database

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/config"
)

// schemaStatements creates the archive tables. Statements are idempotent so
// startup can always run them.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id UUID PRIMARY KEY,
		season INT NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL,
		play_count INT NOT NULL,
		max_completed_week INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_season_created ON snapshots (season, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS plays (
		season INT NOT NULL,
		game_id TEXT NOT NULL,
		week INT NOT NULL,
		season_type TEXT NOT NULL DEFAULT '',
		offense_team TEXT NOT NULL DEFAULT '',
		defense_team TEXT NOT NULL DEFAULT '',
		drive INT,
		yards_to_goal DOUBLE PRECISION,
		is_rush BOOLEAN NOT NULL DEFAULT FALSE,
		is_pass BOOLEAN NOT NULL DEFAULT FALSE,
		is_touchdown BOOLEAN NOT NULL DEFAULT FALSE,
		is_two_point_attempt BOOLEAN NOT NULL DEFAULT FALSE,
		rusher_id TEXT NOT NULL DEFAULT '',
		rusher_name TEXT NOT NULL DEFAULT '',
		receiver_id TEXT NOT NULL DEFAULT '',
		receiver_name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plays_season_offense ON plays (season, offense_team)`,
	`CREATE TABLE IF NOT EXISTS team_stats (
		snapshot_id UUID NOT NULL,
		season INT NOT NULL,
		team TEXT NOT NULL,
		family TEXT NOT NULL,
		drives INT NOT NULL,
		touchdowns INT NOT NULL,
		rate DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (snapshot_id, team, family)
	)`,
	`CREATE TABLE IF NOT EXISTS game_projections (
		snapshot_id UUID NOT NULL,
		season INT NOT NULL,
		week INT NOT NULL,
		game_key TEXT NOT NULL,
		bookmaker TEXT NOT NULL,
		total DOUBLE PRECISION NOT NULL,
		away_spread DOUBLE PRECISION NOT NULL,
		home_spread DOUBLE PRECISION NOT NULL,
		away_team TEXT NOT NULL,
		away_implied_points DOUBLE PRECISION NOT NULL,
		away_baseline_tds DOUBLE PRECISION NOT NULL,
		away_projected_tds DOUBLE PRECISION NOT NULL,
		home_team TEXT NOT NULL,
		home_implied_points DOUBLE PRECISION NOT NULL,
		home_baseline_tds DOUBLE PRECISION NOT NULL,
		home_projected_tds DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (snapshot_id, week, game_key)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_game_projections_season_week ON game_projections (season, week, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS player_odds (
		snapshot_id UUID NOT NULL,
		season INT NOT NULL,
		week INT NOT NULL,
		game_key TEXT NOT NULL,
		team TEXT NOT NULL,
		opponent TEXT NOT NULL,
		projected_tds DOUBLE PRECISION NOT NULL,
		player_id TEXT NOT NULL,
		player_name TEXT NOT NULL,
		rz_usage_share DOUBLE PRECISION NOT NULL,
		td_share DOUBLE PRECISION NOT NULL,
		allocation DOUBLE PRECISION NOT NULL,
		expected_tds DOUBLE PRECISION NOT NULL,
		probability DOUBLE PRECISION NOT NULL,
		american_odds INT NOT NULL,
		degenerate BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (snapshot_id, week, game_key, team, player_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_player_odds_season_week ON player_odds (season, week, created_at DESC)`,
}

// Initialize creates a database connection pool and prepares the archive
// schema
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates any missing archive tables and indexes
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
