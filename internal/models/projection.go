package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamProjection is one side of a game: the market-implied baseline and the
// advantage-adjusted touchdown projection for a single team.
type TeamProjection struct {
	Team          string            `db:"team" json:"team"`
	ImpliedPoints float64           `db:"implied_points" json:"implied_points"`
	BaselineTDs   float64           `db:"baseline_tds" json:"baseline_tds"`
	ProjectedTDs  float64           `db:"projected_tds" json:"projected_tds"`
	Matchup       *MatchupAdvantage `db:"-" json:"matchup"`
}

// GameProjection holds both sides of a scheduled game together with the
// market line that produced them.
type GameProjection struct {
	GameKey    string         `db:"game_key" json:"game_key"`
	Week       int            `db:"week" json:"week"`
	Bookmaker  string         `db:"bookmaker" json:"bookmaker"`
	Total      float64        `db:"total" json:"total"`
	AwaySpread float64        `db:"away_spread" json:"away_spread"`
	HomeSpread float64        `db:"home_spread" json:"home_spread"`
	Away       TeamProjection `json:"away"`
	Home       TeamProjection `json:"home"`
}

// MaxAdvantage returns the larger of the two sides' total advantages, used
// to order a week's games from most to least interesting. Sides with no
// sample rank below any measured advantage.
func (g *GameProjection) MaxAdvantage() float64 {
	const noSample = -999
	away := g.Away.Matchup.TotalOrDefault(noSample)
	home := g.Home.Matchup.TotalOrDefault(noSample)
	if away > home {
		return away
	}
	return home
}

// SkippedGame records a scheduled matchup that was dropped from a week's
// projections, and why. Games are never silently defaulted.
type SkippedGame struct {
	GameKey  string `json:"game_key"`
	AwayTeam string `json:"away_team"`
	HomeTeam string `json:"home_team"`
	Reason   string `json:"reason"`
}

// WeekAnalysis is the full projection set for one week, ordered by
// descending maximum matchup advantage.
type WeekAnalysis struct {
	SnapshotID  uuid.UUID        `json:"snapshot_id"`
	Season      int              `json:"season"`
	Week        int              `json:"week"`
	GeneratedAt time.Time        `json:"generated_at"`
	Games       []GameProjection `json:"games"`
	Skipped     []SkippedGame    `json:"skipped_games"`
}
