package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayerOddsEntry prices one player's anytime-touchdown market from their
// allocated slice of the team's projected touchdowns. Degenerate marks
// entries whose probability fell outside (0, 1) and was clamped for the
// odds conversion.
type PlayerOddsEntry struct {
	PlayerID     string  `db:"player_id" json:"player_id"`
	PlayerName   string  `db:"player_name" json:"player_name"`
	RZUsageShare float64 `db:"rz_usage_share" json:"rz_usage_share"`
	TDShare      float64 `db:"td_share" json:"td_share"`
	Allocation   float64 `db:"allocation" json:"allocation"`
	ExpectedTDs  float64 `db:"expected_tds" json:"expected_tds"`
	Probability  float64 `db:"probability" json:"anytime_probability"`
	AmericanOdds int     `db:"american_odds" json:"american_odds"`
	Degenerate   bool    `db:"degenerate" json:"degenerate,omitempty"`
}

// TeamPlayerOdds is one side of a game: the team's projected touchdowns and
// the per-player pricing derived from them.
type TeamPlayerOdds struct {
	Team         string            `json:"team"`
	Opponent     string            `json:"opponent"`
	ProjectedTDs float64           `json:"projected_tds"`
	Players      []PlayerOddsEntry `json:"players"`
}

// GamePlayerOdds holds both sides of one game's player pricing.
type GamePlayerOdds struct {
	GameKey string         `json:"game_key"`
	Week    int            `json:"week"`
	Away    TeamPlayerOdds `json:"away"`
	Home    TeamPlayerOdds `json:"home"`
}

// WeekPlayerOdds is the full anytime-touchdown board for one week.
type WeekPlayerOdds struct {
	SnapshotID  uuid.UUID        `json:"snapshot_id"`
	Season      int              `json:"season"`
	Week        int              `json:"week"`
	GeneratedAt time.Time        `json:"generated_at"`
	Games       []GamePlayerOdds `json:"games"`
	Skipped     []SkippedGame    `json:"skipped_games"`
}
