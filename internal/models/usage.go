package models

import "time"

// PlayerUsage is one player's share of a team's scoring opportunities:
// red-zone usage over qualifying red-zone plays and touchdown share over the
// team's full-season touchdowns. Shares are fractions rounded to four
// decimals. A player who both rushes and receives accumulates one combined
// share per category under a single identity.
type PlayerUsage struct {
	PlayerID     string  `db:"player_id" json:"player_id"`
	PlayerName   string  `db:"player_name" json:"player_name"`
	RZUsageShare float64 `db:"rz_usage_share" json:"rz_usage_share"`
	TDShare      float64 `db:"td_share" json:"td_share"`
}

// CombinedShare is the sort key for usage listings.
func (p *PlayerUsage) CombinedShare() float64 {
	return p.RZUsageShare + p.TDShare
}

// TeamUsage is one team's full usage breakdown, ordered by descending
// combined share. Empty Players means the team had no qualifying sample.
type TeamUsage struct {
	Team           string        `json:"team"`
	Season         int           `json:"season"`
	RedZonePlays   int           `json:"rz_plays"`
	TouchdownPlays int           `json:"td_plays"`
	Players        []PlayerUsage `json:"players"`
	GeneratedAt    time.Time     `json:"generated_at"`
}
