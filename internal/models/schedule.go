package models

import "time"

// ScheduledGame is one game from the season schedule. GameDay is the game's
// calendar date; kickoff times are not needed for week resolution.
type ScheduledGame struct {
	GameID   string    `json:"game_id"`
	Season   int       `json:"season"`
	Week     int       `json:"week"`
	GameDay  time.Time `json:"game_day"`
	AwayTeam string    `json:"away_team"`
	HomeTeam string    `json:"home_team"`
}

// GameKey returns the canonical "AWAY@HOME" key for the matchup.
func (s *ScheduledGame) GameKey() string {
	return GameKey(s.AwayTeam, s.HomeTeam)
}
