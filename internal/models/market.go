package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MarketLine is one game's betting line from a single bookmaker: the game
// total and both team spreads. A line only exists when every piece was
// present in the vendor payload; partial markets never produce a line.
type MarketLine struct {
	EventID      string          `json:"event_id"`
	Bookmaker    string          `json:"bookmaker"`
	CommenceTime time.Time       `json:"commence_time"`
	AwayTeam     string          `json:"away_team"`
	HomeTeam     string          `json:"home_team"`
	AwayTeamName string          `json:"away_team_name"`
	HomeTeamName string          `json:"home_team_name"`
	Total        decimal.Decimal `json:"total"`
	AwaySpread   decimal.Decimal `json:"away_spread"`
	HomeSpread   decimal.Decimal `json:"home_spread"`
}

// GameKey returns the canonical "AWAY@HOME" key for the line.
func (m *MarketLine) GameKey() string {
	return fmt.Sprintf("%s@%s", m.AwayTeam, m.HomeTeam)
}

// GameKey builds the canonical "AWAY@HOME" matchup key.
func GameKey(awayTeam, homeTeam string) string {
	return fmt.Sprintf("%s@%s", awayTeam, homeTeam)
}
