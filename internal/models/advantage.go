package models

// MatchupAdvantage scores one offense against one defense as percentage
// changes versus the league baselines. Nil fields mean the team has no
// current-season sample for that rate; zero means a measured push.
type MatchupAdvantage struct {
	OffenseTeam string `json:"offense_team"`
	DefenseTeam string `json:"defense_team"`

	OffenseRedZoneRate   *float64 `json:"offense_rz_rate"`
	OffenseAllDrivesRate *float64 `json:"offense_all_drives_rate"`
	DefenseRedZoneRate   *float64 `json:"defense_rz_allow_rate"`
	DefenseAllDrivesRate *float64 `json:"defense_all_drives_allow_rate"`

	OffenseRedZoneChange   *float64 `json:"offense_rz_pct_change"`
	OffenseAllDrivesChange *float64 `json:"offense_all_drives_pct_change"`
	DefenseRedZoneChange   *float64 `json:"defense_rz_pct_change"`
	DefenseAllDrivesChange *float64 `json:"defense_all_drives_pct_change"`

	OffenseCombined *float64 `json:"offense_combined"`
	DefenseCombined *float64 `json:"defense_combined"`

	// Total is the overall matchup advantage in percentage units. Consumers
	// convert to a decimal edge and clamp before applying it.
	Total *float64 `json:"total_advantage"`
}

// TotalOrDefault returns the total advantage, or def when no side of the
// matchup had a sample.
func (m *MatchupAdvantage) TotalOrDefault(def float64) float64 {
	if m == nil || m.Total == nil {
		return def
	}
	return *m.Total
}
