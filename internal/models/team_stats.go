package models

// RateSample is one team's drive-level scoring sample for a single rate
// family: how many qualifying drives, how many ended in a touchdown, and the
// resulting percentage rate rounded to one decimal.
type RateSample struct {
	Drives     int     `db:"drives" json:"drives"`
	Touchdowns int     `db:"touchdowns" json:"touchdowns"`
	Rate       float64 `db:"rate" json:"rate"`
}

// SeasonStats holds the four drive-rate families for every team with a
// current-season sample. A team absent from a map has no qualifying drives
// for that rate; consumers treat that as "no data", never as zero.
type SeasonStats struct {
	Season           int                   `json:"season"`
	RedZoneOffense   map[string]RateSample `json:"red_zone_offense"`
	RedZoneDefense   map[string]RateSample `json:"red_zone_defense"`
	AllDrivesOffense map[string]RateSample `json:"all_drives_offense"`
	AllDrivesDefense map[string]RateSample `json:"all_drives_defense"`
}

// TeamCount returns the number of distinct teams with a sample in any rate
// family.
func (s *SeasonStats) TeamCount() int {
	teams := make(map[string]struct{})
	for team := range s.RedZoneOffense {
		teams[team] = struct{}{}
	}
	for team := range s.RedZoneDefense {
		teams[team] = struct{}{}
	}
	for team := range s.AllDrivesOffense {
		teams[team] = struct{}{}
	}
	for team := range s.AllDrivesDefense {
		teams[team] = struct{}{}
	}
	return len(teams)
}

// LeagueBaseline carries the fixed league-average drive rates that matchup
// advantages are measured against. Values are percentages.
type LeagueBaseline struct {
	RedZoneScoring   float64 `mapstructure:"red_zone_scoring" json:"red_zone_scoring"`
	RedZoneAllow     float64 `mapstructure:"red_zone_allow" json:"red_zone_allow"`
	AllDrivesScoring float64 `mapstructure:"all_drives_scoring" json:"all_drives_scoring"`
	AllDrivesAllow   float64 `mapstructure:"all_drives_allow" json:"all_drives_allow"`
}

// DefaultLeagueBaseline returns the league-average rates used when no
// override is configured.
func DefaultLeagueBaseline() LeagueBaseline {
	return LeagueBaseline{
		RedZoneScoring:   59.0,
		RedZoneAllow:     59.0,
		AllDrivesScoring: 23.3,
		AllDrivesAllow:   23.3,
	}
}
