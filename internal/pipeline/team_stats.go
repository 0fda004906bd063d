package pipeline

import (
	"github.com/yourusername/gridiron-edge/internal/models"
)

// teamDriveKey identifies one team's involvement in one drive of one game.
type teamDriveKey struct {
	team   string
	gameID string
	drive  int
}

// driveAgg accumulates one drive: a drive scored if any play in it was a
// touchdown.
type driveAgg struct {
	plays     int
	touchdown bool
}

// TeamStatsCalculator derives the four drive-rate families for every team
// from a season of regular-season plays. The team-level red-zone filter is
// field position and drive identity only; the rush/pass play filter belongs
// to player usage, not to team rates.
type TeamStatsCalculator struct {
	minDrivePlays int
}

// NewTeamStatsCalculator builds a calculator with the given red-zone drive
// floor.
func NewTeamStatsCalculator(minDrivePlays int) *TeamStatsCalculator {
	if minDrivePlays < 1 {
		minDrivePlays = 1
	}
	return &TeamStatsCalculator{minDrivePlays: minDrivePlays}
}

// SeasonStats computes every team's red-zone and all-drives scoring and
// allowed rates. Teams with no qualifying drives are absent from the
// corresponding map.
func (c *TeamStatsCalculator) SeasonStats(plays []models.Play, season int) *models.SeasonStats {
	reg := make([]models.Play, 0, len(plays))
	for _, p := range plays {
		if p.IsRegularSeason() {
			reg = append(reg, p)
		}
	}

	offense := func(p *models.Play) string { return p.OffenseTeam }
	defense := func(p *models.Play) string { return p.DefenseTeam }

	return &models.SeasonStats{
		Season:           season,
		RedZoneOffense:   c.driveRates(reg, offense, true, c.minDrivePlays),
		RedZoneDefense:   c.driveRates(reg, defense, true, c.minDrivePlays),
		AllDrivesOffense: c.driveRates(reg, offense, false, 1),
		AllDrivesDefense: c.driveRates(reg, defense, false, 1),
	}
}

// driveRates groups plays into drives for the team named by teamOf, scores
// each drive by its touchdown maximum, and rolls drives up into per-team
// rates rounded to one decimal.
func (c *TeamStatsCalculator) driveRates(plays []models.Play, teamOf func(*models.Play) string, redZoneOnly bool, floor int) map[string]models.RateSample {
	drives := make(map[teamDriveKey]*driveAgg)
	for i := range plays {
		p := &plays[i]
		team := teamOf(p)
		if team == "" || !p.HasDriveKey() {
			continue
		}
		if redZoneOnly && !p.InsideRedZone() {
			continue
		}
		k := teamDriveKey{team: team, gameID: p.GameID, drive: *p.Drive}
		d := drives[k]
		if d == nil {
			d = &driveAgg{}
			drives[k] = d
		}
		d.plays++
		if p.IsTouchdown {
			d.touchdown = true
		}
	}

	rates := make(map[string]models.RateSample)
	for k, d := range drives {
		if d.plays < floor {
			continue
		}
		s := rates[k.team]
		s.Drives++
		if d.touchdown {
			s.Touchdowns++
		}
		rates[k.team] = s
	}
	for team, s := range rates {
		s.Rate = round1(float64(s.Touchdowns) / float64(s.Drives) * 100)
		rates[team] = s
	}
	return rates
}
