package pipeline

import (
	"sort"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// TouchdownSample is a team's full-season touchdown plays. Unlike red-zone
// usage there is no drive floor and no field-position filter.
type TouchdownSample struct {
	Team       string
	Plays      []models.Play
	TotalPlays int
}

// shareAccum accumulates one player identity's counts across rushing and
// receiving. The display name tracks the most recently observed non-empty
// spelling for that identity.
type shareAccum struct {
	rzCount  int
	tdCount  int
	lastName string
}

// UsageCalculator turns filtered play samples into per-player shares.
// Players are accumulated by id, never by display name, so a player listed
// under two spellings still gets one combined share.
type UsageCalculator struct{}

// NewUsageCalculator builds a UsageCalculator.
func NewUsageCalculator() *UsageCalculator {
	return &UsageCalculator{}
}

// TouchdownPlays collects every play on which the team's offense was on the
// field and a touchdown was scored. The play count includes touchdowns with
// no creditable rusher or receiver; those dilute every share.
func (c *UsageCalculator) TouchdownPlays(plays []models.Play, team string) TouchdownSample {
	s := TouchdownSample{Team: team}
	for _, p := range plays {
		if p.OffenseTeam == team && p.IsTouchdown {
			s.Plays = append(s.Plays, p)
		}
	}
	s.TotalPlays = len(s.Plays)
	return s
}

// Shares combines a red-zone sample and a touchdown sample into usage rows
// sorted by descending combined share. Shares are fractions of each sample's
// total play count, rounded to four decimals. Empty samples yield no rows.
//
// A play that credits the same player as both rusher and receiver counts
// twice, so a team's shares are not guaranteed to sum to 1. The allocator
// normalizes downstream; these raw shares are reported as computed.
func (c *UsageCalculator) Shares(rz RedZoneSample, td TouchdownSample) []models.PlayerUsage {
	accum := make(map[string]*shareAccum)
	order := make([]string, 0)

	credit := func(id, name string, touchdown bool) {
		if id == "" {
			return
		}
		a, ok := accum[id]
		if !ok {
			a = &shareAccum{}
			accum[id] = a
			order = append(order, id)
		}
		if touchdown {
			a.tdCount++
		} else {
			a.rzCount++
		}
		if name != "" {
			a.lastName = name
		}
	}

	for _, p := range rz.Plays {
		if p.IsRush {
			credit(p.RusherID, p.RusherName, false)
		}
		if p.IsPass {
			credit(p.ReceiverID, p.ReceiverName, false)
		}
	}
	for _, p := range td.Plays {
		if p.IsRush {
			credit(p.RusherID, p.RusherName, true)
		}
		if p.IsPass {
			credit(p.ReceiverID, p.ReceiverName, true)
		}
	}

	rows := make([]models.PlayerUsage, 0, len(order))
	for _, id := range order {
		a := accum[id]
		row := models.PlayerUsage{PlayerID: id, PlayerName: a.lastName}
		if rz.TotalPlays > 0 {
			row.RZUsageShare = round4(float64(a.rzCount) / float64(rz.TotalPlays))
		}
		if td.TotalPlays > 0 {
			row.TDShare = round4(float64(a.tdCount) / float64(td.TotalPlays))
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CombinedShare() > rows[j].CombinedShare()
	})
	return rows
}
