// Package snapshot holds the in-memory season dataset the analysis endpoints
// read from. A snapshot is immutable once built; refreshes publish a complete
// replacement instead of mutating shared state.
package snapshot

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Snapshot is one complete view of a season: the raw plays, the derived team
// stats, and the schedule. MaxCompletedWeek is the highest week with recorded
// plays and drives week resolution. Teams is the sorted set of offenses seen
// in the play data.
type Snapshot struct {
	ID               uuid.UUID
	Season           int
	FetchedAt        time.Time
	Plays            []models.Play
	Stats            *models.SeasonStats
	Schedule         []models.ScheduledGame
	MaxCompletedWeek int
	Teams            []string
}

// New builds a snapshot from refreshed season data
func New(season int, plays []models.Play, stats *models.SeasonStats, schedule []models.ScheduledGame) *Snapshot {
	return &Snapshot{
		ID:               uuid.New(),
		Season:           season,
		FetchedAt:        time.Now().UTC(),
		Plays:            plays,
		Stats:            stats,
		Schedule:         schedule,
		MaxCompletedWeek: maxWeek(plays),
		Teams:            offenseTeams(plays),
	}
}

// HasTeam reports whether the team appeared on offense anywhere in the
// play data.
func (s *Snapshot) HasTeam(team string) bool {
	for _, t := range s.Teams {
		if t == team {
			return true
		}
	}
	return false
}

func maxWeek(plays []models.Play) int {
	max := 0
	for i := range plays {
		if plays[i].Week > max {
			max = plays[i].Week
		}
	}
	return max
}

func offenseTeams(plays []models.Play) []string {
	seen := make(map[string]struct{})
	for i := range plays {
		if plays[i].OffenseTeam != "" {
			seen[plays[i].OffenseTeam] = struct{}{}
		}
	}
	teams := make([]string, 0, len(seen))
	for team := range seen {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}
