package pipeline

import (
	"github.com/yourusername/gridiron-edge/internal/models"
)

// RedZoneSample is a team's filtered red-zone play set: every offensive
// rush or pass snapped inside the 20 on a drive that produced at least
// MinDrivePlays such plays. TotalPlays is the share denominator.
type RedZoneSample struct {
	Team       string
	Plays      []models.Play
	TotalPlays int
	Drives     int
}

// driveKey identifies one drive within one game. Plays that cannot form a
// key never reach a bucket.
type driveKey struct {
	gameID string
	drive  int
}

// DriveAggregator reduces a play stream to sustained red-zone opportunities.
// Single-play drive appearances are treated as noise and dropped.
type DriveAggregator struct {
	minDrivePlays int
}

// NewDriveAggregator builds an aggregator with the given drive floor.
func NewDriveAggregator(minDrivePlays int) *DriveAggregator {
	if minDrivePlays < 1 {
		minDrivePlays = 1
	}
	return &DriveAggregator{minDrivePlays: minDrivePlays}
}

// RedZonePlays filters plays to the team's qualifying red-zone snaps,
// preserving input order. Zero qualifying drives yields an empty sample.
func (a *DriveAggregator) RedZonePlays(plays []models.Play, team string) RedZoneSample {
	sample := RedZoneSample{Team: team}

	counts := make(map[driveKey]int)
	filtered := make([]models.Play, 0)
	for _, p := range plays {
		if !a.qualifies(&p, team) {
			continue
		}
		filtered = append(filtered, p)
		counts[driveKey{gameID: p.GameID, drive: *p.Drive}]++
	}

	for _, p := range filtered {
		if counts[driveKey{gameID: p.GameID, drive: *p.Drive}] < a.minDrivePlays {
			continue
		}
		sample.Plays = append(sample.Plays, p)
	}
	sample.TotalPlays = len(sample.Plays)

	for _, n := range counts {
		if n >= a.minDrivePlays {
			sample.Drives++
		}
	}
	return sample
}

func (a *DriveAggregator) qualifies(p *models.Play, team string) bool {
	if p.OffenseTeam != team {
		return false
	}
	if !p.HasDriveKey() || !p.InsideRedZone() {
		return false
	}
	if p.IsTwoPointAttempt {
		return false
	}
	return p.IsRush || p.IsPass
}
