package pipeline

import (
	"math"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func intPtr(v int) *int { return &v }

func regPlay(team, gameID string, drive int, yards float64) models.Play {
	return models.Play{
		GameID:      gameID,
		Season:      2025,
		Week:        1,
		SeasonType:  "REG",
		OffenseTeam: team,
		DefenseTeam: "OPP",
		Drive:       intPtr(drive),
		YardsToGoal: &yards,
	}
}

func rushPlay(team, gameID string, drive int, yards float64, rusherID, rusherName string) models.Play {
	p := regPlay(team, gameID, drive, yards)
	p.IsRush = true
	p.RusherID = rusherID
	p.RusherName = rusherName
	return p
}

func passPlay(team, gameID string, drive int, yards float64, receiverID, receiverName string) models.Play {
	p := regPlay(team, gameID, drive, yards)
	p.IsPass = true
	p.ReceiverID = receiverID
	p.ReceiverName = receiverName
	return p
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
