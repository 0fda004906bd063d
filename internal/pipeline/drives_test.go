package pipeline

import (
	"testing"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestRedZonePlaysDriveFloor(t *testing.T) {
	plays := []models.Play{
		rushPlay("KC", "g1", 1, 15, "p1", "Player One"),
		rushPlay("KC", "g1", 1, 8, "p1", "Player One"),
		rushPlay("KC", "g1", 2, 5, "p2", "Player Two"),
	}

	agg := NewDriveAggregator(2)
	sample := agg.RedZonePlays(plays, "KC")

	if sample.TotalPlays != 2 {
		t.Fatalf("expected 2 plays after drive floor, got %d", sample.TotalPlays)
	}
	if sample.Drives != 1 {
		t.Fatalf("expected 1 qualifying drive, got %d", sample.Drives)
	}
	for _, p := range sample.Plays {
		if *p.Drive != 1 {
			t.Errorf("single-play drive survived the floor: drive %d", *p.Drive)
		}
	}
}

func TestRedZonePlaysFilters(t *testing.T) {
	outside := rushPlay("KC", "g1", 1, 35, "p1", "Player One")

	twoPoint := rushPlay("KC", "g1", 2, 2, "p1", "Player One")
	twoPoint.IsTwoPointAttempt = true

	kneel := regPlay("KC", "g1", 3, 10)

	otherTeam := rushPlay("BUF", "g1", 4, 10, "p9", "Other Player")

	keeper1 := rushPlay("KC", "g1", 5, 12, "p1", "Player One")
	keeper2 := passPlay("KC", "g1", 5, 7, "p2", "Player Two")

	agg := NewDriveAggregator(2)
	sample := agg.RedZonePlays([]models.Play{outside, twoPoint, kneel, otherTeam, keeper1, keeper2}, "KC")

	if sample.TotalPlays != 2 {
		t.Fatalf("expected only the two drive-5 plays, got %d", sample.TotalPlays)
	}
}

func TestRedZonePlaysMissingKeys(t *testing.T) {
	noDrive := rushPlay("KC", "g1", 1, 10, "p1", "Player One")
	noDrive.Drive = nil

	noGame := rushPlay("KC", "", 1, 10, "p1", "Player One")

	noYards := rushPlay("KC", "g1", 1, 10, "p1", "Player One")
	noYards.YardsToGoal = nil

	agg := NewDriveAggregator(2)
	sample := agg.RedZonePlays([]models.Play{noDrive, noDrive, noGame, noGame, noYards}, "KC")

	if sample.TotalPlays != 0 {
		t.Fatalf("plays without grouping keys must be excluded, got %d", sample.TotalPlays)
	}
	if sample.Drives != 0 {
		t.Fatalf("expected no drives, got %d", sample.Drives)
	}
}

func TestRedZonePlaysEmpty(t *testing.T) {
	agg := NewDriveAggregator(2)
	sample := agg.RedZonePlays(nil, "KC")
	if sample.TotalPlays != 0 || len(sample.Plays) != 0 {
		t.Fatalf("expected empty sample for no input")
	}
}
