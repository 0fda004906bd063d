package pipeline

import (
	"testing"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestSharesTwoPlayRoundTrip(t *testing.T) {
	plays := []models.Play{
		rushPlay("KC", "g1", 1, 10, "p1", "Player One"),
		rushPlay("KC", "g1", 1, 5, "p1", "Player One"),
	}

	agg := NewDriveAggregator(2)
	calc := NewUsageCalculator()
	rz := agg.RedZonePlays(plays, "KC")
	td := calc.TouchdownPlays(plays, "KC")
	rows := calc.Shares(rz, td)

	if len(rows) != 1 {
		t.Fatalf("expected one player, got %d", len(rows))
	}
	if !almostEqual(rows[0].RZUsageShare, 1.0) {
		t.Fatalf("expected usage share 1.0, got %v", rows[0].RZUsageShare)
	}
	if !almostEqual(rows[0].TDShare, 0) {
		t.Fatalf("expected td share 0, got %v", rows[0].TDShare)
	}
}

func TestSharesAccumulateByID(t *testing.T) {
	rush := rushPlay("KC", "g1", 1, 10, "p1", "P.One")
	catch := passPlay("KC", "g1", 1, 5, "p1", "Patrick One")
	other := rushPlay("KC", "g1", 1, 3, "p2", "Player Two")
	filler := passPlay("KC", "g1", 1, 2, "p2", "Player Two")

	calc := NewUsageCalculator()
	rz := NewDriveAggregator(2).RedZonePlays([]models.Play{rush, catch, other, filler}, "KC")
	rows := calc.Shares(rz, TouchdownSample{Team: "KC"})

	if len(rows) != 2 {
		t.Fatalf("expected two identities, got %d", len(rows))
	}
	var p1 *models.PlayerUsage
	for i := range rows {
		if rows[i].PlayerID == "p1" {
			p1 = &rows[i]
		}
	}
	if p1 == nil {
		t.Fatalf("missing accumulated identity p1")
	}
	if !almostEqual(p1.RZUsageShare, 0.5) {
		t.Fatalf("rush and catch must accumulate to 0.5, got %v", p1.RZUsageShare)
	}
	if p1.PlayerName != "Patrick One" {
		t.Fatalf("expected most recently observed name, got %q", p1.PlayerName)
	}
}

func TestSharesDistinctIDsSameName(t *testing.T) {
	a := rushPlay("KC", "g1", 1, 10, "p1", "J. Smith")
	b := rushPlay("KC", "g1", 1, 6, "p2", "J. Smith")

	calc := NewUsageCalculator()
	rz := NewDriveAggregator(2).RedZonePlays([]models.Play{a, b}, "KC")
	rows := calc.Shares(rz, TouchdownSample{Team: "KC"})

	if len(rows) != 2 {
		t.Fatalf("same display name must not merge identities, got %d rows", len(rows))
	}
	for _, r := range rows {
		if !almostEqual(r.RZUsageShare, 0.5) {
			t.Errorf("expected 0.5 share for %s, got %v", r.PlayerID, r.RZUsageShare)
		}
	}
}

func TestTouchdownShares(t *testing.T) {
	td1 := rushPlay("KC", "g1", 1, 45, "p1", "Player One")
	td1.IsTouchdown = true
	td2 := passPlay("KC", "g2", 3, 60, "p2", "Player Two")
	td2.IsTouchdown = true
	uncredited := regPlay("KC", "g2", 5, 30)
	uncredited.IsTouchdown = true
	noTD := rushPlay("KC", "g1", 2, 10, "p1", "Player One")

	calc := NewUsageCalculator()
	td := calc.TouchdownPlays([]models.Play{td1, td2, uncredited, noTD}, "KC")
	if td.TotalPlays != 3 {
		t.Fatalf("td denominator must count every touchdown play, got %d", td.TotalPlays)
	}

	rows := calc.Shares(RedZoneSample{Team: "KC"}, td)
	for _, r := range rows {
		if !almostEqual(r.TDShare, round4(1.0/3.0)) {
			t.Errorf("expected 1/3 td share for %s, got %v", r.PlayerID, r.TDShare)
		}
	}
}

func TestSharesSorted(t *testing.T) {
	plays := []models.Play{
		rushPlay("KC", "g1", 1, 10, "low", "Low Usage"),
		rushPlay("KC", "g1", 1, 8, "high", "High Usage"),
		rushPlay("KC", "g1", 1, 6, "high", "High Usage"),
		rushPlay("KC", "g1", 1, 4, "high", "High Usage"),
	}

	calc := NewUsageCalculator()
	rz := NewDriveAggregator(2).RedZonePlays(plays, "KC")
	rows := calc.Shares(rz, TouchdownSample{Team: "KC"})

	if rows[0].PlayerID != "high" {
		t.Fatalf("rows must sort by descending combined share, got %s first", rows[0].PlayerID)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].CombinedShare() > rows[i-1].CombinedShare() {
			t.Fatalf("rows out of order at %d", i)
		}
	}
}

func TestSharesEmpty(t *testing.T) {
	calc := NewUsageCalculator()
	rows := calc.Shares(RedZoneSample{Team: "KC"}, TouchdownSample{Team: "KC"})
	if len(rows) != 0 {
		t.Fatalf("expected no rows for empty samples, got %d", len(rows))
	}
}

func TestSharesRounding(t *testing.T) {
	plays := []models.Play{
		rushPlay("KC", "g1", 1, 10, "p1", "Player One"),
		rushPlay("KC", "g1", 1, 8, "p2", "Player Two"),
		rushPlay("KC", "g1", 1, 6, "p2", "Player Two"),
	}

	calc := NewUsageCalculator()
	rz := NewDriveAggregator(2).RedZonePlays(plays, "KC")
	rows := calc.Shares(rz, TouchdownSample{Team: "KC"})

	for _, r := range rows {
		if r.PlayerID == "p1" && !almostEqual(r.RZUsageShare, 0.3333) {
			t.Fatalf("expected 0.3333, got %v", r.RZUsageShare)
		}
	}
}
