package pipeline

import (
	"testing"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestSeasonStatsDriveTouchdownMax(t *testing.T) {
	p1 := regPlay("KC", "g1", 1, 15)
	p2 := regPlay("KC", "g1", 1, 8)
	p2.IsTouchdown = true
	p3 := regPlay("KC", "g1", 1, 2)
	p3.IsTouchdown = true

	calc := NewTeamStatsCalculator(2)
	stats := calc.SeasonStats([]models.Play{p1, p2, p3}, 2025)

	s, ok := stats.RedZoneOffense["KC"]
	if !ok {
		t.Fatalf("expected KC red-zone sample")
	}
	if s.Drives != 1 || s.Touchdowns != 1 {
		t.Fatalf("two touchdown plays on one drive must score once: %+v", s)
	}
	if !almostEqual(s.Rate, 100.0) {
		t.Fatalf("expected 100.0 rate, got %v", s.Rate)
	}
}

func TestSeasonStatsRedZoneFloor(t *testing.T) {
	lone := regPlay("KC", "g1", 1, 10)
	lone.IsTouchdown = true

	calc := NewTeamStatsCalculator(2)
	stats := calc.SeasonStats([]models.Play{lone}, 2025)

	if _, ok := stats.RedZoneOffense["KC"]; ok {
		t.Fatalf("single-play red-zone drive must not produce a sample")
	}
	// The all-drives family has no play floor.
	s, ok := stats.AllDrivesOffense["KC"]
	if !ok {
		t.Fatalf("expected all-drives sample")
	}
	if s.Drives != 1 || s.Touchdowns != 1 {
		t.Fatalf("unexpected all-drives sample: %+v", s)
	}
}

func TestSeasonStatsRateRounding(t *testing.T) {
	var plays []models.Play
	for drive := 1; drive <= 3; drive++ {
		a := regPlay("KC", "g1", drive, 12)
		b := regPlay("KC", "g1", drive, 5)
		if drive == 1 {
			b.IsTouchdown = true
		}
		plays = append(plays, a, b)
	}

	calc := NewTeamStatsCalculator(2)
	stats := calc.SeasonStats(plays, 2025)

	s := stats.RedZoneOffense["KC"]
	if s.Drives != 3 || s.Touchdowns != 1 {
		t.Fatalf("unexpected sample: %+v", s)
	}
	if !almostEqual(s.Rate, 33.3) {
		t.Fatalf("expected 33.3, got %v", s.Rate)
	}
}

func TestSeasonStatsDefenseMirrors(t *testing.T) {
	a := regPlay("KC", "g1", 1, 10)
	b := regPlay("KC", "g1", 1, 4)
	b.IsTouchdown = true
	a.DefenseTeam = "BUF"
	b.DefenseTeam = "BUF"

	calc := NewTeamStatsCalculator(2)
	stats := calc.SeasonStats([]models.Play{a, b}, 2025)

	d, ok := stats.RedZoneDefense["BUF"]
	if !ok {
		t.Fatalf("expected BUF defensive sample")
	}
	if d.Drives != 1 || d.Touchdowns != 1 {
		t.Fatalf("unexpected defensive sample: %+v", d)
	}
}

func TestSeasonStatsRegularSeasonOnly(t *testing.T) {
	post := regPlay("KC", "g1", 1, 10)
	post.SeasonType = "POST"
	post2 := regPlay("KC", "g1", 1, 5)
	post2.SeasonType = "POST"

	calc := NewTeamStatsCalculator(2)
	stats := calc.SeasonStats([]models.Play{post, post2}, 2025)

	if len(stats.RedZoneOffense) != 0 || len(stats.AllDrivesOffense) != 0 {
		t.Fatalf("postseason plays must not contribute to season rates")
	}
}
