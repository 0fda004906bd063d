package pipeline

import (
	"testing"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func statsWith(offRZ, offAll, defRZ, defAll map[string]models.RateSample) *models.SeasonStats {
	return &models.SeasonStats{
		Season:           2025,
		RedZoneOffense:   offRZ,
		RedZoneDefense:   defRZ,
		AllDrivesOffense: offAll,
		AllDrivesDefense: defAll,
	}
}

func TestMatchupPctChange(t *testing.T) {
	stats := statsWith(
		map[string]models.RateSample{"KC": {Drives: 10, Touchdowns: 7, Rate: 70.0}},
		map[string]models.RateSample{"KC": {Drives: 100, Touchdowns: 28, Rate: 28.0}},
		map[string]models.RateSample{"BUF": {Drives: 10, Touchdowns: 5, Rate: 50.0}},
		map[string]models.RateSample{"BUF": {Drives: 100, Touchdowns: 20, Rate: 20.0}},
	)

	model := NewAdvantageModel(models.DefaultLeagueBaseline())
	adv := model.Matchup("KC", "BUF", stats)

	if adv.OffenseRedZoneChange == nil || !almostEqual(*adv.OffenseRedZoneChange, 18.6) {
		t.Fatalf("expected offense rz change 18.6, got %v", adv.OffenseRedZoneChange)
	}
	if adv.OffenseAllDrivesChange == nil || !almostEqual(*adv.OffenseAllDrivesChange, 20.2) {
		t.Fatalf("expected offense all-drives change 20.2, got %v", adv.OffenseAllDrivesChange)
	}
	if adv.DefenseRedZoneChange == nil || !almostEqual(*adv.DefenseRedZoneChange, -15.3) {
		t.Fatalf("expected defense rz change -15.3, got %v", adv.DefenseRedZoneChange)
	}
	if adv.OffenseCombined == nil || !almostEqual(*adv.OffenseCombined, 19.4) {
		t.Fatalf("expected offense combined 19.4, got %v", adv.OffenseCombined)
	}
	if adv.Total == nil {
		t.Fatalf("expected a total advantage")
	}
}

func TestMatchupMissingTeams(t *testing.T) {
	model := NewAdvantageModel(models.DefaultLeagueBaseline())
	adv := model.Matchup("KC", "BUF", statsWith(nil, nil, nil, nil))

	if adv.OffenseRedZoneChange != nil || adv.DefenseRedZoneChange != nil {
		t.Fatalf("absent teams must produce nil changes, not zeros")
	}
	if adv.Total != nil {
		t.Fatalf("expected nil total when both sides are absent, got %v", *adv.Total)
	}
	if adv.TotalOrDefault(-999) != -999 {
		t.Fatalf("expected default for missing total")
	}
}

func TestMatchupSingleSideHalved(t *testing.T) {
	stats := statsWith(
		map[string]models.RateSample{"KC": {Drives: 10, Touchdowns: 7, Rate: 70.0}},
		map[string]models.RateSample{"KC": {Drives: 100, Touchdowns: 28, Rate: 28.0}},
		nil, nil,
	)

	model := NewAdvantageModel(models.DefaultLeagueBaseline())
	adv := model.Matchup("KC", "BUF", stats)

	if adv.DefenseCombined != nil {
		t.Fatalf("expected nil defense combined")
	}
	if adv.OffenseCombined == nil || adv.Total == nil {
		t.Fatalf("expected offense-only total")
	}
	want := round1(*adv.OffenseCombined / 2)
	if !almostEqual(*adv.Total, want) {
		t.Fatalf("one-sided total must halve: want %v, got %v", want, *adv.Total)
	}
}

func TestMatchupZeroBaseline(t *testing.T) {
	stats := statsWith(
		map[string]models.RateSample{"KC": {Drives: 10, Touchdowns: 7, Rate: 70.0}},
		nil, nil, nil,
	)

	model := NewAdvantageModel(models.LeagueBaseline{})
	adv := model.Matchup("KC", "BUF", stats)

	if adv.OffenseRedZoneChange == nil || !almostEqual(*adv.OffenseRedZoneChange, 0) {
		t.Fatalf("zero baseline must yield zero change, got %v", adv.OffenseRedZoneChange)
	}
}

func TestMatchupCombinedSingleRate(t *testing.T) {
	stats := statsWith(
		map[string]models.RateSample{"KC": {Drives: 10, Touchdowns: 7, Rate: 70.0}},
		nil, nil, nil,
	)

	model := NewAdvantageModel(models.DefaultLeagueBaseline())
	adv := model.Matchup("KC", "BUF", stats)

	if adv.OffenseCombined == nil {
		t.Fatalf("expected combined from the single available rate")
	}
	if !almostEqual(*adv.OffenseCombined, *adv.OffenseRedZoneChange) {
		t.Fatalf("single-rate combined must equal that rate's change")
	}
}
