package pipeline

import (
	"github.com/yourusername/gridiron-edge/internal/models"
)

// AdvantageModel measures a matchup against fixed league baselines. Missing
// team samples surface as nil, never as zero: 0 is a measured push, nil is
// no data.
type AdvantageModel struct {
	baseline models.LeagueBaseline
}

// NewAdvantageModel builds a model around the given baselines.
func NewAdvantageModel(baseline models.LeagueBaseline) *AdvantageModel {
	return &AdvantageModel{baseline: baseline}
}

// Matchup scores one offense against one defense. Offense rates compare to
// the league scoring baselines, the defense's allowed rates to the allow
// baselines. All percentages round to one decimal.
func (m *AdvantageModel) Matchup(offense, defense string, stats *models.SeasonStats) *models.MatchupAdvantage {
	adv := &models.MatchupAdvantage{OffenseTeam: offense, DefenseTeam: defense}
	if stats == nil {
		return adv
	}

	if s, ok := stats.RedZoneOffense[offense]; ok {
		adv.OffenseRedZoneRate = floatPtr(s.Rate)
		adv.OffenseRedZoneChange = floatPtr(round1(pctChange(s.Rate, m.baseline.RedZoneScoring)))
	}
	if s, ok := stats.AllDrivesOffense[offense]; ok {
		adv.OffenseAllDrivesRate = floatPtr(s.Rate)
		adv.OffenseAllDrivesChange = floatPtr(round1(pctChange(s.Rate, m.baseline.AllDrivesScoring)))
	}
	if s, ok := stats.RedZoneDefense[defense]; ok {
		adv.DefenseRedZoneRate = floatPtr(s.Rate)
		adv.DefenseRedZoneChange = floatPtr(round1(pctChange(s.Rate, m.baseline.RedZoneAllow)))
	}
	if s, ok := stats.AllDrivesDefense[defense]; ok {
		adv.DefenseAllDrivesRate = floatPtr(s.Rate)
		adv.DefenseAllDrivesChange = floatPtr(round1(pctChange(s.Rate, m.baseline.AllDrivesAllow)))
	}

	adv.OffenseCombined = round1p(meanOf(adv.OffenseRedZoneChange, adv.OffenseAllDrivesChange))
	adv.DefenseCombined = round1p(meanOf(adv.DefenseRedZoneChange, adv.DefenseAllDrivesChange))
	adv.Total = m.totalAdvantage(adv.OffenseCombined, adv.DefenseCombined)
	return adv
}

// totalAdvantage averages the two combined scores. A matchup measured on
// only one side is worth half of that side.
func (m *AdvantageModel) totalAdvantage(offense, defense *float64) *float64 {
	switch {
	case offense != nil && defense != nil:
		return floatPtr(round1((*offense + *defense) / 2))
	case offense != nil:
		return floatPtr(round1(*offense / 2))
	case defense != nil:
		return floatPtr(round1(*defense / 2))
	default:
		return nil
	}
}

// pctChange is the percentage change of current over baseline. A
// non-positive baseline yields zero rather than a blowup.
func pctChange(current, baseline float64) float64 {
	if baseline <= 0 {
		return 0
	}
	return (current - baseline) / baseline * 100
}

// meanOf averages the non-nil inputs; a single value stands alone.
func meanOf(a, b *float64) *float64 {
	switch {
	case a != nil && b != nil:
		return floatPtr((*a + *b) / 2)
	case a != nil:
		return a
	case b != nil:
		return b
	default:
		return nil
	}
}
