package pipeline

import (
	"github.com/yourusername/gridiron-edge/internal/models"
)

// ProjectionBlender converts a game's market line into per-team touchdown
// baselines and tilts them by the matchup advantage. The market is the
// anchor; the advantage only ever nudges it inside a hard clamp.
type ProjectionBlender struct {
	params Params
}

// NewProjectionBlender builds a blender with the given parameters.
func NewProjectionBlender(params Params) *ProjectionBlender {
	return &ProjectionBlender{params: params}
}

// ImpliedPoints splits a game total into team point estimates using the
// home spread. A negative home spread means the home team is favored and
// receives the larger half.
func (b *ProjectionBlender) ImpliedPoints(total, homeSpread float64) (home, away float64) {
	if homeSpread < 0 {
		home = (total - homeSpread) / 2
		away = (total + homeSpread) / 2
		return home, away
	}
	away = (total + homeSpread) / 2
	home = (total - homeSpread) / 2
	return home, away
}

// BaselineTDs converts implied points to a touchdown count: the
// field-goal-discounted share of the points divided by seven, rounded to
// two decimals.
func (b *ProjectionBlender) BaselineTDs(impliedPoints float64) float64 {
	return round2(impliedPoints * b.params.FieldGoalFactor / b.params.PointsPerTouchdown)
}

// ClampedEdge converts a percentage advantage to a decimal edge bounded by
// the advantage clamp. A nil advantage is a zero edge.
func (b *ProjectionBlender) ClampedEdge(advantagePct *float64) float64 {
	if advantagePct == nil {
		return 0
	}
	edge := *advantagePct / 100
	if edge > b.params.AdvantageClamp {
		return b.params.AdvantageClamp
	}
	if edge < -b.params.AdvantageClamp {
		return -b.params.AdvantageClamp
	}
	return edge
}

// ProjectTDs blends a team's market baseline with its matchup edge.
func (b *ProjectionBlender) ProjectTDs(baselineTDs float64, advantagePct *float64) float64 {
	edge := b.ClampedEdge(advantagePct)
	return round2(baselineTDs * (1 + b.params.EdgeWeight*edge))
}

// Game builds both sides' projections from one market line and the two
// matchup advantages. The caller guarantees the line is complete; games
// without one never reach the blender.
func (b *ProjectionBlender) Game(week int, line models.MarketLine, awayMatchup, homeMatchup *models.MatchupAdvantage) models.GameProjection {
	total := line.Total.InexactFloat64()
	homeSpread := line.HomeSpread.InexactFloat64()
	awaySpread := line.AwaySpread.InexactFloat64()

	homePts, awayPts := b.ImpliedPoints(total, homeSpread)

	var awayAdv, homeAdv *float64
	if awayMatchup != nil {
		awayAdv = awayMatchup.Total
	}
	if homeMatchup != nil {
		homeAdv = homeMatchup.Total
	}

	awayBase := b.BaselineTDs(awayPts)
	homeBase := b.BaselineTDs(homePts)

	return models.GameProjection{
		GameKey:    line.GameKey(),
		Week:       week,
		Bookmaker:  line.Bookmaker,
		Total:      total,
		AwaySpread: awaySpread,
		HomeSpread: homeSpread,
		Away: models.TeamProjection{
			Team:          line.AwayTeam,
			ImpliedPoints: round2(awayPts),
			BaselineTDs:   awayBase,
			ProjectedTDs:  b.ProjectTDs(awayBase, awayAdv),
			Matchup:       awayMatchup,
		},
		Home: models.TeamProjection{
			Team:          line.HomeTeam,
			ImpliedPoints: round2(homePts),
			BaselineTDs:   homeBase,
			ProjectedTDs:  b.ProjectTDs(homeBase, homeAdv),
			Matchup:       homeMatchup,
		},
	}
}
