// Package pipeline derives anytime-touchdown projections from a season of
// play-by-play data: red-zone usage shares, team drive rates, matchup
// advantages against league baselines, market-blended team touchdown
// projections, and per-player probabilities and odds. Every stage is a pure
// computation over immutable inputs; fetching and serving live elsewhere.
package pipeline

// Params holds the tunable constants of the projection pipeline. Zero values
// are never valid; construct with DefaultParams and override from config.
type Params struct {
	// MinDrivePlays is the floor below which a red-zone drive is treated as
	// noise and excluded.
	MinDrivePlays int

	// EdgeWeight scales how much of the matchup advantage is blended into
	// the market baseline.
	EdgeWeight float64

	// AdvantageClamp bounds the decimal advantage applied to a projection.
	AdvantageClamp float64

	// FieldGoalFactor is the fraction of a team's implied points expected
	// to come from touchdowns.
	FieldGoalFactor float64

	// PointsPerTouchdown converts touchdown-attributed points to a
	// touchdown count.
	PointsPerTouchdown float64

	// UsageWeight is the usage-share coefficient in the player allocation
	// blend; touchdown share receives the complement.
	UsageWeight float64

	// AllocationFloor is the minimum raw allocation any listed player
	// receives before normalization.
	AllocationFloor float64
}

// DefaultParams returns the season constants.
func DefaultParams() Params {
	return Params{
		MinDrivePlays:      2,
		EdgeWeight:         0.25,
		AdvantageClamp:     0.30,
		FieldGoalFactor:    0.75,
		PointsPerTouchdown: 7,
		UsageWeight:        0.85,
		AllocationFloor:    0.01,
	}
}
