package pipeline

import (
	"math"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Conversion bounds for probabilities that cannot price. A probability of
// exactly 0 or 1 is clamped to these before the odds formula and the entry
// is flagged rather than dropped.
const (
	minPriceableProb = 0.001
	maxPriceableProb = 0.999
)

// OddsAllocator distributes a team's projected touchdowns across its listed
// players and prices each player's anytime-touchdown market. Allocation
// weights blend red-zone usage with touchdown share, floor at a minimum so
// every listed player keeps a nonzero path, and normalize to sum to one.
type OddsAllocator struct {
	params Params
}

// NewOddsAllocator builds an allocator with the given parameters.
func NewOddsAllocator(params Params) *OddsAllocator {
	return &OddsAllocator{params: params}
}

// Allocate prices every player in usage from the team's projected
// touchdowns. An empty usage list yields an empty result; input order is
// preserved.
func (a *OddsAllocator) Allocate(projectedTDs float64, usage []models.PlayerUsage) []models.PlayerOddsEntry {
	if len(usage) == 0 {
		return nil
	}

	raws := make([]float64, len(usage))
	var sum float64
	for i, u := range usage {
		raw := a.params.UsageWeight*u.RZUsageShare + (1-a.params.UsageWeight)*u.TDShare
		if raw < a.params.AllocationFloor {
			raw = a.params.AllocationFloor
		}
		raws[i] = raw
		sum += raw
	}

	entries := make([]models.PlayerOddsEntry, len(usage))
	for i, u := range usage {
		alloc := raws[i] / sum
		lambda := projectedTDs * alloc
		prob := AnytimeProbability(lambda)
		odds, degenerate := americanOdds(prob)
		entries[i] = models.PlayerOddsEntry{
			PlayerID:     u.PlayerID,
			PlayerName:   u.PlayerName,
			RZUsageShare: u.RZUsageShare,
			TDShare:      u.TDShare,
			Allocation:   round4(alloc),
			ExpectedTDs:  round4(lambda),
			Probability:  round4(prob),
			AmericanOdds: odds,
			Degenerate:   degenerate,
		}
	}
	return entries
}

// americanOdds converts a win probability to American odds. Favorites
// (p >= 0.5) price negative, underdogs positive. Boundary probabilities are
// clamped into the priceable range and flagged.
func americanOdds(p float64) (int, bool) {
	degenerate := false
	if p <= 0 {
		p = minPriceableProb
		degenerate = true
	} else if p >= 1 {
		p = maxPriceableProb
		degenerate = true
	}
	if p >= 0.5 {
		return -int(math.Round(100 * p / (1 - p))), degenerate
	}
	return int(math.Round(100 * (1 - p) / p)), degenerate
}
