package pipeline

import "math"

// PoissonPMF returns P(X = k) for arrivals at rate lambda, computed by
// iterative multiplication to avoid factorial overflow.
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 || lambda < 0 {
		return 0
	}
	if lambda == 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	p := math.Exp(-lambda)
	for i := 1; i <= k; i++ {
		p *= lambda / float64(i)
	}
	return p
}

// AnytimeProbability returns P(X >= 1) for arrivals at rate lambda. A zero
// rate yields probability exactly zero.
func AnytimeProbability(lambda float64) float64 {
	if lambda <= 0 {
		return 0
	}
	return 1 - math.Exp(-lambda)
}

// AtLeastProbability returns P(X >= k) for arrivals at rate lambda.
func AtLeastProbability(k int, lambda float64) float64 {
	if k <= 0 {
		return 1
	}
	if lambda <= 0 {
		return 0
	}
	term := math.Exp(-lambda)
	cum := term
	for i := 1; i < k; i++ {
		term *= lambda / float64(i)
		cum += term
	}
	p := 1 - cum
	if p < 0 {
		return 0
	}
	return p
}
