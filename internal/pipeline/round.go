package pipeline

import "math"

// roundTo rounds half away from zero to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

func round1(v float64) float64 { return roundTo(v, 1) }
func round2(v float64) float64 { return roundTo(v, 2) }
func round4(v float64) float64 { return roundTo(v, 4) }

// round1p rounds a nullable percentage in place.
func round1p(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round1(*v)
	return &r
}

func floatPtr(v float64) *float64 { return &v }
