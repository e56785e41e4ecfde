package ranking

import (
	"math"

	"github.com/hyperjump/homematch/internal/models"
)

// PreferenceWeights assigns each selected feature a weight of N - position,
// so an N-feature selection is weighted N, N-1, ..., 1 in selection order.
func PreferenceWeights(selection []models.Feature) []WeightedFeature {
	n := len(selection)
	out := make([]WeightedFeature, n)
	for i, f := range selection {
		out[i] = WeightedFeature{Feature: f, Weight: float64(n - i)}
	}
	return out
}

// RawAlignment is the weighted sum of a listing's scores. Missing and
// non-finite scores count as 0.
func RawAlignment(l *models.Listing, weights []WeightedFeature) float64 {
	var sum float64
	for _, w := range weights {
		v := l.ScoreOrZero(w.Feature)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v * w.Weight
	}
	return sum
}
