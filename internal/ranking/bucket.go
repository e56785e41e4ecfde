package ranking

import (
	"strings"

	"github.com/hyperjump/homematch/internal/models"
)

// Bucket maps a feature score to its display level.
//
//	x <= 0       -> LevelEmpty
//	0 < x < 0.2  -> LevelMinimal
//	0.2 <= x < 0.4 -> LevelSlight
//	0.4 <= x < 0.6 -> LevelModerate
//	0.6 <= x < 0.8 -> LevelStrong
//	0.8 <= x <= 1  -> LevelExcellent
//
// Anything else (NaN, above 1) is LevelUndefined. Callers must surface it, not coerce it.
func Bucket(x float64) Level {
	switch {
	case x <= 0:
		return LevelEmpty
	case x < 0.2:
		return LevelMinimal
	case x < 0.4:
		return LevelSlight
	case x < 0.6:
		return LevelModerate
	case x < 0.8:
		return LevelStrong
	case x <= 1:
		return LevelExcellent
	default:
		return LevelUndefined
	}
}

// BucketListing returns the display level of one feature of a listing.
// A missing score is LevelUndefined.
func BucketListing(l *models.Listing, f models.Feature) Level {
	v, ok := l.Score(f)
	if !ok {
		return LevelUndefined
	}
	return Bucket(v)
}

// Legend returns the one-line guide to the non-empty levels.
func Legend() string {
	parts := make([]string, 0, 5)
	for l := LevelMinimal; l <= LevelExcellent; l++ {
		parts = append(parts, l.Symbol()+": "+l.Label())
	}
	return strings.Join(parts, " | ")
}
