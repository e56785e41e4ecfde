// Package ranking provides preference-weighted ranking of listings and the
// display bucketing of individual feature scores.
package ranking

import (
	"github.com/hyperjump/homematch/internal/models"
)

// Level is the display bucket of a feature score.
type Level int

// LevelUndefined marks a score outside the normalizer's domain (NaN, above 1, missing).
const LevelUndefined Level = -1

const (
	// LevelEmpty is a score at or below zero.
	LevelEmpty Level = iota
	// LevelMinimal covers (0, 0.2).
	LevelMinimal
	// LevelSlight covers [0.2, 0.4).
	LevelSlight
	// LevelModerate covers [0.4, 0.6).
	LevelModerate
	// LevelStrong covers [0.6, 0.8).
	LevelStrong
	// LevelExcellent covers [0.8, 1].
	LevelExcellent
)

var levelSymbols = [...]string{
	"○○○○○",
	"●○○○○",
	"●●○○○",
	"●●●○○",
	"●●●●○",
	"●●●●●",
}

var levelLabels = [...]string{
	"",
	"Minimal",
	"Slight",
	"Moderate",
	"Strong",
	"Excellent",
}

// Symbol returns the dot representation shown in result tables.
func (l Level) Symbol() string {
	if l < LevelEmpty || l > LevelExcellent {
		return "None"
	}
	return levelSymbols[l]
}

// Label returns the legend word for the level.
func (l Level) Label() string {
	if l < LevelEmpty || l > LevelExcellent {
		return "Undefined"
	}
	return levelLabels[l]
}

// String returns a string representation of the level.
func (l Level) String() string {
	return l.Symbol()
}

// Bucket returns the level as a result-row cell.
func (l Level) Bucket() models.Bucket {
	return models.Bucket{Level: int(l), Symbol: l.Symbol()}
}

// WeightedFeature pairs a selected feature with its rank-derived weight.
type WeightedFeature struct {
	Feature models.Feature
	Weight  float64
}

// RankedListing holds a listing with its computed alignment.
type RankedListing struct {
	Listing   *models.Listing
	Alignment float64
	// Raw is the alignment before max normalization.
	Raw float64
}
