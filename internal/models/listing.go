// Package models defines core data structures for listings, search queries, and search results.
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Feature is a photo-derived property characteristic scored in [0,1].
type Feature string

const (
	FeatureNaturalLight  Feature = "natural_light"
	FeatureLargeWindows  Feature = "large_windows"
	FeatureHighCeiling   Feature = "high_ceiling"
	FeatureFireplace     Feature = "fireplace"
	FeatureNoCarpet      Feature = "no_carpet"
	FeatureWideLenses    Feature = "wide_lenses"
	FeatureOverprocessed Feature = "overprocessed"
)

// AllFeatures lists every scored feature in catalogue order.
var AllFeatures = []Feature{
	FeatureNaturalLight,
	FeatureLargeWindows,
	FeatureHighCeiling,
	FeatureFireplace,
	FeatureNoCarpet,
	FeatureWideLenses,
	FeatureOverprocessed,
}

var featureLabels = map[Feature]string{
	FeatureNaturalLight:  "Natural Light",
	FeatureLargeWindows:  "Large Windows",
	FeatureHighCeiling:   "High Ceiling",
	FeatureFireplace:     "Fireplace",
	FeatureNoCarpet:      "No Carpets",
	FeatureWideLenses:    "No Wide Lenses",
	FeatureOverprocessed: "No Edited Photos",
}

// Label returns the human-readable name shown to users.
func (f Feature) Label() string {
	if l, ok := featureLabels[f]; ok {
		return l
	}
	return string(f)
}

// ScoreColumn is the dataset column holding the feature score.
func (f Feature) ScoreColumn() string {
	return string(f) + "_score"
}

// BucketColumn is the result column holding the feature's display bucket.
func (f Feature) BucketColumn() string {
	return string(f) + "_bucket"
}

// Valid reports whether f is a known feature.
func (f Feature) Valid() bool {
	_, ok := featureLabels[f]
	return ok
}

// ParseFeature resolves a feature from its key ("natural_light") or label ("Natural Light").
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseFeature(s string) (Feature, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range AllFeatures {
		if name == string(f) || name == strings.ToLower(f.Label()) {
			return f, nil
		}
	}
	return "", &ValidationError{
		Field:   "preferences",
		Message: fmt.Sprintf("unknown feature %q", s),
		Err:     ErrUnknownFeature,
	}
}

// Known source platforms.
const (
	PlatformZoopla    = "Zoopla"
	PlatformRightmove = "Rightmove"
)

// DefaultPlatforms are the platforms the dataset is collected from.
var DefaultPlatforms = []string{PlatformZoopla, PlatformRightmove}

// Listing is one rental property row from the dataset.
// Listings are loaded once and treated as read-only.
type Listing struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Address   string `json:"address"`
	Rent      int    `json:"rent"`
	Bedrooms  int    `json:"bedrooms"`
	Platform  string `json:"platform"`
	Agent     string `json:"agent"`
	Link      string `json:"link"`
	// Scores holds feature scores; a missing key means the source cell was empty.
	Scores map[Feature]float64 `json:"scores"`
	// PhotosOverall and PhotosBedroom are sufficiency indicators (1 = sufficient, NaN when missing).
	PhotosOverall float64 `json:"-"`
	PhotosBedroom float64 `json:"-"`
}

type listingJSON struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Address       string              `json:"address"`
	Rent          int                 `json:"rent"`
	Bedrooms      int                 `json:"bedrooms"`
	Platform      string              `json:"platform"`
	Agent         string              `json:"agent"`
	Link          string              `json:"link"`
	Scores        map[Feature]float64 `json:"scores"`
	PhotosOverall *float64            `json:"photos_overall"`
	PhotosBedroom *float64            `json:"photos_bedroom"`
}

// MarshalJSON encodes missing photo indicators as null and omits non-finite scores.
func (l *Listing) MarshalJSON() ([]byte, error) {
	return json.Marshal(listingJSON{
		ID:            l.ID,
		Title:         l.Title,
		Address:       l.Address,
		Rent:          l.Rent,
		Bedrooms:      l.Bedrooms,
		Platform:      l.Platform,
		Agent:         l.Agent,
		Link:          l.Link,
		Scores:        finiteScores(l.Scores),
		PhotosOverall: indicator(l.PhotosOverall),
		PhotosBedroom: indicator(l.PhotosBedroom),
	})
}

// UnmarshalJSON decodes a listing, mapping null photo indicators to NaN.
func (l *Listing) UnmarshalJSON(data []byte) error {
	var v listingJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = Listing{
		ID:            v.ID,
		Title:         v.Title,
		Address:       v.Address,
		Rent:          v.Rent,
		Bedrooms:      v.Bedrooms,
		Platform:      v.Platform,
		Agent:         v.Agent,
		Link:          v.Link,
		Scores:        v.Scores,
		PhotosOverall: math.NaN(),
		PhotosBedroom: math.NaN(),
	}
	if v.PhotosOverall != nil {
		l.PhotosOverall = *v.PhotosOverall
	}
	if v.PhotosBedroom != nil {
		l.PhotosBedroom = *v.PhotosBedroom
	}
	return nil
}

func finiteScores(scores map[Feature]float64) map[Feature]float64 {
	out := make(map[Feature]float64, len(scores))
	for f, v := range scores {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[f] = v
	}
	return out
}

func indicator(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Score returns the feature score and whether it was present in the source.
func (l *Listing) Score(f Feature) (float64, bool) {
	v, ok := l.Scores[f]
	return v, ok
}

// ScoreOrZero returns the feature score, treating a missing value as 0.
func (l *Listing) ScoreOrZero(f Feature) float64 {
	if v, ok := l.Scores[f]; ok {
		return v
	}
	return 0
}
