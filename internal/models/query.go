package models

import (
	"fmt"
	"strings"
)

// Filters are hard constraints that exclude listings outright.
type Filters struct {
	MinRent  int    `json:"min_rent"`
	MaxRent  int    `json:"max_rent"`
	Postcode string `json:"postcode,omitempty"`
	// Bedrooms requires an exact bedroom count; 0 means any.
	Bedrooms             int      `json:"bedrooms,omitempty"`
	RequirePhotos        bool     `json:"require_photos,omitempty"`
	RequireBedroomPhotos bool     `json:"require_bedroom_photos,omitempty"`
	ExcludeRooms         bool     `json:"exclude_rooms,omitempty"`
	ExcludePlatforms     []string `json:"exclude_platforms,omitempty"`
	// TopRatedOnly drops ranked rows below the top-rated threshold. Ignored without preferences.
	TopRatedOnly bool `json:"top_rated_only,omitempty"`
}

// Validate checks the filter set against the known platforms.
// It never modifies the filters.
func (f *Filters) Validate(knownPlatforms []string) error {
	if f.MinRent > f.MaxRent {
		return &ValidationError{
			Field:   "rent",
			Message: fmt.Sprintf("the minimum monthly rent (£ %d) cannot be higher than the maximum monthly rent (£ %d)", f.MinRent, f.MaxRent),
			Err:     ErrInvalidRange,
		}
	}
	if len(knownPlatforms) > 0 && len(f.ExcludePlatforms) > 0 {
		excluded := make(map[string]bool, len(f.ExcludePlatforms))
		for _, p := range f.ExcludePlatforms {
			excluded[strings.ToLower(strings.TrimSpace(p))] = true
		}
		all := true
		for _, p := range knownPlatforms {
			if !excluded[strings.ToLower(p)] {
				all = false
				break
			}
		}
		if all {
			return &ValidationError{
				Field:   "exclude_platforms",
				Message: fmt.Sprintf("%s properties cannot be excluded at the same time, select at least one to proceed", strings.Join(knownPlatforms, " and ")),
				Err:     ErrInvalidPlatformFilter,
			}
		}
	}
	return nil
}

// SearchQuery is one search request: an ordered preference selection plus hard filters.
type SearchQuery struct {
	// Preferences is ordered most-important first; may be empty.
	Preferences []Feature `json:"preferences,omitempty"`
	Filters     Filters   `json:"filters"`
}

// Validate checks preferences and filters. Preferences must be known and distinct.
func (q *SearchQuery) Validate(knownPlatforms []string) error {
	seen := make(map[Feature]bool, len(q.Preferences))
	for _, p := range q.Preferences {
		if !p.Valid() {
			return &ValidationError{
				Field:   "preferences",
				Message: fmt.Sprintf("unknown feature %q", string(p)),
				Err:     ErrUnknownFeature,
			}
		}
		if seen[p] {
			return &ValidationError{
				Field:   "preferences",
				Message: fmt.Sprintf("%s is selected more than once", p.Label()),
				Err:     ErrDuplicatePreference,
			}
		}
		seen[p] = true
	}
	return q.Filters.Validate(knownPlatforms)
}

// ParsePreferences resolves an ordered list of feature names or labels.
func ParsePreferences(names []string) ([]Feature, error) {
	out := make([]Feature, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		f, err := ParseFeature(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
