package search

import (
	"sort"
	"strings"

	"github.com/hyperjump/homematch/internal/models"
)

// roomToRentMarker identifies shared-room adverts by title.
const roomToRentMarker = "ROOM TO RENT"

// Predicate is one hard filter over a listing.
type Predicate struct {
	Name  string
	Match func(l *models.Listing) bool
}

// Predicates returns the active hard filters of f. Inactive toggles contribute nothing.
// The predicates commute: applying them in any order selects the same listings.
func Predicates(f models.Filters) []Predicate {
	preds := []Predicate{{
		Name: "rent",
		Match: func(l *models.Listing) bool {
			return l.Rent >= f.MinRent && l.Rent <= f.MaxRent
		},
	}}

	if postcode := normalizePostcode(f.Postcode); postcode != "" {
		preds = append(preds, Predicate{
			Name: "postcode",
			Match: func(l *models.Listing) bool {
				return strings.Contains(strings.ToUpper(l.Address), postcode)
			},
		})
	}
	if f.Bedrooms > 0 {
		preds = append(preds, Predicate{
			Name: "bedrooms",
			Match: func(l *models.Listing) bool {
				return l.Bedrooms == f.Bedrooms
			},
		})
	}
	if f.RequirePhotos {
		preds = append(preds, Predicate{
			Name: "photos",
			Match: func(l *models.Listing) bool {
				return l.PhotosOverall == 1
			},
		})
	}
	if f.RequireBedroomPhotos {
		preds = append(preds, Predicate{
			Name: "bedroom_photos",
			Match: func(l *models.Listing) bool {
				return l.PhotosBedroom == 1
			},
		})
	}
	if f.ExcludeRooms {
		preds = append(preds, Predicate{
			Name: "rooms",
			Match: func(l *models.Listing) bool {
				return !strings.Contains(strings.ToUpper(l.Title), roomToRentMarker)
			},
		})
	}
	if len(f.ExcludePlatforms) > 0 {
		excluded := make(map[string]bool, len(f.ExcludePlatforms))
		for _, p := range f.ExcludePlatforms {
			excluded[strings.ToLower(strings.TrimSpace(p))] = true
		}
		preds = append(preds, Predicate{
			Name: "platform",
			Match: func(l *models.Listing) bool {
				return !excluded[strings.ToLower(l.Platform)]
			},
		})
	}
	return preds
}

// ApplyFilters validates f and returns the listings matching every active filter,
// ordered by ascending rent (ties keep input order). The input slice is not modified.
// An empty result is not an error.
func ApplyFilters(listings []*models.Listing, f models.Filters, knownPlatforms []string) ([]*models.Listing, error) {
	if err := f.Validate(knownPlatforms); err != nil {
		return nil, err
	}
	return filterWith(listings, Predicates(f)), nil
}

func filterWith(listings []*models.Listing, preds []Predicate) []*models.Listing {
	out := make([]*models.Listing, 0, len(listings))
next:
	for _, l := range listings {
		for _, p := range preds {
			if !p.Match(l) {
				continue next
			}
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rent < out[j].Rent
	})
	return out
}

// normalizePostcode upper-cases and trims the user's postcode prefix.
// Addresses are upper-cased the same way before matching.
func normalizePostcode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
