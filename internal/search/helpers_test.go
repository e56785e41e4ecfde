package search

import (
	"math"

	"github.com/hyperjump/homematch/internal/models"
)

type listingOpt func(*models.Listing)

func withScores(scores map[models.Feature]float64) listingOpt {
	return func(l *models.Listing) { l.Scores = scores }
}

func withTitle(title string) listingOpt {
	return func(l *models.Listing) { l.Title = title }
}

func withAddress(addr string) listingOpt {
	return func(l *models.Listing) { l.Address = addr }
}

func withPlatform(p string) listingOpt {
	return func(l *models.Listing) { l.Platform = p }
}

func withBedrooms(n int) listingOpt {
	return func(l *models.Listing) { l.Bedrooms = n }
}

func withPhotos(overall, bedroom float64) listingOpt {
	return func(l *models.Listing) {
		l.PhotosOverall = overall
		l.PhotosBedroom = bedroom
	}
}

// newListing returns a listing that passes the default filters unless overridden.
func newListing(id string, rent int, opts ...listingOpt) *models.Listing {
	l := &models.Listing{
		ID:            id,
		Title:         "1 bed flat to rent",
		Address:       "Camden Road, London NW1",
		Rent:          rent,
		Bedrooms:      1,
		Platform:      models.PlatformZoopla,
		Agent:         "Acme Lettings",
		Link:          "https://example.com/" + id,
		Scores:        map[models.Feature]float64{},
		PhotosOverall: 1,
		PhotosBedroom: 1,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func ids(listings []*models.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func resultIDs(results []*models.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Listing.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}
