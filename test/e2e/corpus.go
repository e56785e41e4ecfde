// Package e2e provides end-to-end tests with a generated listing corpus and multiple queries.
package e2e

import (
	"fmt"
	"math"

	"github.com/hyperjump/homematch/internal/models"
)

// QueryTestCase defines a query and what its response must contain.
type QueryTestCase struct {
	Description string
	Query       models.SearchQuery
	// ExpectedStatus is the response status; empty means models.StatusOK.
	ExpectedStatus models.Status
	// ExpectedFirstID, when set, must be the first result row.
	ExpectedFirstID string
	// AbsentIDs must not appear in the results.
	AbsentIDs []string
}

// Corpus holds listings and query test cases for E2E tests.
type Corpus struct {
	Listings  []*models.Listing
	TestCases []QueryTestCase
}

// MaxResults is the result cap E2E engines are configured with.
const MaxResults = 100

var areas = []string{
	"Camden Road, London NW1",
	"Upper Street, Islington, London N1",
	"Mare Street, Hackney, London E8",
	"Acre Lane, Brixton, London SW2",
	"Clapham High Street, London SW4",
}

// BuildCorpus returns generated listings plus a few signature listings that
// specific queries must rank first.
func BuildCorpus() *Corpus {
	listings := GenerateListings(120)
	listings = append(listings,
		signature("sig-fireplace", 1000, areas[0], models.PlatformZoopla,
			map[models.Feature]float64{models.FeatureFireplace: 1}),
		signature("sig-light-ceiling", 950, areas[4], models.PlatformRightmove,
			map[models.Feature]float64{models.FeatureNaturalLight: 1, models.FeatureHighCeiling: 1}),
	)
	return &Corpus{Listings: listings, TestCases: buildQueryTestCases()}
}

// GenerateListings returns n deterministic listings. Feature scores stay
// within [0, 0.9] so signature listings always outrank them.
func GenerateListings(n int) []*models.Listing {
	listings := make([]*models.Listing, 0, n)
	for i := 0; i < n; i++ {
		bedrooms := 1 + i%3
		title := fmt.Sprintf("%d bed flat to rent", bedrooms)
		if i%10 == 9 {
			title = "Room to rent in shared house"
		}
		platform := models.PlatformZoopla
		if i%2 == 1 {
			platform = models.PlatformRightmove
		}
		l := &models.Listing{
			ID:            fmt.Sprintf("gen-%03d", i),
			Title:         title,
			Address:       areas[i%len(areas)],
			Rent:          700 + (i*37)%900,
			Bedrooms:      bedrooms,
			Platform:      platform,
			Agent:         fmt.Sprintf("Agent %d", i%7),
			Link:          fmt.Sprintf("https://example.com/listing/%d", i),
			Scores:        make(map[models.Feature]float64, len(models.AllFeatures)),
			PhotosOverall: 1,
			PhotosBedroom: 1,
		}
		if i%7 == 6 {
			l.PhotosOverall = math.NaN()
		}
		if i%11 == 10 {
			l.PhotosBedroom = 0
		}
		for j, f := range models.AllFeatures {
			if (i+j)%13 == 0 {
				continue
			}
			l.Scores[f] = float64((i*(j+3)+j)%10) / 10
		}
		listings = append(listings, l)
	}
	return listings
}

func signature(id string, rent int, address, platform string, scores map[models.Feature]float64) *models.Listing {
	return &models.Listing{
		ID:            id,
		Title:         "1 bed flat to rent",
		Address:       address,
		Rent:          rent,
		Bedrooms:      1,
		Platform:      platform,
		Agent:         "Signature Lettings",
		Link:          "https://example.com/" + id,
		Scores:        scores,
		PhotosOverall: 1,
		PhotosBedroom: 1,
	}
}

// defaultFilters mirrors the search form defaults.
func defaultFilters() models.Filters {
	return models.Filters{
		MinRent:              800,
		MaxRent:              1200,
		Bedrooms:             1,
		RequirePhotos:        true,
		RequireBedroomPhotos: true,
		ExcludeRooms:         true,
	}
}

func buildQueryTestCases() []QueryTestCase {
	withPostcode := defaultFilters()
	withPostcode.Postcode = "sw4"

	noMatch := defaultFilters()
	noMatch.Postcode = "ZZ9"

	everything := models.Filters{MinRent: 0, MaxRent: 100000}

	noZoopla := defaultFilters()
	noZoopla.ExcludePlatforms = []string{"zoopla"}

	topRated := defaultFilters()
	topRated.TopRatedOnly = true

	return []QueryTestCase{
		{
			Description:     "single preference ranks the fireplace listing first",
			Query:           models.SearchQuery{Preferences: []models.Feature{models.FeatureFireplace}, Filters: defaultFilters()},
			ExpectedFirstID: "sig-fireplace",
		},
		{
			Description: "two preferences within a postcode",
			Query: models.SearchQuery{
				Preferences: []models.Feature{models.FeatureNaturalLight, models.FeatureHighCeiling},
				Filters:     withPostcode,
			},
			ExpectedFirstID: "sig-light-ceiling",
			AbsentIDs:       []string{"sig-fireplace"},
		},
		{
			Description:    "unknown postcode yields no results",
			Query:          models.SearchQuery{Filters: noMatch},
			ExpectedStatus: models.StatusNoResults,
		},
		{
			Description:    "unfiltered search exceeds the result cap",
			Query:          models.SearchQuery{Preferences: []models.Feature{models.FeatureNoCarpet}, Filters: everything},
			ExpectedStatus: models.StatusTooManyResults,
		},
		{
			Description: "excluded platform removes its listings",
			Query:       models.SearchQuery{Preferences: []models.Feature{models.FeatureFireplace}, Filters: noZoopla},
			AbsentIDs:   []string{"sig-fireplace"},
		},
		{
			Description:     "top-rated keeps the best match",
			Query:           models.SearchQuery{Preferences: []models.Feature{models.FeatureFireplace}, Filters: topRated},
			ExpectedFirstID: "sig-fireplace",
		},
		{
			Description: "filter-only search",
			Query:       models.SearchQuery{Filters: defaultFilters()},
		},
	}
}
