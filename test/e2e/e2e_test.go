package e2e

import (
	"path/filepath"
	"testing"

	"github.com/hyperjump/homematch/internal/config"
	"github.com/hyperjump/homematch/internal/dataset"
	"github.com/hyperjump/homematch/internal/models"
	"github.com/hyperjump/homematch/internal/ranking"
	"github.com/hyperjump/homematch/internal/search"
)

func TestE2E_SearchReturnsCorrectResults(t *testing.T) {
	corpus := BuildCorpus()
	cfg := config.Default()
	cfg.Search.MaxResults = MaxResults

	for _, ext := range SupportedDatasetExtensions {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "properties"+ext)
			if err := WriteDataset(testContext(t), path, corpus.Listings); err != nil {
				t.Fatalf("WriteDataset: %v", err)
			}
			listings, err := dataset.Load(testContext(t), path, &cfg.Dataset)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(listings) != len(corpus.Listings) {
				t.Fatalf("loaded %d listings, want %d", len(listings), len(corpus.Listings))
			}

			engine := search.NewEngine(listings, ranking.NewRanker(&cfg.Ranking), &cfg.Search, &cfg.Display)
			for _, tc := range corpus.TestCases {
				t.Run(tc.Description, func(t *testing.T) {
					query := tc.Query
					resp, err := engine.Search(&query)
					if err != nil {
						t.Fatalf("Search: %v", err)
					}
					wantStatus := tc.ExpectedStatus
					if wantStatus == "" {
						wantStatus = models.StatusOK
					}
					if resp.Status != wantStatus {
						t.Fatalf("status = %s, want %s (total %d)", resp.Status, wantStatus, resp.Total)
					}
					if tc.ExpectedFirstID != "" && resp.Results[0].Listing.ID != tc.ExpectedFirstID {
						t.Errorf("first = %s, want %s", resp.Results[0].Listing.ID, tc.ExpectedFirstID)
					}
					for _, r := range resp.Results {
						for _, absent := range tc.AbsentIDs {
							if r.Listing.ID == absent {
								t.Errorf("%s should not be in the results", absent)
							}
						}
					}
					assertResponseInvariants(t, &query, resp)
				})
			}
		})
	}
}

func assertResponseInvariants(t *testing.T, q *models.SearchQuery, resp *models.SearchResponse) {
	t.Helper()
	if want := 35*len(resp.Results) + 38; resp.Height != want {
		t.Errorf("height = %d, want %d", resp.Height, want)
	}
	if want := 6 + len(q.Preferences); len(resp.Columns) != want {
		t.Errorf("columns = %d, want %d", len(resp.Columns), want)
	}
	for i, r := range resp.Results {
		l := r.Listing
		if l.Rent < q.Filters.MinRent || l.Rent > q.Filters.MaxRent {
			t.Errorf("%s rent %d outside filter", l.ID, l.Rent)
		}
		if len(q.Preferences) == 0 {
			if r.Alignment != nil {
				t.Errorf("%s has alignment without preferences", l.ID)
			}
			if i > 0 && resp.Results[i-1].Listing.Rent > l.Rent {
				t.Errorf("filter-only results not in ascending rent order at %d", i)
			}
			continue
		}
		if r.Alignment == nil || *r.Alignment > 1 {
			t.Fatalf("%s alignment = %v", l.ID, r.Alignment)
		}
		if i > 0 && *resp.Results[i-1].Alignment < *r.Alignment {
			t.Errorf("alignment not descending at %d", i)
		}
		if q.Filters.TopRatedOnly && *r.Alignment < 0.7 {
			t.Errorf("%s below top-rated threshold: %v", l.ID, *r.Alignment)
		}
		if len(r.Buckets) != len(q.Preferences) {
			t.Errorf("%s has %d buckets, want %d", l.ID, len(r.Buckets), len(q.Preferences))
		}
	}
}
