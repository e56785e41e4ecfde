package ranking

import (
	"sort"

	"github.com/hyperjump/homematch/internal/models"
)

// Ranker orders listings by how well they align with an ordered preference selection.
type Ranker struct {
	config *RankingConfig
}

// NewRanker creates a new Ranker with the given configuration.
func NewRanker(config *RankingConfig) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()

	return &Ranker{config: config}
}

// Rank computes alignments for every listing and returns them sorted descending.
// Equal alignments keep their input order. Listings are never modified.
//
// If the largest raw alignment exceeds 1, every alignment is divided by it.
// Otherwise raw values are kept, so alignments are at most 1 but need not span [0,1].
func (r *Ranker) Rank(listings []*models.Listing, selection []models.Feature) []*RankedListing {
	weights := PreferenceWeights(selection)
	results := make([]*RankedListing, 0, len(listings))

	var maxRaw float64
	for i, l := range listings {
		raw := RawAlignment(l, weights)
		if i == 0 || raw > maxRaw {
			maxRaw = raw
		}
		results = append(results, &RankedListing{
			Listing:   l,
			Alignment: raw,
			Raw:       raw,
		})
	}

	if maxRaw > 1 {
		for _, res := range results {
			res.Alignment = res.Raw / maxRaw
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Alignment > results[j].Alignment
	})

	return results
}

// TopRated keeps results whose alignment is at least the configured threshold.
func (r *Ranker) TopRated(results []*RankedListing) []*RankedListing {
	return FilterByMinAlignment(results, r.config.TopRatedThreshold)
}

// GetConfig returns the ranking configuration.
func (r *Ranker) GetConfig() *RankingConfig {
	return r.config
}

// FilterByMinAlignment filters results below a minimum alignment.
func FilterByMinAlignment(results []*RankedListing, min float64) []*RankedListing {
	filtered := make([]*RankedListing, 0, len(results))
	for _, res := range results {
		if res.Alignment >= min {
			filtered = append(filtered, res)
		}
	}
	return filtered
}
