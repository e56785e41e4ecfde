// Package search filters, ranks, and shapes listing search results.
package search

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/homematch/internal/config"
	"github.com/hyperjump/homematch/internal/models"
	"github.com/hyperjump/homematch/internal/ranking"
)

// Engine runs searches against one immutable listing table.
// Searches never modify the table, so an Engine is safe for concurrent use.
type Engine struct {
	listings    []*models.Listing
	ranker      *ranking.Ranker
	config      *config.SearchConfig
	display     *config.DisplayConfig
	logger      *zap.Logger
	metrics     *Metrics
	dataUpdated time.Time
}

// EngineOption configures optional Engine behavior.
type EngineOption func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records search outcomes in m.
func WithMetrics(m *Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithDataUpdated sets the dataset timestamp reported with every response.
func WithDataUpdated(t time.Time) EngineOption {
	return func(e *Engine) {
		e.dataUpdated = t
	}
}

// NewEngine creates a search engine over listings.
// Nil configs fall back to defaults.
func NewEngine(
	listings []*models.Listing,
	ranker *ranking.Ranker,
	cfg *config.SearchConfig,
	display *config.DisplayConfig,
	opts ...EngineOption,
) *Engine {
	if ranker == nil {
		ranker = ranking.NewRanker(nil)
	}
	defaults := config.Default()
	if cfg == nil {
		cfg = &defaults.Search
	}
	if display == nil {
		display = &defaults.Display
	}
	e := &Engine{
		listings: listings,
		ranker:   ranker,
		config:   cfg,
		display:  display,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Size returns the number of listings in the table.
func (e *Engine) Size() int {
	return len(e.listings)
}

// Search validates the query, applies hard filters, ranks by preferences when
// any are given, and returns the decorated result view.
//
// Validation problems are returned as *models.ValidationError. An empty or
// oversized filtered set is reported through the response status instead.
func (e *Engine) Search(query *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	if err := ProcessQuery(query, e.config.KnownPlatforms); err != nil {
		e.metrics.observeValidationError(err)
		e.logger.Debug("search rejected", zap.Error(err))
		return nil, err
	}

	filtered, err := ApplyFilters(e.listings, query.Filters, e.config.KnownPlatforms)
	if err != nil {
		e.metrics.observeValidationError(err)
		return nil, err
	}

	response := &models.SearchResponse{
		SearchID:    uuid.NewString(),
		Total:       len(filtered),
		Preferences: query.Preferences,
		Columns:     Columns(query.Preferences),
		DataUpdated: e.dataUpdated,
		Results:     []*models.SearchResult{},
	}
	featureSearch := len(query.Preferences) > 0

	switch {
	case len(filtered) == 0:
		response.Status = models.StatusNoResults
		response.Message = NoResultsMessage
	case len(filtered) > e.config.MaxResults:
		response.Status = models.StatusTooManyResults
		response.Message = TooManyResultsMessage(len(filtered))
		e.logger.Info("search over capacity",
			zap.String("search_id", response.SearchID),
			zap.Int("rows", len(filtered)),
			zap.Int("max_results", e.config.MaxResults),
		)
	default:
		response.Results = e.buildResults(response.SearchID, filtered, query)
		if len(response.Results) == 0 {
			response.Status = models.StatusNoResults
			response.Message = NoResultsMessage
		} else {
			response.Status = models.StatusOK
			response.Message = ResultsFoundMessage(len(response.Results))
		}
	}

	response.Height = Height(e.display.RowHeight, e.display.HeaderHeight, len(response.Results))
	response.QueryTime = time.Since(startTime).Milliseconds()
	e.metrics.observeSearch(response.Status, len(filtered), featureSearch)

	e.logger.Debug("search completed",
		zap.String("search_id", response.SearchID),
		zap.String("status", string(response.Status)),
		zap.Int("filtered", len(filtered)),
		zap.Int("returned", len(response.Results)),
		zap.Int("preferences", len(query.Preferences)),
	)
	return response, nil
}

// buildResults ranks (when preferences are present) and decorates filtered rows.
func (e *Engine) buildResults(searchID string, filtered []*models.Listing, query *models.SearchQuery) []*models.SearchResult {
	if len(query.Preferences) == 0 {
		results := make([]*models.SearchResult, 0, len(filtered))
		for i, l := range filtered {
			results = append(results, &models.SearchResult{Listing: l, Rank: i + 1})
		}
		return results
	}

	ranked := e.ranker.Rank(filtered, query.Preferences)
	if query.Filters.TopRatedOnly {
		ranked = e.ranker.TopRated(ranked)
	}

	results := make([]*models.SearchResult, 0, len(ranked))
	for i, r := range ranked {
		alignment := r.Alignment
		results = append(results, &models.SearchResult{
			Listing:   r.Listing,
			Alignment: &alignment,
			Buckets:   e.decorate(searchID, r.Listing, query.Preferences),
			Rank:      i + 1,
		})
	}
	return results
}

// decorate buckets the selected features of l. Undefined levels are kept as-is.
func (e *Engine) decorate(searchID string, l *models.Listing, preferences []models.Feature) map[models.Feature]models.Bucket {
	buckets := make(map[models.Feature]models.Bucket, len(preferences))
	for _, f := range preferences {
		level := ranking.BucketListing(l, f)
		if level == ranking.LevelUndefined {
			e.metrics.observeUndefinedBucket(f)
			e.logger.Warn("feature score outside display range",
				zap.String("search_id", searchID),
				zap.String("listing_id", l.ID),
				zap.String("feature", string(f)),
			)
		}
		buckets[f] = level.Bucket()
	}
	return buckets
}
