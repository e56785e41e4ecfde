package models

import "time"

// Status summarises the outcome of a search for the presentation layer.
type Status string

const (
	// StatusOK means at least one row was produced.
	StatusOK Status = "ok"
	// StatusNoResults means no listing survived filtering. Not an error.
	StatusNoResults Status = "no_results"
	// StatusTooManyResults means the filtered set exceeded the result cap; no rows are returned.
	StatusTooManyResults Status = "too_many_results"
)

// Bucket is the display form of one feature score.
// Level is -1 when the score is missing or outside [0,1].
type Bucket struct {
	Level  int    `json:"level"`
	Symbol string `json:"symbol"`
}

// SearchResult is one output row.
type SearchResult struct {
	Listing *Listing `json:"listing"`
	// Alignment is nil when the search had no preferences.
	Alignment *float64           `json:"alignment,omitempty"`
	Buckets   map[Feature]Bucket `json:"buckets,omitempty"`
	Rank      int                `json:"rank"`
}

// Column is one entry of the declared display order.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	SearchID string `json:"search_id"`
	Status   Status `json:"status"`
	Message  string `json:"message"`
	// Total is the number of rows after hard filtering (before any top-rated cut).
	Total       int             `json:"total"`
	Results     []*SearchResult `json:"results"`
	Columns     []Column        `json:"columns"`
	Height      int             `json:"height"`
	Preferences []Feature       `json:"preferences,omitempty"`
	QueryTime   int64           `json:"query_time_ms"`
	DataUpdated time.Time       `json:"data_updated,omitempty"`
}
