package search

import "github.com/hyperjump/homematch/internal/models"

// ProcessQuery validates the search query against the known platforms.
// Nothing is filtered when it returns an error.
func ProcessQuery(query *models.SearchQuery, knownPlatforms []string) error {
	return query.Validate(knownPlatforms)
}
