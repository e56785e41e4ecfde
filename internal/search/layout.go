package search

import (
	"fmt"

	"github.com/hyperjump/homematch/internal/models"
)

// Base columns shown for every result, in display order.
var baseColumns = []models.Column{
	{Key: "title", Label: "Description"},
	{Key: "address", Label: "Address"},
	{Key: "monthly_int", Label: "Rent"},
	{Key: "property_platform", Label: "Platform"},
	{Key: "link", Label: "Details"},
	{Key: "agent_name", Label: "Agency"},
}

// Columns returns the display order: the base columns, then one bucket column
// per selected preference in selection order.
func Columns(preferences []models.Feature) []models.Column {
	cols := make([]models.Column, 0, len(baseColumns)+len(preferences))
	cols = append(cols, baseColumns...)
	for _, f := range preferences {
		cols = append(cols, models.Column{Key: f.BucketColumn(), Label: f.Label()})
	}
	return cols
}

// Height is the render height that fits rows without an inner scrollbar.
func Height(rowHeight, headerHeight, rows int) int {
	return rowHeight*rows + headerHeight
}

// Status messages shown to users.
const (
	NoResultsMessage = "Sorry, no results were found. Please try again with different preferences."
)

// TooManyResultsMessage asks the user to narrow a search that returned n rows.
func TooManyResultsMessage(n int) string {
	return fmt.Sprintf("Your search returned %d results. Please refine your query to narrow down the results.", n)
}

// ResultsFoundMessage reports the number of rows shown.
func ResultsFoundMessage(n int) string {
	return fmt.Sprintf("%d results found.", n)
}
