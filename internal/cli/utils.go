// Package cli renders search responses for the command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/hyperjump/homematch/internal/models"
	"github.com/hyperjump/homematch/internal/ranking"
	"github.com/hyperjump/homematch/internal/session"
	"github.com/hyperjump/homematch/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is a human-readable table (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

const (
	maxTextCell   = 40
	dataDateStamp = "02 Jan 2006"
)

// SearchOutput is one search response with the notices that accompany it.
type SearchOutput struct {
	*models.SearchResponse
	Notices []session.Notice `json:"notices,omitempty"`
}

// WriteSearchResults writes a search response to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, notices []session.Notice, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(SearchOutput{SearchResponse: response, Notices: notices})
	default:
		return writeSearchResultsText(w, response, notices)
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse, notices []session.Notice) error {
	for _, n := range notices {
		fmt.Fprintf(w, "%s\n\n", n.Message)
	}
	fmt.Fprintln(w, response.Message)
	if len(response.Results) > 0 {
		fmt.Fprintln(w)
		if err := writeTable(w, response); err != nil {
			return err
		}
	}
	if !response.DataUpdated.IsZero() {
		fmt.Fprintf(w, "\nData updated: %s (%s)\n",
			response.DataUpdated.Format(dataDateStamp), humanize.Time(response.DataUpdated))
	}
	return nil
}

func writeTable(w io.Writer, response *models.SearchResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	ranked := len(response.Preferences) > 0

	header := []string{"#"}
	for _, c := range response.Columns {
		header = append(header, c.Label)
	}
	if ranked {
		header = append(header, "Match")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	bucketColumns := make(map[string]models.Feature, len(response.Preferences))
	for _, f := range response.Preferences {
		bucketColumns[f.BucketColumn()] = f
	}

	for _, r := range response.Results {
		row := []string{fmt.Sprintf("%d", r.Rank)}
		for _, c := range response.Columns {
			if f, ok := bucketColumns[c.Key]; ok {
				row = append(row, bucketSymbol(r, f))
				continue
			}
			row = append(row, cellValue(r.Listing, c.Key))
		}
		if ranked {
			row = append(row, FormatAlignment(r.Alignment))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func cellValue(l *models.Listing, key string) string {
	switch key {
	case "title":
		return utils.Truncate(l.Title, maxTextCell)
	case "address":
		return utils.Truncate(l.Address, maxTextCell)
	case "monthly_int":
		return FormatRent(l.Rent)
	case "property_platform":
		return l.Platform
	case "link":
		return l.Link
	case "agent_name":
		return utils.Truncate(l.Agent, maxTextCell)
	default:
		return ""
	}
}

func bucketSymbol(r *models.SearchResult, f models.Feature) string {
	if b, ok := r.Buckets[f]; ok {
		return b.Symbol
	}
	return ranking.LevelUndefined.Symbol()
}

// FormatRent renders a monthly rent as "£ 1,200".
func FormatRent(rent int) string {
	return "£ " + humanize.Comma(int64(rent))
}

// FormatAlignment renders an alignment with two decimals, or "-" when absent.
func FormatAlignment(a *float64) string {
	if a == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", utils.Round(*a, 2))
}

// WriteFeatures writes the feature catalogue and the bucket legend.
func WriteFeatures(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL")
	for _, f := range models.AllFeatures {
		fmt.Fprintf(tw, "%s\t%s\n", f, f.Label())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", ranking.Legend())
	return err
}
