package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hyperjump/homematch/internal/models"
)

// Dataset column names.
const (
	ColumnID            = "property_id"
	ColumnTitle         = "title"
	ColumnAddress       = "address"
	ColumnRent          = "monthly_int"
	ColumnBedrooms      = "bed_number"
	ColumnPlatform      = "property_platform"
	ColumnAgent         = "agent_name"
	ColumnLink          = "link"
	ColumnPhotosOverall = "number_of_photos_overall_score"
	ColumnPhotosBedroom = "number_of_bedroom_photos_score"
)

var requiredColumns = []string{
	ColumnID,
	ColumnTitle,
	ColumnAddress,
	ColumnRent,
	ColumnBedrooms,
	ColumnPlatform,
	ColumnLink,
}

// Columns returns the full dataset header in canonical order.
func Columns() []string {
	cols := []string{
		ColumnID, ColumnTitle, ColumnAddress, ColumnRent, ColumnBedrooms,
		ColumnPlatform, ColumnAgent, ColumnLink,
	}
	for _, f := range models.AllFeatures {
		cols = append(cols, f.ScoreColumn())
	}
	return append(cols, ColumnPhotosOverall, ColumnPhotosBedroom)
}

// rowParser maps header positions to listing fields.
// Score and photo columns are optional; a missing column reads as a missing value.
type rowParser struct {
	index map[string]int
}

func newRowParser(header []string) (*rowParser, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return &rowParser{index: index}, nil
}

func (p *rowParser) cell(record []string, column string) string {
	i, ok := p.index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (p *rowParser) parse(record []string) (*models.Listing, error) {
	l := &models.Listing{
		ID:       p.cell(record, ColumnID),
		Title:    p.cell(record, ColumnTitle),
		Address:  p.cell(record, ColumnAddress),
		Platform: p.cell(record, ColumnPlatform),
		Agent:    p.cell(record, ColumnAgent),
		Link:     p.cell(record, ColumnLink),
		Scores:   make(map[models.Feature]float64, len(models.AllFeatures)),
	}
	if l.ID == "" {
		return nil, fmt.Errorf("empty %s", ColumnID)
	}

	var err error
	if l.Rent, err = parseInt(p.cell(record, ColumnRent)); err != nil {
		return nil, fmt.Errorf("%s: %w", ColumnRent, err)
	}
	if l.Bedrooms, err = parseInt(p.cell(record, ColumnBedrooms)); err != nil {
		return nil, fmt.Errorf("%s: %w", ColumnBedrooms, err)
	}

	for _, f := range models.AllFeatures {
		v, ok, err := parseScore(p.cell(record, f.ScoreColumn()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.ScoreColumn(), err)
		}
		if ok {
			l.Scores[f] = v
		}
	}
	if l.PhotosOverall, err = parseIndicator(p.cell(record, ColumnPhotosOverall)); err != nil {
		return nil, fmt.Errorf("%s: %w", ColumnPhotosOverall, err)
	}
	if l.PhotosBedroom, err = parseIndicator(p.cell(record, ColumnPhotosBedroom)); err != nil {
		return nil, fmt.Errorf("%s: %w", ColumnPhotosBedroom, err)
	}
	return l, nil
}

// parseInt accepts "1200", "1,200", "£1200" and integral floats such as "1200.0".
func parseInt(s string) (int, error) {
	s = strings.NewReplacer(",", "", "£", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int(f), nil
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "na", "n/a":
		return true
	}
	return false
}

// parseScore returns ok=false for an empty cell. Finite out-of-range values are
// kept so that the display layer can flag them; infinities are rejected.
func parseScore(s string) (float64, bool, error) {
	if isMissing(s) {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid score %q", s)
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	if math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("invalid score %q", s)
	}
	return v, true, nil
}

func parseIndicator(s string) (float64, error) {
	if isMissing(s) {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid indicator %q", s)
	}
	return v, nil
}

// record renders l as a row in Columns() order. Missing values become empty cells.
func record(l *models.Listing) []string {
	row := []string{
		l.ID, l.Title, l.Address, strconv.Itoa(l.Rent), strconv.Itoa(l.Bedrooms),
		l.Platform, l.Agent, l.Link,
	}
	for _, f := range models.AllFeatures {
		if v, ok := l.Score(f); ok {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		} else {
			row = append(row, "")
		}
	}
	return append(row, formatIndicator(l.PhotosOverall), formatIndicator(l.PhotosBedroom))
}

func formatIndicator(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
