package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hyperjump/homematch/internal/models"
)

// CSVSource reads listings from a comma-separated file with a header row.
type CSVSource struct {
	path string
}

// NewCSVSource returns a source for the CSV file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load reads every row of the file.
func (s *CSVSource) Load(ctx context.Context) ([]*models.Listing, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(ctx, f)
}

// ReadCSV parses listings from r. Line numbers in errors are 1-based and count the header.
func ReadCSV(ctx context.Context, r io.Reader) ([]*models.Listing, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	parser, err := newRowParser(header)
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}

	var listings []*models.Listing
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}
		l, err := parser.parse(rec)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// WriteCSV writes listings with the canonical header.
func WriteCSV(w io.Writer, listings []*models.Listing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, l := range listings {
		if err := cw.Write(record(l)); err != nil {
			return fmt.Errorf("write csv row %s: %w", l.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func blank(rec []string) bool {
	for _, c := range rec {
		if c != "" {
			return false
		}
	}
	return true
}
