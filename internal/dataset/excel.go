package dataset

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/homematch/internal/models"
)

// XLSXSource reads listings from one sheet of an Excel workbook.
type XLSXSource struct {
	path  string
	sheet string
}

// NewXLSXSource returns a source for the workbook at path. An empty sheet
// selects the first sheet.
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

// Load reads every row of the sheet; the first row is the header.
func (s *XLSXSource) Load(ctx context.Context) ([]*models.Listing, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets: %s", s.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q: missing header row", sheet)
	}
	parser, err := newRowParser(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q header: %w", sheet, err)
	}

	listings := make([]*models.Listing, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if blank(row) {
			continue
		}
		l, err := parser.parse(row)
		if err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", sheet, i+2, err)
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// WriteXLSX saves listings to a new workbook at path with the canonical header.
func WriteXLSX(path string, listings []*models.Listing) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", stringsToCells(Columns())); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, l := range listings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, stringsToCells(record(l))); err != nil {
			return fmt.Errorf("write row %s: %w", l.ID, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func stringsToCells(values []string) *[]interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return &cells
}
