package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestXLSXSource_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "properties.xlsx")
	if err := WriteXLSX(path, sampleListings(t)); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	listings, err := NewXLSXSource(path, "").Load(testContext(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSample(t, index(listings))
}

func TestXLSXSource_NamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	if _, err := f.NewSheet("Listings"); err != nil {
		t.Fatal(err)
	}
	rows := [][]interface{}{
		{"property_id", "title", "address", "monthly_int", "bed_number", "property_platform", "link", "fireplace_score"},
		{"x1", "Studio", "Islington N1", 875, 1, "Rightmove", "https://example.com/x1", 0.75},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Listings", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	listings, err := NewXLSXSource(path, "Listings").Load(testContext(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(listings) != 1 || listings[0].Rent != 875 || listings[0].Scores["fireplace"] != 0.75 {
		t.Errorf("got %+v", listings)
	}

	// The default sheet is empty.
	if _, err := NewXLSXSource(path, "").Load(testContext(t)); err == nil || !strings.Contains(err.Error(), "header") {
		t.Errorf("expected missing header error, got %v", err)
	}
}

func TestXLSXSource_MissingFile(t *testing.T) {
	_, err := NewXLSXSource(filepath.Join(t.TempDir(), "none.xlsx"), "").Load(testContext(t))
	if err == nil {
		t.Fatal("expected error")
	}
}
