package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperjump/homematch/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"data.csv", "*dataset.CSVSource", false},
		{"DATA.CSV", "*dataset.CSVSource", false},
		{"data.xlsx", "*dataset.XLSXSource", false},
		{"data.db", "*dataset.SQLiteSource", false},
		{"data.sqlite", "*dataset.SQLiteSource", false},
		{"data.json", "", true},
	}
	for _, tt := range tests {
		src, err := Open(tt.path, nil)
		if (err != nil) != tt.wantErr {
			t.Errorf("Open(%q) error = %v", tt.path, err)
			continue
		}
		if tt.wantErr {
			continue
		}
		if got := typeName(src); got != tt.want {
			t.Errorf("Open(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func typeName(src Source) string {
	switch src.(type) {
	case *CSVSource:
		return "*dataset.CSVSource"
	case *XLSXSource:
		return "*dataset.XLSXSource"
	case *SQLiteSource:
		return "*dataset.SQLiteSource"
	}
	return ""
}

func TestLoad_CSVFile(t *testing.T) {
	path := writeFile(t, "properties.csv", sampleCSV)
	listings, err := Load(testContext(t), path, &config.DatasetConfig{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSample(t, index(listings))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(testContext(t), filepath.Join(t.TempDir(), "nope.csv"), nil)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStat(t *testing.T) {
	path := writeFile(t, "properties.csv", sampleCSV)
	when := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatal(err)
	}
	info, err := Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size != int64(len(sampleCSV)) {
		t.Errorf("size = %d", info.Size)
	}
	if !info.ModTime.Equal(when) {
		t.Errorf("mod time = %v, want %v", info.ModTime, when)
	}

	if _, err := Stat(t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
	if _, err := Stat(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
