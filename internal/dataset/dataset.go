// Package dataset loads the listing table from CSV, XLSX, or SQLite files.
package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperjump/homematch/internal/config"
	"github.com/hyperjump/homematch/internal/models"
)

// Source loads the full listing table.
type Source interface {
	Load(ctx context.Context) ([]*models.Listing, error)
}

// Open returns the Source for path, chosen by file extension.
func Open(path string, cfg *config.DatasetConfig) (Source, error) {
	if cfg == nil {
		cfg = &config.DatasetConfig{}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVSource(path), nil
	case ".xlsx":
		return NewXLSXSource(path, cfg.Sheet), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteSource(path, cfg.Table), nil
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", path)
	}
}

// Load opens path and reads every listing from it.
func Load(ctx context.Context, path string, cfg *config.DatasetConfig) ([]*models.Listing, error) {
	src, err := Open(path, cfg)
	if err != nil {
		return nil, err
	}
	return src.Load(ctx)
}

// Info describes the dataset file on disk.
type Info struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Stat returns size and modification time of the dataset file.
// The modification time is reported to users as the "data updated" date.
func Stat(path string) (*Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("dataset path is a directory: %s", path)
	}
	return &Info{Path: path, Size: fi.Size(), ModTime: fi.ModTime()}, nil
}
