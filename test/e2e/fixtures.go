package e2e

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperjump/homematch/internal/dataset"
	"github.com/hyperjump/homematch/internal/models"
)

// SupportedDatasetExtensions is the list of dataset formats used in E2E tests.
var SupportedDatasetExtensions = []string{".csv", ".xlsx", ".db"}

// WriteDataset writes listings to path in the format implied by its extension.
func WriteDataset(ctx context.Context, path string, listings []*models.Listing) error {
	switch filepath.Ext(path) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := dataset.WriteCSV(f, listings); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		return dataset.WriteXLSX(path, listings)
	case ".db":
		store, err := dataset.NewSQLiteStore(path, "")
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Import(ctx, listings)
	default:
		return fmt.Errorf("unsupported dataset extension: %s", path)
	}
}
