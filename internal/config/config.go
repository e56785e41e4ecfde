// Package config provides configuration loading and structs for homematch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/homematch/internal/models"
	"github.com/hyperjump/homematch/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool                  `yaml:"debug"`
	Dataset DatasetConfig         `yaml:"dataset"`
	Search  SearchConfig          `yaml:"search"`
	Ranking ranking.RankingConfig `yaml:"ranking"`
	Display DisplayConfig         `yaml:"display"`
	Metrics MetricsConfig         `yaml:"metrics"`
}

// DatasetConfig locates the listing table.
type DatasetConfig struct {
	// Path is a .csv, .xlsx, or SQLite (.db, .sqlite) file.
	Path string `yaml:"path"`
	// Sheet is the XLSX sheet to read; empty means the first sheet.
	Sheet string `yaml:"sheet"`
	// Table is the SQLite table holding listings.
	Table string `yaml:"table"`
}

// SearchConfig holds search limits and the default filter values.
type SearchConfig struct {
	// MaxResults is the largest filtered set that is ranked and displayed.
	MaxResults     int            `yaml:"max_results"`
	KnownPlatforms []string       `yaml:"known_platforms"`
	Defaults       FilterDefaults `yaml:"defaults"`
}

// FilterDefaults are the initial values of the search form.
type FilterDefaults struct {
	MinRent              *int  `yaml:"min_rent"`
	MaxRent              *int  `yaml:"max_rent"`
	Bedrooms             *int  `yaml:"bedrooms"`
	RequirePhotos        *bool `yaml:"require_photos"`
	RequireBedroomPhotos *bool `yaml:"require_bedroom_photos"`
	ExcludeRooms         *bool `yaml:"exclude_rooms"`
	TopRatedOnly         bool  `yaml:"top_rated_only"`
}

// Search form defaults used when FilterDefaults leaves a value unset.
const (
	DefaultMinRent  = 800
	DefaultMaxRent  = 1200
	DefaultBedrooms = 1
)

// MinRentOrDefault returns the initial minimum rent; defaults to DefaultMinRent when unset.
func (d *FilterDefaults) MinRentOrDefault() int {
	return intOrDefault(d.MinRent, DefaultMinRent)
}

// MaxRentOrDefault returns the initial maximum rent; defaults to DefaultMaxRent when unset.
func (d *FilterDefaults) MaxRentOrDefault() int {
	return intOrDefault(d.MaxRent, DefaultMaxRent)
}

// BedroomsOrDefault returns the initial bedroom count (0 = any); defaults to DefaultBedrooms when unset.
func (d *FilterDefaults) BedroomsOrDefault() int {
	return intOrDefault(d.Bedrooms, DefaultBedrooms)
}

// RequirePhotosOrDefault returns whether to hide listings with insufficient photos; defaults to true when unset.
func (d *FilterDefaults) RequirePhotosOrDefault() bool {
	return boolOrDefault(d.RequirePhotos, true)
}

// RequireBedroomPhotosOrDefault returns whether to hide listings with few bedroom photos; defaults to true when unset.
func (d *FilterDefaults) RequireBedroomPhotosOrDefault() bool {
	return boolOrDefault(d.RequireBedroomPhotos, true)
}

// ExcludeRoomsOrDefault returns whether to hide room rentals; defaults to true when unset.
func (d *FilterDefaults) ExcludeRoomsOrDefault() bool {
	return boolOrDefault(d.ExcludeRooms, true)
}

// Filters returns the default filter set.
func (d *FilterDefaults) Filters() models.Filters {
	return models.Filters{
		MinRent:              d.MinRentOrDefault(),
		MaxRent:              d.MaxRentOrDefault(),
		Bedrooms:             d.BedroomsOrDefault(),
		RequirePhotos:        d.RequirePhotosOrDefault(),
		RequireBedroomPhotos: d.RequireBedroomPhotosOrDefault(),
		ExcludeRooms:         d.ExcludeRoomsOrDefault(),
		TopRatedOnly:         d.TopRatedOnly,
	}
}

// DisplayConfig holds result table sizing.
type DisplayConfig struct {
	RowHeight    int `yaml:"row_height"`
	HeaderHeight int `yaml:"header_height"`
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	// TextfilePath, when set, receives the Prometheus text format after each command.
	TextfilePath string `yaml:"textfile_path"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Dataset.Path = expandPath(cfg.Dataset.Path, configDir)
	if cfg.Metrics.TextfilePath != "" {
		cfg.Metrics.TextfilePath = expandPath(cfg.Metrics.TextfilePath, configDir)
	}

	return &cfg, nil
}

// Default returns a configuration with every default applied and no file behind it.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}

func intOrDefault(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func boolOrDefault(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}
