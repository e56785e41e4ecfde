package config

import "github.com/hyperjump/homematch/internal/models"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = "./data/properties.csv"
	}
	if cfg.Dataset.Table == "" {
		cfg.Dataset.Table = "listings"
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 1500
	}
	if len(cfg.Search.KnownPlatforms) == 0 {
		cfg.Search.KnownPlatforms = append([]string(nil), models.DefaultPlatforms...)
	}
	cfg.Ranking.ApplyDefaults()
	if cfg.Display.RowHeight == 0 {
		cfg.Display.RowHeight = 35
	}
	if cfg.Display.HeaderHeight == 0 {
		cfg.Display.HeaderHeight = 38
	}
}
