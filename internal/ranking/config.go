package ranking

// RankingConfig holds all configuration for the ranking system.
type RankingConfig struct {
	// TopRatedThreshold is the inclusive minimum normalized alignment kept by TopRated.
	TopRatedThreshold float64 `yaml:"top_rated_threshold"` // default: 0.7
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		TopRatedThreshold: 0.7,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()

	if c.TopRatedThreshold == 0 {
		c.TopRatedThreshold = defaults.TopRatedThreshold
	}
}
