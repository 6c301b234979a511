package cache

import (
	"time"

	apperrors "tiercache/internal/common/errors"
)

// Config holds the construction-time settings of a TieredCache.
type Config struct {
	Dir        string        `json:"dir"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		Dir:        "cache",
		TTL:        time.Hour,
		MaxEntries: 1000,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Dir == "" {
		return apperrors.ConfigError("cache directory is required")
	}
	if c.TTL <= 0 {
		return apperrors.ConfigError("cache TTL must be positive")
	}
	if c.MaxEntries <= 0 {
		return apperrors.ConfigError("cache max entries must be positive")
	}
	return nil
}
