// Package config loads tiercache settings from environment variables.
//
// Environment Variables:
//
// Remote store:
//   - REDIS_HOST: Redis host (default: localhost)
//   - REDIS_PORT: Redis port (default: 6379)
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis logical database 0-15 (default: 0). Clear flushes all of it.
//   - REDIS_TIMEOUT: dial/read/write timeout (default: 500ms)
//   - REDIS_DISABLED: skip the remote tier entirely (default: false)
//
// Local tiers:
//   - CACHE_DIR: fallback directory, created if missing (default: cache)
//   - CACHE_TTL_SECONDS: TTL for the remote and memory tiers (default: 3600)
//   - CACHE_MAX_ENTRIES: memory tier capacity (default: 1000)
//
// Logging:
//   - LOG_LEVEL: debug, info, warn or error (default: info)
//   - LOG_FILE: write logs to this file instead of stderr
package config

import (
	"os"
	"strconv"
	"time"

	apperrors "tiercache/internal/common/errors"
	"tiercache/internal/cache"
	"tiercache/internal/redis"
)

// Config holds all configuration values. Load fills it from the environment;
// call Validate before use.
type Config struct {
	// Remote store
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int
	RedisTimeout  time.Duration
	RedisDisabled bool

	// Local tiers
	CacheDir        string
	CacheTTLSeconds int
	CacheMaxEntries int

	LogLevel string
}

// Load creates a Config from environment variables. Unset variables take their
// defaults; unparsable numbers and durations are recorded as -1 so that
// Validate rejects them.
func Load() *Config {
	return &Config{
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getIntEnv("REDIS_PORT", 6379),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		RedisTimeout:  getDurationEnv("REDIS_TIMEOUT", 500*time.Millisecond),
		RedisDisabled: getBoolEnv("REDIS_DISABLED", false),

		CacheDir:        getEnv("CACHE_DIR", "cache"),
		CacheTTLSeconds: getIntEnv("CACHE_TTL_SECONDS", 3600),
		CacheMaxEntries: getIntEnv("CACHE_MAX_ENTRIES", 1000),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks ranges and required values.
func (c *Config) Validate() error {
	if !c.RedisDisabled {
		if c.RedisHost == "" {
			return apperrors.ConfigError("REDIS_HOST is required unless REDIS_DISABLED is set")
		}
		if c.RedisPort < 1 || c.RedisPort > 65535 {
			return apperrors.ConfigError("REDIS_PORT must be a valid port number between 1 and 65535")
		}
		if c.RedisDB < 0 || c.RedisDB > 15 {
			return apperrors.ConfigError("REDIS_DB must be a number between 0 and 15")
		}
		if c.RedisTimeout <= 0 {
			return apperrors.ConfigError("REDIS_TIMEOUT must be a positive duration (e.g., '500ms', '2s')")
		}
	}

	if c.CacheDir == "" {
		return apperrors.ConfigError("CACHE_DIR is required")
	}
	if c.CacheTTLSeconds < 1 {
		return apperrors.ConfigError("CACHE_TTL_SECONDS must be a positive number")
	}
	if c.CacheMaxEntries < 1 {
		return apperrors.ConfigError("CACHE_MAX_ENTRIES must be a positive number")
	}

	return nil
}

// Redis returns the remote adapter settings, or nil when the remote tier is
// disabled.
func (c *Config) Redis() *redis.Config {
	if c.RedisDisabled {
		return nil
	}
	return &redis.Config{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
		Timeout:  c.RedisTimeout,
	}
}

// Cache returns the tiered cache settings.
func (c *Config) Cache() cache.Config {
	return cache.Config{
		Dir:        c.CacheDir,
		TTL:        time.Duration(c.CacheTTLSeconds) * time.Second,
		MaxEntries: c.CacheMaxEntries,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return parsed
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return -1
	}
	return parsed
}
