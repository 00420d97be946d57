// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// UpstreamConfig provides settings for the remote advisory and geocoder services.
type UpstreamConfig interface {
	GetAdvisoryBaseURL() string
	GetGeocoderBaseURL() string
	GetUpstreamTimeout() time.Duration
}

// SearchConfig provides settings for the debounced search controller.
type SearchConfig interface {
	GetSearchDebounce() time.Duration
	GetSearchMinQueryLen() int
}

// GeocoderConfig provides settings for outbound geocoder traffic shaping.
type GeocoderConfig interface {
	GetGeocoderRatePerSec() float64
	GetGeocoderBurst() int
}

// SuggestionCacheConfig provides settings for the Redis suggestion cache.
type SuggestionCacheConfig interface {
	GetRedisAddr() string
	GetSuggestionCacheTTL() time.Duration
	IsSuggestionCacheEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	CORSAllowAll       bool
	CORSOrigins        []string
	CORSAllowCreds     bool
	AdvisoryBaseURL    string
	GeocoderBaseURL    string
	UpstreamTimeout    time.Duration
	SearchDebounce     time.Duration
	SearchMinQueryLen  int
	GeocoderRatePerSec float64
	GeocoderBurst      int
	RedisAddr          string
	SuggestionCacheTTL time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// UpstreamConfig implementation
func (c *Config) GetAdvisoryBaseURL() string        { return c.AdvisoryBaseURL }
func (c *Config) GetGeocoderBaseURL() string        { return c.GeocoderBaseURL }
func (c *Config) GetUpstreamTimeout() time.Duration { return c.UpstreamTimeout }

// SearchConfig implementation
func (c *Config) GetSearchDebounce() time.Duration { return c.SearchDebounce }
func (c *Config) GetSearchMinQueryLen() int        { return c.SearchMinQueryLen }

// GeocoderConfig implementation
func (c *Config) GetGeocoderRatePerSec() float64 { return c.GeocoderRatePerSec }
func (c *Config) GetGeocoderBurst() int          { return c.GeocoderBurst }

// SuggestionCacheConfig implementation
func (c *Config) GetRedisAddr() string                 { return c.RedisAddr }
func (c *Config) GetSuggestionCacheTTL() time.Duration { return c.SuggestionCacheTTL }
func (c *Config) IsSuggestionCacheEnabled() bool       { return c.RedisAddr != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		CORSAllowCreds:     strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AdvisoryBaseURL:    strings.TrimRight(getEnv("ADVISORY_BASE_URL", "http://localhost:8000"), "/"),
		GeocoderBaseURL:    strings.TrimRight(getEnv("GEOCODER_BASE_URL", "http://localhost:8000"), "/"),
		UpstreamTimeout:    mustDuration(getEnv("UPSTREAM_TIMEOUT", "5s")),
		SearchDebounce:     mustDuration(getEnv("SEARCH_DEBOUNCE", "500ms")),
		SearchMinQueryLen:  mustInt(getEnv("SEARCH_MIN_QUERY_LEN", "2")),
		GeocoderRatePerSec: mustFloat(getEnv("GEOCODER_RATE_LIMIT", "5")),
		GeocoderBurst:      mustInt(getEnv("GEOCODER_BURST", "2")),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		SuggestionCacheTTL: mustDuration(getEnv("SUGGESTION_CACHE_TTL", "10m")),
	}

	if cfg.AdvisoryBaseURL == "" {
		return nil, fmt.Errorf("ADVISORY_BASE_URL is required")
	}
	if cfg.GeocoderBaseURL == "" {
		return nil, fmt.Errorf("GEOCODER_BASE_URL is required")
	}
	if cfg.SearchMinQueryLen < 1 {
		return nil, fmt.Errorf("SEARCH_MIN_QUERY_LEN must be at least 1")
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be a positive duration")
	}
	if cfg.SearchDebounce <= 0 {
		return nil, fmt.Errorf("SEARCH_DEBOUNCE must be a positive duration")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
