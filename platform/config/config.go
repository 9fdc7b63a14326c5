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

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// GeocodeConfig provides settings for the geocoding resolver and its provider.
type GeocodeConfig interface {
	GetNominatimURL() string
	GetNominatimUserAgent() string
	GetGeocodeDefaultCountry() string
	GetGeocodeTimeout() time.Duration
	GetGeocodeMaxRadiusMeters() float64
	GetGeocodeSelector() string
}

// PlacesConfig provides settings for the business search provider.
type PlacesConfig interface {
	GetPlacesAPIKey() string
	GetPlacesBaseURL() string
	GetPlacesMaxResults() int
	GetSearchDefaultRadiusMeters() float64
	IsPlacesEnabled() bool
}

// SnapshotConfig provides settings for the last-search snapshot storage.
type SnapshotConfig interface {
	GetSnapshotBackend() string
	GetSnapshotKey() string
	GetSnapshotBadgerPath() string
	GetRedisURL() string
}

// PipelineConfig provides the pipeline status catalog location.
type PipelineConfig interface {
	GetPipelineCatalogPath() string
	GetDefaultPhoneRegion() string
}

// SchedulerConfig provides settings for asynq task scheduling.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// Snapshot storage backends.
const (
	SnapshotBackendMemory = "memory"
	SnapshotBackendRedis  = "redis"
	SnapshotBackendBadger = "badger"
)

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                       string
	HTTPAddr                  string
	DatabaseURL               string
	JWTAccessSecret           string
	CORSAllowAll              bool
	CORSOrigins               []string
	CORSAllowCreds            bool
	NominatimURL              string
	NominatimUserAgent        string
	GeocodeDefaultCountry     string
	GeocodeTimeout            time.Duration
	GeocodeMaxRadiusMeters    float64
	GeocodeSelector           string
	PlacesAPIKey              string
	PlacesBaseURL             string
	PlacesMaxResults          int
	SearchDefaultRadiusMeters float64
	SnapshotBackend           string
	SnapshotKey               string
	SnapshotBadgerPath        string
	RedisURL                  string
	RedisTLSInsecure          bool
	AsynqQueueName            string
	AsynqConcurrency          int
	PipelineCatalogPath       string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// GeocodeConfig implementation
func (c *Config) GetNominatimURL() string            { return c.NominatimURL }
func (c *Config) GetNominatimUserAgent() string      { return c.NominatimUserAgent }
func (c *Config) GetGeocodeDefaultCountry() string   { return c.GeocodeDefaultCountry }
func (c *Config) GetGeocodeTimeout() time.Duration   { return c.GeocodeTimeout }
func (c *Config) GetGeocodeMaxRadiusMeters() float64 { return c.GeocodeMaxRadiusMeters }
func (c *Config) GetGeocodeSelector() string         { return c.GeocodeSelector }

// PlacesConfig implementation
func (c *Config) GetPlacesAPIKey() string               { return c.PlacesAPIKey }
func (c *Config) GetPlacesBaseURL() string              { return c.PlacesBaseURL }
func (c *Config) GetPlacesMaxResults() int              { return c.PlacesMaxResults }
func (c *Config) GetSearchDefaultRadiusMeters() float64 { return c.SearchDefaultRadiusMeters }
func (c *Config) IsPlacesEnabled() bool                 { return c.PlacesAPIKey != "" }

// SnapshotConfig implementation
func (c *Config) GetSnapshotBackend() string    { return c.SnapshotBackend }
func (c *Config) GetSnapshotKey() string        { return c.SnapshotKey }
func (c *Config) GetSnapshotBadgerPath() string { return c.SnapshotBadgerPath }
func (c *Config) GetRedisURL() string           { return c.RedisURL }

// PipelineConfig implementation
func (c *Config) GetPipelineCatalogPath() string { return c.PipelineCatalogPath }
func (c *Config) GetDefaultPhoneRegion() string  { return strings.ToUpper(c.GeocodeDefaultCountry) }

// SchedulerConfig implementation
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                       getEnv("APP_ENV", "development"),
		HTTPAddr:                  getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:               getEnv("DATABASE_URL", ""),
		JWTAccessSecret:           getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:              corsAllowAll,
		CORSOrigins:               corsOrigins,
		CORSAllowCreds:            strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		NominatimURL:              getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent:        getEnv("NOMINATIM_USER_AGENT", "LeadScout/1.0"),
		GeocodeDefaultCountry:     strings.ToLower(strings.TrimSpace(getEnv("GEOCODE_DEFAULT_COUNTRY", "us"))),
		GeocodeTimeout:            mustDuration(getEnv("GEOCODE_TIMEOUT", "5s")),
		GeocodeMaxRadiusMeters:    mustFloat64(getEnv("GEOCODE_MAX_RADIUS_METERS", "50000")),
		GeocodeSelector:           strings.ToLower(getEnv("GEOCODE_SELECTOR", "importance")),
		PlacesAPIKey:              getEnv("GOOGLE_PLACES_API_KEY", ""),
		PlacesBaseURL:             getEnv("GOOGLE_PLACES_BASE_URL", "https://places.googleapis.com/v1"),
		PlacesMaxResults:          mustInt(getEnv("GOOGLE_PLACES_MAX_RESULTS", "20")),
		SearchDefaultRadiusMeters: mustFloat64(getEnv("SEARCH_DEFAULT_RADIUS_METERS", "5000")),
		SnapshotBackend:           strings.ToLower(getEnv("SNAPSHOT_BACKEND", SnapshotBackendMemory)),
		SnapshotKey:               getEnv("SNAPSHOT_KEY", "lastSearch"),
		SnapshotBadgerPath:        getEnv("SNAPSHOT_BADGER_PATH", "data/snapshots"),
		RedisURL:                  getEnv("REDIS_URL", ""),
		RedisTLSInsecure:          strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:            getEnv("ASYNQ_QUEUE", "leads"),
		AsynqConcurrency:          mustInt(getEnv("ASYNQ_CONCURRENCY", "5")),
		PipelineCatalogPath:       getEnv("PIPELINE_CATALOG_PATH", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if len(cfg.GeocodeDefaultCountry) != 2 {
		return nil, fmt.Errorf("GEOCODE_DEFAULT_COUNTRY must be a two-letter country code")
	}
	if cfg.GeocodeTimeout <= 0 {
		return nil, fmt.Errorf("GEOCODE_TIMEOUT must be a positive duration")
	}
	if cfg.GeocodeSelector != "importance" && cfg.GeocodeSelector != "first" {
		return nil, fmt.Errorf("GEOCODE_SELECTOR must be one of: importance, first")
	}

	switch cfg.SnapshotBackend {
	case SnapshotBackendMemory, SnapshotBackendBadger:
	case SnapshotBackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when SNAPSHOT_BACKEND is redis")
		}
	default:
		return nil, fmt.Errorf("SNAPSHOT_BACKEND must be one of: memory, redis, badger")
	}
	if strings.TrimSpace(cfg.SnapshotKey) == "" {
		return nil, fmt.Errorf("SNAPSHOT_KEY must not be empty")
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
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat64(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
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
