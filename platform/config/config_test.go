package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/leadscout")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GetGeocodeDefaultCountry() != "us" {
		t.Fatalf("expected default country us, got %q", cfg.GetGeocodeDefaultCountry())
	}
	if cfg.GetDefaultPhoneRegion() != "US" {
		t.Fatalf("expected phone region US, got %q", cfg.GetDefaultPhoneRegion())
	}
	if cfg.GetGeocodeTimeout() != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.GetGeocodeTimeout())
	}
	if cfg.GetSnapshotBackend() != SnapshotBackendMemory {
		t.Fatalf("expected memory snapshot backend, got %q", cfg.GetSnapshotBackend())
	}
	if cfg.GetSnapshotKey() != "lastSearch" {
		t.Fatalf("expected snapshot key lastSearch, got %q", cfg.GetSnapshotKey())
	}
	if cfg.IsPlacesEnabled() {
		t.Fatalf("expected places to be disabled without an API key")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected DATABASE_URL error, got %v", err)
	}
}

func TestLoadRedisBackendRequiresURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SNAPSHOT_BACKEND", "redis")
	t.Setenv("REDIS_URL", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "REDIS_URL") {
		t.Fatalf("expected REDIS_URL error, got %v", err)
	}
}

func TestLoadRejectsUnknownSelector(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEOCODE_SELECTOR", "random")

	if _, err := Load(); err == nil {
		t.Fatalf("expected selector validation error")
	}
}

func TestLoadRejectsWildcardWithCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected CORS validation error")
	}
}
