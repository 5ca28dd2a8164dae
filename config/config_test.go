package config_test

import (
	"testing"

	"reeltrack/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_PATH", "IMAGES_DIR", "BASIC_AUTH_USERNAME", "BASIC_AUTH_PASSWORD", "TMDB_API_KEY", "LOG_FILE"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()
	if cfg.Port != "8000" {
		t.Fatalf("expected default port 8000, got %q", cfg.Port)
	}
	if cfg.DatabasePath != "data/reeltrack.db" {
		t.Fatalf("unexpected default database path: %q", cfg.DatabasePath)
	}
	if cfg.ImagesDir != "static/images" {
		t.Fatalf("unexpected default images dir: %q", cfg.ImagesDir)
	}
	// Credentials stay empty; the gate reports the problem per request.
	if cfg.AuthUsername != "" || cfg.AuthPassword != "" {
		t.Fatalf("expected empty credentials, got %q/%q", cfg.AuthUsername, cfg.AuthPassword)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("BASIC_AUTH_USERNAME", "alice")
	t.Setenv("BASIC_AUTH_PASSWORD", "s3cret")
	t.Setenv("TMDB_API_KEY", "eyJtoken")

	cfg := config.Load()
	if cfg.Port != "9001" {
		t.Fatalf("expected port 9001, got %q", cfg.Port)
	}
	if cfg.DatabasePath != "/tmp/other.db" {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath)
	}
	if cfg.AuthUsername != "alice" || cfg.AuthPassword != "s3cret" {
		t.Fatalf("unexpected credentials: %q/%q", cfg.AuthUsername, cfg.AuthPassword)
	}
	if cfg.TMDBAPIKey != "eyJtoken" {
		t.Fatalf("unexpected tmdb key: %q", cfg.TMDBAPIKey)
	}
}
