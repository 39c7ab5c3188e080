package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	os.Unsetenv("HTTP_ADDR")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.MaxPlayers != 8 || cfg.SuggestionLimit != 5 {
		t.Errorf("MaxPlayers = %d SuggestionLimit = %d", cfg.MaxPlayers, cfg.SuggestionLimit)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %s, want 2h", cfg.SessionTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("MAX_PLAYERS", "4")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
	if cfg.MaxPlayers != 4 {
		t.Errorf("MaxPlayers = %d, want 4", cfg.MaxPlayers)
	}
}

func TestLoadDotenv(t *testing.T) {
	t.Setenv("SUGGESTION_LIMIT", "")
	os.Unsetenv("SUGGESTION_LIMIT")
	t.Setenv("MAX_PLAYERS", "6")

	path := filepath.Join(t.TempDir(), ".env")
	data := "SUGGESTION_LIMIT=3\nMAX_PLAYERS=2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("SUGGESTION_LIMIT") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SuggestionLimit != 3 {
		t.Errorf("SuggestionLimit = %d, want 3 from .env", cfg.SuggestionLimit)
	}
	if cfg.MaxPlayers != 6 {
		t.Errorf("MaxPlayers = %d, want 6 (environment wins over .env)", cfg.MaxPlayers)
	}
}

func TestLoadRejectsNonPositivePlayers(t *testing.T) {
	t.Setenv("MAX_PLAYERS", "0")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error")
	}
}
