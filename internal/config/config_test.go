package config_test

import (
	"strings"
	"testing"

	"github.com/blackroad/journeymap/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	// Unset any env vars that might be set.
	t.Setenv("JOURNEYMAP_DB", "")
	t.Setenv("JOURNEYMAP_LOG_LEVEL", "")

	cfg := config.Load()

	if !strings.HasSuffix(cfg.DBPath, "customer_journey.db") {
		t.Errorf("DBPath = %q, want suffix %q", cfg.DBPath, "customer_journey.db")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JOURNEYMAP_DB", "/tmp/test.db")
	t.Setenv("JOURNEYMAP_LOG_LEVEL", "debug")

	cfg := config.Load()

	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/test.db")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}
