package config

import (
	"os"
	"path/filepath"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	DBPath   string // JOURNEYMAP_DB, default ~/.blackroad/customer_journey.db
	LogLevel string // JOURNEYMAP_LOG_LEVEL, default "info"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DBPath:   envOr("JOURNEYMAP_DB", defaultDBPath()),
		LogLevel: envOr("JOURNEYMAP_LOG_LEVEL", "info"),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "customer_journey.db"
	}
	return filepath.Join(home, ".blackroad", "customer_journey.db")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
