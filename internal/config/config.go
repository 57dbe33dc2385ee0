// ABOUTME: Centralized configuration for the goal-tracking system
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"

	"github.com/willbda/ten-week-goal-app-sub004/internal/storage/sqlite"
)

// Config holds all configuration for the goal tracker.
type Config struct {
	// Storage settings
	DBPath        string
	GraphStrategy string

	// Logging settings
	LogLevel string

	// MetricsAddr is the listen address for the Prometheus /metrics
	// endpoint. Empty disables the listener.
	MetricsAddr string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:        getEnv("GOALS_DB_PATH", sqlite.DefaultDBPath()),
		GraphStrategy: getEnv("GOALS_GRAPH_STRATEGY", "bulk"),
		LogLevel:      getEnv("GOALS_LOG_LEVEL", "info"),
		MetricsAddr:   getEnv("GOALS_METRICS_ADDR", ""),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.GraphStrategy != "bulk" && c.GraphStrategy != "json" {
		return fmt.Errorf("GOALS_GRAPH_STRATEGY must be bulk or json, got %q", c.GraphStrategy)
	}
	if c.DBPath == "" {
		return fmt.Errorf("GOALS_DB_PATH must not be empty")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
