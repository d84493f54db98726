// Package config provides configuration management for the scriptforge TUI.
package config

import (
	"os"
	"time"
)

// Config holds the TUI configuration.
type Config struct {
	// Server connection
	ServerURL string
	APIKey    string

	// Refresh interval of the history table; zero disables polling.
	Refresh time.Duration

	// Timeout of a single request
	RequestTimeout time.Duration
}

// Load returns configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ServerURL:      getEnv("SCRIPTFORGE_SERVER", "http://localhost:8787"),
		APIKey:         getEnv("SCRIPTFORGE_API_KEY", ""),
		Refresh:        getDuration("SCRIPTFORGE_TUI_REFRESH", 30*time.Second),
		RequestTimeout: getDuration("SCRIPTFORGE_TUI_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
