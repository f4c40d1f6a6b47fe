package config

import (
	"os"
	"path/filepath"
	"time"

	"docuflow/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	LogLevel    string
	StateDir    string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		APIBaseURL:  getEnvOrDefault("DOCUFLOW_API_URL", "https://legaltech-testing.coobrick.app"),
		HTTPTimeout: getEnvDurationOrDefault("DOCUFLOW_HTTP_TIMEOUT", 30*time.Second),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		StateDir:    getEnvOrDefault("DOCUFLOW_STATE_DIR", defaultStateDir()),
	}
}

// GetAPIBaseURL returns the backend base URL
func (c *AppConfig) GetAPIBaseURL() string {
	return c.APIBaseURL
}

// GetHTTPTimeout returns the per-request HTTP timeout
func (c *AppConfig) GetHTTPTimeout() time.Duration {
	return c.HTTPTimeout
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetStateDir returns the directory holding locally persisted client state
func (c *AppConfig) GetStateDir() string {
	return c.StateDir
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docuflow"
	}
	return filepath.Join(home, ".docuflow")
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
