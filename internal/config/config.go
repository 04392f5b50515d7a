package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the local-development backend used when nothing else is configured.
const DefaultAPIURL = "http://localhost:5000/api"

// DefaultRequestTimeout bounds every backend call.
const DefaultRequestTimeout = 10 * time.Second

// Config holds environment-level settings for the CLI
type Config struct {
	// API holds backend connection settings
	API APIConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig holds backend connection settings
type APIConfig struct {
	URL     string // overrides the environment picked from kisansetu.json
	Timeout time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	apiURL := os.Getenv("KISANSETU_API_URL")

	timeout := DefaultRequestTimeout
	if raw := os.Getenv("KISANSETU_REQUEST_TIMEOUT"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	// Logging configuration - console output suits an interactive CLI
	logLevel := os.Getenv("KISANSETU_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	logFormat := os.Getenv("KISANSETU_LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		API: APIConfig{
			URL:     apiURL,
			Timeout: timeout,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
