package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const defaultPDLBaseURL = "https://api.peopledatalabs.com/v5"

// Config aggregates application-wide configuration values.
type Config struct {
	Port            string
	Env             string
	PDLAPIKey       string
	PDLBaseURL      string
	PDLTimeout      time.Duration
	GatewayBaseURL  string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables and applies sane defaults.
// A missing PDL_API_KEY is not an error here; searches report it per request.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("APP_ENV", "development"),
		PDLAPIKey:  strings.TrimSpace(os.Getenv("PDL_API_KEY")),
		PDLBaseURL: strings.TrimRight(getEnv("PDL_BASE_URL", defaultPDLBaseURL), "/"),
	}
	cfg.GatewayBaseURL = strings.TrimRight(getEnv("GATEWAY_BASE_URL", "http://127.0.0.1:"+cfg.Port), "/")

	timeout, err := parseDuration(getEnv("PDL_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PDL_TIMEOUT value: %w", err)
	}
	cfg.PDLTimeout = timeout

	shutdown, err := parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT value: %w", err)
	}
	cfg.ShutdownTimeout = shutdown

	return cfg, nil
}

// APIKeyProvider returns a function reporting the current PDL credential.
func (c *Config) APIKeyProvider() func() string {
	return func() string {
		if c.PDLAPIKey != "" {
			return c.PDLAPIKey
		}
		return strings.TrimSpace(os.Getenv("PDL_API_KEY"))
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(input))
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", input)
	}
	return d, nil
}
