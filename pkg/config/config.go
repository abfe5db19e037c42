package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client
type Config struct {
	Env       string
	LogFormat string

	// Remote API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Client-side pacing, requests per second. Zero disables pacing.
	RateLimit float64
	RateBurst int

	// Optional YAML file overriding the built-in currency table
	CurrenciesConfigPath string
}

// Load reads configuration from the environment, after applying a .env file
// from the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                  getEnv("ENV", "development"),
		LogFormat:            getEnv("LOG_FORMAT", "text"),
		APIBaseURL:           strings.TrimRight(getEnv("EXPENSES_API_URL", ""), "/"),
		HTTPTimeout:          getEnvAsDuration("HTTP_TIMEOUT", 10*time.Second),
		RateLimit:            getEnvAsFloat("API_RATE_LIMIT", 0),
		RateBurst:            getEnvAsInt("API_RATE_BURST", 1),
		CurrenciesConfigPath: getEnv("CURRENCIES_CONFIG_PATH", ""),
	}

	return cfg, nil
}

// Validate ensures all required configuration is present
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("EXPENSES_API_URL is required")
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("EXPENSES_API_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("EXPENSES_API_URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("EXPENSES_API_URL must include a host")
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("API_RATE_LIMIT must not be negative")
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("API_RATE_BURST must be at least 1 when API_RATE_LIMIT is set")
	}

	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
