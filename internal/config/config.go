// Package config provides configuration loading and validation for the
// resume parser service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default configuration values
const (
	DefaultPort     = 8080
	DefaultAttempts = 3
	DefaultBackoff  = 1 * time.Second
	DefaultTimeout  = 60 * time.Second
)

// defaultAllowedOrigins are the CORS origins served when ALLOWED_ORIGINS is
// not set: local frontend dev servers.
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// Config is the explicit configuration value passed into the service at
// construction time. The Gemini API key may be empty: the model stage then
// fails fast per request and the fallback extractors carry the pipeline.
type Config struct {
	Port        int
	DatabaseURL string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	ModelAttempts       int
	ModelBackoff        time.Duration
	ModelRequestTimeout time.Duration

	AllowedOrigins []string
}

// FromEnv builds a Config from environment variables. DATABASE_URL is
// required; everything else has a default.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:                DefaultPort,
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         os.Getenv("GEMINI_MODEL"),
		GeminiBaseURL:       os.Getenv("GEMINI_BASE_URL"),
		ModelAttempts:       DefaultAttempts,
		ModelBackoff:        DefaultBackoff,
		ModelRequestTimeout: DefaultTimeout,
		AllowedOrigins:      defaultAllowedOrigins,
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 || p > 65535 {
			return nil, fmt.Errorf("invalid PORT value %q", port)
		}
		cfg.Port = p
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitOrigins(origins)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has the values the service cannot
// run without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return nil
}

// splitOrigins parses a comma-separated origin list, dropping empty entries.
func splitOrigins(s string) []string {
	var origins []string
	for _, origin := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
