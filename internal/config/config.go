// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the catalog service.
type Config struct {
	Port                string
	DatabaseURL         string
	RedisURL            string
	OpenAIAPIKey        string // optional: the assistant degrades gracefully without it
	OpenAIModel         string
	CacheRefreshMinutes int // how often the listing cache is rewarmed
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	refresh := 15
	if s := os.Getenv("CACHE_REFRESH_MINUTES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("CACHE_REFRESH_MINUTES must be a positive integer, got %q", s)
		}
		refresh = v
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	port := os.Getenv("CATALOG_PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            redisURL,
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         model,
		CacheRefreshMinutes: refresh,
	}, nil
}
