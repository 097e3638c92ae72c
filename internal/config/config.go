// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultCollectorURL is the collector endpoint final reports are posted to.
const DefaultCollectorURL = "https://hackathon.guvi.in/api/updateHoneyPotFinalResult"

// Config holds all application configuration.
type Config struct {
	Port             string
	APIKey           string
	CollectorURL     string
	CollectorTimeout time.Duration
	MaxMessages      int
	DBPath           string
	ArchiveEnabled   bool
	AllowedOrigins   []string
	FeedBuffer       int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		APIKey:           getEnv("API_KEY", ""),
		CollectorURL:     getEnv("COLLECTOR_URL", DefaultCollectorURL),
		CollectorTimeout: getEnvDuration("COLLECTOR_TIMEOUT", 5*time.Second),
		MaxMessages:      getEnvInt("MAX_MESSAGES", 8),
		DBPath:           getEnv("DB_PATH", "./data/honeypot.db"),
		ArchiveEnabled:   getEnvBool("ARCHIVE_ENABLED", true),
		AllowedOrigins:   splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		FeedBuffer:       getEnvInt("FEED_BUFFER", 64),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY cannot be empty")
	}
	if c.CollectorURL == "" {
		return fmt.Errorf("COLLECTOR_URL cannot be empty")
	}
	if c.CollectorTimeout <= 0 {
		return fmt.Errorf("COLLECTOR_TIMEOUT must be > 0")
	}
	if c.MaxMessages <= 0 {
		return fmt.Errorf("MAX_MESSAGES must be > 0")
	}
	if c.ArchiveEnabled && c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty when the archive is enabled")
	}
	if c.FeedBuffer <= 0 {
		return fmt.Errorf("FEED_BUFFER must be > 0")
	}
	return nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
