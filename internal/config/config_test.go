package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MaxMessages != 8 {
		t.Errorf("MaxMessages = %d, want 8", cfg.MaxMessages)
	}
	if cfg.CollectorTimeout != 5*time.Second {
		t.Errorf("CollectorTimeout = %v, want 5s", cfg.CollectorTimeout)
	}
	if !cfg.ArchiveEnabled {
		t.Error("ArchiveEnabled should default to true")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when API_KEY is unset")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_KEY", "k")
	t.Setenv("MAX_MESSAGES", "12")
	t.Setenv("COLLECTOR_TIMEOUT", "2s")
	t.Setenv("ARCHIVE_ENABLED", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://ops.example, https://dash.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxMessages != 12 {
		t.Errorf("MaxMessages = %d, want 12", cfg.MaxMessages)
	}
	if cfg.CollectorTimeout != 2*time.Second {
		t.Errorf("CollectorTimeout = %v, want 2s", cfg.CollectorTimeout)
	}
	if cfg.ArchiveEnabled {
		t.Error("ArchiveEnabled should be false")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://dash.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		return &Config{
			Port:             "8080",
			APIKey:           "k",
			CollectorURL:     DefaultCollectorURL,
			CollectorTimeout: time.Second,
			MaxMessages:      8,
			DBPath:           "./data/honeypot.db",
			ArchiveEnabled:   true,
			FeedBuffer:       64,
		}
	}

	cases := map[string]func(*Config){
		"empty port":       func(c *Config) { c.Port = "" },
		"zero threshold":   func(c *Config) { c.MaxMessages = 0 },
		"zero timeout":     func(c *Config) { c.CollectorTimeout = 0 },
		"archived no path": func(c *Config) { c.DBPath = "" },
		"zero feed buffer": func(c *Config) { c.FeedBuffer = 0 },
		"no collector url": func(c *Config) { c.CollectorURL = "" },
	}
	for name, mutate := range cases {
		cfg := base()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
