// File path: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.zotero.org"
	defaultTimeout = 30 * time.Second
)

// Config carries the process configuration resolved from the environment.
// Store credentials are mandatory; the agent secret and the LLM key are
// optional features.
type Config struct {
	LibraryID   string
	LibraryType string
	APIKey      string
	BaseURL     string
	Timeout     time.Duration

	AgentKey string
}

// Load reads configuration from the environment and validates the pieces
// the process cannot run without.
func Load() (Config, error) {
	cfg := Config{
		LibraryID:   strings.TrimSpace(os.Getenv("ZOTERO_LIBRARY_ID")),
		LibraryType: strings.ToLower(strings.TrimSpace(os.Getenv("ZOTERO_LIBRARY_TYPE"))),
		APIKey:      strings.TrimSpace(os.Getenv("ZOTERO_API_KEY")),
		BaseURL:     strings.TrimSpace(os.Getenv("ZOTERO_BASE_URL")),
		AgentKey:    strings.TrimSpace(os.Getenv("AGENT_KEY")),
	}
	if cfg.LibraryID == "" {
		return Config{}, fmt.Errorf("ZOTERO_LIBRARY_ID not set")
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("ZOTERO_API_KEY not set")
	}
	switch cfg.LibraryType {
	case "":
		cfg.LibraryType = "group"
	case "group", "user":
	default:
		return Config{}, fmt.Errorf("ZOTERO_LIBRARY_TYPE must be %q or %q, got %q", "group", "user", cfg.LibraryType)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.Timeout = defaultTimeout
	if raw := strings.TrimSpace(os.Getenv("ZOTERO_TIMEOUT")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse ZOTERO_TIMEOUT: %w", err)
		}
		if parsed > 0 {
			cfg.Timeout = parsed
		}
	}
	return cfg, nil
}
