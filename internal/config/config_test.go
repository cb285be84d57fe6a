// File path: internal/config/config_test.go
package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ZOTERO_LIBRARY_ID", "12345")
	t.Setenv("ZOTERO_API_KEY", "secret")
	t.Setenv("ZOTERO_LIBRARY_TYPE", "")
	t.Setenv("ZOTERO_BASE_URL", "")
	t.Setenv("ZOTERO_TIMEOUT", "")
	t.Setenv("AGENT_KEY", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LibraryType != "group" {
		t.Fatalf("expected default library type group, got %q", cfg.LibraryType)
	}
	if cfg.BaseURL != "https://api.zotero.org" {
		t.Fatalf("unexpected base url: %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
}

func TestLoadFailsWithoutCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("ZOTERO_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing API key")
	}
	setRequired(t)
	t.Setenv("ZOTERO_LIBRARY_ID", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing library id")
	}
}

func TestLoadRejectsUnknownLibraryType(t *testing.T) {
	setRequired(t)
	t.Setenv("ZOTERO_LIBRARY_TYPE", "shared")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown library type")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ZOTERO_LIBRARY_TYPE", "user")
	t.Setenv("ZOTERO_BASE_URL", "http://localhost:9999/")
	t.Setenv("ZOTERO_TIMEOUT", "5s")
	t.Setenv("AGENT_KEY", "agente")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LibraryType != "user" {
		t.Fatalf("unexpected library type: %q", cfg.LibraryType)
	}
	if cfg.BaseURL != "http://localhost:9999" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
	if cfg.AgentKey != "agente" {
		t.Fatalf("unexpected agent key: %q", cfg.AgentKey)
	}
}
