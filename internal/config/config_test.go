// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// DEFAULT CONFIG TESTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.URL != "http://127.0.0.1:5000" {
		t.Errorf("Default backend URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 30 {
		t.Errorf("Default timeout = %d, want 30", cfg.Backend.TimeoutSecs)
	}
	if cfg.Backend.RequestsPerMinute != 60 {
		t.Errorf("Default rate = %d, want 60", cfg.Backend.RequestsPerMinute)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Default theme = %q, want dark", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1.0.0"

[backend]
url = "http://example.test:9000"
api_key = "secret"
timeout_secs = 10

[ui]
theme = "light"
word_wrap = 100
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Backend.URL != "http://example.test:9000" {
		t.Errorf("URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.APIKey != "secret" {
		t.Errorf("APIKey = %q", cfg.Backend.APIKey)
	}
	if cfg.Backend.TimeoutSecs != 10 {
		t.Errorf("TimeoutSecs = %d", cfg.Backend.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" || cfg.UI.WordWrap != 100 {
		t.Errorf("UI = %+v", cfg.UI)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Backend.RequestsPerMinute != 60 {
		t.Errorf("RequestsPerMinute = %d, want default 60", cfg.Backend.RequestsPerMinute)
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}

func TestLoadFromPath_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[backend]
url = "not a url"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("Expected validation to reject the bad URL")
	}
}

// =============================================================================
// SAVE TESTS
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Backend.URL = "http://roundtrip.test:8080"
	cfg.UI.Theme = "light"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Config file permissions = %o, want 0600", perm)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Backend.URL != cfg.Backend.URL || loaded.UI.Theme != cfg.UI.Theme {
		t.Errorf("Round trip lost values: %+v", loaded)
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad url", func(c *Config) { c.Backend.URL = "::::" }, "backend.url"},
		{"zero timeout", func(c *Config) { c.Backend.TimeoutSecs = 0 }, "backend.timeout_secs"},
		{"huge timeout", func(c *Config) { c.Backend.TimeoutSecs = 1000 }, "backend.timeout_secs"},
		{"negative rate", func(c *Config) { c.Backend.RequestsPerMinute = -1 }, "backend.requests_per_minute"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"narrow wrap", func(c *Config) { c.UI.WordWrap = 5 }, "ui.word_wrap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate failed: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate err = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDE TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TASTEBUD_URL", "http://env.test:7000")
	t.Setenv("TASTEBUD_API_KEY", "env-key")
	t.Setenv("TASTEBUD_TIMEOUT_SECS", "12")
	t.Setenv("TASTEBUD_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.URL != "http://env.test:7000" {
		t.Errorf("URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.APIKey != "env-key" {
		t.Errorf("APIKey = %q", cfg.Backend.APIKey)
	}
	if cfg.Backend.TimeoutSecs != 12 {
		t.Errorf("TimeoutSecs = %d", cfg.Backend.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
}

func TestApplyEnvOverrides_IgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("TASTEBUD_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want default 30", cfg.Backend.TimeoutSecs)
	}
}

// =============================================================================
// GLOBAL CONFIG TESTS
// =============================================================================

func TestSetGlobal(t *testing.T) {
	t.Cleanup(ResetGlobalForTesting)

	cfg := Default()
	cfg.Backend.URL = "http://global.test"
	SetGlobal(cfg)

	if Global().Backend.URL != "http://global.test" {
		t.Errorf("Global URL = %q", Global().Backend.URL)
	}
}
