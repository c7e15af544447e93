// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for tastebud.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location: ~/.tastebud/config.toml.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tastebud configuration.
type Config struct {
	Version string `toml:"version"`

	// Backend connection settings
	Backend BackendConfig `toml:"backend"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// BackendConfig contains the recipe chat backend connection settings.
type BackendConfig struct {
	// URL is the backend base URL
	URL string `toml:"url"`
	// APIKey is sent in the X-API-Key header; empty disables the header
	APIKey string `toml:"api_key"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
	// RequestsPerMinute caps outgoing calls to match the backend's limiter
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// WordWrap is the column recipes and messages are wrapped at
	WordWrap int `toml:"word_wrap"`
	// ShowSuggestions toggles the quick-reply suggestion bar
	ShowSuggestions bool `toml:"show_suggestions"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Backend: BackendConfig{
			URL:               "http://127.0.0.1:5000",
			APIKey:            "",
			TimeoutSecs:       30,
			RequestsPerMinute: 60,
		},

		UI: UIConfig{
			Theme:           "dark",
			WordWrap:        80,
			ShowSuggestions: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the tastebud configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".tastebud"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when no file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
// SECURITY: Creates the file with 0600 permissions since it can hold an API key.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# tastebud configuration file")
	fmt.Fprintln(file, "# Generated by tastebud - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	if c.Backend.URL != "" {
		u, err := url.Parse(c.Backend.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ValidationError{
				Field:   "backend.url",
				Message: fmt.Sprintf("invalid URL %q", c.Backend.URL),
			}
		}
	}

	if c.Backend.TimeoutSecs < 1 || c.Backend.TimeoutSecs > 300 {
		return ValidationError{
			Field:   "backend.timeout_secs",
			Message: fmt.Sprintf("must be 1-300, got %d", c.Backend.TimeoutSecs),
		}
	}

	if c.Backend.RequestsPerMinute < 1 {
		return ValidationError{
			Field:   "backend.requests_per_minute",
			Message: fmt.Sprintf("must be positive, got %d", c.Backend.RequestsPerMinute),
		}
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		return ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme %q, must be one of: dark, light, auto", c.UI.Theme),
		}
	}

	if c.UI.WordWrap < 20 || c.UI.WordWrap > 500 {
		return ValidationError{
			Field:   "ui.word_wrap",
			Message: fmt.Sprintf("must be 20-500, got %d", c.UI.WordWrap),
		}
	}

	return nil
}

// SetDefaults fills in defaults for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Backend.URL == "" {
		c.Backend.URL = defaults.Backend.URL
	}
	if c.Backend.TimeoutSecs == 0 {
		c.Backend.TimeoutSecs = defaults.Backend.TimeoutSecs
	}
	if c.Backend.RequestsPerMinute == 0 {
		c.Backend.RequestsPerMinute = defaults.Backend.RequestsPerMinute
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.WordWrap == 0 {
		c.UI.WordWrap = defaults.UI.WordWrap
	}
}

// =============================================================================
// KEYED UPDATES
// =============================================================================

// Set updates a single field addressed by its dotted key, as used by
// "tastebud config set". The caller validates and saves afterwards.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "backend.url":
		c.Backend.URL = value
	case "backend.api_key":
		c.Backend.APIKey = value
	case "backend.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return ValidationError{Field: key, Message: "must be a number"}
		}
		c.Backend.TimeoutSecs = n
	case "backend.requests_per_minute":
		n, err := strconv.Atoi(value)
		if err != nil {
			return ValidationError{Field: key, Message: "must be a number"}
		}
		c.Backend.RequestsPerMinute = n
	case "ui.theme":
		c.UI.Theme = value
	case "ui.word_wrap":
		n, err := strconv.Atoi(value)
		if err != nil {
			return ValidationError{Field: key, Message: "must be a number"}
		}
		c.UI.WordWrap = n
	case "ui.show_suggestions":
		switch strings.ToLower(value) {
		case "true", "yes", "on", "1":
			c.UI.ShowSuggestions = true
		case "false", "no", "off", "0":
			c.UI.ShowSuggestions = false
		default:
			return ValidationError{Field: key, Message: "must be true or false"}
		}
	default:
		return ValidationError{Field: key, Message: "unknown configuration key"}
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TASTEBUD_URL: overrides backend.url
//   - TASTEBUD_API_KEY: overrides backend.api_key
//   - TASTEBUD_TIMEOUT_SECS: overrides backend.timeout_secs
//   - TASTEBUD_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("TASTEBUD_URL"); u != "" {
		c.Backend.URL = u
	}
	if key := os.Getenv("TASTEBUD_API_KEY"); key != "" {
		c.Backend.APIKey = key
	}
	if secs := os.Getenv("TASTEBUD_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil && n > 0 {
			c.Backend.TimeoutSecs = n
		}
	}
	if theme := os.Getenv("TASTEBUD_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe. Setting a
// config before the first Global call suppresses the lazy load.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
