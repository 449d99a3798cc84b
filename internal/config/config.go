// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Default server port when neither config nor PORT is set
const DefaultPort = 8080

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Job     string `json:"job,omitempty"`     // Path to job posting JSON file
	Profile string `json:"profile,omitempty"` // Path to user profile JSON file
	Sample  string `json:"sample,omitempty"`  // Path to a sample letter for style matching

	// Generation
	Language string `json:"language,omitempty"` // ISO 639-1 letter language
	Tone     string `json:"tone,omitempty"`     // professional, enthusiastic, or formal
	Notes    string `json:"notes,omitempty"`    // Extra instructions passed to generation

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP server port
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed stage information
	NoFallback  bool   `json:"no_fallback,omitempty"`  // Fail instead of degrading tiers
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables.
// Typically merged under flag and file values.
func FromEnv() Config {
	cfg := Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch c.Tone {
	case "", "professional", "enthusiastic", "formal":
	default:
		return fmt.Errorf("config error: 'tone' must be professional, enthusiastic, or formal")
	}

	// Validate file paths exist (if specified)
	for _, p := range []struct{ name, path string }{
		{"job", c.Job},
		{"profile", c.Profile},
		{"sample", c.Sample},
	} {
		if p.path == "" {
			continue
		}
		if _, err := os.Stat(p.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", p.name, p.path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Sample == "" {
		result.Sample = defaults.Sample
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}
	if result.Tone == "" {
		result.Tone = defaults.Tone
	}
	if result.Notes == "" {
		result.Notes = defaults.Notes
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if !result.NoFallback {
		result.NoFallback = defaults.NoFallback
	}

	return result
}
