// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Default values applied when neither the config file nor the environment
// provides one.
const (
	DefaultAPIBaseURL      = "https://apibr.com/vagas/api/v2"
	DefaultPageSize        = 12
	DefaultRefreshInterval = 6 // hours
)

// PageSizeOptions are the allowed listing page sizes.
var PageSizeOptions = []int{12, 24, 48}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or environment
// variables.
type Config struct {
	// Collaborator endpoints
	APIBaseURL     string `json:"api_base_url,omitempty"`     // Remote job source base URL
	IdentityURL    string `json:"identity_url,omitempty"`     // Identity provider base URL
	IdentityAPIKey string `json:"identity_api_key,omitempty"` // Identity provider API key

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL for the document store
	RedisURL    string `json:"redis_url,omitempty"`    // Optional redis URL for the job snapshot cache
	DataDir     string `json:"data_dir,omitempty"`     // Directory for local device storage

	// Behavior
	RefreshInterval int    `json:"refresh_interval,omitempty"` // Background refresh interval in hours
	PageSize        int    `json:"page_size,omitempty"`        // Jobs per page (12, 24 or 48)
	StrictSchema    *bool  `json:"strict_schema,omitempty"`    // Validate remote payloads against the job schema; nil means unset
	LogLevel        string `json:"log_level,omitempty"`        // debug, info, warn, error
}

// StrictSchemaEnabled resolves the optional strict_schema flag, defaulting
// to off.
func (c *Config) StrictSchemaEnabled() bool {
	return c.StrictSchema != nil && *c.StrictSchema
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv builds a Config from environment variables. An empty variable
// leaves the field unset so file values or defaults can fill it.
func FromEnv() Config {
	cfg := Config{
		APIBaseURL:     os.Getenv("JOBHUB_API_BASE_URL"),
		IdentityURL:    os.Getenv("JOBHUB_IDENTITY_URL"),
		IdentityAPIKey: os.Getenv("JOBHUB_IDENTITY_API_KEY"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		DataDir:        os.Getenv("JOBHUB_DATA_DIR"),
		LogLevel:       os.Getenv("JOBHUB_LOG_LEVEL"),
	}
	if v := os.Getenv("JOBHUB_REFRESH_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RefreshInterval = n
		}
	}
	if v := os.Getenv("JOBHUB_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("JOBHUB_STRICT_SCHEMA"); v != "" {
		strict := v == "1" || v == "true"
		cfg.StrictSchema = &strict
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.RefreshInterval < 0 {
		return fmt.Errorf("config error: 'refresh_interval' must be non-negative")
	}
	if c.PageSize != 0 {
		valid := false
		for _, s := range PageSizeOptions {
			if c.PageSize == s {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("config error: 'page_size' must be one of %v", PageSizeOptions)
		}
	}
	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: 'data_dir' is not a directory: %s", c.DataDir)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to layer env values over file values over built-in
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.IdentityURL == "" {
		result.IdentityURL = defaults.IdentityURL
	}
	if result.IdentityAPIKey == "" {
		result.IdentityAPIKey = defaults.IdentityAPIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.StrictSchema == nil {
		result.StrictSchema = defaults.StrictSchema
	}

	if result.RefreshInterval == 0 {
		if defaults.RefreshInterval > 0 {
			result.RefreshInterval = defaults.RefreshInterval
		} else {
			result.RefreshInterval = DefaultRefreshInterval
		}
	}
	if result.PageSize == 0 {
		if defaults.PageSize > 0 {
			result.PageSize = defaults.PageSize
		} else {
			result.PageSize = DefaultPageSize
		}
	}
	if result.APIBaseURL == "" {
		result.APIBaseURL = DefaultAPIBaseURL
	}

	return result
}

// DefaultDataDir returns the default directory for local device storage.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "jobhub")
	}
	return ".jobhub"
}
