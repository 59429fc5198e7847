// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "CV_EXTRACTOR_"

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Tables
	GazetteerFile string `json:"gazetteer_file,omitempty"` // YAML overlay extending the built-in gazetteer
	OverridesFile string `json:"overrides_file,omitempty"` // YAML table of verified missions

	// Limits
	MaxInputBytes int `json:"max_input_bytes,omitempty"` // Text analysed per document
	Workers       int `json:"workers,omitempty"`         // Concurrent analyses in batch mode

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // json or console

	// Behavior
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed progress information
	ValidateOutput bool `json:"validate_output,omitempty"` // Check the output against the JSON Schema
}

// Defaults returns the values used when neither flags, environment nor file set a field.
func Defaults() Config {
	return Config{
		MaxInputBytes: 512 << 10,
		Workers:       4,
		LogLevel:      "info",
		LogFormat:     "console",
	}
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

// FromEnv reads CV_EXTRACTOR_* variables. Unset or malformed numeric variables are left zero.
func FromEnv() Config {
	get := func(name string) string {
		return strings.TrimSpace(os.Getenv(EnvPrefix + name))
	}
	atoi := func(name string) int {
		n, _ := strconv.Atoi(get(name))
		return n
	}
	flag := func(name string) bool {
		b, _ := strconv.ParseBool(get(name))
		return b
	}
	return Config{
		GazetteerFile:  get("GAZETTEER_FILE"),
		OverridesFile:  get("OVERRIDES_FILE"),
		MaxInputBytes:  atoi("MAX_INPUT_BYTES"),
		Workers:        atoi("WORKERS"),
		LogLevel:       get("LOG_LEVEL"),
		LogFormat:      get("LOG_FORMAT"),
		Verbose:        flag("VERBOSE"),
		ValidateOutput: flag("VALIDATE_OUTPUT"),
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.MaxInputBytes < 0 {
		return fmt.Errorf("config error: 'max_input_bytes' must be non-negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console, got %q", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}

	// Validate file paths exist (if specified)
	if c.GazetteerFile != "" {
		if _, err := os.Stat(c.GazetteerFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: gazetteer file not found: %s", c.GazetteerFile)
		}
	}
	if c.OverridesFile != "" {
		if _, err := os.Stat(c.OverridesFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: overrides file not found: %s", c.OverridesFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over environment over config file over Defaults().
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.GazetteerFile == "" {
		result.GazetteerFile = defaults.GazetteerFile
	}
	if result.OverridesFile == "" {
		result.OverridesFile = defaults.OverridesFile
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.MaxInputBytes == 0 {
		result.MaxInputBytes = defaults.MaxInputBytes
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Bool fields: an enabled layer wins
	result.Verbose = result.Verbose || defaults.Verbose
	result.ValidateOutput = result.ValidateOutput || defaults.ValidateOutput

	return result
}
