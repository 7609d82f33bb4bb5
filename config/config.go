package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig `yaml:"app"`

	// Bulk import
	Import ImportConfig `yaml:"import"`

	// Observability
	Observability ObservabilityConfig `yaml:"observability"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string      `yaml:"name"`
	Environment Environment `yaml:"environment"`
	Version     string      `yaml:"version"`
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// Field delimiter, a single character ("," or "\t" or ";")
	Delimiter string `yaml:"delimiter"`

	// Comment character; lines starting with it are skipped. Empty disables.
	Comment string `yaml:"comment"`

	// Max per-row failures kept in an import report
	MaxReportedFailures int `yaml:"max_reported_failures"`
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	// Logging
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // json, text

	// Metrics are collected in-process and logged when a command finishes
	MetricsEnabled bool `yaml:"metrics_enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:        "student-directory",
			Environment: EnvDevelopment,
			Version:     "0.1.0",
		},
		Import: ImportConfig{
			Delimiter:           ",",
			Comment:             "",
			MaxReportedFailures: 100,
		},
		Observability: ObservabilityConfig{
			LogLevel:       "warn",
			LogFormat:      "text",
			MetricsEnabled: false,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// decodeYAML rejects unknown keys so that typos do not pass silently.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	c.App.Name = getEnv("APP_NAME", c.App.Name)
	c.App.Environment = Environment(getEnv("APP_ENV", string(c.App.Environment)))
	c.App.Version = getEnv("APP_VERSION", c.App.Version)

	c.Import.Delimiter = getEnv("IMPORT_DELIMITER", c.Import.Delimiter)
	c.Import.Comment = getEnv("IMPORT_COMMENT", c.Import.Comment)
	c.Import.MaxReportedFailures = getEnvInt("IMPORT_MAX_REPORTED_FAILURES", c.Import.MaxReportedFailures)

	c.Observability.LogLevel = getEnv("LOG_LEVEL", c.Observability.LogLevel)
	c.Observability.LogFormat = getEnv("LOG_FORMAT", c.Observability.LogFormat)
	c.Observability.MetricsEnabled = getEnvBool("METRICS_ENABLED", c.Observability.MetricsEnabled)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	switch c.App.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Sprintf("APP_ENV must be development, staging or production, got %q", c.App.Environment))
	}

	if utf8.RuneCountInString(c.Import.Delimiter) != 1 || !csvSeparator(c.Import.DelimiterRune()) {
		errs = append(errs, fmt.Sprintf("IMPORT_DELIMITER must be a single character other than a quote or line break, got %q", c.Import.Delimiter))
	}
	if utf8.RuneCountInString(c.Import.Comment) > 1 || (c.Import.Comment != "" && !csvSeparator(c.Import.CommentRune())) {
		errs = append(errs, fmt.Sprintf("IMPORT_COMMENT must be empty or a single character other than a quote or line break, got %q", c.Import.Comment))
	}
	if c.Import.Comment != "" && c.Import.Comment == c.Import.Delimiter {
		errs = append(errs, "IMPORT_COMMENT must differ from IMPORT_DELIMITER")
	}
	if c.Import.MaxReportedFailures <= 0 {
		errs = append(errs, "IMPORT_MAX_REPORTED_FAILURES must be positive")
	}

	switch strings.ToLower(c.Observability.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be debug, info, warn or error, got %q", c.Observability.LogLevel))
	}

	switch strings.ToLower(c.Observability.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be json or text, got %q", c.Observability.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// csvSeparator reports whether r is accepted by encoding/csv as a field
// delimiter or comment character.
func csvSeparator(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError
}

// DelimiterRune returns the delimiter as a rune.
func (c ImportConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// CommentRune returns the comment character, or 0 when disabled.
func (c ImportConfig) CommentRune() rune {
	if c.Comment == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.Comment)
	return r
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
