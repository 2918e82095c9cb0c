// Package config loads and writes the tool's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vcftools/vcf/internal/cleaner"
	"github.com/vcftools/vcf/internal/filter"
	"github.com/vcftools/vcf/internal/history"
)

// DefaultPath is the config file the CLI looks for when --config is not
// given.
const DefaultPath = ".vcf.yaml"

// Config represents the tool configuration loaded from YAML.
type Config struct {
	// Rules controls which fields are removed and which field a record
	// must carry to be kept
	Rules RulesConfig `yaml:"rules"`

	// History controls the local run-history database
	History HistoryConfig `yaml:"history"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// Encoding names the source character encoding. Empty or "utf-8"
	// means the input is already UTF-8.
	Encoding string `yaml:"encoding"`
}

// RulesConfig represents the cleaning rules in the YAML config file.
// This is converted to filter.Config for internal use.
type RulesConfig struct {
	// DropPrefixes lists the field-name prefixes to remove
	DropPrefixes []string `yaml:"drop_prefixes"`

	// PhonePrefix is the field-name prefix a record must carry
	PhonePrefix string `yaml:"phone_prefix"`
}

// HistoryConfig configures run-history recording.
type HistoryConfig struct {
	// Enabled turns run recording on
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file
	Path string `yaml:"path"`
}

// LoadConfig loads the tool configuration from a YAML file. Keys omitted
// from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	rules := filter.DefaultConfig()
	return &Config{
		Rules: RulesConfig{
			DropPrefixes: rules.DropPrefixes,
			PhonePrefix:  rules.PhonePrefix,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    history.DefaultPath,
		},
		LogLevel: "info",
	}
}

// FilterConfig converts the YAML rules to the internal filter.Config type.
func (c *Config) FilterConfig() filter.Config {
	return filter.Config{
		DropPrefixes: c.Rules.DropPrefixes,
		PhonePrefix:  c.Rules.PhonePrefix,
	}
}

// Validate checks if the configuration has valid values
func (c *Config) Validate() error {
	if err := c.FilterConfig().Validate(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	if err := cleaner.ValidateEncoding(c.Encoding); err != nil {
		return err
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path must not be empty when history is enabled")
	}
	return nil
}

// ApplyEnv overlays VCF_* environment variables onto the configuration.
// Unset variables leave the current values untouched.
//
// Environment variables:
//   - VCF_DROP_PREFIXES: comma-separated field-name prefixes to remove
//   - VCF_PHONE_PREFIX: field-name prefix a record must carry
//   - VCF_LOG_LEVEL: debug, info, warn, or error
//   - VCF_ENCODING: source character encoding
//   - VCF_HISTORY: record runs in the history database (true/false)
//   - VCF_HISTORY_DB: history database path
func (c *Config) ApplyEnv() error {
	parseEnvList("VCF_DROP_PREFIXES", &c.Rules.DropPrefixes)
	parseEnvString("VCF_PHONE_PREFIX", &c.Rules.PhonePrefix)
	parseEnvString("VCF_LOG_LEVEL", &c.LogLevel)
	parseEnvString("VCF_ENCODING", &c.Encoding)
	if err := parseEnvBool("VCF_HISTORY", &c.History.Enabled); err != nil {
		return err
	}
	parseEnvString("VCF_HISTORY_DB", &c.History.Path)

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration from environment: %w", err)
	}
	return nil
}

// configTemplate is written by SaveDefaultConfig. It matches
// DefaultConfig and documents the optional extras as comments, so it is
// written verbatim instead of marshaled.
const configTemplate = `# vcf configuration
#
# Field-name matching is case-insensitive and prefix-based: "PHOTO" also
# removes "photo;ENCODING=BASE64:..." lines. Tokens containing a dot
# match group-qualified names ("item1.URL").

rules:
  drop_prefixes:
    - PHOTO
    - NOTE
    - ADR
    - ORG
    # Uncomment to strip more noise from phone exports:
    # - TITLE
    # - LABEL
    # - BDAY
    # - IMPP
    # - PRODID
    # - item1.URL
    # - item1.X-ABLabel

  # A record with no field matching this prefix is removed entirely,
  # and fields matching it are never removed.
  phone_prefix: TEL

history:
  # Record every run in a local SQLite database ("vcf history" reads it).
  enabled: false
  path: .vcf/history.db

# One of: debug, info, warn, error.
log_level: info

# Source encoding when the file is not UTF-8:
# encoding: windows-1251
`

// SaveDefaultConfig writes the default configuration template to a file.
func SaveDefaultConfig(path string) error {
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// parseEnvString reads a string from an environment variable
func parseEnvString(key string, dest *string) {
	if value := os.Getenv(key); value != "" {
		*dest = value
	}
}

// parseEnvList reads a comma-separated list from an environment variable
func parseEnvList(key string, dest *[]string) {
	value := os.Getenv(key)
	if value == "" {
		return
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*dest = items
}

// parseEnvBool reads a bool from an environment variable
func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		*dest = true
	case "0", "false", "no", "off":
		*dest = false
	default:
		return fmt.Errorf("invalid value for %s: %q", key, value)
	}
	return nil
}
