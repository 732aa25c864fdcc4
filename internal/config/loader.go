// loader.go - Configuration loading with priority cascade.
// Priority: defaults < global config < --config file < env vars < flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"time"
	_ "time/tzdata" // time_zone must resolve on hosts without a zoneinfo database

	"gopkg.in/yaml.v3"

	"github.com/bhecquet/seleniumRobot-sub007/internal/logging"
	"github.com/bhecquet/seleniumRobot-sub007/internal/redaction"
	"github.com/bhecquet/seleniumRobot-sub007/internal/state"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "PERFHAR_"

// LocalZone selects the host time zone.
const LocalZone = "Local"

// Config holds all resolved configuration values.
type Config struct {
	Creator   CreatorConfig   `yaml:"creator"`
	TimeZone  string          `yaml:"time_zone"`
	Pages     PagesConfig     `yaml:"pages"`
	Redaction RedactionConfig `yaml:"redaction"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// CreatorConfig is written to log.creator in every HAR.
type CreatorConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// PagesConfig controls which pages the HAR lists.
type PagesConfig struct {
	// OnlyUsed drops pages no entry resolved to.
	OnlyUsed bool `yaml:"only_used"`
}

// RedactionConfig extends the built-in header rules.
type RedactionConfig struct {
	// RequestHeaders are exact request header names to drop, on top of Authorization.
	RequestHeaders []string `yaml:"request_headers"`
	// HeaderSubstrings are matched case-insensitively on both sides, on top of "token".
	HeaderSubstrings []string `yaml:"header_substrings"`
	// MaskValues masks secrets found in the values of kept headers.
	MaskValues bool `yaml:"mask_values"`
	// Patterns are extra value-masking patterns, used when MaskValues is set.
	Patterns []redaction.Pattern `yaml:"patterns"`
}

// LogConfig selects the log level and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig selects metric naming.
type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

// FlagOverrides holds values explicitly set via command-line flags.
// Nil pointer means the flag was not set (so lower-priority values are kept).
type FlagOverrides struct {
	TimeZone      *string
	LogLevel      *string
	LogFormat     *string
	OnlyUsedPages *bool
	MaskValues    *bool
}

// Defaults returns the base configuration.
func Defaults() Config {
	return Config{
		Creator:  CreatorConfig{Name: "perfhar", Version: "1.0"},
		TimeZone: LocalZone,
		Log:      LogConfig{Level: "info", Format: "text"},
		Metrics:  MetricsConfig{Namespace: "perfhar"},
	}
}

// Load builds the final configuration by applying the priority cascade:
// defaults < global (state.GlobalConfigFile) < path < env vars < flags.
// A missing global file is fine; a missing path is an error. An empty path
// skips that layer.
func Load(path string, flags *FlagOverrides) (Config, error) {
	cfg := Defaults()

	if global, err := state.GlobalConfigFile(); err == nil {
		if err := loadYAMLFile(&cfg, global, true); err != nil {
			return cfg, fmt.Errorf("global config: %w", err)
		}
	}

	if path != "" {
		if err := loadYAMLFile(&cfg, path, false); err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
	}

	if err := loadEnvVars(&cfg); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}

	if flags != nil {
		applyFlags(&cfg, flags)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// loadYAMLFile decodes path over cfg. Keys absent from the file keep their
// current value; unknown keys are rejected.
func loadYAMLFile(cfg *Config, path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadEnvVars applies environment variable overrides.
func loadEnvVars(cfg *Config) error {
	if v := os.Getenv(EnvPrefix + "CREATOR_NAME"); v != "" {
		cfg.Creator.Name = v
	}
	if v := os.Getenv(EnvPrefix + "CREATOR_VERSION"); v != "" {
		cfg.Creator.Version = v
	}
	if v := os.Getenv(EnvPrefix + "TIME_ZONE"); v != "" {
		cfg.TimeZone = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv(EnvPrefix + "METRICS_NAMESPACE"); v != "" {
		cfg.Metrics.Namespace = v
	}
	if v := os.Getenv(EnvPrefix + "ONLY_USED_PAGES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sONLY_USED_PAGES: %w", EnvPrefix, err)
		}
		cfg.Pages.OnlyUsed = b
	}
	if v := os.Getenv(EnvPrefix + "MASK_VALUES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sMASK_VALUES: %w", EnvPrefix, err)
		}
		cfg.Redaction.MaskValues = b
	}
	return nil
}

// applyFlags applies command-line flag overrides (highest priority).
func applyFlags(cfg *Config, flags *FlagOverrides) {
	if flags.TimeZone != nil {
		cfg.TimeZone = *flags.TimeZone
	}
	if flags.LogLevel != nil {
		cfg.Log.Level = *flags.LogLevel
	}
	if flags.LogFormat != nil {
		cfg.Log.Format = *flags.LogFormat
	}
	if flags.OnlyUsedPages != nil {
		cfg.Pages.OnlyUsed = *flags.OnlyUsedPages
	}
	if flags.MaskValues != nil {
		cfg.Redaction.MaskValues = *flags.MaskValues
	}
}

var metricNamespace = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate checks that configuration values are usable.
func (c Config) Validate() error {
	if c.Creator.Name == "" {
		return errors.New("creator.name must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	if !metricNamespace.MatchString(c.Metrics.Namespace) {
		return fmt.Errorf("metrics.namespace must match %s, got %q", metricNamespace, c.Metrics.Namespace)
	}
	for i, p := range c.Redaction.Patterns {
		if p.Name == "" || p.Pattern == "" {
			return fmt.Errorf("redaction.patterns[%d]: name and pattern are required", i)
		}
	}
	return nil
}

// Location resolves TimeZone. "" and "Local" mean the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == LocalZone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time_zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// RedactionPolicy builds the header policy. invalid lists custom patterns
// that did not compile and were skipped.
func (c Config) RedactionPolicy() (policy *redaction.Policy, invalid []string) {
	var engine *redaction.Engine
	if c.Redaction.MaskValues {
		engine, invalid = redaction.NewEngine(c.Redaction.Patterns)
	}
	return redaction.NewPolicy(c.Redaction.RequestHeaders, c.Redaction.HeaderSubstrings, engine), invalid
}

// Logging returns the logger settings.
func (c Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format}
}
