// Package config provides configuration loading for quadline.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aleksaelezovic/quadline/pkg/rdf"
	"github.com/aleksaelezovic/quadline/pkg/rdfio"
	"github.com/aleksaelezovic/quadline/pkg/store"
)

// Config represents the complete quadline configuration
type Config struct {
	Store    StoreConfig       `yaml:"store"`
	Parser   ParserConfig      `yaml:"parser"`
	Prefixes map[string]string `yaml:"prefixes"`
	Log      LogConfig         `yaml:"log"`
}

// StoreConfig configures the graph stores
type StoreConfig struct {
	// Strategy is one of unindexed, indexed, full or kv (default: full)
	Strategy string `yaml:"strategy"`
}

// ParserConfig configures line parsing
type ParserConfig struct {
	// Format is ntriples or nquads (default: nquads)
	Format string `yaml:"format"`
	// Policy is abort or skip (default: abort)
	Policy string `yaml:"policy"`
	// ValidateLexical rejects typed literals with invalid lexical forms
	ValidateLexical bool `yaml:"validate_lexical"`
	// PreserveBlankLabels keeps blank node labels from the input instead
	// of replacing them with generated identifiers
	PreserveBlankLabels bool `yaml:"preserve_blank_labels"`
	// MaxLineLength bounds a single input line in bytes
	MaxLineLength int `yaml:"max_line_length"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is debug, info, warn or error (default: info)
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Strategy: store.StrategyFullIndexed.String(),
		},
		Parser: ParserConfig{
			Format:        "nquads",
			Policy:        rdfio.PolicyAbort.String(),
			MaxLineLength: rdfio.DefaultMaxLineLength,
		},
		Prefixes: map[string]string{},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := store.ParseStrategy(c.Store.Strategy); err != nil {
		return fmt.Errorf("store.strategy: %w", err)
	}
	if _, err := rdfio.ParseFormat(c.Parser.Format); err != nil {
		return fmt.Errorf("parser.format: %w", err)
	}
	if _, err := rdfio.ParseErrorPolicy(c.Parser.Policy); err != nil {
		return fmt.Errorf("parser.policy: %w", err)
	}
	if c.Parser.MaxLineLength < 0 {
		return fmt.Errorf("parser.max_line_length must not be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	for prefix, ns := range c.Prefixes {
		if ns == "" {
			return fmt.Errorf("prefixes.%s: namespace is required", prefix)
		}
	}
	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, err
	}
	return level, nil
}

// Strategy returns the configured store strategy. Call Validate first.
func (c *Config) Strategy() store.Strategy {
	s, _ := store.ParseStrategy(c.Store.Strategy)
	return s
}

// Format returns the configured input format. Call Validate first.
func (c *Config) Format() rdfio.Format {
	f, _ := rdfio.ParseFormat(c.Parser.Format)
	return f
}

// Policy returns the configured error policy. Call Validate first.
func (c *Config) Policy() rdfio.ErrorPolicy {
	p, _ := rdfio.ParseErrorPolicy(c.Parser.Policy)
	return p
}

// ValueParser builds a value parser for one parse session.
func (c *Config) ValueParser() *rdf.ValueParser {
	prefixes := make(rdf.PrefixMap, len(c.Prefixes))
	for k, v := range c.Prefixes {
		prefixes[k] = v
	}
	values := rdf.NewValueParser(prefixes)
	values.ValidateLexical = c.Parser.ValidateLexical
	values.Blanks.PreserveLabels = c.Parser.PreserveBlankLabels
	return values
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
