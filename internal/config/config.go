package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonshape/internal/validator"
)

// Config represents the complete configuration for jsonshape
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Validation ValidationConfig `yaml:"validation"`
	Output     OutputConfig     `yaml:"output"`
	Dev        DevConfig        `yaml:"dev"`
}

// InputConfig controls how documents are read
type InputConfig struct {
	Format string `yaml:"format"` // auto, json or yaml
}

// ValidationConfig controls the structure validator
type ValidationConfig struct {
	MaxDepth int `yaml:"max_depth"` // 0 means unlimited
}

// OutputConfig controls how reports are written
type OutputConfig struct {
	Format string `yaml:"format"` // text, json or yaml
	Quiet  bool   `yaml:"quiet"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

var (
	inputFormats  = []string{"auto", "json", "yaml"}
	outputFormats = []string{"text", "json", "yaml"}
)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Input: InputConfig{
			Format: "auto",
		},
		Validation: ValidationConfig{
			MaxDepth: 0,
		},
		Output: OutputConfig{
			Format: "text",
			Quiet:  false,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonshape.yml", ".jsonshape.yaml", "jsonshape.yml", "jsonshape.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that every option holds a supported value. Format names
// are normalized to lower case.
func (c *Config) Validate() error {
	c.Input.Format = strings.ToLower(strings.TrimSpace(c.Input.Format))
	if c.Input.Format == "" {
		c.Input.Format = "auto"
	}
	if c.Input.Format == "yml" {
		c.Input.Format = "yaml"
	}
	if !contains(inputFormats, c.Input.Format) {
		return fmt.Errorf("unsupported input format '%s' (want one of %s)", c.Input.Format, strings.Join(inputFormats, ", "))
	}

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if !contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("unsupported output format '%s' (want one of %s)", c.Output.Format, strings.Join(outputFormats, ", "))
	}

	if c.Validation.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.Validation.MaxDepth)
	}
	return nil
}

// ValidatorOptions maps the configuration onto validator options
func (c *Config) ValidatorOptions() validator.Options {
	return validator.Options{MaxDepth: c.Validation.MaxDepth}
}

// MergeConfigs merges CLI overrides into a base config
// Non-empty values from override take precedence over base values
func MergeConfigs(base, override *Config) *Config {
	merged := *base

	if override.Input.Format != "" {
		merged.Input.Format = override.Input.Format
	}
	if override.Output.Format != "" {
		merged.Output.Format = override.Output.Format
	}
	if override.Validation.MaxDepth > 0 {
		merged.Validation.MaxDepth = override.Validation.MaxDepth
	}

	// Flags can only switch these on
	merged.Output.Quiet = base.Output.Quiet || override.Output.Quiet
	merged.Dev.Debug = base.Dev.Debug || override.Dev.Debug

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath, cliInputFormat, cliOutputFormat string, cliMaxDepth int) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	override := &Config{
		Input:      InputConfig{Format: cliInputFormat},
		Output:     OutputConfig{Format: cliOutputFormat},
		Validation: ValidationConfig{MaxDepth: cliMaxDepth},
	}
	cfg = MergeConfigs(cfg, override)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
