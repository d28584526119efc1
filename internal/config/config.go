// =============================================================================
// CSV to EDI Mapper - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a single YAML file.
// The configuration covers the surrounding plumbing only: directories, the
// base template location, output naming and logging. The field mapping itself
// is static data in internal/mapping and is deliberately not configurable.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration, loaded from config.yaml.
type Config struct {
	// InputDir is the directory scanned for incoming order CSV files.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory the generated XML documents are written to.
	// It is created if missing. Default: "./outputs"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is where successfully processed CSV files are moved.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputArchiveDir is where generated XML documents are copied for
	// long-term storage. Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// TemplatePath is the base TrueCommerce XML template. A fresh copy is
	// parsed for every order. Default: "./templates/baseEDI.XML"
	TemplatePath string `yaml:"template_path"`

	// OutputFormat names the generated file. Placeholders:
	//   {cust_order} - the literal CUST-ORDER header value
	//   {uuid}       - a random UUID
	//   {timestamp}  - current timestamp (YYYYMMDD_HHMMSS)
	// Default: "WAITROSE_{cust_order}.XML"
	OutputFormat string `yaml:"output_format"`

	// ReportDir enables the XLSX processing-run report when non-empty.
	ReportDir string `yaml:"report_dir"`

	// LogLevel controls logging verbosity: debug, info, warn, error.
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// ValidateBeforeProcess runs the CSV format validator before each
	// transform and rejects files that fail it. Default: true
	ValidateBeforeProcess bool `yaml:"validate_before_process"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and validates the configuration file at path. A missing file is
// an error; an absent optional setting falls back to its default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every setting at its default value.
func Default() *Config {
	cfg := &Config{ValidateBeforeProcess: true}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./outputs"
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = "./input_archive"
	}
	if cfg.OutputArchiveDir == "" {
		cfg.OutputArchiveDir = "./output_archive"
	}
	if cfg.TemplatePath == "" {
		cfg.TemplatePath = "./templates/baseEDI.XML"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "WAITROSE_{cust_order}.XML"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func (cfg *Config) validate() error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	return nil
}
