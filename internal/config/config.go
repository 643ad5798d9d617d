// Package config loads the optional HCL configuration for the report command.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "handstats.hcl"

// Config controls logging and report generation.
type Config struct {
	LogLevel      string   `hcl:"log_level,optional"`
	Workers       int      `hcl:"workers,optional"`
	Players       []string `hcl:"players,optional"`
	ShowAdditions bool     `hcl:"show_additions,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Workers:  4,
	}
}

// Load reads an HCL config file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}

	return &cfg, nil
}

// Validate checks the configuration for values the report cannot use.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
