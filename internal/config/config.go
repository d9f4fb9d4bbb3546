/*
PURPOSE:
  Defines the configuration structure and loading logic for cellbench.

REQUIREMENTS:
  User-specified:
  - Configure the benchmark cell and the report destination.

  Implementation-discovered:
  - Needs YAML parsing for optional project-level config files.
  - The project root and truncation limit are configuration, not globals.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Returns explicit error if an explicitly named config file is missing.
  - Returns error if a config file cannot be parsed.
  - Missing default files fall back to DefaultConfig().

USAGE:
  cfg, err := config.Load("cellbench.yaml")

RELATED FILES:
  - internal/cli/root.go
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCell   = "fixtures/cells/http_server.z1c"
	DefaultOutput = "benchmarks/latest.json"
	DefaultLimit  = 2000
)

// DefaultFiles are searched, in order, when no config path is given.
var DefaultFiles = []string{"cellbench.yaml", ".cellbench.yaml"}

// Config represents the full configuration for cellbench.
type Config struct {
	// Root is the project root. Commands run here and relative paths
	// resolve against it. Empty means the working directory.
	Root   string `yaml:"root"`
	Cell   string `yaml:"cell"`
	Output string `yaml:"output"`
	// TruncateLimit bounds captured stdout/stderr, in characters.
	TruncateLimit int `yaml:"truncate_limit"`
	// SummaryCSV, when set, receives one CSV row per executed command.
	SummaryCSV string `yaml:"summary_csv"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Cell:          DefaultCell,
		Output:        DefaultOutput,
		TruncateLimit: DefaultLimit,
	}
}

// Load reads configuration from a file.
// If path is empty, DefaultFiles are tried in order and defaults are
// returned when none exists.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.TruncateLimit < 0 {
		return nil, fmt.Errorf("config file %s: truncate_limit must not be negative", path)
	}
	return cfg, nil
}

// ResolveRoot returns the absolute project root.
func (c *Config) ResolveRoot() (string, error) {
	root := c.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}
	return abs, nil
}
