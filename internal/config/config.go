// Package config loads smartcache settings from an optional YAML file.
// Command-line flags are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/smartcache/internal/memo"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".smartcache.yaml"

// DefaultReports is the directory analysis reports are written to.
const DefaultReports = ".smartcache-reports"

// Config holds every tunable setting.
type Config struct {
	// PureOperations extends the built-in pure-operation set.
	PureOperations []string `yaml:"pure_operations"`
	// AllowIdentReturn accepts `return x` as pure when x is a bare identifier.
	AllowIdentReturn bool `yaml:"allow_ident_return"`
	// KeyMode is "name" or "arguments".
	KeyMode  memo.KeyMode `yaml:"key_mode"`
	Reports  string       `yaml:"reports"`
	Parallel int          `yaml:"parallel"`
	Verbose  bool         `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		KeyMode:  memo.KeyByName,
		Reports:  DefaultReports,
		Parallel: 1,
	}
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate normalises zero values and rejects unknown key modes.
func (c *Config) Validate() error {
	mode, err := memo.ParseKeyMode(string(c.KeyMode))
	if err != nil {
		return err
	}

	c.KeyMode = mode

	if c.Parallel <= 0 {
		c.Parallel = 1
	}

	if c.Reports == "" {
		c.Reports = DefaultReports
	}

	return nil
}
