// Package config loads the regsim settings file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/regio/layout"
)

const (
	CONFIG_DIR  = ".regio"
	CONFIG_FILE = "config.yaml"
	DB_FILE     = "snapshots.db"
)

// Config is the regsim settings file.
type Config struct {
	Layout   string `yaml:"layout,omitempty"` // Layout table path; empty for the built-in table.
	Database string `yaml:"database"`         // Snapshot database path.
	Verbose  bool   `yaml:"verbose,omitempty"`
	Lang     string `yaml:"lang,omitempty"` // Message language tag; empty for the user locale.
}

func home() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = ""
	}
	return filepath.Join(dir, CONFIG_DIR)
}

// DefaultPath returns ~/.regio/config.yaml.
func DefaultPath() string {
	return filepath.Join(home(), CONFIG_FILE)
}

// Default returns the settings used when there is no config file.
func Default() *Config {
	return &Config{
		Database: filepath.Join(home(), DB_FILE),
	}
}

// Load reads path over the defaults. A missing file at the default path is
// not an error.
func Load(path string) (cfg *Config, err error) {
	cfg = Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && path == DefaultPath() {
		err = nil
		return
	}
	if err != nil {
		cfg = nil
		return
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = nil
	}
	return
}

// Save writes the settings to path, refusing to replace an existing file
// unless overwrite is set.
func (cfg *Config) Save(path string, overwrite bool) (err error) {
	if _, serr := os.Stat(path); serr == nil && !overwrite {
		err = &ErrConfigExists{Path: path}
		return
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return
	}

	err = os.WriteFile(path, data, 0o644)
	return
}

// Chip loads the configured layout table.
func (cfg *Config) Chip() (chip *layout.Chip, err error) {
	if cfg.Layout == "" {
		return layout.Default()
	}
	return layout.Load(cfg.Layout)
}
