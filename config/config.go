// Package config reads the optional YAML settings file shared by the
// command line tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/arith/format"
)

// Example:
//
//	format: pretty
//	color: false
//	verbosity: 1
//	ui:
//	  addr: 127.0.0.1:9000
//	batch:
//	  workers: 4
type Config struct {
	Format    string `yaml:"format"`
	Color     bool   `yaml:"color"`
	Verbosity int    `yaml:"verbosity"`
	UI        UI     `yaml:"ui"`
	Batch     Batch  `yaml:"batch"`
}

type UI struct {
	Addr string `yaml:"addr"`
}

type Batch struct {
	Workers int `yaml:"workers"`
}

func Default() *Config {
	return &Config{
		Format: "trace",
		Color:  true,
		UI:     UI{Addr: ":8080"},
		Batch:  Batch{Workers: runtime.NumCPU()},
	}
}

// DefaultPath returns the location Load reads when no path is given.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "arith", "config.yaml"), nil
}

// Load reads the file at path over the defaults. An empty path means
// DefaultPath, which may be missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(format.Names(), c.Format) {
		return fmt.Errorf("invalid config: unknown format %q", c.Format)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("invalid config: batch.workers must be positive, got %d", c.Batch.Workers)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("invalid config: verbosity must not be negative, got %d", c.Verbosity)
	}
	if c.UI.Addr == "" {
		return errors.New("invalid config: ui.addr is empty")
	}
	return nil
}

// Marshal returns c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
