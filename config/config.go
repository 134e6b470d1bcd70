// SPDX-License-Identifier: MIT

// Package config loads the YAML configuration of the lae command.
//
// Every field has a default (see Default); a file only needs to name the
// values it overrides. Command-line flags take precedence over the file.
//
//	workers: 8
//	seed: 42          # 0 = time-based
//	verify: false     # cross-check against the sequential reference
//	log:
//	  level: info     # debug, info, warn, error
//	  development: false
//	report:
//	  enabled: true
//	  format: text    # text, yaml, json
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a configuration value outside its allowed domain.
var ErrInvalid = errors.New("config: invalid value")

// Report formats accepted by ReportConfig.Format.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var formats = []string{FormatText, FormatYAML, FormatJSON}

// Config is the complete configuration of one lae invocation.
type Config struct {
	Workers int          `yaml:"workers"`
	Seed    int64        `yaml:"seed"` // 0 selects a time-based seed
	Verify  bool         `yaml:"verify"`
	Log     LogConfig    `yaml:"log"`
	Report  ReportConfig `yaml:"report"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // console encoder, stack traces on warn
}

// ReportConfig configures the worker report printed after a run.
type ReportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // text, yaml, json
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Workers: runtime.NumCPU(),
		Log: LogConfig{
			Level: "info",
		},
		Report: ReportConfig{
			Enabled: true,
			Format:  FormatText,
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults; unknown keys are rejected. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field.
// Errors: ErrInvalid naming the offending field.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalid, c.Workers)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	if !slices.Contains(formats, c.Report.Format) {
		return fmt.Errorf("%w: report.format %q (want one of %v)", ErrInvalid, c.Report.Format, formats)
	}
	return nil
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
