// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/slurmtool/pkg/defaults"
	"github.com/NVIDIA/slurmtool/pkg/serializer"
)

// FileName is the name of the per-user config file in the home directory.
const FileName = ".slurmtool.yaml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the tunables of one run.
type Config struct {
	Sinfo         string        `yaml:"sinfo"`
	Scontrol      string        `yaml:"scontrol"`
	Concurrency   int           `yaml:"concurrency"`
	Rate          float64       `yaml:"rate"`
	Burst         int           `yaml:"burst"`
	Retries       int           `yaml:"retries"`
	Timeout       time.Duration `yaml:"timeout"`
	HighThreshold float64       `yaml:"highThreshold"`
	Color         string        `yaml:"color"`
	Format        string        `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Sinfo:         "sinfo",
		Scontrol:      "scontrol",
		Concurrency:   defaults.Concurrency,
		Rate:          defaults.CommandRate,
		Burst:         defaults.CommandBurst,
		Retries:       defaults.CommandRetries,
		Timeout:       defaults.CommandTimeout,
		HighThreshold: defaults.HighUtilization,
		Color:         ColorAuto,
		Format:        string(serializer.FormatTable),
	}
}

// DefaultPath returns the per-user config path, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads the config at path over the defaults. An empty path falls back
// to DefaultPath and tolerates its absence.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := LoadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFrom decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func LoadFrom(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field is usable.
func (c *Config) Validate() error {
	if c.Sinfo == "" {
		return fmt.Errorf("sinfo path cannot be empty")
	}
	if c.Scontrol == "" {
		return fmt.Errorf("scontrol path cannot be empty")
	}
	if c.Concurrency < 1 || c.Concurrency > defaults.MaxConcurrency {
		return fmt.Errorf("concurrency %d must be within [1, %d]", c.Concurrency, defaults.MaxConcurrency)
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate %v cannot be negative", c.Rate)
	}
	if c.Burst < 0 {
		return fmt.Errorf("burst %d cannot be negative", c.Burst)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries %d cannot be negative", c.Retries)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout %s must be positive", c.Timeout)
	}
	if c.HighThreshold < 0 || c.HighThreshold > 100 {
		return fmt.Errorf("high threshold %v must be within [0, 100]", c.HighThreshold)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q, supported: auto, always, never", c.Color)
	}
	if _, err := serializer.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}
