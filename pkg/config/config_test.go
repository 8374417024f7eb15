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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/slurmtool/pkg/defaults"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sinfo", cfg.Sinfo)
	assert.Equal(t, defaults.Concurrency, cfg.Concurrency)
	assert.Equal(t, defaults.CommandTimeout, cfg.Timeout)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, "table", cfg.Format)
}

func TestLoadFrom(t *testing.T) {
	input := `
sinfo: /opt/slurm/bin/sinfo
concurrency: 16
rate: 20
timeout: 30s
highThreshold: 90
color: never
format: json
`
	cfg, err := LoadFrom(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "/opt/slurm/bin/sinfo", cfg.Sinfo)
	assert.Equal(t, "scontrol", cfg.Scontrol)
	assert.Equal(t, 16, cfg.Concurrency)
	assert.InDelta(t, 20.0, cfg.Rate, 0.001)
	assert.Equal(t, defaults.CommandBurst, cfg.Burst)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.InDelta(t, 90.0, cfg.HighThreshold, 0.001)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadFrom_Empty(t *testing.T) {
	cfg, err := LoadFrom(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown key", "colour: never\n"},
		{"bad yaml", "concurrency: [1\n"},
		{"bad duration", "timeout: soon\n"},
		{"zero concurrency", "concurrency: 0\n"},
		{"too much concurrency", "concurrency: 100000\n"},
		{"negative rate", "rate: -1\n"},
		{"negative burst", "burst: -1\n"},
		{"negative retries", "retries: -2\n"},
		{"zero timeout", "timeout: 0s\n"},
		{"threshold", "highThreshold: 120\n"},
		{"color", "color: sometimes\n"},
		{"format", "format: xml\n"},
		{"empty sinfo", "sinfo: \"\"\n"},
		{"empty scontrol", "scontrol: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slurmtool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retries: 5\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Retries)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(home, FileName), []byte("burst: 9\n"), 0o600))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Burst)
}
