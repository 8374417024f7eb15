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

package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/slurmtool/pkg/defaults"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")

	cfg := NewConfig()
	assert.Equal(t, defaults.ServerPort, cfg.Port)
	assert.Equal(t, defaults.ReportCacheTTL, cfg.CacheTTL)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9341")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")

	cfg := NewConfig()
	assert.Equal(t, 9341, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestNewConfig_InvalidEnvironmentIgnored(t *testing.T) {
	t.Setenv("PORT", "http")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "-3")

	cfg := NewConfig()
	assert.Equal(t, defaults.ServerPort, cfg.Port)
	assert.Equal(t, defaults.ServerShutdownTimeout, cfg.ShutdownTimeout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Port = 70000 }},
		{"rate", func(c *Config) { c.RateLimit = 0 }},
		{"burst", func(c *Config) { c.RateLimitBurst = 0 }},
		{"ttl", func(c *Config) { c.CacheTTL = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
