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
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/slurmtool/pkg/defaults"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Listen address
	Address string
	Port    int

	// Rate limiting for API routes
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// CacheTTL is how long a report is reused. Zero disables caching.
	CacheTTL time.Duration

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewConfig returns a Config with defaults, honoring the PORT and
// SHUTDOWN_TIMEOUT_SECONDS environment variables.
func NewConfig() *Config {
	cfg := &Config{
		Name:            "slurmtool",
		Version:         "undefined",
		Port:            defaults.ServerPort,
		RateLimit:       defaults.ServerRateLimit,
		RateLimitBurst:  defaults.ServerRateLimitBurst,
		CacheTTL:        defaults.ReportCacheTTL,
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	// Allow customization of shutdown timeout to match a service manager stop timeout
	if shutdownStr := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); shutdownStr != "" {
		var seconds int
		if _, err := fmt.Sscanf(shutdownStr, "%d", &seconds); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d must be within [0, 65535]", c.Port)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit %v must be positive", c.RateLimit)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst %d must be positive", c.RateLimitBurst)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL %s cannot be negative", c.CacheTTL)
	}
	return nil
}
