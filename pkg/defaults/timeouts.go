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

package defaults

import "time"

// Command timeouts for Slurm client invocations.
const (
	// CommandTimeout is the default timeout for a single sinfo or scontrol call.
	// Commands respect parent context deadlines when shorter.
	CommandTimeout = 10 * time.Second

	// CollectionTimeout bounds a whole run across all nodes.
	CollectionTimeout = 5 * time.Minute
)

// Retry parameters for transient command failures.
const (
	// CommandRetries is the number of retries after the first failed attempt.
	CommandRetries = 2

	// RetryInitialInterval is the first backoff interval.
	RetryInitialInterval = 250 * time.Millisecond

	// RetryMaxInterval caps a single backoff interval.
	RetryMaxInterval = 2 * time.Second
)

// Collection limits.
const (
	// Concurrency is the default number of nodes extracted in parallel.
	Concurrency = 8

	// MaxConcurrency caps user supplied concurrency.
	MaxConcurrency = 256

	// CommandRate is the default command rate limit per second; 0 disables limiting.
	CommandRate = 0

	// CommandBurst is the default limiter burst when rate limiting is enabled.
	CommandBurst = 4
)

// Display thresholds.
const (
	// HighUtilization is the utilization percentage above which a resource
	// is rendered as saturated.
	HighUtilization = 75.0
)

// Server timeouts for serve mode.
const (
	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout covers a full collection plus encoding.
	ServerWriteTimeout = CollectionTimeout + 30*time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = ServerWriteTimeout + 30*time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Serve mode limits.
const (
	// ServerPort is the default listen port.
	ServerPort = 8080

	// ServerRateLimit is the default request rate per second for API routes.
	ServerRateLimit = 10

	// ServerRateLimitBurst is the default request burst for API routes.
	ServerRateLimitBurst = 20

	// ReportCacheTTL is how long a collected report is served before the
	// cluster is queried again.
	ReportCacheTTL = 30 * time.Second
)
