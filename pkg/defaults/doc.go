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

// Package defaults provides centralized configuration constants for slurmtool.
//
// This package defines command timeouts, retry parameters, concurrency limits
// and display thresholds used across the codebase. Centralizing these values
// keeps the CLI flags, the config file and the collectors consistent.
//
// # Categories
//
//   - Command timeouts: For sinfo and scontrol invocations
//   - Retry parameters: For transient command failures
//   - Collection limits: For parallel node extraction
//   - Display thresholds: For table coloring
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/slurmtool/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CommandTimeout)
//	defer cancel()
//
// # Guidelines
//
//   - Commands: 10s default, respects parent context deadline
//   - Retries: 2 retries with exponential backoff capped at 2s
//   - Concurrency: 8 nodes in flight, slurmctld is the shared bottleneck
package defaults
