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

// Package slurm runs the read-only Slurm query commands slurmtool depends on.
//
// Three text sources are exposed through Client:
//
//   - NodeNames:  sinfo -N -h -o %N, one node name per line
//   - NodeState:  sinfo -N -h -n <node> -o %T, a single state token
//   - NodeDetail: scontrol show node <node>, a multi-line Key=Value block
//
// Commands are executed directly (never through a shell) with a Runner so
// tests can substitute canned output. Every invocation goes through a shared
// rate limiter, a per-attempt timeout and an exponential backoff retry.
// A binary missing from PATH is reported immediately without retrying.
//
// Failures are returned as StructuredError values with code
// SOURCE_UNAVAILABLE (or TIMEOUT when the attempt deadline expired); callers
// decide whether they are fatal.
package slurm
