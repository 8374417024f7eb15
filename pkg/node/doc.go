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

// Package node turns Slurm node descriptions into resource records.
//
// # Overview
//
// An Enumerator decides which nodes to inspect: the caller's explicit list,
// or every node sinfo knows about. An Extractor queries a node's state and
// its scontrol detail block and hands both to Derive, a pure function that
// produces a Result.
//
// # Results
//
// A Result is either valid, carrying a fully populated Record, or
// unparseable, carrying only the node name and the cause:
//
//	res := node.Derive("gpu01", "idle", detail)
//	if !res.Valid() {
//	    slog.Warn("skipping node", "node", res.Name, "error", res.Err)
//	}
//
// Records never hold partial data. Missing CfgTRES or Partitions fields,
// malformed key=value items and non-numeric quantities all yield an
// unparseable result. A missing or empty AllocTRES group is not an error:
// allocations default to zero and Record.AllocRestricted is set.
//
// # Units
//
// Memory is kept in megabytes. Quantities carry an optional unit suffix
// (K, M, G, T, P). Without one, configured memory is read as megabytes and
// allocated memory as gigabytes, matching what scontrol prints.
//
// # Utilization
//
// Free capacity is total minus allocated and is never clamped; a negative
// value signals inconsistent controller data. Utilization percentages are
// exactly 0 when the total is 0.
package node
