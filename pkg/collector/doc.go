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

// Package collector extracts resource records for a set of Slurm nodes.
//
// Nodes are extracted in parallel, bounded by Collector.Concurrency, and the
// results are returned in enumeration order regardless of completion order.
// A node that cannot be queried or parsed produces an unparseable result;
// only cancellation of the context stops a collection early.
//
// Usage:
//
//	client := slurm.NewClient()
//	c := collector.New(node.NewEnumerator(client), node.NewExtractor(client),
//	    collector.WithConcurrency(16))
//	results, err := c.Collect(ctx, nil) // nil discovers every node
package collector
