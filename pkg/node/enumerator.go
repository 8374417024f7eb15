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

package node

import (
	"context"
	"log/slog"

	cerrors "github.com/NVIDIA/slurmtool/pkg/errors"
)

// NameSource lists the nodes known to the cluster.
type NameSource interface {
	NodeNames(ctx context.Context) ([]string, error)
}

// Enumerator decides which nodes to inspect.
type Enumerator struct {
	source NameSource
}

// NewEnumerator creates an enumerator discovering nodes from source.
func NewEnumerator(source NameSource) *Enumerator {
	return &Enumerator{source: source}
}

// Nodes returns explicit unchanged when it is non-empty. Otherwise it returns
// every node reported by the source in reported order, with repeats removed
// (sinfo -N prints a node once per partition). A source failure is logged and
// yields an empty list.
func (e *Enumerator) Nodes(ctx context.Context, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}

	names, err := e.source.NodeNames(ctx)
	if err != nil {
		slog.Error("failed to list cluster nodes",
			"code", cerrors.CodeOf(err),
			"error", err)
		return []string{}
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	slog.Debug("discovered cluster nodes", slog.Int("count", len(out)))
	return out
}
