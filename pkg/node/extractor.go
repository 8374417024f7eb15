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

// DetailSource provides the raw text Extract derives records from.
type DetailSource interface {
	NodeState(ctx context.Context, node string) (string, error)
	NodeDetail(ctx context.Context, node string) (string, error)
}

// Extractor derives resource records from a DetailSource.
type Extractor struct {
	source DetailSource
}

// NewExtractor creates an extractor reading from source.
func NewExtractor(source DetailSource) *Extractor {
	return &Extractor{source: source}
}

// Extract queries the state and detail of node name and derives its Result.
// A failed state query leaves the state empty; a failed detail query or
// unparseable detail yields an unparseable result. Extract never returns an
// error and logs every degradation with the node name.
func (e *Extractor) Extract(ctx context.Context, name string) Result {
	state, err := e.source.NodeState(ctx, name)
	if err != nil {
		slog.Warn("node state unavailable",
			"node", name,
			"code", cerrors.CodeOf(err),
			"error", err)
		state = ""
	}

	detail, err := e.source.NodeDetail(ctx, name)
	if err != nil {
		slog.Warn("node detail unavailable",
			"node", name,
			"code", cerrors.CodeOf(err),
			"error", err)
		return Result{Name: name, Err: err}
	}

	res := Derive(name, state, detail)
	switch {
	case !res.Valid():
		slog.Warn("node detail unparseable",
			"node", name,
			"code", cerrors.CodeOf(res.Err),
			"error", res.Err)
	case res.Record.AllocRestricted:
		slog.Debug("allocated resources unavailable, assuming none allocated",
			"node", name)
	}
	return res
}
