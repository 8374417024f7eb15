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

package render

import (
	"io"
	"time"

	"github.com/NVIDIA/slurmtool/pkg/header"
	"github.com/NVIDIA/slurmtool/pkg/node"
)

// Report is the serializable result of one collection run.
type Report struct {
	header.Header `yaml:",inline"`

	Version      string         `json:"version" yaml:"version"`
	SlurmVersion string         `json:"slurmVersion,omitempty" yaml:"slurmVersion,omitempty"`
	Timestamp    time.Time      `json:"timestamp" yaml:"timestamp"`
	Nodes        []*node.Record `json:"nodes" yaml:"nodes"`
	// Skipped lists nodes that could not be parsed.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	Policy Policy `json:"-" yaml:"-"`
}

// NewReport builds a report from collection results, keeping their order.
func NewReport(version string, results []node.Result, p Policy) *Report {
	return &Report{
		Header:    header.New(header.WithKind(header.KindNodeReport)),
		Version:   version,
		Timestamp: time.Now().UTC(),
		Nodes:     node.Records(results),
		Skipped:   node.Skipped(results),
		Policy:    p,
	}
}

// WriteTable renders the valid nodes as a table. Skipped nodes are omitted.
func (r *Report) WriteTable(w io.Writer) error {
	return WriteTable(w, r.Nodes, r.Policy)
}
