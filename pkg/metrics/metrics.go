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

// Package metrics holds the Prometheus registry shared by slurmtool
// components. A dedicated registry keeps runtime collectors out of exported
// files, so the output can be dropped into node_exporter's textfile
// directory next to node_exporter's own go_* series.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry collects every slurmtool metric.
	Registry = prometheus.NewRegistry()

	// Factory registers new collectors with Registry.
	Factory = promauto.With(Registry)
)

// WriteTextfile writes the current state of Registry to path in the
// Prometheus text exposition format. The file is written atomically.
func WriteTextfile(path string) error {
	if path == "" {
		return fmt.Errorf("metrics file path cannot be empty")
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
