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

package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/slurmtool/pkg/metrics"
)

var (
	collectionDuration = metrics.Factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slurmtool_collection_duration_seconds",
			Help:    "Time taken to collect resource records for all requested nodes",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
		},
	)

	collectionTotal = metrics.Factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slurmtool_collection_total",
			Help: "Total number of collection attempts",
		},
		[]string{"status"}, // success, timeout or error
	)

	nodeResults = metrics.Factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slurmtool_node_results_total",
			Help: "Node extraction outcomes",
		},
		[]string{"outcome"}, // valid or the error code
	)

	nodeExtractDuration = metrics.Factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slurmtool_node_extract_duration_seconds",
			Help:    "Time taken to extract a single node",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	nodesCollected = metrics.Factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "slurmtool_nodes",
			Help: "Number of nodes in the last collection",
		},
	)
)
