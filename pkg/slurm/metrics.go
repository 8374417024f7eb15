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

package slurm

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/slurmtool/pkg/metrics"
)

var (
	commandDuration = metrics.Factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slurmtool_command_duration_seconds",
			Help:    "Time taken by a single Slurm command attempt",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"command"}, // sinfo, scontrol
	)

	commandTotal = metrics.Factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slurmtool_command_total",
			Help: "Total number of Slurm command attempts",
		},
		[]string{"command", "status"}, // success or error
	)

	commandRetries = metrics.Factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slurmtool_command_retries_total",
			Help: "Total number of Slurm command retries after a failed attempt",
		},
		[]string{"command"},
	)
)
