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

// Package cli implements the slurmtool command line.
//
// # Usage
//
//	slurmtool [flags] [NODE...]
//
// Node names given as arguments are inspected in order. --all inspects every
// node sinfo reports; explicit names win when both are given. With neither,
// only the table header is printed.
//
// # Flags
//
//	--all, -a              Inspect every node known to sinfo
//	--format, -t           Output format: table, json, yaml
//	--output, -o           Write to a file instead of stdout
//	--color                auto, always or never (auto honors NO_COLOR)
//	--concurrency, -c      Nodes extracted in parallel
//	--rate, --burst        Command rate limit per second, 0 is unlimited
//	--retries              Retries per failed command
//	--timeout              Timeout per command
//	--high-threshold       Utilization percent rendered as high
//	--sinfo, --scontrol    Slurm binary paths
//	--config               Config file (default is $HOME/.slurmtool.yaml)
//	--log-level            debug, info, warn, error
//	--metrics-file         Write Prometheus textfile metrics after the run
//
// Every tunable can also be set with a SLURMTOOL_ environment variable, for
// example SLURMTOOL_CONCURRENCY=32. Flags override the environment, which
// overrides the config file.
//
// # Examples
//
//	slurmtool gpu01 gpu02
//	slurmtool --all --color never
//	slurmtool --all -t json -o nodes.json --metrics-file /var/lib/node_exporter/slurmtool.prom
//
// # Version Information
//
// Build metadata is injected with ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/slurmtool/pkg/cli.version=1.0.0'"
package cli
