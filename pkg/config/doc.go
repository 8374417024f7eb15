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

// Package config loads slurmtool settings from a YAML file.
//
// The file is optional. When no path is given, $HOME/.slurmtool.yaml is read
// if it exists; an explicitly named file must exist. Fields left out keep
// their defaults:
//
//	sinfo: /usr/bin/sinfo
//	scontrol: /usr/bin/scontrol
//	concurrency: 16
//	rate: 20        # commands per second, 0 is unlimited
//	burst: 4
//	retries: 2
//	timeout: 10s    # per command
//	highThreshold: 75
//	color: auto     # auto, always or never
//	format: table   # table, json or yaml
//
// Environment variables and flags are layered on top by the CLI.
package config
