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

package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/slurmtool/pkg/config"
	"github.com/NVIDIA/slurmtool/pkg/defaults"
	"github.com/NVIDIA/slurmtool/pkg/logging"
	"github.com/NVIDIA/slurmtool/pkg/serializer"
)

const (
	envPrefix = "SLURMTOOL_"

	flagAll           = "all"
	flagFormat        = "format"
	flagOutput        = "output"
	flagColor         = "color"
	flagConcurrency   = "concurrency"
	flagRate          = "rate"
	flagBurst         = "burst"
	flagRetries       = "retries"
	flagTimeout       = "timeout"
	flagHighThreshold = "high-threshold"
	flagSinfo         = "sinfo"
	flagScontrol      = "scontrol"
	flagConfig        = "config"
	flagLogLevel      = "log-level"
	flagMetricsFile   = "metrics-file"
)

func envVar(flag string) cli.ValueSourceChain {
	return cli.EnvVars(envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_")))
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    flagAll,
			Aliases: []string{"a"},
			Usage:   "Inspect every node known to sinfo",
		},
		&cli.StringFlag{
			Name:    flagFormat,
			Aliases: []string{"t"},
			Usage:   fmt.Sprintf("Output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
			Value:   string(serializer.FormatTable),
			Sources: envVar(flagFormat),
		},
		&cli.StringFlag{
			Name:    flagOutput,
			Aliases: []string{"o"},
			Usage:   "Write output to file instead of stdout",
			Sources: envVar(flagOutput),
		},
		&cli.StringFlag{
			Name:    flagColor,
			Usage:   "Color mode (auto, always, never)",
			Value:   config.ColorAuto,
			Sources: envVar(flagColor),
		},
		&cli.IntFlag{
			Name:    flagConcurrency,
			Aliases: []string{"c"},
			Usage:   "Number of nodes extracted in parallel",
			Value:   defaults.Concurrency,
			Sources: envVar(flagConcurrency),
		},
		&cli.FloatFlag{
			Name:    flagRate,
			Usage:   "Maximum Slurm commands per second (0 is unlimited)",
			Value:   defaults.CommandRate,
			Sources: envVar(flagRate),
		},
		&cli.IntFlag{
			Name:    flagBurst,
			Usage:   "Commands allowed in a burst when rate limited",
			Value:   defaults.CommandBurst,
			Sources: envVar(flagBurst),
		},
		&cli.IntFlag{
			Name:    flagRetries,
			Usage:   "Retries for a failed Slurm command",
			Value:   defaults.CommandRetries,
			Sources: envVar(flagRetries),
		},
		&cli.DurationFlag{
			Name:    flagTimeout,
			Usage:   "Timeout for a single Slurm command",
			Value:   defaults.CommandTimeout,
			Sources: envVar(flagTimeout),
		},
		&cli.FloatFlag{
			Name:    flagHighThreshold,
			Usage:   "Utilization percent above which a resource is shown as high",
			Value:   defaults.HighUtilization,
			Sources: envVar(flagHighThreshold),
		},
		&cli.StringFlag{
			Name:    flagSinfo,
			Usage:   "Path to sinfo",
			Value:   "sinfo",
			Sources: envVar(flagSinfo),
		},
		&cli.StringFlag{
			Name:    flagScontrol,
			Usage:   "Path to scontrol",
			Value:   "scontrol",
			Sources: envVar(flagScontrol),
		},
		&cli.StringFlag{
			Name:    flagConfig,
			Usage:   "config file (default is $HOME/" + config.FileName + ")",
			Sources: envVar(flagConfig),
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Usage:   "log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars(envPrefix+"LOG_LEVEL", logging.EnvLogLevel),
		},
		&cli.StringFlag{
			Name:    flagMetricsFile,
			Usage:   "Write collection metrics in Prometheus textfile format to this path",
			Sources: envVar(flagMetricsFile),
		},
	}
}

// resolveConfig layers flags and environment variables over the config file.
func resolveConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String(flagConfig))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet(flagSinfo) {
		cfg.Sinfo = cmd.String(flagSinfo)
	}
	if cmd.IsSet(flagScontrol) {
		cfg.Scontrol = cmd.String(flagScontrol)
	}
	if cmd.IsSet(flagConcurrency) {
		cfg.Concurrency = cmd.Int(flagConcurrency)
	}
	if cmd.IsSet(flagRate) {
		cfg.Rate = cmd.Float(flagRate)
	}
	if cmd.IsSet(flagBurst) {
		cfg.Burst = cmd.Int(flagBurst)
	}
	if cmd.IsSet(flagRetries) {
		cfg.Retries = cmd.Int(flagRetries)
	}
	if cmd.IsSet(flagTimeout) {
		cfg.Timeout = cmd.Duration(flagTimeout)
	}
	if cmd.IsSet(flagHighThreshold) {
		cfg.HighThreshold = cmd.Float(flagHighThreshold)
	}
	if cmd.IsSet(flagColor) {
		cfg.Color = strings.ToLower(strings.TrimSpace(cmd.String(flagColor)))
	}
	if cmd.IsSet(flagFormat) {
		cfg.Format = cmd.String(flagFormat)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
