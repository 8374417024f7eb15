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
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/slurmtool/pkg/config"
	"github.com/NVIDIA/slurmtool/pkg/defaults"
	"github.com/NVIDIA/slurmtool/pkg/render"
	"github.com/NVIDIA/slurmtool/pkg/server"
	"github.com/NVIDIA/slurmtool/pkg/slurm"
)

const (
	flagAddress      = "address"
	flagPort         = "port"
	flagCacheTTL     = "cache-ttl"
	flagRequestRate  = "request-rate"
	flagRequestBurst = "request-burst"
)

func (env environment) serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve node resource reports over HTTP",
		Description: `Runs an HTTP server exposing the node report and collection metrics:

  GET /v1/nodes?node=gpu01,gpu02&format=json
  GET /metrics
  GET /health
  GET /ready

Reports are cached for --cache-ttl so repeated requests do not query
slurmctld again. Collection tunables are shared with the root command.

# Examples

  slurmtool serve --port 9341 --cache-ttl 1m
  SLURMTOOL_CONCURRENCY=32 slurmtool serve`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagAddress,
				Usage:   "Address to listen on (empty for all interfaces)",
				Sources: envVar(flagAddress),
			},
			&cli.IntFlag{
				Name:    flagPort,
				Usage:   "Port to listen on",
				Value:   defaults.ServerPort,
				Sources: envVar(flagPort),
			},
			&cli.DurationFlag{
				Name:    flagCacheTTL,
				Usage:   "How long a collected report is reused (0 disables caching)",
				Value:   defaults.ReportCacheTTL,
				Sources: envVar(flagCacheTTL),
			},
			&cli.FloatFlag{
				Name:    flagRequestRate,
				Usage:   "Maximum API requests per second",
				Value:   defaults.ServerRateLimit,
				Sources: envVar(flagRequestRate),
			},
			&cli.IntFlag{
				Name:    flagRequestBurst,
				Usage:   "API request burst size",
				Value:   defaults.ServerRateLimitBurst,
				Sources: envVar(flagRequestBurst),
			},
		},
		Action: env.serve,
	}
}

func (env environment) serve(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	scfg, err := serverConfig(cmd)
	if err != nil {
		return err
	}

	client := env.newClient(cfg)
	policy := render.PlainPolicy()
	policy.HighThreshold = cfg.HighThreshold

	srv := server.New(reportSource(cfg, client, policy), server.WithConfig(scfg))
	return srv.Run(ctx)
}

// reportSource adapts buildReport to the server.
func reportSource(cfg *config.Config, client *slurm.Client, policy render.Policy) server.ReportSource {
	return func(ctx context.Context, names []string) (*render.Report, error) {
		return buildReport(ctx, cfg, client, policy, names)
	}
}

// serverConfig layers serve flags over the server defaults.
func serverConfig(cmd *cli.Command) (*server.Config, error) {
	scfg := server.NewConfig()
	scfg.Name = name
	scfg.Version = version

	if cmd.IsSet(flagAddress) {
		scfg.Address = cmd.String(flagAddress)
	}
	if cmd.IsSet(flagPort) {
		scfg.Port = cmd.Int(flagPort)
	}
	if cmd.IsSet(flagCacheTTL) {
		scfg.CacheTTL = cmd.Duration(flagCacheTTL)
	}
	if cmd.IsSet(flagRequestRate) {
		scfg.RateLimit = rate.Limit(cmd.Float(flagRequestRate))
	}
	if cmd.IsSet(flagRequestBurst) {
		scfg.RateLimitBurst = cmd.Int(flagRequestBurst)
	}

	if err := scfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	slog.Debug("server config",
		"address", scfg.Addr(),
		"cacheTTL", scfg.CacheTTL.String(),
		"rateLimit", float64(scfg.RateLimit),
		"rateLimitBurst", scfg.RateLimitBurst)
	return scfg, nil
}
