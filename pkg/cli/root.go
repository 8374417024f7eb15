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
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/NVIDIA/slurmtool/pkg/collector"
	"github.com/NVIDIA/slurmtool/pkg/config"
	"github.com/NVIDIA/slurmtool/pkg/defaults"
	"github.com/NVIDIA/slurmtool/pkg/logging"
	"github.com/NVIDIA/slurmtool/pkg/metrics"
	"github.com/NVIDIA/slurmtool/pkg/node"
	"github.com/NVIDIA/slurmtool/pkg/render"
	"github.com/NVIDIA/slurmtool/pkg/serializer"
	"github.com/NVIDIA/slurmtool/pkg/slurm"
	slurmversion "github.com/NVIDIA/slurmtool/pkg/version"
)

const (
	name           = "slurmtool"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// environment carries the process boundaries the root command touches.
type environment struct {
	runner   slurm.Runner
	stdout   io.Writer
	terminal func(io.Writer) bool
}

func defaultEnvironment() environment {
	return environment{
		runner:   slurm.ExecRunner{},
		stdout:   os.Stdout,
		terminal: isTerminal,
	}
}

// Execute runs the root command with the process arguments.
// This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := newRootCmd(defaultEnvironment()).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(env environment) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Show free CPU, memory and GPU capacity of Slurm nodes",
		ArgsUsage: "[NODE...]",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `Queries sinfo and scontrol for each node and prints a color-coded
table of free resources. Nodes that cannot be parsed are skipped and
reported on stderr.`,
		EnableShellCompletion: true,
		Flags:                 rootFlags(),
		Action:                env.run,
		Commands: []*cli.Command{
			env.serveCmd(),
		},
	}
}

func (env environment) run(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	format, err := serializer.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	outPath := strings.TrimSpace(cmd.String(flagOutput))
	var w *serializer.Writer
	if outPath != "" {
		if w, err = serializer.NewFileWriterOrStdout(format, outPath); err != nil {
			return err
		}
	} else {
		w = serializer.NewWriter(format, env.stdout)
	}
	defer w.Close()

	policy := render.DefaultPolicy()
	policy.HighThreshold = cfg.HighThreshold
	policy.Enabled = format == serializer.FormatTable && env.colorEnabled(cfg.Color, outPath != "")

	report, err := selectAndCollect(ctx, cmd, cfg, env.newClient(cfg), policy)
	if err != nil {
		return err
	}

	if err := w.Serialize(ctx, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	if path := cmd.String(flagMetricsFile); path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			return err
		}
	}
	return nil
}

func setupLogging(cmd *cli.Command) {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String(flagLogLevel))
	slog.SetDefault(slog.Default().With("run", uuid.NewString()))
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date)
}

func (env environment) newClient(cfg *config.Config) *slurm.Client {
	return slurm.NewClient(
		slurm.WithRunner(env.runner),
		slurm.WithSinfo(cfg.Sinfo),
		slurm.WithScontrol(cfg.Scontrol),
		slurm.WithTimeout(cfg.Timeout),
		slurm.WithRetries(cfg.Retries),
		slurm.WithRateLimit(cfg.Rate, cfg.Burst),
	)
}

// selectAndCollect resolves the node selection from the arguments and
// collects it.
func selectAndCollect(ctx context.Context, cmd *cli.Command, cfg *config.Config, client *slurm.Client, policy render.Policy) (*render.Report, error) {
	explicit := cmd.Args().Slice()
	all := cmd.Bool(flagAll)

	if len(explicit) == 0 && !all {
		slog.Info("no nodes selected, pass node names or --all")
		return render.NewReport(version, nil, policy), nil
	}
	if len(explicit) > 0 && all {
		slog.Info("explicit node names given, ignoring --all", "nodes", len(explicit))
	}

	return buildReport(ctx, cfg, client, policy, explicit)
}

// collectionTimeout bounds one collection run. Nodes not extracted in time
// are skipped.
var collectionTimeout = defaults.CollectionTimeout

// buildReport extracts the explicit nodes, or every node when explicit is
// empty.
func buildReport(ctx context.Context, cfg *config.Config, client *slurm.Client, policy render.Policy, explicit []string) (*render.Report, error) {
	collectCtx, cancel := context.WithTimeout(ctx, collectionTimeout)
	defer cancel()

	c := collector.New(
		node.NewEnumerator(client),
		node.NewExtractor(client),
		collector.WithConcurrency(cfg.Concurrency),
	)

	results, err := c.Collect(collectCtx, explicit)
	if err != nil {
		return nil, fmt.Errorf("collection interrupted: %w", err)
	}

	report := render.NewReport(version, results, policy)
	report.SlurmVersion = slurmVersion(ctx, client)
	if host, err := os.Hostname(); err == nil {
		report.Set("host", host)
	}

	if len(report.Skipped) > 0 {
		slog.Warn("skipped nodes",
			"count", len(report.Skipped),
			"nodes", report.Skipped)
	}
	return report, nil
}

// slurmVersion returns the cluster release, or "" when sinfo cannot report it.
func slurmVersion(ctx context.Context, client *slurm.Client) string {
	raw, err := client.Version(ctx)
	if err != nil {
		slog.Debug("failed to query slurm version", "error", err)
		return ""
	}
	v, err := slurmversion.ParseSlurm(raw)
	if err != nil {
		slog.Debug("unrecognized slurm version", "raw", raw, "error", err)
		return ""
	}
	return v.String() + v.Extras
}

// colorEnabled applies the color mode. Auto colors only a terminal stdout and
// honors NO_COLOR.
func (env environment) colorEnabled(mode string, toFile bool) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		if toFile || os.Getenv("NO_COLOR") != "" {
			return false
		}
		return env.terminal != nil && env.terminal(env.stdout)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
