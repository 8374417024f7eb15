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
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/slurmtool/pkg/defaults"
	cerrors "github.com/NVIDIA/slurmtool/pkg/errors"
)

const (
	// DefaultSinfo is the default sinfo binary name.
	DefaultSinfo = "sinfo"
	// DefaultScontrol is the default scontrol binary name.
	DefaultScontrol = "scontrol"
)

// Client queries Slurm through its command line tools.
type Client struct {
	sinfo    string
	scontrol string
	runner   Runner
	timeout  time.Duration
	retries  int
	initial  time.Duration
	maxDelay time.Duration
	limiter  *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithSinfo sets the sinfo binary name or path.
func WithSinfo(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.sinfo = path
		}
	}
}

// WithScontrol sets the scontrol binary name or path.
func WithScontrol(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.scontrol = path
		}
	}
}

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		if r != nil {
			c.runner = r
		}
	}
}

// WithTimeout sets the per-attempt command timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetries sets how many times a failed command is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithBackOff sets the initial and maximum retry intervals.
func WithBackOff(initial, maxInterval time.Duration) Option {
	return func(c *Client) {
		c.initial = initial
		c.maxDelay = maxInterval
	}
}

// WithRateLimit limits command invocations to perSecond with the given burst.
// A non-positive perSecond disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewClient creates a client with default settings: binaries resolved from
// PATH, 10s timeout, 2 retries and no rate limit.
func NewClient(opts ...Option) *Client {
	c := &Client{
		sinfo:    DefaultSinfo,
		scontrol: DefaultScontrol,
		runner:   ExecRunner{},
		timeout:  defaults.CommandTimeout,
		retries:  defaults.CommandRetries,
		initial:  defaults.RetryInitialInterval,
		maxDelay: defaults.RetryMaxInterval,
		limiter:  rate.NewLimiter(rate.Inf, 0),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Version returns the Slurm release sinfo reports, for example
// "slurm 23.02.7".
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, c.sinfo, "--version")
	if err != nil {
		return "", err
	}
	first, _, _ := strings.Cut(out, "\n")
	return strings.TrimSpace(first), nil
}

// NodeNames returns the node names reported by sinfo, one per output line,
// in reported order.
func (c *Client) NodeNames(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, c.sinfo, "-N", "-h", "-o", "%N")
	if err != nil {
		return nil, err
	}

	lines := strings.Split(out, "\n")
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// NodeState returns the state token sinfo reports for node, for example
// "idle", "mixed" or "down*". sinfo prints one line per partition the node
// belongs to; the first one is used.
func (c *Client) NodeState(ctx context.Context, node string) (string, error) {
	out, err := c.run(ctx, c.sinfo, "-N", "-h", "-n", node, "-o", "%T")
	if err != nil {
		return "", err
	}

	first, _, _ := strings.Cut(out, "\n")
	return strings.TrimSpace(first), nil
}

// NodeDetail returns the scontrol show node block for node.
func (c *Client) NodeDetail(ctx context.Context, node string) (string, error) {
	return c.run(ctx, c.scontrol, "show", "node", node)
}

// run executes a command through the limiter with retries and returns its
// trimmed output. Empty output is treated as a failure.
func (c *Client) run(ctx context.Context, name string, args ...string) (string, error) {
	command := filepath.Base(name)
	errCtx := map[string]any{
		"command": command,
		"args":    strings.Join(args, " "),
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initial
	b.MaxInterval = c.maxDelay

	var (
		out      string
		attempts int
	)
	operation := func() error {
		if attempts > 0 {
			commandRetries.WithLabelValues(command).Inc()
		}
		attempts++

		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		res, err := c.attempt(ctx, command, name, args...)
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			slog.Debug("slurm command attempt failed",
				"command", command,
				"attempt", attempts,
				"error", err)
			return err
		}
		out = res
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.retries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		code := cerrors.ErrCodeSourceUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			code = cerrors.ErrCodeTimeout
		}
		return "", cerrors.WrapWithContext(code, "slurm command failed", err, errCtx)
	}

	return out, nil
}

func (c *Client) attempt(ctx context.Context, command, name string, args ...string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := c.runner.Run(ctx, name, args...)
	commandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
	if err != nil {
		commandTotal.WithLabelValues(command, "error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			return "", errors.Join(err, ctxErr)
		}
		return "", err
	}

	out := strings.TrimSpace(string(raw))
	if out == "" {
		commandTotal.WithLabelValues(command, "error").Inc()
		return "", cerrors.New(cerrors.ErrCodeSourceUnavailable, command+" returned no output")
	}

	commandTotal.WithLabelValues(command, "success").Inc()
	return out, nil
}
