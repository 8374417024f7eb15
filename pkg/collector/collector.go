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
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/slurmtool/pkg/defaults"
	cerrors "github.com/NVIDIA/slurmtool/pkg/errors"
	"github.com/NVIDIA/slurmtool/pkg/node"
)

const outcomeValid = "valid"

// Lister decides which nodes to collect.
type Lister interface {
	Nodes(ctx context.Context, explicit []string) []string
}

// Extractor derives the result for a single node.
type Extractor interface {
	Extract(ctx context.Context, name string) node.Result
}

// Collector coordinates node enumeration and parallel extraction.
type Collector struct {
	lister      Lister
	extractor   Extractor
	concurrency int
}

// Option configures a Collector.
type Option func(*Collector)

// WithConcurrency sets how many nodes are extracted at once.
// Values below 1 are ignored; values above MaxConcurrency are capped.
func WithConcurrency(n int) Option {
	return func(c *Collector) {
		if n < 1 {
			return
		}
		c.concurrency = min(n, defaults.MaxConcurrency)
	}
}

// New creates a collector.
func New(lister Lister, extractor Extractor, opts ...Option) *Collector {
	c := &Collector{
		lister:      lister,
		extractor:   extractor,
		concurrency: defaults.Concurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect enumerates the nodes to inspect (explicit when non-empty, otherwise
// all cluster nodes) and extracts each of them. Results are in enumeration
// order. When the context deadline expires, nodes that were not extracted in
// time are returned as TIMEOUT results and the rest are kept. The only error
// is a cancellation of ctx, returned when the collection was interrupted.
func (c *Collector) Collect(ctx context.Context, explicit []string) ([]node.Result, error) {
	start := time.Now()
	defer func() {
		collectionDuration.Observe(time.Since(start).Seconds())
	}()

	names := c.lister.Nodes(ctx, explicit)
	results := make([]node.Result, len(names))
	done := make([]bool, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, name := range names {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			nodeStart := time.Now()
			res := c.extractor.Extract(gctx, name)
			nodeExtractDuration.Observe(time.Since(nodeStart).Seconds())

			results[i] = res
			done[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		collectionTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			collectionTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		timedOut := expire(names, results, done, err)
		slog.Warn("node collection deadline exceeded",
			slog.Int("nodes", len(names)),
			slog.Int("timedOut", timedOut))
		collectionTotal.WithLabelValues("timeout").Inc()
	} else {
		collectionTotal.WithLabelValues("success").Inc()
	}

	for _, res := range results {
		if res.Valid() {
			nodeResults.WithLabelValues(outcomeValid).Inc()
		} else {
			nodeResults.WithLabelValues(outcomeOf(res.Err)).Inc()
		}
	}
	nodesCollected.Set(float64(len(results)))

	slog.Debug("node collection complete",
		slog.Int("nodes", len(results)),
		slog.Int("valid", len(node.Records(results))),
		slog.Duration("duration", time.Since(start)))

	return results, nil
}

// expire marks unextracted slots, and failures caused by the deadline, as
// TIMEOUT results. It returns how many slots it marked.
func expire(names []string, results []node.Result, done []bool, cause error) int {
	n := 0
	for i, name := range names {
		if done[i] && (results[i].Valid() || !errors.Is(results[i].Err, context.DeadlineExceeded)) {
			continue
		}
		results[i] = node.Result{
			Name: name,
			Err:  cerrors.Wrap(cerrors.ErrCodeTimeout, "node not extracted before the collection deadline", cause),
		}
		n++
	}
	return n
}

func outcomeOf(err error) string {
	if code := cerrors.CodeOf(err); code != "" {
		return string(code)
	}
	return string(cerrors.ErrCodeInternal)
}
