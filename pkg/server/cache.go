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

package server

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/NVIDIA/slurmtool/pkg/render"
)

// ReportSource collects a report for the named nodes, or for every node when
// names is empty.
type ReportSource func(ctx context.Context, names []string) (*render.Report, error)

type cacheEntry struct {
	report  *render.Report
	expires time.Time
}

// reportCache serves recent reports per node selection and collapses
// concurrent collections of the same selection into one.
type reportCache struct {
	source ReportSource
	ttl    time.Duration
	now    func() time.Time

	group   singleflight.Group
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newReportCache(source ReportSource, ttl time.Duration) *reportCache {
	return &reportCache{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// get returns the report for names and whether it came from the cache.
// ctx bounds the collection, which is shared by every concurrent caller.
func (c *reportCache) get(ctx context.Context, names []string) (*render.Report, bool, error) {
	key := strings.Join(names, ",")

	if r, ok := c.lookup(key); ok {
		reportCacheLookups.WithLabelValues("hit").Inc()
		return r, true, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		r, err := c.source(ctx, names)
		if err != nil {
			return nil, err
		}
		c.store(key, r)
		return r, nil
	})
	if shared {
		reportCacheLookups.WithLabelValues("shared").Inc()
	} else {
		reportCacheLookups.WithLabelValues("miss").Inc()
	}
	if err != nil {
		return nil, false, err
	}
	return v.(*render.Report), false, nil
}

func (c *reportCache) lookup(key string) (*render.Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return e.report, true
}

func (c *reportCache) store(key string, r *render.Report) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{report: r, expires: now.Add(c.ttl)}
}
