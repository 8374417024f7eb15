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
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	cerrors "github.com/NVIDIA/slurmtool/pkg/errors"
	"github.com/NVIDIA/slurmtool/pkg/node"
	"github.com/NVIDIA/slurmtool/pkg/render"
)

// fakeSource returns one record per requested node, or cpu01 and gpu01 when
// no nodes are requested.
type fakeSource struct {
	calls atomic.Int32
	err   error
	mu    sync.Mutex
	last  []string
}

func (f *fakeSource) collect(_ context.Context, names []string) (*render.Report, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = names
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if len(names) == 0 {
		names = []string{"cpu01", "gpu01"}
	}
	results := make([]node.Result, 0, len(names))
	for _, n := range names {
		results = append(results, node.Result{Name: n, Record: &node.Record{
			Name:       n,
			Partition:  "batch",
			State:      "idle",
			TotalCPUs:  8,
			FreeCPUs:   8,
			TotalMemMB: 2048,
			FreeMemMB:  2048,
		}})
	}
	return render.NewReport("test", results, render.DefaultPolicy()), nil
}

func newTestServer(t *testing.T, src *fakeSource, mutate ...func(*Config)) *Server {
	t.Helper()
	cfg := NewConfig()
	cfg.Name = "slurmtool"
	cfg.Version = "test"
	for _, m := range mutate {
		m(cfg)
	}
	return New(src.collect, WithConfig(cfg))
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNew(t *testing.T) {
	s := newTestServer(t, &fakeSource{})
	assert.NotNil(t, s.config)
	assert.NotNil(t, s.httpServer)
	assert.NotNil(t, s.rateLimiter)
	assert.NotNil(t, s.cache)
	assert.False(t, s.isReady())
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	rec := get(t, s.Handler(), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestReadyEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	assert.Equal(t, http.StatusServiceUnavailable, get(t, s.Handler(), "/ready").Code)
	s.setReady(true)
	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/ready").Code)
}

func TestDefaultRoute(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	rec := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Name    string   `json:"name"`
		Version string   `json:"version"`
		Routes  []string `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "slurmtool", body.Name)
	assert.Equal(t, "test", body.Version)
	assert.Contains(t, body.Routes, "GET /v1/nodes")

	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/nope").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeSource{})
	get(t, s.Handler(), "/v1/nodes")

	rec := get(t, s.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "slurmtool_http_requests_total")
	assert.Contains(t, rec.Body.String(), "slurmtool_report_cache_lookups_total")
}

func TestNodesEndpoint(t *testing.T) {
	src := &fakeSource{}
	s := newTestServer(t, src)

	rec := get(t, s.Handler(), "/v1/nodes")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "miss", rec.Header().Get("X-Report-Cache"))
	assert.Equal(t, DefaultAPIVersion, rec.Header().Get("X-API-Version"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var report render.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Nodes, 2)
	assert.Equal(t, "cpu01", report.Nodes[0].Name)

	rec = get(t, s.Handler(), "/v1/nodes")
	assert.Equal(t, "hit", rec.Header().Get("X-Report-Cache"))
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestNodesEndpoint_Selection(t *testing.T) {
	src := &fakeSource{}
	s := newTestServer(t, src)

	rec := get(t, s.Handler(), "/v1/nodes?node=gpu02,gpu01&node=cpu09")
	require.Equal(t, http.StatusOK, rec.Code)

	src.mu.Lock()
	assert.Equal(t, []string{"gpu02", "gpu01", "cpu09"}, src.last)
	src.mu.Unlock()
}

func TestNodesEndpoint_Formats(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	rec := get(t, s.Handler(), "/v1/nodes?format=yaml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	var report render.Report
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &report))
	assert.Len(t, report.Nodes, 2)

	rec = get(t, s.Handler(), "/v1/nodes?format=table")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), render.Header()))
	assert.NotContains(t, rec.Body.String(), "\x1b[")

	rec = get(t, s.Handler(), "/v1/nodes?format=xml")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNodesEndpoint_SourceError(t *testing.T) {
	src := &fakeSource{err: cerrors.New(cerrors.ErrCodeTimeout, "collection timed out")}
	s := newTestServer(t, src)

	rec := get(t, s.Handler(), "/v1/nodes")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodeServiceUnavailable, resp.Code)
	assert.True(t, resp.Retryable)
	assert.Equal(t, string(cerrors.ErrCodeTimeout), resp.Details["cause"])
	assert.NotEmpty(t, resp.RequestID)
}

func TestNodesEndpoint_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &fakeSource{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/nodes", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRateLimiting(t *testing.T) {
	s := newTestServer(t, &fakeSource{}, func(c *Config) {
		c.RateLimit = 1
		c.RateLimitBurst = 1
	})

	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/v1/nodes").Code)

	rec := get(t, s.Handler(), "/v1/nodes")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// system endpoints are not limited
	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/health").Code)
}

func TestServe(t *testing.T) {
	src := &fakeSource{}
	s := newTestServer(t, src)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := fmt.Sprintf("http://%s", ln.Addr().String())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ready")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get(base + "/v1/nodes")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "hit", resp.Header.Get("X-Report-Cache"))
	assert.Equal(t, int32(1), src.calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_WarmFailureStillReady(t *testing.T) {
	s := newTestServer(t, &fakeSource{err: errors.New("sinfo missing")})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Serve(ctx, ln) }()

	require.Eventually(t, s.isReady, 5*time.Second, 10*time.Millisecond)
}

func TestRun_InvalidConfig(t *testing.T) {
	s := newTestServer(t, &fakeSource{}, func(c *Config) { c.Port = -1 })
	assert.Error(t, s.Run(context.Background()))
}
