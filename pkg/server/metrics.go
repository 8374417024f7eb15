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
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/slurmtool/pkg/metrics"
)

var (
	// HTTP request metrics
	httpRequestsTotal = metrics.Factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slurmtool_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = metrics.Factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slurmtool_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.005, 0.05, 0.5, 1, 5, 30, 120, 300},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = metrics.Factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "slurmtool_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	rateLimitRejects = metrics.Factory.NewCounter(
		prometheus.CounterOpts{
			Name: "slurmtool_http_rate_limit_rejects_total",
			Help: "Total number of requests rejected due to rate limiting",
		},
	)

	panicRecoveries = metrics.Factory.NewCounter(
		prometheus.CounterOpts{
			Name: "slurmtool_http_panic_recoveries_total",
			Help: "Total number of panics recovered in HTTP handlers",
		},
	)

	reportCacheLookups = metrics.Factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slurmtool_report_cache_lookups_total",
			Help: "Report cache lookups by result",
		},
		[]string{"result"}, // hit, miss or shared
	)
)

// metricsMiddleware records request rate, errors and duration.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := newResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		status := strconv.Itoa(wrapped.Status())
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	}
}
