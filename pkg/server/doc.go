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

// Package server exposes node resource reports over HTTP.
//
// # Endpoints
//
//	GET /              service name, version and routes
//	GET /health        liveness
//	GET /ready         readiness, 503 until the first collection finished
//	GET /metrics       Prometheus metrics from the shared registry
//	GET /v1/nodes      resource report
//
// /v1/nodes accepts repeated or comma separated node parameters
// (?node=gpu01&node=gpu02 or ?node=gpu01,gpu02); without them every node is
// reported. ?format=json|yaml|table selects the encoding, JSON by default.
//
// Reports are cached per node selection for Config.CacheTTL and concurrent
// requests for the same selection share one collection, so a busy dashboard
// does not multiply the load on slurmctld.
//
// # Middleware
//
// API routes pass through, outermost first: metrics, API version
// negotiation, request ID, panic recovery, rate limiting and logging.
//
// # Errors
//
// Failures are returned as ErrorResponse JSON with a machine readable code,
// the request ID and whether the request can be retried.
package server
