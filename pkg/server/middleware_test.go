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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func bareServer() *Server {
	return &Server{
		config:      NewConfig(),
		rateLimiter: rate.NewLimiter(100, 200),
	}
}

func TestRequestIDMiddleware_GeneratesNewID(t *testing.T) {
	s := bareServer()

	var captured string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Context().Value(contextKeyRequestID).(string)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/nodes", nil))

	_, err := uuid.Parse(captured)
	assert.NoError(t, err)
	assert.Equal(t, captured, rec.Header().Get("X-Request-Id"))
}

func TestRequestIDMiddleware_UsesProvidedID(t *testing.T) {
	s := bareServer()
	provided := uuid.New().String()

	var captured string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Context().Value(contextKeyRequestID).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/nodes", nil)
	req.Header.Set("X-Request-Id", provided)
	handler(httptest.NewRecorder(), req)

	assert.Equal(t, provided, captured)
}

func TestRequestIDMiddleware_ReplacesInvalidID(t *testing.T) {
	s := bareServer()

	var captured string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Context().Value(contextKeyRequestID).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/nodes", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid")
	handler(httptest.NewRecorder(), req)

	assert.NotEqual(t, "not-a-uuid", captured)
	_, err := uuid.Parse(captured)
	assert.NoError(t, err)
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := bareServer()
	handler := s.requestIDMiddleware(s.panicRecoveryMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/nodes", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodeInternalError, resp.Code)
	assert.Equal(t, rec.Header().Get("X-Request-Id"), resp.RequestID)
}

func TestMetricsMiddleware_RecordsStatus(t *testing.T) {
	s := bareServer()
	handler := s.metricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/nodes", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		accept string
		want   string
	}{
		{"", DefaultAPIVersion},
		{"application/json", DefaultAPIVersion},
		{"application/vnd.nvidia.slurmtool.v1+json", "v1"},
		{"text/html, application/vnd.nvidia.slurmtool.v1+yaml;q=0.9", "v1"},
		{"application/vnd.nvidia.slurmtool.v9+json", DefaultAPIVersion},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/nodes", nil)
			req.Header.Set("Accept", tt.accept)
			assert.Equal(t, tt.want, negotiateAPIVersion(req))
		})
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)
	rw.WriteHeader(http.StatusAccepted)
	rw.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusAccepted, rw.Status())
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
