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
	"log/slog"
	"net/http"
	"strings"

	cerrors "github.com/NVIDIA/slurmtool/pkg/errors"
	"github.com/NVIDIA/slurmtool/pkg/serializer"
)

// handleNodes handles GET /v1/nodes
func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	format := serializer.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := serializer.ParseFormat(f)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest,
				err.Error(), false, map[string]any{"format": f})
			return
		}
		format = parsed
	}

	names := nodeParams(r)
	report, cached, err := s.cache.get(s.baseContext(), names)
	if err != nil {
		slog.Error("failed to collect report",
			"requestID", r.Context().Value(contextKeyRequestID),
			"nodes", names,
			"error", err)
		WriteError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Failed to collect node resources", true, map[string]any{
				"cause": string(cerrors.CodeOf(err)),
			})
		return
	}

	cacheStatus := "miss"
	if cached {
		cacheStatus = "hit"
	}
	w.Header().Set("X-Report-Cache", cacheStatus)

	// never send escape sequences over HTTP
	out := *report
	out.Policy.Enabled = false

	serializer.Respond(w, http.StatusOK, format, &out)
}

// nodeParams collects node names from repeated or comma separated node
// query parameters, in order.
func nodeParams(r *http.Request) []string {
	var names []string
	for _, v := range r.URL.Query()["node"] {
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}
	return names
}
