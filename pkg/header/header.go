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

package header

// APIVersion is the schema version of documents written by this module.
const APIVersion = "slurmtool.nvidia.com/v1"

// Kind represents the type of slurmtool document.
type Kind string

const (
	KindNodeReport Kind = "NodeReport"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindNodeReport:
		return true
	default:
		return false
	}
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata adds a metadata key-value pair to the Header.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		h.Set(key, value)
	}
}

// WithKind sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a Header with the current APIVersion and applies opts.
func New(opts ...Option) Header {
	h := Header{APIVersion: APIVersion}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Header contains type and versioning information for a document.
type Header struct {
	Kind       Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains free-form key-value pairs about the document.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Set stores a metadata value. Empty values are ignored.
func (h *Header) Set(key, value string) {
	if value == "" {
		return
	}
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[key] = value
}

// Get returns the metadata value for key, or "".
func (h *Header) Get(key string) string {
	return h.Metadata[key]
}

// Supported reports whether a decoded document can be read by this module.
func (h *Header) Supported() bool {
	return h.Kind.IsValid() && h.APIVersion == APIVersion
}
