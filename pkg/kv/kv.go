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

// Package kv tokenizes the semi-structured key-value text printed by Slurm
// commands: whitespace separated Key=Value tokens in node detail blocks,
// comma separated key=value groups such as CfgTRES, and colon tagged feature
// lists such as GPU_SKU:A100.
package kv

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	cerrors "github.com/NVIDIA/slurmtool/pkg/errors"
)

// Option configures a Parser.
type Option func(*Parser)

// Parser splits text into items and items into key-value pairs.
type Parser struct {
	delimiter   string
	fields      bool
	kvDelimiter string
	maxSize     int
	strict      bool
}

// WithDelimiter sets the delimiter used to split items.
// Default is comma (",").
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
		p.fields = false
	}
}

// WithFields splits items on any run of whitespace instead of a fixed delimiter.
func WithFields() Option {
	return func(p *Parser) {
		p.fields = true
	}
}

// WithKVDelimiter sets the key-value delimiter used in GetMap.
// Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithMaxSize sets the maximum size (in bytes) of text to be parsed.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithStrict makes GetMap fail on items without a key-value delimiter or
// with an empty key. Non-strict parsers skip such items.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// NewParser creates a new parser with the provided options.
// Default settings: comma delimiter, "=" key-value delimiter, 1MB max size, non-strict.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter:   ",",
		kvDelimiter: "=",
		maxSize:     1 << 20, // 1MB default
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetItems splits text into trimmed, non-empty items.
// An error is returned if the text exceeds the maximum size or is not valid UTF-8.
func (p *Parser) GetItems(text string) ([]string, error) {
	if len(text) > p.maxSize {
		return nil, cerrors.NewWithContext(cerrors.ErrCodeMalformedField,
			fmt.Sprintf("text exceeds maximum size of %d bytes", p.maxSize),
			map[string]any{"size": len(text)})
	}
	if !utf8.ValidString(text) {
		return nil, cerrors.New(cerrors.ErrCodeMalformedField, "text is not valid UTF-8")
	}

	var parts []string
	if p.fields {
		parts = strings.Fields(text)
	} else {
		parts = strings.Split(text, p.delimiter)
	}

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		result = append(result, clean)
	}
	return result, nil
}

// GetMap parses text into a map. Each item is split on the first key-value
// delimiter; the first occurrence of a key wins.
func (p *Parser) GetMap(text string) (map[string]string, error) {
	items, err := p.GetItems(text)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(items))
	for _, item := range items {
		key, value, found := strings.Cut(item, p.kvDelimiter)
		key = strings.TrimSpace(key)
		if !found || key == "" {
			if p.strict {
				return nil, cerrors.NewWithContext(cerrors.ErrCodeMalformedField,
					fmt.Sprintf("malformed item %q", item),
					map[string]any{"delimiter": p.kvDelimiter})
			}
			slog.Debug("skipping item without key-value delimiter",
				"item", item,
				"delimiter", p.kvDelimiter,
			)
			continue
		}

		if _, dup := result[key]; dup {
			continue
		}
		result[key] = strings.TrimSpace(value)
	}

	return result, nil
}
