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

package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"

	"github.com/NVIDIA/slurmtool/pkg/node"
)

// NotAvailable is printed for absent values.
const NotAvailable = "N/A"

type column struct {
	title string
	width int
}

var columns = []column{
	{"Node Name", 20},
	{"Partition", 15},
	{"State", 10},
	{"Free CPUs", 10},
	{"Free Memory (GB)", 20},
	{"Free GPUs", 10},
	{"GPU Type", 15},
	{"GPU Memory", 10},
	{"GPU CC", 10},
}

// state flags sinfo appends to a state name
const stateModifiers = "*~#!%$@^-"

var (
	downStates = map[string]bool{
		"down":     true,
		"drain":    true,
		"drained":  true,
		"draining": true,
		"fail":     true,
		"failing":  true,
	}

	fold = cases.Fold()
)

// Header returns the table header row.
func Header() string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		cells[i] = pad(c.title, c.width)
	}
	return strings.Join(cells, " ")
}

// Rule returns the separator printed under the header.
func Rule() string {
	return strings.Repeat("=", len(Header()))
}

// IsDown reports whether a state token denotes a node that cannot run work.
// Modifier flags are ignored and compound states such as "idle+drain" match
// on any component.
func IsDown(state string) bool {
	s := fold.String(strings.TrimSpace(state))
	for _, part := range strings.Split(s, "+") {
		if downStates[strings.TrimRight(part, stateModifiers)] {
			return true
		}
	}
	return false
}

// FormatRow renders one record as a table row.
func FormatRow(rec *node.Record, p Policy) string {
	nameColor := Color("")
	if IsDown(rec.State) {
		nameColor = p.Down
	}

	cpuColor := p.level(rec.CPUUtil)
	memColor := p.level(rec.MemUtil)
	gpuColor := p.level(rec.GPUUtil)
	if rec.FreeGPUs <= 0 {
		gpuColor = p.High
	}
	if rec.Idle() {
		cpuColor, memColor, gpuColor = p.Idle, p.Idle, p.Idle
	}

	freeGPUs := fmt.Sprint(rec.FreeGPUs)
	if rec.TotalGPUs == 0 {
		freeGPUs, gpuColor = NotAvailable, p.Muted
	}

	gpuType := strings.ReplaceAll(rec.GPUType, "_", " ")

	cells := []string{
		cell(rec.Name, columns[0].width, nameColor, p),
		cell(rec.Partition, columns[1].width, "", p),
		optional(rec.State, columns[2].width, p),
		cell(fmt.Sprint(rec.FreeCPUs), columns[3].width, cpuColor, p),
		cell(fmt.Sprintf("%.2f", rec.FreeMemGB()), columns[4].width, memColor, p),
		cell(freeGPUs, columns[5].width, gpuColor, p),
		optional(gpuType, columns[6].width, p),
		optional(rec.GPUMem, columns[7].width, p),
		optional(rec.GPUCC, columns[8].width, p),
	}
	return strings.Join(cells, " ")
}

// WriteTable writes the header, the rule and one row per record.
func WriteTable(w io.Writer, recs []*node.Record, p Policy) error {
	if _, err := fmt.Fprintln(w, Header()); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, Rule()); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	for _, rec := range recs {
		if _, err := fmt.Fprintln(w, FormatRow(rec, p)); err != nil {
			return fmt.Errorf("failed to write row for node %s: %w", rec.Name, err)
		}
	}
	return nil
}

func optional(text string, width int, p Policy) string {
	if text == "" {
		return cell(NotAvailable, width, p.Muted, p)
	}
	return cell(text, width, "", p)
}

func cell(text string, width int, color Color, p Policy) string {
	padded := pad(text, width)
	if !p.Enabled || color == "" {
		return padded
	}
	return string(color) + padded + string(Reset)
}

func pad(text string, width int) string {
	return fmt.Sprintf("%-*s", width, text)
}
