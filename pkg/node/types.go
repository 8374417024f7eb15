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

package node

// Record holds the derived resource state of one node.
// String fields other than Name and Partition are empty when absent.
// Memory is in megabytes. An explicit unit on a TRES mem value overrides the
// group default (megabytes for CfgTRES, gigabytes for AllocTRES).
type Record struct {
	Name      string `json:"name" yaml:"name"`
	Partition string `json:"partition" yaml:"partition"`
	State     string `json:"state,omitempty" yaml:"state,omitempty"`

	TotalCPUs int `json:"totalCPUs" yaml:"totalCPUs"`
	AllocCPUs int `json:"allocCPUs" yaml:"allocCPUs"`
	FreeCPUs  int `json:"freeCPUs" yaml:"freeCPUs"`

	TotalMemMB float64 `json:"totalMemMB" yaml:"totalMemMB"`
	AllocMemMB float64 `json:"allocMemMB" yaml:"allocMemMB"`
	FreeMemMB  float64 `json:"freeMemMB" yaml:"freeMemMB"`

	TotalGPUs int `json:"totalGPUs" yaml:"totalGPUs"`
	AllocGPUs int `json:"allocGPUs" yaml:"allocGPUs"`
	FreeGPUs  int `json:"freeGPUs" yaml:"freeGPUs"`

	GPUType string `json:"gpuType,omitempty" yaml:"gpuType,omitempty"`
	GPUMem  string `json:"gpuMem,omitempty" yaml:"gpuMem,omitempty"`
	GPUCC   string `json:"gpuCC,omitempty" yaml:"gpuCC,omitempty"`

	CPUUtil float64 `json:"cpuUtil" yaml:"cpuUtil"`
	MemUtil float64 `json:"memUtil" yaml:"memUtil"`
	GPUUtil float64 `json:"gpuUtil" yaml:"gpuUtil"`

	// AllocRestricted is set when AllocTRES was missing or empty and all
	// allocations were assumed to be zero.
	AllocRestricted bool `json:"allocRestricted,omitempty" yaml:"allocRestricted,omitempty"`
}

// FreeMemGB returns free memory in gigabytes.
func (r *Record) FreeMemGB() float64 {
	return r.FreeMemMB / 1024
}

// Idle reports whether no CPU, memory or GPU capacity is allocated.
func (r *Record) Idle() bool {
	return r.CPUUtil == 0 && r.MemUtil == 0 && r.GPUUtil == 0
}

// Result is the outcome of extracting one node: either a valid Record or an
// unparseable node identified by Name with the cause in Err.
type Result struct {
	Name   string
	Record *Record
	Err    error
}

// Valid reports whether the result carries a record.
func (r Result) Valid() bool {
	return r.Record != nil
}

// Records returns the records of valid results in order.
func Records(results []Result) []*Record {
	out := make([]*Record, 0, len(results))
	for _, r := range results {
		if r.Valid() {
			out = append(out, r.Record)
		}
	}
	return out
}

// Skipped returns the names of unparseable results in order.
func Skipped(results []Result) []string {
	out := make([]string, 0)
	for _, r := range results {
		if !r.Valid() {
			out = append(out, r.Name)
		}
	}
	return out
}
