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

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	cerrors "github.com/NVIDIA/slurmtool/pkg/errors"
	"github.com/NVIDIA/slurmtool/pkg/kv"
)

// Detail block keys.
const (
	KeyCfgTRES    = "CfgTRES"
	KeyAllocTRES  = "AllocTRES"
	KeyPartitions = "Partitions"
	KeyFeatures   = "AvailableFeatures"
)

// Trackable resource keys inside CfgTRES and AllocTRES.
const (
	TRESCPU       = "cpu"
	TRESMem       = "mem"
	TRESGPU       = "gres/gpu"
	tresGPUPrefix = "gres/gpu:"
)

// Feature tag prefixes inside AvailableFeatures.
const (
	FeatureGPUSKU = "GPU_SKU"
	FeatureGPUMem = "GPU_MEM"
	FeatureGPUCC  = "GPU_CC"
)

// scontrol prints (null) for unset list fields.
const nullValue = "(null)"

var (
	blockParser   = kv.NewParser(kv.WithFields())
	groupParser   = kv.NewParser(kv.WithStrict(true))
	featureParser = kv.NewParser(kv.WithKVDelimiter(":"))

	// megabytes per unit suffix
	memUnits = map[rune]float64{
		'K': 1.0 / 1024,
		'M': 1,
		'G': 1024,
		'T': 1024 * 1024,
		'P': 1024 * 1024 * 1024,
	}
)

// Derive builds the Result for node name from its state token and its
// scontrol detail text. It is a pure function of its inputs and never panics.
func Derive(name, state, detail string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Name: name,
				Err: cerrors.NewWithContext(cerrors.ErrCodeMalformedField,
					fmt.Sprintf("failed to parse node detail: %v", r),
					map[string]any{"node": name}),
			}
		}
	}()

	rec, err := derive(name, state, detail)
	if err != nil {
		return Result{Name: name, Err: err}
	}
	return Result{Name: name, Record: rec}
}

func derive(name, state, detail string) (*Record, error) {
	fields, err := blockParser.GetMap(detail)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", name, err)
	}

	cfgRaw := listValue(fields, KeyCfgTRES)
	partition := listValue(fields, KeyPartitions)
	if cfgRaw == "" || partition == "" {
		return nil, cerrors.NewWithContext(cerrors.ErrCodeUnparseableDetail,
			fmt.Sprintf("could not find %s or %s for node %s", KeyCfgTRES, KeyPartitions, name),
			map[string]any{"node": name})
	}

	cfg, err := groupParser.GetMap(cfgRaw)
	if err != nil {
		return nil, fmt.Errorf("node %s %s: %w", name, KeyCfgTRES, err)
	}

	allocRaw := listValue(fields, KeyAllocTRES)
	alloc, err := groupParser.GetMap(allocRaw)
	if err != nil {
		return nil, fmt.Errorf("node %s %s: %w", name, KeyAllocTRES, err)
	}

	rec := &Record{
		Name:            name,
		Partition:       partition,
		State:           state,
		AllocRestricted: allocRaw == "",
	}

	if rec.TotalCPUs, err = count(cfg, TRESCPU); err != nil {
		return nil, fieldError(name, KeyCfgTRES, err)
	}
	if rec.TotalMemMB, err = memory(cfg, 'M'); err != nil {
		return nil, fieldError(name, KeyCfgTRES, err)
	}
	if rec.TotalGPUs, err = gpus(cfg); err != nil {
		return nil, fieldError(name, KeyCfgTRES, err)
	}

	if rec.AllocCPUs, err = count(alloc, TRESCPU); err != nil {
		return nil, fieldError(name, KeyAllocTRES, err)
	}
	if rec.AllocMemMB, err = memory(alloc, 'G'); err != nil {
		return nil, fieldError(name, KeyAllocTRES, err)
	}
	if rec.AllocGPUs, err = gpus(alloc); err != nil {
		return nil, fieldError(name, KeyAllocTRES, err)
	}

	rec.FreeCPUs = rec.TotalCPUs - rec.AllocCPUs
	rec.FreeMemMB = rec.TotalMemMB - rec.AllocMemMB
	rec.FreeGPUs = rec.TotalGPUs - rec.AllocGPUs

	rec.CPUUtil = Utilization(float64(rec.AllocCPUs), float64(rec.TotalCPUs))
	rec.MemUtil = Utilization(rec.AllocMemMB, rec.TotalMemMB)
	rec.GPUUtil = Utilization(float64(rec.AllocGPUs), float64(rec.TotalGPUs))

	rec.GPUType, rec.GPUMem, rec.GPUCC = GPUTags(listValue(fields, KeyFeatures))

	return rec, nil
}

// Utilization returns alloc as a percentage of total, or 0 when total is 0.
func Utilization(alloc, total float64) float64 {
	if total == 0 {
		return 0
	}
	return alloc / total * 100
}

// GPUTags extracts the GPU SKU, memory and compute capability tags from an
// AvailableFeatures list. Missing tags are returned as empty strings.
func GPUTags(features string) (sku, mem, cc string) {
	if features == "" || features == nullValue {
		return "", "", ""
	}
	tags, err := featureParser.GetMap(features)
	if err != nil {
		return "", "", ""
	}
	return tags[FeatureGPUSKU], tags[FeatureGPUMem], tags[FeatureGPUCC]
}

// ParseMemoryMB converts a memory quantity such as "8192M", "4G" or "1.5T" to
// megabytes. Quantities without a unit suffix use defaultUnit.
func ParseMemoryMB(raw string, defaultUnit rune) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty memory quantity")
	}

	unit := unicode.ToUpper(defaultUnit)
	last := rune(s[len(s)-1])
	if unicode.IsLetter(last) {
		unit = unicode.ToUpper(last)
		s = s[:len(s)-1]
	}

	factor, ok := memUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unknown memory unit %q in %q", string(unit), raw)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid memory quantity %q: %w", raw, err)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid memory quantity %q", raw)
	}
	return v * factor, nil
}

func listValue(fields map[string]string, key string) string {
	v := fields[key]
	if v == nullValue {
		return ""
	}
	return v
}

func count(group map[string]string, key string) (int, error) {
	raw, ok := group[key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s count %q: %w", key, raw, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative %s count %q", key, raw)
	}
	return n, nil
}

func memory(group map[string]string, defaultUnit rune) (float64, error) {
	raw, ok := group[TRESMem]
	if !ok {
		return 0, nil
	}
	return ParseMemoryMB(raw, defaultUnit)
}

// gpus prefers the generic gres/gpu count and falls back to the sum of typed
// gres/gpu:<type> entries.
func gpus(group map[string]string) (int, error) {
	if _, ok := group[TRESGPU]; ok {
		return count(group, TRESGPU)
	}

	total := 0
	for key := range group {
		if !strings.HasPrefix(key, tresGPUPrefix) {
			continue
		}
		n, err := count(group, key)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func fieldError(name, group string, err error) error {
	return cerrors.WrapWithContext(cerrors.ErrCodeMalformedField,
		fmt.Sprintf("malformed %s for node %s", group, name), err,
		map[string]any{"node": name, "group": group})
}
