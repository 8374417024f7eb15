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

	"github.com/NVIDIA/slurmtool/pkg/defaults"
)

// Color is an ANSI SGR escape sequence.
type Color string

// ANSI colors used by the default policy.
const (
	Reset  Color = "\x1b[0m"
	Red    Color = "\x1b[31m"
	Green  Color = "\x1b[32m"
	Yellow Color = "\x1b[33m"
	White  Color = "\x1b[37m"
)

// Policy controls how rows are colored.
type Policy struct {
	// Enabled turns escape sequences on. When false all output is plain.
	Enabled bool
	// HighThreshold is the utilization percentage above which a resource
	// is rendered with High.
	HighThreshold float64

	High  Color
	Busy  Color
	Idle  Color
	Muted Color
	Down  Color
}

// DefaultPolicy returns the standard color scheme with colors enabled.
func DefaultPolicy() Policy {
	return Policy{
		Enabled:       true,
		HighThreshold: defaults.HighUtilization,
		High:          Red,
		Busy:          Yellow,
		Idle:          Green,
		Muted:         White,
		Down:          Red,
	}
}

// PlainPolicy returns the standard thresholds with colors disabled.
func PlainPolicy() Policy {
	p := DefaultPolicy()
	p.Enabled = false
	return p
}

// Validate checks the threshold is a percentage.
func (p Policy) Validate() error {
	if p.HighThreshold < 0 || p.HighThreshold > 100 {
		return fmt.Errorf("high threshold %v must be within [0, 100]", p.HighThreshold)
	}
	return nil
}

// level picks the color for a resource at the given utilization.
func (p Policy) level(util float64) Color {
	switch {
	case util > p.HighThreshold:
		return p.High
	case util == 0:
		return p.Idle
	default:
		return p.Busy
	}
}
