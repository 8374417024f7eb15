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

package version

import (
	"testing"
)

// FuzzParseSlurm checks ParseSlurm never panics and only returns valid versions.
func FuzzParseSlurm(f *testing.F) {
	for _, seed := range []string{
		"slurm 23.02.7",
		"slurm-wlm 22.05.8",
		"23.11",
		"",
		".",
		"1..2",
		"v",
		"-1",
		"1.2.3.4",
		"slurm 24.11.0-0rc1",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseSlurm(input)
		if err == nil && !v.IsValid() {
			t.Errorf("ParseSlurm(%q) returned invalid version: %+v", input, v)
		}
	})
}
