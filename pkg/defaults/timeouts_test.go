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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"CommandTimeout", CommandTimeout, 1 * time.Second, 60 * time.Second},
		{"CollectionTimeout", CollectionTimeout, 1 * time.Minute, 30 * time.Minute},
		{"RetryInitialInterval", RetryInitialInterval, 10 * time.Millisecond, 1 * time.Second},
		{"RetryMaxInterval", RetryMaxInterval, 500 * time.Millisecond, 10 * time.Second},
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},
		{"ReportCacheTTL", ReportCacheTTL, 1 * time.Second, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) exceeds maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestTimeoutRelationships(t *testing.T) {
	if CommandTimeout >= CollectionTimeout {
		t.Errorf("CommandTimeout (%v) should be less than CollectionTimeout (%v)",
			CommandTimeout, CollectionTimeout)
	}
	if RetryInitialInterval >= RetryMaxInterval {
		t.Errorf("RetryInitialInterval (%v) should be less than RetryMaxInterval (%v)",
			RetryInitialInterval, RetryMaxInterval)
	}
}

func TestCollectionLimits(t *testing.T) {
	if Concurrency < 1 || Concurrency > MaxConcurrency {
		t.Errorf("Concurrency (%d) must be within [1, %d]", Concurrency, MaxConcurrency)
	}
	if CommandRate < 0 {
		t.Errorf("CommandRate (%d) must not be negative", CommandRate)
	}
	if CommandBurst < 1 {
		t.Errorf("CommandBurst (%d) must be positive", CommandBurst)
	}
	if HighUtilization <= 0 || HighUtilization > 100 {
		t.Errorf("HighUtilization (%v) must be within (0, 100]", HighUtilization)
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	if ServerReadHeaderTimeout > ServerReadTimeout {
		t.Errorf("ServerReadHeaderTimeout (%v) should not exceed ServerReadTimeout (%v)",
			ServerReadHeaderTimeout, ServerReadTimeout)
	}
	if ServerWriteTimeout <= CollectionTimeout {
		t.Errorf("ServerWriteTimeout (%v) should exceed CollectionTimeout (%v)",
			ServerWriteTimeout, CollectionTimeout)
	}
	if ServerIdleTimeout < ServerWriteTimeout {
		t.Errorf("ServerIdleTimeout (%v) should be at least ServerWriteTimeout (%v)",
			ServerIdleTimeout, ServerWriteTimeout)
	}
	if ServerRateLimitBurst < ServerRateLimit {
		t.Errorf("ServerRateLimitBurst (%d) should be at least ServerRateLimit (%d)",
			ServerRateLimitBurst, ServerRateLimit)
	}
}
