// Copyright 2025 Florian Zenker (flo@znkr.io)
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

package budget

import "testing"

func TestIsqrt(t *testing.T) {
	for n := range 10_000 {
		r := isqrt(n)
		if r*r > n || (r+1)*(r+1) <= n {
			t.Fatalf("isqrt(%d) = %d", n, r)
		}
	}
}

func TestThresholds(t *testing.T) {
	tests := []struct {
		n, floor   int
		wantStrict int
	}{
		{0, DefaultDifferenceFloor, DefaultDifferenceFloor},
		{1_000_000, DefaultDifferenceFloor, DefaultDifferenceFloor},
		{100_000_000, DefaultDifferenceFloor, 100_000},
		{100, 0, 100},
		{100, 50, 100},
		{100, 500, 500},
		{10_000, 100, 1000}, // not 100 + 1000
	}
	for _, tt := range tests {
		if got := StrictThreshold(tt.n, tt.floor); got != tt.wantStrict {
			t.Errorf("StrictThreshold(%d, %d) = %d, want %d", tt.n, tt.floor, got, tt.wantStrict)
		}
		if got := LinearThreshold(tt.n, tt.floor); got != 2*tt.wantStrict {
			t.Errorf("LinearThreshold(%d, %d) = %d, want %d", tt.n, tt.floor, got, 2*tt.wantStrict)
		}
	}
}
