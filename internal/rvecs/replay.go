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

package rvecs

// Builder receives the runs described by a pair of result vectors in increasing position order.
type Builder interface {
	// AddEqual adds a run of n matching elements.
	AddEqual(n int)
	// AddChange adds a run of deleted elements from x and inserted elements from y. At least one
	// of them is non-zero.
	AddChange(deleted, inserted int)
}

// Replay walks rx[:n] and ry[:m] in lock-step and reports alternating runs of matches and changes
// to b. Consecutive deletions and insertions are merged into a single change.
//
// The vectors must be consistent: the number of matches in rx[:n] and ry[:m] must be identical.
func Replay(rx, ry []bool, n, m int, b Builder) {
	s, t := 0, 0
	for s < n || t < m {
		s0, t0 := s, t
		for s < n && rx[s] {
			s++
		}
		for t < m && ry[t] {
			t++
		}
		if s > s0 || t > t0 {
			b.AddChange(s-s0, t-t0)
		}

		run := 0
		for s < n && t < m && !rx[s] && !ry[t] {
			s++
			t++
			run++
		}
		if run > 0 {
			b.AddEqual(run)
		} else if s0 == s && t0 == t {
			panic("inconsistent result vectors")
		}
	}
}
