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

// Package editgraph implements the classic greedy O(ND) diff algorithm.
//
// The algorithm searches for furthest reaching d-paths in the edit graph for d = 0, 1, ... until
// a path reaches the bottom right corner. In contrast to the linear space variant in package
// myers, every path is kept in a pathstore.Store so that the optimal path can be replayed once the
// corner is reached. This needs O(D²) memory but avoids the recursion of the linear space variant
// which makes it fast for small problems. The store is capped to keep the memory bounded.
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
package editgraph

import (
	"fmt"

	"znkr.io/delta/internal/pathstore"
)

// Diff finds a shortest edit script between x and y and marks deleted elements in rx and inserted
// elements in ry. rx and ry must have at least len(x) and len(y) elements respectively.
//
// Diff returns an error wrapping budget.ErrTooBig if more than maxSteps path steps are needed. In
// that case, rx and ry are left untouched.
func Diff(rx, ry []bool, x, y []int, maxSteps int) error {
	n, m := len(x), len(y)

	// The search isn't restricted to the edit grid: Diagonals with |k| > n or |k| > m are allowed
	// and points beyond the grid are stored like any other. Such a point never leads back into
	// the grid, and the first point that reaches s >= n && t >= m is always exactly (n, m).
	off := n + m + 1
	vs := make([]int, 2*off+1) // furthest reaching s in diagonal k
	vh := make([]int, 2*off+1) // path handle of that end point
	store := pathstore.New(maxSteps)

	for d := 0; d <= n+m; d++ {
		for k := -d; k <= d; k += 2 {
			k0 := off + k

			var s, prev int
			vertical := false
			switch {
			case d == 0:
				s, prev = 0, -1
			case k == -d || (k != d && vs[k0-1] < vs[k0+1]):
				s, prev, vertical = vs[k0+1], vh[k0+1], true
			default:
				s, prev = vs[k0-1]+1, vh[k0-1]
			}
			t := s - k

			s0 := s
			for s < n && t < m && x[s] == y[t] {
				s++
				t++
			}

			h, err := store.Add(s-s0, vertical, prev)
			if err != nil {
				return fmt.Errorf("classic diff of %d and %d elements after %d differences: %w", n, m, d, err)
			}
			vs[k0], vh[k0] = s, h

			if s >= n && t >= m {
				store.Decode(h, rx, ry, s, t)
				return nil
			}
		}
	}
	panic("never reached")
}
