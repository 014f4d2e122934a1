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

// Package unique finds anchors for the patience algorithm: elements that appear exactly once in
// both inputs.
package unique

import "sort"

// duplicate marks an element that appears more than once.
const duplicate = -1

// Match returns the longest sequence of index pairs (xs[i], ys[i]) such that x[xs[i]] == y[ys[i]],
// the element appears exactly once in x and exactly once in y, and both xs and ys are strictly
// increasing.
//
// Match returns nil if there's no element that's unique in both inputs.
//
// The longest increasing subsequence is computed using patience sorting as described in Thomas G.
// Szymanski, “A Special Case of the Maximal Common Subsequence Problem,” Princeton TR #170
// (January 1975), available at https://research.swtch.com/tgs170.pdf.
func Match(x, y []int) (xs, ys []int) {
	// Map every element of x to its index + 1 or to duplicate if it appears more than once.
	seen := make(map[int]int, len(x))
	for s, e := range x {
		switch seen[e] {
		case 0:
			seen[e] = s + 1
		case duplicate:
		default:
			seen[e] = duplicate
		}
	}

	// match[s] = t + 1 if x[s] == y[t] and both are unique, 0 otherwise.
	match := make([]int, len(x))
	n := 0
	for t, e := range y {
		s1 := seen[e]
		if s1 == 0 || s1 == duplicate {
			continue
		}
		if match[s1-1] == 0 {
			match[s1-1] = t + 1
			n++
		} else {
			// Second occurrence in y, the element isn't unique after all.
			match[s1-1] = 0
			seen[e] = duplicate
			n--
		}
	}
	if n == 0 {
		return nil, nil
	}

	// Longest increasing subsequence of match (ignoring zeros):
	//	tails[k] = smallest t+1 that ends an increasing subsequence of length k+1.
	//	last[k]  = s for which match[s] = tails[k].
	//	pred[s]  = the s that precedes s in the longest subsequence ending in s, or -1.
	tails := make([]int, 0, n)
	last := make([]int, 0, n)
	pred := make([]int, len(x))
	for s, t1 := range match {
		if t1 == 0 {
			continue
		}
		k := sort.Search(len(tails), func(k int) bool {
			return tails[k] >= t1
		})
		if k == len(tails) {
			tails = append(tails, t1)
			last = append(last, s)
		} else {
			tails[k] = t1
			last[k] = s
		}
		if k > 0 {
			pred[s] = last[k-1]
		} else {
			pred[s] = -1
		}
	}

	k := len(tails)
	buf := make([]int, 2*k)
	xs, ys = buf[:k:k], buf[k:]
	for s, i := last[k-1], k-1; s >= 0; s, i = pred[s], i-1 {
		xs[i] = s
		ys[i] = match[s] - 1
	}
	return xs, ys
}
