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

// Package rvecs contains functions to work with the result vectors, the internal representation
// that's used by all diff algorithms and is then translated to a user facing API.
//
// A pair of result vectors rx, ry marks every element of x that's deleted (rx[s] == true) and every
// element of y that's inserted (ry[t] == true). All other elements are matches. Both vectors have
// one extra element at the end that's always false, this border makes it easier to iterate over
// the results.
package rvecs

// Make allocates result vectors for inputs of length n and m with a single allocation.
func Make(n, m int) (rx, ry []bool) {
	r := make([]bool, (n + m + 2))
	rx = r[: n+1 : n+1]
	ry = r[n+1:]
	return
}

// Fill marks all of r as changed.
func Fill(r []bool) {
	for i := range r {
		r[i] = true
	}
}

// Cost returns the number of deletions and insertions in the result vectors.
func Cost(rx, ry []bool) int {
	n := 0
	for _, r := range rx {
		if r {
			n++
		}
	}
	for _, r := range ry {
		if r {
			n++
		}
	}
	return n
}
