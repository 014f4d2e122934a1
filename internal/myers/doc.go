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

// Package myers implements the linear space variant of Myers' algorithm with a bound on the number
// of differences it searches for.
//
// # Edit graph
//
// For inputs x = "ABCABBA" and y = "CBABAC", all possible edits from x to y form the graph:
//
//	(0,0)   A   B   C   A   B   B   A
//	    ┌───┬───┬───┬───┬───┬───┬───┐ 0
//	    │   │   │ ╲ │   │   │   │   │
//	 C  ├───┼───┼───┼───┼───┼───┼───┤ 1
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 2
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 3
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 4
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 5
//	    │   │   │ ╲ │   │   │   │   │
//	 C  └───┴───┴───┴───┴───┴───┴───┘
//	    0   1   2   3   4   5   6     (7,6)
//
// A step to the right deletes an element of x, a step down inserts an element of y, and a diagonal
// is a match. A shortest edit script is a path from (0,0) to (N,M) with the fewest horizontal and
// vertical edges. We use s and t for the horizontal and vertical coordinates and k = s - t for
// diagonals.
//
// A D-path is a path with exactly D non-diagonal edges. The relevant results from the paper are:
//
// Lemma 1: A D-path must end on diagonal k in {-D, -D+2, ..., D-2, D}.
//
// Lemma 2: A furthest reaching D-path on diagonal k consists of a furthest reaching (D-1)-path on
// diagonal k-1 followed by a horizontal edge, or on diagonal k+1 followed by a vertical edge, and
// then the longest possible sequence of diagonals.
//
// Lemma 3: There is a D-path from (0,0) to (N,M) if and only if there is a ⌈D/2⌉-path from (0,0)
// to some point (s,t) and a ⌊D/2⌋-path from some point (s',t') to (N,M) that overlap on the same
// diagonal.
//
// Lemma 3 leads to the linear space algorithm: search forwards from (0,0) and backwards from (N,M)
// at the same time until the paths overlap, split the problem at the overlap and recurse into both
// halves.
//
// # Difference bound
//
// Searching for d-paths costs O((N+M)·d). Without a bound, inputs with many differences can take a
// very long time. A search that hasn't found an overlap after the forward part of round d knows
// that D >= 2d, after the backward part it knows that D >= 2d+1. The search stops as soon as that
// lower bound exceeds the threshold. Neither half of a split has more differences than the whole
// range, so only the outermost search can ever stop.
//
// [Diff] reports a stopped search as budget.ErrTooBig, [DiffLinear] marks the whole range as
// changed instead.
//
// # References
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
//
// Ukkonen, E. Algorithms for approximate string matching. Information and Control, Volume 64,
// Issues 1-3, 100-118 (1985). https://doi.org/10.1016/S0019-9958(85)80046-2
package myers
