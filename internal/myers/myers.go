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

package myers

import (
	"fmt"
	"math"

	"znkr.io/delta/internal/budget"
)

// Diff finds a shortest edit script between x and y and marks deleted elements in rx and inserted
// elements in ry. rx and ry must have at least len(x) and len(y) elements respectively.
//
// If x and y differ in more than threshold elements, Diff returns an error wrapping
// budget.ErrTooBig and leaves rx and ry untouched.
func Diff(rx, ry []bool, x, y []int, threshold int) error {
	var m myers
	smin, smax, tmin, tmax := m.init(x, y, threshold)
	m.rx, m.ry = rx, ry
	if !m.compare(smin, smax, tmin, tmax) {
		return fmt.Errorf("linear space diff of %d and %d elements exceeds %d differences: %w", len(x), len(y), threshold, budget.ErrTooBig)
	}
	return nil
}

// DiffLinear is like [Diff], but if x and y differ in more than threshold elements it marks
// everything between the common prefix and the common suffix of x and y as changed. The result is
// correct but not minimal in this case.
func DiffLinear(rx, ry []bool, x, y []int, threshold int) {
	var m myers
	smin, smax, tmin, tmax := m.init(x, y, threshold)
	m.rx, m.ry = rx, ry
	if !m.compare(smin, smax, tmin, tmax) {
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
	}
}

type myers struct {
	// Inputs to compare.
	x, y []int

	// v-arrays for forwards and backwards iteration respectively. A v-array stores the furthest
	// reaching endpoint of a d-path in diagonal k in v[v0+k]. Only the s-coordinate is stored,
	// t = s - k.
	vf, vb []int
	v0     int

	// Maximum number of differences to search for.
	threshold int

	// Result vectors.
	rx, ry []bool
}

// init prepares m for comparing x and y and returns the range without common prefix and suffix.
func (m *myers) init(x, y []int, threshold int) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	diagonals := (smax - smin) + (tmax - tmin)
	vlen := 2*diagonals + 3 // +1 for the middle point and +2 for the borders
	buf := make([]int, 2*vlen)

	m.x = x
	m.y = y
	m.vf = buf[:vlen]
	m.vb = buf[vlen:]
	m.v0 = diagonals + 1
	m.threshold = threshold
	return
}

// compare finds an optimal d-path from (smin, tmin) to (smax, tmax). It returns false if the
// number of differences exceeds the threshold.
//
// Important: x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix.
func (m *myers) compare(smin, smax, tmin, tmax int) bool {
	switch {
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			m.ry[t] = true
		}
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			m.rx[s] = true
		}
	default:
		// Split into a rect (smin, tmin) to (s0, t0), a possibly empty sequence of diagonals from
		// (s0, t0) to (s1, t1), and a rect (s1, t1) to (smax, tmax). Neither rect has a common
		// prefix or suffix.
		s0, s1, t0, t1, ok := m.split(smin, smax, tmin, tmax)
		if !ok {
			return false
		}
		if !m.compare(smin, s0, tmin, t0) || !m.compare(s1, smax, t1, tmax) {
			// Unreachable as long as the outermost range is within the threshold.
			panic("linear space diff exceeded its threshold in a sub range")
		}
	}
	return true
}

// split finds the endpoints of a, potentially empty, sequence of diagonals in the middle of an
// optimal path from (smin, tmin) to (smax, tmax). ok is false if the range has more differences
// than the threshold.
//
// Important: x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix and
// they may not both be empty.
func (m *myers) split(smin, smax, tmin, tmax int) (s0, s1, t0, t1 int, ok bool) {
	N, M := smax-smin, tmax-tmin
	x, y := m.x, m.y
	vf, vb := m.vf, m.vb
	v0 := m.v0

	// Bounds for k = s - t.
	kmin, kmax := smin-tmax, smax-tmin

	// The forward and backward searches are centered around different diagonals, but share the
	// numbering of k. That way, there's no need to convert k's when checking for overlap.
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid

	// The length of an optimal path is odd iff N-M is odd. Overlaps are only checked in the
	// forward search if it's odd and in the backward search if it's even.
	odd := (N-M)%2 != 0

	// There's no common prefix or suffix, the d=0 iteration is trivial.
	vf[v0+fmid] = smin
	vb[v0+bmid] = smax

	for d := 1; ; d++ {
		// Forward search. The range of k is kept within the edit grid, the v-array entries just
		// outside of the range are set to a sentinel so that the borders need no special case.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + v0

			var s int
			if vf[k0-1] < vf[k0+1] {
				// Vertical edge from diagonal k+1.
				s = vf[k0+1]
			} else {
				// Horizontal edge from diagonal k-1. Ties prefer deletions over insertions.
				s = vf[k0-1] + 1
			}
			t := s - k

			s0, t0 := s, t
			for s < smax && t < tmax && x[s] == y[t] {
				s++
				t++
			}
			vf[k0] = s

			if odd && bmin <= k && k <= bmax && s >= vb[k0] {
				return s0, s, t0, t, true
			}
		}

		// No overlap yet: D >= 2d.
		if 2*d > m.threshold {
			return 0, 0, 0, 0, false
		}

		// Backward search, analogous to the forward search.
		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + v0

			var s int
			if vb[k0-1] < vb[k0+1] {
				s = vb[k0-1]
			} else {
				s = vb[k0+1] - 1
			}
			t := s - k

			s0, t0 := s, t
			for s > smin && t > tmin && x[s-1] == y[t-1] {
				s--
				t--
			}
			vb[k0] = s

			if !odd && fmin <= k && k <= fmax && s <= vf[v0+k] {
				return s, s0, t, t0, true
			}
		}

		// Still no overlap: D >= 2d+1.
		if 2*d+1 > m.threshold {
			return 0, 0, 0, 0, false
		}
	}
}
