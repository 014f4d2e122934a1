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
	"crypto/sha256"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/delta/internal/budget"
	"znkr.io/delta/internal/rvecs"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want string
	}{
		{
			name: "identical",
			x:    "abc",
			y:    "abc",
			want: "MMM",
		},
		{
			name: "empty",
			want: "",
		},
		{
			name: "x-empty",
			y:    "abc",
			want: "III",
		},
		{
			name: "y-empty",
			x:    "abc",
			want: "DDD",
		},
		{
			name: "ABCABBA_to_CBABAC",
			x:    "ABCABBA",
			y:    "CBABAC",
			want: "DIMDMMDMI",
		},
		{
			name: "same-prefix",
			x:    "fb",
			y:    "fz",
			want: "MDI",
		},
		{
			name: "same-suffix",
			x:    "fb",
			y:    "lb",
			want: "DIM",
		},
		{
			name: "largish",
			x:    "xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaay",
			y:    "waaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaait",
			want: "DIMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMDII",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ints(tt.x), ints(tt.y)
			{
				rx, ry := rvecs.Make(len(x), len(y))
				if err := Diff(rx, ry, x, y, math.MaxInt); err != nil {
					t.Fatalf("Diff(...) failed: %v", err)
				}
				got := render(rx, ry, len(x), len(y))
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("Diff(...) differs [-want,+got]:\n%s", diff)
				}
			}
			{
				rx, ry := rvecs.Make(len(x), len(y))
				DiffLinear(rx, ry, x, y, math.MaxInt)
				got := render(rx, ry, len(x), len(y))
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("DiffLinear(...) differs [-want,+got]:\n%s", diff)
				}
			}
		})
	}
}

func TestDiff_threshold(t *testing.T) {
	for i := range 50 {
		seed := sha256.Sum256(fmt.Append(nil, i))
		rng := rand.New(rand.NewChaCha8(seed))
		x := make([]int, rng.IntN(60))
		for s := range x {
			x[s] = rng.IntN(6)
		}
		y := make([]int, rng.IntN(60))
		for t := range y {
			y[t] = rng.IntN(6)
		}
		d := minCost(x, y)

		// Exactly at the threshold, the result is optimal.
		rx, ry := rvecs.Make(len(x), len(y))
		if err := Diff(rx, ry, x, y, d); err != nil {
			t.Fatalf("seed %x: Diff(..., %d) failed: %v", seed, d, err)
		}
		validate(t, x, y, rx, ry)
		if got := rvecs.Cost(rx, ry); got != d {
			t.Errorf("seed %x: Diff(...) has cost %d, want %d", seed, got, d)
		}

		if d == 0 {
			continue
		}

		// Below the threshold, Diff fails without touching the result vectors.
		rx, ry = rvecs.Make(len(x), len(y))
		if err := Diff(rx, ry, x, y, d-1); !errors.Is(err, budget.ErrTooBig) {
			t.Errorf("seed %x: Diff(..., %d) = %v, want %v", seed, d-1, err, budget.ErrTooBig)
		}
		if got := rvecs.Cost(rx, ry); got != 0 {
			t.Errorf("seed %x: Diff(...) modified the result vectors after failing", seed)
		}

		// And DiffLinear replaces everything between prefix and suffix.
		rx, ry = rvecs.Make(len(x), len(y))
		DiffLinear(rx, ry, x, y, d-1)
		validate(t, x, y, rx, ry)
		var m myers
		smin, smax, tmin, tmax := m.init(x, y, 0)
		if got, want := rvecs.Cost(rx, ry), (smax-smin)+(tmax-tmin); got != want {
			t.Errorf("seed %x: DiffLinear(...) has cost %d, want %d", seed, got, want)
		}
	}
}

func render(rx, ry []bool, n, m int) string {
	var sb strings.Builder
	for s, t := 0, 0; s < n || t < m; {
		if rx[s] {
			sb.WriteRune('D')
			s++
		} else if ry[t] {
			sb.WriteRune('I')
			t++
		} else {
			sb.WriteRune('M')
			s++
			t++
		}
	}
	return sb.String()
}

func ints(s string) []int {
	var out []int
	for _, r := range s {
		out = append(out, int(r))
	}
	return out
}

// validate checks that all elements that aren't marked as changed match.
func validate(t *testing.T, x, y []int, rx, ry []bool) {
	t.Helper()
	s, t0 := 0, 0
	for s < len(x) || t0 < len(y) {
		switch {
		case rx[s]:
			s++
		case ry[t0]:
			t0++
		case s < len(x) && t0 < len(y) && x[s] == y[t0]:
			s++
			t0++
		default:
			t.Fatalf("invalid result vectors: x[%d] doesn't match y[%d]", s, t0)
		}
	}
}

// minCost returns the minimal number of insertions and deletions.
func minCost(x, y []int) int {
	dp := make([][]int, len(x)+1)
	for i := range dp {
		dp[i] = make([]int, len(y)+1)
	}
	for i := len(x) - 1; i >= 0; i-- {
		for j := len(y) - 1; j >= 0; j-- {
			if x[i] == y[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}
	return len(x) + len(y) - 2*dp[0][0]
}

func TestSplit(t *testing.T) {
	tests := []struct {
		inX, inY     string
		wantX, wantY string
	}{
		// The inputs and outputs are strings with markers that define ranges, e.g. ab[cde]fg is the
		// string abcdefg with the range [2, 5]. The inputs define the range to split, the outputs
		// the two ranges that remain after the split. Everything in between the two output ranges
		// must be identical.
		//
		//     inX          inY          wantX         wantY
		{"[ABCABBA]", "[CBABAC]", "[ABC]AB[BA]", "[CB]AB[AC]"},
		{"[ABC]ABBA", "[CB]ABAC", "[A]B[C]ABBA", "[C]B[]ABAC"},
		{"ABCAB[BA]", "CBAB[AC]", "ABCAB[B]A[]", "CBAB[]A[C]"},
		{"[A]BCABBA", "[C]BABAC", "[][A]BCABBA", "[C][]BABAC"},
		{"AB[C]ABBA", "CB[]ABAC", "AB[C][]ABBA", "CB[][]ABAC"},

		{"[Florian]", "[Zenker]", "[F][lorian]", "[Zenke][r]"},
		{"F[lorian]", "[Zenke]r", "F[lor][ian]", "[Ze][nke]r"},
		{"F[lor]ian", "[Ze]nker", "F[l][or]ian", "[Ze][]nker"},
		{"Flor[ian]", "Ze[nke]r", "Flor[ia]n[]", "Ze[]n[ke]r"},

		{"[axxxxxxxxb]", "[cxxxxxxxxd]", "[a]xxxxxxxx[b]", "[c]xxxxxxxx[d]"},
		{"[axxxyyxxxb]", "[cxxxzzxxxd]", "[axxx][yyxxxb]", "[cxxxzz][xxxd]"},
		{"[axxx]yyxxxb", "[cxxxzz]xxxd", "[a]xxx[]yyxxxb", "[c]xxx[zz]xxxd"},
		{"axxx[yyxxxb]", "cxxxzz[xxxd]", "axxx[yy]xxx[b]", "cxxxzz[]xxx[d]"},

		// Prefixes and suffixes are never passed to split, but split must still stay within its
		// range.
		{"abcdefg[0]", "abcdefg[]", "abcdefg[0][]", "abcdefg[][]"},
		{"[0]abcdefg", "[]abcdefg", "[0][]abcdefg", "[][]abcdefg"},
		{"abcd[0]efg", "abcd[]efg", "abcd[0][]efg", "abcd[][]efg"},

		// Differently sized inputs walk over the edge of the grid.
		{"[abcdefghijklmnoparstuvzxyz]", "[x]", "[abcdefghijklm][noparstuvzxyz]", "[][x]"},
		{"[abcdefghijklmnoparstuvzxyz]", "[]", "[abcdefghijklm][noparstuvzxyz]", "[][]"},
		{"[x]", "[abcdefghijklmnoparstuvzxyz]", "[][x]", "[abcdefghijklm][noparstuvzxyz]"},
		{"[]", "[abcdefghijklmnoparstuvzxyz]", "[][]", "[abcdefghijklm][noparstuvzxyz]"},
	}

	for _, tt := range tests {
		x, smin, smax := parseSplitInput(tt.inX)
		y, tmin, tmax := parseSplitInput(tt.inY)

		var m myers
		smin0, smax0, tmin0, tmax0 := m.init(ints(x), ints(y), math.MaxInt)
		if smin < smin0 || smax > smax0 {
			t.Fatalf("invalid test case: s outside of valid range: [%v, %v] not in [%v, %v]", smin, smax, smin0, smax0)
		}
		if tmin < tmin0 || tmax > tmax0 {
			t.Fatalf("invalid test case: t outside of valid range: [%v, %v] not in [%v, %v]", tmin, tmax, tmin0, tmax0)
		}
		s0, s1, t0, t1, ok := m.split(smin, smax, tmin, tmax)
		if !ok {
			t.Fatalf("splitting %v, %v failed", tt.inX, tt.inY)
		}

		gotX := renderSplitResult(x, smin, s0, s1, smax)
		gotY := renderSplitResult(y, tmin, t0, t1, tmax)
		if gotX != tt.wantX || gotY != tt.wantY {
			t.Errorf("splitting %v, %v -> %v, %v, want %v, %v", tt.inX, tt.inY, gotX, gotY, tt.wantX, tt.wantY)
		}
		if x[s0:s1] != y[t0:t1] {
			t.Errorf("splitting %v, %v resulted in inconsistent middle: %v != %v", tt.inX, tt.inY, x[s0:s1], y[t0:t1])
		}
	}
}

func TestSplit_largeInputs(t *testing.T) {
	for i := range 10 {
		seed := sha256.Sum256(fmt.Append(nil, i))
		t.Run(fmt.Sprintf("seed=%x", seed), func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewChaCha8(seed))
			x := make([]int, 1<<11-rng.IntN(1<<8))
			for s := range x {
				x[s] = rng.IntN(10)
			}
			y := make([]int, 1<<11-rng.IntN(1<<8))
			for t := range y {
				y[t] = rng.IntN(10)
			}

			var m myers
			smin, smax, tmin, tmax := m.init(x, y, math.MaxInt)
			s0, s1, t0, t1, ok := m.split(smin, smax, tmin, tmax)
			if !ok || !slices.Equal(x[s0:s1], y[t0:t1]) {
				t.Errorf("splitting resulted in non-matching middle, [s0=%d, s1=%d, t0=%d, t1=%d, ok=%v]", s0, s1, t0, t1, ok)
			}
		})
	}
}

func FuzzSplit(f *testing.F) {
	f.Add([]byte("ABCABBA"), []byte("CBABAC"), 3)
	f.Fuzz(func(t *testing.T, a, b []byte, threshold int) {
		x, y := make([]int, len(a)), make([]int, len(b))
		for i, c := range a {
			x[i] = int(c)
		}
		for i, c := range b {
			y[i] = int(c)
		}

		var m myers
		smin, smax, tmin, tmax := m.init(x, y, threshold)
		if smin == smax && tmin == tmax {
			t.Skip("invalid test case: both ranges are empty (e.g. because the inputs are identical)")
		}

		s0, s1, t0, t1, ok := m.split(smin, smax, tmin, tmax)
		if ok && !slices.Equal(x[s0:s1], y[t0:t1]) {
			t.Errorf("found a middle that didn't match: %v vs %v", x[s0:s1], y[t0:t1])
		}
	})
}

func parseSplitInput(in string) (out string, min, max int) {
	var sb strings.Builder
	sb.Grow(len(in) - 2)

	min, max = math.MinInt, math.MaxInt
	offs := 0
	for i, c := range in {
		switch c {
		case '[':
			if min != math.MinInt {
				panic("invalid split input: " + in)
			}
			min = i
			offs++
		case ']':
			if max != math.MaxInt {
				panic("invalid split input: " + in)
			}
			max = i - offs
			offs++
		default:
			sb.WriteRune(c)
		}
	}
	if min == math.MinInt || max == math.MaxInt {
		panic("invalid split input: " + in)
	}
	out = sb.String()
	return
}

func renderSplitResult(in string, min0, max0, min1, max1 int) string {
	var sb strings.Builder
	sb.Grow(len(in) + 4)

	for i := min(min0, 0); i < max(max1+1, len(in)); i++ {
		if min0 == i {
			sb.WriteRune('[')
		}
		if max0 == i {
			sb.WriteRune(']')
		}

		if min1 == i {
			sb.WriteRune('[')
		}
		if max1 == i {
			sb.WriteRune(']')
		}
		if i >= 0 && i < len(in) {
			sb.WriteByte(in[i])
		}

	}
	return sb.String()
}
