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

package unique

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		x, y   []int
		xs, ys []int
	}{
		{
			name: "empty",
		},
		{
			name: "no-common-elements",
			x:    []int{1, 2, 3},
			y:    []int{4, 5, 6},
		},
		{
			name: "only-duplicates",
			x:    []int{1, 1, 2, 2},
			y:    []int{1, 2, 2},
		},
		{
			name: "duplicate-in-x",
			x:    []int{1, 2, 3, 2, 4},
			y:    []int{5, 3, 2, 6, 4},
			xs:   []int{2, 4},
			ys:   []int{1, 4},
		},
		{
			name: "duplicate-in-y",
			x:    []int{5, 3, 2, 6, 4},
			y:    []int{1, 2, 3, 2, 4},
			xs:   []int{1, 4},
			ys:   []int{2, 4},
		},
		{
			name: "identical",
			x:    []int{1, 2, 3},
			y:    []int{1, 2, 3},
			xs:   []int{0, 1, 2},
			ys:   []int{0, 1, 2},
		},
		{
			name: "crossing",
			x:    []int{1, 2, 3, 4},
			y:    []int{4, 1, 2, 3},
			xs:   []int{0, 1, 2},
			ys:   []int{1, 2, 3},
		},
		{
			name: "reversed",
			x:    []int{1, 2, 3},
			y:    []int{3, 2, 1},
			xs:   []int{2},
			ys:   []int{0},
		},
		{
			name: "triplicate-in-y",
			x:    []int{7, 8},
			y:    []int{7, 7, 7, 8},
			xs:   []int{1},
			ys:   []int{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs, ys := Match(tt.x, tt.y)
			if diff := cmp.Diff(tt.xs, xs); diff != "" {
				t.Errorf("Match(...) x indices differ [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.ys, ys); diff != "" {
				t.Errorf("Match(...) y indices differ [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestMatch_random(t *testing.T) {
	for i := range 50 {
		seed := sha256.Sum256(fmt.Append(nil, i))
		rng := rand.New(rand.NewChaCha8(seed))
		x := make([]int, rng.IntN(100))
		for s := range x {
			x[s] = rng.IntN(60)
		}
		y := make([]int, rng.IntN(100))
		for t := range y {
			y[t] = rng.IntN(60)
		}

		xs, ys := Match(x, y)
		if len(xs) != len(ys) {
			t.Fatalf("seed %x: mismatched lengths %d and %d", seed, len(xs), len(ys))
		}
		count := func(in []int, e int) int {
			n := 0
			for _, v := range in {
				if v == e {
					n++
				}
			}
			return n
		}
		for i := range xs {
			if x[xs[i]] != y[ys[i]] {
				t.Errorf("seed %x: x[%d] != y[%d]", seed, xs[i], ys[i])
			}
			if count(x, x[xs[i]]) != 1 || count(y, y[ys[i]]) != 1 {
				t.Errorf("seed %x: element %d isn't unique", seed, x[xs[i]])
			}
			if i > 0 && (xs[i-1] >= xs[i] || ys[i-1] >= ys[i]) {
				t.Errorf("seed %x: indices not strictly increasing at %d", seed, i)
			}
		}
		if want := lisLen(x, y); want != len(xs) {
			t.Errorf("seed %x: found %d anchors, want %d", seed, len(xs), want)
		}
	}
}

// lisLen computes the length of the longest common subsequence of the unique elements with a
// quadratic dynamic program.
func lisLen(x, y []int) int {
	counts := make(map[int][2]int)
	for _, e := range x {
		c := counts[e]
		c[0]++
		counts[e] = c
	}
	for _, e := range y {
		c := counts[e]
		c[1]++
		counts[e] = c
	}
	var x0, y0 []int
	for _, e := range x {
		if counts[e] == [2]int{1, 1} {
			x0 = append(x0, e)
		}
	}
	for _, e := range y {
		if counts[e] == [2]int{1, 1} {
			y0 = append(y0, e)
		}
	}
	dp := make([][]int, len(x0)+1)
	for i := range dp {
		dp[i] = make([]int, len(y0)+1)
	}
	for i := len(x0) - 1; i >= 0; i-- {
		for j := len(y0) - 1; j >= 0; j-- {
			if x0[i] == y0[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}
	return dp[0][0]
}
