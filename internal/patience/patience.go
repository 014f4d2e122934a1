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

// Package patience implements the patience diff algorithm.
//
// Patience diff anchors the diff on elements that appear exactly once in both inputs and recurses
// into the regions between the anchors. Regions without any anchors are solved with the classic
// O(ND) algorithm from package editgraph. The anchors tend to be lines that carry meaning (e.g.
// function signatures) which makes patience diffs easier to read than plain shortest edit scripts.
// The result isn't necessarily minimal.
//
// References:
//
//   - Bram Cohen, "Patience Diff Advantages" (2010)
//   - Thomas G. Szymanski, "A Special Case of the Maximal Common Subsequence Problem" (1975)
package patience

import (
	"fmt"

	"znkr.io/delta/internal/budget"
	"znkr.io/delta/internal/editgraph"
	"znkr.io/delta/internal/unique"
)

// graceDepth is the recursion depth from which on the size reduction is checked if
// Options.FailOnSmallReduction is set. Classic fallbacks above this depth are checked too.
const graceDepth = 2

// Options control the patience algorithm.
type Options struct {
	// If set, Diff fails with budget.ErrTooBig if the recursion doesn't make progress. Progress
	// means that at least one side of a range is smaller than ReductionRatio times the size of the
	// inputs.
	FailOnSmallReduction bool
	ReductionRatio       float64

	// Maximum number of path steps the classic algorithm may use.
	MaxPathSteps int
}

// Diff computes a patience diff of x and y and marks deleted elements in rx and inserted elements
// in ry. rx and ry must have at least len(x) and len(y) elements respectively and must not have
// any elements marked.
//
// If Diff returns an error, the contents of rx and ry are undefined.
func Diff(rx, ry []bool, x, y []int, opts Options) error {
	p := patience{
		x:    x,
		y:    y,
		rx:   rx,
		ry:   ry,
		opts: opts,
	}
	return p.diff(0, len(x), 0, len(y), 0)
}

type patience struct {
	x, y   []int
	rx, ry []bool
	opts   Options
}

func (p *patience) diff(smin, smax, tmin, tmax, depth int) error {
	x, y := p.x, p.y

	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	switch {
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			p.ry[t] = true
		}
		return nil
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			p.rx[s] = true
		}
		return nil
	}

	if depth == graceDepth {
		if err := p.checkReduction(smax-smin, tmax-tmin); err != nil {
			return err
		}
	}

	xs, ys := unique.Match(x[smin:smax], y[tmin:tmax])
	if xs == nil {
		if depth < graceDepth {
			if err := p.checkReduction(smax-smin, tmax-tmin); err != nil {
				return err
			}
		}
		return editgraph.Diff(p.rx[smin:smax], p.ry[tmin:tmax], x[smin:smax], y[tmin:tmax], p.opts.MaxPathSteps)
	}

	s, t := smin, tmin
	for i := range xs {
		s1, t1 := smin+xs[i], tmin+ys[i]
		if s < s1 || t < t1 {
			if err := p.diff(s, s1, t, t1, depth+1); err != nil {
				return err
			}
		}
		s, t = s1+1, t1+1
	}
	if s < smax || t < tmax {
		return p.diff(s, smax, t, tmax, depth+1)
	}
	return nil
}

// checkReduction fails if neither side of a range of n and m elements is smaller than the
// reduction ratio allows.
func (p *patience) checkReduction(n, m int) error {
	if !p.opts.FailOnSmallReduction {
		return nil
	}
	r := p.opts.ReductionRatio
	if float64(n) < r*float64(len(p.x)) || float64(m) < r*float64(len(p.y)) {
		return nil
	}
	return fmt.Errorf("patience diff reduced %d and %d elements only to %d and %d: %w", len(p.x), len(p.y), n, m, budget.ErrTooBig)
}
