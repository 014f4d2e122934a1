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

// Package impl ties the diff algorithms together.
package impl

import (
	"errors"
	"fmt"

	"znkr.io/delta/internal/budget"
	"znkr.io/delta/internal/config"
	"znkr.io/delta/internal/myers"
	"znkr.io/delta/internal/patience"
	"znkr.io/delta/internal/reindex"
	"znkr.io/delta/internal/rvecs"
)

// Diff compares the contents of x and y and returns result vectors that mark the changes
// necessary to convert from one to the other.
func Diff[T comparable](x, y []T, cfg config.Config) (rx, ry []bool, err error) {
	rx, ry = rvecs.Make(len(x), len(y))

	smin, smax, tmin, tmax := findChangeBounds(x, y)
	if handleTrivialBounds(rx, ry, smin, smax, tmin, tmax) {
		return rx, ry, nil
	}

	x0, y0 := enumerate(x[smin:smax], y[tmin:tmax])
	if err := diffInts(rx[smin:smax], ry[tmin:tmax], x0, y0, cfg); err != nil {
		return nil, nil, err
	}
	return rx, ry, nil
}

// DiffInts is like [Diff] but avoids the conversion of the inputs to integer IDs.
func DiffInts(x, y []int, cfg config.Config) (rx, ry []bool, err error) {
	rx, ry = rvecs.Make(len(x), len(y))

	smin, smax, tmin, tmax := findChangeBounds(x, y)
	if handleTrivialBounds(rx, ry, smin, smax, tmin, tmax) {
		return rx, ry, nil
	}

	if err := diffInts(rx[smin:smax], ry[tmin:tmax], x[smin:smax], y[tmin:tmax], cfg); err != nil {
		return nil, nil, err
	}
	return rx, ry, nil
}

// findChangeBounds returns the upper and lower bounds for the changed portion of the inputs.
func findChangeBounds[T comparable](x, y []T) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	return
}

// handleTrivialBounds handles trivial bounds. It returns true if the bounds are trivial.
func handleTrivialBounds(rx, ry []bool, smin, smax, tmin, tmax int) bool {
	switch {
	case smin != smax && tmin == tmax:
		rvecs.Fill(rx[smin:smax])
		return true
	case smin == smax && tmin != tmax:
		rvecs.Fill(ry[tmin:tmax])
		return true
	case smin == smax && tmin == tmax:
		return true
	default:
		return false
	}
}

// enumerate assigns an integer ID to every distinct element of x and y.
func enumerate[T comparable](x, y []T) (x0, y0 []int) {
	ids := make(map[T]int, len(x))
	buf := make([]int, len(x)+len(y))
	x0, y0 = buf[:len(x):len(x)], buf[len(x):]
	for s, e := range x {
		id, ok := ids[e]
		if !ok {
			id = len(ids)
			ids[e] = id
		}
		x0[s] = id
	}
	for t, e := range y {
		id, ok := ids[e]
		if !ok {
			id = len(ids)
			ids[e] = id
		}
		y0[t] = id
	}
	return x0, y0
}

// diffInts marks the changes between x and y in rx and ry. x and y must not have a common prefix
// or suffix and neither may be empty.
func diffInts(rx, ry []bool, x, y []int, cfg config.Config) error {
	if !inOrder(x, y) {
		// Compare y and x instead and mirror the result.
		return diffInts(ry, rx, y, x, cfg)
	}
	if !cfg.Discard {
		return search(rx, ry, x, y, cfg)
	}

	var r reindex.Reindexer
	x0, y0 := r.Discard(x, y)
	switch {
	case len(x0) == 0:
		// Nothing in common, y0 is empty too.
		rvecs.Fill(rx[:len(x)])
		rvecs.Fill(ry[:len(y)])
		return nil
	case !r.Discarded():
		return search(rx, ry, x, y, cfg)
	}

	rx0, ry0 := rvecs.Make(len(x0), len(y0))
	if err := search(rx0, ry0, x0, y0, cfg); err != nil {
		return err
	}
	r.Reindex(rx0, ry0, rx, ry)
	return nil
}

// search runs the configured algorithm on x and y.
func search(rx, ry []bool, x, y []int, cfg config.Config) error {
	opts := patience.Options{
		FailOnSmallReduction: cfg.FailOnSmallReduction,
		ReductionRatio:       cfg.ReductionRatio,
		MaxPathSteps:         cfg.MaxPathSteps,
	}

	switch cfg.Mode {
	case config.ModePatience:
		return patience.Diff(rx, ry, x, y, opts)

	case config.ModeMyers:
		threshold := budget.StrictThreshold(len(x)+len(y), cfg.DifferenceFloor)
		err := myers.Diff(rx, ry, x, y, threshold)
		if !errors.Is(err, budget.ErrTooBig) {
			return err
		}
		// Too many differences for the linear space algorithm. Patience diff can still find a
		// result if the anchors reduce the problem quickly enough.
		opts.FailOnSmallReduction = true
		if err := patience.Diff(rx, ry, x, y, opts); err != nil {
			return fmt.Errorf("falling back to patience diff: %w", err)
		}
		return nil

	case config.ModeLinear:
		myers.DiffLinear(rx, ry, x, y, budget.LinearThreshold(len(x)+len(y), cfg.DifferenceFloor))
		return nil

	default:
		panic(fmt.Sprintf("unknown algorithm: %v", cfg.Mode))
	}
}

// inOrder reports whether x and y are in canonical order. The order only depends on the lengths of
// x and y and on which elements are equal, the algorithms depend on nothing else. Comparing inputs
// in canonical order makes the result for y and x the mirror image of the result for x and y.
//
// The longer input comes first. For inputs of equal length, the elements of x followed by y and of
// y followed by x are numbered by first occurrence and the smaller sequence of numbers comes first.
// If both are identical, y is a relabeling of x and vice versa, and both orders are canonical.
func inOrder(x, y []int) bool {
	if len(x) != len(y) {
		return len(x) > len(y)
	}
	n := len(x)
	xy, yx := make(map[int]int), make(map[int]int)
	label := func(labels map[int]int, e int) int {
		l, ok := labels[e]
		if !ok {
			l = len(labels)
			labels[e] = l
		}
		return l
	}
	for i := range 2 * n {
		var a, b int
		if i < n {
			a, b = label(xy, x[i]), label(yx, y[i])
		} else {
			a, b = label(xy, y[i-n]), label(yx, x[i-n])
		}
		if a != b {
			return a < b
		}
	}
	return true
}
