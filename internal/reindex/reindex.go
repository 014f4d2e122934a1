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

// Package reindex shrinks diff problems by discarding elements that can't be part of any match.
//
// An element of x that doesn't appear anywhere in y (or vice versa) is always a deletion
// (insertion). Removing these elements before the main search reduces the problem size, often
// dramatically for large inputs with many changes, without changing the number of edits.
package reindex

import "slices"

// Reindexer maps between an input and the smaller input that remains after discarding all
// elements that don't appear on the other side.
type Reindexer struct {
	n, m       int
	xidx, yidx []int // original index of every kept element
}

// Discard returns x and y without the elements that don't appear on the other side. Elements of y
// are compared against the already shrunk x.
func (r *Reindexer) Discard(x, y []int) (x0, y0 []int) {
	r.n, r.m = len(x), len(y)
	x0, r.xidx = keep(x, y)
	y0, r.yidx = keep(y, x0)
	return x0, y0
}

// keep returns every element of x that's also in other together with its index in x.
func keep(x, other []int) (kept, idx []int) {
	sorted := slices.Clone(other)
	slices.Sort(sorted)
	for s, e := range x {
		if _, found := slices.BinarySearch(sorted, e); found {
			kept = append(kept, e)
			idx = append(idx, s)
		}
	}
	return kept, idx
}

// Discarded returns true if Discard removed at least one element.
func (r *Reindexer) Discarded() bool {
	return len(r.xidx) != r.n || len(r.yidx) != r.m
}

// Reindex expands the result vectors rx0, ry0 of the shrunk inputs to the result vectors rx, ry of
// the original inputs. Discarded elements are always marked as changed.
func (r *Reindexer) Reindex(rx0, ry0, rx, ry []bool) {
	expand(rx0, rx[:r.n], r.xidx)
	expand(ry0, ry[:r.m], r.yidx)
}

func expand(r0, r []bool, idx []int) {
	// Everything between two kept elements has been discarded.
	prev := 0
	for i, s := range idx {
		for ; prev < s; prev++ {
			r[prev] = true
		}
		r[s] = r0[i]
		prev = s + 1
	}
	for ; prev < len(r); prev++ {
		r[prev] = true
	}
}
