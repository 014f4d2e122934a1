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

// Package tree compares two trees and reports the differences as a sequence of node replacements,
// deletions and insertions.
//
// The trees are accessed through [Structure], which allows to compare lightweight (flyweight)
// representations of syntax trees without materializing them. Nodes of the old and the new tree
// may have different types.
//
// The comparison is heuristic: children of two nodes are matched from both ends, the remaining
// children are compared with a short lookahead. The result is not necessarily minimal, but it's
// cheap to compute and tends to produce local changes for local edits.
package tree

// ChildrenDeltaThreshold is the maximum difference in the number of children of two nodes that are
// compared child by child. Nodes with a larger difference are reported as replaced.
const ChildrenDeltaThreshold = 20

// Equality is the result of comparing two nodes deeply.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Equality
type Equality int

const (
	Match    Equality = iota // The nodes and all their descendants are equal
	Unsure                   // The nodes need to be compared child by child
	Mismatch                 // The nodes have the same type but different contents
)

// Structure provides access to a tree.
type Structure[N any] interface {
	// Root returns the root node.
	Root() N

	// Children appends the children of n to buf and returns the result. The returned slice is
	// owned by the caller.
	Children(n N, buf []N) []N

	// StartOffset returns the offset of the first character of n in the text of the tree.
	StartOffset(n N) int

	// EndOffset returns the offset after the last character of n in the text of the tree.
	EndOffset(n N) int

	// Text returns the text of n.
	Text(n N) string
}

// ChildReleaser is an optional interface for a [Structure]. If implemented, ReleaseChildren is
// called exactly once for every slice returned by Children after it's no longer used.
type ChildReleaser[N any] interface {
	ReleaseChildren(children []N)
}

// Comparator compares nodes of the old tree with nodes of the new tree.
type Comparator[O, N any] interface {
	// TypesEqual reports whether o and n are of the same type.
	TypesEqual(o O, n N) bool

	// HashCodesEqual reports whether the leaves o and n have equal contents.
	HashCodesEqual(o O, n N) bool

	// DeepEqual compares two nodes of the same type.
	DeepEqual(o O, n N) Equality
}

// Sink receives the differences between two trees.
type Sink[O, N any] interface {
	NodeReplaced(oldNode O, newNode N)
	NodeDeleted(oldParent, oldNode O)
	NodeInserted(oldParent O, newNode N, pos int)
}

// Diff compares oldTree and newTree and reports the differences to sink in tree order: Changes to
// a node are reported before changes to its children, and changes to the children of a node are
// reported from first to last child.
//
// oldText is the text the offsets of oldTree refer to. For newTree, the text of its root is used.
// Offsets are relative to the start offset of the respective root.
//
// Neither tree is modified.
func Diff[O, N any](oldTree Structure[O], newTree Structure[N], cmp Comparator[O, N], sink Sink[O, N], oldText string) {
	oldRoot, newRoot := oldTree.Root(), newTree.Root()
	d := differ[O, N]{
		old:          oldTree,
		new:          newTree,
		cmp:          cmp,
		oldText:      oldText,
		newText:      newTree.Text(newRoot),
		oldTextStart: oldTree.StartOffset(oldRoot),
		newTextStart: newTree.StartOffset(newRoot),
	}
	d.oldReleaser, _ = oldTree.(ChildReleaser[O])
	d.newReleaser, _ = newTree.(ChildReleaser[N])
	d.build(oldRoot, newRoot, 0, sink)
}

// outcome is the result of a shallow comparison of two nodes.
type outcome int

const (
	equal     outcome = iota // deeply equal
	drillDown                // same type, children need to be compared
	typeOnly                 // same type, different contents
	notEqual                 // different types
)

// matches reports whether two nodes can be paired up.
func (o outcome) matches() bool { return o == equal || o == drillDown }

type differ[O, N any] struct {
	old Structure[O]
	new Structure[N]
	cmp Comparator[O, N]

	oldReleaser ChildReleaser[O]
	newReleaser ChildReleaser[N]

	oldText, newText           string
	oldTextStart, newTextStart int

	// Scratch buffers for children, one per recursion level.
	oldBufs [][]O
	newBufs [][]N
}

// build compares oldNode and newNode and reports the differences to sink. If sink is nil, build
// only checks whether the nodes are equal and returns as early as possible.
func (d *differ[O, N]) build(oldNode O, newNode N, level int, sink Sink[O, N]) bool {
	if level >= len(d.oldBufs) {
		d.oldBufs = append(d.oldBufs, nil)
		d.newBufs = append(d.newBufs, nil)
	}
	oldChildren := d.old.Children(oldNode, d.oldBufs[level][:0])
	newChildren := d.new.Children(newNode, d.newBufs[level][:0])
	d.oldBufs[level], d.newBufs[level] = oldChildren, newChildren
	defer d.release(oldChildren, newChildren)

	oldSize, newSize := len(oldChildren), len(newChildren)
	if abs(oldSize-newSize) > ChildrenDeltaThreshold {
		replaced(sink, oldNode, newNode)
		return false
	}
	if oldSize == 0 && newSize == 0 {
		if !d.cmp.HashCodesEqual(oldNode, newNode) || !d.cmp.TypesEqual(oldNode, newNode) {
			replaced(sink, oldNode, newNode)
			return false
		}
		return true
	}

	minSize := min(oldSize, newSize)
	suffix := d.match(oldChildren, newChildren, oldSize-1, newSize-1, -1, minSize, level)
	// With equal sizes, the pair that stopped the suffix match doesn't need to be compared again.
	maxPrefix := minSize - suffix
	if oldSize == newSize && suffix < minSize {
		maxPrefix--
	}
	prefix := d.match(oldChildren, newChildren, 0, 0, 1, maxPrefix, level)
	if oldSize == newSize && prefix+suffix == oldSize {
		return true
	}
	if sink == nil {
		return false
	}

	d.diffChildren(oldNode, oldChildren, newChildren, prefix, oldSize-suffix, newSize-suffix, level, sink)
	return false
}

// diffChildren reports the differences between oldChildren[prefix:oldEnd] and
// newChildren[prefix:newEnd].
func (d *differ[O, N]) diffChildren(parent O, oldChildren []O, newChildren []N, prefix, oldEnd, newEnd, level int, sink Sink[O, N]) {
	// Pairs matched from the end of the range as a last resort, in reverse order.
	type pair struct {
		s, t int
		o    outcome
	}
	var tail []pair

	// looksEqual compares oldChildren[s] and newChildren[t], indices at or beyond the end of the
	// range denote missing nodes.
	looksEqual := func(s, t int) outcome {
		if s >= oldEnd || t >= newEnd {
			if s >= oldEnd && t >= newEnd {
				return equal
			}
			return notEqual
		}
		return d.looksEqual(oldChildren[s], newChildren[t])
	}

	s, t := prefix, prefix
	for s < oldEnd || t < newEnd {
		switch {
		case s >= oldEnd:
			inserted(sink, parent, newChildren[t], t)
			t++
			continue
		case t >= newEnd:
			deleted(sink, parent, oldChildren[s])
			s++
			continue
		}

		c11 := looksEqual(s, t)
		if c11.matches() {
			if c11 == drillDown {
				d.build(oldChildren[s], newChildren[t], level+1, sink)
			}
			s++
			t++
			continue
		}
		if c11 == typeOnly && looksEqual(s+1, t+1).matches() {
			replaced(sink, oldChildren[s], newChildren[t])
			s++
			t++
			continue
		}

		c21 := looksEqual(s+1, t)
		if looksEqual(s, t+1).matches() && (!c21.matches() || looksEqual(s+1, t+2).matches()) {
			inserted(sink, parent, newChildren[t], t)
			t++
			continue
		}
		if c21.matches() {
			deleted(sink, parent, oldChildren[s])
			s++
			continue
		}
		if looksEqual(s, t+2).matches() {
			inserted(sink, parent, newChildren[t], t)
			t++
			continue
		}
		if looksEqual(s+2, t).matches() {
			deleted(sink, parent, oldChildren[s])
			s++
			continue
		}

		// Last resort: Match pairs from the end of the range and try again with what's left.
		shrunk := false
		for oldEnd > s && newEnd > t {
			c := d.looksEqual(oldChildren[oldEnd-1], newChildren[newEnd-1])
			if !c.matches() {
				break
			}
			oldEnd--
			newEnd--
			tail = append(tail, pair{oldEnd, newEnd, c})
			shrunk = true
		}
		if shrunk {
			continue
		}

		replaced(sink, oldChildren[s], newChildren[t])
		s++
		t++
	}

	for i := len(tail) - 1; i >= 0; i-- {
		if p := tail[i]; p.o == drillDown {
			d.build(oldChildren[p.s], newChildren[p.t], level+1, sink)
		}
	}
}

// match returns the number of consecutive equal children, starting at oldChildren[s] and
// newChildren[t] and moving by step. Nodes that need to be drilled into are only considered
// equal if their texts and their subtrees are equal.
func (d *differ[O, N]) match(oldChildren []O, newChildren []N, s, t, step, maxLen, level int) int {
	n := 0
	for n < maxLen {
		o, nn := oldChildren[s], newChildren[t]
		c := d.looksEqual(o, nn)
		if c == drillDown {
			c = notEqual
			if d.textEqual(o, nn) && d.build(o, nn, level+1, nil) {
				c = equal
			}
		}
		if c != equal {
			break
		}
		s += step
		t += step
		n++
	}
	return n
}

func (d *differ[O, N]) looksEqual(o O, n N) outcome {
	if !d.cmp.TypesEqual(o, n) {
		return notEqual
	}
	switch eq := d.cmp.DeepEqual(o, n); eq {
	case Match:
		return equal
	case Unsure:
		return drillDown
	case Mismatch:
		return typeOnly
	default:
		panic("unknown equality: " + eq.String())
	}
}

// textEqual reports whether o and n span the same text.
func (d *differ[O, N]) textEqual(o O, n N) bool {
	os, oe := d.old.StartOffset(o)-d.oldTextStart, d.old.EndOffset(o)-d.oldTextStart
	ns, ne := d.new.StartOffset(n)-d.newTextStart, d.new.EndOffset(n)-d.newTextStart
	if os < 0 || oe < os || oe > len(d.oldText) || ns < 0 || ne < ns || ne > len(d.newText) {
		return false
	}
	return d.oldText[os:oe] == d.newText[ns:ne]
}

func (d *differ[O, N]) release(oldChildren []O, newChildren []N) {
	if d.oldReleaser != nil {
		d.oldReleaser.ReleaseChildren(oldChildren)
	}
	if d.newReleaser != nil {
		d.newReleaser.ReleaseChildren(newChildren)
	}
}

func replaced[O, N any](sink Sink[O, N], o O, n N) {
	if sink != nil {
		sink.NodeReplaced(o, n)
	}
}

func deleted[O, N any](sink Sink[O, N], parent, o O) {
	if sink != nil {
		sink.NodeDeleted(parent, o)
	}
}

func inserted[O, N any](sink Sink[O, N], parent O, n N, pos int) {
	if sink != nil {
		sink.NodeInserted(parent, n, pos)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
