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

package delta

import (
	"fmt"

	"znkr.io/delta/internal/budget"
	"znkr.io/delta/internal/config"
	"znkr.io/delta/internal/impl"
	"znkr.io/delta/internal/rvecs"
)

// ErrTooBig is returned if a diff exceeds the work budget of the selected algorithm.
var ErrTooBig = budget.ErrTooBig

// NoLine is returned by [TranslateLine] for lines without a corresponding line.
const NoLine = -1

// Change describes a hunk of consecutive deletions and insertions.
//
// Line0 and Line1 are the positions of the hunk in x and y respectively. A change with Deleted == 0
// is an insertion before x[Line0] and a change with Inserted == 0 is a deletion of
// x[Line0:Line0+Deleted].
type Change struct {
	Line0, Line1      int
	Deleted, Inserted int
}

func (c Change) String() string {
	return fmt.Sprintf("-%d,%d +%d,%d", c.Line0, c.Deleted, c.Line1, c.Inserted)
}

// Diff compares the contents of x and y and returns the changes necessary to convert from one to
// the other. Changes don't overlap and are ordered by position. If x and y are identical, Diff
// returns nil.
//
// The result doesn't depend on the order of the arguments: Diff(y, x) describes the same
// alignment as Diff(x, y) with deletions and insertions swapped, unless the changed regions of x
// and y only differ by a consistent renaming of their elements.
//
// The following options are supported: [Patience], [Myers], [Linear], [NoDiscard],
// [FailOnSmallReduction], [DifferenceThreshold], [MaxPathSteps].
//
// Diff returns an error wrapping [ErrTooBig] if the work budget of the selected algorithm is
// exceeded.
func Diff[T comparable](x, y []T, opts ...Option) ([]Change, error) {
	cfg := config.FromOptions(opts, config.All)
	rx, ry, err := impl.Diff(x, y, cfg)
	if err != nil {
		return nil, fmt.Errorf("diffing %d and %d elements: %w", len(x), len(y), err)
	}
	return changes(rx, ry, len(x), len(y)), nil
}

// DiffInts is like [Diff] for inputs that already are integer IDs.
func DiffInts(x, y []int, opts ...Option) ([]Change, error) {
	cfg := config.FromOptions(opts, config.All)
	rx, ry, err := impl.DiffInts(x, y, cfg)
	if err != nil {
		return nil, fmt.Errorf("diffing %d and %d elements: %w", len(x), len(y), err)
	}
	return changes(rx, ry, len(x), len(y)), nil
}

func changes(rx, ry []bool, n, m int) []Change {
	var b changeBuilder
	rvecs.Replay(rx, ry, n, m, &b)
	return b.changes
}

// changeBuilder collects the runs reported by rvecs.Replay as changes.
type changeBuilder struct {
	s, t    int
	changes []Change
}

func (b *changeBuilder) AddEqual(n int) {
	b.s += n
	b.t += n
}

func (b *changeBuilder) AddChange(deleted, inserted int) {
	b.changes = append(b.changes, Change{
		Line0:    b.s,
		Line1:    b.t,
		Deleted:  deleted,
		Inserted: inserted,
	})
	b.s += deleted
	b.t += inserted
}

// TranslateLine maps line in x to the corresponding line in y using the changes returned by
// [Diff]. If line was deleted, TranslateLine returns [NoLine] or, if approximate is set, the
// position of the replacing hunk in y.
func TranslateLine(changes []Change, line int, approximate bool) int {
	result := line
	for _, c := range changes {
		if line < c.Line0 {
			break
		}
		if line < c.Line0+c.Deleted {
			if approximate {
				return c.Line1
			}
			return NoLine
		}
		result += c.Inserted - c.Deleted
	}
	return result
}

// Apply applies changes to x and returns the result. Inserted elements are taken from y, the
// changes must be the result of comparing x and y.
func Apply[T any](x, y []T, changes []Change) []T {
	n := len(x)
	for _, c := range changes {
		n += c.Inserted - c.Deleted
	}
	out := make([]T, 0, max(n, 0))
	s := 0
	for _, c := range changes {
		if c.Line0 < s || c.Line0+c.Deleted > len(x) || c.Line1+c.Inserted > len(y) {
			panic(fmt.Sprintf("change %v doesn't apply", c))
		}
		out = append(out, x[s:c.Line0]...)
		out = append(out, y[c.Line1:c.Line1+c.Inserted]...)
		s = c.Line0 + c.Deleted
	}
	return append(out, x[s:]...)
}

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match  Op = iota // Two slice elements match
	Delete           // A deletion from an element on the left slice
	Insert           // An insertion of an element from the right side
)

// Edit describes a single edit of a diff.
//
//   - For Match, both X and Y contain the matching element.
//   - For Delete, X contains the deleted element and Y is unset (zero value).
//   - For Insert, Y contains the inserted element and X is unset (zero value).
type Edit[T any] struct {
	Op   Op
	X, Y T
}

// Edits compares the contents of x and y and returns one edit for every element in the input
// slices. If x and y are identical, the output consists of a match edit for every input element.
//
// Edits supports the same options as [Diff].
func Edits[T comparable](x, y []T, opts ...Option) ([]Edit[T], error) {
	cfg := config.FromOptions(opts, config.All)
	rx, ry, err := impl.Diff(x, y, cfg)
	if err != nil {
		return nil, fmt.Errorf("diffing %d and %d elements: %w", len(x), len(y), err)
	}
	return edits(x, y, rx, ry), nil
}

func edits[T any](x, y []T, rx, ry []bool) []Edit[T] {
	n, m := len(x), len(y)
	if n == 0 && m == 0 {
		return nil
	}

	// Every match covers one element of x and y, every other edit only one element.
	eout := make([]Edit[T], 0, (n+m+rvecs.Cost(rx, ry))/2)
	for s, t := 0, 0; s < n || t < m; {
		for s < n && rx[s] {
			eout = append(eout, Edit[T]{
				Op: Delete,
				X:  x[s],
			})
			s++
		}
		for t < m && ry[t] {
			eout = append(eout, Edit[T]{
				Op: Insert,
				Y:  y[t],
			})
			t++
		}
		for s < n && t < m && !rx[s] && !ry[t] {
			eout = append(eout, Edit[T]{
				Op: Match,
				X:  x[s],
				Y:  y[t],
			})
			s++
			t++
		}
	}
	return eout
}
