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

package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/delta"
)

type change struct {
	commitID string
	file     string
	old, new string
}

type variant struct {
	name string
	opts []delta.Option
}

var variants = []variant{
	{"patience", nil},
	{"myers", []delta.Option{delta.Myers()}},
	{"linear", []delta.Option{delta.Linear()}},
	{"no-discard", []delta.Option{delta.NoDiscard()}},
}

// baselineVariant is the name of the results computed with diffmatchpatch.
const baselineVariant = "diffmatchpatch"

type result struct {
	commitID string
	file     string
	variant  string
	N, M     int
	D        int
	tooBig   bool
	duration time.Duration
}

// evaluate diffs the lines of c.old and c.new with every variant and with diffmatchpatch. If
// validate is set, every change list is applied to the old lines and compared to the new lines.
func evaluate(c change, validate bool) ([]result, error) {
	x, y := splitLines(c.old), splitLines(c.new)
	results := make([]result, 0, len(variants)+1)
	var errs []error
	for _, v := range variants {
		start := time.Now()
		changes, err := delta.Diff(x, y, v.opts...)
		duration := time.Since(start)
		r := result{
			commitID: c.commitID,
			file:     c.file,
			variant:  v.name,
			N:        len(x),
			M:        len(y),
			duration: duration,
		}
		switch {
		case errors.Is(err, delta.ErrTooBig):
			r.tooBig = true
		case err != nil:
			return nil, fmt.Errorf("%s: %w", v.name, err)
		}
		for _, ch := range changes {
			r.D += ch.Deleted + ch.Inserted
		}
		results = append(results, r)

		if validate && err == nil {
			if got := delta.Apply(x, y, changes); !slices.Equal(got, y) {
				errs = append(errs, fmt.Errorf("%s: applying %d changes doesn't reproduce the new file", v.name, len(changes)))
			}
		}
	}

	start := time.Now()
	d := baseline(c.old, c.new)
	results = append(results, result{
		commitID: c.commitID,
		file:     c.file,
		variant:  baselineVariant,
		N:        len(x),
		M:        len(y),
		D:        d,
		duration: time.Since(start),
	})
	return results, errors.Join(errs...)
}

// baseline returns the number of deleted and inserted lines diffmatchpatch finds.
func baseline(old, new string) int {
	dmp := diffmatchpatch.New()
	rold, rnew, _ := dmp.DiffLinesToRunes(old, new)
	d := 0
	for _, diff := range dmp.DiffMainRunes(rold, rnew, false) {
		if diff.Type != diffmatchpatch.DiffEqual {
			d += utf8.RuneCountInString(diff.Text)
		}
	}
	return d
}

// splitLines splits s after every newline. A missing final newline yields a last line without
// one.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// skipFile reports whether a file shouldn't be evaluated.
func skipFile(name, old, new string) bool {
	if strings.HasSuffix(name, ".zip") || strings.HasSuffix(name, ".syso") {
		return true
	}
	return strings.IndexByte(old, 0) >= 0 || strings.IndexByte(new, 0) >= 0
}
