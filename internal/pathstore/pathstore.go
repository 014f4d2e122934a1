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

// Package pathstore records the paths explored by the classic O(ND) diff algorithm.
//
// Every furthest reaching d-path is stored as a step that references the (d-1)-path it extends. A
// step consists of the edit that leads away from the previous path (a horizontal or vertical edge)
// followed by a run of diagonals. Steps are packed into a single uint64 so that the store is a
// flat slice that can be walked backwards once the end of the edit grid is reached.
//
// The store has a hard cap on the number of steps. Exceeding it fails with budget.ErrTooBig.
package pathstore

import (
	"fmt"

	"znkr.io/delta/internal/budget"
)

// Bit layout of a step:
//
//	63            32 31       30            0
//	┌──────────────┬──────────┬──────────────┐
//	│   prev + 1   │ vertical │  run length  │
//	└──────────────┴──────────┴──────────────┘
const (
	runBits      = 31
	runMask      = 1<<runBits - 1
	verticalBit  = 1 << runBits
	prevShift    = 32
	maxHandle    = 1<<31 - 2
	initialSteps = 64
)

// Store is an append-only list of path steps. The zero value isn't usable, use [New].
type Store struct {
	steps []uint64
	max   int
}

// New returns a store that holds at most maxSteps steps.
func New(maxSteps int) *Store {
	maxSteps = min(maxSteps, maxHandle+1)
	return &Store{
		steps: make([]uint64, 0, min(initialSteps, max(maxSteps, 0))),
		max:   maxSteps,
	}
}

// Len returns the number of steps in the store.
func (p *Store) Len() int { return len(p.steps) }

// Add appends a step and returns a handle for it. A step with prev < 0 is the root of a path: it
// consists only of a run of diagonals starting at (0, 0). Otherwise, the step starts at the end of
// prev, moves one element down (vertical) or right, and then follows run diagonals.
func (p *Store) Add(run int, vertical bool, prev int) (int, error) {
	if len(p.steps) == cap(p.steps) {
		if err := p.grow(); err != nil {
			return -1, err
		}
	}
	if run < 0 || run > runMask {
		return -1, fmt.Errorf("diagonal run of %d elements: %w", run, budget.ErrTooBig)
	}
	step := uint64(run)
	if vertical {
		step |= verticalBit
	}
	if prev >= 0 {
		if prev >= len(p.steps) {
			panic(fmt.Sprintf("invalid handle %d", prev))
		}
		step |= uint64(prev+1) << prevShift
	}
	h := len(p.steps)
	p.steps = append(p.steps, step)
	return h, nil
}

func (p *Store) grow() error {
	if len(p.steps) >= p.max {
		return fmt.Errorf("path store exceeds %d steps: %w", p.max, budget.ErrTooBig)
	}
	c := min(max(2*cap(p.steps), initialSteps), p.max)
	steps := make([]uint64, len(p.steps), c)
	copy(steps, p.steps)
	p.steps = steps
	return nil
}

// Decode walks the path ending in step h backwards and marks every horizontal edge in rx and every
// vertical edge in ry. (s, t) is the end point of step h.
func (p *Store) Decode(h int, rx, ry []bool, s, t int) {
	for {
		step := p.steps[h]
		run := int(step & runMask)
		s -= run
		t -= run
		prev := int(step>>prevShift) - 1
		if prev < 0 {
			break
		}
		if step&verticalBit != 0 {
			t--
			ry[t] = true
		} else {
			s--
			rx[s] = true
		}
		h = prev
	}
	if s != 0 || t != 0 {
		panic(fmt.Sprintf("path doesn't start at (0, 0) but at (%d, %d)", s, t))
	}
}
