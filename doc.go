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

// Package delta computes the differences between two sequences.
//
// The main function is [Diff], which returns a list of [Change] hunks that transform one sequence
// into the other. [TranslateLine] uses such a list to map positions from the first sequence to the
// second. [Edits] returns every individual edit instead.
//
// By default, the patience algorithm is used: elements that appear exactly once in both inputs
// serve as anchors and regions between anchors are compared with the classic O(ND) algorithm by
// Myers. Elements that appear only in one input are removed before the search, they can never be
// matched. Use [Myers] or [Linear] to select the linear space variant of Myers' algorithm instead.
//
// All algorithms bound the amount of work they are willing to do. If the inputs are too large or
// too different, [Diff] returns an error wrapping [ErrTooBig] instead of a partial result.
//
// For trees, see [znkr.io/delta/tree].
package delta
