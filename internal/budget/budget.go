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

// Package budget defines the work limits of the diff algorithms and the error that's returned when
// they are exceeded.
package budget

import "errors"

// ErrTooBig is returned when a diff exceeds one of its work budgets. It's always safe to retry
// with a different algorithm or to treat the inputs as entirely replaced.
var ErrTooBig = errors.New("inputs too big to diff")

// DefaultDifferenceFloor is the lower bound for the number of differences the linear space
// algorithm is willing to search for.
const DefaultDifferenceFloor = 20_000

// DefaultMaxPathSteps is the maximum number of steps the classic algorithm may record before
// giving up. Every step takes 8 bytes.
const DefaultMaxPathSteps = 1 << 23

// StrictThreshold returns the maximum number of differences the strict linear space algorithm
// searches for before returning ErrTooBig. n is the combined length of both inputs. floor is a
// lower bound for the result, it's not added to the size dependent part.
func StrictThreshold(n, floor int) int {
	return max(floor, 10*isqrt(n))
}

// LinearThreshold returns the threshold for the best effort linear space algorithm. It's more
// generous than StrictThreshold, because exceeding it doesn't fail the diff.
func LinearThreshold(n, floor int) int {
	return 2 * StrictThreshold(n, floor)
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	// Newton's method, starting from a value that's guaranteed to be >= sqrt(n).
	x := n
	for y := (x + 1) / 2; y < x; y = (x + n/x) / 2 {
		x = y
	}
	return x
}
