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

import "znkr.io/delta/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// Patience selects the patience algorithm. This is the default.
//
// Patience diff anchors the diff on elements that appear exactly once in both inputs and uses
// Myers' classic O(ND) algorithm for regions without such elements. The results are often easier
// to read than a minimal diff, but they aren't necessarily minimal.
func Patience() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Mode = config.ModePatience
		return config.Algorithm
	}
}

// Myers selects the linear space variant of Myers' algorithm, which finds a minimal diff.
//
// If the inputs have more differences than the difference threshold (see
// [DifferenceThreshold]), the comparison falls back to the patience algorithm in
// [FailOnSmallReduction] mode.
func Myers() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Mode = config.ModeMyers
		return config.Algorithm
	}
}

// Linear selects the linear space variant of Myers' algorithm with twice the difference threshold
// of [Myers]. If the threshold is exceeded, everything between the common prefix and suffix is
// reported as changed. This never fails, but the result isn't minimal in that case.
func Linear() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Mode = config.ModeLinear
		return config.Algorithm
	}
}

// NoDiscard disables the removal of elements that only appear in one of the inputs before the
// search.
func NoDiscard() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Discard = false
		return config.Discard
	}
}

// FailOnSmallReduction makes the patience algorithm fail with [ErrTooBig] if recursing on the
// anchors doesn't reduce at least one side of the problem to less than ratio times its original
// size. The ratio must be in (0, 1], the default is 0.5.
func FailOnSmallReduction(ratio float64) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.FailOnSmallReduction = true
		cfg.ReductionRatio = ratio
		return config.FailOnSmallReduction
	}
}

// DifferenceThreshold sets the floor of the difference threshold of the linear space algorithm.
// The threshold is the larger of n and 10 times the square root of the combined input size, n is
// not added to it. The default is 20000.
func DifferenceThreshold(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.DifferenceFloor = max(0, n)
		return config.DifferenceFloor
	}
}

// MaxPathSteps sets the maximum number of path steps the classic O(ND) algorithm records. Every
// step takes 8 bytes. The default is 1<<23.
func MaxPathSteps(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxPathSteps = max(0, n)
		return config.MaxPathSteps
	}
}
