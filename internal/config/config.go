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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// delta.Option.
package config

import "znkr.io/delta/internal/budget"

// Mode selects the algorithm used for the main search.
type Mode int

const (
	// Recursively anchor the diff on elements that are unique in both inputs and fall back to the
	// classic O(ND) algorithm for regions without anchors.
	ModePatience Mode = iota

	// Use the linear space variant of Myers' algorithm. If the inputs are too different, fall back
	// to ModePatience with FailOnSmallReduction.
	ModeMyers

	// Use the linear space variant of Myers' algorithm with a generous difference threshold. If
	// the threshold is exceeded, the affected region is reported as changed in its entirety.
	ModeLinear
)

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Diff algorithm.
	Mode Mode

	// If set, elements that don't appear in the other input are removed before the main search.
	Discard bool

	// If set, the patience algorithm fails with budget.ErrTooBig if recursion doesn't shrink the
	// problem below ReductionRatio of its initial size.
	FailOnSmallReduction bool
	ReductionRatio       float64

	// Lower bound for the number of differences the linear space algorithm searches for.
	DifferenceFloor int

	// Maximum number of steps stored by the classic algorithm.
	MaxPathSteps int
}

// Default is the default configuration.
var Default = Config{
	Mode:                 ModePatience,
	Discard:              true,
	FailOnSmallReduction: false,
	ReductionRatio:       0.5,
	DifferenceFloor:      budget.DefaultDifferenceFloor,
	MaxPathSteps:         budget.DefaultMaxPathSteps,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Algorithm Flag = 1 << iota
	Discard
	FailOnSmallReduction
	DifferenceFloor
	MaxPathSteps

	All = Algorithm | Discard | FailOnSmallReduction | DifferenceFloor | MaxPathSteps
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	if r := cfg.ReductionRatio; !(r > 0 && r <= 1) {
		panic("reduction ratio must be in (0, 1]")
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Algorithm:
		return "delta.Patience, delta.Myers, or delta.Linear"
	case Discard:
		return "delta.NoDiscard"
	case FailOnSmallReduction:
		return "delta.FailOnSmallReduction"
	case DifferenceFloor:
		return "delta.DifferenceThreshold"
	case MaxPathSteps:
		return "delta.MaxPathSteps"
	default:
		panic("never reached")
	}
}
