// SPDX-License-Identifier: MIT
// Package: proxgraph/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • idFn    = DefaultIDFn  ("x0","x1",...)
//   • rng     = nil          (stochastic constructors return ErrNeedRandSource)
//   • lambda  = 0.1          (regularization weight, scaled by the data)
//   • noise   = sqrt(0.001)  (observation noise stdev)
//   • density = 0.1          (probability a group of the ground truth is non-zero)

package builder

import (
	"math"
	"math/rand"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	idFn    IDFn
	rng     *rand.Rand
	lambda  float64 // >0
	noise   float64 // >=0
	density float64 // in [0,1]
}

const (
	defaultLambda  = 0.1
	defaultDensity = 0.1
)

var defaultNoise = math.Sqrt(0.001)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (later overrides earlier).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:    DefaultIDFn,
		lambda:  defaultLambda,
		noise:   defaultNoise,
		density: defaultDensity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
