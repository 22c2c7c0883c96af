// SPDX-License-Identifier: MIT
// Package: proxgraph/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// BuilderOption customizes the behavior of a constructor by mutating a
// builderConfig instance before problem construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the deterministic variable ID generator: idx -> string.
// Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) {
		c.idFn = fn
	}
}

// WithRand provides an explicit RNG for stochastic constructors.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLambda sets the regularization weight factor. Panics unless lambda > 0
// and finite.
func WithLambda(lambda float64) BuilderOption {
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		panic(fmt.Sprintf("builder: WithLambda(%g): must be > 0", lambda))
	}
	return func(c *builderConfig) {
		c.lambda = lambda
	}
}

// WithNoise sets the observation noise standard deviation. Panics on
// negative or non-finite sigma.
func WithNoise(sigma float64) BuilderOption {
	if sigma < 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		panic(fmt.Sprintf("builder: WithNoise(%g): must be >= 0", sigma))
	}
	return func(c *builderConfig) {
		c.noise = sigma
	}
}

// WithDensity sets the probability that a ground-truth group is non-zero.
// Panics outside [0,1].
func WithDensity(p float64) BuilderOption {
	if !(p >= 0 && p <= 1) {
		panic(fmt.Sprintf("builder: WithDensity(%g): must be in [0,1]", p))
	}
	return func(c *builderConfig) {
		c.density = p
	}
}
