// SPDX-License-Identifier: MIT
// Package: proxgraph/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract (strict):
//   - One orchestrator: BuildProblem(bopts, cons...). Creates a Draft, resolves cfg, runs cons in order.
//   - All public factories are declared here, implemented in impl_*.go (single place to read docs).
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical problems.
//   - Safety: never panic; return sentinel errors from constructors.
//
// Hints:
//   - Compose constructors to share variables: every constructor names its
//     variables through cfg.idFn, so Lasso(...) followed by Box(0, ...) bounds
//     the lasso coefficients.
//   - Use WithSeed(...) to freeze stochastic data (Lasso, GroupLasso, Consensus, AffineEquality).

package builder

import (
	"fmt"

	"github.com/katalvlaran/proxgraph/expr"
)

// Constructor applies a deterministic mutation to a Draft using the resolved
// builderConfig. Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Obtain variables through Draft.Variable so that composed constructors
//     share one leaf per ID.
//   - Preserve determinism for the same config and call order.
type Constructor func(d *Draft, cfg builderConfig) error

// BuildProblem resolves the builder configuration from bopts, applies all
// constructors in order to a fresh Draft and returns the assembled problem.
// Any constructor error is wrapped with the context "BuildProblem: %w" and
// returned immediately.
//
// Complexity:
//   - Resolving options: O(len(bopts)).
//   - Applying K constructors: Σ cost of each constructor; wrapper overhead O(K).
//
// Errors:
//   - Wraps constructor errors via %w; callers branch with errors.Is against
//     builder sentinels (ErrTooSmall, ErrNeedRandSource, ...).
func BuildProblem(bopts []BuilderOption, cons ...Constructor) (expr.Problem, error) {
	d := NewDraft()
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return expr.Problem{}, fmt.Errorf("%s: nil constructor at index %d: %w", MethodBuildProblem, i, ErrConstructFailed)
		}
		if err := fn(d, cfg); err != nil {
			return expr.Problem{}, fmt.Errorf("%s: %w", MethodBuildProblem, err)
		}
	}

	return d.Problem()
}

// Lasso returns a Constructor for
//
//	minimize ||A x - b||_2^2 + λ ||x||_1
//
// with A ∈ R^{m×n} and b drawn from cfg.rng (requires WithSeed/WithRand).
// λ = cfg.lambda · ||Aᵀb||_∞. The variable is cfg.idFn(0).
func Lasso(m, n int) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		return buildLasso(d, cfg, m, n)
	}
}

// GroupLasso returns a Constructor for
//
//	minimize ½||A x - b||_2^2 + λ Σ_k ||x_{G_k}||_2
//
// with K groups of random size in [1, niMax], column-normalized A and a
// sparse ground truth (each group non-zero with probability cfg.density).
// λ = cfg.lambda · max_k ||A_{G_k}ᵀ b||_2. The variable is cfg.idFn(0).
func GroupLasso(m, niMax, k int) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		return buildGroupLasso(d, cfg, m, niMax, k)
	}
}

// Chain returns a Constructor for the deterministic smoothing chain
//
//	minimize Σ_{i<k-1} ||x_i - x_{i+1}||_2^2 + ||x_0||_1
//
// over k variables of size n named cfg.idFn(0..k-1). Every interior variable
// appears in two objective terms.
func Chain(k, n int) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		return buildChain(d, cfg, k, n)
	}
}

// Consensus returns a Constructor for
//
//	minimize Σ_{i<k} ||A_i x - b_i||_2^2
//
// where all k terms share the variable cfg.idFn(0) of size n and every A_i is
// m×n random data (requires WithSeed/WithRand).
func Consensus(k, m, n int) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		return buildConsensus(d, cfg, k, m, n)
	}
}

// Box returns a Constructor that adds lo ≤ x ≤ hi for the n-vector
// cfg.idFn(idx). The variable is shared with earlier constructors when its
// shape matches; it may appear in constraints only.
func Box(idx, n int, lo, hi float64) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		return buildBox(d, cfg, idx, n, lo, hi)
	}
}

// AffineEquality returns a Constructor that adds the equality constraint
// C x == d for the n-vector cfg.idFn(idx), with C ∈ R^{m×n} random and d
// consistent with a random feasible point (requires WithSeed/WithRand).
func AffineEquality(idx, m, n int) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		return buildAffineEquality(d, cfg, idx, m, n)
	}
}
