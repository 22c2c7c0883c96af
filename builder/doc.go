// Package builder provides deterministic, composable fixtures that assemble
// expr.Problem values for the proxgraph compiler, its tests and its CLI.
//
// The package offers the following key components:
//
//   - Orchestration:
//     – BuildProblem(bopts, cons...): resolves options, runs constructors in order.
//     – Constructor:       func(*Draft, builderConfig) error.
//     – Draft:             accumulates terms and constraints; one leaf per variable ID.
//   - Fixtures:
//     – Lasso(m, n):             least squares plus a weighted l1 term.
//     – GroupLasso(m, niMax, K): least squares plus K weighted l2 group norms.
//     – Chain(k, n):             k variables linked by squared differences.
//     – Consensus(k, m, n):      k least-squares terms sharing one variable.
//     – Box(idx, n, lo, hi):     bound constraints on a variable.
//     – AffineEquality(idx, m, n): a feasible C x == d constraint.
//     – Fixture(name, size):     name-based lookup used by cmd/proxsep.
//   - Configuration (BuilderOption):
//     – WithSeed / WithRand:     random source for stochastic fixtures.
//     – WithIDScheme & friends:  variable naming (DefaultIDFn, SymbolNumberIDFn, ExcelColumnIDFn).
//     – WithLambda, WithNoise, WithDensity: data knobs.
//
// Guarantees:
//
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Constructors never panic; they return errors wrapping the sentinels in
//     errors.go with the constructor name as context.
//   - Equal options, seed and constructor order give identical problems.
//
// Example:
//
//	p, err := builder.BuildProblem(
//	    []builder.BuilderOption{builder.WithSeed(7)},
//	    builder.Lasso(20, 10),
//	    builder.Box(0, 10, -1, 1),
//	)
package builder
