// SPDX-License-Identifier: MIT

// Package transform rewrites a Problem Graph into separable sum-of-prox
// form and drives the pass pipeline.
//
// Passes (each mutates a *core.Graph in place and returns how many
// rewrites it performed):
//
//	SeparateObjectiveTerms  - copy variables shared by several objective terms
//	AddNullProx             - give constraint-only variables a constant prox term
//	CombineAffineFunctions  - optional, merge affine terms into an overlapping term
//	MoveEqualityIndicators  - optional, turn prox-friendly ZERO terms into constraints
//
// After SeparateObjectiveTerms and AddNullProx every variable is referenced
// by exactly one objective term.
//
// Pipeline:
//
//	c := transform.NewCompiler(transform.WithLogger(logger))
//	out, err := c.Compile(ctx, problem)
//
// TransformProblem(ctx, p) is the same with default settings. A problem
// without variables is returned unchanged. Optional passes are enabled with
// WithCombineAffineFunctions / WithMoveEqualityIndicators or through
// Config, and always run before separation.
//
// Observability:
//
//	Logging uses log/slog. Each compile opens a "transform.Compile" span
//	with one "transform.Pass" child per pass and records the
//	proxgraph_copies_total, proxgraph_null_prox_total and
//	proxgraph_pass_duration_seconds instruments.
//
// Errors:
//
//	ErrNilGraph, ErrNotSeparable, plus wrapped core and expr errors.
//	Malformed equality indicators are an internal fault and panic with
//	*InvariantError.
package transform
