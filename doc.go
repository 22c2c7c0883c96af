// Package proxgraph compiles convex optimization problems into
// prox-separable form: a sum of terms where every variable appears in
// exactly one term, coupled only through equality constraints.
//
// What is inside?
//
//	expr/      immutable expression trees, shape/curvature checks, fingerprints
//	core/      the bipartite Problem Graph (function nodes ↔ variables)
//	matrix/    gonum incidence matrix, term overlaps, separability check
//	bfs/       variable traversal and independent-block detection
//	transform/ the pass pipeline (separate, null prox, combine, move equalities)
//	builder/   deterministic problem fixtures (lasso, group lasso, chains, ...)
//	cmd/       proxsep, a CLI that compiles fixtures and prints statistics
//
// Quick picture:
//
//	f(x) + g(x)          →   f(x) + g(x') s.t. x == x'
//
//	  f ──┐                    f ── x
//	      x                    g ── x'
//	  g ──┘                    (x == x') constraint
//
// Typical use:
//
//	c := transform.NewCompiler(transform.WithLogger(logger))
//	out, err := c.Compile(ctx, problem)
//
//	go install github.com/katalvlaran/proxgraph/cmd/proxsep@latest
package proxgraph
