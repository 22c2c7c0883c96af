// SPDX-License-Identifier: MIT

// Package expr defines the expression tree consumed and produced by the
// proxgraph compiler.
//
// An expression is a tree of *Expr nodes drawn from a closed set of kinds
// (ADD, MULTIPLY, VARIABLE, CONSTANT, INDICATOR, PROX_FUNCTION, LINEAR_MAP, …).
// Every node carries:
//
//   - Shape: rows × cols of the value it denotes.
//   - Args: ordered child expressions.
//   - Attributes: curvature, sign, per-argument monotonicity and, for affine
//     nodes, LinearMaps: a map from referenced variable ID to whether that
//     dependency is a pure scalar multiple of the variable.
//
// Construction:
//
//	x, _ := expr.NewVariable(3, 1, "x")
//	t, _ := expr.NewProxFunction(expr.ProxNormL1, x)
//	c, _ := expr.EqConstraint(x, y)
//
// Constructors validate shapes and arities and return *Error values that
// wrap ErrShape, ErrArity or ErrInvalid. They also compute the affine
// scalarity attributes, so trees built here are ready for the transform
// passes without further annotation.
//
// Immutability:
//
//	Nodes are immutable by convention. Nothing in this module mutates a node
//	after construction; rewriting (SubstituteVariable) builds new ancestors
//	and shares untouched subtrees.
//
// Naming:
//
//	Encode produces a canonical, layout-independent byte encoding of a tree;
//	Fingerprint hashes it with SHA-256. Structurally identical trees built
//	independently always yield the same fingerprint.
package expr
