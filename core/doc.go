// SPDX-License-Identifier: MIT

// Package core provides the Problem Graph: a thread-safe bipartite graph
// between the terms of an optimization problem and the variables they
// reference.
//
// The graph G = (F, V, E) has:
//
//   - F: function nodes. Each *Function wraps one expression and is either
//     an objective term or a constraint.
//   - V: variable nodes, identified by variable ID.
//   - E: edges. An *Edge joins one function to one variable and records
//     every occurrence (Instance) of that variable inside the function's
//     expression, together with its shape and scalar-multiple status.
//
// Three indices are kept consistent under every mutation:
//
//	edgesByFunction[f] - edges of a function, insertion order
//	edgesByVariable[v] - edges of a variable, insertion order
//	objTerms           - the subset of F that are objective terms
//
// A variable exists exactly while it has at least one edge; removing its
// last edge drops it from Variables().
//
// Building:
//
//	g, err := core.NewGraphFromProblem(p) // objective ADD split into terms
//	f := core.NewFunction(term, false)
//	err = g.AddFunction(f)                // edges derived from the expression
//
// Rewriting a variable inside one function:
//
//	oldVar, newVar, _ := g.ReplaceEdgeVariable(e, "copy") // under g's lock
//
//	_ = g.RemoveEdge(e)                   // or by hand, single owner only
//	oldVar, newVar, _ = e.ReplaceVariable("copy")
//	_ = g.AddEdge(e)
//
// Reading back:
//
//	p, err := g.Problem()                 // rebuild objective + constraints
//
// Determinism:
//
//	Functions(), ObjTerms(), Variables(), EdgesByFunction() and
//	EdgesByVariable() return insertion order. Rebuilding the same problem
//	always yields the same graph.
//
// Concurrency:
//
//	A single sync.RWMutex guards all indices. Queries return snapshot
//	slices; callers may mutate the graph while iterating a snapshot.
//
// Errors:
//
//	ErrNilFunction, ErrNilExpr, ErrFunctionExists, ErrFunctionNotFound,
//	ErrNilEdge, ErrEdgeExists, ErrEdgeNotFound, ErrEdgeAttached,
//	ErrEmptyVariableID, ErrNoInstances.
package core
