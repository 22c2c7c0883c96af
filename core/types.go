// SPDX-License-Identifier: MIT

// File: types.go
// Role: Function, Instance, Edge and Graph declarations, sentinel errors and
// the NewGraph constructor.
// Concurrency:
//   - Graph methods are safe for concurrent use. Function and Edge values
//     are not: rewrite an indexed edge with Graph.ReplaceEdgeVariable.
//     Edge.ReplaceVariable on a detached edge is single-owner only, since
//     Function.Expr is shared with the graph's readers.
package core

import (
	"errors"
	"sync"

	"github.com/katalvlaran/proxgraph/expr"
)

// Sentinel errors for Problem Graph operations.
var (
	// ErrNilFunction indicates a nil *Function argument.
	ErrNilFunction = errors.New("core: function is nil")

	// ErrNilExpr indicates a function whose expression is nil.
	ErrNilExpr = errors.New("core: function expression is nil")

	// ErrFunctionExists indicates AddFunction on a function already in the graph.
	ErrFunctionExists = errors.New("core: function already in graph")

	// ErrFunctionNotFound indicates an operation referenced a function not in the graph.
	ErrFunctionNotFound = errors.New("core: function not found")

	// ErrNilEdge indicates a nil *Edge argument.
	ErrNilEdge = errors.New("core: edge is nil")

	// ErrEdgeExists indicates AddEdge on an edge already in the graph.
	ErrEdgeExists = errors.New("core: edge already in graph")

	// ErrEdgeNotFound indicates an operation referenced an edge not in the graph.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrEdgeAttached indicates ReplaceVariable on an edge that is still indexed.
	ErrEdgeAttached = errors.New("core: edge must be removed before rewriting")

	// ErrEmptyVariableID indicates an empty variable ID.
	ErrEmptyVariableID = errors.New("core: variable ID is empty")

	// ErrNoInstances indicates an edge without any variable occurrence.
	ErrNoInstances = errors.New("core: edge has no variable instances")
)

// Function is a function node: one objective term or one constraint.
//
// Identity is by pointer. Two functions with structurally equal expressions
// are distinct nodes. Constraint must not change while the function is in a
// graph; reclassify by RemoveFunction followed by AddFunction.
type Function struct {
	Expr       *expr.Expr
	Constraint bool
}

// NewFunction wraps e as an objective term (constraint=false) or constraint.
func NewFunction(e *expr.Expr, constraint bool) *Function {
	return &Function{Expr: e, Constraint: constraint}
}

// Instance is one occurrence of a variable leaf inside a function expression.
type Instance struct {
	Leaf   *expr.Expr // the VARIABLE node
	Shape  expr.Shape // shape of the variable
	Scalar bool       // function depends on the variable only via a scalar multiple
}

// Edge links a function to one variable it references.
type Edge struct {
	Function  *Function
	Variable  string
	Instances []Instance

	owner *Graph // non-nil while indexed
}

// Graph is the bipartite Problem Graph.
type Graph struct {
	mu sync.RWMutex

	functions       []*Function          // insertion order
	present         map[*Function]uint64 // membership, value is insertion sequence
	nextSeq         uint64
	objTerms        map[*Function]struct{} // objective subset of functions
	edgesByFunction map[*Function][]*Edge
	edgesByVariable map[string][]*Edge
	variables       []string // first-appearance order of live variables
}

// NewGraph returns an empty Problem Graph.
func NewGraph() *Graph {
	return &Graph{
		present:         make(map[*Function]uint64),
		objTerms:        make(map[*Function]struct{}),
		edgesByFunction: make(map[*Function][]*Edge),
		edgesByVariable: make(map[string][]*Edge),
	}
}

// GraphStats is a snapshot of graph counts for diagnostics and logging.
type GraphStats struct {
	Functions   int
	ObjTerms    int
	Constraints int
	Variables   int
	Edges       int
	Instances   int
}
