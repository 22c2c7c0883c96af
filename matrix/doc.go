// SPDX-License-Identifier: MIT

// Package matrix offers a function-by-variable incidence matrix view of a
// core.Graph, backed by gonum's mat.Dense.
//
// Rows follow the graph's function order, columns its variable order, and
// entry (i, j) holds the number of instances of variable j inside function
// i (or 1 with WithBinary). Restricting rows to objective terms
// (WithObjectiveOnly) turns separability into a column property:
//
//	every column of the objective-only incidence has exactly one non-zero.
//
// CheckSeparable verifies that property straight from the graph's variable
// index, without building the dense matrix, and reports the first offending
// variable as a *SeparabilityError wrapping ErrNotSeparable.
//
// Overlaps computes, for one function row, the number of variables it
// shares with every other row as a single matrix-vector product. WithFocus
// keeps that matrix to one function's neighborhood instead of the whole
// graph.
//
// The matrix is a snapshot; later graph mutations are not reflected.
package matrix
