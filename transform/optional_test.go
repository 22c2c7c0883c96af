// SPDX-License-Identifier: MIT

package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/proxgraph/expr"
	"github.com/katalvlaran/proxgraph/transform"
)

func TestMaxOverlapFunction(t *testing.T) {
	x := mustVar(t, 1, 1, "x")
	y := mustVar(t, 1, 1, "y")
	z := mustVar(t, 1, 1, "z")
	f := mustProx(t, expr.ProxNormL1, x, y)
	g1 := mustProx(t, expr.ProxNormL1, x)
	g2 := mustProx(t, expr.ProxNormL2, x, y)
	g3 := mustProx(t, expr.ProxSumSquares, y, x)
	lone := mustProx(t, expr.ProxNormL1, z)
	gr := mustGraph(t, expr.Problem{Objective: mustAdd(t, f, g1, g2, g3, lone)})

	terms := gr.ObjTerms()
	best, err := transform.MaxOverlapFunction(gr, terms[0])
	require.NoError(t, err)
	assert.Same(t, terms[2], best, "ties go to the earliest term")

	best, err = transform.MaxOverlapFunction(gr, terms[4])
	require.NoError(t, err)
	assert.Nil(t, best, "no shared variable")
}

func TestCombineAffineFunctions(t *testing.T) {
	x := mustVar(t, 1, 1, "x")
	y := mustVar(t, 1, 1, "y")
	z := mustVar(t, 1, 1, "z")
	aff := mustProx(t, expr.ProxAffine, x)
	h := mustProx(t, expr.ProxNormL1, mustAdd(t, x, y))
	k := mustProx(t, expr.ProxSumSquares, z)
	lonely := mustProx(t, expr.ProxAffine, mustVar(t, 1, 1, "w"))
	g := mustGraph(t, expr.Problem{Objective: mustAdd(t, aff, h, k, lonely)})

	n, err := transform.CombineAffineFunctions(g)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	terms := g.ObjTerms()
	require.Len(t, terms, 3)
	assert.Same(t, k, terms[0].Expr)
	assert.Same(t, lonely, terms[1].Expr)
	merged := terms[2].Expr
	require.Equal(t, expr.KindAdd, merged.Kind)
	assert.Same(t, h, merged.Args[0], "non-affine operand first")
	assert.Same(t, aff, merged.Args[1])
}

func TestIsProxFriendlyConstraint(t *testing.T) {
	x := mustVar(t, 2, 1, "x")
	y := mustVar(t, 2, 1, "y")
	ny, err := expr.Negate(y)
	require.NoError(t, err)

	scalarEq := mustProx(t, expr.ProxZero, mustAdd(t, x, ny))
	linopEq := mustProx(t, expr.ProxZero, mustAdd(t, mustLinearMap(t, []float64{1, 2, 3, 4}, x), ny))
	fx := mustProx(t, expr.ProxNormL1, x)
	fy := mustProx(t, expr.ProxNormL1, y)

	g := mustGraph(t, expr.Problem{Objective: mustAdd(t, scalarEq, fx, fy)})
	assert.True(t, transform.IsProxFriendlyConstraint(g, g.ObjTerms()[0]))
	assert.False(t, transform.IsProxFriendlyConstraint(g, g.ObjTerms()[1]), "not an equality indicator")

	g = mustGraph(t, expr.Problem{Objective: mustAdd(t, linopEq, fx, fy)})
	assert.False(t, transform.IsProxFriendlyConstraint(g, g.ObjTerms()[0]), "shared x under a linear map")

	g = mustGraph(t, expr.Problem{Objective: mustAdd(t, linopEq, fy)})
	assert.True(t, transform.IsProxFriendlyConstraint(g, g.ObjTerms()[0]), "x is not shared")
}

func TestIsProxFriendlyConstraint_PanicsOnMalformedIndicator(t *testing.T) {
	x := mustVar(t, 1, 1, "x")
	y := mustVar(t, 1, 1, "y")
	bad := &expr.Expr{
		Kind:      expr.KindProxFunction,
		Prox:      expr.ProxZero,
		Shape:     expr.ScalarShape,
		Curvature: expr.CurvatureConvex,
		Args:      []*expr.Expr{x, y},
	}
	g := mustGraph(t, expr.Problem{Objective: mustAdd(t, bad, mustProx(t, expr.ProxNormL1, x))})

	defer func() {
		r := recover()
		require.NotNil(t, r)
		ie, ok := r.(*transform.InvariantError)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, "IsProxFriendlyConstraint", ie.Op)
	}()
	transform.IsProxFriendlyConstraint(g, g.ObjTerms()[0])
}

func TestMoveEqualityIndicators(t *testing.T) {
	x := mustVar(t, 1, 1, "x")
	y := mustVar(t, 1, 1, "y")
	ny, err := expr.Negate(y)
	require.NoError(t, err)
	diff := mustAdd(t, x, ny)
	eq := mustProx(t, expr.ProxZero, diff)
	g := mustGraph(t, expr.Problem{Objective: mustAdd(t,
		eq,
		mustProx(t, expr.ProxNormL1, x),
		mustProx(t, expr.ProxNormL1, y),
	)})

	n, err := transform.MoveEqualityIndicators(g)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, g.ObjTerms(), 2)

	cons := g.Constraints()
	require.Len(t, cons, 1)
	assert.Equal(t, expr.KindIndicator, cons[0].Expr.Kind)
	assert.Equal(t, expr.ConeZero, cons[0].Expr.Cone)
	assert.Same(t, diff, cons[0].Expr.Args[0])
}

func TestMoveEqualityIndicators_SingleTermIsNoop(t *testing.T) {
	x := mustVar(t, 1, 1, "x")
	g := mustGraph(t, expr.Problem{Objective: mustProx(t, expr.ProxZero, x)})

	n, err := transform.MoveEqualityIndicators(g)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, g.ObjTerms(), 1)
	assert.Empty(t, g.Constraints())
}
