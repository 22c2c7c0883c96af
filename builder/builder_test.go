// SPDX-License-Identifier: MIT

package builder_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/proxgraph/builder"
	"github.com/katalvlaran/proxgraph/core"
	"github.com/katalvlaran/proxgraph/expr"
	"github.com/katalvlaran/proxgraph/matrix"
	"github.com/katalvlaran/proxgraph/transform"
)

func seeded(opts ...builder.BuilderOption) []builder.BuilderOption {
	return append([]builder.BuilderOption{builder.WithSeed(1)}, opts...)
}

func terms(p expr.Problem) []*expr.Expr {
	switch {
	case p.Objective == nil:
		return nil
	case p.Objective.Kind == expr.KindAdd:
		return p.Objective.Args
	default:
		return []*expr.Expr{p.Objective}
	}
}

func TestLasso(t *testing.T) {
	p, err := builder.BuildProblem(seeded(), builder.Lasso(20, 10))
	require.NoError(t, err)

	ts := terms(p)
	require.Len(t, ts, 2)
	assert.Equal(t, expr.ProxSumSquares, ts[0].Prox)
	assert.Equal(t, expr.ProxNormL1, ts[1].Prox)
	assert.Equal(t, []string{"x0"}, expr.VariableIDs(p.Objective))
	assert.Empty(t, p.Constraints)

	g, err := core.NewGraphFromProblem(p)
	require.NoError(t, err)
	edges := g.EdgesByVariable("x0")
	require.Len(t, edges, 2)
	assert.True(t, edges[0].HasLinops(), "A·x is a linear map")
	assert.False(t, edges[1].HasLinops(), "λ·x is a scalar multiple")
}

func TestLassoDeterministic(t *testing.T) {
	a, err := builder.BuildProblem(seeded(), builder.Lasso(8, 5))
	require.NoError(t, err)
	b, err := builder.BuildProblem(seeded(), builder.Lasso(8, 5))
	require.NoError(t, err)
	c, err := builder.BuildProblem([]builder.BuilderOption{builder.WithSeed(2)}, builder.Lasso(8, 5))
	require.NoError(t, err)

	assert.Equal(t, expr.Fingerprint(a.Objective), expr.Fingerprint(b.Objective))
	assert.NotEqual(t, expr.Fingerprint(a.Objective), expr.Fingerprint(c.Objective))
}

func TestGroupLasso(t *testing.T) {
	const k = 5
	p, err := builder.BuildProblem(seeded(), builder.GroupLasso(30, 4, k))
	require.NoError(t, err)

	ts := terms(p)
	require.Len(t, ts, 1+k)
	assert.Equal(t, expr.ProxSumSquares, ts[0].Prox)

	x := ts[0].Args[0].Args[0].Args[0] // SUM_SQUARE(ADD(LINEAR_MAP(x), -b))
	require.Equal(t, expr.KindVariable, x.Kind)

	covered := 0
	prev := 0
	for _, term := range ts[1:] {
		require.Equal(t, expr.ProxNormL2, term.Prox)
		var idx *expr.Expr
		expr.Walk(term, func(e *expr.Expr) bool {
			if e.Kind == expr.KindIndex {
				idx = e
				return false
			}
			return true
		})
		require.NotNil(t, idx)
		rows := idx.Key[0]
		assert.Equal(t, prev, rows.Start, "groups are contiguous")
		assert.GreaterOrEqual(t, rows.Len(), 1)
		assert.LessOrEqual(t, rows.Len(), 4)
		covered += rows.Len()
		prev = rows.Stop
	}
	assert.Equal(t, x.Shape.Rows, covered)
}

func TestChain(t *testing.T) {
	p, err := builder.BuildProblem(nil, builder.Chain(4, 3))
	require.NoError(t, err)
	require.Len(t, terms(p), 4)

	g, err := core.NewGraphFromProblem(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"x0", "x1", "x2", "x3"}, g.Variables())
	assert.Len(t, g.EdgesByVariable("x0"), 2)
	assert.Len(t, g.EdgesByVariable("x1"), 2)
	assert.Len(t, g.EdgesByVariable("x3"), 1)
	assert.ErrorIs(t, matrix.CheckSeparable(g), matrix.ErrNotSeparable)
}

func TestConsensus(t *testing.T) {
	p, err := builder.BuildProblem(seeded(), builder.Consensus(3, 4, 2))
	require.NoError(t, err)

	g, err := core.NewGraphFromProblem(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"x0"}, g.Variables())
	assert.Len(t, g.ObjEdgesByVariable("x0"), 3)
}

func TestComposeSharesVariables(t *testing.T) {
	p, err := builder.BuildProblem(seeded(), builder.Lasso(6, 4), builder.Box(0, 4, -1, 1))
	require.NoError(t, err)
	require.Len(t, p.Constraints, 2)

	ids, byID := expr.VariableInstances(p.Constraints[0])
	require.Equal(t, []string{"x0"}, ids)
	_, objByID := expr.VariableInstances(p.Objective)
	assert.Same(t, objByID["x0"][0], byID["x0"][0], "one leaf per variable ID")
}

func TestBox(t *testing.T) {
	p, err := builder.BuildProblem(nil, builder.Box(3, 2, math.Inf(-1), 5))
	require.NoError(t, err)
	assert.Nil(t, p.Objective)
	require.Len(t, p.Constraints, 1)
	assert.Equal(t, expr.ConeNonNegative, p.Constraints[0].Cone)
	assert.Equal(t, []string{"x3"}, expr.VariableIDs(p.Constraints[0]))
}

func TestAffineEquality(t *testing.T) {
	p, err := builder.BuildProblem(seeded(), builder.AffineEquality(0, 2, 3))
	require.NoError(t, err)
	require.Len(t, p.Constraints, 1)
	assert.True(t, p.Constraints[0].IsEqualityIndicator())
}

func TestIDScheme(t *testing.T) {
	p, err := builder.BuildProblem([]builder.BuilderOption{builder.WithSymbNumb("w")}, builder.Chain(2, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"w0", "w1"}, expr.VariableIDs(p.Objective))
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		opts []builder.BuilderOption
		cons []builder.Constructor
		want error
	}{
		{"lasso without rng", nil, []builder.Constructor{builder.Lasso(4, 2)}, builder.ErrNeedRandSource},
		{"group lasso without rng", nil, []builder.Constructor{builder.GroupLasso(4, 2, 2)}, builder.ErrNeedRandSource},
		{"consensus without rng", nil, []builder.Constructor{builder.Consensus(2, 2, 2)}, builder.ErrNeedRandSource},
		{"equality without rng", nil, []builder.Constructor{builder.AffineEquality(0, 1, 2)}, builder.ErrNeedRandSource},
		{"lasso too small", seeded(), []builder.Constructor{builder.Lasso(0, 2)}, builder.ErrTooSmall},
		{"chain too short", nil, []builder.Constructor{builder.Chain(1, 1)}, builder.ErrTooSmall},
		{"group lasso no groups", seeded(), []builder.Constructor{builder.GroupLasso(4, 2, 0)}, builder.ErrTooSmall},
		{"box bounds", nil, []builder.Constructor{builder.Box(0, 2, 1, -1)}, builder.ErrInvalidBounds},
		{"nil constructor", nil, []builder.Constructor{nil}, builder.ErrConstructFailed},
		{"shape conflict", seeded(), []builder.Constructor{builder.Lasso(4, 3), builder.Box(0, 5, -1, 1)}, builder.ErrVariableConflict},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.BuildProblem(tc.opts, tc.cons...)
			require.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), builder.MethodBuildProblem)
		})
	}
}

func TestFixtures(t *testing.T) {
	names := builder.FixtureNames()
	require.NotEmpty(t, names)
	assert.IsNonDecreasing(t, names)

	c := transform.NewCompiler(transform.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	for _, name := range names {
		name := name
		t.Run(name, func(t *testing.T) {
			cons, err := builder.Fixture(name, 3)
			require.NoError(t, err)
			p, err := builder.BuildProblem(seeded(), cons...)
			require.NoError(t, err)

			out, err := c.Compile(context.Background(), p)
			require.NoError(t, err)
			g, err := core.NewGraphFromProblem(out)
			require.NoError(t, err)
			assert.NoError(t, matrix.CheckSeparable(g))
		})
	}

	_, err := builder.Fixture("nope", 3)
	assert.ErrorIs(t, err, builder.ErrUnknownFixture)
	_, err = builder.Fixture("lasso", 1)
	assert.ErrorIs(t, err, builder.ErrTooSmall)
}
