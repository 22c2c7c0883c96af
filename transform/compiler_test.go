// SPDX-License-Identifier: MIT

package transform_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/proxgraph/builder"
	"github.com/katalvlaran/proxgraph/core"
	"github.com/katalvlaran/proxgraph/expr"
	"github.com/katalvlaran/proxgraph/matrix"
	"github.com/katalvlaran/proxgraph/transform"
)

type CompilerSuite struct {
	suite.Suite
	ctx context.Context
	c   *transform.Compiler
}

func (s *CompilerSuite) SetupTest() {
	s.ctx = context.Background()
	s.c = transform.NewCompiler(transform.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
}

func (s *CompilerSuite) v(id string) *expr.Expr { return mustVar(s.T(), 1, 1, id) }

// Scenario: f1(x) + f2(x) gains one copy and one linking constraint.
func (s *CompilerSuite) TestTwoTermsShareVariable() {
	x := s.v("x")
	f1 := mustProx(s.T(), expr.ProxNormL1, x)
	f2 := mustProx(s.T(), expr.ProxSumSquares, x)

	out, stats, err := s.c.CompileWithStats(s.ctx, expr.Problem{Objective: mustAdd(s.T(), f1, f2)})
	s.Require().NoError(err)

	terms := objective(out)
	s.Require().Len(terms, 2)
	copies := copyVariables(out)
	s.Require().Len(copies, 1)
	s.Equal([]string{copies[0]}, expr.VariableIDs(terms[0]))
	s.Equal([]string{"x"}, expr.VariableIDs(terms[1]))
	s.Require().Len(out.Constraints, 1)
	s.True(out.Constraints[0].IsEqualityIndicator())
	s.Equal([]string{"x", copies[0]}, expr.VariableIDs(out.Constraints[0]))

	s.Equal(1, stats.Copies)
	s.Zero(stats.NullProx)
	s.Equal(1, stats.Blocks)
	requireSeparable(s.T(), out)
}

// Scenario: y only appears in y <= 5 and receives a null prox term.
func (s *CompilerSuite) TestConstraintOnlyVariable() {
	x, y := s.v("x"), s.v("y")
	c, err := expr.LeqConstraint(y, expr.Scalar(5))
	s.Require().NoError(err)
	in := expr.Problem{Objective: mustProx(s.T(), expr.ProxNormL1, x), Constraints: []*expr.Expr{c}}

	out, stats, err := s.c.CompileWithStats(s.ctx, in)
	s.Require().NoError(err)

	s.Equal(in.Constraints, out.Constraints)
	terms := objective(out)
	s.Require().Len(terms, 2)
	s.Equal(expr.ProxConstant, terms[1].Prox)
	s.Equal([]string{"y"}, expr.VariableIDs(terms[1]))
	s.Equal(1, stats.NullProx)
	s.Zero(stats.Copies)
	requireSeparable(s.T(), out)
}

// Scenario: disjoint terms pass through unchanged.
func (s *CompilerSuite) TestDisjointTermsUnchanged() {
	in := expr.Problem{Objective: mustAdd(s.T(),
		mustProx(s.T(), expr.ProxNormL1, s.v("x")),
		mustProx(s.T(), expr.ProxSumSquares, s.v("y")),
	)}

	out, stats, err := s.c.CompileWithStats(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(2, stats.Blocks)
	s.Equal(expr.Fingerprint(in.Objective), expr.Fingerprint(out.Objective))
	s.Equal(expr.FormatProblem(in), expr.FormatProblem(out))
	s.Empty(out.Constraints)
}

// Scenario: three terms on x yield two copies and two constraints.
func (s *CompilerSuite) TestThreeTermsShareVariable() {
	x := s.v("x")
	in := expr.Problem{Objective: mustAdd(s.T(),
		mustProx(s.T(), expr.ProxNormL1, x),
		mustProx(s.T(), expr.ProxNormL2, x),
		mustProx(s.T(), expr.ProxSumSquares, x),
	)}

	out, err := s.c.Compile(s.ctx, in)
	s.Require().NoError(err)
	s.Len(copyVariables(out), 2)
	s.Len(out.Constraints, 2)
	s.Equal(1, termsReferencing(out, "x"))
	requireSeparable(s.T(), out)
}

func (s *CompilerSuite) TestTrivialProblemReturnedUnchanged() {
	in := expr.Problem{Objective: expr.Scalar(3)}
	out, stats, err := s.c.CompileWithStats(s.ctx, in)
	s.Require().NoError(err)
	s.Same(in.Objective, out.Objective)
	s.Empty(stats.Passes)

	out, err = s.c.Compile(s.ctx, expr.Problem{})
	s.Require().NoError(err)
	s.Nil(out.Objective)
}

func (s *CompilerSuite) TestDeterministicAcrossIndependentBuilds() {
	build := func() expr.Problem {
		x := mustVar(s.T(), 3, 1, "x")
		y := mustVar(s.T(), 3, 1, "y")
		ax := mustLinearMap(s.T(), []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, x)
		return expr.Problem{Objective: mustAdd(s.T(),
			mustProx(s.T(), expr.ProxSumSquares, mustAdd(s.T(), ax, y)),
			mustProx(s.T(), expr.ProxNormL1, x),
			mustProx(s.T(), expr.ProxNormL2, y),
			mustProx(s.T(), expr.ProxNonNegative, x),
		)}
	}

	a, err := s.c.Compile(s.ctx, build())
	s.Require().NoError(err)
	b, err := transform.TransformProblem(s.ctx, build())
	s.Require().NoError(err)

	s.Equal(copyVariables(a), copyVariables(b))
	s.Equal(expr.FormatProblem(a), expr.FormatProblem(b))
	s.Equal(expr.Fingerprint(a.Objective), expr.Fingerprint(b.Objective))
	requireSeparable(s.T(), a)
}

func (s *CompilerSuite) TestRecompileProducesNoCopies() {
	x := s.v("x")
	in := expr.Problem{Objective: mustAdd(s.T(),
		mustProx(s.T(), expr.ProxNormL1, x),
		mustProx(s.T(), expr.ProxSumSquares, x),
	)}
	once, err := s.c.Compile(s.ctx, in)
	s.Require().NoError(err)

	twice, stats, err := s.c.CompileWithStats(s.ctx, once)
	s.Require().NoError(err)
	s.Zero(stats.Copies)
	s.Zero(stats.NullProx)
	s.Equal(expr.FormatProblem(once), expr.FormatProblem(twice))
}

func (s *CompilerSuite) TestOptionalPassesRunFirst() {
	x, y := s.v("x"), s.v("y")
	ny, err := expr.Negate(y)
	s.Require().NoError(err)
	in := expr.Problem{Objective: mustAdd(s.T(),
		mustProx(s.T(), expr.ProxZero, mustAdd(s.T(), x, ny)),
		mustProx(s.T(), expr.ProxNormL1, x),
		mustProx(s.T(), expr.ProxNormL1, y),
	)}

	c := transform.NewCompiler(
		transform.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		transform.WithMoveEqualityIndicators(),
	)
	out, stats, err := c.CompileWithStats(s.ctx, in)
	s.Require().NoError(err)

	s.Require().Len(stats.Passes, 3)
	s.Equal(transform.PassMoveEqualityIndicators, stats.Passes[0].Name)
	s.Equal(1, stats.Moved)
	s.Zero(stats.Copies)
	s.Len(objective(out), 2)
	s.Len(out.Constraints, 1)
	requireSeparable(s.T(), out)
}

// Scenario: the combine pass leaves NormL1(x) + Affine(x) as one ADD term,
// which must survive a read-back as a single term.
func (s *CompilerSuite) TestCombinedTermStaysOneSummand() {
	x := s.v("x")
	in := expr.Problem{Objective: mustAdd(s.T(),
		mustProx(s.T(), expr.ProxNormL1, x),
		mustProx(s.T(), expr.ProxAffine, x),
	)}
	c := transform.NewCompiler(
		transform.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		transform.WithCombineAffineFunctions(),
	)

	out, stats, err := c.CompileWithStats(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(1, stats.Combined)
	s.Zero(stats.Copies)
	s.Require().Len(objective(out), 1)
	s.Equal(expr.KindAdd, objective(out)[0].Kind)
	requireSeparable(s.T(), out)

	again, stats, err := s.c.CompileWithStats(s.ctx, out)
	s.Require().NoError(err)
	s.Zero(stats.Copies)
	s.Empty(copyVariables(again))
}

// Scenario: a pipeline that rewrites nothing leaves x shared and fails
// verification.
func (s *CompilerSuite) TestVerifyRejectsUnseparatedOutput() {
	x := s.v("x")
	in := expr.Problem{Objective: mustAdd(s.T(),
		mustProx(s.T(), expr.ProxNormL1, x),
		mustProx(s.T(), expr.ProxSumSquares, x),
	)}
	noop := transform.Pass{Name: "noop", Apply: func(*core.Graph) (int, error) { return 0, nil }}
	c := transform.NewCompiler(
		transform.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		transform.WithPasses(noop),
	)

	out, stats, err := c.CompileWithStats(s.ctx, in)
	s.Require().ErrorIs(err, transform.ErrNotSeparable)
	var se *matrix.SeparabilityError
	s.Require().ErrorAs(err, &se)
	s.Equal("x", se.Variable)
	s.Equal(2, se.Terms)
	s.Equal(expr.Problem{}, out)
	s.Require().Len(stats.Passes, 1)
	s.Equal("noop", stats.Passes[0].Name)

	cfg := transform.DefaultConfig()
	cfg.Verify = false
	unchecked := transform.NewCompiler(
		transform.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		transform.WithConfig(cfg),
		transform.WithPasses(),
	)
	out, err = unchecked.Compile(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(2, termsReferencing(out, "x"))
}

// Scenario: a long chain with combine enabled compiles to separable form.
func (s *CompilerSuite) TestLongChainWithCombine() {
	bp, err := builder.BuildProblem([]builder.BuilderOption{builder.WithSeed(7)}, builder.Chain(3000, 1))
	s.Require().NoError(err)
	c := transform.NewCompiler(
		transform.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		transform.WithCombineAffineFunctions(),
	)

	out, stats, err := c.CompileWithStats(s.ctx, bp)
	s.Require().NoError(err)
	s.Equal(2999, stats.Copies)
	requireSeparable(s.T(), out)
}

func (s *CompilerSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := s.c.Compile(ctx, expr.Problem{Objective: mustProx(s.T(), expr.ProxNormL1, s.v("x"))})
	s.ErrorIs(err, context.Canceled)
}

func TestCompilerSuite(t *testing.T) {
	suite.Run(t, new(CompilerSuite))
}

func BenchmarkTransformProblem_Chain(b *testing.B) {
	p, err := builder.BuildProblem([]builder.BuilderOption{builder.WithSeed(1)}, builder.Chain(4000, 1))
	require.NoError(b, err)
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = transform.TransformProblem(ctx, p)
	}
}

func TestCompiler_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := transform.NewCompiler(transform.WithLogger(logger))

	x := mustVar(t, 1, 1, "x")
	_, err := c.Compile(context.Background(), expr.Problem{Objective: mustAdd(t,
		mustProx(t, expr.ProxNormL1, x),
		mustProx(t, expr.ProxSumSquares, x),
	)})
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, `"msg":"compile started"`)
	assert.Contains(t, logs, `"msg":"compile finished"`)
	assert.Equal(t, 2, strings.Count(logs, `"msg":"pass finished"`))
	assert.Contains(t, logs, `"compile_id"`)
	assert.Contains(t, logs, "PROX_FUNCTION")
}

func TestCompiler_OptionsPanicOnNil(t *testing.T) {
	assert.Panics(t, func() { transform.WithLogger(nil) })
	assert.Panics(t, func() { transform.WithTracerProvider(nil) })
	assert.Panics(t, func() { transform.WithMeterProvider(nil) })
}

func TestCompiler_ConfigOptions(t *testing.T) {
	c := transform.NewCompiler(
		transform.WithConfig(transform.Config{LogLevel: "warn"}),
		transform.WithCombineAffineFunctions(),
	)
	cfg := c.Config()
	assert.True(t, cfg.CombineAffineFunctions)
	assert.False(t, cfg.MoveEqualityIndicators)
	assert.False(t, cfg.Verify)
	assert.Len(t, transform.Passes(cfg), 3)
}
