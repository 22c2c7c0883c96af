// SPDX-License-Identifier: MIT

// File: compiler.go
// Role: pipeline driver: builds the graph, runs each pass once, verifies
// separability and rebuilds the problem.
// Determinism:
//   - Output depends only on the input problem and Config.
//
// Concurrency:
//   - A Compiler may be shared; each Compile works on its own graph.
package transform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/proxgraph/bfs"
	"github.com/katalvlaran/proxgraph/core"
	"github.com/katalvlaran/proxgraph/expr"
	"github.com/katalvlaran/proxgraph/matrix"
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("transform: WithLogger(nil)")
	}
	return func(c *Compiler) { c.logger = l }
}

// WithConfig replaces the whole configuration. Options applied after it
// still take effect.
func WithConfig(cfg Config) Option {
	return func(c *Compiler) { c.cfg = cfg }
}

// WithCombineAffineFunctions enables the affine-merge pass.
func WithCombineAffineFunctions() Option {
	return func(c *Compiler) { c.cfg.CombineAffineFunctions = true }
}

// WithMoveEqualityIndicators enables the equality-indicator pass.
func WithMoveEqualityIndicators() Option {
	return func(c *Compiler) { c.cfg.MoveEqualityIndicators = true }
}

// WithPasses replaces the pass pipeline that Config would select. Verify
// still runs afterwards when enabled.
func WithPasses(passes ...Pass) Option {
	return func(c *Compiler) { c.passes = append([]Pass{}, passes...) }
}

// WithTracerProvider sets the trace provider. Panics on nil.
func WithTracerProvider(tp trace.TracerProvider) Option {
	if tp == nil {
		panic("transform: WithTracerProvider(nil)")
	}
	return func(c *Compiler) { c.tracer = tp.Tracer(instrumentationName) }
}

// WithMeterProvider sets the meter provider. Panics on nil.
func WithMeterProvider(mp metric.MeterProvider) Option {
	if mp == nil {
		panic("transform: WithMeterProvider(nil)")
	}
	return func(c *Compiler) { c.meter = mp.Meter(instrumentationName) }
}

// Compiler runs the transform pipeline.
type Compiler struct {
	cfg    Config
	passes []Pass // nil selects Passes(cfg)
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
	inst   instruments
}

// NewCompiler returns a Compiler with DefaultConfig, slog.Default() and
// the global otel providers, then applies opts.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		cfg:    DefaultConfig(),
		logger: slog.Default(),
		tracer: defaultTracer(),
		meter:  defaultMeter(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Config returns the effective configuration.
func (c *Compiler) Config() Config { return c.cfg }

// PassStat reports one pass execution.
type PassStat struct {
	Name     string        `yaml:"name"`
	Changes  int           `yaml:"changes"`
	Duration time.Duration `yaml:"duration"`
}

// Stats summarizes one compile.
type Stats struct {
	CompileID       string     `yaml:"compile_id"`
	FunctionsBefore int        `yaml:"functions_before"`
	FunctionsAfter  int        `yaml:"functions_after"`
	VariablesBefore int        `yaml:"variables_before"`
	VariablesAfter  int        `yaml:"variables_after"`
	Blocks          int        `yaml:"blocks"` // independent variable blocks of the input
	Copies          int        `yaml:"copies"`
	NullProx        int        `yaml:"null_prox"`
	Combined        int        `yaml:"combined"`
	Moved           int        `yaml:"moved"`
	Passes          []PassStat `yaml:"passes"`
}

// TransformProblem compiles p with default settings.
func TransformProblem(ctx context.Context, p expr.Problem) (expr.Problem, error) {
	return NewCompiler().Compile(ctx, p)
}

// Compile transforms p into separable sum-of-prox form.
func (c *Compiler) Compile(ctx context.Context, p expr.Problem) (expr.Problem, error) {
	out, _, err := c.CompileWithStats(ctx, p)
	return out, err
}

// CompileWithStats is Compile that also reports per-pass statistics.
// A problem without variables is returned unchanged. Any error aborts the
// compile; no partial problem is returned.
//
// Errors: ctx.Err(), ErrNotSeparable (wrapping *matrix.SeparabilityError),
// wrapped core and expr errors.
func (c *Compiler) CompileWithStats(ctx context.Context, p expr.Problem) (expr.Problem, *Stats, error) {
	c.inst.init(c.meter, c.logger)

	compileID := uuid.NewString()[:12]
	ctx, span := c.tracer.Start(ctx, "transform.Compile",
		trace.WithAttributes(attribute.String("compile.id", compileID)),
	)
	defer span.End()

	stats := &Stats{CompileID: compileID}
	fail := func(err error) (expr.Problem, *Stats, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("compile failed",
			slog.String("compile_id", compileID),
			slog.String("error", err.Error()),
		)
		return expr.Problem{}, stats, err
	}

	if !p.HasVariables() {
		c.logger.Debug("problem has no variables, returned unchanged",
			slog.String("compile_id", compileID),
		)
		span.SetAttributes(attribute.Bool("compile.trivial", true))
		return p, stats, nil
	}

	start := time.Now()
	g, err := core.NewGraphFromProblem(p)
	if err != nil {
		return fail(fmt.Errorf("Compile: %w", err))
	}
	before := g.Stats()
	stats.FunctionsBefore, stats.VariablesBefore = before.Functions, before.Variables
	blocks, err := bfs.Components(g, bfs.WithContext(ctx))
	if err != nil {
		return fail(fmt.Errorf("Compile: %w", err))
	}
	stats.Blocks = len(blocks)
	span.SetAttributes(
		attribute.Int("graph.functions", before.Functions),
		attribute.Int("graph.variables", before.Variables),
		attribute.Int("graph.blocks", stats.Blocks),
	)
	c.logger.Info("compile started",
		slog.String("compile_id", compileID),
		slog.Int("functions", before.Functions),
		slog.Int("variables", before.Variables),
		slog.Int("edges", before.Edges),
		slog.Int("blocks", stats.Blocks),
	)

	for _, pass := range c.pipeline() {
		if err = ctx.Err(); err != nil {
			return fail(fmt.Errorf("Compile: %w", err))
		}
		var ps PassStat
		ps, err = c.runPass(ctx, compileID, pass, g)
		stats.Passes = append(stats.Passes, ps)
		if err != nil {
			return fail(fmt.Errorf("Compile: %w", err))
		}
		switch pass.Name {
		case PassSeparateObjectiveTerms:
			stats.Copies = ps.Changes
		case PassAddNullProx:
			stats.NullProx = ps.Changes
		case PassCombineAffineFunctions:
			stats.Combined = ps.Changes
		case PassMoveEqualityIndicators:
			stats.Moved = ps.Changes
		}
	}

	if c.cfg.Verify {
		if err = matrix.CheckSeparable(g); err != nil {
			return fail(fmt.Errorf("Compile: %w: %w", ErrNotSeparable, err))
		}
	}

	out, err := g.Problem()
	if err != nil {
		return fail(fmt.Errorf("Compile: %w", err))
	}
	after := g.Stats()
	stats.FunctionsAfter, stats.VariablesAfter = after.Functions, after.Variables

	c.logger.Info("compile finished",
		slog.String("compile_id", compileID),
		slog.Int("functions", after.Functions),
		slog.Int("variables", after.Variables),
		slog.Int("copies", stats.Copies),
		slog.Int("null_prox", stats.NullProx),
		slog.Duration("duration", time.Since(start)),
	)
	if c.logger.Enabled(ctx, slog.LevelDebug) {
		c.logger.Debug("compiled problem",
			slog.String("compile_id", compileID),
			slog.String("tree", expr.FormatProblem(out)),
		)
	}

	return out, stats, nil
}

func (c *Compiler) pipeline() []Pass {
	if c.passes != nil {
		return c.passes
	}

	return Passes(c.cfg)
}

func (c *Compiler) runPass(ctx context.Context, compileID string, p Pass, g *core.Graph) (PassStat, error) {
	ctx, span := c.tracer.Start(ctx, "transform.Pass",
		trace.WithAttributes(
			attribute.String("pass.name", p.Name),
			attribute.String("compile.id", compileID),
		),
	)
	defer span.End()

	start := time.Now()
	n, err := p.Apply(g)
	ps := PassStat{Name: p.Name, Changes: n, Duration: time.Since(start)}
	c.inst.recordPass(ctx, p.Name, n, ps.Duration)
	span.SetAttributes(attribute.Int("pass.changes", n))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ps, fmt.Errorf("%s: %w", p.Name, err)
	}

	st := g.Stats()
	c.logger.Debug("pass finished",
		slog.String("compile_id", compileID),
		slog.String("pass", p.Name),
		slog.Int("changes", n),
		slog.Int("functions", st.Functions),
		slog.Int("variables", st.Variables),
		slog.Duration("duration", ps.Duration),
	)

	return ps, nil
}
