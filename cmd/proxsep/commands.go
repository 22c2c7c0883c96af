// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/proxgraph/builder"
	"github.com/katalvlaran/proxgraph/expr"
	"github.com/katalvlaran/proxgraph/transform"
)

// compileFlags holds the flags of the compile command.
type compileFlags struct {
	configPath string
	fixture    string
	size       int
	seed       int64
	combine    bool
	moveEq     bool
	noVerify   bool
	trace      bool
	metrics    bool
	logJSON    bool
	quiet      bool
}

// newRootCmd assembles the command tree. Command output goes to out,
// logs go to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "proxsep",
		Short:        "Compile convex problems into prox-separable form",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(newFixturesCmd(), newCompileCmd())

	return root
}

func newFixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "List the built-in problem fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range builder.FixtureNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newCompileCmd() *cobra.Command {
	f := &compileFlags{}
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Build a fixture and run the separation pipeline on it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompile(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML pipeline config (missing file uses defaults)")
	fl.StringVar(&f.fixture, "fixture", "lasso", "fixture name: "+strings.Join(builder.FixtureNames(), ", "))
	fl.IntVar(&f.size, "size", 4, "fixture size")
	fl.Int64Var(&f.seed, "seed", 0, "random seed for stochastic fixtures")
	fl.BoolVar(&f.combine, "combine", false, "enable the affine-merge pass")
	fl.BoolVar(&f.moveEq, "move-equality", false, "enable the equality-indicator pass")
	fl.BoolVar(&f.noVerify, "no-verify", false, "skip the separability check")
	fl.BoolVar(&f.trace, "trace", false, "export spans to stdout")
	fl.BoolVar(&f.metrics, "metrics", false, "export metrics to stdout")
	fl.BoolVar(&f.logJSON, "log-json", false, "emit JSON logs")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "print statistics only")

	return cmd
}

// resolveConfig loads the config file and applies explicitly set flags.
func resolveConfig(cmd *cobra.Command, f *compileFlags) (transform.Config, error) {
	cfg, err := transform.LoadConfig(f.configPath)
	if err != nil {
		return transform.Config{}, err
	}
	fl := cmd.Flags()
	if fl.Changed("combine") {
		cfg.CombineAffineFunctions = f.combine
	}
	if fl.Changed("move-equality") {
		cfg.MoveEqualityIndicators = f.moveEq
	}
	if fl.Changed("no-verify") {
		cfg.Verify = !f.noVerify
	}

	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, level slog.Level, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func runCompile(cmd *cobra.Command, f *compileFlags) (err error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.SlogLevel(), f.logJSON)

	tel, err := setupTelemetry(out, f.trace, f.metrics)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	defer func() {
		if serr := tel.shutdown(ctx); serr != nil && err == nil {
			err = fmt.Errorf("compile: telemetry shutdown: %w", serr)
		}
	}()

	cons, err := builder.Fixture(f.fixture, f.size)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	p, err := builder.BuildProblem([]builder.BuilderOption{builder.WithSeed(f.seed)}, cons...)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	c := transform.NewCompiler(
		transform.WithConfig(cfg),
		transform.WithLogger(logger),
		transform.WithTracerProvider(tel.tracerProvider),
		transform.WithMeterProvider(tel.meterProvider),
	)
	res, stats, err := c.CompileWithStats(ctx, p)
	if err != nil {
		return fmt.Errorf("compile %s: %w", f.fixture, err)
	}

	if !f.quiet {
		fmt.Fprint(out, expr.FormatProblem(res))
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(stats); err != nil {
		return fmt.Errorf("compile: encode stats: %w", err)
	}

	return enc.Close()
}
