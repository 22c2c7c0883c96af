// SPDX-License-Identifier: MIT

package transform

import "github.com/katalvlaran/proxgraph/core"

// Pass names, as reported in logs, spans and Stats.
const (
	PassSeparateObjectiveTerms = "separate_objective_terms"
	PassAddNullProx            = "add_null_prox"
	PassCombineAffineFunctions = "combine_affine_functions"
	PassMoveEqualityIndicators = "move_equality_indicators"
)

// Pass is one named graph rewrite. Apply returns the number of rewrites
// it performed.
type Pass struct {
	Name  string
	Apply func(*core.Graph) (int, error)
}

// DefaultPasses returns the mandatory passes in execution order.
func DefaultPasses() []Pass {
	return []Pass{
		{Name: PassSeparateObjectiveTerms, Apply: SeparateObjectiveTerms},
		{Name: PassAddNullProx, Apply: AddNullProx},
	}
}

// OptionalPasses returns the optional passes enabled by cfg, in the order
// they run. They always precede DefaultPasses.
func OptionalPasses(cfg Config) []Pass {
	var out []Pass
	if cfg.CombineAffineFunctions {
		out = append(out, Pass{Name: PassCombineAffineFunctions, Apply: CombineAffineFunctions})
	}
	if cfg.MoveEqualityIndicators {
		out = append(out, Pass{Name: PassMoveEqualityIndicators, Apply: MoveEqualityIndicators})
	}

	return out
}

// Passes returns the full pipeline for cfg.
func Passes(cfg Config) []Pass {
	return append(OptionalPasses(cfg), DefaultPasses()...)
}
