// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for graph→matrix adapters.
//
// Defaults: all function rows and variable columns, entries count instances.
package matrix

import "github.com/katalvlaran/proxgraph/core"

const (
	// DefaultObjectiveOnly restricts rows to objective terms when true.
	DefaultObjectiveOnly = false

	// DefaultBinary writes 1 instead of the instance count when true.
	DefaultBinary = false
)

// Options holds adapter settings. Construct via Option functions.
type Options struct {
	objectiveOnly bool
	binary        bool
	focus         *core.Function
}

// Option mutates Options.
type Option func(*Options)

// WithObjectiveOnly builds rows for objective terms only.
func WithObjectiveOnly() Option {
	return func(o *Options) { o.objectiveOnly = true }
}

// WithBinary writes 1 for every incident (function, variable) pair.
func WithBinary() Option {
	return func(o *Options) { o.binary = true }
}

// WithFocus restricts the matrix to the neighborhood of f: rows are f
// followed by every function sharing a variable with f, columns are f's
// variables. Its size no longer depends on the whole graph. Panics on nil.
func WithFocus(f *core.Function) Option {
	if f == nil {
		panic("matrix: WithFocus(nil)")
	}
	return func(o *Options) { o.focus = f }
}

func gatherOptions(opts ...Option) Options {
	o := Options{objectiveOnly: DefaultObjectiveOnly, binary: DefaultBinary}
	for _, fn := range opts {
		if fn == nil {
			panic("matrix: nil Option")
		}
		fn(&o)
	}

	return o
}
