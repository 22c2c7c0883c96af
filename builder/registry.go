// SPDX-License-Identifier: MIT
// Package: proxgraph/builder
//
// registry.go - name-based fixture lookup for command-line use.

package builder

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownFixture indicates that Fixture was given an unregistered name.
var ErrUnknownFixture = errors.New("builder: unknown fixture")

// fixtures maps a fixture name to a single-size factory. size scales every
// dimension of the fixture.
var fixtures = map[string]func(size int) []Constructor{
	"lasso": func(size int) []Constructor {
		return []Constructor{Lasso(2*size, size)}
	},
	"group_lasso": func(size int) []Constructor {
		return []Constructor{GroupLasso(2*size, 4, size)}
	},
	"chain": func(size int) []Constructor {
		return []Constructor{Chain(size, 1)}
	},
	"consensus": func(size int) []Constructor {
		return []Constructor{Consensus(size, 3, 2)}
	},
	"box_lasso": func(size int) []Constructor {
		return []Constructor{Lasso(2*size, size), Box(0, size, -1, 1)}
	},
	"constrained_lasso": func(size int) []Constructor {
		return []Constructor{Lasso(2*size, size), AffineEquality(0, 1, size)}
	},
}

// FixtureNames returns the registered fixture names in sorted order.
func FixtureNames() []string {
	names := make([]string, 0, len(fixtures))
	for name := range fixtures {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Fixture returns the constructors registered under name, sized by size.
func Fixture(name string, size int) ([]Constructor, error) {
	f, ok := fixtures[name]
	if !ok {
		return nil, fmt.Errorf("Fixture %q: %w", name, ErrUnknownFixture)
	}
	if size < MinChainLinks {
		return nil, builderErrorf("Fixture", ErrTooSmall, "size=%d (min=%d)", size, MinChainLinks)
	}

	return f(size), nil
}
