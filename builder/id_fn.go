// Package builder provides the ID schemes used to name generated variables.
package builder

import (
	"fmt"
	"strconv"
)

// IDFn generates a variable identifier from its zero-based index.
// It must be a pure, deterministic function.
type IDFn func(idx int) string

// DefaultIDFn returns "x" + decimal idx, e.g. 0→"x0", 42→"x42".
func DefaultIDFn(idx int) string {
	return "x" + strconv.Itoa(idx)
}

// SymbolNumberIDFn returns prefix + decimal index, e.g. "v0", "v1", ...
// Panics if idx < 0.
func SymbolNumberIDFn(prefix string) IDFn {
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("SymbolNumberIDFn: idx must be ≥ 0, got %d", idx))
		}
		return prefix + strconv.Itoa(idx)
	}
}

// ExcelColumnIDFn returns the lowercase column-style name for idx,
// e.g. 0→"a", 25→"z", 26→"aa". Panics if idx < 0.
func ExcelColumnIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnIDFn: idx must be ≥ 0, got %d", idx))
	}
	var runes []rune
	for i := idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('a'+(i%26)))
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// WithSymbNumb sets the ID scheme to SymbolNumberIDFn(prefix).
func WithSymbNumb(prefix string) BuilderOption {
	return WithIDScheme(SymbolNumberIDFn(prefix))
}

// WithDefaultIDs resets the ID scheme to DefaultIDFn.
func WithDefaultIDs() BuilderOption {
	return WithIDScheme(DefaultIDFn)
}

// WithExcelColumnIDs sets the ID scheme to ExcelColumnIDFn.
func WithExcelColumnIDs() BuilderOption {
	return WithIDScheme(ExcelColumnIDFn)
}
