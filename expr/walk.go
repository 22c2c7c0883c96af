// SPDX-License-Identifier: MIT
// File: walk.go
// Role: Traversal and structural substitution.
// Determinism:
//   - Walk is pre-order, arguments left to right.
//   - VariableIDs / VariableInstances report IDs in first-seen order.

package expr

// Walk visits e and its descendants in pre-order. When fn returns false the
// children of the current node are skipped.
func Walk(e *Expr, fn func(*Expr) bool) {
	if e == nil {
		return
	}
	if !fn(e) {
		return
	}
	for _, a := range e.Args {
		Walk(a, fn)
	}
}

// HasVariables reports whether e references at least one variable.
func HasVariables(e *Expr) bool {
	found := false
	Walk(e, func(n *Expr) bool {
		if n.Kind == KindVariable {
			found = true
		}
		return !found
	})
	return found
}

// VariableInstances returns every VARIABLE leaf of e grouped by ID. ids lists
// the distinct IDs in first-seen (pre-order) order; leaves under linear maps
// and other composed operators are included.
func VariableInstances(e *Expr) (ids []string, byID map[string][]*Expr) {
	byID = make(map[string][]*Expr)
	Walk(e, func(n *Expr) bool {
		if n.Kind != KindVariable {
			return true
		}
		if _, seen := byID[n.VariableID]; !seen {
			ids = append(ids, n.VariableID)
		}
		byID[n.VariableID] = append(byID[n.VariableID], n)
		return false
	})
	return ids, byID
}

// VariableIDs returns the distinct variable IDs of e in first-seen order.
func VariableIDs(e *Expr) []string {
	ids, _ := VariableInstances(e)
	return ids
}

// SubstituteVariable returns e with every VARIABLE leaf named oldID replaced
// by leaf. The input tree is never modified: subtrees without an occurrence
// are shared with e, every ancestor of a replaced leaf is a fresh node whose
// LinearMaps entry for oldID is moved to leaf's ID. When e does not
// reference oldID, e itself is returned.
func SubstituteVariable(e *Expr, oldID string, leaf *Expr) *Expr {
	if e == nil || leaf == nil {
		return e
	}
	if e.Kind == KindVariable {
		if e.VariableID == oldID {
			return leaf
		}
		return e
	}

	var args []*Expr
	for i, a := range e.Args {
		na := SubstituteVariable(a, oldID, leaf)
		if na == a && args == nil {
			continue
		}
		if args == nil {
			args = make([]*Expr, len(e.Args))
			copy(args, e.Args[:i])
		}
		args[i] = na
	}
	if args == nil {
		return e
	}

	cp := *e
	cp.Args = args
	if e.ArgMonotonicity != nil {
		cp.ArgMonotonicity = append([]Monotonicity(nil), e.ArgMonotonicity...)
	}
	cp.LinearMaps = renameLinearMap(e.LinearMaps, oldID, leaf.VariableID)
	return &cp
}

// renameLinearMap copies m, moving the entry for from onto to (AND-ed with
// any existing entry for to).
func renameLinearMap(m map[string]LinearMapInfo, from, to string) map[string]LinearMapInfo {
	if m == nil {
		return nil
	}
	out := make(map[string]LinearMapInfo, len(m))
	for id, info := range m {
		if id == from {
			continue
		}
		out[id] = info
	}
	if info, ok := m[from]; ok {
		if prev, exists := out[to]; exists {
			info.Scalar = info.Scalar && prev.Scalar
		}
		out[to] = info
	}
	return out
}
