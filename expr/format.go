// SPDX-License-Identifier: MIT
// File: format.go
// Role: Human-readable tree rendering for logs, tests and the CLI.

package expr

import (
	"fmt"
	"strings"
)

// Format renders e as an indented tree, one node per line:
//
//	ADD 1x1
//	  PROX_FUNCTION NORM_1 1x1
//	    VARIABLE x 3x1
func Format(e *Expr) string {
	var b strings.Builder
	formatNode(&b, e, 0)
	return b.String()
}

// FormatProblem renders the objective and each constraint of p.
func FormatProblem(p Problem) string {
	var b strings.Builder
	b.WriteString("objective:\n")
	formatNode(&b, p.Objective, 1)
	b.WriteString("constraints:\n")
	for _, c := range p.Constraints {
		formatNode(&b, c, 1)
	}
	return b.String()
}

func formatNode(b *strings.Builder, e *Expr, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if e == nil {
		b.WriteString("<nil>\n")
		return
	}
	b.WriteString(e.Kind.String())
	if label := nodeLabel(e); label != "" {
		b.WriteByte(' ')
		b.WriteString(label)
	}
	b.WriteByte(' ')
	b.WriteString(e.Shape.String())
	b.WriteByte('\n')
	for _, a := range e.Args {
		formatNode(b, a, depth+1)
	}
}

func nodeLabel(e *Expr) string {
	switch e.Kind {
	case KindVariable:
		return e.VariableID
	case KindConstant:
		if e.Constant == nil {
			return ""
		}
		if e.Constant.Dense != nil {
			return "dense"
		}
		return fmt.Sprintf("%g", e.Constant.Scalar)
	case KindIndicator:
		return e.Cone.String()
	case KindProxFunction:
		return e.Prox.String()
	case KindIndex:
		return fmt.Sprintf("[%d:%d, %d:%d]", e.Key[0].Start, e.Key[0].Stop, e.Key[1].Start, e.Key[1].Stop)
	case KindNormP, KindPower:
		return fmt.Sprintf("p=%g", e.P)
	case KindAdd, KindMultiply, KindMultiplyElementwise, KindNegate, KindTranspose,
		KindReshape, KindLinearMap, KindSum, KindHstack, KindVstack, KindAbs, KindUnknown:
	}
	return ""
}
