// SPDX-License-Identifier: MIT
// File: fingerprint.go
// Role: Canonical encoding and content fingerprints of expression trees.
// Determinism:
//   - The encoding depends only on node content: kind, shape, attributes,
//     payload and children, never on pointer identity or map iteration.
//   - LinearMaps keys are written in sorted order; dense data row-major.
//   - Integers are fixed-width little endian; floats are IEEE-754 bits.

package expr

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// encodingVersion prefixes every encoding; bump it when the layout changes.
const encodingVersion byte = 1

// fingerprintBytes is the number of digest bytes kept in a fingerprint.
const fingerprintBytes = 8

type encoder struct {
	buf bytes.Buffer
	tmp [8]byte
}

func (w *encoder) u8(v uint8) { w.buf.WriteByte(v) }

func (w *encoder) u64(v uint64) {
	binary.LittleEndian.PutUint64(w.tmp[:], v)
	w.buf.Write(w.tmp[:])
}

func (w *encoder) int(v int) { w.u64(uint64(int64(v))) }

func (w *encoder) f64(v float64) { w.u64(math.Float64bits(v)) }

func (w *encoder) str(s string) {
	w.int(len(s))
	w.buf.WriteString(s)
}

func (w *encoder) bool(b bool) {
	if b {
		w.u8(1)
		return
	}
	w.u8(0)
}

func (w *encoder) dense(d *mat.Dense) {
	if d == nil {
		w.bool(false)
		return
	}
	w.bool(true)
	r, c := d.Dims()
	w.int(r)
	w.int(c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			w.f64(d.At(i, j))
		}
	}
}

func (w *encoder) slice(s Slice) {
	w.int(s.Start)
	w.int(s.Stop)
	w.int(s.Step)
}

func (w *encoder) expr(e *Expr) {
	if e == nil {
		w.u8(0)
		return
	}
	w.u8(uint8(e.Kind))
	w.int(e.Shape.Rows)
	w.int(e.Shape.Cols)
	w.u8(uint8(e.Curvature))
	w.u8(uint8(e.Sign))
	w.int(len(e.ArgMonotonicity))
	for _, m := range e.ArgMonotonicity {
		w.u8(uint8(m))
	}

	w.bool(e.LinearMaps != nil)
	keys := make([]string, 0, len(e.LinearMaps))
	for id := range e.LinearMaps {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	w.int(len(keys))
	for _, id := range keys {
		w.str(id)
		w.bool(e.LinearMaps[id].Scalar)
	}

	switch e.Kind {
	case KindVariable:
		w.str(e.VariableID)
	case KindConstant:
		if e.Constant == nil {
			w.bool(false)
			break
		}
		w.bool(true)
		w.f64(e.Constant.Scalar)
		w.dense(e.Constant.Dense)
	case KindIndicator:
		w.u8(uint8(e.Cone))
	case KindProxFunction:
		w.u8(uint8(e.Prox))
	case KindIndex:
		w.slice(e.Key[0])
		w.slice(e.Key[1])
	case KindLinearMap:
		w.dense(e.Operator)
	case KindNormP, KindPower:
		w.f64(e.P)
	case KindAdd, KindMultiply, KindMultiplyElementwise, KindNegate, KindTranspose,
		KindReshape, KindSum, KindHstack, KindVstack, KindAbs, KindUnknown:
	}

	w.int(len(e.Args))
	for _, a := range e.Args {
		w.expr(a)
	}
}

// Encode returns the canonical byte encoding of e.
func Encode(e *Expr) []byte {
	var w encoder
	w.u8(encodingVersion)
	w.expr(e)
	return w.buf.Bytes()
}

// Fingerprint returns a stable hex digest of e's canonical encoding.
// Structurally identical trees always share a fingerprint.
func Fingerprint(e *Expr) string {
	return FingerprintOccurrence(e, 0)
}

// FingerprintOccurrence fingerprints e together with an occurrence ordinal.
// Ordinal 0 equals Fingerprint(e); higher ordinals distinguish repeated,
// structurally identical expressions.
func FingerprintOccurrence(e *Expr, ordinal int) string {
	h := sha256.New()
	h.Write(Encode(e))
	if ordinal > 0 {
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], uint64(ordinal))
		h.Write(tmp[:])
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:fingerprintBytes])
}
