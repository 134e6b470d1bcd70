// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from options.go.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone, FromRows, ToRows: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxNew      = "NewDense" // ctor tag
	ctxFromRows = "FromRows" // ctor tag
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): %w"; the sentinel is preserved for errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols); either may be zero.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (>=0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrBadShape.
//   - Stage 2: allocate a zero-filled buffer and apply the numeric policy.
//
// Behavior highlights:
//   - 0×N and N×0 are legal: an empty JSON matrix is a valid operand.
//
// Errors:
//   - ErrBadShape (negative dimension).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, denseErrorf(ctxNew, rows, cols, ErrBadShape)
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: o.ValidateNaNInf,
	}, nil
}

// newResult allocates a kernel result. Shapes come from validated operands,
// so the error path of NewDense is unreachable here.
func newResult(rows, cols int) *Dense {
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols), validateNaNInf: DefaultValidateNaNInf}
}

// FromRows copies a rectangular 2-D slice into a new Dense.
//
// Implementation:
//   - Stage 1: the width is len(rows[0]); every row must be non-nil and match it.
//   - Stage 2: when the NaN/Inf policy is on, reject non-finite values.
//   - Stage 3: copy row by row into the flat buffer.
//
// Errors:
//   - ErrBadShape (ragged or nil row), ErrNaNInf (policy violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func FromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	c := 0
	if len(rows) > 0 {
		c = len(rows[0])
	}
	m, err := NewDense(len(rows), c, opts...)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if row == nil || len(row) != c {
			return nil, denseErrorf(ctxFromRows, i, len(row), ErrBadShape)
		}
		if m.validateNaNInf {
			for j, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, denseErrorf(ctxFromRows, i, j, ErrNaNInf)
				}
			}
		}
		copy(m.data[i*c:(i+1)*c], row)
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Dense) Shape() (int, int) { return m.r, m.c }

// indexOf validates (i,j) and returns the flat offset.
func (m *Dense) indexOf(method string, i, j int) (int, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, denseErrorf(method, i, j, ErrOutOfRange)
	}
	return i*m.c + j, nil
}

// At returns m[i,j] or ErrOutOfRange.
func (m *Dense) At(i, j int) (float64, error) {
	off, err := m.indexOf(ctxAt, i, j)
	if err != nil {
		return 0, err
	}
	return m.data[off], nil
}

// Set assigns m[i,j] = v.
// Errors: ErrOutOfRange, ErrNaNInf (when the policy is on).
func (m *Dense) Set(i, j int, v float64) error {
	off, err := m.indexOf(ctxSet, i, j)
	if err != nil {
		return err
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, i, j, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy with the same numeric policy.
func (m *Dense) Clone() Matrix {
	cp := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data)), validateNaNInf: m.validateNaNInf}
	copy(cp.data, m.data)

	return cp
}

// ToRows returns a detached 2-D copy. A 0-row matrix yields an empty,
// non-nil slice; an r×0 matrix yields r empty rows.
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := range out {
		out[i] = make([]float64, m.c)
		copy(out[i], m.data[i*m.c:(i+1)*m.c])
	}
	return out
}

// String renders one bracketed row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}
	return sb.String()
}
