// SPDX-License-Identifier: MIT

// Package shared - Matrix: an ordered sequence of Vectors presenting a
// row-major or a column-major view.
//
// Purpose:
//   - Load 2-D inputs as row vectors (LoadRowMajor) or column vectors
//     (LoadColumnMajor), replacing the whole sequence as one reference.
//   - Hand out the underlying Vectors (shared, not copied) to row tasks.
//   - Produce detached row-major snapshots regardless of storage orientation.
//
// Concurrency:
//   - The sequence is held behind an atomic.Pointer; loads never mutate the
//     previous sequence, so readers holding it keep a consistent view.
//   - ReadRowMajor read-locks every vector in ascending id order before
//     copying, and releases in reverse.

package shared

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Matrix is a rectangular sequence of same-orientation Vectors.
// The zero value is an empty Row matrix ready for use.
type Matrix struct {
	vectors atomic.Pointer[[]*Vector]
}

// NewMatrix returns an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{}
}

// NewMatrixFrom returns a row-major matrix holding a deep copy of rows.
// Errors: ErrNilInput, ErrShape.
func NewMatrixFrom(rows [][]float64) (*Matrix, error) {
	m := NewMatrix()
	if err := m.LoadRowMajor(rows); err != nil {
		return nil, err
	}
	return m, nil
}

// snapshot returns the current vector sequence (never nil).
func (m *Matrix) snapshot() []*Vector {
	p := m.vectors.Load()
	if p == nil {
		return nil
	}
	return *p
}

// store swaps in a fresh sequence.
func (m *Matrix) store(vs []*Vector) {
	m.vectors.Store(&vs)
}

// LoadRowMajor replaces the contents with one Row vector per input row.
// Implementation:
//   - Stage 1: ValidateRectangular.
//   - Stage 2: build fresh Vectors (each copies its row).
//   - Stage 3: publish the new sequence atomically.
//
// Errors: ErrNilInput, ErrShape. On error the matrix is unchanged.
func (m *Matrix) LoadRowMajor(rows [][]float64) error {
	if _, err := ValidateRectangular(rows); err != nil {
		return matrixErrorf("LoadRowMajor", err)
	}

	vs := make([]*Vector, len(rows))
	for i, r := range rows {
		vs[i] = NewVector(r, Row)
	}
	m.store(vs)

	return nil
}

// LoadColumnMajor replaces the contents with one Column vector per input column.
// A zero-width input such as [[], []] has no columns, so it stores no vectors
// and reads back as the empty matrix: the row count is not retained.
// Errors: ErrNilInput, ErrShape. On error the matrix is unchanged.
// Complexity: O(rows*cols).
func (m *Matrix) LoadColumnMajor(rows [][]float64) error {
	cols, err := ValidateRectangular(rows)
	if err != nil {
		return matrixErrorf("LoadColumnMajor", err)
	}

	vs := make([]*Vector, cols)
	col := make([]float64, len(rows)) // scratch; NewVector copies it
	for j := 0; j < cols; j++ {
		for i := range rows {
			col[i] = rows[i][j]
		}
		vs[j] = NewVector(col, Column)
	}
	m.store(vs)

	return nil
}

// ReadRowMajor returns a detached row-major copy of the matrix.
// Column-stored matrices are transposed back during the copy.
// An empty matrix yields an empty (non-nil) slice.
//
// All vectors are read-locked together (ascending id) so the snapshot is
// consistent with respect to concurrent in-place writers.
func (m *Matrix) ReadRowMajor() [][]float64 {
	vs := m.snapshot()
	if len(vs) == 0 {
		return [][]float64{}
	}

	unlock := readLockAll(vs)
	defer unlock()

	if vs[0].orientation == Row {
		out := make([][]float64, len(vs))
		for i, v := range vs {
			out[i] = make([]float64, len(v.data))
			copy(out[i], v.data)
		}
		return out
	}

	rows := len(vs[0].data)
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, len(vs))
	}
	for j, v := range vs {
		for i := 0; i < rows && i < len(v.data); i++ {
			out[i][j] = v.data[i]
		}
	}
	return out
}

// Get returns the i-th stored vector. The vector is shared: mutating it
// mutates the matrix.
// Errors: ErrOutOfRange.
func (m *Matrix) Get(i int) (*Vector, error) {
	vs := m.snapshot()
	if i < 0 || i >= len(vs) {
		return nil, matrixErrorf(fmt.Sprintf("Get(%d)", i), ErrOutOfRange)
	}
	return vs[i], nil
}

// Len returns the number of stored vectors.
func (m *Matrix) Len() int {
	return len(m.snapshot())
}

// Orientation returns the orientation of vector 0, or Row when empty.
func (m *Matrix) Orientation() Orientation {
	vs := m.snapshot()
	if len(vs) == 0 {
		return Row
	}
	return vs[0].Orientation()
}

// Rows returns the logical row count regardless of storage orientation.
func (m *Matrix) Rows() int {
	vs := m.snapshot()
	if len(vs) == 0 {
		return 0
	}
	if vs[0].Orientation() == Row {
		return len(vs)
	}
	return vs[0].Len()
}

// Cols returns the logical column count regardless of storage orientation.
func (m *Matrix) Cols() int {
	vs := m.snapshot()
	if len(vs) == 0 {
		return 0
	}
	if vs[0].Orientation() == Row {
		return vs[0].Len()
	}
	return len(vs)
}

// String implements fmt.Stringer using the row-major view.
func (m *Matrix) String() string {
	var sb strings.Builder
	for _, row := range m.ReadRowMajor() {
		sb.WriteString(_fmtOpen)
		for j, x := range row {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", x)
		}
		sb.WriteString(_fmtClose + "\n")
	}
	return sb.String()
}
