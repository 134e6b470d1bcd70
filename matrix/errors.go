// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels, wrapped with an operation tag, and tests
// match them via errors.Is. No kernel panics on user-triggered conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for easy grepping.
var (
	// ErrBadShape is returned for negative dimensions or ragged row input.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add with different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required
	// by the numeric policy (FromRows, Set, tolerances).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (or nil tree node) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrArity indicates an operator node with the wrong number of operands.
	ErrArity = errors.New("matrix: wrong number of operands")
)
