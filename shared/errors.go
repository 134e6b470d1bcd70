// SPDX-License-Identifier: MIT
// Package shared: sentinel error set.
// All methods return these sentinels (possibly wrapped with call-site
// context via %w); tests match them with errors.Is.

package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNilInput is returned when a nil buffer or a nil row is supplied to a loader.
	ErrNilInput = errors.New("shared: nil input")

	// ErrNilVector is returned when a nil *Vector is passed as an operand.
	ErrNilVector = errors.New("shared: nil vector")

	// ErrNilMatrix is returned when a nil *Matrix is passed as an operand.
	ErrNilMatrix = errors.New("shared: nil matrix")

	// ErrShape indicates a non-rectangular 2-D input.
	ErrShape = errors.New("shared: matrix must be rectangular")

	// ErrOutOfRange indicates an index outside [0, length).
	ErrOutOfRange = errors.New("shared: index out of range")

	// ErrOrientationMismatch indicates Row/Column tags that the operation cannot combine,
	// e.g. Add of a row and a column, Dot of two rows, VecMatMul on a column.
	ErrOrientationMismatch = errors.New("shared: orientation mismatch")

	// ErrDimensionMismatch indicates operand lengths that the operation cannot combine.
	ErrDimensionMismatch = errors.New("shared: dimension mismatch")
)

// vectorErrorf wraps err with a uniform "Vector.<method>" context.
func vectorErrorf(method string, err error) error {
	return fmt.Errorf("Vector.%s: %w", method, err)
}

// matrixErrorf wraps err with a uniform "Matrix.<method>" context.
func matrixErrorf(method string, err error) error {
	return fmt.Errorf("Matrix.%s: %w", method, err)
}
