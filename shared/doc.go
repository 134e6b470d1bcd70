// SPDX-License-Identifier: MIT

// Package shared provides lockable, mutably-aliased vectors and matrices of
// float64 values that many goroutines may read and write concurrently.
//
// What & Why:
//
//	A Vector owns one buffer plus an Orientation (Row or Column) and guards
//	both with its own sync.RWMutex. A Matrix is an ordered sequence of
//	Vectors that all share one orientation; the sequence is swapped as a
//	single reference on every load, while the Vectors inside it are mutated
//	in place by whoever holds them.
//
// Lock ordering:
//
//	Every Vector receives a monotonically increasing id at construction.
//	Any operation that locks two or more Vectors acquires them in ascending
//	id order and releases them in descending order. The rule lives in one
//	place (lockorder.go) and every multi-vector method goes through it.
//
// Errors:
//
//	ErrNilInput            - nil input buffer or nil row.
//	ErrNilVector           - nil *Vector argument.
//	ErrNilMatrix           - nil *Matrix argument.
//	ErrShape               - non-rectangular input.
//	ErrOutOfRange          - index outside [0, length).
//	ErrOrientationMismatch - Row/Column tags incompatible with the operation.
//	ErrDimensionMismatch   - operand lengths incompatible with the operation.
package shared
