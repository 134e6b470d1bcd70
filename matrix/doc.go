// SPDX-License-Identifier: MIT

// Package matrix provides a sequential, row-major Dense matrix and the
// linear-algebra kernels the engine offers (Add, Mul, Transpose, Scale),
// plus Eval, which computes an operation tree without touching a worker pool.
//
// What & Why:
//
//	The concurrent engine mutates shared vectors in place under per-vector
//	locks. This package is its lock-free reference: every kernel allocates a
//	fresh result and never mutates operands, so its output is the ground truth
//	used by `lae --verify` and by the engine cross-check tests.
//
// Conventions:
//   - Sentinel errors live in errors.go and are matched with errors.Is.
//   - Validation is centralized in validators.go; kernels fail fast before
//     allocating.
//   - Every kernel has a *Dense fast path over the flat buffer and an
//     interface fallback through At/Set with the same loop order.
//   - Zero rows or zero columns are legal shapes (an empty JSON matrix).
//
// Complexity:
//
//	Add, Scale, Transpose: O(r*c). Mul: O(r*k*c). AllClose: O(r*c).
package matrix
