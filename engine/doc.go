// SPDX-License-Identifier: MIT

// Package engine evaluates an operation tree on a fatigue-scheduled worker
// pool.
//
// The Engine owns two shared matrices (left and right operand slots) and one
// fatigue.Scheduler. Run repeatedly picks the leftmost resolvable node of the
// tree, loads its operands, fans one task out per row of the left operand,
// waits for the batch, and resolves the node with the row-major read-back of
// the left slot, until the root is a leaf.
//
// Operators:
//   - Negate, Transpose: exactly one operand.
//   - Add, Multiply: two or more operands, folded left to right.
//
// All shape checks for a node run before any of its tasks is scheduled.
// A row task that fails is logged by its worker; the engine notices through
// the scheduler's failure counter and aborts the run with ErrRowFailed.
package engine
