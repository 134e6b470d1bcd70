// SPDX-License-Identifier: MIT

package engine

import "errors"

var (
	// ErrInvalidTree indicates a nil tree, or a tree with no resolvable node
	// left while the root is still an operator.
	ErrInvalidTree = errors.New("engine: invalid operation tree")

	// ErrArity indicates an operator with the wrong number of operands.
	ErrArity = errors.New("engine: wrong number of operands")

	// ErrShapeMismatch indicates operands whose shapes are incompatible with
	// the operator.
	ErrShapeMismatch = errors.New("engine: operand shape mismatch")

	// ErrRowFailed indicates that at least one row task of a batch failed.
	ErrRowFailed = errors.New("engine: row task failed")

	// ErrClosed indicates use of an engine after Close.
	ErrClosed = errors.New("engine: closed")
)
