// SPDX-License-Identifier: MIT

package tree

import "errors"

var (
	// ErrMalformed indicates JSON that is neither a matrix nor an operator object,
	// or a matrix that is not rectangular.
	ErrMalformed = errors.New("tree: malformed input")

	// ErrUnknownOperator indicates an operator symbol outside "+", "*", "-", "T".
	ErrUnknownOperator = errors.New("tree: unknown operator")

	// ErrNotOperator is returned by Resolve on a node that is already a leaf.
	ErrNotOperator = errors.New("tree: node is already resolved")
)
