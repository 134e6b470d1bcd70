// SPDX-License-Identifier: MIT

// Package tree defines the operation tree evaluated by the engine and its
// JSON encoding.
//
// A Node is either a leaf holding a dense matrix or an operator
// (Negate, Transpose, Add, Multiply) over child nodes. A node is resolvable
// when it is an operator and all of its children are leaves; resolving it
// stores the computed matrix and turns it into a leaf.
//
// Input format (one node):
//
//	[[1, 2], [3, 4]]                                  leaf matrix
//	{"operator": "+", "operands": [node, node, ...]}  operator node
//
// Operators: "+" add, "*" multiply, "-" negate, "T" transpose.
//
// Output format:
//
//	{"result": [[...], ...]}  on success
//	{"error": "message"}      on failure
package tree
