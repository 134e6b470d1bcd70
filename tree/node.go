// SPDX-License-Identifier: MIT

package tree

import "fmt"

// Node is one vertex of the operation tree.
// Leaves carry a matrix; operators carry children.
type Node struct {
	kind     Kind
	children []*Node
	matrix   [][]float64
}

// NewLeaf returns a leaf holding a deep copy of m.
func NewLeaf(m [][]float64) *Node {
	return &Node{kind: KindMatrix, matrix: clone(m)}
}

// NewOp returns an operator node over children.
func NewOp(k Kind, children ...*Node) *Node {
	cs := make([]*Node, len(children))
	copy(cs, children)
	return &Node{kind: k, children: cs}
}

// Kind returns the node's discriminant.
func (n *Node) Kind() Kind { return n.kind }

// IsLeaf reports whether the node holds a matrix.
func (n *Node) IsLeaf() bool { return n.kind == KindMatrix }

// Children returns the operands in order. The slice is a copy; the nodes are shared.
func (n *Node) Children() []*Node {
	cs := make([]*Node, len(n.children))
	copy(cs, n.children)
	return cs
}

// Matrix returns a deep copy of a leaf's matrix, or nil for an operator.
func (n *Node) Matrix() [][]float64 {
	if !n.IsLeaf() {
		return nil
	}
	return clone(n.matrix)
}

// Resolvable reports whether n is an operator whose children are all leaves.
func (n *Node) Resolvable() bool {
	if n.IsLeaf() {
		return false
	}
	for _, c := range n.children {
		if !c.IsLeaf() {
			return false
		}
	}
	return true
}

// FindResolvable returns the first resolvable node in depth-first,
// left-to-right order, or nil when the subtree has none (a leaf, or a
// malformed tree).
func (n *Node) FindResolvable() *Node {
	if n.IsLeaf() {
		return nil
	}
	if n.Resolvable() {
		return n
	}
	for _, c := range n.children {
		if r := c.FindResolvable(); r != nil {
			return r
		}
	}
	return nil
}

// Resolve records m (deep-copied) as this node's result; the node becomes a
// leaf and drops its children.
// Errors: ErrNotOperator when the node is already a leaf.
func (n *Node) Resolve(m [][]float64) error {
	if n.IsLeaf() {
		return fmt.Errorf("Node.Resolve: %w", ErrNotOperator)
	}
	n.kind = KindMatrix
	n.children = nil
	n.matrix = clone(m)
	return nil
}

// Depth returns the height of the subtree (a leaf has depth 1).
func (n *Node) Depth() int {
	d := 0
	for _, c := range n.children {
		if cd := c.Depth(); cd > d {
			d = cd
		}
	}
	return d + 1
}

// clone deep-copies a 2-D slice, preserving empty (non-nil) shapes.
func clone(m [][]float64) [][]float64 {
	if m == nil {
		return nil
	}
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}
