// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"github.com/katalvlaran/lae/tree"
)

const opEval = "Eval"

// Eval computes the value of the tree rooted at n sequentially, without
// modifying the tree. Add and Multiply fold their operands left to right,
// Negate is Scale(-1).
//
// Errors:
//   - ErrNilMatrix (nil node), ErrArity (operand count), ErrBadShape (ragged leaf),
//     ErrDimensionMismatch (incompatible operands).
func Eval(n *tree.Node) (*Dense, error) {
	if n == nil {
		return nil, matrixErrorf(opEval, ErrNilMatrix)
	}
	if n.IsLeaf() {
		return FromRows(n.Matrix())
	}

	kids := n.Children()
	vals := make([]*Dense, len(kids))
	for i, c := range kids {
		v, err := Eval(c)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	switch k := n.Kind(); k {
	case tree.KindNegate, tree.KindTranspose:
		if len(vals) != 1 {
			return nil, matrixErrorf(opEval, fmt.Errorf("%s: %w: %d", k, ErrArity, len(vals)))
		}
		if k == tree.KindNegate {
			return Scale(vals[0], -1)
		}
		return Transpose(vals[0])
	case tree.KindAdd, tree.KindMultiply:
		if len(vals) < 2 {
			return nil, matrixErrorf(opEval, fmt.Errorf("%s: %w: %d", k, ErrArity, len(vals)))
		}
		op := Add
		if k == tree.KindMultiply {
			op = Mul
		}
		acc := vals[0]
		for _, v := range vals[1:] {
			var err error
			if acc, err = op(acc, v); err != nil {
				return nil, err
			}
		}
		return acc, nil
	default:
		return nil, matrixErrorf(opEval, fmt.Errorf("unexpected node kind %s", k))
	}
}
