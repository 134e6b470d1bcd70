// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"

	"github.com/katalvlaran/lae/shared"
	"github.com/katalvlaran/lae/tree"
)

// checkOperands validates arity and shapes of every operand of k, including
// the intermediate shapes of an n-ary fold, so nothing is scheduled for a
// node that cannot complete.
func checkOperands(k tree.Kind, mats [][][]float64) error {
	switch k {
	case tree.KindNegate, tree.KindTranspose:
		if len(mats) != 1 {
			return fmt.Errorf("%s: %w: got %d, want 1", k, ErrArity, len(mats))
		}
		if _, _, err := shared.Shape(mats[0]); err != nil {
			return fmt.Errorf("%s: %w: %w", k, ErrShapeMismatch, err)
		}
		return nil
	case tree.KindAdd, tree.KindMultiply:
		if len(mats) < 2 {
			return fmt.Errorf("%s: %w: got %d, want at least 2", k, ErrArity, len(mats))
		}
	default:
		return fmt.Errorf("%w: %s is not an operator", ErrInvalidTree, k)
	}

	r, c, err := shared.Shape(mats[0])
	if err != nil {
		return fmt.Errorf("%s: operand 0: %w: %w", k, ErrShapeMismatch, err)
	}
	for i, m := range mats[1:] {
		nr, nc, err := shared.Shape(m)
		if err != nil {
			return fmt.Errorf("%s: operand %d: %w: %w", k, i+1, ErrShapeMismatch, err)
		}
		switch k {
		case tree.KindAdd:
			if nr != r || nc != c {
				return fmt.Errorf("%s: operand %d: %w: %dx%d vs %dx%d", k, i+1, ErrShapeMismatch, r, c, nr, nc)
			}
		case tree.KindMultiply:
			if nr != c {
				return fmt.Errorf("%s: operand %d: %w: %dx%d times %dx%d", k, i+1, ErrShapeMismatch, r, c, nr, nc)
			}
			c = nc
		}
	}
	return nil
}
