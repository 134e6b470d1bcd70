// SPDX-License-Identifier: MIT
// Package matrix - element-wise comparison.

package matrix

import "math"

const opAllClose = "AllClose"

// AllClose reports whether |a[i,j] - b[i,j]| ≤ atol + rtol·|b[i,j]| holds for
// every element. Negative tolerances are taken by absolute value.
//
// Errors:
//   - ErrNaNInf (non-finite tolerance), ErrNilMatrix, ErrDimensionMismatch.
//
// Behavior highlights:
//   - A NaN element is never close to anything, itself included.
//   - Early exit on the first violation.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx, av := range da.data {
				if !withinTol(av, db.data[idx], rtol, atol) {
					return false, nil
				}
			}
			return true, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			av, err := a.At(i, j)
			if err != nil {
				return false, atErrorf(opAllClose, i, j, err)
			}
			bv, err := b.At(i, j)
			if err != nil {
				return false, atErrorf(opAllClose, i, j, err)
			}
			if !withinTol(av, bv, rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// withinTol is the scalar predicate behind AllClose. The comparison is written
// so that a NaN on either side yields false.
func withinTol(a, b, rtol, atol float64) bool {
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}
