// SPDX-License-Identifier: MIT

// Package matrix - linear-algebra kernels.
//
// Purpose:
//   - Add, Sub, Mul, Transpose and Scale over any Matrix, returning a fresh *Dense.
//   - Operands are never mutated; results never alias operands.
//
// Contract:
//   - Every kernel validates first (validators.go) and wraps failures with its op tag.
//   - *Dense operands take a flat-slice fast path; other Matrix implementations go
//     through At with the same loop order, so both paths produce identical bits.

package matrix

import "fmt"

const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
)

// matrixErrorf wraps err with an operation tag; the sentinel survives for errors.Is.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// atErrorf tags a failed interface read with its coordinates.
func atErrorf(tag string, i, j int, err error) error {
	return matrixErrorf(tag, fmt.Errorf("At(%d,%d): %w", i, j, err))
}

// addSub computes a + sign*b for sign ∈ {+1, -1}.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	rows, cols := a.Rows(), a.Cols()
	res := newResult(rows, cols)

	// Fast path: one flat loop over both backing slices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}
			return res, nil
		}
	}

	var av, bv float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, atErrorf(opTag, i, j, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, atErrorf(opTag, i, j, err)
			}
			res.data[i*cols+j] = av + sign*bv
		}
	}

	return res, nil
}

// Add returns the element-wise sum a + b.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) {
	return addSub(a, b, 1, opAdd)
}

// Sub returns the element-wise difference a - b.
func Sub(a, b Matrix) (*Dense, error) {
	return addSub(a, b, -1, opSub)
}

// Mul returns the product a × b.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible (a.Cols() == b.Rows()).
//   - Stage 2: i-k-j loop order so the inner loop walks a result row and a row
//     of b contiguously. Zero a[i,k] terms are skipped.
//
// Behavior highlights:
//   - An m×0 times 0×n product is the m×n zero matrix.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*k*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	r, inner, c := a.Rows(), a.Cols(), b.Cols()
	res := newResult(r, c)

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for i := 0; i < r; i++ {
				rowR := res.data[i*c : (i+1)*c]
				for k := 0; k < inner; k++ {
					av := da.data[i*inner+k]
					if av == 0 {
						continue
					}
					for j, bv := range db.data[k*c : (k+1)*c] {
						rowR[j] += av * bv
					}
				}
			}
			return res, nil
		}
	}

	var av, bv float64
	var err error
	for i := 0; i < r; i++ {
		for k := 0; k < inner; k++ {
			if av, err = a.At(i, k); err != nil {
				return nil, atErrorf(opMul, i, k, err)
			}
			if av == 0 {
				continue
			}
			for j := 0; j < c; j++ {
				if bv, err = b.At(k, j); err != nil {
					return nil, atErrorf(opMul, k, j, err)
				}
				res.data[i*c+j] += av * bv
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ (shape c×r).
// Errors: ErrNilMatrix.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	r, c := m.Rows(), m.Cols()
	res := newResult(c, r)

	if d, ok := m.(*Dense); ok {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				res.data[j*r+i] = d.data[i*c+j]
			}
		}
		return res, nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, atErrorf(opTranspose, i, j, err)
			}
			res.data[j*r+i] = v
		}
	}

	return res, nil
}

// Scale returns alpha·m. Scale(m, -1) is the negation operator.
// Errors: ErrNilMatrix.
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	r, c := m.Rows(), m.Cols()
	res := newResult(r, c)

	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			res.data[idx] = alpha * v
		}
		return res, nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, atErrorf(opScale, i, j, err)
			}
			res.data[i*c+j] = alpha * v
		}
	}

	return res, nil
}
