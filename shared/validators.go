// SPDX-License-Identifier: MIT
// Package: shared
//
// Purpose:
//   - Centralize the shape checks applied to raw 2-D inputs before any Vector
//     is built, so LoadRowMajor/LoadColumnMajor share one guard.
//   - Return plain sentinels; call sites wrap with method context.

package shared

// ValidateRectangular checks that rows is non-nil, has no nil row, and that
// every row has the same length. It returns the common row length
// (0 for an empty input).
//
// Errors: ErrNilInput, ErrShape.
// Complexity: O(rows).
func ValidateRectangular(rows [][]float64) (cols int, err error) {
	if rows == nil {
		return 0, ErrNilInput
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if rows[0] == nil {
		return 0, ErrNilInput
	}
	cols = len(rows[0])
	for _, r := range rows[1:] {
		if r == nil {
			return 0, ErrNilInput
		}
		if len(r) != cols {
			return 0, ErrShape
		}
	}

	return cols, nil
}

// Shape returns the (rows, cols) of a rectangular 2-D input.
// Errors: as ValidateRectangular.
func Shape(rows [][]float64) (r, c int, err error) {
	c, err = ValidateRectangular(rows)
	if err != nil {
		return 0, 0, err
	}
	return len(rows), c, nil
}
