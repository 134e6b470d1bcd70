// SPDX-License-Identifier: MIT

package shared

// Orientation tags a 1-D buffer as a logical row or a logical column.
// It carries no layout meaning; it only decides which Dot/VecMatMul/Add
// combinations are legal.
type Orientation uint8

const (
	// Row marks a vector as a row (1×n).
	Row Orientation = iota
	// Column marks a vector as a column (n×1).
	Column
)

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation {
	if o == Row {
		return Column
	}
	return Row
}

// String implements fmt.Stringer.
func (o Orientation) String() string {
	switch o {
	case Row:
		return "row"
	case Column:
		return "column"
	default:
		return "unknown"
	}
}
