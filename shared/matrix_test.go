// Package shared_test contains unit tests for shared.Matrix.
package shared_test

import (
	"testing"

	"github.com/katalvlaran/lae/shared"
	"github.com/stretchr/testify/require"
)

// TestRoundTripRowMajor checks ReadRowMajor(LoadRowMajor(M)) == M.
func TestRoundTripRowMajor(t *testing.T) {
	for _, tc := range fixtures() {
		t.Run(tc.name, func(t *testing.T) {
			m := shared.NewMatrix()
			require.NoError(t, m.LoadRowMajor(tc.data))
			require.Equal(t, tc.data, m.ReadRowMajor())
			require.Equal(t, shared.Row, m.Orientation())
		})
	}
}

// TestRoundTripColumnMajor checks ReadRowMajor(LoadColumnMajor(M)) == M.
func TestRoundTripColumnMajor(t *testing.T) {
	for _, tc := range fixtures() {
		t.Run(tc.name, func(t *testing.T) {
			m := shared.NewMatrix()
			require.NoError(t, m.LoadColumnMajor(tc.data))
			require.Equal(t, tc.data, m.ReadRowMajor())
		})
	}
}

// TestLoadColumnMajorLayout verifies one Column vector per input column.
func TestLoadColumnMajorLayout(t *testing.T) {
	m := shared.NewMatrix()
	require.NoError(t, m.LoadColumnMajor([][]float64{{1, 2, 3}, {4, 5, 6}}))

	require.Equal(t, 3, m.Len())
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	c1, err := m.Get(1)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 5}, c1.Values())
	require.Equal(t, shared.Column, c1.Orientation())
}

// TestLoadRejectsBadInput covers nil and ragged inputs for both loaders.
func TestLoadRejectsBadInput(t *testing.T) {
	m, err := shared.NewMatrixFrom([][]float64{{9}})
	require.NoError(t, err)

	require.ErrorIs(t, m.LoadRowMajor(nil), shared.ErrNilInput)
	require.ErrorIs(t, m.LoadColumnMajor(nil), shared.ErrNilInput)
	require.ErrorIs(t, m.LoadRowMajor([][]float64{{1, 2}, nil}), shared.ErrNilInput)
	require.ErrorIs(t, m.LoadRowMajor([][]float64{{1, 2}, {3}}), shared.ErrShape)
	require.ErrorIs(t, m.LoadColumnMajor([][]float64{{1}, {2, 3}}), shared.ErrShape)

	require.Equal(t, [][]float64{{9}}, m.ReadRowMajor()) // failed loads keep prior contents

	_, err = shared.NewMatrixFrom([][]float64{{1}, {2, 3}})
	require.ErrorIs(t, err, shared.ErrShape)
}

// TestEmptyMatrix checks the defaults of a zero-vector matrix.
func TestEmptyMatrix(t *testing.T) {
	m := shared.NewMatrix()
	require.Equal(t, 0, m.Len())
	require.Equal(t, shared.Row, m.Orientation())
	require.Equal(t, [][]float64{}, m.ReadRowMajor())
	require.Equal(t, 0, m.Rows())
	require.Equal(t, 0, m.Cols())

	require.NoError(t, m.LoadColumnMajor([][]float64{}))
	require.Equal(t, 0, m.Len())

	var zero shared.Matrix // zero value is usable
	require.Equal(t, 0, zero.Len())
}

// TestLoadColumnMajorZeroWidth pins the r×0 case: no columns means no
// vectors, so the row count is lost and the matrix reads back empty.
// LoadRowMajor keeps the empty rows.
func TestLoadColumnMajorZeroWidth(t *testing.T) {
	zeroWidth := [][]float64{{}, {}}

	m := shared.NewMatrix()
	require.NoError(t, m.LoadColumnMajor(zeroWidth))
	require.Equal(t, 0, m.Len())
	require.Equal(t, 0, m.Rows())
	require.Equal(t, 0, m.Cols())
	require.Equal(t, [][]float64{}, m.ReadRowMajor())

	require.NoError(t, m.LoadRowMajor(zeroWidth))
	require.Equal(t, 2, m.Rows())
	require.Equal(t, zeroWidth, m.ReadRowMajor())
}

// TestGetSharesVector ensures Get returns the live vector, not a copy.
func TestGetSharesVector(t *testing.T) {
	m, err := shared.NewMatrixFrom([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	row, err := m.Get(1)
	require.NoError(t, err)
	row.Negate()
	require.Equal(t, [][]float64{{1, 2}, {-3, -4}}, m.ReadRowMajor())

	_, err = m.Get(2)
	require.ErrorIs(t, err, shared.ErrOutOfRange)
	_, err = m.Get(-1)
	require.ErrorIs(t, err, shared.ErrOutOfRange)
}

// TestReadRowMajorAfterTagFlip reads row vectors re-tagged as columns as a transpose.
func TestReadRowMajorAfterTagFlip(t *testing.T) {
	m, err := shared.NewMatrixFrom([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	for i := 0; i < m.Len(); i++ {
		v, err := m.Get(i)
		require.NoError(t, err)
		v.Transpose()
	}

	require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, m.ReadRowMajor())
}

// TestReadRowMajorDetached ensures snapshots do not alias matrix storage.
func TestReadRowMajorDetached(t *testing.T) {
	m, err := shared.NewMatrixFrom([][]float64{{1, 2}})
	require.NoError(t, err)

	snap := m.ReadRowMajor()
	snap[0][0] = 42
	require.Equal(t, [][]float64{{1, 2}}, m.ReadRowMajor())
}

// TestMatrixString checks the debug format.
func TestMatrixString(t *testing.T) {
	m, err := shared.NewMatrixFrom([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

// TestShape covers the exported validators.
func TestShape(t *testing.T) {
	r, c, err := shared.Shape([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)

	_, _, err = shared.Shape([][]float64{{1}, {}})
	require.ErrorIs(t, err, shared.ErrShape)
}
