// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lae/matrix"
)

// TestFromRowsShapes accepts empty shapes and rejects ragged input.
func TestFromRowsShapes(t *testing.T) {
	m := MustRows(t, [][]float64{})
	require.Equal(t, 0, m.Rows())
	require.Equal(t, [][]float64{}, m.ToRows())

	m = MustRows(t, [][]float64{{}, {}})
	r, c := m.Shape()
	require.Equal(t, 2, r)
	require.Equal(t, 0, c)
	require.Equal(t, [][]float64{{}, {}}, m.ToRows())

	_, err := matrix.FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.FromRows([][]float64{nil, {}})
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

// TestNumericPolicy rejects NaN/Inf by default and admits them on request.
func TestNumericPolicy(t *testing.T) {
	_, err := matrix.FromRows([][]float64{{1, math.NaN()}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	m, err := matrix.FromRows([][]float64{{1, math.Inf(1)}}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.True(t, math.IsInf(MustAt(t, m, 0, 1), 1))

	d := MustDense(t, 1, 1)
	require.ErrorIs(t, d.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf)

	d, err = matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf(), nil, matrix.WithValidateNaNInf())
	require.NoError(t, err)
	require.ErrorIs(t, d.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
}

// TestAccessors covers bounds, Clone independence and String.
func TestAccessors(t *testing.T) {
	_, err := matrix.NewDense(-1, 2)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	m := MustDense(t, 2, 2)
	MustSet(t, m, 1, 0, 3)
	require.Equal(t, 3.0, MustAt(t, m, 1, 0))

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)

	cp := m.Clone()
	MustSet(t, cp, 1, 0, 9)
	require.Equal(t, 3.0, MustAt(t, m, 1, 0))
	require.Equal(t, "[0, 0]\n[3, 0]\n", m.String())
}
