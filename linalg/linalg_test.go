// SPDX-License-Identifier: MIT

package linalg_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/molgeom/linalg"
)

func TestValidateShape(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(4, 3, nil)
	require.NoError(t, linalg.ValidateShape(m, 4, 3))
	require.NoError(t, linalg.ValidateShape(m, linalg.AnyDim, 3))
	require.NoError(t, linalg.ValidateShape(m, 4, linalg.AnyDim))

	err := linalg.ValidateShape(m, 3, 3)
	require.ErrorIs(t, err, linalg.ErrInvalidShape)

	err = linalg.ValidateShape(nil, 3, 3)
	require.ErrorIs(t, err, linalg.ErrNilMatrix)
}

func TestValidateSquare(t *testing.T) {
	t.Parallel()

	n, err := linalg.ValidateSquare(mat.NewDense(3, 3, nil))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = linalg.ValidateSquare(mat.NewDense(3, 2, nil))
	require.ErrorIs(t, err, linalg.ErrInvalidShape)
}

func TestValidateFinite(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, linalg.ValidateFinite(m))

	m.Set(1, 0, math.NaN())
	require.ErrorIs(t, linalg.ValidateFinite(m), linalg.ErrNaNInf)

	m.Set(1, 0, math.Inf(-1))
	require.ErrorIs(t, linalg.ValidateFinite(m), linalg.ErrNaNInf)
}

func TestCenterColumns(t *testing.T) {
	t.Parallel()

	X := mat.NewDense(2, 3, []float64{1, 2, 3, 10, 20, 30})
	Xc, means, err := linalg.CenterColumns(X)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5.5, 11, 16.5}, means, 1e-12)

	colSum := make([]float64, 3)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			colSum[j] += Xc.At(i, j)
		}
	}
	assert.InDeltaSlice(t, []float64{0, 0, 0}, colSum, 1e-12)

	// input untouched
	assert.Equal(t, 1.0, X.At(0, 0))
}

func TestAddRowVector(t *testing.T) {
	t.Parallel()

	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	Y, err := linalg.AddRowVector(X, []float64{10, 20})
	require.NoError(t, err)
	assert.True(t, mat.Equal(Y, mat.NewDense(2, 2, []float64{11, 22, 13, 24})))

	_, err = linalg.AddRowVector(X, []float64{1})
	require.ErrorIs(t, err, linalg.ErrInvalidShape)
}

func TestSVD_Reconstructs(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(3, 3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})
	dec, err := linalg.SVD(a)
	require.NoError(t, err)
	require.Len(t, dec.S, 3)
	for k := 1; k < len(dec.S); k++ {
		assert.GreaterOrEqual(t, dec.S[k-1], dec.S[k])
	}

	var us, back mat.Dense
	us.Mul(dec.U, mat.NewDiagDense(3, dec.S))
	back.Mul(&us, dec.V.T())

	ok, err := linalg.AllClose(&back, a, 0, 1e-10)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSVD_RejectsNaN(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(2, 2, []float64{1, math.NaN(), 0, 1})
	_, err := linalg.SVD(a)
	require.True(t, errors.Is(err, linalg.ErrNaNInf))
}

func TestDet(t *testing.T) {
	t.Parallel()

	d, err := linalg.Det(mat.NewDense(2, 2, []float64{2, 0, 0, 3}))
	require.NoError(t, err)
	assert.InDelta(t, 6.0, d, 1e-12)

	_, err = linalg.Det(mat.NewDense(2, 3, nil))
	require.ErrorIs(t, err, linalg.ErrInvalidShape)
}

func TestAllClose(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(1, 3, []float64{1, 2, math.Inf(1)})
	b := mat.NewDense(1, 3, []float64{1 + 1e-12, 2, math.Inf(1)})
	ok, err := linalg.AllClose(a, b, 0, 1e-9)
	require.NoError(t, err)
	assert.True(t, ok)

	b.Set(0, 1, 2.1)
	ok, err = linalg.AllClose(a, b, 0, 1e-9)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = linalg.AllClose(a, mat.NewDense(3, 1, nil), 0, 0)
	require.ErrorIs(t, err, linalg.ErrInvalidShape)
}

func TestPairwiseDistances(t *testing.T) {
	t.Parallel()

	p := mat.NewDense(3, 2, []float64{
		0, 0,
		3, 4,
		0, 1,
	})
	d, err := linalg.PairwiseDistances(p)
	require.NoError(t, err)

	want := mat.NewDense(3, 3, []float64{
		0, 5, 1,
		5, 0, math.Sqrt(18),
		1, math.Sqrt(18), 0,
	})
	assert.True(t, mat.EqualApprox(d, want, 1e-12))
	assert.True(t, mat.Equal(d, d.T()), "distance matrix must be exactly symmetric")
}
