// SPDX-License-Identifier: MIT

package coulomb_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/molgeom/coulomb"
	"github.com/katalvlaran/molgeom/linalg"
)

// formaldehyde-like geometry (C, O, H, H).
var (
	sampleZ      = []int{6, 8, 1, 1}
	samplePoints = mat.NewDense(4, 3, []float64{
		0.000, 0.000, 0.000,
		0.000, 0.000, 1.208,
		0.943, 0.000, -0.587,
		-0.943, 0.000, -0.587,
	})
)

func inverseDistances(t *testing.T, p mat.Matrix) *mat.Dense {
	t.Helper()
	d, err := linalg.PairwiseDistances(p)
	require.NoError(t, err)
	n, _ := d.Dims()
	inv := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				inv.Set(i, j, 1/d.At(i, j))
			}
		}
	}
	return inv
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, u := range []float64{1.0, 0.529177, 14.4} {
		C, err := coulomb.Encode(sampleZ, samplePoints, coulomb.WithUnitConversion(u))
		require.NoError(t, err)

		inv, z, err := coulomb.Decode(C, coulomb.WithUnitConversion(u))
		require.NoError(t, err)
		assert.Equal(t, sampleZ, z, "charges must round-trip exactly (u=%g)", u)

		ok, err := linalg.AllClose(inv, inverseDistances(t, samplePoints), 1e-10, 1e-12)
		require.NoError(t, err)
		assert.True(t, ok, "inverse distances (u=%g)", u)
	}
}

func TestEncode_DiagonalConvention(t *testing.T) {
	t.Parallel()

	C, err := coulomb.Encode([]int{6}, mat.NewDense(1, 3, nil))
	require.NoError(t, err)
	assert.InDelta(t, 0.5*math.Pow(6, 2.4), C.At(0, 0), 1e-12)
}

func TestDecode_ZeroChargePadding(t *testing.T) {
	t.Parallel()

	C, err := coulomb.Encode(sampleZ, samplePoints)
	require.NoError(t, err)

	// Pad with a dummy atom: zero row and column.
	padded := mat.NewDense(5, 5, nil)
	padded.Slice(0, 4, 0, 4).(*mat.Dense).Copy(C)

	inv, z, err := coulomb.Decode(padded)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 8, 1, 1, 0}, z)
	for k := 0; k < 5; k++ {
		assert.Equal(t, 0.0, inv.At(4, k))
		assert.Equal(t, 0.0, inv.At(k, 4))
		assert.Equal(t, 0.0, inv.At(k, k))
	}
	require.NoError(t, linalg.ValidateFinite(inv))
}

func TestCharges_RoundHalfAwayFromZero(t *testing.T) {
	t.Parallel()

	// Diagonal chosen so that Z = 2.5 exactly.
	cii := 0.5 * math.Pow(2.5, 2.4)
	raw, err := coulomb.Charges(mat.NewDense(1, 1, []float64{cii}))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, raw[0], 1e-12)

	_, z, err := coulomb.Decode(mat.NewDense(1, 1, []float64{0.5 * math.Pow(2.5+1e-12, 2.4)}))
	require.NoError(t, err)
	assert.Equal(t, []int{3}, z)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := coulomb.Decode(mat.NewDense(2, 3, nil))
	require.ErrorIs(t, err, coulomb.ErrInvalidShape)
	require.ErrorIs(t, err, linalg.ErrInvalidShape)

	_, _, err = coulomb.Decode(mat.NewDense(2, 2, []float64{-1, 0, 0, 1}))
	require.ErrorIs(t, err, coulomb.ErrNegativeDiagonal)

	_, _, err = coulomb.Decode(mat.NewDense(1, 1, []float64{math.NaN()}))
	require.ErrorIs(t, err, linalg.ErrNaNInf)
}

func TestEncode_Errors(t *testing.T) {
	t.Parallel()

	_, err := coulomb.Encode([]int{1, 1}, mat.NewDense(2, 3, nil))
	require.ErrorIs(t, err, coulomb.ErrCoincidentAtoms)

	_, err = coulomb.Encode([]int{1}, mat.NewDense(2, 3, []float64{0, 0, 0, 1, 0, 0}))
	require.ErrorIs(t, err, coulomb.ErrInvalidShape)

	_, err = coulomb.Encode([]int{-1}, mat.NewDense(1, 3, nil))
	require.ErrorIs(t, err, coulomb.ErrNegativeCharge)
}

func TestWithUnitConversion_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { coulomb.WithUnitConversion(0) })
	assert.Panics(t, func() { coulomb.WithUnitConversion(math.NaN()) })
	assert.Panics(t, func() { coulomb.WithUnitConversion(math.Inf(1)) })
}
