// SPDX-License-Identifier: MIT

package rotation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/molgeom/linalg"
	"github.com/katalvlaran/molgeom/logging"
	"github.com/katalvlaran/molgeom/rotation"
)

const tol = 1e-9

// water-like, deliberately non-planar cloud with distinct principal moments.
func sampleCloud() *mat.Dense {
	return mat.NewDense(5, 3, []float64{
		0.00, 0.00, 0.00,
		0.96, 0.00, 0.10,
		-0.24, 0.93, -0.20,
		1.50, 1.20, 0.70,
		-0.80, -0.40, 1.30,
	})
}

func requireClose(t *testing.T, got, want mat.Matrix, atol float64) {
	t.Helper()
	ok, err := linalg.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ:\ngot  %v\nwant %v", mat.Formatted(got), mat.Formatted(want))
}

func requireOrthogonal(t *testing.T, R mat.Matrix) {
	t.Helper()
	r, _ := R.Dims()
	var rtr mat.Dense
	rtr.Mul(R.T(), R)
	eye := mat.NewDiagDense(r, nil)
	for i := 0; i < r; i++ {
		eye.SetDiag(i, 1)
	}
	requireClose(t, &rtr, eye, tol)
}

func TestMakeRotationMatrix_QuarterTurnAboutZ(t *testing.T) {
	t.Parallel()

	R, err := rotation.MakeRotationMatrix(r3.Vec{Z: 5}, 90)
	require.NoError(t, err)

	x := mat.NewVecDense(3, []float64{1, 0, 0})
	var y mat.VecDense
	y.MulVec(R, x)
	assert.InDelta(t, 0.0, y.AtVec(0), tol)
	assert.InDelta(t, 1.0, y.AtVec(1), tol)
	assert.InDelta(t, 0.0, y.AtVec(2), tol)

	requireOrthogonal(t, R)
	assert.InDelta(t, 1.0, mat.Det(R), tol)
}

func TestMakeRotationMatrix_ArbitraryAxisKeepsAxis(t *testing.T) {
	t.Parallel()

	axis := r3.Vec{X: 1, Y: -2, Z: 0.5}
	R, err := rotation.MakeRotationMatrix(axis, 37.5)
	require.NoError(t, err)

	var y mat.VecDense
	y.MulVec(R, mat.NewVecDense(3, []float64{axis.X, axis.Y, axis.Z}))
	assert.InDelta(t, axis.X, y.AtVec(0), tol)
	assert.InDelta(t, axis.Y, y.AtVec(1), tol)
	assert.InDelta(t, axis.Z, y.AtVec(2), tol)

	// 360° is the identity.
	full, err := rotation.MakeRotationMatrix(axis, 360)
	require.NoError(t, err)
	requireClose(t, full, mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}), tol)
}

func TestMakeRotationMatrix_DegenerateAxis(t *testing.T) {
	t.Parallel()

	_, err := rotation.MakeRotationMatrix(r3.Vec{}, 10)
	require.ErrorIs(t, err, rotation.ErrDegenerateAxis)
	require.ErrorIs(t, err, linalg.ErrDegenerateGeometry)

	_, err = rotation.MakeRotationMatrix(r3.Vec{X: math.NaN()}, 10)
	require.ErrorIs(t, err, rotation.ErrDegenerateAxis)
}

func TestApply(t *testing.T) {
	t.Parallel()

	R, err := rotation.MakeRotationMatrix(r3.Vec{Z: 1}, 180)
	require.NoError(t, err)
	out, err := rotation.Apply(R, mat.NewDense(1, 3, []float64{1, 2, 3}))
	require.NoError(t, err)
	requireClose(t, out, mat.NewDense(1, 3, []float64{-1, -2, 3}), tol)

	_, err = rotation.Apply(mat.NewDense(2, 2, nil), mat.NewDense(1, 3, nil))
	require.ErrorIs(t, err, rotation.ErrInvalidShape)
}

func TestRotateToPrincipalAxis_RoundTrip(t *testing.T) {
	t.Parallel()

	P := sampleCloud()
	R, rotated, err := rotation.RotateToPrincipalAxis(P)
	require.NoError(t, err)
	requireOrthogonal(t, R)

	// Centroid is preserved.
	cp, err := linalg.ColumnMeans(P)
	require.NoError(t, err)
	cr, err := linalg.ColumnMeans(rotated)
	require.NoError(t, err)
	assert.InDeltaSlice(t, cp, cr, tol)

	// Covariance in the principal frame is diagonal with decreasing variances.
	centered, _, err := linalg.CenterColumns(rotated)
	require.NoError(t, err)
	var cov mat.Dense
	cov.Mul(centered.T(), centered)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j {
				assert.InDelta(t, 0.0, cov.At(i, j), 1e-8)
			}
		}
	}
	assert.GreaterOrEqual(t, cov.At(0, 0), cov.At(1, 1))
	assert.GreaterOrEqual(t, cov.At(1, 1), cov.At(2, 2))

	back, err := rotation.RestoreFromPrincipalAxis(R, rotated)
	require.NoError(t, err)
	requireClose(t, back, P, 1e-9)
}

func TestRotateToPrincipalAxis_TwoDimensional(t *testing.T) {
	t.Parallel()

	P := mat.NewDense(4, 2, []float64{0, 0, 2, 2, 4, 4, 1, 0})
	R, rotated, err := rotation.RotateToPrincipalAxis(P)
	require.NoError(t, err)
	r, c := R.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	nr, nc := rotated.Dims()
	assert.Equal(t, 4, nr)
	assert.Equal(t, 2, nc)
}

func TestRotateToPrincipalAxis_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := rotation.RotateToPrincipalAxis(nil)
	require.ErrorIs(t, err, linalg.ErrNilMatrix)

	bad := mat.NewDense(2, 3, []float64{0, 0, 0, math.Inf(1), 0, 0})
	_, _, err = rotation.RotateToPrincipalAxis(bad)
	require.ErrorIs(t, err, linalg.ErrNaNInf)

	_, err = rotation.RestoreFromPrincipalAxis(mat.NewDense(2, 2, nil), sampleCloud())
	require.ErrorIs(t, err, linalg.ErrInvalidShape)
}

func TestRigidTransform_Identity(t *testing.T) {
	t.Parallel()

	A := sampleCloud()
	al, err := rotation.RigidTransform(A, A)
	require.NoError(t, err)
	requireClose(t, al.R, mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}), tol)
	requireClose(t, al.T, mat.NewVecDense(3, nil), tol)
	requireClose(t, al.Aligned, A, tol)
	assert.False(t, al.Reflection)
}

func TestRigidTransform_RecoversKnownMotion(t *testing.T) {
	t.Parallel()

	A := sampleCloud()
	R0, err := rotation.MakeRotationMatrix(r3.Vec{X: 0.3, Y: 1, Z: -0.4}, 63)
	require.NoError(t, err)
	t0 := []float64{1.5, -2.0, 0.25}

	B, err := rotation.Apply(R0, A)
	require.NoError(t, err)
	B, err = linalg.AddRowVector(B, t0)
	require.NoError(t, err)

	al, err := rotation.RigidTransform(A, B)
	require.NoError(t, err)
	requireClose(t, al.R, R0, 1e-9)
	requireClose(t, al.T, mat.NewVecDense(3, t0), 1e-9)
	requireClose(t, al.Aligned, B, 1e-9)

	rmsd, err := rotation.RMSD(al.Aligned, B)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rmsd, 1e-9)
}

func TestRigidTransform_Reflection(t *testing.T) {
	t.Parallel()

	A := sampleCloud()
	mirror := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, -1})
	B, err := rotation.Apply(mirror, A)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	logger := logging.NewLoggerFromCore(core)

	al, err := rotation.RigidTransform(A, B, rotation.WithLogger(logger))
	require.NoError(t, err)
	assert.True(t, al.Reflection)
	assert.Less(t, mat.Det(al.R), 0.0)
	require.Equal(t, 1, logs.Len(), "reflection must be reported")
	det, ok := logs.All()[0].ContextMap()["det"].(float64)
	require.True(t, ok)
	assert.InDelta(t, -1.0, det, 1e-9)

	fixed, err := rotation.RigidTransform(A, B, rotation.WithLogger(logger), rotation.WithCorrectReflection())
	require.NoError(t, err)
	assert.True(t, fixed.Reflection)
	assert.InDelta(t, 1.0, mat.Det(fixed.R), 1e-9)
	requireOrthogonal(t, fixed.R)
	assert.Equal(t, 2, logs.Len())
}

func TestRigidTransform_ShapeErrors(t *testing.T) {
	t.Parallel()

	_, err := rotation.RigidTransform(mat.NewDense(3, 2, nil), mat.NewDense(3, 2, nil))
	require.ErrorIs(t, err, rotation.ErrInvalidShape)

	_, err = rotation.RigidTransform(mat.NewDense(3, 3, nil), mat.NewDense(4, 3, nil))
	require.ErrorIs(t, err, rotation.ErrInvalidShape)
}
