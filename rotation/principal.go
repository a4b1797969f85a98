// SPDX-License-Identifier: MIT

package rotation

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/molgeom/linalg"
)

// RotateToPrincipalAxis rotates a point cloud (N×p) into its principal-axis frame.
//
// Implementation:
//   - Stage 1: validate points and center them on the centroid c.
//   - Stage 2: covariance C = SᵀS of the centered cloud S.
//   - Stage 3: C = U·Σ·Vᵀ; R = V (p×p), columns are principal directions.
//   - Stage 4: rotated = S·R + c (shifted back by the original centroid).
//
// Returns:
//   - R: p×p orthogonal matrix, column k is the k-th principal direction,
//     ordered by decreasing variance. Signs are as returned by the SVD.
//   - rotated: N×p points in the principal frame.
//
// Complexity: O(N·p² + p³).
func RotateToPrincipalAxis(points mat.Matrix) (*mat.Dense, *mat.Dense, error) {
	if err := validatePoints(points, linalg.AnyDim); err != nil {
		return nil, nil, rotationErrorf(opPrincipal, err)
	}

	centered, centroid, err := linalg.CenterColumns(points)
	if err != nil {
		return nil, nil, rotationErrorf(opPrincipal, err)
	}

	var cov mat.Dense
	cov.Mul(centered.T(), centered)

	dec, err := linalg.SVD(&cov)
	if err != nil {
		return nil, nil, rotationErrorf(opPrincipal, err)
	}
	R := dec.V

	var rot mat.Dense
	rot.Mul(centered, R)
	rotated, err := linalg.AddRowVector(&rot, centroid)
	if err != nil {
		return nil, nil, rotationErrorf(opPrincipal, err)
	}

	return R, rotated, nil
}

// RestoreFromPrincipalAxis maps points produced by RotateToPrincipalAxis back
// to the original frame: P = (rotated − c)·Rᵀ + c.
//
// The centroid c is recomputed from rotated; it equals the original centroid
// because the rotation is applied to a zero-mean cloud.
//
// Complexity: O(N·p²).
func RestoreFromPrincipalAxis(R, rotated mat.Matrix) (*mat.Dense, error) {
	if err := validatePoints(rotated, linalg.AnyDim); err != nil {
		return nil, rotationErrorf(opRestore, err)
	}
	_, p := rotated.Dims()
	if err := linalg.ValidateShape(R, p, p); err != nil {
		return nil, rotationErrorf(opRestore, err)
	}

	centered, centroid, err := linalg.CenterColumns(rotated)
	if err != nil {
		return nil, rotationErrorf(opRestore, err)
	}
	var back mat.Dense
	back.Mul(centered, R.T())

	out, err := linalg.AddRowVector(&back, centroid)
	if err != nil {
		return nil, rotationErrorf(opRestore, err)
	}

	return out, nil
}

// validatePoints checks a non-empty finite N×cols point cloud.
func validatePoints(points mat.Matrix, cols int) error {
	if err := linalg.ValidateShape(points, linalg.AnyDim, cols); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	if err := linalg.ValidateFinite(points); err != nil {
		return fmt.Errorf("%w: %w", errNotFinite, err)
	}

	return nil
}
