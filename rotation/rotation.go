// SPDX-License-Identifier: MIT

package rotation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/molgeom/linalg"
)

// MakeRotationMatrix returns the 3×3 Rodrigues rotation matrix for a rotation
// by angleDeg degrees about axis, such that y = R·x.
//
// The axis is normalized internally; its length does not matter.
//
// Errors:
//   - ErrDegenerateAxis when ‖axis‖ is zero or not finite.
//
// Complexity: O(1).
func MakeRotationMatrix(axis r3.Vec, angleDeg float64) (*mat.Dense, error) {
	norm := r3.Norm(axis)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, rotationErrorf(opMakeRotation, ErrDegenerateAxis)
	}
	u := r3.Scale(1/norm, axis)

	theta := angleDeg / 180.0 * math.Pi
	c, s := math.Cos(theta), math.Sin(theta)
	t := 1 - c

	return mat.NewDense(3, 3, []float64{
		u.X*u.X*t + c, u.X*u.Y*t - u.Z*s, u.X*u.Z*t + u.Y*s,
		u.X*u.Y*t + u.Z*s, u.Y*u.Y*t + c, u.Y*u.Z*t - u.X*s,
		u.X*u.Z*t - u.Y*s, u.Y*u.Z*t + u.X*s, u.Z*u.Z*t + c,
	}), nil
}

// Apply rotates every row of points (N×3) by R: out[i] = R·points[i].
func Apply(R, points mat.Matrix) (*mat.Dense, error) {
	if err := validatePoints(points, 3); err != nil {
		return nil, err
	}
	if err := linalg.ValidateShape(R, 3, 3); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	n, _ := points.Dims()
	out := mat.NewDense(n, 3, nil)
	out.Mul(points, R.T())

	return out, nil
}

func sqrtInt(n int) float64 { return math.Sqrt(float64(n)) }
