// SPDX-License-Identifier: MIT
// Package linalg: tolerance-based comparison and pairwise distances.

package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// AllClose checks element-wise |a−b| ≤ atol + rtol·|b| for identical shapes.
// NaN never compares equal. rtol and atol are used as absolute values.
//
// Errors: ErrNilMatrix / ErrInvalidShape on nil or mismatched operands.
// Complexity: Time O(r*c), Space O(1).
func AllClose(a, b mat.Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateNotNil(a); err != nil {
		return false, linalgErrorf(opAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, linalgErrorf(opAllClose, err)
	}
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != rb || ca != cb {
		return false, linalgErrorf(opAllClose,
			fmt.Errorf("%dx%d vs %dx%d: %w", ra, ca, rb, cb, ErrInvalidShape))
	}

	rtol, atol = math.Abs(rtol), math.Abs(atol)
	var i, j int
	var x, y float64
	for i = 0; i < ra; i++ {
		for j = 0; j < ca; j++ {
			x, y = a.At(i, j), b.At(i, j)
			if math.IsNaN(x) || math.IsNaN(y) {
				return false, nil
			}
			if x == y { // covers equal infinities
				continue
			}
			if math.Abs(x-y) > atol+rtol*math.Abs(y) {
				return false, nil
			}
		}
	}

	return true, nil
}

// PairwiseDistances returns the N×N Euclidean distance matrix of the rows
// of points (N×p). The diagonal is exactly zero and the result is exactly
// symmetric: only the upper triangle is computed and mirrored.
//
// Complexity: Time O(N²·p), Space O(N² + p).
func PairwiseDistances(points mat.Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(points); err != nil {
		return nil, linalgErrorf(opPairwiseDist, err)
	}
	n, p := points.Dims()
	out := mat.NewDense(n, n, nil)
	ri := make([]float64, p)
	rj := make([]float64, p)
	var i, j int
	var d float64
	for i = 0; i < n; i++ {
		mat.Row(ri, i, points)
		for j = i + 1; j < n; j++ {
			mat.Row(rj, j, points)
			d = floats.Distance(ri, rj, 2)
			out.Set(i, j, d)
			out.Set(j, i, d)
		}
	}

	return out, nil
}
