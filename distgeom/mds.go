// SPDX-License-Identifier: MIT

package distgeom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/molgeom/linalg"
	"github.com/katalvlaran/molgeom/logging"
)

// DistanceMatrix returns the N×N Euclidean distance matrix of the rows of
// points (N×p). The result is exactly symmetric with a zero diagonal.
func DistanceMatrix(points mat.Matrix) (*mat.Dense, error) {
	if err := linalg.ValidateNotNil(points); err != nil {
		return nil, distgeomErrorf(opDistances, err)
	}
	if err := linalg.ValidateFinite(points); err != nil {
		return nil, distgeomErrorf(opDistances, err)
	}
	d, err := linalg.PairwiseDistances(points)
	if err != nil {
		return nil, distgeomErrorf(opDistances, err)
	}

	return d, nil
}

// GramMatrix builds M_ij = (d0_i² + d0_j² − d_ij²)/2 from a distance matrix,
// with the centroid (center == NoCenter) or atom center as reference.
//
// Complexity: O(N²).
func GramMatrix(d mat.Matrix, center int) (*mat.Dense, error) {
	n, err := validateDistances(d)
	if err != nil {
		return nil, distgeomErrorf(opGram, err)
	}
	if center != NoCenter && (center < 0 || center >= n) {
		return nil, distgeomErrorf(opGram, fmt.Errorf("center %d, N=%d: %w", center, n, ErrCenterOutOfRange))
	}

	// Squared distances.
	d2 := mat.NewDense(n, n, nil)
	d2.Apply(func(i, j int, v float64) float64 { return v * v }, d)

	// Squared distance of each point to the reference.
	d02 := make([]float64, n)
	var i, j int
	if center == NoCenter {
		rowSums := make([]float64, n)
		var total float64
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				rowSums[i] += d2.At(i, j)
			}
			total += rowSums[i]
		}
		nf := float64(n)
		scale := 1 / (2 * nf * nf)
		for i = 0; i < n; i++ {
			d02[i] = scale * (2*nf*rowSums[i] - total)
		}
	} else {
		for i = 0; i < n; i++ {
			d02[i] = d2.At(i, center)
		}
	}

	m := mat.NewDense(n, n, nil)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			m.Set(i, j, (d02[i]+d02[j]-d2.At(i, j))/2)
		}
	}

	return m, nil
}

// CoordinatesFromDistanceMatrix reconstructs N×dim coordinates from an N×N
// distance matrix with classical MDS.
//
// Implementation:
//   - Stage 1: validate D (square, finite, non-negative) and the center index.
//   - Stage 2: Gram matrix M (see GramMatrix).
//   - Stage 3: M = U·Σ·Vᵀ (gonum SVD).
//   - Stage 4: X = U·√Σ truncated to dim columns; columns beyond N stay zero.
//   - Stage 5: sign check of retained components (uₖ·vₖ < 0 ⇒ negative eigenvalue).
//
// Errors:
//   - ErrInvalidShape, linalg.ErrNaNInf, ErrNegativeDistance on bad input.
//   - ErrCenterOutOfRange when WithCenter(k) has k >= N.
//   - ErrNonEuclidean under WithStrictEuclidean.
//
// Complexity: O(N³) for the SVD.
func CoordinatesFromDistanceMatrix(d mat.Matrix, opts ...Option) (*mat.Dense, error) {
	o := gatherOptions(opts)

	m, err := GramMatrix(d, o.Center)
	if err != nil {
		return nil, distgeomErrorf(opCoordinates, err)
	}
	n, _ := m.Dims()

	dec, err := linalg.SVD(m)
	if err != nil {
		return nil, distgeomErrorf(opCoordinates, err)
	}

	keep := o.Dim
	if keep > len(dec.S) {
		keep = len(dec.S)
	}

	out := mat.NewDense(n, o.Dim, nil)
	var i, k int
	var root float64
	for k = 0; k < keep; k++ {
		root = math.Sqrt(dec.S[k])
		for i = 0; i < n; i++ {
			out.Set(i, k, dec.U.At(i, k)*root)
		}
	}

	if bad := negativeComponents(dec, keep); len(bad) > 0 {
		if o.StrictEuclidean {
			return nil, distgeomErrorf(opCoordinates, fmt.Errorf("components %v: %w", bad, ErrNonEuclidean))
		}
		o.Logger.Warn("distance matrix is not Euclidean, embedding is degraded",
			logging.Any("components", bad),
			logging.Int("atoms", n),
			logging.Int("dim", o.Dim))
	}

	return out, nil
}

// negativeComponents lists retained components whose Gram eigenvalue is
// negative. For symmetric M each singular pair satisfies v_k = ±u_k; the
// minus sign marks a negative eigenvalue. Components with negligible
// singular value are ignored.
func negativeComponents(dec *linalg.Decomposition, keep int) []int {
	if len(dec.S) == 0 {
		return nil
	}
	threshold := DefaultEigenTolerance * math.Max(dec.S[0], 1)
	n, _ := dec.U.Dims()

	var bad []int
	var dot float64
	for k := 0; k < keep; k++ {
		if dec.S[k] <= threshold {
			continue
		}
		dot = 0
		for i := 0; i < n; i++ {
			dot += dec.U.At(i, k) * dec.V.At(i, k)
		}
		if dot < 0 {
			bad = append(bad, k)
		}
	}

	return bad
}

// validateDistances checks that d is a square, finite, non-negative matrix.
func validateDistances(d mat.Matrix) (int, error) {
	n, err := linalg.ValidateSquare(d)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	if err = linalg.ValidateFinite(d); err != nil {
		return 0, err
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if d.At(i, j) < 0 {
				return 0, fmt.Errorf("at (%d,%d): %w", i, j, ErrNegativeDistance)
			}
		}
	}

	return n, nil
}
