// SPDX-License-Identifier: MIT
// Package linalg: SVD facade over gonum.
//
// gonum returns U, V through destination receivers and Σ as a slice; the
// geometry kernels always want all three at once, so SVD bundles them and
// turns the boolean convergence flag into ErrSVDFailed.

package linalg

import (
	"gonum.org/v1/gonum/mat"
)

// Decomposition is the full thin SVD A = U·diag(S)·Vᵀ.
// Singular values are sorted in non-increasing order (gonum convention).
type Decomposition struct {
	U *mat.Dense // r×k left singular vectors, k = min(r,c)
	S []float64  // k singular values, non-increasing
	V *mat.Dense // c×k right singular vectors
}

// SVD factorizes a (r×c) with gonum's thin SVD.
//
// Implementation:
//   - Stage 1: validate a is non-empty and finite.
//   - Stage 2: mat.SVD.Factorize with SVDThin.
//   - Stage 3: extract U, Σ, V into fresh storage.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidShape, ErrNaNInf from validation.
//   - ErrSVDFailed when the factorization does not converge.
//
// Complexity: O(r·c·min(r,c)).
func SVD(a mat.Matrix) (*Decomposition, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, linalgErrorf(opSVD, err)
	}
	if err := ValidateFinite(a); err != nil {
		return nil, linalgErrorf(opSVD, err)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, linalgErrorf(opSVD, ErrSVDFailed)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	return &Decomposition{U: &u, S: svd.Values(nil), V: &v}, nil
}

// Det returns the determinant of a square matrix.
// Complexity: O(n³).
func Det(a mat.Matrix) (float64, error) {
	if _, err := ValidateSquare(a); err != nil {
		return 0, err
	}

	return mat.Det(a), nil
}
