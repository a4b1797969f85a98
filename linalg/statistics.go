// SPDX-License-Identifier: MIT
// Package linalg: centering helpers used by PCA, Kabsch and MDS.
//
// Exposed API:
//   - ColumnMeans(X)      -> means            // per-column arithmetic mean
//   - CenterColumns(X)    -> (Xc, means)      // subtract per-column mean
//   - AddRowVector(X, v)  -> X + 1·vᵀ          // broadcast a row over all rows
//
// Determinism: fixed i→j traversal; sums accumulate in row order.

package linalg

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ColumnMeans returns the arithmetic mean of every column of X.
//
// Implementation:
//   - Stage 1: validate X is non-empty.
//   - Stage 2: copy each column into a scratch buffer and reduce with stat.Mean.
//
// Complexity: Time O(r*c), Space O(r + c).
func ColumnMeans(X mat.Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, linalgErrorf(opCenter, err)
	}
	r, c := X.Dims()
	means := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		means[j] = stat.Mean(col, nil)
	}

	return means, nil
}

// CenterColumns returns a centered copy Xc = X − mean(X, by columns) and the
// column means (len = Cols(X)). X is not modified.
//
// Complexity: Time O(r*c), Space O(r*c).
func CenterColumns(X mat.Matrix) (*mat.Dense, []float64, error) {
	means, err := ColumnMeans(X)
	if err != nil {
		return nil, nil, err
	}
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out.Set(i, j, X.At(i, j)-means[j])
		}
	}

	return out, means, nil
}

// AddRowVector returns a copy of X with v added to every row.
// len(v) must equal Cols(X).
// Complexity: Time O(r*c), Space O(r*c).
func AddRowVector(X mat.Matrix, v []float64) (*mat.Dense, error) {
	if err := ValidateShape(X, AnyDim, len(v)); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out.Set(i, j, X.At(i, j)+v[j])
		}
	}

	return out, nil
}
