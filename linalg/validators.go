// SPDX-License-Identifier: MIT
// Package linalg: canonical shape and value validators.
//
// Purpose:
//   - Keep the geometry kernels minimal by delegating nil/shape/finite checks here.
//   - Return wrapped sentinels so call sites only add their own operation tag.
//
// Determinism & Performance:
//   - All checks are pure and allocate nothing (except the error value).
//   - ValidateFinite runs O(r*c) in i→j order.

package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// AnyDim is a wildcard for ValidateShape meaning "any positive size".
const AnyDim = -1

// ValidateNotNil ensures m is a non-nil matrix with at least one element.
// Complexity: O(1).
func ValidateNotNil(m mat.Matrix) error {
	if m == nil {
		return linalgErrorf(opValidate, ErrNilMatrix)
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return linalgErrorf(opValidate, fmt.Errorf("empty %dx%d: %w", r, c, ErrInvalidShape))
	}

	return nil
}

// ValidateShape ensures m is rows×cols. Either bound may be AnyDim.
//
// Errors:
//   - ErrNilMatrix when m is nil.
//   - ErrInvalidShape when m is empty or its dimensions differ.
//
// Complexity: O(1).
func ValidateShape(m mat.Matrix, rows, cols int) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	r, c := m.Dims()
	if (rows != AnyDim && r != rows) || (cols != AnyDim && c != cols) {
		return linalgErrorf(opValidate,
			fmt.Errorf("got %dx%d, want %s×%s: %w", r, c, dimString(rows), dimString(cols), ErrInvalidShape))
	}

	return nil
}

// ValidateSquare ensures m is a non-empty n×n matrix and returns n.
// Complexity: O(1).
func ValidateSquare(m mat.Matrix) (int, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, err
	}
	r, c := m.Dims()
	if r != c {
		return 0, linalgErrorf(opValidate, fmt.Errorf("non-square %dx%d: %w", r, c, ErrInvalidShape))
	}

	return r, nil
}

// ValidateFinite rejects any NaN or ±Inf entry, reporting the first offender
// in row-major order.
// Complexity: O(r*c).
func ValidateFinite(m mat.Matrix) error {
	r, c := m.Dims()
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return linalgErrorf(opValidate, fmt.Errorf("at (%d,%d): %w", i, j, ErrNaNInf))
			}
		}
	}

	return nil
}

// dimString renders a dimension bound for error messages.
func dimString(d int) string {
	if d == AnyDim {
		return "N"
	}

	return fmt.Sprintf("%d", d)
}
