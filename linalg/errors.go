// SPDX-License-Identifier: MIT
// Package linalg: sentinel error set shared by the geometry packages.
//
// Every message is prefixed with "linalg: ..." for consistency. Higher level
// packages define their own sentinels and wrap these categories with
// fmt.Errorf("%w: %w", pkgErr, linalg.ErrX) so callers can match either the
// specific or the generic condition with errors.Is.

package linalg

import (
	"errors"
	"fmt"
)

var (
	// ErrNilMatrix indicates that a nil matrix argument was passed.
	ErrNilMatrix = errors.New("linalg: nil matrix")

	// ErrInvalidShape indicates mismatched or unsupported dimensions,
	// e.g. a lattice that is not 3×3 or coordinates that are not N×3.
	ErrInvalidShape = errors.New("linalg: invalid input shape")

	// ErrDegenerateGeometry indicates a near-singular lattice, a zero-norm
	// rotation axis or a similar configuration that would otherwise leak
	// NaN/Inf into the result.
	ErrDegenerateGeometry = errors.New("linalg: degenerate geometry")

	// ErrSVDFailed indicates that gonum's SVD did not converge.
	ErrSVDFailed = errors.New("linalg: singular value decomposition failed")

	// ErrNaNInf indicates a NaN or ±Inf entry where finite values are required.
	ErrNaNInf = errors.New("linalg: NaN or Inf encountered")
)

// Operation tags used by the wrappers in this package.
const (
	opValidate     = "Validate"
	opCenter       = "CenterColumns"
	opSVD          = "SVD"
	opAllClose     = "AllClose"
	opPairwiseDist = "PairwiseDistances"
)

// linalgErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func linalgErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
