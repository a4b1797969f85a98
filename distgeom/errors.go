// SPDX-License-Identifier: MIT

package distgeom

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/molgeom/linalg"
)

var (
	// ErrInvalidShape indicates a non-square or empty distance matrix.
	ErrInvalidShape = fmt.Errorf("distgeom: %w", linalg.ErrInvalidShape)

	// ErrCenterOutOfRange indicates WithCenter(k) with k outside [0, N).
	ErrCenterOutOfRange = errors.New("distgeom: center index out of range")

	// ErrNonEuclidean indicates that the distance matrix is not embeddable in
	// the requested dimension (negative Gram eigenvalue among the retained
	// components). Only returned under WithStrictEuclidean.
	ErrNonEuclidean = errors.New("distgeom: distance matrix is not Euclidean")

	// ErrNegativeDistance indicates a negative entry in the distance matrix.
	ErrNegativeDistance = errors.New("distgeom: negative distance")
)

const (
	opCoordinates = "CoordinatesFromDistanceMatrix"
	opDistances   = "DistanceMatrix"
	opGram        = "GramMatrix"
)

func distgeomErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
