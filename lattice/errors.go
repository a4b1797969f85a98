// SPDX-License-Identifier: MIT

package lattice

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/molgeom/linalg"
)

var (
	// ErrInvalidShape indicates a lattice that is not 3×3 or coordinates
	// that are not N×3.
	ErrInvalidShape = fmt.Errorf("lattice: %w", linalg.ErrInvalidShape)

	// ErrDegenerateLattice indicates linearly dependent or zero-length
	// lattice vectors.
	ErrDegenerateLattice = fmt.Errorf("lattice: degenerate lattice: %w", linalg.ErrDegenerateGeometry)

	// ErrInvalidCutoff indicates a negative or non-finite search radius.
	ErrInvalidCutoff = errors.New("lattice: invalid cutoff")

	// ErrInvalidParameters indicates cell lengths or angles that do not
	// describe a cell.
	ErrInvalidParameters = errors.New("lattice: invalid cell parameters")
)

const (
	opNewLattice   = "NewLattice"
	opFromParams   = "FromParameters"
	opBoundingBox  = "BoundingBox"
	opImages       = "Images"
	opFracToCart   = "FractionalToCartesian"
	opCartToFrac   = "CartesianToFractional"
	opRangeLattice = "RangeNeighbourLattice"
)

func latticeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
