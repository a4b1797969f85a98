// SPDX-License-Identifier: MIT

package graph

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/molgeom/linalg"
)

var (
	// ErrInvalidShape indicates a malformed input matrix or neighbour list.
	ErrInvalidShape = fmt.Errorf("graph: %w", linalg.ErrInvalidShape)

	// ErrNodeOutOfRange indicates an index outside [0, NumNodes).
	ErrNodeOutOfRange = errors.New("graph: node index out of range")

	// ErrInvalidCutoff indicates a negative or NaN cutoff.
	ErrInvalidCutoff = errors.New("graph: invalid cutoff")

	// ErrNoDistances indicates an empty distance list for GaussBasis.
	ErrNoDistances = errors.New("graph: no distances to expand")
)
