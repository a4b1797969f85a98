// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/molgeom/linalg"
	"github.com/katalvlaran/molgeom/logging"
)

// NeighborList is the flattened result of a neighbour search. Entries of
// central atom i are contiguous and Row(i) gives their range.
type NeighborList struct {
	Indices       [][2]int // (i, j)
	Images        []Image
	Distances     []float64
	Displacements []r3.Vec // from atom i to the image of atom j

	rowStart []int
}

// Len returns the number of entries.
func (nl *NeighborList) Len() int { return len(nl.Distances) }

// NumNodes returns the number of central atoms.
func (nl *NeighborList) NumNodes() int {
	if len(nl.rowStart) == 0 {
		return 0
	}

	return len(nl.rowStart) - 1
}

// At returns entry k as a central index and its Neighbor.
func (nl *NeighborList) At(k int) (int, Neighbor) {
	return nl.Indices[k][0], Neighbor{
		J:            nl.Indices[k][1],
		Image:        nl.Images[k],
		Distance:     nl.Distances[k],
		Displacement: nl.Displacements[k],
	}
}

// Row returns the half-open entry range [start, end) of central atom i.
func (nl *NeighborList) Row(i int) (int, int) { return nl.rowStart[i], nl.rowStart[i+1] }

// Counts returns the number of entries per central atom.
func (nl *NeighborList) Counts() []int {
	out := make([]int, nl.NumNodes())
	for i := range out {
		out[i] = nl.rowStart[i+1] - nl.rowStart[i]
	}

	return out
}

// RangeNeighbourLattice finds all neighbours within the cutoff of every atom
// of the central cell, across periodic images.
//
// coords is N×3 (Cartesian), lat is 3×3 with basis vectors in rows. Atoms
// may lie outside the cell; image offsets are then relative to the given
// positions, not to wrapped ones (see WrapCartesian).
//
// Implementation:
//   - Stage 1: validate and build the Lattice.
//   - Stage 2: shell radius R = cutoff + max‖rⱼ − rᵢ‖ over all atom pairs.
//     A neighbour through image n satisfies ‖rⱼ − rᵢ + n·L‖ ≤ cutoff, hence
//     ‖n·L‖ ≤ R. Unbounded: R = 2·CellRadius.
//   - Stage 3: Images(R), then Candidates.
//   - Stage 4: SortByDistance unless WithoutSorting.
//   - Stage 5: Filter by the cutoff unless WithUnbounded.
//
// Errors: ErrInvalidShape, linalg.ErrNaNInf, ErrDegenerateLattice.
// Complexity: O(N²·K) time and memory for K images in the shell.
func RangeNeighbourLattice(coords mat.Matrix, lat mat.Matrix, opts ...Option) (*NeighborList, error) {
	o := gatherOptions(opts)

	// Stage 1
	if err := linalg.ValidateShape(coords, linalg.AnyDim, 3); err != nil {
		return nil, fmt.Errorf("%s: coordinates: %w: %w", opRangeLattice, ErrInvalidShape, err)
	}
	if err := linalg.ValidateFinite(coords); err != nil {
		return nil, latticeErrorf(opRangeLattice, err)
	}
	l, err := NewLattice(lat)
	if err != nil {
		return nil, latticeErrorf(opRangeLattice, err)
	}
	n, _ := coords.Dims()
	pts := make([]r3.Vec, n)
	for i := range pts {
		pts[i] = r3.Vec{X: coords.At(i, 0), Y: coords.At(i, 1), Z: coords.At(i, 2)}
	}

	// Stage 2
	radius := 2 * CellRadius(l)
	if o.Bounded {
		radius = o.MaxDistance + maxSeparation(pts)
	}

	// Stage 3
	images, err := Images(l, radius)
	if err != nil {
		return nil, latticeErrorf(opRangeLattice, err)
	}
	rows := Candidates(pts, l, images, o.SelfLoops)

	// Stage 4
	if o.Sort {
		SortByDistance(rows)
	}

	// Stage 5
	nl := Filter(rows, o.MaxDistance, o.Bounded)

	o.Logger.Debug("periodic neighbour search",
		logging.Int("atoms", n),
		logging.Int("images", len(images)),
		logging.Float64("shell_radius", radius),
		logging.Int("pairs", nl.Len()),
	)

	return nl, nil
}

// maxSeparation returns the largest distance between two points.
// Complexity: O(N²).
func maxSeparation(pts []r3.Vec) float64 {
	var best, d float64
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			if d = r3.Norm(r3.Sub(pts[j], pts[i])); d > best {
				best = d
			}
		}
	}

	return best
}
