// SPDX-License-Identifier: MIT

// Package lattice implements periodic neighbour search for crystal
// structures.
//
// A Lattice holds three real-space basis vectors (the rows of a 3×3 matrix).
// RangeNeighbourLattice lists, for every atom of the central unit cell, all
// atoms of the central cell and of its periodic images within a cutoff
// radius. The search is split into stages that can be used and tested on
// their own:
//
//  1. CellRadius / BoundingBox: the half-diagonal of the cell and the
//     integer index box that must be scanned for a given shell radius.
//  2. Images: non-zero integer offsets in the box whose translation lies
//     inside the shell (coarse prune).
//  3. Candidates: per central atom, every (j, image) pair with its
//     displacement and distance. Central image first.
//  4. SortByDistance: stable sort by (distance, j, image).
//  5. Filter: drop entries beyond the cutoff and flatten to a NeighborList.
//
// Coordinates are Cartesian and in the same unit as the lattice vectors;
// use FractionalToCartesian for fractional input. Atoms need not lie inside
// the cell: the shell grows with the spread of the coordinates.
//
// Every pair (i, j, n) in the result has a partner (j, i, −n) with exactly
// the same distance, and results are bit-identical across runs.
package lattice
