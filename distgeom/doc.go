// SPDX-License-Identifier: MIT

// Package distgeom recovers point coordinates from pairwise distances with
// classical multidimensional scaling (MDS), and builds distance matrices
// from coordinates.
//
// Given an N×N Euclidean distance matrix D, the Gram matrix of the points
// relative to a reference is
//
//	M_ij = (d0_i² + d0_j² − d_ij²) / 2
//
// where d0_i is the distance of point i to the reference. By default the
// reference is the centroid, whose squared distances follow from D alone:
//
//	d0_i² = (1 / 2N²) · (2N·Σ_j d_ij² − Σ_i Σ_j d_ij²)
//
// WithCenter(k) uses atom k as the reference instead. M = U·Σ·Vᵀ and the
// coordinates are the first dim columns of U·√Σ. The embedding is unique up
// to a rigid motion (rotation, reflection, translation); compare results via
// their own distance matrices, not raw coordinates.
//
// Input is not checked for positive semi-definiteness up front. A retained
// component whose eigenvalue is negative (a singular pair with uₖ·vₖ < 0) is
// reported as a warning through the logger and the best-effort coordinates
// are returned; WithStrictEuclidean turns that into ErrNonEuclidean.
package distgeom
