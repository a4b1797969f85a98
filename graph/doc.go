// SPDX-License-Identifier: MIT

// Package graph assembles index-based graphs for graph neural networks from
// the geometric primitives of this module.
//
// A Graph is a flat directed edge list grouped by source node. RowSplits
// marks the segment of each node: the outgoing edges of node i are
// Edges[RowSplits[i]:RowSplits[i+1]]. Per-edge distances (and periodic
// images for crystals) are parallel to Edges.
//
// Sources:
//   - FromNeighborList: periodic neighbour lists from package lattice.
//   - RangeNeighbour: cutoff (and optionally k-nearest) graphs of molecules.
//   - FromInverseDistance: graphs from decoded Coulomb matrices.
//
// GaussBasis expands edge distances on a grid of Gaussians, the radial
// featurisation used by SchNet and CGCNN.
package graph
