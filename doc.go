// SPDX-License-Identifier: MIT

// Package molgeom is a toolbox of geometric preprocessing for molecular and
// crystal graph neural networks.
//
// Everything lives in subpackages:
//
//	linalg/      shared validators, SVD, centring and pairwise distances (gonum)
//	rotation/    Rodrigues rotations, principal axes, Kabsch alignment
//	distgeom/    distance matrices and classical MDS reconstruction
//	coulomb/     Coulomb matrix encoding and decoding
//	lattice/     periodic lattices and staged neighbour search
//	graph/       edge lists with row splits, cutoff graphs, Gaussian basis
//	kfold/       deterministic k-fold splits
//	scaler/      target standardisation
//	structio/    YAML/JSON structure documents
//	logging/     structured logging facade over zap
//
// The molgeom command (cmd/molgeom) exposes the same operations on
// structure files.
//
// All operations are synchronous, never mutate their inputs and return
// freshly allocated results, so callers may parallelise across structures.
package molgeom
