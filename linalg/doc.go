// SPDX-License-Identifier: MIT

// Package linalg holds the small set of dense linear-algebra helpers shared
// by the geometry packages of molgeom.
//
// The heavy lifting (SVD, determinants, inverses) is delegated to
// gonum.org/v1/gonum/mat; this package adds what the geometry code needs on
// top of it:
//
//   - a unified sentinel error set (shape, degenerate geometry, SVD failure,
//     NaN/Inf) matched with errors.Is across every package,
//   - strict shape validators that fail fast before any allocation,
//   - centering helpers (column means, centroids) with fixed loop orders,
//   - a thin SVD facade returning U, Σ, V by value,
//   - AllClose for tolerance-based comparisons in tests and invariants.
//
// Determinism:
//   - No randomness, no map iteration; loops always run i→j.
//   - Every function returns freshly allocated matrices; inputs are never
//     mutated and outputs never alias inputs.
package linalg
