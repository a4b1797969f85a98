// SPDX-License-Identifier: MIT

// Package rotation provides rotation and rigid-alignment primitives for
// point clouds such as molecular coordinates.
//
// Overview:
//
//   - MakeRotationMatrix builds the Rodrigues matrix R (y = R·x) for a rotation
//     by an angle in degrees about an arbitrary, not necessarily normalized, axis.
//   - RotateToPrincipalAxis expresses a point cloud in its principal-axis frame
//     (PCA through the SVD of the covariance SᵀS), keeping the original centroid.
//     RestoreFromPrincipalAxis undoes it.
//   - RigidTransform implements the Kabsch algorithm: the least-squares rotation
//     and translation mapping A onto B for index-matched points.
//
// Conventions:
//
//   - Point clouds are N×p gonum matrices, one point per row.
//   - The principal-axis frame is the one returned by the SVD: columns of R are
//     principal directions, each defined up to sign. No canonicalization is
//     performed, so results may differ by a sign flip per axis across LAPACK
//     implementations.
//   - Kabsch never searches correspondences; row i of A is matched with row i of B.
//
// Reflections:
//
// When the optimal orthogonal matrix has det(R) < 0 the best fit is a
// reflection. RigidTransform always logs a warning through the configured
// logger and sets Alignment.Reflection. With WithCorrectReflection the sign of
// the last singular vector is flipped and a proper rotation is returned.
//
// Errors (sentinel, match with errors.Is):
//
//	ErrInvalidShape   - wrong dimensions (wraps linalg.ErrInvalidShape).
//	ErrDegenerateAxis - zero-norm or non-finite rotation axis (wraps linalg.ErrDegenerateGeometry).
//
// All functions are pure: inputs are not modified and outputs never alias them.
package rotation
