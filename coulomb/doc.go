// SPDX-License-Identifier: MIT

// Package coulomb encodes and decodes the Coulomb-matrix representation of
// a molecule.
//
// For atoms with nuclear charges Z and positions r the Coulomb matrix is
//
//	C_ii = ½·Z_i^2.4
//	C_ij = u · Z_i·Z_j / ‖r_i − r_j‖      (i ≠ j)
//
// where u is a unit-conversion factor (1 by default). Decode inverts the
// relation: Z_i = (2·C_ii)^(1/2.4), the inverse-distance matrix is
// C_ij / (Z_i·Z_j) / u with a zero diagonal, and charges are rounded half
// away from zero to integer atomic numbers.
//
// Zero diagonal entries (dummy or padding atoms) decode to charge 0 and to
// zero rows and columns in the inverse-distance matrix; the division by zero
// never leaks NaN or Inf into the output.
package coulomb
