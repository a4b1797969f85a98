// SPDX-License-Identifier: MIT

package coulomb

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/molgeom/linalg"
)

// ChargeExponent is the power law linking the diagonal to the charge.
const ChargeExponent = 2.4

// DefaultUnitConversion leaves distances in the input unit.
const DefaultUnitConversion = 1.0

var (
	// ErrInvalidShape indicates a non-square Coulomb matrix or mismatched inputs.
	ErrInvalidShape = fmt.Errorf("coulomb: %w", linalg.ErrInvalidShape)

	// ErrNegativeDiagonal indicates a negative diagonal entry (no real charge).
	ErrNegativeDiagonal = errors.New("coulomb: negative diagonal entry")

	// ErrCoincidentAtoms indicates two atoms at the same position while encoding.
	ErrCoincidentAtoms = fmt.Errorf("coulomb: coincident atoms: %w", linalg.ErrDegenerateGeometry)

	// ErrNegativeCharge indicates a negative atomic number while encoding.
	ErrNegativeCharge = errors.New("coulomb: negative atomic number")
)

const panicUnitInvalid = "coulomb: WithUnitConversion: factor must be finite and > 0"

// Option configures Decode and Encode.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	UnitConversion float64 // > 0
}

// WithUnitConversion sets the distance unit conversion factor u.
// Panics on non-finite or non-positive factors.
func WithUnitConversion(u float64) Option {
	if !(u > 0) || math.IsInf(u, 0) {
		panic(panicUnitInvalid)
	}

	return func(o *Options) { o.UnitConversion = u }
}

func gatherOptions(opts []Option) Options {
	o := Options{UnitConversion: DefaultUnitConversion}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// Charges returns the unrounded nuclear charges Z_i = (2·C_ii)^(1/2.4).
//
// Errors: ErrInvalidShape, linalg.ErrNaNInf, ErrNegativeDiagonal.
// Complexity: O(N).
func Charges(c mat.Matrix) ([]float64, error) {
	n, err := linalg.ValidateSquare(c)
	if err != nil {
		return nil, fmt.Errorf("Charges: %w: %w", ErrInvalidShape, err)
	}
	if err = linalg.ValidateFinite(c); err != nil {
		return nil, fmt.Errorf("Charges: %w", err)
	}

	z := make([]float64, n)
	var cii float64
	for i := 0; i < n; i++ {
		cii = c.At(i, i)
		if cii < 0 {
			return nil, fmt.Errorf("Charges: at %d: %w", i, ErrNegativeDiagonal)
		}
		z[i] = math.Pow(2*cii, 1/ChargeExponent)
	}

	return z, nil
}

// Decode converts a Coulomb matrix into an inverse-distance matrix and
// integer atomic numbers.
//
// Implementation:
//   - Stage 1: Z from the diagonal (Charges).
//   - Stage 2: inv_ij = C_ij / (Z_i·Z_j) / u for i ≠ j with Z_i·Z_j ≠ 0; every
//     other entry (diagonal, zero-charge rows/columns) is exactly 0.
//   - Stage 3: round Z half away from zero.
//
// Complexity: O(N²).
func Decode(c mat.Matrix, opts ...Option) (*mat.Dense, []int, error) {
	o := gatherOptions(opts)

	z, err := Charges(c)
	if err != nil {
		return nil, nil, fmt.Errorf("Decode: %w", err)
	}
	n := len(z)

	inv := mat.NewDense(n, n, nil)
	var i, j int
	var zz float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			zz = z[i] * z[j]
			if zz == 0 {
				continue
			}
			inv.Set(i, j, c.At(i, j)/zz/o.UnitConversion)
		}
	}

	charges := make([]int, n)
	for i = 0; i < n; i++ {
		charges[i] = int(math.Round(z[i]))
	}

	return inv, charges, nil
}

// Encode builds the Coulomb matrix of atoms with atomic numbers z at the
// rows of points (N×3, or any N×p).
//
// Errors: ErrInvalidShape, ErrNegativeCharge, ErrCoincidentAtoms.
// Complexity: O(N²·p).
func Encode(z []int, points mat.Matrix, opts ...Option) (*mat.Dense, error) {
	o := gatherOptions(opts)

	if err := linalg.ValidateShape(points, len(z), linalg.AnyDim); err != nil {
		return nil, fmt.Errorf("Encode: %w: %w", ErrInvalidShape, err)
	}
	for i, zi := range z {
		if zi < 0 {
			return nil, fmt.Errorf("Encode: at %d: %w", i, ErrNegativeCharge)
		}
	}
	d, err := linalg.PairwiseDistances(points)
	if err != nil {
		return nil, fmt.Errorf("Encode: %w", err)
	}

	n := len(z)
	c := mat.NewDense(n, n, nil)
	var i, j int
	var dij float64
	for i = 0; i < n; i++ {
		c.Set(i, i, 0.5*math.Pow(float64(z[i]), ChargeExponent))
		for j = i + 1; j < n; j++ {
			dij = d.At(i, j)
			if dij == 0 {
				return nil, fmt.Errorf("Encode: atoms %d and %d: %w", i, j, ErrCoincidentAtoms)
			}
			v := o.UnitConversion * float64(z[i]*z[j]) / dij
			c.Set(i, j, v)
			c.Set(j, i, v)
		}
	}

	return c, nil
}
