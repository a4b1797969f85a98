// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/molgeom/linalg"
)

// degeneracyTolerance is the relative volume below which a cell counts as flat.
const degeneracyTolerance = 1e-10

// Lattice is a real-space periodic basis. Vectors are rows: a, b, c.
type Lattice struct {
	vecs [3]r3.Vec
	det  float64
}

// NewLattice builds a Lattice from a 3×3 matrix whose rows are the basis
// vectors.
//
// Errors: ErrInvalidShape, linalg.ErrNaNInf, ErrDegenerateLattice.
func NewLattice(m mat.Matrix) (Lattice, error) {
	if err := linalg.ValidateShape(m, 3, 3); err != nil {
		return Lattice{}, fmt.Errorf("%s: %w: %w", opNewLattice, ErrInvalidShape, err)
	}
	if err := linalg.ValidateFinite(m); err != nil {
		return Lattice{}, latticeErrorf(opNewLattice, err)
	}

	var v [3]r3.Vec
	for k := 0; k < 3; k++ {
		v[k] = r3.Vec{X: m.At(k, 0), Y: m.At(k, 1), Z: m.At(k, 2)}
	}

	return fromVectors(v)
}

// FromVectors builds a Lattice from three basis vectors.
func FromVectors(a, b, c r3.Vec) (Lattice, error) {
	return fromVectors([3]r3.Vec{a, b, c})
}

func fromVectors(v [3]r3.Vec) (Lattice, error) {
	la, lb, lc := r3.Norm(v[0]), r3.Norm(v[1]), r3.Norm(v[2])
	if la == 0 || lb == 0 || lc == 0 {
		return Lattice{}, latticeErrorf(opNewLattice, ErrDegenerateLattice)
	}
	// Triple product a·(b×c).
	det := r3.Dot(v[0], r3.Cross(v[1], v[2]))
	if math.Abs(det) <= degeneracyTolerance*la*lb*lc {
		return Lattice{}, fmt.Errorf("%s: det=%g: %w", opNewLattice, det, ErrDegenerateLattice)
	}

	return Lattice{vecs: v, det: det}, nil
}

// FromParameters builds a Lattice from cell lengths a, b, c and angles
// alpha (b∧c), beta (a∧c), gamma (a∧b) in degrees. The a vector lies along
// x and b in the xy plane.
//
// Errors: ErrInvalidParameters, ErrDegenerateLattice.
func FromParameters(a, b, c, alpha, beta, gamma float64) (Lattice, error) {
	for _, x := range []float64{a, b, c, alpha, beta, gamma} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Lattice{}, latticeErrorf(opFromParams, ErrInvalidParameters)
		}
	}
	if a <= 0 || b <= 0 || c <= 0 {
		return Lattice{}, fmt.Errorf("%s: lengths must be > 0: %w", opFromParams, ErrInvalidParameters)
	}
	for _, ang := range []float64{alpha, beta, gamma} {
		if ang <= 0 || ang >= 180 {
			return Lattice{}, fmt.Errorf("%s: angles must lie in (0, 180): %w", opFromParams, ErrInvalidParameters)
		}
	}

	ca, cb, cg := cosDeg(alpha), cosDeg(beta), cosDeg(gamma)
	sg := math.Sin(gamma * math.Pi / 180)
	cy := (ca - cb*cg) / sg
	cz2 := 1 - cb*cb - cy*cy
	if cz2 <= 0 {
		return Lattice{}, fmt.Errorf("%s: angles do not close a cell: %w", opFromParams, ErrInvalidParameters)
	}

	l, err := FromVectors(
		r3.Vec{X: a},
		r3.Vec{X: b * cg, Y: b * sg},
		r3.Vec{X: c * cb, Y: c * cy, Z: c * math.Sqrt(cz2)},
	)
	if err != nil {
		return Lattice{}, latticeErrorf(opFromParams, err)
	}

	return l, nil
}

// cosDeg snaps the right angle to an exact zero so orthogonal cells stay
// exactly orthogonal.
func cosDeg(deg float64) float64 {
	if deg == 90 {
		return 0
	}

	return math.Cos(deg * math.Pi / 180)
}

// Parameters returns the cell lengths and angles (degrees).
func (l Lattice) Parameters() (a, b, c, alpha, beta, gamma float64) {
	a, b, c = r3.Norm(l.vecs[0]), r3.Norm(l.vecs[1]), r3.Norm(l.vecs[2])
	alpha = angleDeg(l.vecs[1], l.vecs[2])
	beta = angleDeg(l.vecs[0], l.vecs[2])
	gamma = angleDeg(l.vecs[0], l.vecs[1])

	return a, b, c, alpha, beta, gamma
}

func angleDeg(u, v r3.Vec) float64 {
	cos := r3.Dot(u, v) / (r3.Norm(u) * r3.Norm(v))

	return math.Acos(math.Max(-1, math.Min(1, cos))) * 180 / math.Pi
}

// Vector returns basis vector k (0, 1 or 2).
func (l Lattice) Vector(k int) r3.Vec { return l.vecs[k] }

// Volume returns the (positive) cell volume.
func (l Lattice) Volume() float64 { return math.Abs(l.det) }

// Matrix returns the basis as a fresh 3×3 matrix with vectors in rows.
func (l Lattice) Matrix() *mat.Dense {
	m := mat.NewDense(3, 3, nil)
	for k, v := range l.vecs {
		m.SetRow(k, []float64{v.X, v.Y, v.Z})
	}

	return m
}

// Shift returns the real-space translation n·L of image n.
func (l Lattice) Shift(n Image) r3.Vec {
	var s r3.Vec
	for k := 0; k < 3; k++ {
		if n[k] != 0 {
			s = r3.Add(s, r3.Scale(float64(n[k]), l.vecs[k]))
		}
	}

	return s
}

// inverseTranspose returns inv(Lᵀ). Row k maps a Cartesian vector onto
// fractional coordinate k.
func (l Lattice) inverseTranspose() (*mat.Dense, error) {
	var inv mat.Dense
	if err := inv.Inverse(l.Matrix().T()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDegenerateLattice, err)
	}

	return &inv, nil
}

// FractionalToCartesian maps fractional coordinates (N×3) to Cartesian
// ones: r = f·L.
func FractionalToCartesian(frac mat.Matrix, l Lattice) (*mat.Dense, error) {
	if err := linalg.ValidateShape(frac, linalg.AnyDim, 3); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opFracToCart, ErrInvalidShape, err)
	}
	var out mat.Dense
	out.Mul(frac, l.Matrix())

	return &out, nil
}

// CartesianToFractional maps Cartesian coordinates (N×3) to fractional
// ones: f = r·inv(L).
func CartesianToFractional(cart mat.Matrix, l Lattice) (*mat.Dense, error) {
	if err := linalg.ValidateShape(cart, linalg.AnyDim, 3); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opCartToFrac, ErrInvalidShape, err)
	}
	invT, err := l.inverseTranspose()
	if err != nil {
		return nil, latticeErrorf(opCartToFrac, err)
	}
	var out mat.Dense
	out.Mul(cart, invT.T())

	return &out, nil
}

// WrapCartesian translates every atom (N×3, Cartesian) into the cell so
// that its fractional coordinates lie in [0, 1).
func WrapCartesian(cart mat.Matrix, l Lattice) (*mat.Dense, error) {
	frac, err := CartesianToFractional(cart, l)
	if err != nil {
		return nil, err
	}
	r, c := frac.Dims()
	var i, j int
	var f float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			f = frac.At(i, j)
			f -= math.Floor(f)
			if f >= 1 {
				f = 0
			}
			frac.Set(i, j, f)
		}
	}

	return FractionalToCartesian(frac, l)
}
