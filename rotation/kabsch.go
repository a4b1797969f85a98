// SPDX-License-Identifier: MIT

package rotation

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/molgeom/linalg"
	"github.com/katalvlaran/molgeom/logging"
)

// Alignment is the result of RigidTransform.
type Alignment struct {
	// Aligned is A rotated and translated onto B (N×3): Aligned[i] = R·A[i] + T.
	Aligned *mat.Dense
	// R is the 3×3 rotation (or reflection, see Reflection).
	R *mat.Dense
	// T is the translation, T = c_B − R·c_A.
	T *mat.VecDense
	// Reflection reports that the optimal orthogonal matrix had det < 0.
	// With WithCorrectReflection, R has been corrected to a proper rotation.
	Reflection bool
}

// RigidTransform aligns point cloud a onto b with the Kabsch algorithm.
// Rows of a and b are matched by index; both must be N×3.
//
// Implementation:
//   - Stage 1: validate shapes and center both clouds (c_A, c_B).
//   - Stage 2: cross-covariance H = A_cᵀ·B_c (3×3) and its SVD H = U·Σ·Vᵀ.
//   - Stage 3: R = V·Uᵀ. If det(R) < 0, log a warning; when correcting,
//     negate the last column of V and recompute R.
//   - Stage 4: T = c_B − R·c_A; Aligned = A_c·Rᵀ + c_B.
//
// Errors:
//   - ErrInvalidShape for non N×3 inputs or differing N.
//   - linalg.ErrSVDFailed if the decomposition does not converge.
//
// Complexity: O(N).
func RigidTransform(a, b mat.Matrix, opts ...Option) (*Alignment, error) {
	o := gatherOptions(opts)

	// Stage 1: validate and center.
	if err := validatePoints(a, 3); err != nil {
		return nil, rotationErrorf(opRigid, err)
	}
	if err := validatePoints(b, 3); err != nil {
		return nil, rotationErrorf(opRigid, err)
	}
	na, _ := a.Dims()
	nb, _ := b.Dims()
	if na != nb {
		return nil, rotationErrorf(opRigid, fmt.Errorf("%d vs %d points: %w", na, nb, ErrInvalidShape))
	}

	ac, centroidA, err := linalg.CenterColumns(a)
	if err != nil {
		return nil, rotationErrorf(opRigid, err)
	}
	bc, centroidB, err := linalg.CenterColumns(b)
	if err != nil {
		return nil, rotationErrorf(opRigid, err)
	}

	// Stage 2: cross-covariance and SVD.
	var h mat.Dense
	h.Mul(ac.T(), bc)
	dec, err := linalg.SVD(&h)
	if err != nil {
		return nil, rotationErrorf(opRigid, err)
	}

	// Stage 3: optimal orthogonal matrix.
	R := mat.NewDense(3, 3, nil)
	R.Mul(dec.V, dec.U.T())

	det, err := linalg.Det(R)
	if err != nil {
		return nil, rotationErrorf(opRigid, err)
	}
	reflection := det < 0
	if reflection {
		o.Logger.Warn("rigid transform: det(R) < 0, optimal fit is a reflection",
			logging.Float64("det", det),
			logging.Bool("correct_reflection", o.CorrectReflection),
			logging.Int("points", na))
		if o.CorrectReflection {
			v := mat.DenseCopyOf(dec.V)
			for i := 0; i < 3; i++ {
				v.Set(i, 2, -v.At(i, 2))
			}
			R.Mul(v, dec.U.T())
		}
	}

	// Stage 4: translation and aligned copy.
	ca := mat.NewVecDense(3, centroidA)
	var rca mat.VecDense
	rca.MulVec(R, ca)
	t := mat.NewVecDense(3, nil)
	t.SubVec(mat.NewVecDense(3, centroidB), &rca)

	var rotated mat.Dense
	rotated.Mul(ac, R.T())
	aligned, err := linalg.AddRowVector(&rotated, centroidB)
	if err != nil {
		return nil, rotationErrorf(opRigid, err)
	}

	return &Alignment{Aligned: aligned, R: R, T: t, Reflection: reflection}, nil
}

// RMSD returns the root-mean-square deviation between two index-matched
// point clouds of identical shape.
func RMSD(a, b mat.Matrix) (float64, error) {
	if err := validatePoints(a, linalg.AnyDim); err != nil {
		return 0, err
	}
	ra, ca := a.Dims()
	if err := linalg.ValidateShape(b, ra, ca); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}

	var diff mat.Dense
	diff.Sub(a, b)
	f := mat.Norm(&diff, 2)

	return f / sqrtInt(ra), nil
}
