// SPDX-License-Identifier: MIT

package rotation

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/molgeom/linalg"
)

var (
	// ErrInvalidShape indicates mismatched point-cloud dimensions.
	ErrInvalidShape = fmt.Errorf("rotation: %w", linalg.ErrInvalidShape)

	// ErrDegenerateAxis indicates a rotation axis with zero or non-finite norm.
	ErrDegenerateAxis = fmt.Errorf("rotation: zero-norm axis: %w", linalg.ErrDegenerateGeometry)

	// errNotFinite marks NaN/Inf in an input point cloud.
	errNotFinite = errors.New("rotation: non-finite coordinates")
)

const (
	opMakeRotation = "MakeRotationMatrix"
	opPrincipal    = "RotateToPrincipalAxis"
	opRestore      = "RestoreFromPrincipalAxis"
	opRigid        = "RigidTransform"
)

func rotationErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
