// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/molgeom/distgeom"
	"github.com/katalvlaran/molgeom/internal/config"
	"github.com/katalvlaran/molgeom/logging"
	"github.com/katalvlaran/molgeom/rotation"
	"github.com/katalvlaran/molgeom/structio"
)

func defaults() *config.Config { return config.Default() }

// AlignResult is the serialised Kabsch alignment.
type AlignResult struct {
	Rotation    [][]float64 `yaml:"rotation" json:"rotation"`
	Translation []float64   `yaml:"translation" json:"translation"`
	Reflection  bool        `yaml:"reflection" json:"reflection"`
	RMSD        float64     `yaml:"rmsd" json:"rmsd"`
	Aligned     [][]float64 `yaml:"aligned" json:"aligned"`
}

// FrameResult pairs a rotation with the rotated structure.
type FrameResult struct {
	Rotation  [][]float64          `yaml:"rotation" json:"rotation"`
	Structure *structio.Structure `yaml:"structure" json:"structure"`
}

func newMDSCmd() *cobra.Command {
	d := defaults()
	cmd := &cobra.Command{
		Use:   "mds <structure>",
		Short: "Reconstruct coordinates from the distance matrix (or coordinates) of a structure",
		Args:  cobra.ExactArgs(1),
		RunE:  runMDS,
	}

	f := cmd.Flags()
	f.Int("dim", d.MDS.Dim, "embedding dimension")
	f.Int("center", d.MDS.Center, "atom placed at the origin (-1 = centroid)")
	f.Bool("strict", d.MDS.Strict, "fail on non-Euclidean distance matrices")

	return cmd
}

func runMDS(cmd *cobra.Command, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	s, err := structio.Load(args[0])
	if err != nil {
		return err
	}

	var dm *mat.Dense
	if len(s.DistanceMatrix) > 0 {
		dm, err = s.DistanceMatrixDense()
	} else {
		var pts *mat.Dense
		if pts, err = s.CartesianCoordinates(); err == nil {
			dm, err = distgeom.DistanceMatrix(pts)
		}
	}
	if err != nil {
		return err
	}

	cfg := cliCtx.Config.MDS
	opts := []distgeom.Option{
		distgeom.WithDim(cfg.Dim),
		distgeom.WithLogger(cliCtx.Logger.Named("mds")),
	}
	if cfg.Center >= 0 {
		opts = append(opts, distgeom.WithCenter(cfg.Center))
	}
	if cfg.Strict {
		opts = append(opts, distgeom.WithStrictEuclidean())
	}

	x, err := distgeom.CoordinatesFromDistanceMatrix(dm, opts...)
	if err != nil {
		return err
	}

	return printResult(cmd, &structio.Structure{
		Name:          s.Name,
		AtomicNumbers: s.AtomicNumbers,
		Coordinates:   structio.FromDense(x),
	})
}

func newAlignCmd() *cobra.Command {
	d := defaults()
	cmd := &cobra.Command{
		Use:   "align <mobile> <reference>",
		Short: "Find the rigid motion that best maps mobile onto reference (Kabsch)",
		Args:  cobra.ExactArgs(2),
		RunE:  runAlign,
	}
	cmd.Flags().Bool("correct-reflection", d.Align.CorrectReflection, "force a proper rotation")

	return cmd
}

func runAlign(cmd *cobra.Command, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	a, err := loadPoints(args[0])
	if err != nil {
		return err
	}
	b, err := loadPoints(args[1])
	if err != nil {
		return err
	}

	opts := []rotation.Option{rotation.WithLogger(cliCtx.Logger.Named("align"))}
	if cliCtx.Config.Align.CorrectReflection {
		opts = append(opts, rotation.WithCorrectReflection())
	}
	al, err := rotation.RigidTransform(a, b, opts...)
	if err != nil {
		return err
	}
	rmsd, err := rotation.RMSD(al.Aligned, b)
	if err != nil {
		return err
	}

	cliCtx.Logger.Debug("alignment done", logging.Float64("rmsd", rmsd), logging.Bool("reflection", al.Reflection))

	return printResult(cmd, AlignResult{
		Rotation:    structio.FromDense(al.R),
		Translation: mat.Col(nil, 0, al.T),
		Reflection:  al.Reflection,
		RMSD:        rmsd,
		Aligned:     structio.FromDense(al.Aligned),
	})
}

func newPrincipalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "principal <structure>",
		Short: "Rotate a structure onto its principal axes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := structio.Load(args[0])
			if err != nil {
				return err
			}
			pts, err := s.CartesianCoordinates()
			if err != nil {
				return err
			}
			R, rotated, err := rotation.RotateToPrincipalAxis(pts)
			if err != nil {
				return err
			}

			return printResult(cmd, FrameResult{Rotation: structio.FromDense(R), Structure: rotatedCopy(s, rotated)})
		},
	}
}

func newRotateCmd() *cobra.Command {
	var axis []float64
	var angle float64
	cmd := &cobra.Command{
		Use:   "rotate <structure>",
		Short: "Rotate a structure about an axis through the origin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(axis) != 3 {
				return fmt.Errorf("--axis needs 3 components, got %d", len(axis))
			}
			s, err := structio.Load(args[0])
			if err != nil {
				return err
			}
			pts, err := s.CartesianCoordinates()
			if err != nil {
				return err
			}
			R, err := rotation.MakeRotationMatrix(r3.Vec{X: axis[0], Y: axis[1], Z: axis[2]}, angle)
			if err != nil {
				return err
			}
			rotated, err := rotation.Apply(R, pts)
			if err != nil {
				return err
			}

			return printResult(cmd, FrameResult{Rotation: structio.FromDense(R), Structure: rotatedCopy(s, rotated)})
		},
	}
	cmd.Flags().Float64SliceVar(&axis, "axis", []float64{0, 0, 1}, "rotation axis x,y,z")
	cmd.Flags().Float64Var(&angle, "angle", 0, "rotation angle in degrees")

	return cmd
}

// rotatedCopy returns s with Cartesian coordinates replaced; the lattice
// does not follow the rotation and is dropped.
func rotatedCopy(s *structio.Structure, pts mat.Matrix) *structio.Structure {
	return &structio.Structure{
		Name:          s.Name,
		AtomicNumbers: s.AtomicNumbers,
		Coordinates:   structio.FromDense(pts),
	}
}

func loadPoints(path string) (*mat.Dense, error) {
	s, err := structio.Load(path)
	if err != nil {
		return nil, err
	}

	return s.CartesianCoordinates()
}
