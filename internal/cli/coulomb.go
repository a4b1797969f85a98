// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/molgeom/coulomb"
	"github.com/katalvlaran/molgeom/graph"
	"github.com/katalvlaran/molgeom/kfold"
	"github.com/katalvlaran/molgeom/logging"
	"github.com/katalvlaran/molgeom/structio"
)

// CoulombResult is the decoded form of a Coulomb matrix.
type CoulombResult struct {
	AtomicNumbers   []int       `yaml:"atomic_numbers" json:"atomic_numbers"`
	InverseDistance [][]float64 `yaml:"inverse_distance" json:"inverse_distance"`
	Graph           GraphResult `yaml:"graph" json:"graph"`
}

func newCoulombCmd() *cobra.Command {
	d := defaults()
	cmd := &cobra.Command{
		Use:   "coulomb <structure>",
		Short: "Decode a Coulomb matrix into charges, inverse distances and a graph",
		Long: "Decodes the coulomb_matrix section of a structure. Without one, the\n" +
			"matrix is first encoded from atomic_numbers and coordinates.",
		Args: cobra.ExactArgs(1),
		RunE: runCoulomb,
	}

	f := cmd.Flags()
	f.Float64("unit-conversion", d.Coulomb.UnitConversion, "distance unit conversion factor")
	f.Float64("edge-cutoff", d.Coulomb.EdgeCutoff, "connect atoms closer than this distance")

	return cmd
}

func runCoulomb(cmd *cobra.Command, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	s, err := structio.Load(args[0])
	if err != nil {
		return err
	}
	cfg := cliCtx.Config.Coulomb
	unit := coulomb.WithUnitConversion(cfg.UnitConversion)

	var cm *mat.Dense
	if len(s.CoulombMatrix) > 0 {
		cm, err = s.CoulombMatrixDense()
	} else {
		var pts *mat.Dense
		if pts, err = s.CartesianCoordinates(); err == nil {
			cm, err = coulomb.Encode(s.AtomicNumbers, pts, unit)
		}
	}
	if err != nil {
		return err
	}

	inv, z, err := coulomb.Decode(cm, unit)
	if err != nil {
		return err
	}
	g, err := graph.FromInverseDistance(inv, cfg.EdgeCutoff)
	if err != nil {
		return err
	}
	cliCtx.Logger.Debug("coulomb matrix decoded", logging.Int("atoms", len(z)), logging.Int("edges", g.NumEdges()))

	return printResult(cmd, CoulombResult{
		AtomicNumbers:   z,
		InverseDistance: structio.FromDense(inv),
		Graph:           newGraphResult(g),
	})
}

func newKFoldCmd() *cobra.Command {
	d := defaults()
	var n int
	cmd := &cobra.Command{
		Use:   "kfold",
		Short: "Print k-fold cross-validation index splits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config.KFold
			var opts []kfold.Option
			if cfg.Shuffle {
				opts = append(opts, kfold.WithShuffle(cfg.Seed))
			}
			folds, err := kfold.Split(n, cfg.Folds, opts...)
			if err != nil {
				return err
			}

			return printResult(cmd, folds)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&n, "samples", "n", 0, "number of samples")
	f.Int("folds", d.KFold.Folds, "number of folds")
	f.Bool("shuffle", d.KFold.Shuffle, "shuffle before splitting")
	f.Int64("seed", d.KFold.Seed, "shuffle seed (0 = default stream)")
	_ = cmd.MarkFlagRequired("samples")

	return cmd
}
