// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/molgeom/graph"
	"github.com/katalvlaran/molgeom/lattice"
	"github.com/katalvlaran/molgeom/logging"
	"github.com/katalvlaran/molgeom/structio"
)

// GraphResult is the serialised form of a neighbour graph.
type GraphResult struct {
	NumNodes  int             `yaml:"num_nodes" json:"num_nodes"`
	Edges     [][2]int        `yaml:"edges" json:"edges"`
	RowSplits []int           `yaml:"row_splits" json:"row_splits"`
	Distances []float64       `yaml:"distances" json:"distances"`
	Images    []lattice.Image `yaml:"images,omitempty" json:"images,omitempty"`
}

func newGraphResult(g *graph.Graph) GraphResult {
	return GraphResult{
		NumNodes:  g.NumNodes,
		Edges:     g.Edges,
		RowSplits: g.RowSplits,
		Distances: g.Distances,
		Images:    g.Images,
	}
}

func newNeighborsCmd() *cobra.Command {
	d := defaults()
	cmd := &cobra.Command{
		Use:   "neighbors <structure>",
		Short: "List neighbours within a cutoff (periodic when the structure has a lattice)",
		Args:  cobra.ExactArgs(1),
		RunE:  runNeighbors,
	}

	f := cmd.Flags()
	f.Float64("cutoff", d.Neighbors.Cutoff, "inclusive distance cutoff")
	f.Bool("self-loops", d.Neighbors.SelfLoops, "keep the zero-length self edge of every atom")
	f.Bool("sort", d.Neighbors.Sort, "sort neighbours of each atom by distance")
	f.Bool("unbounded", d.Neighbors.Unbounded, "periodic only: skip the cutoff filter")
	f.Bool("wrap", d.Neighbors.Wrap, "periodic only: wrap atoms into the cell first")
	f.Int("max-neighbors", d.Neighbors.MaxNeighbors, "molecules only: keep the k nearest (0 = all)")

	return cmd
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	s, err := structio.Load(args[0])
	if err != nil {
		return err
	}
	pts, err := s.CartesianCoordinates()
	if err != nil {
		return err
	}
	cfg := cliCtx.Config.Neighbors
	log := cliCtx.Logger.Named("neighbors")

	var g *graph.Graph
	if len(s.Lattice) > 0 {
		g, err = periodicGraph(s, pts, cfg.Cutoff, cfg.SelfLoops, cfg.Sort, cfg.Unbounded, cfg.Wrap, log)
	} else {
		opts := []graph.Option{graph.WithCutoff(cfg.Cutoff)}
		if cfg.SelfLoops {
			opts = append(opts, graph.WithSelfLoops())
		}
		if cfg.MaxNeighbors > 0 {
			opts = append(opts, graph.WithMaxNeighbors(cfg.MaxNeighbors))
		}
		g, err = graph.RangeNeighbour(pts, opts...)
	}
	if err != nil {
		return err
	}

	log.Info("neighbour graph built",
		logging.String("structure", args[0]),
		logging.Int("nodes", g.NumNodes),
		logging.Int("edges", g.NumEdges()),
		logging.Bool("periodic", g.Images != nil),
	)

	return printResult(cmd, newGraphResult(g))
}

func periodicGraph(s *structio.Structure, pts *mat.Dense, cutoff float64, selfLoops, sorted, unbounded, wrap bool, log logging.Logger) (*graph.Graph, error) {
	l, err := s.LatticeValue()
	if err != nil {
		return nil, err
	}
	if wrap {
		if pts, err = lattice.WrapCartesian(pts, l); err != nil {
			return nil, err
		}
	}

	opts := []lattice.Option{lattice.WithMaxDistance(cutoff), lattice.WithLogger(log)}
	if unbounded {
		opts = append(opts, lattice.WithUnbounded())
	}
	if selfLoops {
		opts = append(opts, lattice.WithSelfLoops())
	}
	if !sorted {
		opts = append(opts, lattice.WithoutSorting())
	}

	nl, err := lattice.RangeNeighbourLattice(pts, l.Matrix(), opts...)
	if err != nil {
		return nil, err
	}
	n, _ := pts.Dims()
	g, err := graph.FromNeighborList(n, nl)
	if err != nil {
		return nil, fmt.Errorf("assemble graph: %w", err)
	}

	return g, nil
}
