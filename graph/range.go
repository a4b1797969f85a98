// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/molgeom/linalg"
)

// DefaultCutoff is the RangeNeighbour distance cutoff.
const DefaultCutoff = 4.0

// Unlimited disables the k-nearest truncation.
const Unlimited = 0

const (
	panicCutoffInvalid      = "graph: WithCutoff: cutoff must be >= 0 and not NaN"
	panicMaxNeighborInvalid = "graph: WithMaxNeighbors: k must be >= 1"
)

// Option configures RangeNeighbour.
type Option func(*Options)

// Options is the resolved RangeNeighbour configuration.
type Options struct {
	Cutoff       float64 // inclusive; +Inf keeps all pairs
	SelfLoops    bool
	MaxNeighbors int // Unlimited or >= 1
}

// WithCutoff sets the inclusive distance cutoff. +Inf is allowed.
// Panics on negative or NaN values.
func WithCutoff(d float64) Option {
	if !(d >= 0) {
		panic(panicCutoffInvalid)
	}

	return func(o *Options) { o.Cutoff = d }
}

// WithSelfLoops adds the zero-length edge i→i for every node.
func WithSelfLoops() Option {
	return func(o *Options) { o.SelfLoops = true }
}

// WithMaxNeighbors keeps only the k nearest neighbours of every node.
// Panics if k < 1.
func WithMaxNeighbors(k int) Option {
	if k < 1 {
		panic(panicMaxNeighborInvalid)
	}

	return func(o *Options) { o.MaxNeighbors = k }
}

// DefaultOptions returns cutoff 4.0, no self-loops, no truncation.
func DefaultOptions() Options {
	return Options{Cutoff: DefaultCutoff, MaxNeighbors: Unlimited}
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

type candidate struct {
	j int
	d float64
}

// RangeNeighbour builds the cutoff graph of a point cloud (N×p).
//
// Implementation:
//   - Stage 1: pairwise distances.
//   - Stage 2: per node, targets with d ≤ cutoff (j ≠ i unless self-loops).
//   - Stage 3: stable sort by (distance, j); truncate to MaxNeighbors.
//
// Complexity: O(N²·(p + log N)).
func RangeNeighbour(points mat.Matrix, opts ...Option) (*Graph, error) {
	o := gatherOptions(opts)

	// Stage 1
	if err := linalg.ValidateNotNil(points); err != nil {
		return nil, fmt.Errorf("RangeNeighbour: %w: %w", ErrInvalidShape, err)
	}
	if err := linalg.ValidateFinite(points); err != nil {
		return nil, fmt.Errorf("RangeNeighbour: %w", err)
	}
	d, err := linalg.PairwiseDistances(points)
	if err != nil {
		return nil, fmt.Errorf("RangeNeighbour: %w", err)
	}
	n, _ := d.Dims()

	b := newBuilder(n)
	row := make([]candidate, 0, n)
	var i, j int
	for i = 0; i < n; i++ {
		// Stage 2
		row = row[:0]
		for j = 0; j < n; j++ {
			if j == i && !o.SelfLoops {
				continue
			}
			if dij := d.At(i, j); dij <= o.Cutoff {
				row = append(row, candidate{j: j, d: dij})
			}
		}

		// Stage 3
		sort.SliceStable(row, func(a, c int) bool {
			if row[a].d != row[c].d {
				return row[a].d < row[c].d
			}
			return row[a].j < row[c].j
		})
		if o.MaxNeighbors != Unlimited && len(row) > o.MaxNeighbors {
			row = row[:o.MaxNeighbors]
		}
		for _, c := range row {
			b.add(i, c.j, c.d)
		}
		b.closeRow(i)
	}

	return b.g, nil
}

// FromInverseDistance connects i→j (i ≠ j) when inv_ij > 0 and
// 1/inv_ij ≤ cutoff, as produced by coulomb.Decode. Zero entries (padding
// atoms) never form edges. Targets are in ascending order.
//
// Errors: ErrInvalidShape, ErrInvalidCutoff, linalg.ErrNaNInf.
// Complexity: O(N²).
func FromInverseDistance(inv mat.Matrix, cutoff float64) (*Graph, error) {
	if math.IsNaN(cutoff) || cutoff < 0 {
		return nil, fmt.Errorf("FromInverseDistance: %g: %w", cutoff, ErrInvalidCutoff)
	}
	n, err := linalg.ValidateSquare(inv)
	if err != nil {
		return nil, fmt.Errorf("FromInverseDistance: %w: %w", ErrInvalidShape, err)
	}
	if err = linalg.ValidateFinite(inv); err != nil {
		return nil, fmt.Errorf("FromInverseDistance: %w", err)
	}

	b := newBuilder(n)
	var i, j int
	var v, dij float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v = inv.At(i, j); i == j || v <= 0 {
				continue
			}
			if dij = 1 / v; dij <= cutoff {
				b.add(i, j, dij)
			}
		}
		b.closeRow(i)
	}

	return b.g, nil
}
