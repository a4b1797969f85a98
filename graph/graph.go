// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/molgeom/lattice"
)

// Graph is a directed edge list grouped by source node.
type Graph struct {
	NumNodes  int
	Edges     [][2]int // (source, target), grouped by source
	RowSplits []int    // len NumNodes+1
	Distances []float64
	Images    []lattice.Image // nil for non-periodic graphs
}

// NumEdges returns the number of directed edges.
func (g *Graph) NumEdges() int { return len(g.Edges) }

// Degree returns the out-degree of every node.
// Complexity: O(N).
func (g *Graph) Degree() []int {
	out := make([]int, g.NumNodes)
	for i := range out {
		out[i] = g.RowSplits[i+1] - g.RowSplits[i]
	}

	return out
}

// Neighbors returns the targets of node i in edge order, repeated once per
// periodic image.
//
// Errors: ErrNodeOutOfRange.
func (g *Graph) Neighbors(i int) ([]int, error) {
	if i < 0 || i >= g.NumNodes {
		return nil, fmt.Errorf("Neighbors: %d of %d: %w", i, g.NumNodes, ErrNodeOutOfRange)
	}
	s, e := g.RowSplits[i], g.RowSplits[i+1]
	out := make([]int, 0, e-s)
	for _, edge := range g.Edges[s:e] {
		out = append(out, edge[1])
	}

	return out, nil
}

// Adjacency returns the dense N×N edge-count matrix: entry (i, j) is the
// number of edges i→j (more than one across periodic images).
// Complexity: O(N² + E).
func (g *Graph) Adjacency() *mat.Dense {
	a := mat.NewDense(g.NumNodes, g.NumNodes, nil)
	for _, e := range g.Edges {
		a.Set(e[0], e[1], a.At(e[0], e[1])+1)
	}

	return a
}

// FromNeighborList converts a periodic neighbour list over n atoms.
//
// Errors: ErrInvalidShape when nl covers a different number of atoms,
// ErrNodeOutOfRange for a target outside [0, n).
// Complexity: O(E).
func FromNeighborList(n int, nl *lattice.NeighborList) (*Graph, error) {
	if nl == nil || nl.NumNodes() != n {
		return nil, fmt.Errorf("FromNeighborList: want %d atoms: %w", n, ErrInvalidShape)
	}

	m := nl.Len()
	g := &Graph{
		NumNodes:  n,
		Edges:     make([][2]int, m),
		RowSplits: make([]int, n+1),
		Distances: make([]float64, m),
		Images:    make([]lattice.Image, m),
	}
	for i := 0; i < n; i++ {
		_, end := nl.Row(i)
		g.RowSplits[i+1] = end
	}
	for k := 0; k < m; k++ {
		if j := nl.Indices[k][1]; j < 0 || j >= n {
			return nil, fmt.Errorf("FromNeighborList: entry %d target %d: %w", k, j, ErrNodeOutOfRange)
		}
		g.Edges[k] = nl.Indices[k]
		g.Distances[k] = nl.Distances[k]
		g.Images[k] = nl.Images[k]
	}

	return g, nil
}

// builder accumulates per-row edges of a non-periodic graph.
type builder struct {
	g *Graph
}

func newBuilder(n int) *builder {
	return &builder{g: &Graph{NumNodes: n, RowSplits: make([]int, n+1)}}
}

func (b *builder) add(i, j int, d float64) {
	b.g.Edges = append(b.g.Edges, [2]int{i, j})
	b.g.Distances = append(b.g.Distances, d)
}

func (b *builder) closeRow(i int) { b.g.RowSplits[i+1] = len(b.g.Edges) }
