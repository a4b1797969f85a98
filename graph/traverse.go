// SPDX-License-Identifier: MIT

package graph

import "fmt"

// Unreached marks nodes a traversal never visited.
const Unreached = -1

// BFSResult holds the outcome of a breadth-first traversal.
type BFSResult struct {
	Order  []int // visit order
	Depth  []int // hop count from the start, Unreached if not visited
	Parent []int // BFS-tree parent, Unreached for the start and unvisited nodes
}

// queueItem pairs a node with its BFS depth.
type queueItem struct {
	node  int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	g        *Graph
	maxDepth int
	queue    []queueItem
	res      *BFSResult
}

// BFS walks g from start along edge direction. maxDepth > 0 stops the walk
// that many hops out; 0 means unlimited. Periodic copies of an edge are
// followed once.
//
// Errors: ErrNodeOutOfRange.
// Complexity: O(N + E).
func (g *Graph) BFS(start, maxDepth int) (*BFSResult, error) {
	if start < 0 || start >= g.NumNodes {
		return nil, fmt.Errorf("BFS: start %d of %d: %w", start, g.NumNodes, ErrNodeOutOfRange)
	}

	w := &walker{
		g:        g,
		maxDepth: maxDepth,
		queue:    make([]queueItem, 0, g.NumNodes),
		res:      newBFSResult(g.NumNodes),
	}
	w.enqueue(start, 0, Unreached)
	w.loop()

	return w.res, nil
}

func newBFSResult(n int) *BFSResult {
	r := &BFSResult{
		Order:  make([]int, 0, n),
		Depth:  make([]int, n),
		Parent: make([]int, n),
	}
	for i := 0; i < n; i++ {
		r.Depth[i] = Unreached
		r.Parent[i] = Unreached
	}

	return r
}

// enqueue marks node visited at depth d and records its parent.
func (w *walker) enqueue(node, d, parent int) {
	w.res.Depth[node] = d
	w.res.Parent[node] = parent
	w.queue = append(w.queue, queueItem{node: node, depth: d})
}

// loop processes the queue until empty.
func (w *walker) loop() {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.node)

		next := item.depth + 1
		if w.maxDepth > 0 && next > w.maxDepth {
			continue
		}
		for _, e := range w.g.Edges[w.g.RowSplits[item.node]:w.g.RowSplits[item.node+1]] {
			if w.res.Depth[e[1]] == Unreached {
				w.enqueue(e[1], next, item.node)
			}
		}
	}
}

// Components labels weakly connected components (edge direction ignored)
// in order of their smallest node and returns the labels and their count.
// In a molecular graph these are the separate fragments.
// Complexity: O(N + E).
func (g *Graph) Components() ([]int, int) {
	und := g.undirected()
	labels := make([]int, g.NumNodes)
	for i := range labels {
		labels[i] = Unreached
	}

	count := 0
	for i := 0; i < g.NumNodes; i++ {
		if labels[i] != Unreached {
			continue
		}
		res, _ := und.BFS(i, 0)
		for _, v := range res.Order {
			labels[v] = count
		}
		count++
	}

	return labels, count
}

// undirected returns g with every edge also present reversed, grouped by
// source. Distances and images are not carried over.
func (g *Graph) undirected() *Graph {
	b := newBuilder(g.NumNodes)
	rev := make([][]int, g.NumNodes)
	for _, e := range g.Edges {
		rev[e[1]] = append(rev[e[1]], e[0])
	}
	for i := 0; i < g.NumNodes; i++ {
		for _, e := range g.Edges[g.RowSplits[i]:g.RowSplits[i+1]] {
			b.add(i, e[1], 0)
		}
		for _, j := range rev[i] {
			b.add(i, j, 0)
		}
		b.closeRow(i)
	}

	return b.g
}
