// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Image is an integer lattice offset (n₀, n₁, n₂).
type Image [3]int

// Neg returns −n.
func (n Image) Neg() Image { return Image{-n[0], -n[1], -n[2]} }

// IsZero reports whether n is the central image.
func (n Image) IsZero() bool { return n == Image{} }

// compareImages orders images lexicographically.
func compareImages(a, b Image) int {
	for k := 0; k < 3; k++ {
		if a[k] != b[k] {
			if a[k] < b[k] {
				return -1
			}
			return 1
		}
	}

	return 0
}

// Neighbor is one candidate of a central atom: atom J in image Image, at
// Displacement from the central atom.
type Neighbor struct {
	J            int
	Image        Image
	Distance     float64
	Displacement r3.Vec
}

// CellRadius returns the largest distance from the cell centre to any of
// its eight corners.
// Complexity: O(1).
func CellRadius(l Lattice) float64 {
	var best float64
	var e0, e1, e2 float64
	for mask := 0; mask < 8; mask++ {
		e0, e1, e2 = half(mask&1), half(mask&2), half(mask&4)
		v := r3.Add(r3.Add(r3.Scale(e0, l.vecs[0]), r3.Scale(e1, l.vecs[1])), r3.Scale(e2, l.vecs[2]))
		if d := r3.Norm(v); d > best {
			best = d
		}
	}

	return best
}

func half(bit int) float64 {
	if bit != 0 {
		return 0.5
	}

	return -0.5
}

// BoundingBox returns, per lattice direction, the largest |n_k| an image can
// have while its translation stays within radius:
//
//	box_k = ceil(radius · Σⱼ |inv(Lᵀ)_kj|)
//
// Errors: ErrInvalidCutoff, ErrDegenerateLattice.
// Complexity: O(1).
func BoundingBox(l Lattice, radius float64) ([3]int, error) {
	var box [3]int
	if !(radius >= 0) || math.IsInf(radius, 0) {
		return box, fmt.Errorf("%s: radius %g: %w", opBoundingBox, radius, ErrInvalidCutoff)
	}
	invT, err := l.inverseTranspose()
	if err != nil {
		return box, latticeErrorf(opBoundingBox, err)
	}

	var k, j int
	var s float64
	for k = 0; k < 3; k++ {
		s = 0
		for j = 0; j < 3; j++ {
			s += math.Abs(invT.At(k, j))
		}
		box[k] = int(math.Ceil(s * radius))
	}

	return box, nil
}

// Images enumerates every non-zero offset n with |n_k| ≤ box_k and
// ‖n·L‖ ≤ radius, in lexicographic order of (n₀, n₁, n₂).
//
// Errors: as BoundingBox.
// Complexity: O(Π(2·box_k+1)).
func Images(l Lattice, radius float64) ([]Image, error) {
	box, err := BoundingBox(l, radius)
	if err != nil {
		return nil, latticeErrorf(opImages, err)
	}

	out := make([]Image, 0, (2*box[0]+1)*(2*box[1]+1)*(2*box[2]+1)-1)
	var n Image
	for n[0] = -box[0]; n[0] <= box[0]; n[0]++ {
		for n[1] = -box[1]; n[1] <= box[1]; n[1]++ {
			for n[2] = -box[2]; n[2] <= box[2]; n[2]++ {
				if n.IsZero() {
					continue
				}
				if r3.Norm(l.Shift(n)) <= radius {
					out = append(out, n)
				}
			}
		}
	}

	return out, nil
}

// Candidates lists, per central atom i, the central-image atoms j ≠ i (and
// i itself when selfLoops is set) in ascending j, followed by every atom j
// in every image in enumeration order (j outer, image inner).
//
// The displacement is (r_j − r_i) + n·L, so the (j, i, −n) candidate holds
// the exact negation and the same distance.
// Complexity: O(N²·K) for K images.
func Candidates(coords []r3.Vec, l Lattice, images []Image, selfLoops bool) [][]Neighbor {
	n := len(coords)
	shifts := make([]r3.Vec, len(images))
	for k, img := range images {
		shifts[k] = l.Shift(img)
	}

	rows := make([][]Neighbor, n)
	var i, j, k int
	for i = 0; i < n; i++ {
		row := make([]Neighbor, 0, n*(len(images)+1))
		for j = 0; j < n; j++ {
			if j == i && !selfLoops {
				continue
			}
			d := r3.Sub(coords[j], coords[i])
			row = append(row, Neighbor{J: j, Distance: r3.Norm(d), Displacement: d})
		}
		for j = 0; j < n; j++ {
			base := r3.Sub(coords[j], coords[i])
			for k = 0; k < len(images); k++ {
				d := r3.Add(base, shifts[k])
				row = append(row, Neighbor{J: j, Image: images[k], Distance: r3.Norm(d), Displacement: d})
			}
		}
		rows[i] = row
	}

	return rows
}

// SortByDistance sorts each row in place by (distance, j, image).
// Complexity: O(Σ m log m).
func SortByDistance(rows [][]Neighbor) {
	for _, row := range rows {
		sort.SliceStable(row, func(a, b int) bool {
			return lessNeighbor(row[a], row[b])
		})
	}
}

func lessNeighbor(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	if a.J != b.J {
		return a.J < b.J
	}

	return compareImages(a.Image, b.Image) < 0
}

// Filter keeps entries with Distance ≤ maxDistance (all entries when
// bounded is false) and flattens the rows into a NeighborList.
// Complexity: O(Σ m).
func Filter(rows [][]Neighbor, maxDistance float64, bounded bool) *NeighborList {
	nl := &NeighborList{rowStart: make([]int, len(rows)+1)}
	for i, row := range rows {
		for _, nb := range row {
			if bounded && nb.Distance > maxDistance {
				continue
			}
			nl.Indices = append(nl.Indices, [2]int{i, nb.J})
			nl.Images = append(nl.Images, nb.Image)
			nl.Distances = append(nl.Distances, nb.Distance)
			nl.Displacements = append(nl.Displacements, nb.Displacement)
		}
		nl.rowStart[i+1] = len(nl.Distances)
	}

	return nl
}
