// SPDX-License-Identifier: MIT

package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/molgeom/lattice"
	"github.com/katalvlaran/molgeom/linalg"
	"github.com/katalvlaran/molgeom/logging"
)

var unitCube = mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})

type pairKey struct {
	i, j int
	img  lattice.Image
}

// triclinicFixture returns a skewed cell with four atoms inside it.
func triclinicFixture(t testing.TB) (lattice.Lattice, *mat.Dense) {
	t.Helper()
	l, err := lattice.FromParameters(3, 3.5, 4, 80, 95, 105)
	require.NoError(t, err)
	frac := mat.NewDense(4, 3, []float64{
		0.02, 0.03, 0.01,
		0.97, 0.98, 0.99,
		0.5, 0.25, 0.75,
		0.1, 0.9, 0.4,
	})
	cart, err := lattice.FractionalToCartesian(frac, l)
	require.NoError(t, err)
	return l, cart
}

func TestRangeNeighbourLattice_CubicSingleAtom(t *testing.T) {
	t.Parallel()

	nl, err := lattice.RangeNeighbourLattice(mat.NewDense(1, 3, nil), unitCube, lattice.WithMaxDistance(1.1))
	require.NoError(t, err)
	require.Equal(t, 6, nl.Len())
	assert.Equal(t, []lattice.Image{
		{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}, {0, 0, 1}, {0, 1, 0}, {1, 0, 0},
	}, nl.Images)
	for k := 0; k < nl.Len(); k++ {
		assert.Equal(t, [2]int{0, 0}, nl.Indices[k])
		assert.Equal(t, 1.0, nl.Distances[k])
	}

	withSelf, err := lattice.RangeNeighbourLattice(mat.NewDense(1, 3, nil), unitCube,
		lattice.WithMaxDistance(1.1), lattice.WithSelfLoops())
	require.NoError(t, err)
	require.Equal(t, nl.Len()+1, withSelf.Len())
	assert.Equal(t, 0.0, withSelf.Distances[0])
	assert.True(t, withSelf.Images[0].IsZero())
	assert.Equal(t, nl.Images, withSelf.Images[1:])
}

func TestRangeNeighbourLattice_SecondShell(t *testing.T) {
	t.Parallel()

	// 6 faces at 1, 12 edges at √2.
	nl, err := lattice.RangeNeighbourLattice(mat.NewDense(1, 3, nil), unitCube, lattice.WithMaxDistance(1.5))
	require.NoError(t, err)
	assert.Equal(t, 18, nl.Len())
}

func TestRangeNeighbourLattice_Unbounded(t *testing.T) {
	t.Parallel()

	// Shell is the cell diameter √3: faces, edges and corners.
	nl, err := lattice.RangeNeighbourLattice(mat.NewDense(1, 3, nil), unitCube, lattice.WithUnbounded())
	require.NoError(t, err)
	assert.Equal(t, 26, nl.Len())
}

func TestRangeNeighbourLattice_SortTieBreak(t *testing.T) {
	t.Parallel()

	coords := mat.NewDense(2, 3, []float64{0, 0, 0, 0.5, 0, 0})

	sorted, err := lattice.RangeNeighbourLattice(coords, unitCube, lattice.WithMaxDistance(0.6))
	require.NoError(t, err)
	s, e := sorted.Row(0)
	require.Equal(t, 2, e-s)
	assert.Equal(t, lattice.Image{-1, 0, 0}, sorted.Images[s])
	assert.Equal(t, lattice.Image{0, 0, 0}, sorted.Images[s+1])

	raw, err := lattice.RangeNeighbourLattice(coords, unitCube,
		lattice.WithMaxDistance(0.6), lattice.WithoutSorting())
	require.NoError(t, err)
	s, _ = raw.Row(0)
	assert.Equal(t, lattice.Image{0, 0, 0}, raw.Images[s], "central image first")
	assert.Equal(t, lattice.Image{-1, 0, 0}, raw.Images[s+1])
}

func TestRangeNeighbourLattice_AtomOutsideCell(t *testing.T) {
	t.Parallel()

	inside := mat.NewDense(2, 3, []float64{0, 0, 0, 0, 0, 0.5})
	outside := mat.NewDense(2, 3, []float64{0, 0, 0, 5, 0, 0.5})
	offsets := []lattice.Image{{0, 0, 0}, {5, 0, 0}}

	want, err := lattice.RangeNeighbourLattice(inside, unitCube, lattice.WithMaxDistance(0.6))
	require.NoError(t, err)
	require.Equal(t, 4, want.Len())

	got, err := lattice.RangeNeighbourLattice(outside, unitCube, lattice.WithMaxDistance(0.6))
	require.NoError(t, err)
	require.Equal(t, want.Len(), got.Len())
	assert.Equal(t, want.Indices, got.Indices)
	assert.InDeltaSlice(t, want.Distances, got.Distances, 1e-12)

	// Image offsets absorb the cell shift between the two inputs.
	for k := 0; k < want.Len(); k++ {
		i, j := want.Indices[k][0], want.Indices[k][1]
		var img lattice.Image
		for a := range img {
			img[a] = want.Images[k][a] + offsets[i][a] - offsets[j][a]
		}
		assert.Equal(t, img, got.Images[k], "pair %d", k)
	}

	wrapped, err := lattice.WrapCartesian(outside, cubic(t, 1))
	require.NoError(t, err)
	again, err := lattice.RangeNeighbourLattice(wrapped, unitCube, lattice.WithMaxDistance(0.6))
	require.NoError(t, err)
	assert.Equal(t, want.Images, again.Images)
}

func TestRangeNeighbourLattice_Symmetry(t *testing.T) {
	t.Parallel()

	l, cart := triclinicFixture(t)
	nl, err := lattice.RangeNeighbourLattice(cart, l.Matrix(), lattice.WithMaxDistance(3.5))
	require.NoError(t, err)
	require.Positive(t, nl.Len())

	dist := make(map[pairKey]float64, nl.Len())
	for k := 0; k < nl.Len(); k++ {
		dist[pairKey{nl.Indices[k][0], nl.Indices[k][1], nl.Images[k]}] = nl.Distances[k]
	}
	for k := 0; k < nl.Len(); k++ {
		partner := pairKey{nl.Indices[k][1], nl.Indices[k][0], nl.Images[k].Neg()}
		d, ok := dist[partner]
		require.True(t, ok, "missing partner of %v", partner)
		assert.Equal(t, nl.Distances[k], d)
		_, nb := nl.At(k)
		assert.InDelta(t, nb.Distance, r3.Norm(nb.Displacement), 0)
	}
}

func TestRangeNeighbourLattice_MatchesBruteForce(t *testing.T) {
	t.Parallel()

	const cutoff = 3.0
	l, cart := triclinicFixture(t)
	nl, err := lattice.RangeNeighbourLattice(cart, l.Matrix(), lattice.WithMaxDistance(cutoff))
	require.NoError(t, err)

	n, _ := cart.Dims()
	pts := make([]r3.Vec, n)
	for i := range pts {
		pts[i] = r3.Vec{X: cart.At(i, 0), Y: cart.At(i, 1), Z: cart.At(i, 2)}
	}
	want := map[pairKey]bool{}
	var img lattice.Image
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for img[0] = -6; img[0] <= 6; img[0]++ {
				for img[1] = -6; img[1] <= 6; img[1]++ {
					for img[2] = -6; img[2] <= 6; img[2]++ {
						if i == j && img.IsZero() {
							continue
						}
						d := r3.Add(r3.Sub(pts[j], pts[i]), l.Shift(img))
						if r3.Norm(d) <= cutoff {
							want[pairKey{i, j, img}] = true
						}
					}
				}
			}
		}
	}

	got := map[pairKey]bool{}
	for k := 0; k < nl.Len(); k++ {
		got[pairKey{nl.Indices[k][0], nl.Indices[k][1], nl.Images[k]}] = true
	}
	assert.Equal(t, want, got)
	assert.Len(t, got, nl.Len(), "no duplicate entries")

	// The atoms near opposite corners meet across the corner image.
	assert.True(t, got[pairKey{0, 1, lattice.Image{-1, -1, -1}}])
}

func TestRangeNeighbourLattice_SortedAndDeterministic(t *testing.T) {
	t.Parallel()

	l, cart := triclinicFixture(t)
	a, err := lattice.RangeNeighbourLattice(cart, l.Matrix())
	require.NoError(t, err)
	b, err := lattice.RangeNeighbourLattice(cart, l.Matrix())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	for i := 0; i < a.NumNodes(); i++ {
		s, e := a.Row(i)
		for k := s; k < e; k++ {
			assert.Equal(t, i, a.Indices[k][0])
			if k > s {
				assert.LessOrEqual(t, a.Distances[k-1], a.Distances[k])
			}
		}
	}
	sum := 0
	for _, c := range a.Counts() {
		sum += c
	}
	assert.Equal(t, a.Len(), sum)
}

func TestRangeNeighbourLattice_Errors(t *testing.T) {
	t.Parallel()

	_, err := lattice.RangeNeighbourLattice(mat.NewDense(2, 2, nil), unitCube)
	require.ErrorIs(t, err, lattice.ErrInvalidShape)

	_, err = lattice.RangeNeighbourLattice(mat.NewDense(1, 3, nil), mat.NewDense(3, 3, nil))
	require.ErrorIs(t, err, lattice.ErrDegenerateLattice)

	_, err = lattice.RangeNeighbourLattice(nil, unitCube)
	require.ErrorIs(t, err, linalg.ErrNilMatrix)

	assert.Panics(t, func() { lattice.WithMaxDistance(-1) })
}

func TestRangeNeighbourLattice_DebugLog(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	_, err := lattice.RangeNeighbourLattice(mat.NewDense(1, 3, nil), unitCube,
		lattice.WithMaxDistance(1.1), lattice.WithLogger(logging.NewLoggerFromCore(core)))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, int64(1), ctx["atoms"])
	assert.Equal(t, int64(6), ctx["pairs"])
}

func BenchmarkRangeNeighbourLattice(b *testing.B) {
	l, err := lattice.FromParameters(5, 5.5, 6, 85, 95, 100)
	require.NoError(b, err)
	const n = 32
	frac := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		frac.SetRow(i, []float64{
			float64((i*7)%n) / n,
			float64((i*11)%n) / n,
			float64((i*13)%n) / n,
		})
	}
	cart, err := lattice.FractionalToCartesian(frac, l)
	require.NoError(b, err)
	lm := l.Matrix()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = lattice.RangeNeighbourLattice(cart, lm); err != nil {
			b.Fatal(err)
		}
	}
}
