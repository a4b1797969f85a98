// SPDX-License-Identifier: MIT

package structio_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/molgeom/structio"
)

func TestLoad_Fractional(t *testing.T) {
	t.Parallel()

	s, err := structio.Load(filepath.Join("testdata", "nacl.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "rocksalt", s.Name)
	assert.Equal(t, []int{11, 17}, s.AtomicNumbers)

	cart, err := s.CartesianCoordinates()
	require.NoError(t, err)
	assert.InDelta(t, 2.82, cart.At(1, 0), 1e-12)
	assert.InDelta(t, 2.82, cart.At(1, 2), 1e-12)

	l, err := s.LatticeValue()
	require.NoError(t, err)
	assert.InDelta(t, 5.64*5.64*5.64, l.Volume(), 1e-9)
}

func TestDecode_JSON(t *testing.T) {
	t.Parallel()

	doc := `{"atomic_numbers": [1, 1], "coordinates": [[0, 0, 0], [0, 0, 0.74]]}`
	s, err := structio.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	cart, err := s.CartesianCoordinates()
	require.NoError(t, err)
	assert.Equal(t, 0.74, cart.At(1, 2))

	_, err = s.LatticeMatrix()
	require.ErrorIs(t, err, structio.ErrMissingField)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		doc  string
		want error
	}{
		"ragged": {
			doc:  "coordinates: [[0, 0, 0], [1, 0]]",
			want: structio.ErrRagged,
		},
		"count mismatch": {
			doc:  "atomic_numbers: [1]\ncoordinates: [[0, 0, 0], [1, 0, 0]]",
			want: structio.ErrInconsistent,
		},
		"lattice not 3x3": {
			doc:  "lattice: [[1, 0], [0, 1]]",
			want: structio.ErrInconsistent,
		},
		"fractional without lattice": {
			doc:  "fractional: true\ncoordinates: [[0, 0, 0]]",
			want: structio.ErrInconsistent,
		},
		"distance matrix not square": {
			doc:  "distance_matrix: [[0, 1, 2], [1, 0, 1]]",
			want: structio.ErrInconsistent,
		},
	}
	for name, tc := range cases {
		_, err := structio.Decode(strings.NewReader(tc.doc))
		require.ErrorIs(t, err, tc.want, name)
	}

	_, err := structio.Decode(strings.NewReader("coordinates: {"))
	require.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	orig := &structio.Structure{
		Name:          "water",
		AtomicNumbers: []int{8, 1, 1},
		Coordinates:   structio.FromDense(mat.NewDense(3, 3, []float64{0, 0, 0, 0.96, 0, 0, -0.24, 0.93, 0})),
	}
	for _, f := range []structio.Format{structio.FormatYAML, structio.FormatJSON} {
		var buf bytes.Buffer
		require.NoError(t, structio.Encode(&buf, orig, f))
		got, err := structio.Decode(&buf)
		require.NoError(t, err, f)
		assert.Equal(t, orig, got, f)
	}

	require.ErrorIs(t, structio.Encode(&bytes.Buffer{}, orig, "xml"), structio.ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := structio.ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, structio.FormatJSON, f)

	f, err = structio.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, structio.FormatYAML, f)

	_, err = structio.ParseFormat("toml")
	require.ErrorIs(t, err, structio.ErrUnknownFormat)
}
