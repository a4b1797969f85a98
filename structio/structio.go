// SPDX-License-Identifier: MIT

// Package structio reads and writes structure documents: atoms, positions,
// an optional lattice and optional precomputed matrices, in YAML (JSON is
// accepted on input, being a subset of YAML).
//
// Example document:
//
//	name: rocksalt
//	atomic_numbers: [11, 17]
//	fractional: true
//	coordinates:
//	  - [0.0, 0.0, 0.0]
//	  - [0.5, 0.5, 0.5]
//	lattice:
//	  - [5.64, 0.0, 0.0]
//	  - [0.0, 5.64, 0.0]
//	  - [0.0, 0.0, 5.64]
package structio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/molgeom/lattice"
)

var (
	// ErrMissingField indicates an absent section required by the caller.
	ErrMissingField = errors.New("structio: missing field")

	// ErrRagged indicates rows of different lengths in a matrix field.
	ErrRagged = errors.New("structio: ragged matrix")

	// ErrInconsistent indicates sections that disagree with each other.
	ErrInconsistent = errors.New("structio: inconsistent structure")
)

// Structure is one molecule or crystal.
type Structure struct {
	Name           string      `yaml:"name,omitempty" json:"name,omitempty"`
	AtomicNumbers  []int       `yaml:"atomic_numbers,omitempty" json:"atomic_numbers,omitempty"`
	Coordinates    [][]float64 `yaml:"coordinates,omitempty" json:"coordinates,omitempty"`
	Fractional     bool        `yaml:"fractional,omitempty" json:"fractional,omitempty"`
	Lattice        [][]float64 `yaml:"lattice,omitempty" json:"lattice,omitempty"`
	DistanceMatrix [][]float64 `yaml:"distance_matrix,omitempty" json:"distance_matrix,omitempty"`
	CoulombMatrix  [][]float64 `yaml:"coulomb_matrix,omitempty" json:"coulomb_matrix,omitempty"`
}

// Load reads and validates a structure file.
func Load(path string) (*Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read structure: %w", err)
	}

	return Decode(bytes.NewReader(data))
}

// Decode parses and validates a structure document.
func Decode(r io.Reader) (*Structure, error) {
	var s Structure
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse structure: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks that matrix fields are rectangular and that the sections
// agree on the number of atoms.
func (s *Structure) Validate() error {
	n := -1
	check := func(field string, rows [][]float64, cols int, square bool) error {
		if len(rows) == 0 {
			return nil
		}
		if _, err := ToDense(rows); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if cols > 0 && len(rows[0]) != cols {
			return fmt.Errorf("%s: want %d columns, got %d: %w", field, cols, len(rows[0]), ErrInconsistent)
		}
		if square && len(rows[0]) != len(rows) {
			return fmt.Errorf("%s: not square: %w", field, ErrInconsistent)
		}
		if field == "lattice" {
			return nil
		}
		if n >= 0 && len(rows) != n {
			return fmt.Errorf("%s: %d atoms, want %d: %w", field, len(rows), n, ErrInconsistent)
		}
		n = len(rows)
		return nil
	}

	if len(s.AtomicNumbers) > 0 {
		n = len(s.AtomicNumbers)
	}
	if err := check("coordinates", s.Coordinates, 0, false); err != nil {
		return err
	}
	if err := check("lattice", s.Lattice, 3, true); err != nil {
		return err
	}
	if err := check("distance_matrix", s.DistanceMatrix, 0, true); err != nil {
		return err
	}
	if err := check("coulomb_matrix", s.CoulombMatrix, 0, true); err != nil {
		return err
	}
	if s.Fractional && len(s.Lattice) == 0 {
		return fmt.Errorf("fractional coordinates without lattice: %w", ErrInconsistent)
	}

	return nil
}

// CartesianCoordinates returns the positions as an N×p matrix, converting
// fractional coordinates through the lattice.
func (s *Structure) CartesianCoordinates() (*mat.Dense, error) {
	pts, err := field("coordinates", s.Coordinates)
	if err != nil {
		return nil, err
	}
	if !s.Fractional {
		return pts, nil
	}
	l, err := s.LatticeValue()
	if err != nil {
		return nil, err
	}

	return lattice.FractionalToCartesian(pts, l)
}

// LatticeValue returns the parsed lattice.
func (s *Structure) LatticeValue() (lattice.Lattice, error) {
	m, err := field("lattice", s.Lattice)
	if err != nil {
		return lattice.Lattice{}, err
	}

	return lattice.NewLattice(m)
}

// LatticeMatrix returns the lattice rows as a 3×3 matrix.
func (s *Structure) LatticeMatrix() (*mat.Dense, error) { return field("lattice", s.Lattice) }

// DistanceMatrixDense returns the distance matrix section.
func (s *Structure) DistanceMatrixDense() (*mat.Dense, error) {
	return field("distance_matrix", s.DistanceMatrix)
}

// CoulombMatrixDense returns the Coulomb matrix section.
func (s *Structure) CoulombMatrixDense() (*mat.Dense, error) {
	return field("coulomb_matrix", s.CoulombMatrix)
}

func field(name string, rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingField)
	}
	m, err := ToDense(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return m, nil
}

// ToDense copies rectangular rows into a new matrix.
func ToDense(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrMissingField
	}
	c := len(rows[0])
	m := mat.NewDense(len(rows), c, nil)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), c, ErrRagged)
		}
		m.SetRow(i, row)
	}

	return m, nil
}

// FromDense copies a matrix into rows, the inverse of ToDense.
func FromDense(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		mat.Row(out[i], i, m)
	}

	return out
}
