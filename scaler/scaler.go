// SPDX-License-Identifier: MIT

// Package scaler standardises regression targets column by column,
// z = (x − mean) / std, and maps model outputs back.
package scaler

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/molgeom/linalg"
)

var (
	// ErrNotFitted indicates Transform before Fit.
	ErrNotFitted = errors.New("scaler: not fitted")

	// ErrInvalidShape indicates a column count different from the fitted one.
	ErrInvalidShape = fmt.Errorf("scaler: %w", linalg.ErrInvalidShape)
)

// Option configures a StandardScaler.
type Option func(*StandardScaler)

// WithoutMean skips centring.
func WithoutMean() Option { return func(s *StandardScaler) { s.withMean = false } }

// WithoutStd skips scaling.
func WithoutStd() Option { return func(s *StandardScaler) { s.withStd = false } }

// StandardScaler holds per-column mean and population standard deviation.
type StandardScaler struct {
	withMean bool
	withStd  bool

	mean  []float64
	scale []float64
}

// NewStandardScaler returns an unfitted scaler that centres and scales.
func NewStandardScaler(opts ...Option) *StandardScaler {
	s := &StandardScaler{withMean: true, withStd: true}
	for _, fn := range opts {
		if fn != nil {
			fn(s)
		}
	}

	return s
}

// Mean returns a copy of the fitted column means (zeros with WithoutMean).
func (s *StandardScaler) Mean() []float64 { return append([]float64(nil), s.mean...) }

// Scale returns a copy of the fitted column scales (ones with WithoutStd).
func (s *StandardScaler) Scale() []float64 { return append([]float64(nil), s.scale...) }

// Fit computes per-column statistics of x (N×p). The standard deviation is
// the population one (ddof = 0); zero-variance columns get scale 1.
//
// Errors: as linalg.ValidateNotNil and linalg.ValidateFinite.
// Complexity: O(N·p).
func (s *StandardScaler) Fit(x mat.Matrix) error {
	if err := linalg.ValidateNotNil(x); err != nil {
		return fmt.Errorf("Fit: %w", err)
	}
	if err := linalg.ValidateFinite(x); err != nil {
		return fmt.Errorf("Fit: %w", err)
	}

	n, p := x.Dims()
	s.mean = make([]float64, p)
	s.scale = make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		m, std := stat.PopMeanStdDev(col, nil)
		if s.withMean {
			s.mean[j] = m
		}
		s.scale[j] = 1
		if s.withStd && std > 0 {
			s.scale[j] = std
		}
	}

	return nil
}

// Transform returns (x − mean) / scale as a new matrix.
func (s *StandardScaler) Transform(x mat.Matrix) (*mat.Dense, error) {
	return s.apply(x, "Transform", func(v, m, sc float64) float64 { return (v - m) / sc })
}

// InverseTransform returns x·scale + mean as a new matrix.
func (s *StandardScaler) InverseTransform(x mat.Matrix) (*mat.Dense, error) {
	return s.apply(x, "InverseTransform", func(v, m, sc float64) float64 { return v*sc + m })
}

// FitTransform fits on x and returns its transform.
func (s *StandardScaler) FitTransform(x mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}

	return s.Transform(x)
}

func (s *StandardScaler) apply(x mat.Matrix, tag string, f func(v, m, sc float64) float64) (*mat.Dense, error) {
	if s.mean == nil {
		return nil, fmt.Errorf("%s: %w", tag, ErrNotFitted)
	}
	if err := linalg.ValidateShape(x, linalg.AnyDim, len(s.mean)); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", tag, ErrInvalidShape, err)
	}

	n, p := x.Dims()
	out := mat.NewDense(n, p, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < p; j++ {
			out.Set(i, j, f(x.At(i, j), s.mean[j], s.scale[j]))
		}
	}

	return out, nil
}
