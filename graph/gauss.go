// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Gaussian expansion defaults (SchNet).
const (
	DefaultBins     = 20
	DefaultDistance = 4.0
	DefaultOffset   = 0.0
	DefaultSigma    = 0.4
)

const (
	panicBinsInvalid  = "graph: WithBins: bins must be >= 1"
	panicRangeInvalid = "graph: WithRange: distance must be > 0 and both values finite"
	panicSigmaInvalid = "graph: WithSigma: sigma must be finite and > 0"
)

// GaussOption configures GaussBasis.
type GaussOption func(*GaussOptions)

// GaussOptions is the resolved GaussBasis configuration. Centres are
// μ_k = Offset + k·Distance/Bins for k in [0, Bins).
type GaussOptions struct {
	Bins     int
	Distance float64
	Offset   float64
	Sigma    float64
}

// WithBins sets the number of Gaussians. Panics if bins < 1.
func WithBins(bins int) GaussOption {
	if bins < 1 {
		panic(panicBinsInvalid)
	}

	return func(o *GaussOptions) { o.Bins = bins }
}

// WithRange places the centres on [offset, offset+distance).
func WithRange(offset, distance float64) GaussOption {
	if !(distance > 0) || math.IsInf(distance, 0) || math.IsNaN(offset) || math.IsInf(offset, 0) {
		panic(panicRangeInvalid)
	}

	return func(o *GaussOptions) {
		o.Offset = offset
		o.Distance = distance
	}
}

// WithSigma sets the Gaussian width.
func WithSigma(sigma float64) GaussOption {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		panic(panicSigmaInvalid)
	}

	return func(o *GaussOptions) { o.Sigma = sigma }
}

// GaussBasis expands every distance d on the Gaussian grid:
//
//	out[e, k] = exp(−(d_e − μ_k)² / (2σ²))
//
// The result has one row per distance and Bins columns.
//
// Errors: ErrNoDistances for empty input.
// Complexity: O(E·Bins).
func GaussBasis(distances []float64, opts ...GaussOption) (*mat.Dense, error) {
	o := GaussOptions{Bins: DefaultBins, Distance: DefaultDistance, Offset: DefaultOffset, Sigma: DefaultSigma}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if len(distances) == 0 {
		return nil, fmt.Errorf("GaussBasis: %w", ErrNoDistances)
	}

	step := o.Distance / float64(o.Bins)
	inv2s2 := 1 / (2 * o.Sigma * o.Sigma)
	out := mat.NewDense(len(distances), o.Bins, nil)
	var e, k int
	var x float64
	for e = 0; e < len(distances); e++ {
		for k = 0; k < o.Bins; k++ {
			x = distances[e] - (o.Offset + float64(k)*step)
			out.Set(e, k, math.Exp(-x*x*inv2s2))
		}
	}

	return out, nil
}
