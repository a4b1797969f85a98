// SPDX-License-Identifier: MIT

package distgeom

import "github.com/katalvlaran/molgeom/logging"

// Defaults.
const (
	// DefaultDim is the embedding dimension.
	DefaultDim = 3

	// NoCenter selects the centroid convention.
	NoCenter = -1

	// DefaultEigenTolerance is the relative singular-value threshold below
	// which a component is considered zero when checking the sign of its
	// eigenvalue.
	DefaultEigenTolerance = 1e-9
)

const panicDimInvalid = "distgeom: WithDim: dim must be >= 1"
const panicCenterInvalid = "distgeom: WithCenter: index must be >= 0"

// Option configures CoordinatesFromDistanceMatrix.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	Dim             int  // embedding dimension, >= 1
	Center          int  // reference atom, NoCenter for the centroid
	StrictEuclidean bool // fail on negative retained eigenvalues
	Logger          logging.Logger
}

// WithDim sets the embedding dimension. Panics if dim < 1.
func WithDim(dim int) Option {
	if dim < 1 {
		panic(panicDimInvalid)
	}

	return func(o *Options) { o.Dim = dim }
}

// WithCenter uses atom k as the origin of the embedding. Panics if k < 0;
// k >= N is reported as ErrCenterOutOfRange at call time.
func WithCenter(k int) Option {
	if k < 0 {
		panic(panicCenterInvalid)
	}

	return func(o *Options) { o.Center = k }
}

// WithStrictEuclidean makes non-Euclidean input an error instead of a warning.
func WithStrictEuclidean() Option {
	return func(o *Options) { o.StrictEuclidean = true }
}

// WithLogger routes the non-Euclidean warning to l.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) { o.Logger = logging.OrNop(l) }
}

// DefaultOptions returns dim=3, centroid reference, lenient, silent.
func DefaultOptions() Options {
	return Options{
		Dim:    DefaultDim,
		Center: NoCenter,
		Logger: logging.NewNopLogger(),
	}
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
