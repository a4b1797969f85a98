// SPDX-License-Identifier: MIT

package lattice

import (
	"math"

	"github.com/katalvlaran/molgeom/logging"
)

// DefaultMaxDistance is the cutoff radius used when none is given.
const DefaultMaxDistance = 4.0

const panicMaxDistanceInvalid = "lattice: WithMaxDistance: distance must be finite and >= 0"

// Option configures RangeNeighbourLattice.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	MaxDistance float64 // cutoff, inclusive
	Bounded     bool    // false: no final distance filter
	SelfLoops   bool    // keep (i, i, 0)
	Sort        bool    // sort each row by distance
	Logger      logging.Logger
}

// WithMaxDistance sets the inclusive cutoff radius. Panics on negative or
// non-finite values.
func WithMaxDistance(d float64) Option {
	if !(d >= 0) || math.IsInf(d, 0) {
		panic(panicMaxDistanceInvalid)
	}

	return func(o *Options) {
		o.MaxDistance = d
		o.Bounded = true
	}
}

// WithUnbounded disables the final cutoff filter. The image shell is then
// sized by the cell radius alone.
func WithUnbounded() Option {
	return func(o *Options) {
		o.MaxDistance = 0
		o.Bounded = false
	}
}

// WithSelfLoops keeps the zero-distance (i, i, 0) entry of every atom.
func WithSelfLoops() Option {
	return func(o *Options) { o.SelfLoops = true }
}

// WithoutSorting keeps candidate order (central image first, then images
// per neighbour) instead of sorting by distance.
func WithoutSorting() Option {
	return func(o *Options) { o.Sort = false }
}

// WithLogger sets the debug logger for stage statistics.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) { o.Logger = logging.OrNop(l) }
}

// DefaultOptions returns cutoff 4.0, bounded, sorted, no self-loops.
func DefaultOptions() Options {
	return Options{
		MaxDistance: DefaultMaxDistance,
		Bounded:     true,
		Sort:        true,
		Logger:      logging.NewNopLogger(),
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
