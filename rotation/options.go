// SPDX-License-Identifier: MIT

package rotation

import "github.com/katalvlaran/molgeom/logging"

// DefaultCorrectReflection: by default a reflection is reported, not corrected.
const DefaultCorrectReflection = false

// Option configures RigidTransform.
type Option func(*Options)

// Options is the resolved configuration of RigidTransform.
type Options struct {
	CorrectReflection bool           // force det(R) = +1
	Logger            logging.Logger // receives the reflection warning
}

// WithCorrectReflection forces a proper rotation when the optimal orthogonal
// matrix is a reflection, by flipping the sign of the last singular vector.
func WithCorrectReflection() Option {
	return func(o *Options) { o.CorrectReflection = true }
}

// WithLogger routes diagnostics to l. A nil l restores the nop logger.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) { o.Logger = logging.OrNop(l) }
}

// DefaultOptions returns the zero-configuration: no correction, silent logger.
func DefaultOptions() Options {
	return Options{
		CorrectReflection: DefaultCorrectReflection,
		Logger:            logging.NewNopLogger(),
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
