// SPDX-License-Identifier: MIT

package kfold

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrTooFewFolds indicates k < 2.
	ErrTooFewFolds = errors.New("kfold: need at least 2 folds")

	// ErrTooFewSamples indicates fewer samples than folds.
	ErrTooFewSamples = errors.New("kfold: fewer samples than folds")
)

// Fold is one train/test partition of the sample indices. Both slices are
// in ascending order.
type Fold struct {
	Train []int `yaml:"train" json:"train"`
	Test  []int `yaml:"test" json:"test"`
}

// Option configures Split.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	Shuffle bool
	Seed    int64 // 0 selects the fixed default stream
}

// WithShuffle permutes the samples with a stream seeded by seed before
// cutting folds.
func WithShuffle(seed int64) Option {
	return func(o *Options) {
		o.Shuffle = true
		o.Seed = seed
	}
}

// Split partitions n samples into k consecutive folds. The first n mod k
// folds hold one extra sample. Every sample appears in exactly one test set.
//
// Errors: ErrTooFewFolds, ErrTooFewSamples.
// Complexity: O(k·n).
func Split(n, k int, opts ...Option) ([]Fold, error) {
	var o Options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if k < 2 {
		return nil, fmt.Errorf("Split: k=%d: %w", k, ErrTooFewFolds)
	}
	if n < k {
		return nil, fmt.Errorf("Split: n=%d k=%d: %w", n, k, ErrTooFewSamples)
	}

	order := sampleOrder(n, o.Shuffle, o.Seed)

	folds := make([]Fold, k)
	start := 0
	for f := 0; f < k; f++ {
		size := n / k
		if f < n%k {
			size++
		}
		test := append([]int(nil), order[start:start+size]...)
		train := make([]int, 0, n-size)
		train = append(train, order[:start]...)
		train = append(train, order[start+size:]...)
		sort.Ints(test)
		sort.Ints(train)
		folds[f] = Fold{Train: train, Test: test}
		start += size
	}

	return folds, nil
}
