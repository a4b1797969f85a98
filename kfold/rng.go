// SPDX-License-Identifier: MIT

package kfold

import "math/rand"

// defaultSeed replaces seed 0 so that WithShuffle(0) is reproducible too.
const defaultSeed int64 = 1

// sampleOrder returns 0..n-1, Fisher–Yates shuffled by a stream seeded with
// seed when shuffle is set.
//
// Complexity: O(n).
func sampleOrder(n int, shuffle bool, seed int64) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if !shuffle {
		return order
	}
	if seed == 0 {
		seed = defaultSeed
	}

	r := rand.New(rand.NewSource(seed))
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	return order
}
