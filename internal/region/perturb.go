package region

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/crownlands/internal/rng"
)

var (
	// ErrBucketCount indicates a non-positive bucket count.
	ErrBucketCount = errors.New("region: bucket count must be positive")
	// ErrBucketIndex indicates a base assignment entry outside [0, bucketCount).
	ErrBucketIndex = errors.New("region: base assignment entry out of bucket range")
	// ErrTargetUnreached indicates the attempt budget ran out before the
	// requested number of differences was reached. This points at
	// pathological parameters: an adjacency too sparse, or a difference
	// target too close to the assignment length.
	ErrTargetUnreached = errors.New("region: perturbation attempt budget exhausted before target")
)

// DefaultTargetRatio is the default fraction of positions at which the
// de facto assignment diverges from the de jure one, applied per level.
const DefaultTargetRatio = 0.10

// DefaultTarget returns the default difference target for an assignment
// of length n: the rounded DefaultTargetRatio share, never below 1.
func DefaultTarget(n int) int {
	t := int(math.Round(DefaultTargetRatio * float64(n)))
	if t < 1 {
		t = 1
	}
	return t
}

// Perturb returns a copy of base that differs from it at exactly
// max(1, targetDifferences) positions. Each move reassigns one node to a
// bucket held by one of its spatial neighbors, never an arbitrary bucket,
// and never empties a bucket, so perturbed regions stay spatially
// plausible. The tracked difference count is net relative to base: a
// node moved back to its original bucket no longer counts.
func Perturb(base []int, adjacency [][]int, bucketCount, targetDifferences int, r *rng.Stream) ([]int, error) {
	if bucketCount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBucketCount, bucketCount)
	}
	if len(adjacency) != len(base) {
		return nil, fmt.Errorf("%w: %d lists for %d nodes", ErrAdjacencyLength, len(adjacency), len(base))
	}

	counts := make([]int, bucketCount)
	out := make([]int, len(base))
	for i, b := range base {
		if b < 0 || b >= bucketCount {
			return nil, fmt.Errorf("%w: base[%d]=%d", ErrBucketIndex, i, b)
		}
		out[i] = b
		counts[b]++
	}

	target := targetDifferences
	if target < 1 {
		target = 1
	}

	budget := len(base) * 120
	if budget < 500 {
		budget = 500
	}

	diff := make(map[int]bool)
	seen := make([]bool, bucketCount)

	for attempts := 0; len(diff) < target; attempts++ {
		if attempts >= budget {
			return nil, fmt.Errorf("%w: %d/%d differences after %d attempts",
				ErrTargetUnreached, len(diff), target, attempts)
		}

		node := r.Intn(len(base))
		current := out[node]
		if counts[current] <= 1 {
			continue
		}

		// Buckets held by neighbors, excluding the node's own, in
		// first-seen neighbor order for determinism.
		options := make([]int, 0, 4)
		for _, n := range adjacency[node] {
			b := out[n]
			if b != current && !seen[b] {
				seen[b] = true
				options = append(options, b)
			}
		}
		for _, b := range options {
			seen[b] = false
		}
		if len(options) == 0 {
			continue
		}

		next := options[r.Intn(len(options))]
		out[node] = next
		counts[current]--
		counts[next]++

		if next != base[node] {
			diff[node] = true
		} else {
			delete(diff, node)
		}
	}

	return out, nil
}
