// Package region implements the seeded flood-fill partitioner and the
// controlled-difference perturbation that derives the de facto hierarchy
// from the de jure one. Both are pure in-memory computations: all
// randomness comes from the caller's generator, and bounded retry loops
// turn pathological inputs into errors instead of hangs.
package region

import (
	"errors"
	"fmt"

	"github.com/talgya/crownlands/internal/rng"
)

var (
	// ErrRegionCount indicates a region count outside (0, totalNodes].
	ErrRegionCount = errors.New("region: region count must be in (0, node count]")
	// ErrAdjacencyLength indicates an adjacency list not matching the node count.
	ErrAdjacencyLength = errors.New("region: adjacency length does not match node count")
	// ErrStuck indicates every frontier emptied while nodes remain
	// unclaimed, which only happens on a disconnected adjacency graph.
	ErrStuck = errors.New("region: growth stuck with unclaimed nodes remaining")
)

// Grow partitions totalNodes nodes into regionCount contiguous regions by
// greedy territorial expansion. Every node ends up owned by exactly one
// region in [0, regionCount), every region ends non-empty, and region
// sizes approximately follow randomized targets around the even split.
// Sizes are approximate on purpose — exact balancing would produce
// unnaturally regular territories.
func Grow(totalNodes, regionCount int, r *rng.Stream, adjacency [][]int) ([]int, error) {
	if regionCount <= 0 || regionCount > totalNodes {
		return nil, fmt.Errorf("%w: %d regions over %d nodes", ErrRegionCount, regionCount, totalNodes)
	}
	if len(adjacency) != totalNodes {
		return nil, fmt.Errorf("%w: %d lists for %d nodes", ErrAdjacencyLength, len(adjacency), totalNodes)
	}

	desired := desiredSizes(totalNodes, regionCount, r)

	owner := make([]int, totalNodes)
	for i := range owner {
		owner[i] = -1
	}

	// One pairwise-distinct seed node per region, by rejection sampling.
	frontiers := make([][]int, regionCount)
	sizes := make([]int, regionCount)
	for region := 0; region < regionCount; region++ {
		n := r.Intn(totalNodes)
		for owner[n] != -1 {
			n = r.Intn(totalNodes)
		}
		owner[n] = region
		frontiers[region] = []int{n}
		sizes[region] = 1
	}

	claimed := regionCount
	candidates := make([]int, 0, regionCount)

	for claimed < totalNodes {
		// Prefer regions still under their desired size; fall back to any
		// region that can still expand.
		candidates = candidates[:0]
		for region := 0; region < regionCount; region++ {
			if len(frontiers[region]) > 0 && sizes[region] < desired[region] {
				candidates = append(candidates, region)
			}
		}
		if len(candidates) == 0 {
			for region := 0; region < regionCount; region++ {
				if len(frontiers[region]) > 0 {
					candidates = append(candidates, region)
				}
			}
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: %d of %d claimed", ErrStuck, claimed, totalNodes)
		}

		region := candidates[r.Intn(len(candidates))]
		frontier := frontiers[region]
		fi := r.Intn(len(frontier))
		node := frontier[fi]

		unclaimed := make([]int, 0, 4)
		for _, n := range adjacency[node] {
			if owner[n] == -1 {
				unclaimed = append(unclaimed, n)
			}
		}

		if len(unclaimed) == 0 {
			// Exhausted frontier node: swap-remove it and retry without
			// consuming a turn. The claiming entry otherwise stays on the
			// frontier until all its neighbors are taken.
			frontier[fi] = frontier[len(frontier)-1]
			frontiers[region] = frontier[:len(frontier)-1]
			continue
		}

		next := unclaimed[r.Intn(len(unclaimed))]
		owner[next] = region
		frontiers[region] = append(frontiers[region], next)
		sizes[region]++
		claimed++
	}

	return owner, nil
}

// desiredSizes computes randomized target sizes that sum exactly to
// totalNodes: each bucket gets the even split plus a uniform offset of up
// to 35%, clamped to at least 1, then a repair pass nudges random buckets
// by one until the sum matches.
func desiredSizes(totalNodes, regionCount int, r *rng.Stream) []int {
	base := totalNodes / regionCount
	variance := int(float64(base) * 0.35)
	if variance < 1 {
		variance = 1
	}

	sizes := make([]int, regionCount)
	sum := 0
	for i := range sizes {
		s := base + r.Intn(2*variance+1) - variance
		if s < 1 {
			s = 1
		}
		sizes[i] = s
		sum += s
	}

	for sum != totalNodes {
		i := r.Intn(regionCount)
		if sum < totalNodes {
			sizes[i]++
			sum++
		} else if sizes[i] > 1 {
			sizes[i]--
			sum--
		}
	}

	return sizes
}
