package grid

import (
	"errors"
	"sort"
)

var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: width and height must be positive")
	// ErrMappingLength indicates a source-to-target mapping whose length
	// does not match the source adjacency.
	ErrMappingLength = errors.New("grid: mapping length does not match source node count")
	// ErrTargetIndex indicates a mapping entry outside [0, targetCount).
	ErrTargetIndex = errors.New("grid: mapping entry out of target range")
)

// BuildAdjacency returns the 4-connected neighbor list for every tile of
// a width x height grid. adjacency[t] lists the west, east, north and
// south neighbors that exist within bounds, in that order. No diagonal
// adjacency, no randomness.
func BuildAdjacency(width, height int) ([][]int, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}

	adjacency := make([][]int, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			id := y*width + x
			neighbors := make([]int, 0, 4)
			if x > 0 {
				neighbors = append(neighbors, id-1)
			}
			if x < width-1 {
				neighbors = append(neighbors, id+1)
			}
			if y > 0 {
				neighbors = append(neighbors, id-width)
			}
			if y < height-1 {
				neighbors = append(neighbors, id+width)
			}
			adjacency[id] = neighbors
		}
	}
	return adjacency, nil
}

// ProjectAdjacency derives target-level adjacency from source-level
// adjacency: every source edge (a, b) whose endpoints map to different
// targets becomes an undirected edge between those targets. Edge lists
// are deduplicated and sorted ascending for determinism.
func ProjectAdjacency(sourceAdjacency [][]int, sourceToTarget []int, targetCount int) ([][]int, error) {
	if len(sourceToTarget) != len(sourceAdjacency) {
		return nil, ErrMappingLength
	}

	edges := make([]map[int]bool, targetCount)
	for i := range edges {
		edges[i] = make(map[int]bool)
	}

	for a, neighbors := range sourceAdjacency {
		ta := sourceToTarget[a]
		if ta < 0 || ta >= targetCount {
			return nil, ErrTargetIndex
		}
		for _, b := range neighbors {
			tb := sourceToTarget[b]
			if tb < 0 || tb >= targetCount {
				return nil, ErrTargetIndex
			}
			if ta != tb {
				edges[ta][tb] = true
				edges[tb][ta] = true
			}
		}
	}

	return sortedEdgeLists(edges), nil
}

// ProjectGridAdjacency is the tile-level specialization of
// ProjectAdjacency: it scans the 2D grid directly, looking only at east
// and south edges since grid adjacency is symmetric, and so avoids
// materializing the full tile adjacency a second time.
func ProjectGridAdjacency(width, height int, tileToRegion []int, regionCount int) ([][]int, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if len(tileToRegion) != width*height {
		return nil, ErrMappingLength
	}

	edges := make([]map[int]bool, regionCount)
	for i := range edges {
		edges[i] = make(map[int]bool)
	}

	link := func(a, b int) error {
		ra, rb := tileToRegion[a], tileToRegion[b]
		if ra < 0 || ra >= regionCount || rb < 0 || rb >= regionCount {
			return ErrTargetIndex
		}
		if ra != rb {
			edges[ra][rb] = true
			edges[rb][ra] = true
		}
		return nil
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			id := y*width + x
			if x < width-1 {
				if err := link(id, id+1); err != nil {
					return nil, err
				}
			}
			if y < height-1 {
				if err := link(id, id+width); err != nil {
					return nil, err
				}
			}
		}
	}

	return sortedEdgeLists(edges), nil
}

func sortedEdgeLists(edges []map[int]bool) [][]int {
	out := make([][]int, len(edges))
	for i, set := range edges {
		list := make([]int, 0, len(set))
		for n := range set {
			list = append(list, n)
		}
		sort.Ints(list)
		out[i] = list
	}
	return out
}
