package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/crownlands/internal/grid"
	"github.com/talgya/crownlands/internal/rng"
)

func growOnGrid(t *testing.T, width, height, regions int, seed int64) []int {
	t.Helper()
	adj, err := grid.BuildAdjacency(width, height)
	require.NoError(t, err)
	owner, err := Grow(width*height, regions, rng.New(seed), adj)
	require.NoError(t, err)
	return owner
}

func TestGrow_EveryNodeAssigned(t *testing.T) {
	owner := growOnGrid(t, 40, 30, 24, 9527)
	require.Len(t, owner, 1200)
	for n, region := range owner {
		require.GreaterOrEqual(t, region, 0, "node %d unassigned", n)
		require.Less(t, region, 24, "node %d out of range", n)
	}
}

func TestGrow_NoEmptyRegions(t *testing.T) {
	owner := growOnGrid(t, 40, 30, 24, 7)
	sizes := make([]int, 24)
	for _, region := range owner {
		sizes[region]++
	}
	for region, size := range sizes {
		assert.Positive(t, size, "region %d is empty", region)
	}
}

func TestGrow_RegionsAreContiguous(t *testing.T) {
	width, height, regions := 32, 32, 16
	adj, err := grid.BuildAdjacency(width, height)
	require.NoError(t, err)
	owner, err := Grow(width*height, regions, rng.New(1234), adj)
	require.NoError(t, err)

	// Flood fill each region from one member; every member must be
	// reachable through same-region tiles only.
	for region := 0; region < regions; region++ {
		var members []int
		for n, o := range owner {
			if o == region {
				members = append(members, n)
			}
		}
		require.NotEmpty(t, members)

		reached := make(map[int]bool)
		queue := []int{members[0]}
		reached[members[0]] = true
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			for _, m := range adj[n] {
				if owner[m] == region && !reached[m] {
					reached[m] = true
					queue = append(queue, m)
				}
			}
		}
		assert.Len(t, reached, len(members), "region %d is not contiguous", region)
	}
}

func TestGrow_Deterministic(t *testing.T) {
	a := growOnGrid(t, 40, 30, 20, 42)
	b := growOnGrid(t, 40, 30, 20, 42)
	assert.Equal(t, a, b)
}

func TestGrow_ApproximateBalance(t *testing.T) {
	// With a 35% size variance no region should dwarf the others. Allow a
	// generous factor over the even split — balance is approximate.
	width, height, regions := 50, 40, 20
	owner := growOnGrid(t, width, height, regions, 99)

	sizes := make([]int, regions)
	for _, region := range owner {
		sizes[region]++
	}
	even := width * height / regions
	for region, size := range sizes {
		assert.Less(t, size, even*3, "region %d grew far beyond its target", region)
	}
}

func TestGrow_OneRegionPerNode(t *testing.T) {
	// regionCount == totalNodes degenerates to the identity-scale case:
	// every region is exactly one node.
	adj, err := grid.BuildAdjacency(4, 4)
	require.NoError(t, err)
	owner, err := Grow(16, 16, rng.New(5), adj)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, region := range owner {
		assert.False(t, seen[region])
		seen[region] = true
	}
}

func TestGrow_Preconditions(t *testing.T) {
	adj, err := grid.BuildAdjacency(4, 4)
	require.NoError(t, err)

	_, err = Grow(16, 0, rng.New(1), adj)
	assert.ErrorIs(t, err, ErrRegionCount)

	_, err = Grow(16, 17, rng.New(1), adj)
	assert.ErrorIs(t, err, ErrRegionCount)

	_, err = Grow(20, 4, rng.New(1), adj)
	assert.ErrorIs(t, err, ErrAdjacencyLength)
}

func TestGrow_DisconnectedGraphFails(t *testing.T) {
	// Two components, one seedable region: growth must report being
	// stuck rather than return a partial assignment.
	adj := [][]int{{1}, {0}, {3}, {2}}
	_, err := Grow(4, 1, rng.New(3), adj)
	assert.ErrorIs(t, err, ErrStuck)
}
