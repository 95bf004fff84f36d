package realm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEntityID_CoversEveryTile(t *testing.T) {
	data := mustGenerate(t, DefaultParams(9527))
	tileCount := data.Grid.TileCount()

	for _, mode := range []Mode{ModeDeJure, ModeDeFacto} {
		h := data.Modes.Hierarchy(mode)
		counts := map[Rank]int{
			RankCounty:  h.CountyCount(),
			RankDuchy:   h.DuchyCount(),
			RankKingdom: h.KingdomCount(),
		}
		for _, level := range []Rank{RankCounty, RankDuchy, RankKingdom} {
			for tile := 0; tile < tileCount; tile++ {
				entity, ok := ResolveEntityID(data, mode, level, tile)
				require.True(t, ok, "mode %s level %s tile %d", mode, level, tile)
				require.GreaterOrEqual(t, entity, 0)
				require.Less(t, entity, counts[level])
			}
		}
	}
}

func TestResolveEntityID_Bounds(t *testing.T) {
	data := mustGenerate(t, DefaultParams(1))

	_, ok := ResolveEntityID(data, ModeDeJure, RankCounty, -1)
	assert.False(t, ok)
	_, ok = ResolveEntityID(data, ModeDeJure, RankCounty, data.Grid.TileCount())
	assert.False(t, ok)
	_, ok = ResolveEntityID(data, ModeDeJure, Rank(9), 0)
	assert.False(t, ok)
}

func TestBuildActiveEntityByTile_MatchesResolve(t *testing.T) {
	data := mustGenerate(t, DefaultParams(42))

	byTile := BuildActiveEntityByTile(data, ModeDeFacto, RankKingdom)
	require.Len(t, byTile, data.Grid.TileCount())
	for tile, entity := range byTile {
		resolved, ok := ResolveEntityID(data, ModeDeFacto, RankKingdom, tile)
		require.True(t, ok)
		assert.Equal(t, resolved, entity, "tile %d", tile)
	}
}

func TestBuildActiveEntityByTile_CountyLevelIsMapping(t *testing.T) {
	data := mustGenerate(t, DefaultParams(42))
	byTile := BuildActiveEntityByTile(data, ModeDeJure, RankCounty)
	assert.Equal(t, data.Modes.DeJure.TileToCounty, byTile)
}

func TestEntityName(t *testing.T) {
	data := mustGenerate(t, DefaultParams(7))
	h := &data.Modes.DeJure

	name, ok := EntityName(h, RankCounty, 0)
	require.True(t, ok)
	assert.Equal(t, h.CountyNames[0], name)

	name, ok = EntityName(h, RankKingdom, h.KingdomCount()-1)
	require.True(t, ok)
	assert.Equal(t, h.KingdomNames[h.KingdomCount()-1], name)

	_, ok = EntityName(h, RankDuchy, -1)
	assert.False(t, ok)
	_, ok = EntityName(h, RankDuchy, h.DuchyCount())
	assert.False(t, ok)
	_, ok = EntityName(h, Rank(9), 0)
	assert.False(t, ok)
}
