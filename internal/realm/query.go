// Read-only projections over WorldMapData for the rendering and UI
// layers. Nothing here mutates the aggregate.
package realm

// ResolveEntityID walks a tile up to the entity that contains it at the
// requested level under the given mode. The second return is false when
// the tile id is out of range or the level is unknown.
func ResolveEntityID(data *WorldMapData, mode Mode, level Rank, tileID int) (int, bool) {
	h := data.Modes.Hierarchy(mode)
	if tileID < 0 || tileID >= len(h.TileToCounty) {
		return 0, false
	}

	county := h.TileToCounty[tileID]
	switch level {
	case RankCounty:
		return county, true
	case RankDuchy:
		return h.CountyToDuchy[county], true
	case RankKingdom:
		return h.DuchyToKingdom[h.CountyToDuchy[county]], true
	default:
		return 0, false
	}
}

// BuildActiveEntityByTile materializes the per-tile entity id array at
// one level, the shape the painter consumes directly.
func BuildActiveEntityByTile(data *WorldMapData, mode Mode, level Rank) []int {
	h := data.Modes.Hierarchy(mode)
	out := make([]int, len(h.TileToCounty))
	for tile := range out {
		entity, _ := ResolveEntityID(data, mode, level, tile)
		out[tile] = entity
	}
	return out
}

// EntityName returns the display name of an entity at a level. The
// second return is false for out-of-range ids or unknown levels.
func EntityName(h *Hierarchy, level Rank, entityID int) (string, bool) {
	var names []string
	switch level {
	case RankCounty:
		names = h.CountyNames
	case RankDuchy:
		names = h.DuchyNames
	case RankKingdom:
		names = h.KingdomNames
	default:
		return "", false
	}
	if entityID < 0 || entityID >= len(names) {
		return "", false
	}
	return names[entityID], true
}
