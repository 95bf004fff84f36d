// Payload validation: everything the generator establishes is re-derived
// and checked here, so any consumer loading a persisted map goes through
// the same contract the generator satisfies. No violation is repaired or
// downgraded — the first failed check aborts the whole call.
package realm

import (
	"encoding/json"
	"fmt"

	"github.com/talgya/crownlands/internal/terrain"
)

// ValidationError reports one invariant violation, naming the offending
// field path and the reason.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("realm: invalid payload at %s: %s", e.Path, e.Reason)
}

func invalidf(path, format string, args ...any) error {
	return &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks an untrusted serialized payload against the full wire
// contract and every generator invariant, returning the typed map on
// success. Nothing is returned on any violation.
func Validate(raw []byte) (*WorldMapData, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("realm: payload is not valid JSON: %w", err)
	}
	if err := payloadSchema.Validate(decoded); err != nil {
		return nil, fmt.Errorf("realm: payload shape: %w", err)
	}

	var data WorldMapData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("realm: payload decode: %w", err)
	}
	if err := CheckInvariants(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// CheckInvariants verifies a decoded payload: structural lengths, index
// bounds, non-empty-region coverage, cross-mode invariants, title
// self-consistency and parent mirroring, character shape, and the full
// bidirectional title-holder mapping, in that order.
func CheckInvariants(d *WorldMapData) error {
	if d.Version != VersionMinimal && d.Version != VersionWithTitles {
		return invalidf("version", "unsupported version %d", d.Version)
	}
	if d.Grid.Width <= 0 || d.Grid.Height <= 0 {
		return invalidf("grid", "dimensions %dx%d must be positive", d.Grid.Width, d.Grid.Height)
	}
	if d.Grid.TileSizePx <= 0 || d.Grid.ChunkSize <= 0 {
		return invalidf("grid", "tileSizePx %d and chunkSize %d must be positive",
			d.Grid.TileSizePx, d.Grid.ChunkSize)
	}
	tileCount := d.Grid.TileCount()

	if err := checkHierarchy("modes.deJure", &d.Modes.DeJure, tileCount); err != nil {
		return err
	}
	if err := checkHierarchy("modes.deFacto", &d.Modes.DeFacto, tileCount); err != nil {
		return err
	}
	if err := checkCrossMode(&d.Modes); err != nil {
		return err
	}

	if d.Version == VersionMinimal {
		if len(d.Titles) != 0 || len(d.Characters) != 0 {
			return invalidf("titles", "version 1 payload must not carry titles or characters")
		}
	} else {
		titleIndex, err := checkTitles(d)
		if err != nil {
			return err
		}
		if err := checkCharacters(d, titleIndex); err != nil {
			return err
		}
		if err := checkOwnership(d, titleIndex); err != nil {
			return err
		}
	}

	if d.Terrain != nil {
		if len(d.Terrain) != tileCount {
			return invalidf("terrain", "length %d, want %d", len(d.Terrain), tileCount)
		}
		for i, c := range d.Terrain {
			if c < 0 || c >= terrain.NumClasses {
				return invalidf("terrain", "index %d: unknown class %d", i, c)
			}
		}
	}

	return nil
}

// checkHierarchy verifies lengths, index bounds and full coverage (no
// empty region at any rank) for one governance view.
func checkHierarchy(path string, h *Hierarchy, tileCount int) error {
	counties := h.CountyCount()
	duchies := h.DuchyCount()
	kingdoms := h.KingdomCount()
	if counties == 0 {
		return invalidf(path+".countyNames", "must not be empty")
	}
	if duchies == 0 {
		return invalidf(path+".duchyNames", "must not be empty")
	}
	if kingdoms == 0 {
		return invalidf(path+".kingdomNames", "must not be empty")
	}

	if len(h.TileToCounty) != tileCount {
		return invalidf(path+".tileToCounty", "length %d, want %d tiles", len(h.TileToCounty), tileCount)
	}
	if len(h.CountyToDuchy) != counties {
		return invalidf(path+".countyToDuchy", "length %d, want %d counties", len(h.CountyToDuchy), counties)
	}
	if len(h.DuchyToKingdom) != duchies {
		return invalidf(path+".duchyToKingdom", "length %d, want %d duchies", len(h.DuchyToKingdom), duchies)
	}

	if err := checkMapping(path+".tileToCounty", h.TileToCounty, counties, "county"); err != nil {
		return err
	}
	if err := checkMapping(path+".countyToDuchy", h.CountyToDuchy, duchies, "duchy"); err != nil {
		return err
	}
	if err := checkMapping(path+".duchyToKingdom", h.DuchyToKingdom, kingdoms, "kingdom"); err != nil {
		return err
	}
	return nil
}

// checkMapping verifies every entry lies in [0, targetCount) and every
// target index is hit at least once.
func checkMapping(path string, mapping []int, targetCount int, targetName string) error {
	covered := make([]bool, targetCount)
	for i, v := range mapping {
		if v < 0 || v >= targetCount {
			return invalidf(path, "index %d: %s %d out of range [0, %d)", i, targetName, v, targetCount)
		}
		covered[v] = true
	}
	for target, ok := range covered {
		if !ok {
			return invalidf(path, "%s %d has no members", targetName, target)
		}
	}
	return nil
}

// checkCrossMode verifies the shared county base and that the de facto
// view actually diverges from the de jure one.
func checkCrossMode(m *Modes) error {
	dj, df := &m.DeJure, &m.DeFacto

	if dj.CountyCount() != df.CountyCount() ||
		dj.DuchyCount() != df.DuchyCount() ||
		dj.KingdomCount() != df.KingdomCount() {
		return invalidf("modes", "entity counts differ between modes")
	}

	for i := range dj.TileToCounty {
		if dj.TileToCounty[i] != df.TileToCounty[i] {
			return invalidf("modes.deFacto.tileToCounty", "index %d differs from de jure; county base is shared", i)
		}
	}
	for i := range dj.CountyNames {
		if dj.CountyNames[i] != df.CountyNames[i] {
			return invalidf("modes.deFacto.countyNames", "index %d differs from de jure; county base is shared", i)
		}
	}

	identical := true
	for i := range dj.CountyToDuchy {
		if dj.CountyToDuchy[i] != df.CountyToDuchy[i] {
			identical = false
			break
		}
	}
	if identical {
		return invalidf("modes.deFacto.countyToDuchy", "identical to de jure; perturbation has not taken effect")
	}
	return nil
}

// checkTitles verifies one self-consistent title per (rank, entity) and
// that parent pointers mirror the hierarchy mappings of both modes.
// Returns an id-to-index lookup for the ownership pass.
func checkTitles(d *WorldMapData) (map[TitleID]int, error) {
	dj, df := &d.Modes.DeJure, &d.Modes.DeFacto
	counts := [3]int{dj.CountyCount(), dj.DuchyCount(), dj.KingdomCount()}
	expected := counts[0] + counts[1] + counts[2]
	if len(d.Titles) != expected {
		return nil, invalidf("titles", "found %d titles, want %d (one per entity)", len(d.Titles), expected)
	}

	titleIndex := make(map[TitleID]int, expected)
	for i := range d.Titles {
		t := &d.Titles[i]
		path := fmt.Sprintf("titles[%d]", i)

		rank, entity, err := t.ID.Parse()
		if err != nil {
			return nil, invalidf(path+".id", "%v", err)
		}
		if prev, dup := titleIndex[t.ID]; dup {
			return nil, invalidf(path+".id", "duplicate id %s (also titles[%d])", t.ID, prev)
		}
		titleIndex[t.ID] = i

		if rank != t.Rank || entity != t.EntityID {
			return nil, invalidf(path, "id %s disagrees with rank %s / entityId %d", t.ID, t.Rank, t.EntityID)
		}
		if t.EntityID >= counts[t.Rank] {
			return nil, invalidf(path+".entityId", "%s %d out of range [0, %d)", t.Rank, t.EntityID, counts[t.Rank])
		}
		if t.Name == "" {
			return nil, invalidf(path+".name", "must not be empty")
		}

		if t.Rank == RankKingdom {
			if t.DeJureParentTitleID != nil || t.DeFactoParentTitleID != nil {
				return nil, invalidf(path, "kingdom titles are apex and must have null parents")
			}
			continue
		}

		if err := checkParent(path+".deJureParentTitleId", t, t.DeJureParentTitleID, dj); err != nil {
			return nil, err
		}
		if err := checkParent(path+".deFactoParentTitleId", t, t.DeFactoParentTitleID, df); err != nil {
			return nil, err
		}
	}

	// Distinct valid ids, bounded per rank, totalling the per-rank sums:
	// this forces exactly one title per entity, so no separate coverage
	// pass is needed.
	return titleIndex, nil
}

// checkParent verifies a non-kingdom title's parent pointer: present,
// exactly one rank higher, and equal to the entity recorded in the
// hierarchy mapping — the pointer is a denormalized mirror, never an
// independent source of truth.
func checkParent(path string, t *Title, parent *TitleID, h *Hierarchy) error {
	if parent == nil {
		return invalidf(path, "missing parent for %s title", t.Rank)
	}
	parentRank, parentEntity, err := parent.Parse()
	if err != nil {
		return invalidf(path, "%v", err)
	}
	wantRank := t.Rank + 1
	if parentRank != wantRank {
		return invalidf(path, "parent rank %s, want %s", parentRank, wantRank)
	}

	var mapped int
	if t.Rank == RankCounty {
		mapped = h.CountyToDuchy[t.EntityID]
	} else {
		mapped = h.DuchyToKingdom[t.EntityID]
	}
	if parentEntity != mapped {
		return invalidf(path, "parent %s disagrees with hierarchy mapping %s:%d", *parent, wantRank, mapped)
	}
	return nil
}

// checkCharacters verifies character shape: dense ids, non-empty unique
// held-title lists over known titles, and primary membership.
func checkCharacters(d *WorldMapData, titleIndex map[TitleID]int) error {
	if len(d.Characters) == 0 {
		return invalidf("characters", "must not be empty")
	}

	for i := range d.Characters {
		c := &d.Characters[i]
		path := fmt.Sprintf("characters[%d]", i)

		index, err := c.ID.Index()
		if err != nil {
			return invalidf(path+".id", "%v", err)
		}
		if index != i {
			return invalidf(path+".id", "id %s does not match position %d", c.ID, i)
		}
		if c.Name == "" {
			return invalidf(path+".name", "must not be empty")
		}
		if len(c.HeldTitleIDs) == 0 {
			return invalidf(path+".heldTitleIds", "must not be empty")
		}

		held := make(map[TitleID]bool, len(c.HeldTitleIDs))
		for j, id := range c.HeldTitleIDs {
			if held[id] {
				return invalidf(path+".heldTitleIds", "duplicate title %s at index %d", id, j)
			}
			held[id] = true
			if _, ok := titleIndex[id]; !ok {
				return invalidf(path+".heldTitleIds", "index %d references unknown title %s", j, id)
			}
		}
		if !held[c.PrimaryTitleID] {
			return invalidf(path+".primaryTitleId", "%s is not among held titles", c.PrimaryTitleID)
		}
	}
	return nil
}

// checkOwnership verifies the bidirectional title-holder mapping: every
// title is listed by exactly one character, and that character is the
// one the title's holder field names.
func checkOwnership(d *WorldMapData, titleIndex map[TitleID]int) error {
	claimedBy := make(map[TitleID]int, len(d.Titles))
	for i := range d.Characters {
		c := &d.Characters[i]
		for _, id := range c.HeldTitleIDs {
			if prev, dup := claimedBy[id]; dup {
				return invalidf(fmt.Sprintf("characters[%d].heldTitleIds", i),
					"title %s already held by characters[%d]", id, prev)
			}
			claimedBy[id] = i

			t := &d.Titles[titleIndex[id]]
			if t.HolderCharacterID != c.ID {
				return invalidf(fmt.Sprintf("titles[%d].holderCharacterId", titleIndex[id]),
					"%s disagrees with holder %s", t.HolderCharacterID, c.ID)
			}
		}
	}

	for i := range d.Titles {
		t := &d.Titles[i]
		path := fmt.Sprintf("titles[%d].holderCharacterId", i)

		holder, err := t.HolderCharacterID.Index()
		if err != nil {
			return invalidf(path, "%v", err)
		}
		if holder >= len(d.Characters) {
			return invalidf(path, "%s references a nonexistent character", t.HolderCharacterID)
		}
		if _, ok := claimedBy[t.ID]; !ok {
			return invalidf(path, "holder %s does not list title %s", t.HolderCharacterID, t.ID)
		}
	}
	return nil
}
