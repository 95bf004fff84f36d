// Package realm defines the territorial data model — the two governance
// hierarchies, titles, characters and the WorldMapData aggregate — and
// implements the generation pipeline, the payload validator and the
// read-only query surface consumed by renderers and stores.
package realm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/talgya/crownlands/internal/grid"
)

// Payload versions. Version 1 carries grid and hierarchies only; version
// 2 adds titles and characters. Any change to field names or nesting is
// a breaking format change requiring a new version.
const (
	VersionMinimal    = 1
	VersionWithTitles = 2
)

// Variant selects how much of the pipeline runs.
type Variant uint8

const (
	// Minimal generates hierarchies without titles or characters.
	Minimal Variant = iota
	// WithTitles generates the full payload including the ownership graph.
	WithTitles
)

// Version returns the payload version a variant produces.
func (v Variant) Version() int {
	if v == Minimal {
		return VersionMinimal
	}
	return VersionWithTitles
}

// Rank is one of the three levels of the containment hierarchy.
type Rank uint8

const (
	RankCounty Rank = iota
	RankDuchy
	RankKingdom
)

// rankNames holds the wire encoding of each rank.
var rankNames = [...]string{"county", "duchy", "kingdom"}

func (r Rank) String() string {
	if int(r) < len(rankNames) {
		return rankNames[r]
	}
	return fmt.Sprintf("rank(%d)", uint8(r))
}

// Weight returns the rank's precedence weight used for primary-title
// selection: county=1, duchy=2, kingdom=3.
func (r Rank) Weight() int {
	return int(r) + 1
}

// ParseRank parses the wire encoding of a rank.
func ParseRank(s string) (Rank, error) {
	for i, name := range rankNames {
		if s == name {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("realm: unknown rank %q", s)
}

// MarshalJSON encodes the rank as its wire string.
func (r Rank) MarshalJSON() ([]byte, error) {
	if int(r) >= len(rankNames) {
		return nil, fmt.Errorf("realm: cannot encode rank %d", uint8(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a wire rank string.
func (r *Rank) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRank(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Mode selects one of the two governance views.
type Mode uint8

const (
	// ModeDeJure is the legal, nominal hierarchy.
	ModeDeJure Mode = iota
	// ModeDeFacto is the actual-control hierarchy, a bounded perturbation
	// of the de jure one.
	ModeDeFacto
)

func (m Mode) String() string {
	if m == ModeDeJure {
		return "deJure"
	}
	return "deFacto"
}

// TitleID is the canonical string encoding of a (rank, entity) pair, e.g.
// "duchy:3". Parsed once at the boundary; internal code works with the
// structured form.
type TitleID string

// MakeTitleID encodes a (rank, entity) pair.
func MakeTitleID(rank Rank, entityID int) TitleID {
	return TitleID(rank.String() + ":" + strconv.Itoa(entityID))
}

// Parse splits a title id back into its rank and entity id.
func (id TitleID) Parse() (Rank, int, error) {
	rankPart, entityPart, ok := strings.Cut(string(id), ":")
	if !ok {
		return 0, 0, fmt.Errorf("realm: malformed title id %q", id)
	}
	rank, err := ParseRank(rankPart)
	if err != nil {
		return 0, 0, fmt.Errorf("realm: malformed title id %q: %w", id, err)
	}
	entity, err := strconv.Atoi(entityPart)
	if err != nil || entity < 0 {
		return 0, 0, fmt.Errorf("realm: malformed title id %q: bad entity index", id)
	}
	return rank, entity, nil
}

// CharacterID is the canonical string encoding of a character index, e.g.
// "character:12".
type CharacterID string

// MakeCharacterID encodes a character index.
func MakeCharacterID(index int) CharacterID {
	return CharacterID("character:" + strconv.Itoa(index))
}

// Index decodes the character index.
func (id CharacterID) Index() (int, error) {
	prefix, indexPart, ok := strings.Cut(string(id), ":")
	if !ok || prefix != "character" {
		return 0, fmt.Errorf("realm: malformed character id %q", id)
	}
	index, err := strconv.Atoi(indexPart)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("realm: malformed character id %q: bad index", id)
	}
	return index, nil
}

// Title is a named, ranked unit of territorial authority with exactly
// one holder. Parent pointers are a denormalized mirror of the
// hierarchy mappings, nil iff the rank is kingdom.
type Title struct {
	ID                   TitleID     `json:"id"`
	Rank                 Rank        `json:"rank"`
	EntityID             int         `json:"entityId"`
	Name                 string      `json:"name"`
	MapColor             string      `json:"mapColor"`
	CoatOfArmsSeed       uint32      `json:"coatOfArmsSeed"`
	HolderCharacterID    CharacterID `json:"holderCharacterId"`
	DeJureParentTitleID  *TitleID    `json:"deJureParentTitleId"`
	DeFactoParentTitleID *TitleID    `json:"deFactoParentTitleId"`
}

// Character is a ruling character. HeldTitleIDs is non-empty, free of
// duplicates and contains PrimaryTitleID.
type Character struct {
	ID             CharacterID `json:"id"`
	Name           string      `json:"name"`
	PrimaryTitleID TitleID     `json:"primaryTitleId"`
	HeldTitleIDs   []TitleID   `json:"heldTitleIds"`
}

// Hierarchy holds one governance view: the three containment mappings
// and the name list of every rank. Entity indices are dense, starting
// at 0; every index at every rank is the image of at least one
// lower-level entity.
type Hierarchy struct {
	TileToCounty   []int    `json:"tileToCounty"`
	CountyToDuchy  []int    `json:"countyToDuchy"`
	DuchyToKingdom []int    `json:"duchyToKingdom"`
	CountyNames    []string `json:"countyNames"`
	DuchyNames     []string `json:"duchyNames"`
	KingdomNames   []string `json:"kingdomNames"`
}

// CountyCount returns the number of counties.
func (h *Hierarchy) CountyCount() int { return len(h.CountyNames) }

// DuchyCount returns the number of duchies.
func (h *Hierarchy) DuchyCount() int { return len(h.DuchyNames) }

// KingdomCount returns the number of kingdoms.
func (h *Hierarchy) KingdomCount() int { return len(h.KingdomNames) }

// Modes pairs the two governance views. The county base (tileToCounty
// and countyNames) is shared between them; the upper mappings diverge.
type Modes struct {
	DeJure  Hierarchy `json:"deJure"`
	DeFacto Hierarchy `json:"deFacto"`
}

// Hierarchy returns the view for the given mode.
func (m *Modes) Hierarchy(mode Mode) *Hierarchy {
	if mode == ModeDeFacto {
		return &m.DeFacto
	}
	return &m.DeJure
}

// WorldMapData is the complete generated map: the aggregate the builder
// constructs once per seed and parameter set. After construction it is
// treated as an immutable value; consumers hold read-only views.
type WorldMapData struct {
	Version    int         `json:"version"`
	Grid       grid.Grid   `json:"grid"`
	Modes      Modes       `json:"modes"`
	Titles     []Title     `json:"titles,omitempty"`
	Characters []Character `json:"characters,omitempty"`
	Terrain    []int       `json:"terrain,omitempty"`
}
