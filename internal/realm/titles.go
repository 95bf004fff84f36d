// Title and character assignment: one ruling character seeded per
// county, promoted upward along the de facto hierarchy so that every
// duchy and kingdom is held by one of the characters already ruling
// inside it.
package realm

import (
	"errors"
	"fmt"

	"github.com/talgya/crownlands/internal/rng"
)

var (
	// ErrNoCandidates indicates an upper-rank entity with no lower-level
	// holders to promote, which means an empty region slipped through.
	ErrNoCandidates = errors.New("realm: no candidate holders for title")
	// ErrNoHeldTitles indicates a character without any titles.
	ErrNoHeldTitles = errors.New("realm: character holds no titles")
)

// assignTitles derives the complete ownership graph for one map. The
// character count is fixed to the county count: a shuffled pairing gives
// every county one ruler, then each duchy picks its holder uniformly
// among the county rulers it contains under de facto control, and each
// kingdom picks among its duchy holders the same way.
func assignTitles(seed int64, modes *Modes) ([]Title, []Character, error) {
	counties := modes.DeJure.CountyCount()
	duchies := modes.DeJure.DuchyCount()
	kingdoms := modes.DeJure.KingdomCount()

	r := rng.New(seed + saltCharacters)

	// Character i rules county perm[i].
	perm := make([]int, counties)
	for i := range perm {
		perm[i] = i
	}
	r.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

	holderOfCounty := make([]int, counties)
	held := make([][]TitleID, counties)
	for character, county := range perm {
		holderOfCounty[county] = character
		held[character] = append(held[character], MakeTitleID(RankCounty, county))
	}

	holderOfDuchy := make([]int, duchies)
	for d := 0; d < duchies; d++ {
		candidates := make([]int, 0, counties)
		for c := 0; c < counties; c++ {
			if modes.DeFacto.CountyToDuchy[c] == d {
				candidates = append(candidates, holderOfCounty[c])
			}
		}
		if len(candidates) == 0 {
			return nil, nil, fmt.Errorf("%w: duchy %d", ErrNoCandidates, d)
		}
		holder := candidates[r.Intn(len(candidates))]
		holderOfDuchy[d] = holder
		held[holder] = append(held[holder], MakeTitleID(RankDuchy, d))
	}

	holderOfKingdom := make([]int, kingdoms)
	for k := 0; k < kingdoms; k++ {
		// One character can hold several duchies of the same kingdom, so
		// dedupe in duchy order to keep the draw uniform over characters.
		candidates := make([]int, 0, duchies)
		seen := make(map[int]bool, duchies)
		for d := 0; d < duchies; d++ {
			if modes.DeFacto.DuchyToKingdom[d] == k {
				h := holderOfDuchy[d]
				if !seen[h] {
					seen[h] = true
					candidates = append(candidates, h)
				}
			}
		}
		if len(candidates) == 0 {
			return nil, nil, fmt.Errorf("%w: kingdom %d", ErrNoCandidates, k)
		}
		holder := candidates[r.Intn(len(candidates))]
		holderOfKingdom[k] = holder
		held[holder] = append(held[holder], MakeTitleID(RankKingdom, k))
	}

	titles := buildTitles(seed, modes, holderOfCounty, holderOfDuchy, holderOfKingdom)

	names := generateCharacterNames(rng.New(seed+saltCharacterNames), counties)
	characters := make([]Character, counties)
	for i := range characters {
		primary, err := primaryTitle(held[i])
		if err != nil {
			return nil, nil, fmt.Errorf("character %d: %w", i, err)
		}
		characters[i] = Character{
			ID:             MakeCharacterID(i),
			Name:           names[i],
			PrimaryTitleID: primary,
			HeldTitleIDs:   held[i],
		}
	}

	return titles, characters, nil
}

// buildTitles materializes one title per (rank, entity) — counties
// first, then duchies, then kingdoms. Parent pointers mirror the
// hierarchy mappings of each mode; kingdoms are apex titles with nil
// parents.
func buildTitles(seed int64, modes *Modes, holderOfCounty, holderOfDuchy, holderOfKingdom []int) []Title {
	h := rng.New(seed + saltHeraldry)
	dj := &modes.DeJure
	df := &modes.DeFacto

	titles := make([]Title, 0, len(holderOfCounty)+len(holderOfDuchy)+len(holderOfKingdom))

	for c := range holderOfCounty {
		djParent := MakeTitleID(RankDuchy, dj.CountyToDuchy[c])
		dfParent := MakeTitleID(RankDuchy, df.CountyToDuchy[c])
		titles = append(titles, Title{
			ID:                   MakeTitleID(RankCounty, c),
			Rank:                 RankCounty,
			EntityID:             c,
			Name:                 "County of " + dj.CountyNames[c],
			MapColor:             mapColor(h),
			CoatOfArmsSeed:       h.Uint32(),
			HolderCharacterID:    MakeCharacterID(holderOfCounty[c]),
			DeJureParentTitleID:  &djParent,
			DeFactoParentTitleID: &dfParent,
		})
	}

	for d := range holderOfDuchy {
		djParent := MakeTitleID(RankKingdom, dj.DuchyToKingdom[d])
		dfParent := MakeTitleID(RankKingdom, df.DuchyToKingdom[d])
		titles = append(titles, Title{
			ID:                   MakeTitleID(RankDuchy, d),
			Rank:                 RankDuchy,
			EntityID:             d,
			Name:                 "Duchy of " + dj.DuchyNames[d],
			MapColor:             mapColor(h),
			CoatOfArmsSeed:       h.Uint32(),
			HolderCharacterID:    MakeCharacterID(holderOfDuchy[d]),
			DeJureParentTitleID:  &djParent,
			DeFactoParentTitleID: &dfParent,
		})
	}

	for k := range holderOfKingdom {
		titles = append(titles, Title{
			ID:                MakeTitleID(RankKingdom, k),
			Rank:              RankKingdom,
			EntityID:          k,
			Name:              "Kingdom of " + dj.KingdomNames[k],
			MapColor:          mapColor(h),
			CoatOfArmsSeed:    h.Uint32(),
			HolderCharacterID: MakeCharacterID(holderOfKingdom[k]),
		})
	}

	return titles
}

// primaryTitle returns the held title with the highest rank weight,
// breaking ties by lowest entity id.
func primaryTitle(held []TitleID) (TitleID, error) {
	if len(held) == 0 {
		return "", ErrNoHeldTitles
	}
	best := held[0]
	bestRank, bestEntity, _ := best.Parse()
	for _, id := range held[1:] {
		rank, entity, _ := id.Parse()
		if rank.Weight() > bestRank.Weight() ||
			(rank.Weight() == bestRank.Weight() && entity < bestEntity) {
			best, bestRank, bestEntity = id, rank, entity
		}
	}
	return best, nil
}

// mapColor draws a render color, biased away from full black so region
// borders stay visible on the canvas.
func mapColor(r *rng.Stream) string {
	return fmt.Sprintf("#%02x%02x%02x", 40+r.Intn(200), 40+r.Intn(200), 40+r.Intn(200))
}
