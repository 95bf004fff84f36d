// World map builder: orchestrates adjacency construction, the three
// region-growing passes, the de facto perturbations and the ownership
// assignment into one deterministic WorldMapData value.
package realm

import (
	"errors"
	"fmt"

	"github.com/talgya/crownlands/internal/grid"
	"github.com/talgya/crownlands/internal/region"
	"github.com/talgya/crownlands/internal/rng"
	"github.com/talgya/crownlands/internal/terrain"
)

// Named stream salts. Every generation step owns its own seed-derived
// generator so the steps stay independent of each other and the whole
// pipeline is a pure function of the seed.
const (
	saltCounties        = 101
	saltDuchies         = 211
	saltKingdoms        = 307
	saltPerturbDuchies  = 401
	saltPerturbKingdoms = 503
	saltEntityNames     = 601
	saltCharacters      = 701
	saltCharacterNames  = 761
	saltHeraldry        = 809
)

var (
	// ErrCountRange indicates a non-positive rank count.
	ErrCountRange = errors.New("realm: rank counts must be positive")
	// ErrCountOrder indicates counts that increase with rank (more
	// duchies than counties, or more kingdoms than duchies).
	ErrCountOrder = errors.New("realm: rank counts must not increase with rank")
)

// Params configures one generation run.
type Params struct {
	Seed       int64
	Width      int
	Height     int
	TileSizePx int
	ChunkSize  int
	Counties   int
	Duchies    int
	Kingdoms   int
	Variant    Variant
	Terrain    bool
}

// DefaultParams returns the standard map parameters for a seed.
func DefaultParams(seed int64) Params {
	return Params{
		Seed:       seed,
		Width:      80,
		Height:     50,
		TileSizePx: 32,
		ChunkSize:  16,
		Counties:   48,
		Duchies:    16,
		Kingdoms:   5,
		Variant:    WithTitles,
		Terrain:    true,
	}
}

// Generate runs the full pipeline for one seed and parameter set. It is
// pure, synchronous and deterministic: the same Params always produce a
// byte-identical payload. Preconditions fail before any generation work;
// algorithmic exhaustion inside a step aborts the whole run.
func Generate(p Params) (*WorldMapData, error) {
	if p.Counties <= 0 || p.Duchies <= 0 || p.Kingdoms <= 0 {
		return nil, fmt.Errorf("%w: counties=%d duchies=%d kingdoms=%d",
			ErrCountRange, p.Counties, p.Duchies, p.Kingdoms)
	}
	if p.Duchies > p.Counties || p.Kingdoms > p.Duchies {
		return nil, fmt.Errorf("%w: counties=%d duchies=%d kingdoms=%d",
			ErrCountOrder, p.Counties, p.Duchies, p.Kingdoms)
	}

	adjacency, err := grid.BuildAdjacency(p.Width, p.Height)
	if err != nil {
		return nil, err
	}
	tileCount := p.Width * p.Height

	// Level 1: tiles into counties. The county base is shared by both
	// governance views.
	tileToCounty, err := region.Grow(tileCount, p.Counties, rng.New(p.Seed+saltCounties), adjacency)
	if err != nil {
		return nil, fmt.Errorf("grow counties: %w", err)
	}
	countyAdj, err := grid.ProjectGridAdjacency(p.Width, p.Height, tileToCounty, p.Counties)
	if err != nil {
		return nil, fmt.Errorf("project county adjacency: %w", err)
	}

	// Level 2: counties into duchies — de jure grown, de facto a bounded
	// perturbation of it.
	djCountyToDuchy, err := region.Grow(p.Counties, p.Duchies, rng.New(p.Seed+saltDuchies), countyAdj)
	if err != nil {
		return nil, fmt.Errorf("grow duchies: %w", err)
	}
	dfCountyToDuchy, err := region.Perturb(djCountyToDuchy, countyAdj, p.Duchies,
		region.DefaultTarget(p.Counties), rng.New(p.Seed+saltPerturbDuchies))
	if err != nil {
		return nil, fmt.Errorf("perturb duchies: %w", err)
	}

	// Level 3: duchies into kingdoms, over the duchy adjacency projected
	// through the de jure mapping.
	duchyAdj, err := grid.ProjectAdjacency(countyAdj, djCountyToDuchy, p.Duchies)
	if err != nil {
		return nil, fmt.Errorf("project duchy adjacency: %w", err)
	}
	djDuchyToKingdom, err := region.Grow(p.Duchies, p.Kingdoms, rng.New(p.Seed+saltKingdoms), duchyAdj)
	if err != nil {
		return nil, fmt.Errorf("grow kingdoms: %w", err)
	}
	dfDuchyToKingdom, err := region.Perturb(djDuchyToKingdom, duchyAdj, p.Kingdoms,
		region.DefaultTarget(p.Duchies), rng.New(p.Seed+saltPerturbKingdoms))
	if err != nil {
		return nil, fmt.Errorf("perturb kingdoms: %w", err)
	}

	countyNames, duchyNames, kingdomNames := generateEntityNames(
		rng.New(p.Seed+saltEntityNames), p.Counties, p.Duchies, p.Kingdoms)

	data := &WorldMapData{
		Version: p.Variant.Version(),
		Grid: grid.Grid{
			Width:      p.Width,
			Height:     p.Height,
			TileSizePx: p.TileSizePx,
			ChunkSize:  p.ChunkSize,
			Seed:       p.Seed,
		},
		Modes: Modes{
			DeJure: Hierarchy{
				TileToCounty:   tileToCounty,
				CountyToDuchy:  djCountyToDuchy,
				DuchyToKingdom: djDuchyToKingdom,
				CountyNames:    countyNames,
				DuchyNames:     duchyNames,
				KingdomNames:   kingdomNames,
			},
			DeFacto: Hierarchy{
				TileToCounty:   copyInts(tileToCounty),
				CountyToDuchy:  dfCountyToDuchy,
				DuchyToKingdom: dfDuchyToKingdom,
				CountyNames:    copyStrings(countyNames),
				DuchyNames:     copyStrings(duchyNames),
				KingdomNames:   copyStrings(kingdomNames),
			},
		},
	}

	if p.Variant == WithTitles {
		titles, characters, err := assignTitles(p.Seed, &data.Modes)
		if err != nil {
			return nil, fmt.Errorf("assign titles: %w", err)
		}
		data.Titles = titles
		data.Characters = characters
	}

	if p.Terrain {
		data.Terrain = terrain.Generate(data.Grid)
	}

	return data, nil
}

// The two modes never alias slices: the aggregate is treated as an
// immutable value after construction, and shared backing arrays would
// make that promise fragile for consumers holding one mode.
func copyInts(src []int) []int {
	dst := make([]int, len(src))
	copy(dst, src)
	return dst
}

func copyStrings(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
