// Package terrain derives a render-facing terrain class for every tile
// from layered simplex noise: an elevation field with radial continental
// falloff plus an independent moisture field. The layer is purely
// cosmetic flavor for the map painter — partitioning never consults it.
package terrain

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/crownlands/internal/grid"
)

// Class is a per-tile terrain category, encoded as its numeric value in
// the payload's terrain array.
type Class uint8

const (
	ClassOcean Class = iota
	ClassCoast
	ClassPlains
	ClassForest
	ClassHills
	ClassMountain

	numClasses
)

// NumClasses is the number of valid terrain class codes.
const NumClasses = int(numClasses)

// Name returns a human-readable name for a terrain class.
func (c Class) Name() string {
	switch c {
	case ClassOcean:
		return "Ocean"
	case ClassCoast:
		return "Coast"
	case ClassPlains:
		return "Plains"
	case ClassForest:
		return "Forest"
	case ClassHills:
		return "Hills"
	case ClassMountain:
		return "Mountain"
	default:
		return "Unknown"
	}
}

// Thresholds of the elevation field. Kept moderate so most of the map is
// habitable land with an ocean rim.
const (
	seaLevel    = 0.30
	hillLevel   = 0.62
	summitLevel = 0.78
)

// Generate returns one terrain class per tile, row-major, deterministic
// for a given grid (the noise generators are seeded from grid.Seed).
func Generate(g grid.Grid) []int {
	elevNoise := opensimplex.NewNormalized(g.Seed)
	moistNoise := opensimplex.NewNormalized(g.Seed + 1)

	out := make([]int, g.TileCount())
	cx := float64(g.Width) / 2
	cy := float64(g.Height) / 2
	maxDist := math.Hypot(cx, cy)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fx, fy := float64(x), float64(y)

			elev := octaveNoise(elevNoise, fx, fy, 4, 0.05, 0.5)
			moist := octaveNoise(moistNoise, fx, fy, 3, 0.04, 0.5)

			// Continental shaping: fade elevation toward the map edge so
			// the landmass sits inside an ocean border.
			dist := math.Hypot(fx-cx, fy-cy) / maxDist
			falloff := 1.0 - math.Pow(dist, 3)
			if falloff < 0 {
				falloff = 0
			}
			elev *= falloff

			out[g.TileID(x, y)] = int(classify(elev, moist))
		}
	}

	markCoast(g, out)
	return out
}

func classify(elev, moist float64) Class {
	switch {
	case elev < seaLevel:
		return ClassOcean
	case elev > summitLevel:
		return ClassMountain
	case elev > hillLevel:
		return ClassHills
	case moist > 0.55:
		return ClassForest
	default:
		return ClassPlains
	}
}

// markCoast converts low land tiles bordering ocean into coast.
func markCoast(g grid.Grid, classes []int) {
	adjacency, err := grid.BuildAdjacency(g.Width, g.Height)
	if err != nil {
		return
	}

	var toMark []int
	for id, c := range classes {
		if Class(c) == ClassOcean || Class(c) == ClassMountain {
			continue
		}
		for _, n := range adjacency[id] {
			if Class(classes[n]) == ClassOcean {
				toMark = append(toMark, id)
				break
			}
		}
	}
	for _, id := range toMark {
		classes[id] = int(ClassCoast)
	}
}

// octaveNoise layers multiple noise frequencies into fractal detail.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
