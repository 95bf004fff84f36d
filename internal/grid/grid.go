// Package grid provides the tile grid model and the adjacency machinery
// the partitioner runs on: 4-connected tile neighbor lists, and the
// projection that lifts adjacency one hierarchy level up (tiles to
// counties, counties to duchies, duchies to kingdoms).
package grid

import "fmt"

// Grid describes the fixed tile grid of one map version. Tile identifiers
// are row-major: id = y*Width + x.
type Grid struct {
	Width      int   `json:"width"`
	Height     int   `json:"height"`
	TileSizePx int   `json:"tileSizePx"`
	ChunkSize  int   `json:"chunkSize"`
	Seed       int64 `json:"seed"`
}

// TileCount returns the total number of tiles.
func (g Grid) TileCount() int {
	return g.Width * g.Height
}

// TileID maps (x, y) to a row-major tile id.
func (g Grid) TileID(x, y int) int {
	return y*g.Width + x
}

// Coords converts a row-major tile id back to (x, y).
func (g Grid) Coords(id int) (x, y int) {
	return id % g.Width, id / g.Width
}

// InBounds reports whether (x, y) lies within the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// String returns a summary of the grid.
func (g Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, tiles=%d)", g.Width, g.Height, g.TileCount())
}
