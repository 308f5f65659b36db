package renderer

import (
	"image"

	"github.com/df07/go-raycast-tracer/pkg/core"
)

// Tile represents a rectangular region of the image rendered by one task
type Tile struct {
	ID      int             // Unique tile identifier
	Bounds  image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Sampler core.Sampler    // Tile-specific random generator for deterministic results
}

// NewTile creates a new tile whose sampler is seeded with seed+id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(seed + int64(id)),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image.
// tileWidth <= 0 makes every tile span full rows; tileHeight <= 0 means one row.
func NewTileGrid(width, height, tileWidth, tileHeight int, seed int64) []*Tile {
	if tileWidth <= 0 || tileWidth > width {
		tileWidth = width
	}
	if tileHeight <= 0 {
		tileHeight = 1
	}

	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileWidth - 1) / tileWidth // Ceiling division
	tilesY := (height + tileHeight - 1) / tileHeight

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileWidth
			y0 := tileY * tileHeight
			x1 := min(x0+tileWidth, width) // Don't exceed image bounds
			y1 := min(y0+tileHeight, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
