package srtm

import (
	"fmt"
	"math"

	"floodsim/internal/terrain"
)

// Mosaic is a set of parsed tiles addressable by geographic coordinates.
type Mosaic struct {
	tiles map[Tile]*TileData
}

// NewMosaic returns an empty mosaic.
func NewMosaic() *Mosaic {
	return &Mosaic{tiles: make(map[Tile]*TileData)}
}

// Add inserts a tile, replacing any previous data for the same degree square.
func (m *Mosaic) Add(data *TileData) {
	m.tiles[data.Tile] = data
}

// Elevation interpolates the elevation at a point, or returns an error when
// no tile covers it.
func (m *Mosaic) Elevation(lat, lon float64) (float32, error) {
	tile := Tile{Lat: int(math.Floor(lat)), Lon: int(math.Floor(lon))}
	data, ok := m.tiles[tile]
	if !ok {
		return 0, fmt.Errorf("srtm: no tile covers (%.4f, %.4f), want %s", lat, lon, tile.Name())
	}
	return data.Elevation(lat, lon), nil
}

// Resample samples the mosaic onto a square grid covering the bounding box.
// Row 0 is the northern edge, matching the heightmap export convention.
func (m *Mosaic) Resample(b terrain.Bounds, gridSize int) ([]float32, error) {
	if gridSize < 2 {
		return nil, fmt.Errorf("srtm: grid size must be at least 2, got %d", gridSize)
	}
	out := make([]float32, gridSize*gridSize)
	span := float64(gridSize - 1)
	for row := 0; row < gridSize; row++ {
		lat := b.North - (b.North-b.South)*float64(row)/span
		for col := 0; col < gridSize; col++ {
			lon := b.West + (b.East-b.West)*float64(col)/span
			v, err := m.Elevation(lat, lon)
			if err != nil {
				return nil, err
			}
			out[row*gridSize+col] = v
		}
	}
	return out, nil
}
