package srtm

import (
	"fmt"
	"math"

	"floodsim/internal/terrain"
)

// Tile identifies one 1x1 degree SRTM tile by the latitude and longitude of
// its southwest corner.
type Tile struct {
	Lat int
	Lon int
}

// Name returns the canonical tile name, e.g. "S39E177" or "N07W012".
func (t Tile) Name() string {
	latPrefix := "N"
	if t.Lat < 0 {
		latPrefix = "S"
	}
	lonPrefix := "E"
	if t.Lon < 0 {
		lonPrefix = "W"
	}
	return fmt.Sprintf("%s%02d%s%03d", latPrefix, abs(t.Lat), lonPrefix, abs(t.Lon))
}

// LatDir returns the latitude directory the skadi mirror shards tiles into,
// e.g. "S39".
func (t Tile) LatDir() string {
	prefix := "N"
	if t.Lat < 0 {
		prefix = "S"
	}
	return fmt.Sprintf("%s%02d", prefix, abs(t.Lat))
}

// Contains reports whether the point lies within the tile's degree square.
func (t Tile) Contains(lat, lon float64) bool {
	return lat >= float64(t.Lat) && lat <= float64(t.Lat)+1 &&
		lon >= float64(t.Lon) && lon <= float64(t.Lon)+1
}

// TilesFor returns the tiles needed to cover a bounding box, west to east and
// south to north.
func TilesFor(b terrain.Bounds) []Tile {
	var tiles []Tile
	for lat := int(math.Floor(b.South)); lat <= int(math.Floor(b.North)); lat++ {
		for lon := int(math.Floor(b.West)); lon <= int(math.Floor(b.East)); lon++ {
			tiles = append(tiles, Tile{Lat: lat, Lon: lon})
		}
	}
	return tiles
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
