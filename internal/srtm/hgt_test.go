package srtm

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodsim/internal/terrain"
)

func makeHGT(size int, at func(row, col int) int16) []byte {
	buf := make([]byte, 2*size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			binary.BigEndian.PutUint16(buf[2*(row*size+col):], uint16(at(row, col)))
		}
	}
	return buf
}

func TestTileName(t *testing.T) {
	tests := []struct {
		tile   Tile
		name   string
		latDir string
	}{
		{Tile{Lat: -40, Lon: 177}, "S40E177", "S40"},
		{Tile{Lat: 7, Lon: -12}, "N07W012", "N07"},
		{Tile{Lat: 0, Lon: 0}, "N00E000", "N00"},
		{Tile{Lat: 51, Lon: -1}, "N51W001", "N51"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.name, tc.tile.Name())
		assert.Equal(t, tc.latDir, tc.tile.LatDir())
	}
}

func TestTilesForSpansDegreeBoundaries(t *testing.T) {
	tiles := TilesFor(terrain.Bounds{South: -39.07, West: 177.38, North: -39.03, East: 177.44})
	require.Equal(t, []Tile{{Lat: -40, Lon: 177}}, tiles)

	tiles = TilesFor(terrain.Bounds{South: -39.2, West: 176.9, North: -38.8, East: 177.1})
	require.Len(t, tiles, 4)
	assert.Contains(t, tiles, Tile{Lat: -40, Lon: 176})
	assert.Contains(t, tiles, Tile{Lat: -39, Lon: 177})
}

func TestParseHGTRejectsBadPayloads(t *testing.T) {
	tile := Tile{Lat: 0, Lon: 0}

	_, err := ParseHGT(tile, nil)
	assert.Error(t, err)

	_, err = ParseHGT(tile, []byte{1, 2, 3})
	assert.Error(t, err)

	// 3 samples is not a square grid.
	_, err = ParseHGT(tile, make([]byte, 6))
	assert.Error(t, err)
}

func TestParseHGTFillsVoids(t *testing.T) {
	tile := Tile{Lat: 10, Lon: 20}
	data := makeHGT(3, func(row, col int) int16 {
		if row == 1 && col == 1 {
			return -32768
		}
		return int16(100 + row*10 + col)
	})

	parsed, err := ParseHGT(tile, data)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.Size)

	// The void center takes the lowest valid elevation: sample (0,0) = 100.
	assert.Equal(t, float32(100), parsed.Samples[4])
	assert.Equal(t, float32(122), parsed.Samples[8])
}

func TestTileElevationBilinear(t *testing.T) {
	tile := Tile{Lat: 0, Lon: 0}
	// Elevation rises linearly with longitude: 0m at the west edge, 100m at
	// the east edge, on a 5x5 sample grid.
	data := makeHGT(5, func(row, col int) int16 {
		return int16(col * 25)
	})
	parsed, err := ParseHGT(tile, data)
	require.NoError(t, err)

	assert.InDelta(t, 0, parsed.Elevation(0.5, 0), 1e-4)
	assert.InDelta(t, 100, parsed.Elevation(0.5, 1), 1e-4)
	assert.InDelta(t, 50, parsed.Elevation(0.5, 0.5), 1e-4)
	assert.InDelta(t, 12.5, parsed.Elevation(0.25, 0.125), 1e-4)
}

func TestMosaicResample(t *testing.T) {
	// Two neighboring tiles; the western one is flat at 10m, the eastern one
	// flat at 30m.
	m := NewMosaic()
	west, err := ParseHGT(Tile{Lat: 0, Lon: 0}, makeHGT(3, func(int, int) int16 { return 10 }))
	require.NoError(t, err)
	east, err := ParseHGT(Tile{Lat: 0, Lon: 1}, makeHGT(3, func(int, int) int16 { return 30 }))
	require.NoError(t, err)
	m.Add(west)
	m.Add(east)

	heights, err := m.Resample(terrain.Bounds{South: 0.2, West: 0.3, North: 0.8, East: 1.7}, 4)
	require.NoError(t, err)
	require.Len(t, heights, 16)

	// Columns west of the degree boundary read the flat western tile.
	assert.Equal(t, float32(10), heights[0])
	assert.Equal(t, float32(30), heights[3])

	_, err = m.Elevation(2.5, 0.5)
	assert.Error(t, err, "points outside the mosaic must not silently read zero")
}
