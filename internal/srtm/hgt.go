package srtm

import (
	"encoding/binary"
	"fmt"
	"math"
)

// voidThreshold marks SRTM nodata; the nominal sentinel is -32768 but some
// mirrors ship other large negative values.
const voidThreshold = -1000

// TileData holds one parsed elevation tile. Samples are row-major with row 0
// at the tile's northern edge, matching the .hgt layout.
type TileData struct {
	Tile    Tile
	Size    int
	Samples []float32
}

// ParseHGT decodes a raw .hgt payload: big-endian int16 samples in a square
// row-major grid (3601x3601 for SRTM1, 1201x1201 for SRTM3). Void samples
// are filled with the lowest valid elevation in the tile so the solver never
// sees a nodata sentinel.
func ParseHGT(tile Tile, data []byte) (*TileData, error) {
	if len(data) == 0 || len(data)%2 != 0 {
		return nil, fmt.Errorf("srtm: tile %s payload has odd length %d", tile.Name(), len(data))
	}
	count := len(data) / 2
	size := int(math.Sqrt(float64(count)))
	if size < 2 || size*size != count {
		return nil, fmt.Errorf("srtm: tile %s has %d samples, not a square grid", tile.Name(), count)
	}

	samples := make([]float32, count)
	minValid := float32(math.MaxFloat32)
	voids := 0
	for i := 0; i < count; i++ {
		v := float32(int16(binary.BigEndian.Uint16(data[2*i:])))
		samples[i] = v
		if v <= voidThreshold {
			voids++
		} else if v < minValid {
			minValid = v
		}
	}
	if voids > 0 {
		if voids == count {
			minValid = 0
		}
		for i, v := range samples {
			if v <= voidThreshold {
				samples[i] = minValid
			}
		}
	}

	return &TileData{Tile: tile, Size: size, Samples: samples}, nil
}

// sample returns the elevation at integer sample coordinates, clamped to the
// tile edges.
func (t *TileData) sample(row, col int) float32 {
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	if row > t.Size-1 {
		row = t.Size - 1
	}
	if col > t.Size-1 {
		col = t.Size - 1
	}
	return t.Samples[row*t.Size+col]
}

// Elevation bilinearly interpolates the tile at a geographic point. The
// caller must ensure the point lies within the tile's degree square.
func (t *TileData) Elevation(lat, lon float64) float32 {
	span := float64(t.Size - 1)
	// Row 0 is the northern edge.
	fy := (float64(t.Tile.Lat) + 1 - lat) * span
	fx := (lon - float64(t.Tile.Lon)) * span

	row := int(math.Floor(fy))
	col := int(math.Floor(fx))
	dy := float32(fy - float64(row))
	dx := float32(fx - float64(col))

	top := t.sample(row, col)*(1-dx) + t.sample(row, col+1)*dx
	bottom := t.sample(row+1, col)*(1-dx) + t.sample(row+1, col+1)*dx
	return top*(1-dy) + bottom*dy
}
