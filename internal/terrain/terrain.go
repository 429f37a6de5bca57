// Package terrain loads and validates the elevation fields the flood
// simulation runs on. Heightmaps come from the SRTM fetch pipeline as a raw
// little-endian float32 buffer plus a JSON metadata sidecar, or from the
// procedural generator when no dataset is available.
package terrain

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"

	"floodsim/internal/core"
)

// HeightmapFile and MetaFile are the filenames the fetch pipeline exports.
const (
	HeightmapFile = "heightmap.bin"
	MetaFile      = "heightmap_meta.json"
)

// Bounds is a geographic bounding box in decimal degrees.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Meta describes the provenance and scaling of an exported heightmap.
type Meta struct {
	GridSize             int     `json:"grid_size"`
	CellSizeM            float64 `json:"cell_size_m"`
	Bounds               Bounds  `json:"bounds"`
	ElevMin              float64 `json:"elev_min"`
	ElevMax              float64 `json:"elev_max"`
	VerticalExaggeration float64 `json:"vertical_exaggeration"`
	CenterLat            float64 `json:"center_lat"`
	CenterLon            float64 `json:"center_lon"`
	LocationName         string  `json:"location_name"`
	Scale                string  `json:"scale"`
}

// Field is a static square elevation grid. Heights are scene meters: already
// shifted to a zero floor and vertically exaggerated by the upstream pipeline.
// The field is read-only once constructed.
type Field struct {
	grid     *core.FloatGrid
	cellSize float32
	meta     Meta
}

// NewField wraps a row-major height buffer. The buffer length must equal
// gridSize squared and every value must be finite; anything else is a
// configuration error, not a recoverable condition.
func NewField(gridSize int, cellSize float32, heights []float32, meta Meta) (*Field, error) {
	if gridSize <= 0 {
		return nil, fmt.Errorf("terrain: grid size must be positive, got %d", gridSize)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("terrain: cell size must be positive, got %g", cellSize)
	}
	if want := gridSize * gridSize; len(heights) != want {
		return nil, fmt.Errorf("terrain: heightmap length %d does not match grid %dx%d (want %d)",
			len(heights), gridSize, gridSize, want)
	}
	for i, h := range heights {
		if math32.IsNaN(h) || math32.IsInf(h, 0) {
			return nil, fmt.Errorf("terrain: non-finite height %g at cell %d", h, i)
		}
	}
	return &Field{
		grid:     core.FloatGridFrom(gridSize, heights),
		cellSize: cellSize,
		meta:     meta,
	}, nil
}

// GridSize returns the side length of the square grid in cells.
func (f *Field) GridSize() int { return f.grid.Size }

// CellSize returns the edge length of one cell in meters.
func (f *Field) CellSize() float32 { return f.cellSize }

// Heights exposes the row-major elevation buffer. Callers must not mutate it.
func (f *Field) Heights() []float32 { return f.grid.Cells() }

// At returns the elevation at (col, row).
func (f *Field) At(col, row int) float32 { return f.grid.At(col, row) }

// Meta returns the heightmap provenance metadata.
func (f *Field) Meta() Meta { return f.meta }

// MinMax returns the lowest and highest elevation in the field.
func (f *Field) MinMax() (float32, float32) {
	cells := f.grid.Cells()
	lo, hi := cells[0], cells[0]
	for _, h := range cells[1:] {
		lo = math32.Min(lo, h)
		hi = math32.Max(hi, h)
	}
	return lo, hi
}

// Relief returns the elevation range of the field.
func (f *Field) Relief() float32 {
	lo, hi := f.MinMax()
	return hi - lo
}

// Load reads a heightmap.bin/heightmap_meta.json pair from dir.
func Load(dir string) (*Field, error) {
	meta, err := LoadMeta(filepath.Join(dir, MetaFile))
	if err != nil {
		return nil, err
	}
	heights, err := LoadHeightmap(filepath.Join(dir, HeightmapFile))
	if err != nil {
		return nil, err
	}
	return NewField(meta.GridSize, float32(meta.CellSizeM), heights, meta)
}

// LoadMeta reads and decodes a heightmap metadata sidecar.
func LoadMeta(path string) (Meta, error) {
	var meta Meta
	raw, err := os.ReadFile(path)
	if err != nil {
		return meta, fmt.Errorf("terrain: read metadata: %w", err)
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return meta, fmt.Errorf("terrain: decode metadata: %w", err)
	}
	if meta.GridSize <= 0 {
		return meta, fmt.Errorf("terrain: metadata grid_size must be positive, got %d", meta.GridSize)
	}
	if meta.CellSizeM <= 0 {
		return meta, fmt.Errorf("terrain: metadata cell_size_m must be positive, got %g", meta.CellSizeM)
	}
	return meta, nil
}

// LoadHeightmap reads a raw little-endian float32 heightmap buffer.
func LoadHeightmap(path string) ([]float32, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("terrain: open heightmap: %w", err)
	}
	defer file.Close()
	return ReadHeightmap(file)
}

// ReadHeightmap decodes raw little-endian float32 heights from r.
func ReadHeightmap(r io.Reader) ([]float32, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("terrain: read heightmap: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("terrain: heightmap size %d is not a multiple of 4 bytes", len(raw))
	}
	heights := make([]float32, len(raw)/4)
	for i := range heights {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		heights[i] = math32.Float32frombits(bits)
	}
	return heights, nil
}
