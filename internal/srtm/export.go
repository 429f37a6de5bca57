package srtm

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"

	"floodsim/internal/terrain"
)

// DatasetOptions configure one fetch-and-export run.
type DatasetOptions struct {
	Bounds       terrain.Bounds
	GridSize     int
	LocationName string
	Scale        string
	// VertExag overrides the automatic relief-based exaggeration when > 0.
	VertExag float64
}

// Dataset is the in-memory result of a fetch run: scene heights plus the
// metadata sidecar describing them.
type Dataset struct {
	Heights []float32
	Meta    terrain.Meta
}

// BuildDataset fetches the tiles covering the requested bounds, resamples
// them to the grid, and converts raw elevations to scene heights: shifted to
// a zero floor and vertically exaggerated.
func BuildDataset(ctx context.Context, client *Client, opts DatasetOptions) (*Dataset, error) {
	if opts.GridSize <= 0 {
		return nil, fmt.Errorf("srtm: grid size must be positive, got %d", opts.GridSize)
	}
	mosaic, err := client.FetchTiles(ctx, TilesFor(opts.Bounds))
	if err != nil {
		return nil, err
	}
	elev, err := mosaic.Resample(opts.Bounds, opts.GridSize)
	if err != nil {
		return nil, err
	}

	elevMin, elevMax := elev[0], elev[0]
	for _, v := range elev[1:] {
		elevMin = math32.Min(elevMin, v)
		elevMax = math32.Max(elevMax, v)
	}

	vertExag := opts.VertExag
	if vertExag <= 0 {
		vertExag = AutoExaggeration(float64(elevMin), float64(elevMax))
	}

	heights := make([]float32, len(elev))
	for i, v := range elev {
		heights[i] = (v - elevMin) * float32(vertExag)
	}

	b := opts.Bounds
	return &Dataset{
		Heights: heights,
		Meta: terrain.Meta{
			GridSize:             opts.GridSize,
			CellSizeM:            round(CellSizeMeters(b, opts.GridSize), 3),
			Bounds:               b,
			ElevMin:              round(float64(elevMin), 2),
			ElevMax:              round(float64(elevMax), 2),
			VerticalExaggeration: round(vertExag, 2),
			CenterLat:            round((b.South+b.North)/2, 6),
			CenterLon:            round((b.West+b.East)/2, 6),
			LocationName:         opts.LocationName,
			Scale:                opts.Scale,
		},
	}, nil
}

// Export writes the heightmap binary and its JSON sidecar into dir using the
// filenames the terrain loader expects.
func (d *Dataset) Export(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("srtm: creating output dir: %w", err)
	}

	buf := make([]byte, 4*len(d.Heights))
	for i, h := range d.Heights {
		binary.LittleEndian.PutUint32(buf[4*i:], math32.Float32bits(h))
	}
	if err := os.WriteFile(filepath.Join(dir, terrain.HeightmapFile), buf, 0o644); err != nil {
		return fmt.Errorf("srtm: writing heightmap: %w", err)
	}

	meta, err := json.MarshalIndent(d.Meta, "", "  ")
	if err != nil {
		return fmt.Errorf("srtm: encoding metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, terrain.MetaFile), meta, 0o644); err != nil {
		return fmt.Errorf("srtm: writing metadata: %w", err)
	}
	return nil
}

func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
