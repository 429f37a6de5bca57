package terrain

import (
	"github.com/chewxy/math32"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Demo synthesizes a river-valley heightmap from fractal OpenSimplex noise so
// the simulator runs without a fetched dataset. The result is deterministic
// for a given seed and already scaled to plausible scene meters.
func Demo(gridSize int, cellSize float32, seed int64) *Field {
	noise := opensimplex.NewNormalized(seed)

	heights := make([]float32, gridSize*gridSize)
	inv := 1.0 / float64(gridSize)
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			nx := float64(col) * inv
			ny := float64(row) * inv

			// Three octaves of rolling hills.
			h := 0.55*noise.Eval2(nx*3, ny*3) +
				0.30*noise.Eval2(nx*7, ny*7) +
				0.15*noise.Eval2(nx*17, ny*17)

			// Carve a broad diagonal valley so warmup has somewhere to pool.
			d := nx - ny
			valley := math32.Exp(-float32(d*d) * 18)
			elev := float32(h)*120 - valley*45

			// Tilt the whole field gently toward one corner so channels drain.
			elev += float32(nx+ny) * 20

			heights[row*gridSize+col] = elev
		}
	}

	// Shift to a zero floor, matching what the fetch pipeline exports.
	lo := heights[0]
	for _, h := range heights[1:] {
		lo = math32.Min(lo, h)
	}
	for i := range heights {
		heights[i] -= lo
	}

	meta := Meta{
		GridSize:             gridSize,
		CellSizeM:            float64(cellSize),
		VerticalExaggeration: 1,
		LocationName:         "procedural demo valley",
		Scale:                "demo",
	}
	f, err := NewField(gridSize, cellSize, heights, meta)
	if err != nil {
		// Inputs are generated locally; a failure here is a programming error.
		panic(err)
	}
	return f
}
