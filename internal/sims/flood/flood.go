// Package flood implements a flux-based shallow-water solver over a static
// terrain field. Water depth and four directional flux values are carried per
// cell; each step updates fluxes from hydraulic head differences, applies the
// resulting volume exchange, and removes infiltration. The flux arrays
// persist across steps, which smooths flow at coarse grid resolutions at the
// cost of strict conservation rigor.
package flood

import (
	"fmt"

	"github.com/chewxy/math32"

	"floodsim/internal/core"
	"floodsim/internal/terrain"
)

// Flow directions, indexing the flux arrays. Direction is encoded by which
// array holds a value; all stored fluxes are non-negative.
const (
	dirEast  = iota // toward +col
	dirSouth        // toward +row
	dirWest         // toward -col
	dirNorth        // toward -row
	dirCount
)

var dirOffsets = [dirCount][2]int{
	dirEast:  {1, 0},
	dirSouth: {0, 1},
	dirWest:  {-1, 0},
	dirNorth: {0, -1},
}

func opposite(dir int) int { return (dir + 2) % dirCount }

// World holds the mutable hydraulic state for one simulation session. The
// terrain buffer is read-only; depth and flux are owned exclusively by the
// session and mutated only by Step, the rain operations and Reset.
type World struct {
	cfg Config

	size     int
	cellSize float32
	cellArea float32

	terrain []float32
	depth   []float32
	flux    [dirCount][]float32

	simTime float64
	steps   int64
}

// NewWithTerrain creates a session sized from the terrain field. A terrain
// buffer whose length does not match its declared grid size is a fatal
// configuration error, surfaced here rather than truncated or padded.
func NewWithTerrain(cfg Config, field *terrain.Field) (*World, error) {
	if field == nil {
		return nil, fmt.Errorf("flood: nil terrain field")
	}
	size := field.GridSize()
	total := size * size
	if len(field.Heights()) != total {
		return nil, fmt.Errorf("flood: terrain buffer length %d does not match grid %dx%d",
			len(field.Heights()), size, size)
	}
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("flood: time step must be positive, got %g", cfg.Dt)
	}
	w := &World{
		cfg:      cfg,
		size:     size,
		cellSize: field.CellSize(),
		cellArea: field.CellSize() * field.CellSize(),
		terrain:  field.Heights(),
		depth:    make([]float32, total),
	}
	for d := range w.flux {
		w.flux[d] = make([]float32, total)
	}
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "flood" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.size, H: w.size} }

// GridSize returns the side length of the square grid in cells.
func (w *World) GridSize() int { return w.size }

// CellSize returns the cell edge length in meters.
func (w *World) CellSize() float32 { return w.cellSize }

// Dt returns the configured solver time step in seconds.
func (w *World) Dt() float32 { return w.cfg.Dt }

// Config returns a copy of the session configuration.
func (w *World) Config() Config { return w.cfg }

// TerrainField exposes the read-only elevation buffer.
func (w *World) TerrainField() []float32 { return w.terrain }

// DepthField exposes the water depth buffer. Rendering collaborators read it
// between frames and must not mutate it.
func (w *World) DepthField() []float32 { return w.depth }

// SimTime returns the accumulated simulated seconds since the last reset.
func (w *World) SimTime() float64 { return w.simTime }

// Steps returns the number of solver steps taken since the last reset.
func (w *World) Steps() int64 { return w.steps }

// Step advances the whole grid by one fixed time increment. The update is a
// two-pass explicit scheme (flux, then depth) followed by infiltration.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	w.updateFlux(dt)
	w.applyFlux(dt)
	w.infiltrate(dt)
	w.simTime += float64(dt)
	w.steps++
}

// updateFlux integrates the four outgoing fluxes of every cell from hydraulic
// head differences. Flux toward a lower-head neighbor grows; a negative
// result is clamped to zero since reversed flow lives in the opposing array.
// Grid-boundary directions drain a depth-proportional flux instead. After the
// four directions are known, they are scaled down together if their combined
// outflow would exceed the cell's volume this step.
func (w *World) updateFlux(dt float32) {
	n := w.size
	gain := dt * w.cfg.Params.Gravity * w.cfg.Params.FlowMultiplier
	drain := w.cfg.Params.EdgeDrainRate
	maxOutflow := w.cellArea / dt

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			i := row*n + col
			d := w.depth[i]
			head := w.terrain[i] + d

			var sum float32
			for dir := 0; dir < dirCount; dir++ {
				nc := col + dirOffsets[dir][0]
				nr := row + dirOffsets[dir][1]

				var f float32
				if nc >= 0 && nc < n && nr >= 0 && nr < n {
					j := nr*n + nc
					dh := head - (w.terrain[j] + w.depth[j])
					f = w.flux[dir][i] + gain*dh
					if f < 0 {
						f = 0
					}
				} else if d > 0 {
					// Open boundary: drainage to the unmodeled exterior.
					f = d * drain
				}
				w.flux[dir][i] = f
				sum += f
			}

			// Never let more volume leave than the cell holds.
			if limit := d * maxOutflow; sum > limit {
				scale := float32(0)
				if sum > 0 {
					scale = limit / sum
				}
				for dir := 0; dir < dirCount; dir++ {
					w.flux[dir][i] *= scale
				}
			}
		}
	}
}

// applyFlux converts the flux field into depth changes: each cell loses its
// own outgoing fluxes and gains its neighbors' fluxes pointed at it. Depths
// are floored at zero to absorb residual float error after the clamp.
func (w *World) applyFlux(dt float32) {
	n := w.size
	inv := dt / w.cellArea

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			i := row*n + col

			var net float32
			for dir := 0; dir < dirCount; dir++ {
				net -= w.flux[dir][i]
				nc := col + dirOffsets[dir][0]
				nr := row + dirOffsets[dir][1]
				if nc >= 0 && nc < n && nr >= 0 && nr < n {
					net += w.flux[opposite(dir)][nr*n+nc]
				}
			}

			d := w.depth[i] + net*inv
			if d < 0 {
				d = 0
			}
			w.depth[i] = d
		}
	}
}

// infiltrate removes a fixed per-step depth from every wet cell, modeling
// soil absorption.
func (w *World) infiltrate(dt float32) {
	loss := w.cfg.Params.InfiltrationRate * dt
	if loss <= 0 {
		return
	}
	for i, d := range w.depth {
		if d <= 0 {
			continue
		}
		d -= loss
		if d < 0 {
			d = 0
		}
		w.depth[i] = d
	}
}

// AddRainUniform adds amount meters of water to every cell.
func (w *World) AddRainUniform(amount float32) {
	if amount <= 0 {
		return
	}
	for i := range w.depth {
		w.depth[i] += amount
	}
}

// AddRainRegion adds amount meters to every cell whose integer coordinates
// lie within radius cells of the (possibly fractional) center. Coordinates
// outside the grid are not an error; the region is clamped and the call is a
// no-op when the clamped region is empty.
func (w *World) AddRainRegion(centerCol, centerRow, radius, amount float32) {
	if amount <= 0 || radius < 0 {
		return
	}
	n := w.size
	minCol := int(math32.Floor(centerCol - radius))
	maxCol := int(math32.Ceil(centerCol + radius))
	minRow := int(math32.Floor(centerRow - radius))
	maxRow := int(math32.Ceil(centerRow + radius))
	if minCol < 0 {
		minCol = 0
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxCol > n-1 {
		maxCol = n - 1
	}
	if maxRow > n-1 {
		maxRow = n - 1
	}

	r2 := radius * radius
	for row := minRow; row <= maxRow; row++ {
		dz := float32(row) - centerRow
		for col := minCol; col <= maxCol; col++ {
			dx := float32(col) - centerCol
			if dx*dx+dz*dz > r2 {
				continue
			}
			w.depth[row*n+col] += amount
		}
	}
}

// Reset zeroes all mutable fields, returning the session to its dry state.
func (w *World) Reset() {
	for i := range w.depth {
		w.depth[i] = 0
	}
	for d := range w.flux {
		for i := range w.flux[d] {
			w.flux[d][i] = 0
		}
	}
	w.simTime = 0
	w.steps = 0
}
