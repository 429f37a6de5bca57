package flood

// Diagnostics are pure read-only queries over the current depth and flux
// fields, consumed by rendering and HUD collaborators between frames.

// TotalVolume returns the water volume over the whole grid in cubic meters.
func (w *World) TotalVolume() float64 {
	var sum float64
	for _, d := range w.depth {
		sum += float64(d)
	}
	return sum * float64(w.cellArea)
}

// MaxDepth returns the deepest standing water on the grid in meters.
func (w *World) MaxDepth() float32 {
	var max float32
	for _, d := range w.depth {
		if d > max {
			max = d
		}
	}
	return max
}

// WetCells counts cells whose depth exceeds the velocity epsilon.
func (w *World) WetCells() int {
	eps := w.cfg.Params.VelocityEpsilon
	count := 0
	for _, d := range w.depth {
		if d > eps {
			count++
		}
	}
	return count
}

// VelocityField writes vx,vz pairs for every cell into out and returns it.
// When out is too small a new buffer is allocated. The estimate divides net
// directional flux by an assumed depth-by-cell-width cross section; it tracks
// visual flow direction, not a physically derived velocity. Net flux is read
// from the cell's own opposing-direction arrays (east minus west, south minus
// north) with no neighbor lookups, which keeps a nonzero direction sign in
// steady flow down a uniform slope. Cells at or below the depth epsilon
// report zero.
func (w *World) VelocityField(out []float32) []float32 {
	total := w.size * w.size
	if len(out) < 2*total {
		out = make([]float32, 2*total)
	}
	eps := w.cfg.Params.VelocityEpsilon
	for i := 0; i < total; i++ {
		d := w.depth[i]
		if d <= eps {
			out[2*i] = 0
			out[2*i+1] = 0
			continue
		}
		section := d * w.cellSize
		out[2*i] = (w.flux[dirEast][i] - w.flux[dirWest][i]) / section
		out[2*i+1] = (w.flux[dirSouth][i] - w.flux[dirNorth][i]) / section
	}
	return out[:2*total]
}

// VelocityAt returns the vx,vz estimate for a single cell.
func (w *World) VelocityAt(col, row int) (float32, float32) {
	if col < 0 || col >= w.size || row < 0 || row >= w.size {
		return 0, 0
	}
	i := row*w.size + col
	d := w.depth[i]
	if d <= w.cfg.Params.VelocityEpsilon {
		return 0, 0
	}
	section := d * w.cellSize
	return (w.flux[dirEast][i] - w.flux[dirWest][i]) / section,
		(w.flux[dirSouth][i] - w.flux[dirNorth][i]) / section
}
