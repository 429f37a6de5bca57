package core

// FloatGrid stores a square 2D field of float32 values in row-major order.
type FloatGrid struct {
	Size int
	data []float32
}

// NewFloatGrid allocates a grid with the given side length in cells.
func NewFloatGrid(size int) *FloatGrid {
	if size <= 0 {
		size = 1
	}
	return &FloatGrid{Size: size, data: make([]float32, size*size)}
}

// FloatGridFrom wraps an existing row-major buffer. The buffer length must be
// size*size; callers validate before wrapping.
func FloatGridFrom(size int, data []float32) *FloatGrid {
	return &FloatGrid{Size: size, data: data}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Cells() []float32 { return g.data }

// Index returns the linear slice index for coordinates (col, row).
func (g *FloatGrid) Index(col, row int) int { return row*g.Size + col }

// At returns the value at (col, row) without bounds checking.
func (g *FloatGrid) At(col, row int) float32 { return g.data[row*g.Size+col] }

// InBounds reports whether (col, row) lies inside the grid.
func (g *FloatGrid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Size && row >= 0 && row < g.Size
}

// Clear fills the grid with zeros.
func (g *FloatGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
