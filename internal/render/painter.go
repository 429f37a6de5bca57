//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// FloodPainter owns the RGBA image the simulation grid is drawn into. The
// terrain tint is baked by the ColorMap; only the water layer changes per
// frame.
type FloodPainter struct {
	w, h     int
	img      *ebiten.Image
	buf      []byte
	colorMap *ColorMap
}

// NewFloodPainter allocates a painter for a square grid.
func NewFloodPainter(gridSize int, colorMap *ColorMap) *FloodPainter {
	fp := &FloodPainter{
		w:        gridSize,
		h:        gridSize,
		buf:      make([]byte, 4*gridSize*gridSize),
		colorMap: colorMap,
	}
	fp.img = ebiten.NewImage(gridSize, gridSize)
	return fp
}

// Blit composites terrain and water into the painter image and draws it.
func (fp *FloodPainter) Blit(dst *ebiten.Image, depth []float32, scale int) {
	if len(depth) != fp.w*fp.h {
		return
	}
	fp.colorMap.Compose(fp.buf, depth)
	fp.img.WritePixels(fp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(fp.img, op)
}

// Size returns the dimensions of the underlying image.
func (fp *FloodPainter) Size() (int, int) { return fp.w, fp.h }
