package render

import (
	"image/color"
	"math"
)

// waterShallow and waterDeep bracket the blue ramp standing water is drawn
// with; the blend factor comes from depth.
var (
	waterShallow = color.RGBA{R: 74, G: 144, B: 217, A: 255}
	waterDeep    = color.RGBA{R: 16, G: 52, B: 120, A: 255}
)

// HypsometricColor maps a raw elevation in meters to the terrain palette:
// sandy flats through green floodplain, tan hills and grey-white peaks. The
// palette is high contrast so the water layer stays readable on top of it.
func HypsometricColor(elev float64) color.RGBA {
	var r, g, b float64
	switch {
	case elev < 0:
		r, g, b = 0.18, 0.25, 0.38
	case elev < 5:
		t := elev / 5.0
		r = 0.55 + t*0.05
		g = 0.52 + t*0.03
		b = 0.35 + t*0.02
	case elev < 30:
		t := (elev - 5) / 25.0
		r = 0.15 + t*0.05
		g = 0.45 + t*0.15
		b = 0.10 + t*0.05
	case elev < 80:
		t := (elev - 30) / 50.0
		r = 0.20 + t*0.30
		g = 0.60 - t*0.05
		b = 0.15 + t*0.05
	case elev < 200:
		t := (elev - 80) / 120.0
		r = 0.50 + t*0.25
		g = 0.55 - t*0.15
		b = 0.20 + t*0.12
	case elev < 500:
		t := (elev - 200) / 300.0
		r = 0.75 - t*0.20
		g = 0.40 - t*0.10
		b = 0.32 - t*0.02
	default:
		t := math.Min((elev-500)/1000.0, 1.0)
		r = 0.55 + t*0.40
		g = 0.52 + t*0.43
		b = 0.50 + t*0.45
	}
	return color.RGBA{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: 255,
	}
}

// ColorMap precomputes the terrain tint for every cell and composites the
// water layer over it each frame. Terrain never changes during a session, so
// the base colors are baked once.
type ColorMap struct {
	base []color.RGBA
	// visDepth is the depth in meters at which water reaches the full deep
	// tint; shallower water blends toward the terrain color.
	visDepth float32
}

// NewColorMap bakes terrain colors from scene heights. vertExag and elevMin
// invert the pipeline's scene transform so the palette sees raw elevations;
// pass 1 and 0 for procedural terrain.
func NewColorMap(heights []float32, vertExag, elevMin float64, visDepth float32) *ColorMap {
	if vertExag <= 0 {
		vertExag = 1
	}
	if visDepth <= 0 {
		visDepth = 2
	}
	base := make([]color.RGBA, len(heights))
	for i, h := range heights {
		base[i] = HypsometricColor(float64(h)/vertExag + elevMin)
	}
	return &ColorMap{base: base, visDepth: visDepth}
}

// Compose fills buf with RGBA pixels: terrain tint where a cell is dry,
// depth-blended water blue where it is wet. buf must hold 4 bytes per cell.
func (cm *ColorMap) Compose(buf []byte, depth []float32) {
	if len(depth) != len(cm.base) || len(buf) < 4*len(depth) {
		return
	}
	for i, d := range depth {
		px := cm.base[i]
		if d > 0 {
			t := d / cm.visDepth
			if t > 1 {
				t = 1
			}
			shallow := lerpRGBA(px, waterShallow, 0.55+0.45*float64(minf(t*4, 1)))
			px = lerpRGBA(shallow, waterDeep, float64(t))
		}
		base := i * 4
		buf[base+0] = px.R
		buf[base+1] = px.G
		buf[base+2] = px.B
		buf[base+3] = 255
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
