//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"floodsim/internal/core"
	"floodsim/internal/sims/flood"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws diagnostic layers on top of the base flood view: surface
// flow arrows, active storm regions and a depth heat mask. Keys 1-3 toggle
// the layers.
type Overlay struct {
	world *flood.World
	storm *flood.Storm
	scale int

	showFlow   bool
	showStorms bool
	showDepth  bool

	maskImg *ebiten.Image
	maskBuf []byte

	pixel         *ebiten.Image
	flowSamples   []flowSample
	flowCacheSize int
	flowPixelSpan float64
}

type flowSample struct {
	col int
	row int
	sx  float64
	sy  float64
}

// NewOverlay constructs an overlay bound to the session. storm may be nil.
func NewOverlay(world *flood.World, storm *flood.Storm, scale int) *Overlay {
	o := &Overlay{world: world, storm: storm, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the layer toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showFlow = !o.showFlow
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showStorms = !o.showStorms
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showDepth = !o.showDepth
	}
}

// Draw renders the enabled layers onto the screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.world.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showDepth {
		o.drawDepthMask(screen, size, scale)
	}
	if o.showFlow {
		o.drawFlowField(screen, size, scale)
	}
	if o.showStorms && o.storm != nil {
		o.drawStorms(screen, scale)
	}
}

// drawFlowField renders sampled velocity arrows. Arrow length and color grow
// with flow speed; cells below the calm threshold get a small dot.
func (o *Overlay) drawFlowField(screen *ebiten.Image, size core.Size, scale int) {
	if !o.ensureFlowSamples(size, scale) {
		return
	}

	const (
		calmThreshold    = 0.02
		maxSpeedEstimate = 3.0
		headAngle        = math.Pi / 6
		calmDotScale     = 0.18
		minThickness     = 0.65
		maxThickness     = 1.05
	)

	baseSpan := o.flowPixelSpan
	if baseSpan <= 0 {
		baseSpan = float64(scale) * 4
	}
	minLength := baseSpan * 0.35
	maxLength := baseSpan * 0.7

	calmDotSize := baseSpan * calmDotScale
	if calmDotSize < float64(scale)*0.75 {
		calmDotSize = float64(scale) * 0.75
	}

	depth := o.world.DepthField()
	for _, sample := range o.flowSamples {
		if depth[sample.row*size.W+sample.col] <= 0 {
			continue
		}
		vx, vz := o.world.VelocityAt(sample.col, sample.row)
		speed := math.Hypot(float64(vx), float64(vz))
		if speed < calmThreshold {
			o.drawPoint(screen, sample.sx, sample.sy, calmDotSize, color.RGBA{R: 90, G: 130, B: 170, A: 120})
			continue
		}

		nx := float64(vx) / speed
		ny := float64(vz) / speed
		normalized := clamp01(speed / maxSpeedEstimate)
		length := minLength + (maxLength-minLength)*math.Sqrt(normalized)
		headLength := math.Min(length*0.3, float64(scale)*4.5)
		tailLength := length * 0.4
		tipX := sample.sx + nx*(length-tailLength)
		tipY := sample.sy + ny*(length-tailLength)
		tailX := sample.sx - nx*tailLength
		tailY := sample.sy - ny*tailLength
		bodyEndX := tipX - nx*headLength
		bodyEndY := tipY - ny*headLength

		thickness := float64(scale) * (minThickness + (maxThickness-minThickness)*normalized)
		if thickness < 1 {
			thickness = 1
		}

		col := flowColor(normalized)
		o.drawLine(screen, tailX, tailY, bodyEndX, bodyEndY, thickness, col)

		angle := math.Atan2(ny, nx)
		leftX := tipX - math.Cos(angle+headAngle)*headLength
		leftY := tipY - math.Sin(angle+headAngle)*headLength
		rightX := tipX - math.Cos(angle-headAngle)*headLength
		rightY := tipY - math.Sin(angle-headAngle)*headLength
		o.drawLine(screen, tipX, tipY, leftX, leftY, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, rightX, rightY, thickness*0.85, col)
	}
}

// drawStorms marks each active rain region with a translucent disc sized to
// its radius and a center dot.
func (o *Overlay) drawStorms(screen *ebiten.Image, scale int) {
	for _, cell := range o.storm.Cells() {
		sx := (cell.X + 0.5) * float64(scale)
		sy := (cell.Y + 0.5) * float64(scale)
		diameter := 2 * cell.Radius * float64(scale)
		o.drawPoint(screen, sx, sy, diameter, color.RGBA{R: 64, G: 110, B: 200, A: 46})
		o.drawPoint(screen, sx, sy, float64(scale)*1.5, color.RGBA{R: 200, G: 220, B: 255, A: 200})
	}
}

// drawDepthMask tints wet cells by depth so shallow sheets stay visible even
// where the base water blend is subtle.
func (o *Overlay) drawDepthMask(screen *ebiten.Image, size core.Size, scale int) {
	total := size.W * size.H
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}

	const (
		maxAlpha = 140.0
		// Depth at which the mask saturates, in meters.
		fullDepth = 1.5
	)
	tint := color.RGBA{R: 64, G: 164, B: 223}

	depth := o.world.DepthField()
	for i := 0; i < total; i++ {
		base := i * 4
		intensity := clamp01(float64(depth[i]) / fullDepth)
		if intensity == 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}
		alpha := uint8(math.Round(maxAlpha * math.Pow(intensity, 0.75)))
		glow := 0.35 + 0.65*math.Sqrt(intensity)
		o.maskBuf[base+0] = scaleColorComponent(tint.R, glow)
		o.maskBuf[base+1] = scaleColorComponent(tint.G, glow)
		o.maskBuf[base+2] = scaleColorComponent(tint.B, glow)
		o.maskBuf[base+3] = alpha
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

// ensureFlowSamples lays out a centered lattice of sample cells; rebuilt only
// when the grid or scale changes.
func (o *Overlay) ensureFlowSamples(size core.Size, scale int) bool {
	if size.W <= 0 || size.H <= 0 {
		return false
	}
	if o.flowCacheSize == size.W && len(o.flowSamples) > 0 {
		return true
	}

	const (
		targetSamples = 360.0
		minSpacing    = 4
		maxSpacing    = 20
	)

	area := float64(size.W * size.H)
	spacing := int(math.Sqrt(area / targetSamples))
	if spacing < minSpacing {
		spacing = minSpacing
	}
	if spacing > maxSpacing {
		spacing = maxSpacing
	}

	count := (size.W + spacing - 1) / spacing
	if count <= 0 {
		count = 1
	}
	start := (size.W - 1 - (count-1)*spacing) / 2
	if start < 0 {
		start = 0
	}

	o.flowSamples = o.flowSamples[:0]
	for yi := 0; yi < count; yi++ {
		row := start + yi*spacing
		if row >= size.H {
			row = size.H - 1
		}
		for xi := 0; xi < count; xi++ {
			col := start + xi*spacing
			if col >= size.W {
				col = size.W - 1
			}
			o.flowSamples = append(o.flowSamples, flowSample{
				col: col,
				row: row,
				sx:  (float64(col) + 0.5) * float64(scale),
				sy:  (float64(row) + 0.5) * float64(scale),
			})
		}
	}

	o.flowCacheSize = size.W
	o.flowPixelSpan = float64(spacing) * float64(scale)
	return len(o.flowSamples) > 0
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func flowColor(t float64) color.RGBA {
	t = clamp01(t)
	r := uint8(math.Round(80 + 110*t))
	g := uint8(math.Round(170 + 60*t))
	b := uint8(math.Round(230 + 15*t))
	a := uint8(math.Round(150 + 90*t))
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
