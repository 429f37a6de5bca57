//go:build ebiten

package app

import (
	"time"

	"floodsim/internal/render"
	"floodsim/internal/sims/flood"
	"floodsim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// clickRainRadius and clickRainAmount define the water burst dropped on a
// left click, in cells and meters.
const (
	clickRainRadius = 6
	clickRainAmount = 0.05
)

// Game adapts a flood session to the ebiten.Game interface.
type Game struct {
	world   *flood.World
	storm   *flood.Storm
	painter *render.FloodPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	hudWidth int
	speed    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided session. speed is the number of
// solver substeps per frame.
func New(world *flood.World, storm *flood.Storm, colorMap *render.ColorMap, scale, hudWidth, speed int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	if speed <= 0 {
		speed = 1
	}
	g := &Game{
		world:    world,
		storm:    storm,
		painter:  render.NewFloodPainter(world.GridSize(), colorMap),
		overlay:  ui.NewOverlay(world, storm, scale),
		scale:    scale,
		hudWidth: hudWidth,
		speed:    speed,
		seed:     seed,
	}
	g.hud = ui.NewHUD(world, hudWidth)
	return g
}

// Reset drains the grid and reseeds the storm sequence.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset()
	g.storm = flood.NewStorm(g.world, seed)
	g.overlay = ui.NewOverlay(g.world, g.storm, g.scale)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		if g.speed < 64 {
			g.speed *= 2
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		if g.speed > 1 {
			g.speed /= 2
		}
	}

	g.handleClick()
	g.overlay.Update()
	g.hud.Update(g.world.GridSize() * g.scale)
	g.hud.SetStatus(g.statusLines())

	if (!g.paused) || g.tickOnce {
		steps := g.speed
		if g.tickOnce {
			steps = 1
		}
		dt := g.world.Dt()
		for i := 0; i < steps; i++ {
			g.storm.Update(g.world, dt)
			g.world.Step(dt)
		}
		g.tickOnce = false
	}
	return nil
}

// handleClick drops a burst of water where the grid is clicked.
func (g *Game) handleClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	gridPx := g.world.GridSize() * g.scale
	if mx < 0 || mx >= gridPx || my < 0 || my >= gridPx {
		return
	}
	col := float32(mx) / float32(g.scale)
	row := float32(my) / float32(g.scale)
	g.world.AddRainRegion(col, row, clickRainRadius, clickRainAmount)
}

func (g *Game) statusLines() []string {
	return []string{
		formatDuration(g.world.SimTime()),
		formatVolume(g.world.TotalVolume()),
		formatDepth(g.world.MaxDepth()),
		formatStorms(g.storm.ActiveCells(), g.speed, g.paused),
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.world.DepthField(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.world.GridSize()*g.scale, g.scale)
}

// Layout returns the logical screen size: the grid plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := g.world.GridSize() * g.scale
	return side + g.hudWidth, side
}
