//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"floodsim/internal/app"
	"floodsim/internal/render"
	"floodsim/internal/sims/flood"
	"floodsim/internal/terrain"

	"github.com/gosuri/uiprogress"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	var field *terrain.Field
	if cfg.DataDir != "" {
		loaded, err := terrain.Load(cfg.DataDir)
		if err != nil {
			log.Fatalf("loading terrain from %s: %v", cfg.DataDir, err)
		}
		field = loaded
	} else {
		field = terrain.Demo(cfg.GridSize, float32(cfg.CellSize), cfg.Seed)
	}

	simCfg := flood.DefaultConfig()
	simCfg.Seed = cfg.Seed
	world, err := flood.NewWithTerrain(simCfg, field)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Warmup {
		runWarmup(world)
	}
	storm := flood.NewStorm(world, cfg.Seed)

	meta := field.Meta()
	colorMap := render.NewColorMap(field.Heights(), meta.VerticalExaggeration, meta.ElevMin, 2)

	game := app.New(world, storm, colorMap, cfg.Scale, cfg.HUD, cfg.Speed, cfg.Seed)
	side := world.GridSize() * cfg.Scale

	title := "floodsim"
	if meta.LocationName != "" {
		title += " - " + meta.LocationName
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(side+cfg.HUD, side)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func runWarmup(world *flood.World) {
	p := world.Config().Params
	total := p.WarmupFillSteps + p.WarmupDrainSteps

	uiprogress.Start()
	bar := uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string { return "warmup" })
	seconds := world.Warmup(func(done, total int) { bar.Set(done) })
	uiprogress.Stop()

	fmt.Printf("warmup complete: %.0fs simulated, %.0f m3 retained\n", seconds, world.TotalVolume())
}
