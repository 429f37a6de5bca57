package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"floodsim/internal/server"
	"floodsim/internal/sims/flood"
	"floodsim/internal/terrain"

	"github.com/gosuri/uiprogress"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dataDir := flag.String("data", "", "directory with heightmap.bin and heightmap_meta.json (empty: demo terrain)")
	gridSize := flag.Int("grid", 256, "demo terrain grid size")
	cellSize := flag.Float64("cell", 25, "demo terrain cell size in meters")
	seed := flag.Int64("seed", 1337, "seed for storms and demo terrain")
	fps := flag.Int("fps", 10, "broadcast frames per second")
	speed := flag.Int("speed", 4, "solver substeps per frame")
	warmup := flag.Bool("warmup", true, "run the fill/drain warmup before serving")
	flag.Parse()

	var field *terrain.Field
	if *dataDir != "" {
		loaded, err := terrain.Load(*dataDir)
		if err != nil {
			log.Fatalf("loading terrain from %s: %v", *dataDir, err)
		}
		field = loaded
	} else {
		field = terrain.Demo(*gridSize, float32(*cellSize), *seed)
	}

	cfg := flood.DefaultConfig()
	cfg.Seed = *seed
	world, err := flood.NewWithTerrain(cfg, field)
	if err != nil {
		log.Fatal(err)
	}

	if *warmup {
		p := world.Config().Params
		total := p.WarmupFillSteps + p.WarmupDrainSteps
		uiprogress.Start()
		bar := uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string { return "warmup" })
		seconds := world.Warmup(func(done, total int) { bar.Set(done) })
		uiprogress.Stop()
		fmt.Printf("warmup complete: %.0fs simulated, %.0f m3 retained\n", seconds, world.TotalVolume())
	}

	storm := flood.NewStorm(world, *seed)
	srv := server.New(world, storm, server.Options{FrameRate: *fps, Speed: *speed})

	go func() {
		if err := srv.Run(context.Background()); err != nil && err != context.Canceled {
			log.Fatal(err)
		}
	}()

	log.Printf("flood server listening on %s (grid %dx%d, cell %.1fm)",
		*addr, world.GridSize(), world.GridSize(), world.CellSize())
	log.Fatal(http.ListenAndServe(*addr, srv.Handler()))
}
