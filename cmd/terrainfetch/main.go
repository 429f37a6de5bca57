package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"floodsim/internal/srtm"
	"floodsim/internal/terrain"
)

func main() {
	lat := flag.Float64("lat", 0, "center latitude")
	lon := flag.Float64("lon", 0, "center longitude")
	boundsStr := flag.String("bounds", "", `bounding box "south,west,north,east" (overrides lat/lon)`)
	scale := flag.String("scale", "township", "scale preset: human, neighbourhood, township, catchment, regional")
	gridSize := flag.Int("grid", 0, "override grid size")
	vertExag := flag.Float64("vert-exag", 0, "override vertical exaggeration (0: automatic)")
	name := flag.String("name", "", "location name recorded in the metadata")
	outDir := flag.String("out", "data", "output directory")
	cacheDir := flag.String("cache", "", "tile cache directory (empty: ~/.cache/floodsim/srtm)")
	baseURL := flag.String("mirror", "", "tile mirror base URL (empty: AWS skadi)")
	flag.Parse()

	preset, ok := srtm.ScalePresets[*scale]
	if !ok {
		log.Fatalf("unknown scale %q", *scale)
	}
	size := preset.GridSize
	if *gridSize > 0 {
		size = *gridSize
	}

	var bounds terrain.Bounds
	switch {
	case *boundsStr != "":
		parsed, err := parseBounds(*boundsStr)
		if err != nil {
			log.Fatal(err)
		}
		bounds = parsed
	case *lat != 0 || *lon != 0:
		bounds = srtm.BoundsAround(*lat, *lon, preset.RadiusKm)
	default:
		log.Fatal("provide -lat/-lon or -bounds")
	}

	locName := *name
	if locName == "" {
		locName = fmt.Sprintf("%.4f, %.4f", (bounds.South+bounds.North)/2, (bounds.West+bounds.East)/2)
	}

	fmt.Printf("location: %s\n", locName)
	fmt.Printf("scale: %s (%.1fkm radius), grid %dx%d\n", *scale, preset.RadiusKm, size, size)
	fmt.Printf("bounds: S=%.4f W=%.4f N=%.4f E=%.4f\n", bounds.South, bounds.West, bounds.North, bounds.East)

	client, err := srtm.NewClient(*baseURL, *cacheDir)
	if err != nil {
		log.Fatal(err)
	}

	tiles := srtm.TilesFor(bounds)
	names := make([]string, len(tiles))
	for i, t := range tiles {
		names[i] = t.Name()
	}
	fmt.Printf("tiles: %s\n", strings.Join(names, ", "))

	ds, err := srtm.BuildDataset(context.Background(), client, srtm.DatasetOptions{
		Bounds:       bounds,
		GridSize:     size,
		LocationName: locName,
		Scale:        *scale,
		VertExag:     *vertExag,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("elevation range: %.1fm to %.1fm, cell size %.1fm, exaggeration %.1fx\n",
		ds.Meta.ElevMin, ds.Meta.ElevMax, ds.Meta.CellSizeM, ds.Meta.VerticalExaggeration)

	if err := ds.Export(*outDir); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("exported %s and %s to %s\n", terrain.HeightmapFile, terrain.MetaFile, *outDir)
}

func parseBounds(s string) (terrain.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return terrain.Bounds{}, fmt.Errorf(`bounds must be "south,west,north,east", got %q`, s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return terrain.Bounds{}, fmt.Errorf("parsing bounds component %q: %w", p, err)
		}
		vals[i] = v
	}
	b := terrain.Bounds{South: vals[0], West: vals[1], North: vals[2], East: vals[3]}
	if b.South >= b.North || b.West >= b.East {
		return terrain.Bounds{}, fmt.Errorf("degenerate bounds %+v", b)
	}
	return b, nil
}
