// Package srtm fetches SRTM elevation tiles and turns them into the
// heightmap.bin/heightmap_meta.json pair the terrain package loads. Tiles
// come from the AWS elevation-tiles-prod skadi mirror as gzipped .hgt files
// and are cached locally between runs.
package srtm

import (
	"math"

	"floodsim/internal/terrain"
)

// ScalePreset maps a human-scale label to a fetch radius and grid resolution.
type ScalePreset struct {
	RadiusKm float64
	GridSize int
}

// ScalePresets are the supported --scale values, from a single block to a
// whole region.
var ScalePresets = map[string]ScalePreset{
	"human":         {RadiusKm: 0.25, GridSize: 256},
	"neighbourhood": {RadiusKm: 1.0, GridSize: 256},
	"township":      {RadiusKm: 3.0, GridSize: 256},
	"catchment":     {RadiusKm: 25.0, GridSize: 256},
	"regional":      {RadiusKm: 75.0, GridSize: 128},
}

// BoundsAround returns the bounding box of a radius in kilometers around a
// center point, using the flat-earth degree approximation that is fine at
// these scales.
func BoundsAround(lat, lon, radiusKm float64) terrain.Bounds {
	dlat := radiusKm / 111.0
	dlon := radiusKm / (111.0 * math.Cos(lat*math.Pi/180))
	return terrain.Bounds{
		South: lat - dlat,
		West:  lon - dlon,
		North: lat + dlat,
		East:  lon + dlon,
	}
}

// AutoExaggeration picks a vertical exaggeration from the relief range so
// flat coastal terrain still reads as three-dimensional.
func AutoExaggeration(elevMin, elevMax float64) float64 {
	switch relief := elevMax - elevMin; {
	case relief < 10:
		return 5.0
	case relief < 50:
		return 3.0
	case relief < 200:
		return 2.0
	case relief < 500:
		return 1.5
	default:
		return 1.0
	}
}

// CellSizeMeters derives the simulation cell edge length from the bounding
// box extent and grid resolution. The longer axis wins so the grid always
// covers the requested area.
func CellSizeMeters(b terrain.Bounds, gridSize int) float64 {
	centerLat := (b.South + b.North) / 2
	latExtent := (b.North - b.South) * 111000
	lonExtent := (b.East - b.West) * 111000 * math.Cos(centerLat*math.Pi/180)
	return math.Max(latExtent, lonExtent) / float64(gridSize)
}
