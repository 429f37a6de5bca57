package app

import "flag"

// Config represents the command-line parameters for the viewer.
type Config struct {
	DataDir string
	Scale   int
	TPS     int
	Speed   int
	Seed    int64
	HUD     int
	Warmup  bool
	// Demo terrain parameters, used when DataDir is empty.
	GridSize int
	CellSize float64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Scale:    3,
		TPS:      60,
		Speed:    4,
		Seed:     1337,
		HUD:      240,
		Warmup:   true,
		GridSize: 256,
		CellSize: 25,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.DataDir, "data", c.DataDir, "directory with heightmap.bin and heightmap_meta.json (empty: demo terrain)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Speed, "speed", c.Speed, "solver substeps per frame")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for storms and demo terrain")
	fs.IntVar(&c.HUD, "hud", c.HUD, "HUD panel width in pixels (0: disabled)")
	fs.BoolVar(&c.Warmup, "warmup", c.Warmup, "run the fill/drain warmup before opening the window")
	fs.IntVar(&c.GridSize, "grid", c.GridSize, "demo terrain grid size")
	fs.Float64Var(&c.CellSize, "cell", c.CellSize, "demo terrain cell size in meters")
}
