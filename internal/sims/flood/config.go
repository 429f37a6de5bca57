package flood

import "strconv"

// Params holds the solver, storm and warmup tunables.
type Params struct {
	// Solver.
	Gravity          float32 // m/s^2
	FlowMultiplier   float32 // dimensionless gain on the head-difference term
	EdgeDrainRate    float32 // fraction of boundary-cell depth drained per second
	InfiltrationRate float32 // m/s removed from every wet cell
	VelocityEpsilon  float32 // depths below this report zero velocity

	// Storm controller.
	BaseRainRate     float32 // m/s of uniform drizzle while a storm is active
	StormMaxCells    int
	StormSpawnChance float64
	StormRadiusMin   float64 // cells
	StormRadiusMax   float64
	StormTTLMin      float64 // seconds of simulated time
	StormTTLMax      float64
	StormRainMin     float32 // m/s inside a storm cell
	StormRainMax     float32
	StormDriftSpeed  float64 // cells per simulated second

	// Warmup script.
	WarmupFillSteps  int
	WarmupDrainSteps int
	WarmupRain       float32 // meters added uniformly each fill step
	WarmupDrainRate  float32 // edge drain override during the fill phase
}

// Config controls a flood simulation session.
type Config struct {
	Dt float32 // seconds per solver substep

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration. The solver constants are
// tuned for the documented stability envelope: dt near 0.02s and cell sizes
// of roughly 10m and up.
func DefaultConfig() Config {
	return Config{
		Dt:   0.02,
		Seed: 1337,
		Params: Params{
			Gravity:          9.81,
			FlowMultiplier:   1.0,
			EdgeDrainRate:    0.15,
			InfiltrationRate: 0.00002,
			VelocityEpsilon:  0.0005,

			BaseRainRate:     0.00004,
			StormMaxCells:    3,
			StormSpawnChance: 0.002,
			StormRadiusMin:   8,
			StormRadiusMax:   28,
			StormTTLMin:      20,
			StormTTLMax:      90,
			StormRainMin:     0.0004,
			StormRainMax:     0.002,
			StormDriftSpeed:  0.6,

			WarmupFillSteps:  900,
			WarmupDrainSteps: 300,
			WarmupRain:       0.004,
			WarmupDrainRate:  0.01,
		},
	}
}

var configKeys = []string{
	"base_rain_rate",
	"dt",
	"edge_drain_rate",
	"flow_multiplier",
	"infiltration_rate",
	"seed",
	"storm_max_cells",
	"storm_spawn_chance",
	"warmup_drain_rate",
	"warmup_drain_steps",
	"warmup_fill_steps",
	"warmup_rain",
}

// ConfigKeys returns the string keys FromMap understands, sorted.
func ConfigKeys() []string {
	out := make([]string, len(configKeys))
	copy(out, configKeys)
	return out
}

// IsConfigKey reports whether FromMap understands key.
func IsConfigKey(key string) bool {
	for _, k := range configKeys {
		if k == key {
			return true
		}
	}
	return false
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.Dt = float32(parsed)
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["flow_multiplier"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.Params.FlowMultiplier = float32(parsed)
		}
	}
	if v, ok := cfg["edge_drain_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			c.Params.EdgeDrainRate = float32(parsed)
		}
	}
	if v, ok := cfg["infiltration_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			c.Params.InfiltrationRate = float32(parsed)
		}
	}
	if v, ok := cfg["base_rain_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			c.Params.BaseRainRate = float32(parsed)
		}
	}
	if v, ok := cfg["storm_max_cells"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.StormMaxCells = parsed
		}
	}
	if v, ok := cfg["storm_spawn_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.StormSpawnChance = parsed
		}
	}
	if v, ok := cfg["warmup_fill_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.WarmupFillSteps = parsed
		}
	}
	if v, ok := cfg["warmup_drain_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.WarmupDrainSteps = parsed
		}
	}
	if v, ok := cfg["warmup_rain"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			c.Params.WarmupRain = float32(parsed)
		}
	}
	if v, ok := cfg["warmup_drain_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			c.Params.WarmupDrainRate = float32(parsed)
		}
	}
	return c
}
