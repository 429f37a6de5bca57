package flood

import (
	"strconv"

	"floodsim/internal/core"
)

// Parameters reports the current tunables for HUD display.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Solver",
			Params: []core.Parameter{
				floatParam("flow_multiplier", "Flow multiplier", float64(p.FlowMultiplier)),
				floatParam("edge_drain_rate", "Edge drain rate", float64(p.EdgeDrainRate)),
				floatParam("infiltration_rate", "Infiltration rate", float64(p.InfiltrationRate)),
			},
		},
		{
			Name: "Storm",
			Params: []core.Parameter{
				floatParam("base_rain_rate", "Base rain rate", float64(p.BaseRainRate)),
				intParam("storm_max_cells", "Storm max cells", p.StormMaxCells),
				floatParam("storm_spawn_chance", "Storm spawn chance", p.StormSpawnChance),
			},
		},
		{
			Name: "Warmup",
			Params: []core.Parameter{
				intParam("warmup_fill_steps", "Warmup fill steps", p.WarmupFillSteps),
				intParam("warmup_drain_steps", "Warmup drain steps", p.WarmupDrainSteps),
				floatParam("warmup_rain", "Warmup rain", float64(p.WarmupRain)),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the knobs adjustable from the HUD. Changes take
// effect on the next solver step.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "flow_multiplier", Label: "Flow multiplier", Type: core.ParamTypeFloat,
			Step: 0.1, Min: 0.1, Max: 4, HasMin: true, HasMax: true},
		{Key: "edge_drain_rate", Label: "Edge drain", Type: core.ParamTypeFloat,
			Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "infiltration_rate", Label: "Infiltration", Type: core.ParamTypeFloat,
			Step: 0.00001, Min: 0, Max: 0.001, HasMin: true, HasMax: true},
		{Key: "base_rain_rate", Label: "Base rain", Type: core.ParamTypeFloat,
			Step: 0.00001, Min: 0, Max: 0.001, HasMin: true, HasMax: true},
		{Key: "storm_max_cells", Label: "Storm cells", Type: core.ParamTypeInt,
			Step: 1, Min: 0, Max: 12, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a float tunable by key, clamping to its bounds.
func (w *World) SetFloatParameter(key string, value float64) bool {
	p := &w.cfg.Params
	switch key {
	case "flow_multiplier":
		p.FlowMultiplier = float32(clampFloat(value, 0.1, 4))
	case "edge_drain_rate":
		p.EdgeDrainRate = float32(clampFloat(value, 0, 1))
	case "infiltration_rate":
		p.InfiltrationRate = float32(clampFloat(value, 0, 0.001))
	case "base_rain_rate":
		p.BaseRainRate = float32(clampFloat(value, 0, 0.001))
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer tunable by key.
func (w *World) SetIntParameter(key string, value int) bool {
	p := &w.cfg.Params
	switch key {
	case "storm_max_cells":
		if value < 0 {
			value = 0
		}
		p.StormMaxCells = value
	default:
		return false
	}
	return true
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
