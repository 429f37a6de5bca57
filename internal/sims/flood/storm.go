package flood

import (
	"math"

	"floodsim/pkg/core"
)

// StormCell is one circular rain region drifting over the grid.
type StormCell struct {
	X, Y   float64 // fractional cell coordinates
	VX, VY float64 // drift, cells per simulated second
	Radius float64 // cells
	Rain   float32 // m/s inside the region
	TTL    float64 // remaining simulated seconds
}

// Storm spawns, drifts and expires rain regions and performs the session's
// rain injection once per solver substep. It owns no grid state; all water
// enters through the World rain operations.
type Storm struct {
	params *Params
	size   int
	cells  []StormCell
	rng    *core.RNG
}

// NewStorm constructs a storm controller for the session. The seed makes the
// weather sequence reproducible independent of the solver.
func NewStorm(w *World, seed int64) *Storm {
	return &Storm{
		params: &w.cfg.Params,
		size:   w.size,
		rng:    core.NewRNG(seed),
	}
}

// Cells returns the active storm regions (read-only, for overlays).
func (s *Storm) Cells() []StormCell { return s.cells }

// ActiveCells reports how many rain regions are currently alive.
func (s *Storm) ActiveCells() int { return len(s.cells) }

// Update advances the weather by one substep and injects its rain into w.
// Called once per solver substep, before Step.
func (s *Storm) Update(w *World, dt float32) {
	p := s.params

	if p.BaseRainRate > 0 {
		w.AddRainUniform(p.BaseRainRate * dt)
	}

	if len(s.cells) < p.StormMaxCells && s.rng.Float64() < p.StormSpawnChance {
		s.cells = append(s.cells, s.spawn())
	}

	alive := s.cells[:0]
	for _, c := range s.cells {
		w.AddRainRegion(float32(c.X), float32(c.Y), float32(c.Radius), c.Rain*dt)

		c.X += c.VX * float64(dt)
		c.Y += c.VY * float64(dt)
		c.TTL -= float64(dt)
		if c.TTL <= 0 {
			continue
		}
		// Regions that drift fully off the grid are dropped early; their
		// clamped rain footprint is already empty.
		if c.X < -c.Radius || c.X > float64(s.size)+c.Radius ||
			c.Y < -c.Radius || c.Y > float64(s.size)+c.Radius {
			continue
		}
		alive = append(alive, c)
	}
	s.cells = alive
}

func (s *Storm) spawn() StormCell {
	p := s.params
	angle := s.rng.Float64Range(0, 2*math.Pi)
	speed := p.StormDriftSpeed * s.rng.Float64Range(0.5, 1.5)
	return StormCell{
		X:      s.rng.Float64Range(0, float64(s.size)),
		Y:      s.rng.Float64Range(0, float64(s.size)),
		VX:     speed * math.Cos(angle),
		VY:     speed * math.Sin(angle),
		Radius: s.rng.Float64Range(p.StormRadiusMin, p.StormRadiusMax),
		Rain:   float32(s.rng.Float64Range(float64(p.StormRainMin), float64(p.StormRainMax))),
		TTL:    s.rng.Float64Range(p.StormTTLMin, p.StormTTLMax),
	}
}
