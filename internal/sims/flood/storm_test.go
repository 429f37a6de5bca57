package flood

import (
	"slices"
	"testing"
)

func stormConfig() Config {
	cfg := testConfig()
	cfg.Params.BaseRainRate = 0.0001
	cfg.Params.StormSpawnChance = 0.5
	cfg.Params.StormMaxCells = 2
	cfg.Params.StormRadiusMin = 1
	cfg.Params.StormRadiusMax = 3
	cfg.Params.StormTTLMin = 0.5
	cfg.Params.StormTTLMax = 2
	cfg.Params.StormRainMin = 0.001
	cfg.Params.StormRainMax = 0.01
	return cfg
}

func TestStormIsDeterministicForSeed(t *testing.T) {
	cfg := stormConfig()
	a := flatWorld(t, cfg, 12, 10)
	b := flatWorld(t, cfg, 12, 10)
	sa := NewStorm(a, 99)
	sb := NewStorm(b, 99)

	for i := 0; i < 500; i++ {
		sa.Update(a, cfg.Dt)
		a.Step(cfg.Dt)
		sb.Update(b, cfg.Dt)
		b.Step(cfg.Dt)
	}

	if !slices.Equal(a.DepthField(), b.DepthField()) {
		t.Fatal("same storm seed should rain identically")
	}
	if sa.ActiveCells() != sb.ActiveCells() {
		t.Fatalf("active cells diverged: %d vs %d", sa.ActiveCells(), sb.ActiveCells())
	}
}

func TestStormRespectsMaxCells(t *testing.T) {
	cfg := stormConfig()
	cfg.Params.StormSpawnChance = 1
	cfg.Params.StormTTLMin = 100
	cfg.Params.StormTTLMax = 200
	w := flatWorld(t, cfg, 12, 10)
	s := NewStorm(w, 4)

	for i := 0; i < 200; i++ {
		s.Update(w, cfg.Dt)
		if n := s.ActiveCells(); n > cfg.Params.StormMaxCells {
			t.Fatalf("step %d: %d active cells exceeds cap %d", i, n, cfg.Params.StormMaxCells)
		}
	}
	if s.ActiveCells() != cfg.Params.StormMaxCells {
		t.Fatalf("with certain spawning and long TTLs expected %d cells, got %d",
			cfg.Params.StormMaxCells, s.ActiveCells())
	}
}

func TestStormExpiresCells(t *testing.T) {
	cfg := stormConfig()
	cfg.Params.StormSpawnChance = 1
	cfg.Params.StormMaxCells = 1
	cfg.Params.StormTTLMin = 0.1
	cfg.Params.StormTTLMax = 0.2
	cfg.Params.StormDriftSpeed = 0
	w := flatWorld(t, cfg, 12, 10)
	s := NewStorm(w, 11)

	s.Update(w, cfg.Dt)
	if s.ActiveCells() != 1 {
		t.Fatalf("expected one cell after first update, got %d", s.ActiveCells())
	}

	// TTL caps at 0.2s of simulated time, so a dozen 0.02s updates outlive it.
	for i := 0; i < 12; i++ {
		cells := s.Cells()
		if len(cells) == 0 {
			break
		}
		ttl := cells[0].TTL
		s.Update(w, cfg.Dt)
		if len(s.Cells()) > 0 && s.Cells()[0].TTL >= ttl {
			t.Fatal("cell TTL did not decrease")
		}
	}
	// A replacement can spawn on the expiry update; turn spawning off to
	// observe the drained state.
	w.cfg.Params.StormSpawnChance = 0
	for i := 0; i < 20 && s.ActiveCells() > 0; i++ {
		s.Update(w, cfg.Dt)
	}
	if s.ActiveCells() != 0 {
		t.Fatalf("storm cells failed to expire, %d still active", s.ActiveCells())
	}
}

func TestStormBaseRainIsUniform(t *testing.T) {
	cfg := stormConfig()
	cfg.Params.StormSpawnChance = 0
	w := flatWorld(t, cfg, 8, 10)
	s := NewStorm(w, 1)

	s.Update(w, cfg.Dt)
	want := cfg.Params.BaseRainRate * cfg.Dt
	for idx, d := range w.DepthField() {
		if d != want {
			t.Fatalf("cell %d depth %g, want uniform drizzle %g", idx, d, want)
		}
	}
}
