package flood

// Warmup runs the scripted two-phase bootstrap that seeds a believable
// already-raining starting state before interactive stepping begins.
//
// Phase one lowers the edge drain rate and pours heavy uniform rain for a
// fixed step count so water pools in topographic depressions. Phase two
// restores the configured drain rate and runs rain-free steps so the excess
// escapes through the boundaries and infiltration, leaving persistent flow in
// channels and low points.
//
// This is a scripted heuristic with no termination condition beyond the step
// counts; adding an early exit would change the resulting water distribution.
// The returned value is the total simulated seconds, reported for display
// only. It carries no solver state.
func (w *World) Warmup(progress func(done, total int)) float64 {
	p := &w.cfg.Params
	fill := p.WarmupFillSteps
	drain := p.WarmupDrainSteps
	total := fill + drain
	dt := w.cfg.Dt

	saved := p.EdgeDrainRate
	p.EdgeDrainRate = p.WarmupDrainRate
	for i := 0; i < fill; i++ {
		w.AddRainUniform(p.WarmupRain)
		w.Step(dt)
		if progress != nil {
			progress(i+1, total)
		}
	}
	p.EdgeDrainRate = saved

	for i := 0; i < drain; i++ {
		w.Step(dt)
		if progress != nil {
			progress(fill+i+1, total)
		}
	}

	return float64(total) * float64(dt)
}
