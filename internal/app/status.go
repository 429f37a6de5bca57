package app

import "fmt"

func formatDuration(seconds float64) string {
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("t %dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("t %dm%02ds", m, s)
}

func formatVolume(cubicMeters float64) string {
	switch {
	case cubicMeters >= 1e9:
		return fmt.Sprintf("vol %.2f km3", cubicMeters/1e9)
	case cubicMeters >= 1e6:
		return fmt.Sprintf("vol %.2f Mm3", cubicMeters/1e6)
	default:
		return fmt.Sprintf("vol %.0f m3", cubicMeters)
	}
}

func formatDepth(meters float32) string {
	return fmt.Sprintf("max depth %.2f m", meters)
}

func formatStorms(active, speed int, paused bool) string {
	state := fmt.Sprintf("storms %d  x%d", active, speed)
	if paused {
		state += "  paused"
	}
	return state
}
