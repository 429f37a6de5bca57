package render

import "testing"

func TestHypsometricColorBands(t *testing.T) {
	// Below sea level reads as blue-grey water, floodplain as green,
	// mountains as near-white.
	sea := HypsometricColor(-2)
	if sea.B <= sea.G {
		t.Fatalf("sea color %v should lean blue", sea)
	}
	plain := HypsometricColor(15)
	if plain.G <= plain.R || plain.G <= plain.B {
		t.Fatalf("floodplain color %v should lean green", plain)
	}
	peak := HypsometricColor(5000)
	if peak.R < 200 || peak.G < 200 || peak.B < 200 {
		t.Fatalf("mountain color %v should be near white", peak)
	}
}

func TestColorMapCompose(t *testing.T) {
	heights := []float32{0, 10, 20, 30}
	cm := NewColorMap(heights, 1, 0, 2)

	buf := make([]byte, 4*len(heights))
	depth := []float32{0, 0, 0, 3}
	cm.Compose(buf, depth)

	// Dry cells take the baked terrain tint.
	want := HypsometricColor(10)
	if buf[4] != want.R || buf[5] != want.G || buf[6] != want.B {
		t.Fatalf("dry cell got (%d,%d,%d), want %v", buf[4], buf[5], buf[6], want)
	}

	// Deep water saturates to the deep blue tint.
	if buf[12] != waterDeep.R || buf[13] != waterDeep.G || buf[14] != waterDeep.B {
		t.Fatalf("deep cell got (%d,%d,%d), want %v", buf[12], buf[13], buf[14], waterDeep)
	}
	if buf[15] != 255 {
		t.Fatalf("alpha %d, want opaque", buf[15])
	}
}

func TestColorMapInvertsSceneTransform(t *testing.T) {
	// Scene heights are (raw - floor) * exaggeration, so scene 30 at 3x
	// over a 100m floor inverts to raw 30/3 + 100 = 110m.
	cm := NewColorMap([]float32{30}, 3, 100, 2)
	want := HypsometricColor(110)
	if cm.base[0] != want {
		t.Fatalf("baked color %v, want %v", cm.base[0], want)
	}
}
