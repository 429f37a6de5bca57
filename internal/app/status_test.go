package app

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "t 0m00s"},
		{75, "t 1m15s"},
		{3725, "t 1h02m05s"},
	}
	for _, tc := range tests {
		if got := formatDuration(tc.seconds); got != tc.want {
			t.Fatalf("formatDuration(%g) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	tests := []struct {
		volume float64
		want   string
	}{
		{500, "vol 500 m3"},
		{2.5e6, "vol 2.50 Mm3"},
		{3.2e9, "vol 3.20 km3"},
	}
	for _, tc := range tests {
		if got := formatVolume(tc.volume); got != tc.want {
			t.Fatalf("formatVolume(%g) = %q, want %q", tc.volume, got, tc.want)
		}
	}
}

func TestFormatStorms(t *testing.T) {
	if got := formatStorms(2, 4, false); got != "storms 2  x4" {
		t.Fatalf("got %q", got)
	}
	if got := formatStorms(0, 1, true); got != "storms 0  x1  paused" {
		t.Fatalf("got %q", got)
	}
}
