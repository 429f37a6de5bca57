package terrain

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldValidation(t *testing.T) {
	_, err := NewField(0, 10, nil, Meta{})
	assert.Error(t, err)

	_, err = NewField(2, 0, make([]float32, 4), Meta{})
	assert.Error(t, err)

	_, err = NewField(2, 10, make([]float32, 3), Meta{})
	assert.Error(t, err, "buffer length must match the grid")

	bad := []float32{0, 1, math32.Inf(1), 3}
	_, err = NewField(2, 10, bad, Meta{})
	assert.Error(t, err, "non-finite heights must be rejected")

	field, err := NewField(2, 10, []float32{0, 1, 2, 3}, Meta{})
	require.NoError(t, err)
	assert.Equal(t, 2, field.GridSize())
	assert.Equal(t, float32(10), field.CellSize())
	assert.Equal(t, float32(2), field.At(0, 1))
}

func TestFieldMinMaxRelief(t *testing.T) {
	field, err := NewField(2, 10, []float32{5, 1, 9, 3}, Meta{})
	require.NoError(t, err)

	lo, hi := field.MinMax()
	assert.Equal(t, float32(1), lo)
	assert.Equal(t, float32(9), hi)
	assert.Equal(t, float32(8), field.Relief())
}

func TestReadHeightmap(t *testing.T) {
	want := []float32{0, 1.5, -2.25, 1000}
	raw := make([]byte, 4*len(want))
	for i, v := range want {
		binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(v))
	}

	got, err := ReadHeightmap(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ReadHeightmap(bytes.NewReader(raw[:5]))
	assert.Error(t, err, "truncated buffers must be rejected")
}

func TestLoadPair(t *testing.T) {
	dir := t.TempDir()

	heights := []float32{0, 10, 20, 30}
	raw := make([]byte, 4*len(heights))
	for i, v := range heights {
		binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(v))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, HeightmapFile), raw, 0o644))

	meta := `{
  "grid_size": 2,
  "cell_size_m": 23.4,
  "bounds": {"south": -39.07, "west": 177.38, "north": -39.03, "east": 177.44},
  "elev_min": 1.2,
  "elev_max": 31.2,
  "vertical_exaggeration": 3.0,
  "center_lat": -39.05,
  "center_lon": 177.41,
  "location_name": "Wairoa, New Zealand",
  "scale": "township"
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetaFile), []byte(meta), 0o644))

	field, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, field.GridSize())
	assert.Equal(t, float32(23.4), field.CellSize())
	assert.Equal(t, heights, field.Heights())
	assert.Equal(t, "Wairoa, New Zealand", field.Meta().LocationName)
	assert.Equal(t, 3.0, field.Meta().VerticalExaggeration)
	assert.Equal(t, -39.03, field.Meta().Bounds.North)
}

func TestLoadRejectsMismatchedPair(t *testing.T) {
	dir := t.TempDir()
	// Meta declares a 4x4 grid but the binary only holds 4 samples.
	require.NoError(t, os.WriteFile(filepath.Join(dir, HeightmapFile), make([]byte, 16), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetaFile),
		[]byte(`{"grid_size": 4, "cell_size_m": 10}`), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestDemoTerrainIsDeterministic(t *testing.T) {
	a := Demo(32, 10, 7)
	b := Demo(32, 10, 7)
	assert.Equal(t, a.Heights(), b.Heights())

	c := Demo(32, 10, 8)
	assert.NotEqual(t, a.Heights(), c.Heights(), "different seeds should differ")

	lo, _ := a.MinMax()
	assert.Equal(t, float32(0), lo, "demo terrain is shifted to a zero floor")
	assert.Greater(t, a.Relief(), float32(0))
}
