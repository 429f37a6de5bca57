package srtm

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodsim/internal/terrain"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(data)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// tileServer serves synthetic .hgt.gz payloads and counts hits per path.
func tileServer(t *testing.T, tiles map[string][]byte) (*httptest.Server, map[string]int) {
	t.Helper()
	hits := make(map[string]int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits[r.URL.Path]++
		data, ok := tiles[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(gzipBytes(t, data))
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

func TestFetchTileDownloadsAndCaches(t *testing.T) {
	tile := Tile{Lat: -40, Lon: 177}
	raw := makeHGT(3, func(row, col int) int16 { return int16(row + col) })
	srv, hits := tileServer(t, map[string][]byte{
		"/S40/S40E177.hgt.gz": raw,
	})

	cacheDir := t.TempDir()
	client, err := NewClient(srv.URL, cacheDir)
	require.NoError(t, err)

	parsed, err := client.FetchTile(context.Background(), tile)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.Size)
	assert.Equal(t, float32(4), parsed.Samples[8])

	// The decompressed tile landed in the cache.
	cached, err := os.ReadFile(filepath.Join(cacheDir, "S40E177.hgt"))
	require.NoError(t, err)
	assert.Equal(t, raw, cached)

	// A second fetch is served from the cache.
	_, err = client.FetchTile(context.Background(), tile)
	require.NoError(t, err)
	assert.Equal(t, 1, hits["/S40/S40E177.hgt.gz"])
}

func TestFetchTileReportsMissingTile(t *testing.T) {
	srv, _ := tileServer(t, nil)
	client, err := NewClient(srv.URL, t.TempDir())
	require.NoError(t, err)

	_, err = client.FetchTile(context.Background(), Tile{Lat: 0, Lon: 0})
	assert.Error(t, err)
}

func TestBuildDatasetExportRoundtrip(t *testing.T) {
	// One flat-ish tile with a linear east-west gradient; the exported
	// heightmap must load back through the terrain package unchanged.
	raw := makeHGT(5, func(row, col int) int16 { return int16(col * 10) })
	srv, _ := tileServer(t, map[string][]byte{
		"/S40/S40E177.hgt.gz": raw,
	})
	client, err := NewClient(srv.URL, t.TempDir())
	require.NoError(t, err)

	bounds := terrain.Bounds{South: -39.9, West: 177.1, North: -39.1, East: 177.9}
	ds, err := BuildDataset(context.Background(), client, DatasetOptions{
		Bounds:       bounds,
		GridSize:     8,
		LocationName: "test strip",
		Scale:        "township",
	})
	require.NoError(t, err)
	require.Len(t, ds.Heights, 64)

	// Relief is 40m raw, under the 50m threshold, so exaggeration is 3x and
	// the scene floor is zero.
	assert.Equal(t, 3.0, ds.Meta.VerticalExaggeration)
	lo := ds.Heights[0]
	for _, h := range ds.Heights {
		if h < lo {
			lo = h
		}
	}
	assert.Equal(t, float32(0), lo)

	outDir := t.TempDir()
	require.NoError(t, ds.Export(outDir))

	field, err := terrain.Load(outDir)
	require.NoError(t, err)
	assert.Equal(t, 8, field.GridSize())
	assert.Equal(t, ds.Heights, field.Heights())
	assert.Equal(t, ds.Meta, field.Meta())
}

func TestAutoExaggeration(t *testing.T) {
	tests := []struct {
		min, max float64
		want     float64
	}{
		{0, 5, 5.0},
		{0, 30, 3.0},
		{100, 250, 2.0},
		{0, 400, 1.5},
		{0, 2000, 1.0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, AutoExaggeration(tc.min, tc.max))
	}
}

func TestBoundsAround(t *testing.T) {
	b := BoundsAround(-39.05, 177.41, 3)
	assert.InDelta(t, -39.05, (b.South+b.North)/2, 1e-9)
	assert.InDelta(t, 177.41, (b.West+b.East)/2, 1e-9)
	assert.Greater(t, b.North, b.South)
	assert.Greater(t, b.East, b.West)
	// 3km is about 0.027 degrees of latitude.
	assert.InDelta(t, 0.054, b.North-b.South, 1e-3)
}
