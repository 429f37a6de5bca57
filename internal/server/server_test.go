package server

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodsim/internal/sims/flood"
	"floodsim/internal/terrain"
)

func testServer(t *testing.T) (*Server, *flood.World) {
	t.Helper()
	cfg := flood.DefaultConfig()
	cfg.Params.StormSpawnChance = 0
	cfg.Params.BaseRainRate = 0
	world, err := flood.NewWithTerrain(cfg, terrain.Demo(16, 10, 5))
	require.NoError(t, err)
	storm := flood.NewStorm(world, cfg.Seed)
	return New(world, storm, Options{FrameRate: 50, Speed: 2}), world
}

func dialWS(t *testing.T, httpURL string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(httpURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServerBroadcastsFrames(t *testing.T) {
	srv, world := testServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	conn := dialWS(t, ts.URL)

	var frame Frame
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&frame))

	assert.Equal(t, "frame", frame.Type)
	assert.Equal(t, world.GridSize(), frame.GridSize)
	assert.Len(t, frame.Depth, world.GridSize()*world.GridSize())
	assert.GreaterOrEqual(t, frame.Step, int64(1))

	// Frames keep arriving and the step counter advances.
	var next Frame
	require.NoError(t, conn.ReadJSON(&next))
	assert.Greater(t, next.Step, frame.Step)
}

func TestServerAppliesControlMessages(t *testing.T) {
	srv, world := testServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	conn := dialWS(t, ts.URL)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))

	// Rain on a region, then watch the broadcast volume rise.
	require.NoError(t, conn.WriteJSON(map[string]any{
		"rain": map[string]any{"col": 8, "row": 8, "radius": 3, "amount": 0.5},
	}))
	deadline := time.Now().Add(2 * time.Second)
	var sawRain bool
	for time.Now().Before(deadline) {
		var frame Frame
		require.NoError(t, conn.ReadJSON(&frame))
		if frame.TotalVolume > 0 {
			sawRain = true
			break
		}
	}
	require.True(t, sawRain, "rain command never showed up in broadcast volume")

	// Speed changes are reflected in subsequent frames.
	require.NoError(t, conn.WriteJSON(map[string]any{"speed": 8}))
	deadline = time.Now().Add(2 * time.Second)
	var sawSpeed bool
	for time.Now().Before(deadline) {
		var frame Frame
		require.NoError(t, conn.ReadJSON(&frame))
		if frame.Speed == 8 {
			sawSpeed = true
			break
		}
	}
	assert.True(t, sawSpeed, "speed command never showed up in frames")

	// Reset drains the grid.
	require.NoError(t, conn.WriteJSON(map[string]any{"reset": true}))
	deadline = time.Now().Add(2 * time.Second)
	var sawReset bool
	for time.Now().Before(deadline) {
		var frame Frame
		require.NoError(t, conn.ReadJSON(&frame))
		if frame.TotalVolume == 0 && frame.MaxDepth == 0 {
			sawReset = true
			break
		}
	}
	assert.True(t, sawReset, "reset command never drained the grid")
	_ = world
}

func TestServerMetaEndpoint(t *testing.T) {
	srv, world := testServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/meta")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var meta struct {
		GridSize int     `json:"grid_size"`
		CellSize float32 `json:"cell_size"`
		Dt       float32 `json:"dt"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta))
	assert.Equal(t, world.GridSize(), meta.GridSize)
	assert.Equal(t, world.CellSize(), meta.CellSize)
	assert.Equal(t, world.Dt(), meta.Dt)
}
