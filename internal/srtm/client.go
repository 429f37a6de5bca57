package srtm

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultBaseURL is the public skadi mirror of the SRTM dataset.
const DefaultBaseURL = "https://s3.amazonaws.com/elevation-tiles-prod/skadi"

// Client downloads and caches SRTM tiles. The zero value is not usable; use
// NewClient.
type Client struct {
	baseURL  string
	cacheDir string
	http     *http.Client
}

// NewClient builds a tile client. An empty baseURL selects the public skadi
// mirror, an empty cacheDir selects ~/.cache/floodsim/srtm.
func NewClient(baseURL, cacheDir string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("srtm: resolving cache dir: %w", err)
		}
		cacheDir = filepath.Join(home, ".cache", "floodsim", "srtm")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("srtm: creating cache dir: %w", err)
	}
	return &Client{
		baseURL:  baseURL,
		cacheDir: cacheDir,
		http:     &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

// CacheDir returns the directory decompressed tiles are stored in.
func (c *Client) CacheDir() string { return c.cacheDir }

// FetchTile returns the parsed tile, downloading and caching the .hgt file
// if it is not cached yet.
func (c *Client) FetchTile(ctx context.Context, tile Tile) (*TileData, error) {
	path := filepath.Join(c.cacheDir, tile.Name()+".hgt")
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		return ParseHGT(tile, data)
	}

	data, err := c.download(ctx, tile)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseHGT(tile, data)
	if err != nil {
		return nil, err
	}
	// Cache failures are not fatal; the tile is already in memory.
	_ = os.WriteFile(path, data, 0o644)
	return parsed, nil
}

// FetchTiles fetches every tile covering the bounding box into a mosaic.
func (c *Client) FetchTiles(ctx context.Context, tiles []Tile) (*Mosaic, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("srtm: no tiles requested")
	}
	m := NewMosaic()
	for _, tile := range tiles {
		data, err := c.FetchTile(ctx, tile)
		if err != nil {
			return nil, fmt.Errorf("srtm: tile %s: %w", tile.Name(), err)
		}
		m.Add(data)
	}
	return m, nil
}

func (c *Client) download(ctx context.Context, tile Tile) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s.hgt.gz", c.baseURL, tile.LatDir(), tile.Name())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected http GET status: %s", resp.Status)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decompressing tile: %w", err)
	}
	defer gz.Close()
	return io.ReadAll(gz)
}
