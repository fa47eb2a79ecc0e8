// Package config loads editor settings from a JSON file and merges them
// with command-line flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taigrr/rgeo/pkg/palette"
	"github.com/taigrr/rgeo/pkg/track"
)

// Config holds the track source, asset paths and display settings.
type Config struct {
	// Track source. A heightmap takes priority over generation.
	Heightmap string `json:"heightmap"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Seed      uint64 `json:"seed"`

	// Assets. Relative paths are resolved against AssetDir.
	AssetDir string `json:"asset_dir"`
	Palat    string `json:"palat"`
	Props    string `json:"props"`
	Palette  string `json:"palette"`

	// Display
	PaletteIndex int  `json:"palette_index"`
	FPS          int  `json:"fps"`
	Wireframe    bool `json:"wireframe"`

	// Snapshot output
	Snapshot      string `json:"snapshot"`
	SnapshotScale int    `json:"snapshot_scale"`
	SnapshotSize  [2]int `json:"snapshot_size"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Heightmap string
	Width     int
	Height    int
	Seed      uint64
	Palat     string
	Props     string
	Palette   int // -1 when unset
	FPS       int
	Wireframe bool
	Snapshot  string
	Scale     int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Heightmap != "" {
		c.Heightmap = flags.Heightmap
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Palat != "" {
		c.Palat = flags.Palat
	}
	if flags.Props != "" {
		c.Props = flags.Props
	}
	if flags.Palette >= 0 {
		c.PaletteIndex = flags.Palette
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Wireframe {
		c.Wireframe = true
	}
	if flags.Snapshot != "" {
		c.Snapshot = flags.Snapshot
	}
	if flags.Scale > 0 {
		c.SnapshotScale = flags.Scale
	}

	// Resolve relative paths against the asset dir
	if c.AssetDir != "" {
		for _, p := range []*string{&c.Heightmap, &c.Palat, &c.Props, &c.Palette} {
			if *p != "" && !filepath.IsAbs(*p) {
				*p = filepath.Join(c.AssetDir, *p)
			}
		}
	}

	// Defaults
	if c.Width <= 0 {
		c.Width = 128
	}
	if c.Height <= 0 {
		c.Height = c.Width
	}
	c.Width = min(max(c.Width, track.MinSide), track.MaxSide)
	c.Height = min(max(c.Height, track.MinSide), track.MaxSide)
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.PaletteIndex < 0 || c.PaletteIndex >= palette.NumBuiltin {
		c.PaletteIndex = 0
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.SnapshotScale <= 0 {
		c.SnapshotScale = 2
	}
	if c.SnapshotSize[0] <= 0 || c.SnapshotSize[1] <= 0 {
		c.SnapshotSize = [2]int{320, 200}
	}
}
