// Package track holds the editable track: a heightmap, a tilemap of PALA
// texture indices and the placed props. It generates the world-space
// triangles the renderer draws around the camera.
package track

import (
	"errors"
	"fmt"

	"github.com/taigrr/rgeo/pkg/models"
	"github.com/taigrr/rgeo/pkg/render"
)

// Track geometry.
const (
	TileSize   = 128 // world units per tile side
	DrawTiles  = 26  // tiles drawn around the camera along each axis
	MinSide    = DrawTiles
	MaxSide    = 256
	MinHeight  = -510
	MaxHeight  = 255
	edgeMargin = 1
)

var (
	// ErrTrackSize is returned for dimensions outside MinSide..MaxSide.
	ErrTrackSize = errors.New("track: unsupported track size")
	// ErrOutOfTrack is returned for positions off the track.
	ErrOutOfTrack = errors.New("track: position outside the track")
)

// The world origin sits at the tile under the camera's initial position, so
// ground and props line up with the camera's coordinates.
var (
	originTileX = -render.InitialCameraPosition[0] / TileSize
	originTileZ = render.InitialCameraPosition[2] / TileSize
)

// PropInstance is a prop placed on the track.
type PropInstance struct {
	Kind models.Kind
	// Pos is the position in world units from the track's corner. Pos[1]
	// is an offset from the terrain height.
	Pos [3]int
}

// Track is a rectangular grid of tiles. Heights grow upwards.
type Track struct {
	Width  int
	Height int

	Heights []int   // row-major, Width*Height
	Tiles   []uint8 // row-major PALA indices, Width*Height
	Props   []PropInstance

	// WaterLevel is the terrain height of the water surface. It is zero or
	// negative on real tracks.
	WaterLevel int
}

// New creates a flat track of grass tiles with no props.
func New(width, height int) (*Track, error) {
	if width < MinSide || width > MaxSide || height < MinSide || height > MaxSide {
		return nil, fmt.Errorf("%w: %dx%d (want %d..%d per side)", ErrTrackSize, width, height, MinSide, MaxSide)
	}
	t := &Track{
		Width:   width,
		Height:  height,
		Heights: make([]int, width*height),
		Tiles:   make([]uint8, width*height),
	}
	for i := range t.Tiles {
		t.Tiles[i] = TileGrass
	}
	return t, nil
}

// Bounds returns the dimensions the camera is clamped to.
func (t *Track) Bounds() render.Bounds {
	return render.Bounds{
		TileWidth:   TileSize,
		TileHeight:  TileSize,
		TrackWidth:  t.Width,
		TrackHeight: t.Height,
		DrawTilesX:  DrawTiles,
		DrawTilesZ:  DrawTiles,
	}
}

// Contains reports whether (x, z) is a tile of the track.
func (t *Track) Contains(x, z int) bool {
	return x >= 0 && x < t.Width && z >= 0 && z < t.Height
}

// HeightAt returns the height of tile (x, z), or 0 off the track.
func (t *Track) HeightAt(x, z int) int {
	if !t.Contains(x, z) {
		return 0
	}
	return t.Heights[x+z*t.Width]
}

// SetHeight sets the height of tile (x, z), clamped to MinHeight..MaxHeight.
func (t *Track) SetHeight(x, z, h int) error {
	if !t.Contains(x, z) {
		return fmt.Errorf("%w: tile (%d, %d)", ErrOutOfTrack, x, z)
	}
	t.Heights[x+z*t.Width] = clampHeight(h)
	return nil
}

// TileAt returns the PALA index of tile (x, z), or 0 off the track.
func (t *Track) TileAt(x, z int) uint8 {
	if !t.Contains(x, z) {
		return 0
	}
	return t.Tiles[x+z*t.Width]
}

// SetTile sets the PALA index of tile (x, z).
func (t *Track) SetTile(x, z int, pala uint8) error {
	if !t.Contains(x, z) {
		return fmt.Errorf("%w: tile (%d, %d)", ErrOutOfTrack, x, z)
	}
	t.Tiles[x+z*t.Width] = pala
	return nil
}

// AddProp places a prop at world position (x, z) and returns its index.
func (t *Track) AddProp(kind models.Kind, x, z int) (int, error) {
	if !t.propInBounds([3]int{x, 0, z}) {
		return -1, fmt.Errorf("%w: prop at (%d, %d)", ErrOutOfTrack, x, z)
	}
	t.Props = append(t.Props, PropInstance{Kind: kind, Pos: [3]int{x, 0, z}})
	return len(t.Props) - 1, nil
}

// MoveProp moves prop i by (dx, dy, dz). The prop at index 0 is the
// starting line and cannot be moved; MoveProp reports false for it.
// A move that would take the prop off the track is ignored but still
// reports true. It panics if i is out of range.
func (t *Track) MoveProp(i, dx, dy, dz int) bool {
	t.mustProp(i)
	if i == 0 || !t.Props[i].Kind.Movable() {
		return false
	}

	p := t.Props[i].Pos
	p = [3]int{p[0] + dx, p[1] + dy, p[2] + dz}
	if !t.propInBounds(p) {
		return true
	}
	t.Props[i].Pos = p
	return true
}

// CycleProp replaces prop i with the next placeable kind. The starting
// line is left alone. It panics if i is out of range.
func (t *Track) CycleProp(i int) {
	t.mustProp(i)
	if !t.Props[i].Kind.Movable() {
		return
	}
	t.Props[i].Kind = t.Props[i].Kind.Next()
}

// propInBounds allows one tile of slack past the far Z edge, matching where
// the game places its trailing props.
func (t *Track) propInBounds(p [3]int) bool {
	return p[0] >= 0 && p[1] >= 0 && p[2] >= 0 &&
		p[0] <= t.Width*TileSize &&
		p[2] <= (t.Height+edgeMargin)*TileSize
}

func (t *Track) mustProp(i int) {
	if i < 0 || i >= len(t.Props) {
		panic(fmt.Sprintf("track: prop index %d out of range [0, %d)", i, len(t.Props)))
	}
}

func clampHeight(h int) int {
	return min(max(h, MinHeight), MaxHeight)
}
