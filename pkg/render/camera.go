package render

import (
	"fmt"

	"github.com/taigrr/rgeo/pkg/math3d"
)

// Camera presets.
var (
	InitialCameraPosition  = [3]int{-1664, -760, 4400}
	InitialCameraDirection = [3]math3d.Angle{65536 - 2500, 0, 0}
)

const (
	topDownHeight   = -2000
	topDownPitchDeg = 40
	normalZOffset   = 40
	topDownZOffset  = 150
)

// Bounds describes the track dimensions the camera must stay within.
type Bounds struct {
	TileWidth   int // world units per tile along X
	TileHeight  int // world units per tile along Z
	TrackWidth  int // tiles along X
	TrackHeight int // tiles along Z
	DrawTilesX  int // tiles drawn around the camera along X
	DrawTilesZ  int // tiles drawn around the camera along Z
}

// Limits returns the allowed camera X range and maximum Z. The minimum Z is
// zero. It panics if the dimensions produce an inverted range.
func (b Bounds) Limits() (xMin, xMax, zMax int) {
	xMax = b.TileWidth + b.TileWidth/8
	xMin = -(b.TileWidth * b.TrackWidth) + b.DrawTilesX*b.TileWidth - b.TileWidth/4
	zMax = b.TileHeight*b.TrackHeight - (b.DrawTilesZ-4)*b.TileHeight
	if xMin > xMax || zMax < 0 {
		panic(fmt.Sprintf("render: camera bounds inverted for %+v (x %d..%d, z 0..%d)", b, xMin, xMax, zMax))
	}
	return xMin, xMax, zMax
}

// Camera holds the editor's view state: an integer world position, a packed
// rotation, the movement made this frame and the view mode.
type Camera struct {
	pos     [3]int
	dir     [3]math3d.Angle
	speed   [3]int
	topDown bool

	xMin, xMax, zMax int
	bounds           Bounds
}

// NewCamera creates a camera at the initial preset.
func NewCamera(bounds Bounds) *Camera {
	c := &Camera{
		pos: InitialCameraPosition,
		dir: InitialCameraDirection,
	}
	c.SetBounds(bounds)
	return c
}

// SetBounds replaces the track bounds, for example after loading a track of
// a different size.
func (c *Camera) SetBounds(bounds Bounds) {
	c.bounds = bounds
	c.xMin, c.xMax, c.zMax = bounds.Limits()
}

// Bounds returns the track bounds.
func (c *Camera) Bounds() Bounds {
	return c.bounds
}

// SetPosition places the camera without clamping or speed tracking.
func (c *Camera) SetPosition(x, y, z int) {
	c.pos = [3]int{x, y, z}
}

// SetDirection overwrites the camera rotation.
func (c *Camera) SetDirection(x, y, z math3d.Angle) {
	c.dir = [3]math3d.Angle{x, y, z}
}

// Move applies a requested movement. X and Z are clamped to the track
// afterwards, and the movement that actually happened is added to Speed.
func (c *Camera) Move(dx, dy, dz int) {
	prev := c.pos

	c.pos[0] -= dx
	c.pos[1] += dy
	c.pos[2] -= dz

	c.pos[0] = min(max(c.pos[0], c.xMin), c.xMax)
	c.pos[2] = min(max(c.pos[2], 0), c.zMax)

	c.speed[0] += prev[0] - c.pos[0]
	c.speed[1] += c.pos[1] - prev[1]
	c.speed[2] += c.pos[2] - prev[2]
}

// ResetMovement zeroes the speed. Call once per frame before Move.
func (c *Camera) ResetMovement() {
	c.speed = [3]int{}
}

// IsMoving reports whether the camera moved this frame.
func (c *Camera) IsMoving() bool {
	return c.speed != [3]int{}
}

// Speed returns the movement accumulated this frame.
func (c *Camera) Speed() [3]int {
	return c.speed
}

// Position returns the camera position.
func (c *Camera) Position() [3]int {
	return c.pos
}

// Direction returns the camera rotation.
func (c *Camera) Direction() [3]math3d.Angle {
	return c.dir
}

// TopDown reports whether the top-down view preset is active.
func (c *Camera) TopDown() bool {
	return c.topDown
}

// ToggleViewMode switches between the normal and top-down presets by
// overwriting height and pitch.
func (c *Camera) ToggleViewMode() {
	c.topDown = !c.topDown
	if c.topDown {
		c.pos[1] = topDownHeight
		c.dir[0] = -math3d.AngleFromDegrees(topDownPitchDeg)
	} else {
		c.pos[1] = InitialCameraPosition[1]
		c.dir[0] = InitialCameraDirection[0]
	}
}

// PositionMatrix returns the camera translation.
func (c *Camera) PositionMatrix() math3d.Mat4 {
	offset := normalZOffset
	if c.topDown {
		offset = topDownZOffset
	}
	return math3d.Translate(math3d.V3(
		float64(c.pos[0]),
		float64(c.pos[1]),
		float64(c.pos[2]-offset),
	))
}

// DirectionMatrix returns the camera rotation.
func (c *Camera) DirectionMatrix() math3d.Mat4 {
	return math3d.RotateFixed(c.dir[0], c.dir[1], c.dir[2])
}

// TilePosition returns the track tile the camera is over.
func (c *Camera) TilePosition() (x, z int) {
	return -c.pos[0] / c.bounds.TileWidth, c.pos[2] / c.bounds.TileHeight
}
