package track

import (
	"github.com/taigrr/rgeo/pkg/math3d"
	"github.com/taigrr/rgeo/pkg/models"
	"github.com/taigrr/rgeo/pkg/render"
)

// Texel coordinate of the far texture edge. Stays below PalaSize so affine
// interpolation never reaches past the last texel.
const uvEdge = PalaSize - 0.1

// propLookahead extends the prop window past the far edge of the drawn
// ground so props don't pop in while scrolling.
const propLookahead = 5

// Scene turns a track into world-space triangles. Up is -Y; the pipeline's
// ground correction flips the terrain upright.
type Scene struct {
	Track *Track
	Palat *Palat
	Props *models.Library
}

// NewScene creates a scene drawing t with the default PALAs and props.
func NewScene(t *Track) *Scene {
	return &Scene{Track: t, Palat: NewPalat(), Props: models.NewLibrary()}
}

// View selects what part of the track is drawn and how it is decorated.
type View struct {
	// TileX and TileZ are the camera's tile, from Camera.TilePosition.
	TileX, TileZ int

	// Highlight marks the tile under the cursor, or nil.
	Highlight *Highlight

	// RealWater sinks water tiles and their shores to the water level
	// instead of drawing the water surface overlay.
	RealWater bool

	// Visible, when set, is asked whether a prop's world-space bounds can
	// appear on screen. Props it rejects are not emitted.
	Visible func(render.AABB) bool
}

// Highlight previews the brush on the ground.
type Highlight struct {
	X, Z  int   // tile within the drawn window
	Pala  uint8 // texture shown on the highlighted tile
	Brush int   // brush radius, in tiles, applied to billboards
}

// Append appends the ground, billboard and prop triangles around the view's
// tile and returns the extended slice. Ground tiles are emitted row by row,
// each row followed by its billboards. Props come last.
func (s *Scene) Append(dst []render.Triangle, v View) []render.Triangle {
	for z := range DrawTiles {
		for x := range DrawTiles {
			dst = s.appendGround(dst, v, x, z)
		}
		for x := range DrawTiles {
			dst = s.appendBillboard(dst, v, x, z)
		}
	}
	return s.appendProps(dst, v)
}

// tileOrigin returns the world position of the front-left corner of tile
// (gx, gz).
func tileOrigin(gx, gz int) (x, z float64) {
	return float64((gx - originTileX) * TileSize), float64((gz - originTileZ) * TileSize)
}

// corners holds the negated heights of a tile's corners.
type corners struct {
	frontLeft, frontRight, backLeft, backRight float64
}

func (s *Scene) corners(gx, gz int, realWater bool) corners {
	t := s.Track
	c := corners{
		frontLeft:  float64(-t.HeightAt(gx, gz)),
		frontRight: float64(-t.HeightAt(gx+1, gz)),
		backLeft:   float64(-t.HeightAt(gx, gz+1)),
		backRight:  float64(-t.HeightAt(gx+1, gz+1)),
	}
	if !realWater || !s.interior(gx, gz) {
		return c
	}

	water := float64(-t.WaterLevel)
	isWater := func(dx, dz int) bool { return t.TileAt(gx+dx, gz+dz) == TileWater }
	if isWater(0, 0) {
		return corners{water, water, water, water}
	}
	if isWater(0, -1) {
		c.frontLeft, c.frontRight = water, water
	}
	if isWater(0, 1) {
		c.backLeft, c.backRight = water, water
	}
	if isWater(-1, 0) {
		c.frontLeft, c.backLeft = water, water
	}
	if isWater(1, 0) {
		c.frontRight, c.backRight = water, water
	}
	if isWater(1, -1) {
		c.frontRight = water
	}
	if isWater(-1, -1) {
		c.frontLeft = water
	}
	if isWater(1, 1) {
		c.backRight = water
	}
	if isWater(-1, 1) {
		c.backLeft = water
	}
	return c
}

// interior reports whether a tile is off the track's outer ring.
func (s *Scene) interior(gx, gz int) bool {
	return gx > 0 && gx < s.Track.Width-1 && gz > 0 && gz < s.Track.Height-1
}

func (s *Scene) appendGround(dst []render.Triangle, v View, x, z int) []render.Triangle {
	gx, gz := v.TileX+x, v.TileZ+z
	c := s.corners(gx, gz, v.RealWater)

	pala := s.Track.TileAt(gx, gz)
	if h := v.Highlight; h != nil && h.X == x && h.Z == z {
		pala = h.Pala
	}
	fill := render.Textured{Texture: s.Palat.Pala(pala)}

	wx, wz := tileOrigin(gx, gz)
	w := float64(TileSize)
	ground := render.Ground{X: x, Z: z, GlobalX: gx, GlobalZ: gz}

	main := ground
	main.Main = true
	main.Twin = len(dst) + 1
	dst = append(dst, render.Triangle{
		V: [3]render.Vertex{
			render.V(wx, c.frontLeft, wz, 0, uvEdge),
			render.V(wx, c.backLeft, wz+w, 0, 0),
			render.V(wx+w, c.backRight, wz+w, uvEdge, 0),
		},
		Fill:        fill,
		Interaction: main,
	})

	twin := ground
	twin.Twin = len(dst) - 1
	dst = append(dst, render.Triangle{
		V: [3]render.Vertex{
			render.V(wx, c.frontLeft, wz, 0, uvEdge),
			render.V(wx+w, c.backRight, wz+w, uvEdge, 0),
			render.V(wx+w, c.frontRight, wz, uvEdge, uvEdge),
		},
		Fill:        fill,
		Interaction: twin,
	})
	return dst
}

// flatQuad appends a horizontal tile-sized quad at height y, textured the
// way ground tiles are.
func flatQuad(dst []render.Triangle, wx, wz, y float64, fill render.Fill) []render.Triangle {
	w := float64(TileSize)
	return append(dst,
		render.Triangle{
			V: [3]render.Vertex{
				render.V(wx, y, wz, 0, uvEdge),
				render.V(wx, y, wz+w, 0, 0),
				render.V(wx+w, y, wz+w, uvEdge, 0),
			},
			Fill:        fill,
			Interaction: render.Ignore{},
		},
		render.Triangle{
			V: [3]render.Vertex{
				render.V(wx, y, wz, 0, uvEdge),
				render.V(wx+w, y, wz+w, uvEdge, 0),
				render.V(wx+w, y, wz, uvEdge, uvEdge),
			},
			Fill:        fill,
			Interaction: render.Ignore{},
		},
	)
}

// uprightQuad appends a vertical tile-wide quad standing on the back edge
// of a tile, from base up one tile. Texture row 0 is at the base.
func uprightQuad(dst []render.Triangle, wx, wz, base float64, fill render.Fill) []render.Triangle {
	w := float64(TileSize)
	top := base - w
	back := wz + w
	return append(dst,
		render.Triangle{
			V: [3]render.Vertex{
				render.V(wx, top, back, 0, PalaSize),
				render.V(wx, base, back, 0, 1),
				render.V(wx+w, base, back, PalaSize-1, 1),
			},
			Fill:        fill,
			Interaction: render.Ignore{},
		},
		render.Triangle{
			V: [3]render.Vertex{
				render.V(wx, top, back, 0, PalaSize),
				render.V(wx+w, base, back, PalaSize-1, 1),
				render.V(wx+w, top, back, PalaSize-1, PalaSize),
			},
			Fill:        fill,
			Interaction: render.Ignore{},
		},
	)
}

// appendBillboard adds the decoration standing on tile (x, z) of the
// window: the water surface, a bridge deck, or an upright sprite. These
// are transparent and invisible to picking.
func (s *Scene) appendBillboard(dst []render.Triangle, v View, x, z int) []render.Triangle {
	t := s.Track
	gx, gz := v.TileX+x, v.TileZ+z
	wx, wz := tileOrigin(gx, gz)

	tile := t.TileAt(gx, gz)
	if h := v.Highlight; h != nil && abs(x-h.X) <= h.Brush && abs(z-h.Z) <= h.Brush {
		tile = h.Pala
	}

	switch {
	case tile == TileWater && !v.RealWater:
		// Water is never above ground level.
		surface := float64(-t.WaterLevel)
		if surface < 0 {
			return dst
		}
		return flatQuad(dst, wx, wz, surface, render.Textured{Texture: s.Palat.WaterLevel(), Transparent: true})

	case isBridge(tile):
		// Bridge decks sit at height 0, over ground that dips below it.
		lowest := min(t.HeightAt(gx, gz), t.HeightAt(gx+1, gz), t.HeightAt(gx+1, gz+1), t.HeightAt(gx, gz+1))
		if lowest >= 0 {
			return dst
		}
		return flatQuad(dst, wx, wz, 0, render.Textured{Texture: s.Palat.Pala(PalaBridge), Transparent: true})

	case isBillboard(tile):
		pala, ok := billboardPala(tile, gx, gz)
		if !ok {
			return dst
		}
		base := float64(-t.HeightAt(gx, gz))
		if v.RealWater && s.interior(gx, gz) && s.nearWater(gx, gz) {
			base = float64(-t.WaterLevel)
		}
		return uprightQuad(dst, wx, wz, base, render.Textured{Texture: s.Palat.Pala(pala), Transparent: true})
	}
	return dst
}

// nearWater reports whether any of the eight tiles around (gx, gz) is water.
func (s *Scene) nearWater(gx, gz int) bool {
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dz != 0) && s.Track.TileAt(gx+dx, gz+dz) == TileWater {
				return true
			}
		}
	}
	return false
}

// appendProps adds the props inside the drawn window, plus a few rows of
// lookahead. Each prop's triangles carry its index and triangle range.
func (s *Scene) appendProps(dst []render.Triangle, v View) []render.Triangle {
	t := s.Track
	startX := v.TileX * TileSize
	endX := startX + DrawTiles*TileSize
	startZ := v.TileZ * TileSize
	endZ := startZ + (DrawTiles+propLookahead)*TileSize

	for i, p := range t.Props {
		if p.Pos[0] < startX || p.Pos[0] > endX || p.Pos[2] < startZ || p.Pos[2] > endZ {
			continue
		}

		mesh := s.Props.Mesh(p.Kind)
		ground := -t.HeightAt(p.Pos[0]/TileSize, p.Pos[2]/TileSize)
		offset := math3d.V3(
			float64(p.Pos[0]-originTileX*TileSize),
			float64(p.Pos[1]+ground),
			float64(p.Pos[2]-originTileZ*TileSize),
		)
		if v.Visible != nil && !v.Visible(mesh.Bounds.Translate(offset)) {
			continue
		}

		first := len(dst)
		in := render.Prop{Index: i, FirstTri: first, LastTri: first + mesh.TriangleCount()}
		dst = mesh.AppendTriangles(dst, offset, in)
	}
	return dst
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
