package editor

import (
	"math"

	"github.com/taigrr/rgeo/pkg/palette"
	"github.com/taigrr/rgeo/pkg/render"
	"github.com/taigrr/rgeo/pkg/track"
)

// Interface layout, in native coordinates.
const (
	PaneColumns = 11
	PaneRows    = 23
	paneCell    = 8 // cell side; scaled by the horizontal factor on both axes

	indicatorX    = 298
	indicatorY    = 36
	indicatorSize = 16

	minimapX      = 256
	minimapWidth  = 64
	minimapHeight = 32
	minimapSize   = 64 // texels per side

	frameSize  = 8
	frameColor = 7
	haloColor  = 0

	// Paint view: the tilemap stretched over a 2:1 area.
	paintX      = 32
	paintY      = 36
	paintWidth  = 256
	paintHeight = 128
	paintSize   = render.MaxTextureSize // texels per side

	// Texture editor: the brush PALA enlarged, right of the pane, and the
	// color swatch along the right edge.
	texEditScale = 8
	texEditSide  = track.PalaSize * texEditScale
	texEditX     = (NativeWidth - texEditSide + PaneColumns*paneCell/2) / 2
	texEditY     = (NativeHeight - texEditSide) / 2
	swatchX      = 280
	swatchWidth  = 10
	swatchRow    = float64(NativeHeight) / palette.NumPrimary
	markerX      = 272
	markerWidth  = 6
	markerHeight = 4
)

// paneIndex returns the pane cell under the framebuffer pixel (x, y) for a
// framebuffer width pixels wide.
func paneIndex(x, y, width int) (int, bool) {
	cell := paneCellSize(width)
	if x < 0 || y < 0 || cell <= 0 {
		return 0, false
	}
	col := int(float64(x) / cell)
	row := int(float64(y) / cell)
	if col >= PaneColumns || row >= PaneRows {
		return 0, false
	}
	return col + row*PaneColumns, true
}

func paneCellSize(width int) float64 {
	return paneCell * float64(width) / NativeWidth
}

// paintTile returns the tile under native point (nx, ny) on the paint
// view's map.
func (e *Editor) paintTile(nx, ny float64) (x, z int, ok bool) {
	fx := (nx - paintX) / paintWidth
	fz := (ny - paintY) / paintHeight
	if fx < 0 || fz < 0 || fx >= 1 || fz >= 1 {
		return 0, 0, false
	}
	return int(fx * float64(e.Track.Width)), int(fz * float64(e.Track.Height)), true
}

// texelAt returns the texel of the enlarged PALA under native point
// (nx, ny). Texel row 0 is drawn at the bottom.
func texelAt(nx, ny float64) (x, y int, ok bool) {
	col := int(math.Floor((nx - texEditX) / texEditScale))
	row := int(math.Floor((ny - texEditY) / texEditScale))
	if col < 0 || row < 0 || col >= track.PalaSize || row >= track.PalaSize {
		return 0, 0, false
	}
	return col, track.PalaSize - 1 - row, true
}

// swatchColor returns the primary color at native point (nx, ny) in the
// texture editor's swatch.
func swatchColor(nx, ny float64) (uint8, bool) {
	if nx < swatchX || ny < 0 {
		return 0, false
	}
	c := int(ny / swatchRow)
	if c >= palette.NumPrimary {
		return 0, false
	}
	return uint8(c), true
}

// swatchTexture has one row per primary color, top to bottom.
func swatchTexture() *render.Texture {
	tex, err := render.NewTexture(palette.NumPrimary, palette.NumPrimary)
	if err != nil {
		panic(err)
	}
	for y := range palette.NumPrimary {
		for x := range palette.NumPrimary {
			tex.SetPixel(x, y, uint8(y))
		}
	}
	return tex
}

// frameTexture is a transparent square with a one-texel border, used to
// outline the selected PALA and the camera on the minimap.
func frameTexture() *render.Texture {
	tex, err := render.NewTexture(frameSize, frameSize)
	if err != nil {
		panic(err)
	}
	for i := range frameSize {
		tex.SetPixel(i, 0, frameColor)
		tex.SetPixel(i, frameSize-1, frameColor)
		tex.SetPixel(0, i, frameColor)
		tex.SetPixel(frameSize-1, i, frameColor)
	}
	return tex
}

// rect describes a screen-space rectangle.
type rect struct {
	x, y, w, h float64
	fill       render.Fill
	in         render.Interaction
	// flip puts texture row 0 at the bottom edge.
	flip bool
}

// appendRect appends rect r as two screen-space triangles. Textures span
// the whole rectangle.
func appendRect(dst []render.Triangle, r rect) []render.Triangle {
	var tw, th float64
	if f, ok := r.fill.(render.Textured); ok {
		tw, th = float64(f.Texture.Width)-0.1, float64(f.Texture.Height)-0.1
	}
	top, bottom := 0.0, th
	if r.flip {
		top, bottom = th, 0
	}
	in := r.in
	if in == nil {
		in = render.Ignore{}
	}

	x0, y0, x1, y1 := r.x, r.y, r.x+r.w, r.y+r.h
	return append(dst,
		render.Triangle{
			V: [3]render.Vertex{
				render.V(x0, y0, 0, 0, top),
				render.V(x0, y1, 0, 0, bottom),
				render.V(x1, y1, 0, tw, bottom),
			},
			Fill:        r.fill,
			Interaction: in,
		},
		render.Triangle{
			V: [3]render.Vertex{
				render.V(x1, y1, 0, tw, bottom),
				render.V(x1, y0, 0, tw, top),
				render.V(x0, y0, 0, 0, top),
			},
			Fill:        r.fill,
			Interaction: in,
		},
	)
}

// Overlay returns the interface triangles for a width x height framebuffer,
// already in screen space. The main view shows the minimap with the
// camera's window outlined and the current PALA, the paint view the whole
// tilemap and the current PALA, and the texture editor the enlarged PALA
// and the color swatch. The PALA pane comes last when shown. The returned
// slice is reused by the next call.
func (e *Editor) Overlay(width, height int) []render.Triangle {
	sx := float64(width) / NativeWidth
	sy := float64(height) / NativeHeight
	ui := e.ui[:0]

	switch e.view {
	case ViewPaint:
		ui = e.appendPaintMap(ui, sx, sy)
		ui = e.appendIndicator(ui, sx, sy)
	case ViewTexEdit:
		ui = e.appendTexEdit(ui, sx, sy)
	default:
		ui = e.appendMinimap(ui, sx, sy)
		ui = e.appendIndicator(ui, sx, sy)
	}

	if e.paneShown() {
		ui = e.appendPane(ui, width)
	}

	e.ui = ui
	return ui
}

// appendIndicator shows the brush PALA with a halo around it.
func (e *Editor) appendIndicator(dst []render.Triangle, sx, sy float64) []render.Triangle {
	x, y := indicatorX*sx, indicatorY*sy
	dst = appendRect(dst, rect{
		x: x - sx, y: y - sy,
		w: (indicatorSize + 2) * sx, h: (indicatorSize + 2) * sy,
		fill: render.Flat{Index: haloColor},
	})
	return appendRect(dst, rect{
		x: x, y: y,
		w: indicatorSize * sx, h: indicatorSize * sy,
		fill: render.Textured{Texture: e.world.Palat.Pala(e.Brush.Pala), Transparent: true},
		flip: true,
	})
}

// appendPaintMap draws the tilemap for the paint view. Clicks on it are
// resolved from the cursor position, so it is not pickable.
func (e *Editor) appendPaintMap(dst []render.Triangle, sx, sy float64) []render.Triangle {
	if e.topdown == nil {
		tex, err := e.Track.Minimap(e.world.Palat, paintSize)
		if err != nil {
			panic(err)
		}
		e.topdown = tex
	}
	return appendRect(dst, rect{
		x: paintX * sx, y: paintY * sy,
		w: paintWidth * sx, h: paintHeight * sy,
		fill: render.Textured{Texture: e.topdown},
	})
}

// appendTexEdit draws the brush PALA enlarged, the color swatch and a
// marker next to the brush color.
func (e *Editor) appendTexEdit(dst []render.Triangle, sx, sy float64) []render.Triangle {
	dst = appendRect(dst, rect{
		x: texEditX * sx, y: texEditY * sy,
		w: texEditSide * sx, h: texEditSide * sy,
		fill: render.Textured{Texture: e.world.Palat.Pala(e.Brush.Pala)},
		flip: true,
	})
	dst = appendRect(dst, rect{
		x: swatchX * sx, y: 0,
		w: swatchWidth * sx, h: NativeHeight * sy,
		fill: render.Textured{Texture: e.swatch},
	})
	return appendRect(dst, rect{
		x: markerX * sx,
		y: (float64(e.Brush.Color)*swatchRow + (swatchRow-markerHeight)/2) * sy,
		w: markerWidth * sx, h: markerHeight * sy,
		fill: render.Flat{Index: frameColor},
	})
}

func (e *Editor) appendMinimap(dst []render.Triangle, sx, sy float64) []render.Triangle {
	if e.minimap == nil {
		tex, err := e.Track.Minimap(e.world.Palat, minimapSize)
		if err != nil {
			panic(err)
		}
		e.minimap = tex
	}

	x, w, h := minimapX*sx, minimapWidth*sx, minimapHeight*sy
	dst = appendRect(dst, rect{
		x: x - sx, y: -sy,
		w: w + 2*sx, h: h + 2*sy,
		fill: render.Flat{Index: haloColor},
	})
	dst = appendRect(dst, rect{
		x: x, y: 0, w: w, h: h,
		fill: render.Textured{Texture: e.minimap},
		in:   render.NoInteraction{},
	})

	// The drawn window, scaled to the minimap.
	tx, tz := e.Camera.TilePosition()
	t := e.Track
	return appendRect(dst, rect{
		x:    x + w*float64(tx)/float64(t.Width),
		y:    h * float64(tz) / float64(t.Height),
		w:    w * track.DrawTiles / float64(t.Width),
		h:    h * track.DrawTiles / float64(t.Height),
		fill: render.Textured{Texture: e.frame, Transparent: true},
	})
}

func (e *Editor) appendPane(dst []render.Triangle, width int) []render.Triangle {
	cell := paneCellSize(width)
	for i := range PaneColumns * PaneRows {
		col, row := i%PaneColumns, i/PaneColumns
		dst = appendRect(dst, rect{
			x: float64(col) * cell, y: float64(row) * cell,
			w: cell, h: cell,
			fill: render.Textured{Texture: e.world.Palat.Pala(uint8(i))},
			in:   render.PalettePane{},
			flip: true,
		})
	}

	col, row := int(e.Brush.Pala)%PaneColumns, int(e.Brush.Pala)/PaneColumns
	return appendRect(dst, rect{
		x: float64(col) * cell, y: float64(row) * cell,
		w: cell, h: cell,
		fill: render.Textured{Texture: e.frame, Transparent: true},
	})
}
