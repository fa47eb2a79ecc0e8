package editor

import (
	"math"
	"time"

	"github.com/taigrr/rgeo/pkg/render"
	"github.com/taigrr/rgeo/pkg/track"
)

// Native resolution the interface is laid out in. Cursor positions are
// scaled to it so margins and drag speeds don't depend on the output size.
const (
	NativeWidth  = 320
	NativeHeight = 200
)

const (
	scrollMarginX  = 7
	scrollMarginY  = 2 * scrollMarginX
	scrollSpeedX   = 1.4
	scrollSpeedZ   = 2.4
	topDownSpeedZ  = 1.4
	maxElapsed     = time.Second
	propDragX      = 5
	propDragZ      = 16
	heightRate     = 0.05 // height units per millisecond
	maxHeightDelta = 10
)

// Input is the state of the pointer for one frame.
type Input struct {
	// CursorX and CursorY are in framebuffer pixels; Width and Height are
	// the framebuffer size.
	CursorX, CursorY int
	Width, Height    int

	// Elapsed is the time since the previous frame.
	Elapsed time.Duration

	Left, Right, Middle bool

	// Pan is an additional camera movement in world units, for keyboard
	// or wheel scrolling. Fractions carry over to later frames.
	Pan [2]float64
}

func (in *Input) held() bool {
	return in.Left || in.Right || in.Middle
}

// native returns the cursor in native coordinates.
func (in *Input) native() (x, y float64) {
	if in.Width <= 0 || in.Height <= 0 {
		return 0, 0
	}
	return float64(in.CursorX) * NativeWidth / float64(in.Width),
		float64(in.CursorY) * NativeHeight / float64(in.Height)
}

// milliseconds returns the frame time, treating long stalls as no time.
func (in *Input) milliseconds() float64 {
	if in.Elapsed > maxElapsed || in.Elapsed < 0 {
		return 0
	}
	return float64(in.Elapsed) / float64(time.Millisecond)
}

// Update applies one frame of pointer input: the camera's movement is
// reset, then prop dragging and edge scrolling move things, then held
// buttons edit the track. Call Hover after rendering the frame.
func (e *Editor) Update(in Input) {
	e.move(in)
	e.click(in)
}

func (e *Editor) move(in Input) {
	e.Camera.ResetMovement()
	nx, ny := in.native()
	if !e.havePrev {
		e.prevX, e.prevY, e.havePrev = nx, ny, true
	}

	e.insidePane = e.interaction.Kind() == render.KindPalettePane
	if e.paneShown() && e.insidePane {
		if idx, ok := paneIndex(in.CursorX, in.CursorY, in.Width); ok {
			e.paneHover = idx
		}
	}

	// The flat views hold the camera still.
	if e.view != ViewMain {
		e.dragging, e.editing = false, false
		e.prevX, e.prevY = nx, ny
		return
	}

	if in.Left || in.Right {
		e.dragging = e.interaction.Kind() == render.KindProp && !e.editing
		e.editing = e.interaction.Kind() == render.KindGround
	} else {
		e.dragging = false
		e.editing = false
	}

	if e.dragging {
		dx := int((nx - e.prevX) * propDragX)
		dz := int((ny - e.prevY) * propDragZ)
		if (dx != 0 || dz != 0) && e.Track.MoveProp(e.draggedProp(), dx, 0, dz) {
			e.unsaved = true
		}
	}

	var fx, fz float64
	if !e.insidePane && atEdge(nx, ny) {
		ms := in.milliseconds()
		speedZ := scrollSpeedZ
		if e.Camera.TopDown() {
			speedZ = topDownSpeedZ
		}
		// Points from the middle of the screen toward the cursor.
		px := nx/NativeWidth*100 - 50
		pz := 50 - ny/NativeHeight*100
		if l := math.Hypot(px, pz); l > 0 {
			fx = px / l * scrollSpeedX * ms
			fz = pz / l * speedZ * ms
		}
	}
	fx += in.Pan[0]
	fz += in.Pan[1]
	if fx != 0 || fz != 0 {
		e.scrollFrac[0] += fx
		e.scrollFrac[1] += fz
		mx, mz := int(e.scrollFrac[0]), int(e.scrollFrac[1])
		e.Camera.Move(mx, 0, mz)
		e.scrollFrac[0] -= float64(mx)
		e.scrollFrac[1] -= float64(mz)
	}

	// A held prop travels with the camera.
	if e.dragging && e.Camera.IsMoving() {
		s := e.Camera.Speed()
		if e.Track.MoveProp(e.draggedProp(), s[0], s[1], s[2]) {
			e.unsaved = true
		}
	}

	e.prevX, e.prevY = nx, ny
}

func atEdge(nx, ny float64) bool {
	return nx < scrollMarginX || ny < scrollMarginY ||
		nx >= NativeWidth-scrollMarginX || ny >= NativeHeight-scrollMarginY
}

func (e *Editor) draggedProp() int {
	return e.interaction.(render.Prop).Index
}

func (e *Editor) click(in Input) {
	if !in.held() {
		e.locked = false
		return
	}
	// Holding a button keeps the focus on the current kind of interaction
	// until it is let go.
	e.locked = true

	if e.insidePane || e.view == ViewTexEdit {
		idx, ok := paneIndex(in.CursorX, in.CursorY, in.Width)
		if ok && idx < track.Selectable {
			e.Brush.Pala = uint8(idx)
		}
		if ok || e.insidePane {
			return
		}
	}

	switch e.view {
	case ViewPaint:
		e.paint(in)
		return
	case ViewTexEdit:
		e.editTexel(in)
		return
	}

	g, ok := e.interaction.(render.Ground)
	if !ok {
		return
	}

	if in.Middle {
		e.Track.PaintTiles(g.GlobalX, g.GlobalZ, e.Brush.Pala, e.Brush.Size)
		e.trackChanged()
		return
	}

	// Heights are integers, so the per-frame amount carries its fraction
	// over to later frames.
	e.heightFrac += min(heightRate*in.milliseconds(), maxHeightDelta)
	amt := int(e.heightFrac)
	e.heightFrac -= float64(amt)

	dir := 0
	if in.Left {
		dir = 1
	} else if in.Right {
		dir = -1
	}
	if amt != 0 && dir != 0 {
		e.Track.AdjustHeight(g.GlobalX, g.GlobalZ, dir*amt, e.Brush.Size, e.Brush.Smoothing)
		e.unsaved = true
	}
}

// paint applies the brush PALA to the tile under the cursor on the
// top-down map.
func (e *Editor) paint(in Input) {
	x, z, ok := e.paintTile(in.native())
	if !ok {
		return
	}
	e.Track.PaintTiles(x, z, e.Brush.Pala, e.Brush.Size)
	e.trackChanged()
}

// editTexel sets the texel under the cursor to the brush color, or picks
// the brush color from the swatch.
func (e *Editor) editTexel(in Input) {
	nx, ny := in.native()
	if x, y, ok := texelAt(nx, ny); ok {
		if err := e.world.Palat.SetPixel(e.Brush.Pala, x, y, e.Brush.Color); err == nil {
			e.trackChanged()
		}
		return
	}
	if c, ok := swatchColor(nx, ny); ok {
		e.Brush.Color = c
	}
}

// Key is an editor command bound to a key.
type Key int

const (
	KeyNone Key = iota
	KeyPane
	KeyCamera
	KeyWireframe
	KeySmoothing
	KeyWater
	KeyPaint
	KeyTexEdit
	KeyBrush1
	KeyBrush2
	KeyBrush3
	KeyBrush4
	KeyBrush5
	KeyBack
	KeyExit
)

// Press applies a key command. The pane key cycles the kind of a prop
// being dragged instead of toggling the pane. KeyBack leaves the paint or
// texture view, and exits from the main view.
func (e *Editor) Press(k Key) {
	switch k {
	case KeyPane:
		if e.dragging {
			e.Track.CycleProp(e.draggedProp())
			e.unsaved = true
		} else {
			e.PaneOpen = !e.PaneOpen
		}
	case KeyCamera:
		e.Camera.ToggleViewMode()
	case KeyWireframe:
		e.Wireframe = !e.Wireframe
	case KeySmoothing:
		e.Brush.Smoothing = !e.Brush.Smoothing
	case KeyWater:
		e.RealWater = !e.RealWater
	case KeyPaint:
		e.toggleView(ViewPaint)
	case KeyTexEdit:
		e.toggleView(ViewTexEdit)
	case KeyBrush1, KeyBrush2, KeyBrush3, KeyBrush4, KeyBrush5:
		e.Brush.Size = brushSizes[k-KeyBrush1]
	case KeyBack:
		if e.view == ViewMain {
			e.quit = true
		} else {
			e.setView(ViewMain)
		}
	case KeyExit:
		e.quit = true
	}
}

// toggleView switches between v and the main view.
func (e *Editor) toggleView(v View) {
	if e.view == v {
		v = ViewMain
	}
	e.setView(v)
}

func (e *Editor) setView(v View) {
	e.view = v
	e.dragging, e.editing = false, false
	e.hovered = nil
	e.interaction = render.NoInteraction{}
}
