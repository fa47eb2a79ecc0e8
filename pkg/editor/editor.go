// Package editor implements the interactive side of the track editor: it
// turns cursor, button and key input into camera movement and track edits,
// decides what the cursor is hovering over, and lays out the screen-space
// user interface drawn on top of the scene.
package editor

import (
	"fmt"

	"github.com/taigrr/rgeo/pkg/render"
	"github.com/taigrr/rgeo/pkg/track"
)

// Brush sizes selectable with KeyBrush1..KeyBrush5.
var brushSizes = [...]int{0, 1, 2, 3, 8}

// Brush defaults at startup.
const (
	DefaultPala  = 3
	DefaultColor = 4
)

// Brush is the tool applied to the ground.
type Brush struct {
	Size      int   // radius in tiles; 0 edits a single tile
	Pala      uint8 // texture painted with the middle button
	Color     uint8 // primary color set by the texture editor
	Smoothing bool  // raise and lower smooth the ground instead
}

// View selects what the editor shows.
type View int

const (
	ViewMain    View = iota // the 3D scene
	ViewPaint               // the whole tilemap, top-down
	ViewTexEdit             // the brush PALA, enlarged for editing
)

func (v View) String() string {
	switch v {
	case ViewMain:
		return "main"
	case ViewPaint:
		return "paint"
	case ViewTexEdit:
		return "texedit"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// Editor holds the editing session: the track, the camera looking at it
// and the state of the mouse interaction.
type Editor struct {
	Track  *track.Track
	Camera *render.Camera
	Brush  Brush

	Wireframe bool
	RealWater bool
	PaneOpen  bool

	world *track.Scene
	view  View

	// interaction is what a click would act on, set by Hover.
	interaction render.Interaction
	hovered     *render.Ground

	locked     bool // a button is held; the interaction kind may not change
	dragging   bool // a prop follows the cursor
	editing    bool // the ground under the cursor is being raised or lowered
	insidePane bool
	paneHover  int

	prevX, prevY float64 // cursor in native coordinates last frame
	havePrev     bool
	scrollFrac   [2]float64
	heightFrac   float64

	unsaved bool
	quit    bool

	minimap *render.Texture
	topdown *render.Texture
	frame   *render.Texture
	swatch  *render.Texture
	scene   []render.Triangle
	ui      []render.Triangle
}

// New creates an editor for the scene's track with the camera at its
// starting position.
func New(s *track.Scene) *Editor {
	return &Editor{
		Track:       s.Track,
		Camera:      render.NewCamera(s.Track.Bounds()),
		Brush:       Brush{Pala: DefaultPala, Color: DefaultColor},
		world:       s,
		interaction: render.NoInteraction{},
		frame:       frameTexture(),
		swatch:      swatchTexture(),
	}
}

// View returns the current view.
func (e *Editor) View() View {
	return e.view
}

// paneShown reports whether the PALA pane is drawn. The texture editor
// always shows it.
func (e *Editor) paneShown() bool {
	return e.PaneOpen || e.view == ViewTexEdit
}

// trackChanged drops the cached top-down textures after an edit.
func (e *Editor) trackChanged() {
	e.minimap = nil
	e.topdown = nil
	e.unsaved = true
}

// World returns the scene the editor draws.
func (e *Editor) World() *track.Scene {
	return e.world
}

// Interaction returns what a click would currently act on.
func (e *Editor) Interaction() render.Interaction {
	return e.interaction
}

// Unsaved reports whether the track was modified.
func (e *Editor) Unsaved() bool {
	return e.unsaved
}

// Quit reports whether the user asked to exit.
func (e *Editor) Quit() bool {
	return e.quit
}

// Scene returns the world-space triangles around the camera. With p set,
// props whose bounds fall outside p's viewport are skipped. Only the main
// view has a scene. The returned slice is reused by the next call.
func (e *Editor) Scene(p *render.Pipeline) []render.Triangle {
	if e.view != ViewMain {
		e.scene = e.scene[:0]
		return e.scene
	}
	x, z := e.Camera.TilePosition()
	v := track.View{TileX: x, TileZ: z, RealWater: e.RealWater}

	if g := e.hovered; g != nil && !e.editing && !e.Camera.IsMoving() {
		v.Highlight = &track.Highlight{X: g.X, Z: g.Z, Pala: e.Brush.Pala, Brush: e.Brush.Size}
	}
	if p != nil {
		m := p.Matrix(e.Camera)
		v.Visible = func(box render.AABB) bool { return p.BoxVisible(m, box) }
	}

	e.scene = e.world.Append(e.scene[:0], v)
	return e.scene
}

// Frame draws the scene and the interface with r, then updates the hover
// state from what ended up under the cursor.
func (e *Editor) Frame(r *render.Renderer, cursorX, cursorY int) render.FrameResult {
	w, h := r.Pipeline().Size()
	res := r.Frame(e.Camera, e.Scene(r.Pipeline()), e.Overlay(w, h), cursorX, cursorY, e.Wireframe)
	e.Hover(res)
	return res
}

// Hover records the triangle under the cursor as the next interaction.
// While a prop is dragged the interaction is held. While terrain is being
// edited only ground may take over, and while a button is held only an
// interaction of the same kind.
func (e *Editor) Hover(res render.FrameResult) {
	if e.dragging {
		return
	}
	e.hovered = nil
	if res.Hit == render.NoHit {
		e.interaction = render.NoInteraction{}
		return
	}

	in := res.Interaction
	if g, ok := in.(render.Ground); ok {
		e.hovered = &g
	}
	if e.editing && in.Kind() != render.KindGround {
		return
	}
	if e.locked && in.Kind() != e.interaction.Kind() {
		return
	}
	e.interaction = in
}

// Status returns the info line shown under the scene: the hovered PALA in
// the pane, or the height, texture and position of the ground under the
// cursor, followed by view-specific details.
func (e *Editor) Status() string {
	var s string
	switch g, ground := e.interaction.(render.Ground); {
	case e.paneShown() && e.insidePane:
		if e.paneHover < track.Selectable {
			s = fmt.Sprintf("PALA# %3d", e.paneHover)
		} else {
			s = "PALA# ---"
		}
	case ground && !e.Camera.IsMoving():
		s = fmt.Sprintf("H:%+.3d P:%.3d X,Y:%.3d,%.3d",
			e.Track.HeightAt(g.GlobalX, g.GlobalZ),
			e.Track.TileAt(g.GlobalX, g.GlobalZ),
			g.GlobalX, g.GlobalZ)
	default:
		s = "H:---- P:--- X,Y:---,---"
	}
	switch e.view {
	case ViewTexEdit:
		return s + fmt.Sprintf("  PALA:%d COLOR:%d", e.Brush.Pala, e.Brush.Color)
	case ViewPaint:
		s += fmt.Sprintf("  TRACK SIZE:%d,%d", e.Track.Width, e.Track.Height)
	}
	if e.RealWater {
		s += "  REAL WATER HEIGHT"
	}
	return s
}
