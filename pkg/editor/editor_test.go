package editor

import (
	"strings"
	"testing"
	"time"

	"github.com/taigrr/rgeo/pkg/models"
	"github.com/taigrr/rgeo/pkg/palette"
	"github.com/taigrr/rgeo/pkg/render"
	"github.com/taigrr/rgeo/pkg/track"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	tr, err := track.New(64, 64)
	if err != nil {
		t.Fatalf("track.New: %v", err)
	}
	tr.Props = []track.PropInstance{
		{Kind: models.KindStartingLine, Pos: [3]int{800, 0, 800}},
		{Kind: models.KindTree, Pos: [3]int{1000, 0, 1000}},
	}
	return New(track.NewScene(tr))
}

// hit fakes a frame whose cursor landed on a triangle tagged in.
func hit(in render.Interaction) render.FrameResult {
	return render.FrameResult{Hit: 0, Interaction: in}
}

var miss = render.FrameResult{Hit: render.NoHit, Interaction: render.NoInteraction{}}

// center is an input with the cursor in the middle of a native-sized
// framebuffer, away from the scrolling edges.
func center() Input {
	return Input{CursorX: 160, CursorY: 100, Width: NativeWidth, Height: NativeHeight, Elapsed: 100 * time.Millisecond}
}

func TestPress(t *testing.T) {
	tests := []struct {
		name  string
		key   Key
		check func(e *Editor) bool
	}{
		{"pane", KeyPane, func(e *Editor) bool { return e.PaneOpen }},
		{"camera", KeyCamera, func(e *Editor) bool { return e.Camera.TopDown() }},
		{"wireframe", KeyWireframe, func(e *Editor) bool { return e.Wireframe }},
		{"smoothing", KeySmoothing, func(e *Editor) bool { return e.Brush.Smoothing }},
		{"water", KeyWater, func(e *Editor) bool { return e.RealWater }},
		{"exit", KeyExit, func(e *Editor) bool { return e.Quit() }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(t)
			if tc.check(e) {
				t.Fatal("already set before the key press")
			}
			e.Press(tc.key)
			if !tc.check(e) {
				t.Error("key press had no effect")
			}
			if tc.key != KeyExit {
				e.Press(tc.key)
				if tc.check(e) {
					t.Error("second press should toggle back")
				}
			}
		})
	}
}

func TestBrushSizeKeys(t *testing.T) {
	e := newTestEditor(t)
	if e.Brush.Size != 0 || e.Brush.Pala != DefaultPala {
		t.Fatalf("initial brush = %+v", e.Brush)
	}
	want := map[Key]int{KeyBrush1: 0, KeyBrush2: 1, KeyBrush3: 2, KeyBrush4: 3, KeyBrush5: 8}
	for k, size := range want {
		e.Press(k)
		if e.Brush.Size != size {
			t.Errorf("key %d: size = %d, want %d", k, e.Brush.Size, size)
		}
	}
}

func TestHover(t *testing.T) {
	ground := render.Ground{X: 1, Z: 2, GlobalX: 14, GlobalZ: 36, Main: true}
	prop := render.Prop{Index: 1}

	t.Run("miss clears", func(t *testing.T) {
		e := newTestEditor(t)
		e.Hover(hit(ground))
		e.Hover(miss)
		if e.Interaction().Kind() != render.KindNone {
			t.Errorf("interaction = %v, want none", e.Interaction().Kind())
		}
	})

	t.Run("editing terrain keeps ground", func(t *testing.T) {
		e := newTestEditor(t)
		e.Hover(hit(ground))
		in := center()
		in.Left = true
		e.Update(in)
		e.Hover(hit(prop))
		if _, ok := e.Interaction().(render.Ground); !ok {
			t.Errorf("interaction = %T, want ground while editing", e.Interaction())
		}
	})

	t.Run("lock keeps kind", func(t *testing.T) {
		e := newTestEditor(t)
		e.Hover(hit(render.NoInteraction{}))
		in := center()
		in.Middle = true
		e.Update(in)
		e.Hover(hit(ground))
		if e.Interaction().Kind() != render.KindNone {
			t.Errorf("interaction = %v, want none while locked", e.Interaction().Kind())
		}

		e.Update(center())
		e.Hover(hit(ground))
		if e.Interaction().Kind() != render.KindGround {
			t.Errorf("interaction = %v after release, want ground", e.Interaction().Kind())
		}
	})

	t.Run("dragging holds the prop", func(t *testing.T) {
		e := newTestEditor(t)
		e.Hover(hit(prop))
		in := center()
		in.Left = true
		e.Update(in)
		e.Hover(miss)
		if e.Interaction() != prop {
			t.Errorf("interaction = %+v, want the dragged prop", e.Interaction())
		}
	})
}

func TestGroundHeightEditing(t *testing.T) {
	tests := []struct {
		name       string
		left       bool
		right      bool
		smoothing  bool
		wantHeight int
	}{
		{"raise", true, false, false, 5},
		{"lower", false, true, false, -5},
		{"smooth single tile", true, false, true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(t)
			e.Brush.Smoothing = tc.smoothing
			e.Hover(hit(render.Ground{GlobalX: 20, GlobalZ: 30}))

			in := center()
			in.Left, in.Right = tc.left, tc.right
			e.Update(in)

			if got := e.Track.HeightAt(20, 30); got != tc.wantHeight {
				t.Errorf("height = %d, want %d", got, tc.wantHeight)
			}
			if e.Unsaved() != (tc.wantHeight != 0 || tc.smoothing) {
				t.Errorf("unsaved = %v", e.Unsaved())
			}
		})
	}
}

func TestHeightFractionCarries(t *testing.T) {
	e := newTestEditor(t)
	e.Hover(hit(render.Ground{GlobalX: 20, GlobalZ: 30}))

	in := center()
	in.Left = true
	in.Elapsed = 10 * time.Millisecond // half a height unit per frame
	for range 4 {
		e.Update(in)
	}
	if got := e.Track.HeightAt(20, 30); got != 2 {
		t.Errorf("height = %d, want 2", got)
	}

	in.Elapsed = 2 * time.Second
	e.Update(in)
	if got := e.Track.HeightAt(20, 30); got != 2 {
		t.Errorf("a stalled frame changed the height to %d", got)
	}
}

func TestMiddleButtonPaints(t *testing.T) {
	e := newTestEditor(t)
	e.Brush.Pala = 99
	e.Press(KeyBrush2)
	e.Hover(hit(render.Ground{GlobalX: 20, GlobalZ: 30}))

	in := center()
	in.Middle = true
	e.Update(in)

	for z := 29; z <= 31; z++ {
		for x := 19; x <= 21; x++ {
			if got := e.Track.TileAt(x, z); got != 99 {
				t.Errorf("tile (%d, %d) = %d, want 99", x, z, got)
			}
		}
	}
	if e.Track.TileAt(22, 30) == 99 {
		t.Error("painted outside the brush")
	}
	if !e.Unsaved() {
		t.Error("painting should mark the track unsaved")
	}
}

func TestEdgeScroll(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		wantDX int // change of -Position()[0]
		wantDZ int // change of Position()[2]
	}{
		{"left", 0, 100, -140, 0},
		{"right", 319, 100, 140, 0},
		{"top", 160, 0, 0, -240},
		{"middle", 160, 100, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(t)
			start := e.Camera.Position()

			in := center()
			in.CursorX, in.CursorY = tc.x, tc.y
			e.Update(in)

			pos := e.Camera.Position()
			dx, dz := start[0]-pos[0], pos[2]-start[2]
			// Rounding toward zero may lose a unit to the carried fraction.
			if abs(dx-tc.wantDX) > 1 || abs(dz-tc.wantDZ) > 1 {
				t.Errorf("moved (%d, %d), want about (%d, %d)", dx, dz, tc.wantDX, tc.wantDZ)
			}
			if e.Camera.IsMoving() != (tc.wantDX != 0 || tc.wantDZ != 0) {
				t.Errorf("IsMoving = %v", e.Camera.IsMoving())
			}
		})
	}
}

func TestPanAccumulates(t *testing.T) {
	e := newTestEditor(t)
	start := e.Camera.Position()

	in := center()
	in.Pan = [2]float64{0.5, 0}
	e.Update(in)
	if e.Camera.IsMoving() {
		t.Fatal("half a unit should not move the camera yet")
	}
	e.Update(in)
	if got := start[0] - e.Camera.Position()[0]; got != 1 {
		t.Errorf("moved %d units, want 1", got)
	}
}

func TestNoScrollInsidePane(t *testing.T) {
	e := newTestEditor(t)
	e.Press(KeyPane)
	e.Hover(hit(render.PalettePane{}))

	in := center()
	in.CursorX, in.CursorY = 2, 2
	e.Update(in)
	if e.Camera.IsMoving() {
		t.Error("camera scrolled while the cursor was in the pane")
	}
}

func TestPaneSelectsPala(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"first cell", 1, 1, 0},
		{"second row", 20, 12, 13},
		{"last selectable", 8*8 + 1, 22*8 + 1, 250},
		{"reserved", 9*8 + 1, 22*8 + 1, DefaultPala},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(t)
			e.Press(KeyPane)
			e.Hover(hit(render.PalettePane{}))

			in := center()
			in.CursorX, in.CursorY = tc.x, tc.y
			in.Left = true
			e.Update(in)
			if e.Brush.Pala != tc.want {
				t.Errorf("pala = %d, want %d", e.Brush.Pala, tc.want)
			}
		})
	}
}

func TestPropDrag(t *testing.T) {
	e := newTestEditor(t)
	e.Hover(hit(render.Prop{Index: 1}))

	in := center()
	in.Left = true
	e.Update(in)
	if got := e.Track.Props[1].Pos; got != [3]int{1000, 0, 1000} {
		t.Fatalf("prop moved to %v before the cursor did", got)
	}

	in.CursorX += 10
	in.CursorY += 4
	e.Update(in)
	if got := e.Track.Props[1].Pos; got != [3]int{1050, 0, 1064} {
		t.Errorf("prop at %v, want [1050 0 1064]", got)
	}
	if !e.Unsaved() {
		t.Error("dragging should mark the track unsaved")
	}

	e.Press(KeyPane)
	if e.PaneOpen {
		t.Error("pane key opened the pane while dragging")
	}
	if e.Track.Props[1].Kind != models.KindTree.Next() {
		t.Errorf("kind = %v, want %v", e.Track.Props[1].Kind, models.KindTree.Next())
	}

	e.Update(center())
	e.Hover(miss)
	if e.Interaction().Kind() != render.KindNone {
		t.Error("releasing the button should let the hover change")
	}
}

func TestStartingLineNotDragged(t *testing.T) {
	e := newTestEditor(t)
	e.Hover(hit(render.Prop{Index: 0}))

	in := center()
	in.Left = true
	e.Update(in)
	in.CursorX += 10
	e.Update(in)
	if got := e.Track.Props[0].Pos; got != [3]int{800, 0, 800} {
		t.Errorf("starting line moved to %v", got)
	}
	if e.Unsaved() {
		t.Error("a rejected move should not mark the track unsaved")
	}
}

func TestStatus(t *testing.T) {
	e := newTestEditor(t)
	if got := e.Status(); got != "H:---- P:--- X,Y:---,---" {
		t.Errorf("idle status = %q", got)
	}

	if err := e.Track.SetHeight(14, 36, -7); err != nil {
		t.Fatal(err)
	}
	e.Hover(hit(render.Ground{GlobalX: 14, GlobalZ: 36}))
	if got, want := e.Status(), "H:-007 P:003 X,Y:014,036"; got != want {
		t.Errorf("ground status = %q, want %q", got, want)
	}

	e.Press(KeyWater)
	if !strings.HasSuffix(e.Status(), "REAL WATER HEIGHT") {
		t.Errorf("status %q lacks the real water marker", e.Status())
	}

	e.Press(KeyPane)
	e.Hover(hit(render.PalettePane{}))
	in := center()
	in.CursorX, in.CursorY = 20, 12
	e.Update(in)
	if got := e.Status(); !strings.HasPrefix(got, "PALA#  13") {
		t.Errorf("pane status = %q", got)
	}
	in.CursorX, in.CursorY = 10*8+1, 22*8+1
	e.Update(in)
	if got := e.Status(); !strings.HasPrefix(got, "PALA# ---") {
		t.Errorf("reserved pane status = %q", got)
	}
}

func TestSceneHighlight(t *testing.T) {
	e := newTestEditor(t)
	e.Brush.Pala = 77
	e.Hover(hit(render.Ground{X: 2, Z: 1}))

	tris := e.Scene(nil)
	i := (1*track.DrawTiles + 2) * 2
	if tris[i].Fill.(render.Textured).Texture != e.World().Palat.Pala(77) {
		t.Error("hovered tile not drawn with the brush pala")
	}

	// No highlight while the ground is being edited.
	in := center()
	in.Left = true
	e.Update(in)
	tris = e.Scene(nil)
	if tris[i].Fill.(render.Textured).Texture == e.World().Palat.Pala(77) {
		t.Error("tile highlighted while editing terrain")
	}
}

func TestOverlay(t *testing.T) {
	e := newTestEditor(t)
	ui := e.Overlay(NativeWidth, NativeHeight)
	if len(ui) != 10 {
		t.Fatalf("closed pane: %d triangles, want 10", len(ui))
	}
	for _, tri := range ui {
		for _, v := range tri.V {
			if v.Pos.W != 1 || v.Pos.Z != 0 {
				t.Fatalf("vertex %v not in screen space", v.Pos)
			}
		}
	}

	e.Press(KeyPane)
	e.Brush.Pala = 12
	ui = e.Overlay(NativeWidth, NativeHeight)
	pane := ui[10:]
	if len(pane) != PaneColumns*PaneRows*2+2 {
		t.Fatalf("pane: %d triangles, want %d", len(pane), PaneColumns*PaneRows*2+2)
	}
	for _, tri := range pane[:len(pane)-2] {
		if tri.Kind() != render.KindPalettePane {
			t.Fatalf("pane cell kind = %v", tri.Kind())
		}
	}
	sel := pane[len(pane)-2]
	if sel.Kind() != render.KindIgnore {
		t.Errorf("selection frame kind = %v, want ignore", sel.Kind())
	}
	// Pala 12 is column 1 of row 1.
	if sel.V[0].Pos.X != 8 || sel.V[0].Pos.Y != 8 {
		t.Errorf("selection frame at (%v, %v), want (8, 8)", sel.V[0].Pos.X, sel.V[0].Pos.Y)
	}
}

func TestFramePicksInterface(t *testing.T) {
	e := newTestEditor(t)
	r := render.NewRenderer(NativeWidth, NativeHeight, palette.Builtin(0))

	res := e.Frame(r, 160, 100)
	if res.Interaction.Kind() != render.KindGround {
		t.Fatalf("screen center picked %v, want ground", res.Interaction.Kind())
	}

	e.Press(KeyPane)
	e.Frame(r, 4, 4)
	if e.Interaction().Kind() != render.KindPalettePane {
		t.Errorf("pane corner picked %v, want the pane", e.Interaction().Kind())
	}

	e.Frame(r, 290, 10)
	if e.Interaction().Kind() != render.KindNone {
		t.Errorf("minimap picked %v, want none", e.Interaction().Kind())
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func BenchmarkFrame(b *testing.B) {
	tr, err := track.Generate(128, 128, 1)
	if err != nil {
		b.Fatal(err)
	}
	e := New(track.NewScene(tr))
	r := render.NewRenderer(NativeWidth, NativeHeight, palette.Builtin(0))
	in := center()
	for b.Loop() {
		e.Update(in)
		e.Frame(r, in.CursorX, in.CursorY)
	}
}
