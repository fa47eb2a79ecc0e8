//go:build cgo

package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/rgeo/pkg/editor"
	"github.com/taigrr/rgeo/pkg/palette"
	"github.com/taigrr/rgeo/pkg/render"
)

var windowKeys = map[ebiten.Key]editor.Key{
	ebiten.KeyTab:    editor.KeyPane,
	ebiten.KeyC:      editor.KeyCamera,
	ebiten.KeyX:      editor.KeyWireframe,
	ebiten.KeySpace:  editor.KeySmoothing,
	ebiten.KeyR:      editor.KeyWater,
	ebiten.KeyF1:     editor.KeyPaint,
	ebiten.KeyF2:     editor.KeyTexEdit,
	ebiten.Key1:      editor.KeyBrush1,
	ebiten.Key2:      editor.KeyBrush2,
	ebiten.Key3:      editor.KeyBrush3,
	ebiten.Key4:      editor.KeyBrush4,
	ebiten.Key5:      editor.KeyBrush5,
	ebiten.KeyEscape: editor.KeyBack,
	ebiten.KeyQ:      editor.KeyExit,
}

// runWindow opens a desktop window showing the editor at its native
// resolution. It blocks until the window closes.
func runWindow(e *editor.Editor, pal *palette.Palette, fps, scale int) error {
	g := &windowGame{
		e:      e,
		r:      render.NewRenderer(editor.NativeWidth, editor.NativeHeight, pal),
		scroll: NewScrollState(fps),
		last:   time.Now(),
	}
	ebiten.SetWindowTitle("rgeo")
	ebiten.SetWindowSize(editor.NativeWidth*scale, editor.NativeHeight*scale)
	ebiten.SetTPS(fps)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

type windowGame struct {
	e      *editor.Editor
	r      *render.Renderer
	scroll *ScrollState
	img    *ebiten.Image
	last   time.Time
}

func (g *windowGame) Update() error {
	for key, k := range windowKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.e.Press(k)
		}
	}
	if g.e.Quit() {
		return ebiten.Termination
	}

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.scroll.Push(0, 1)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.scroll.Push(0, -1)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.scroll.Push(-1, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.scroll.Push(1, 0)
	}

	now := time.Now()
	elapsed := now.Sub(g.last)
	g.last = now

	mx, my := ebiten.CursorPosition()
	g.e.Update(editor.Input{
		CursorX: mx,
		CursorY: my,
		Width:   editor.NativeWidth,
		Height:  editor.NativeHeight,
		Elapsed: elapsed,
		Left:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Middle:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		Pan:     g.scroll.Update(min(elapsed.Seconds(), 0.1)),
	})
	g.e.Frame(g.r, mx, my)
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(editor.NativeWidth, editor.NativeHeight)
	}
	g.img.WritePixels(g.r.Framebuffer().ToImage().Pix)
	screen.DrawImage(g.img, nil)
	ebitenutil.DebugPrintAt(screen, g.e.Status(), 4, editor.NativeHeight-16)
}

func (g *windowGame) Layout(_, _ int) (int, int) {
	return editor.NativeWidth, editor.NativeHeight
}
