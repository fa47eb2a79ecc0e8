// rgeo - Terminal track editor
// Sculpt and paint a racing track's terrain in your terminal.
//
// Controls:
//
//	Mouse at edge - Scroll the camera
//	Left drag     - Raise ground / drag prop
//	Right drag    - Lower ground
//	Middle drag   - Paint ground with the brush PALA
//	W/A/S/D       - Scroll the camera
//	Tab           - Toggle the PALA pane (cycle prop kind while dragging)
//	C             - Toggle top-down camera
//	X             - Toggle wireframe
//	Space         - Toggle brush smoothing
//	R             - Toggle real water level
//	1-5           - Brush size
//	F1/P          - Toggle the tilemap paint view
//	F2/T          - Toggle the PALA texture editor
//	?             - Toggle FPS counter
//	Esc           - Back to the 3D view, or quit from it
//	Q             - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/rgeo/pkg/config"
	"github.com/taigrr/rgeo/pkg/editor"
	"github.com/taigrr/rgeo/pkg/palette"
	"github.com/taigrr/rgeo/pkg/render"
	"github.com/taigrr/rgeo/pkg/track"
)

var (
	configPath = flag.String("config", "", "Path to JSON config file")
	heightmap  = flag.String("heightmap", "", "Grayscale heightmap image (PNG/TGA) to build the track from")
	trackW     = flag.Int("width", 0, "Generated track width in tiles")
	trackH     = flag.Int("height", 0, "Generated track height in tiles")
	seed       = flag.Uint64("seed", 0, "Seed for track generation")
	palatPath  = flag.String("palat", "", "PALA texture atlas image (PNG/TGA)")
	propsDir   = flag.String("props", "", "Directory of <kind>.glb prop models")
	paletteIdx = flag.Int("palette", -1, "Built-in palette (0-3)")
	targetFPS  = flag.Int("fps", 0, "Target FPS")
	wireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	snapshot   = flag.String("snapshot", "", "Render one frame to this PNG or WebP file and exit")
	scale      = flag.Int("scale", 0, "Snapshot and window scale factor")
	window     = flag.Bool("window", false, "Open a desktop window instead of using the terminal")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rgeo - Terminal track editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rgeo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse at edge - Scroll the camera\n")
		fmt.Fprintf(os.Stderr, "  Left drag     - Raise ground / drag prop\n")
		fmt.Fprintf(os.Stderr, "  Right drag    - Lower ground\n")
		fmt.Fprintf(os.Stderr, "  Middle drag   - Paint ground\n")
		fmt.Fprintf(os.Stderr, "  W/A/S/D       - Scroll the camera\n")
		fmt.Fprintf(os.Stderr, "  Tab           - PALA pane (cycle prop while dragging)\n")
		fmt.Fprintf(os.Stderr, "  C             - Top-down camera\n")
		fmt.Fprintf(os.Stderr, "  X             - Wireframe\n")
		fmt.Fprintf(os.Stderr, "  Space         - Brush smoothing\n")
		fmt.Fprintf(os.Stderr, "  R             - Real water level\n")
		fmt.Fprintf(os.Stderr, "  1-5           - Brush size\n")
		fmt.Fprintf(os.Stderr, "  F1/P          - Tilemap paint view\n")
		fmt.Fprintf(os.Stderr, "  F2/T          - PALA texture editor\n")
		fmt.Fprintf(os.Stderr, "  ?             - FPS counter\n")
		fmt.Fprintf(os.Stderr, "  Esc           - Back to the 3D view / quit\n")
		fmt.Fprintf(os.Stderr, "  Q             - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config.Config
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	cfg.Resolve(config.Flags{
		Heightmap: *heightmap,
		Width:     *trackW,
		Height:    *trackH,
		Seed:      *seed,
		Palat:     *palatPath,
		Props:     *propsDir,
		Palette:   *paletteIdx,
		FPS:       *targetFPS,
		Wireframe: *wireframe,
		Snapshot:  *snapshot,
		Scale:     *scale,
	})

	pal, err := loadPalette(cfg)
	if err != nil {
		return err
	}
	e, name, err := newEditor(cfg, pal)
	if err != nil {
		return err
	}

	switch {
	case cfg.Snapshot != "":
		return writeSnapshot(e, pal, cfg)
	case *window:
		return runWindow(e, pal, cfg.FPS, cfg.SnapshotScale)
	}
	return runTerminal(e, pal, name, cfg.FPS)
}

func loadPalette(cfg config.Config) (*palette.Palette, error) {
	if cfg.Palette != "" {
		pal, err := palette.LoadStrip(cfg.Palette)
		if err != nil {
			return nil, fmt.Errorf("load palette: %w", err)
		}
		return pal, nil
	}
	return palette.Builtin(cfg.PaletteIndex), nil
}

// newEditor builds the track and its assets and returns an editor for it,
// along with a name for the HUD.
func newEditor(cfg config.Config, pal *palette.Palette) (*editor.Editor, string, error) {
	var (
		t    *track.Track
		name string
		err  error
	)
	if cfg.Heightmap != "" {
		t, err = track.LoadHeightmap(cfg.Heightmap)
		name = filepath.Base(cfg.Heightmap)
	} else {
		t, err = track.Generate(cfg.Width, cfg.Height, cfg.Seed)
		name = fmt.Sprintf("seed %d", cfg.Seed)
	}
	if err != nil {
		return nil, "", fmt.Errorf("load track: %w", err)
	}

	s := track.NewScene(t)
	if cfg.Palat != "" {
		if s.Palat, err = track.LoadPalat(cfg.Palat, pal); err != nil {
			return nil, "", fmt.Errorf("load palat: %w", err)
		}
	}
	if cfg.Props != "" {
		n, err := s.Props.LoadDir(cfg.Props, pal)
		if err != nil {
			return nil, "", fmt.Errorf("load props: %w", err)
		}
		fmt.Printf("Loaded %d prop models from %s\n", n, cfg.Props)
	}

	fmt.Printf("Track: %s (%dx%d tiles, %d props)\n", name, t.Width, t.Height, len(t.Props))

	e := editor.New(s)
	e.Wireframe = cfg.Wireframe
	return e, name, nil
}

// writeSnapshot renders one frame with the cursor at the center of the
// screen and saves it.
func writeSnapshot(e *editor.Editor, pal *palette.Palette, cfg config.Config) error {
	w, h := cfg.SnapshotSize[0], cfg.SnapshotSize[1]
	r := render.NewRenderer(w, h, pal)
	e.Update(editor.Input{CursorX: w / 2, CursorY: h / 2, Width: w, Height: h})
	e.Frame(r, w/2, h/2)

	fb := r.Framebuffer()
	var err error
	switch strings.ToLower(filepath.Ext(cfg.Snapshot)) {
	case ".webp":
		err = fb.SaveWebP(cfg.Snapshot, cfg.SnapshotScale)
	case ".png":
		err = fb.SavePNG(cfg.Snapshot, cfg.SnapshotScale)
	default:
		return fmt.Errorf("unsupported snapshot format: %s (use .png or .webp)", cfg.Snapshot)
	}
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	fmt.Printf("Saved: %s (%dx%d)\n", cfg.Snapshot, w*cfg.SnapshotScale, h*cfg.SnapshotScale)
	return nil
}

// terminalKeys maps key names to editor commands.
var terminalKeys = map[string]editor.Key{
	"tab":   editor.KeyPane,
	"c":     editor.KeyCamera,
	"x":     editor.KeyWireframe,
	"space": editor.KeySmoothing,
	"r":     editor.KeyWater,
	"f1":    editor.KeyPaint,
	"p":     editor.KeyPaint,
	"f2":    editor.KeyTexEdit,
	"t":     editor.KeyTexEdit,
	"1":     editor.KeyBrush1,
	"2":     editor.KeyBrush2,
	"3":     editor.KeyBrush3,
	"4":     editor.KeyBrush4,
	"5":     editor.KeyBrush5,
}

// mouseState is the pointer as last reported by the terminal, in cells.
type mouseState struct {
	x, y                int
	left, right, middle bool
}

func (m *mouseState) set(b uv.MouseButton, down bool) {
	switch b {
	case uv.MouseLeft:
		m.left = down
	case uv.MouseRight:
		m.right = down
	case uv.MouseMiddle:
		m.middle = down
	default:
		// Releases don't always say which button.
		if !down {
			m.left, m.right, m.middle = false, false, false
		}
	}
}

func runTerminal(e *editor.Editor, pal *palette.Palette, name string, fps int) error {
	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	// The bottom row holds the status line.
	fbWidth, fbHeight := render.TerminalSize(width, max(height-1, 1))
	r := render.NewRenderer(fbWidth, fbHeight, pal)

	hud := NewHUD(name)
	scroll := NewScrollState(fps)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Events are handled on the frame loop's goroutine, which owns the
	// editor and the renderer.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var mouse mouseState

	handle := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			fbWidth, fbHeight = render.TerminalSize(width, max(height-1, 1))
			r.Resize(fbWidth, fbHeight)

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape"):
				e.Press(editor.KeyBack)
			case ev.MatchString("ctrl+c", "q"):
				e.Press(editor.KeyExit)
			case ev.MatchString("w", "up"):
				scroll.Push(0, 1)
			case ev.MatchString("s", "down"):
				scroll.Push(0, -1)
			case ev.MatchString("a", "left"):
				scroll.Push(-1, 0)
			case ev.MatchString("d", "right"):
				scroll.Push(1, 0)
			case ev.MatchString("?", "shift+/"):
				hud.ShowFPS = !hud.ShowFPS
			default:
				for key, k := range terminalKeys {
					if ev.MatchString(key) {
						e.Press(k)
						break
					}
				}
			}

		case uv.MouseClickEvent:
			mouse.x, mouse.y = ev.X, ev.Y
			mouse.set(ev.Button, true)

		case uv.MouseReleaseEvent:
			mouse.x, mouse.y = ev.X, ev.Y
			mouse.set(ev.Button, false)

		case uv.MouseMotionEvent:
			mouse.x, mouse.y = ev.X, ev.Y

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				scroll.Push(0, 1)
			case uv.MouseWheelDown:
				scroll.Push(0, -1)
			}
		}
	}

	// Main loop
	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
		if e.Unsaved() {
			fmt.Fprintf(os.Stderr, "Discarded unsaved changes to %s\n", name)
		}
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

	drain:
		for {
			select {
			case ev := <-events:
				handle(ev)
			default:
				break drain
			}
		}
		if e.Quit() {
			cleanup()
			return nil
		}

		now := time.Now()
		elapsed := now.Sub(lastFrame)
		lastFrame = now
		dt := min(elapsed.Seconds(), 0.1)

		// Each terminal cell covers two framebuffer rows.
		cx, cy := mouse.x, mouse.y*2
		e.Update(editor.Input{
			CursorX: cx,
			CursorY: cy,
			Width:   fbWidth,
			Height:  fbHeight,
			Elapsed: elapsed,
			Left:    mouse.left,
			Right:   mouse.right,
			Middle:  mouse.middle,
			Pan:     scroll.Update(dt),
		})
		e.Frame(r, cx, cy)

		// Display
		r.Framebuffer().Draw(term, uv.Rectangle(image.Rect(0, 0, width, max(height-1, 1))))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, e)

		// Frame timing
		if d := time.Since(now); d < targetDuration {
			time.Sleep(targetDuration - d)
		}
	}
}
