package main

import (
	"fmt"
	"time"

	"github.com/taigrr/rgeo/pkg/editor"
)

// HUD renders the status line under the scene
type HUD struct {
	name      string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	ShowFPS   bool
}

// NewHUD creates a new HUD
func NewHUD(name string) *HUD {
	return &HUD{
		name:    name,
		fpsTime: time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the status line on the bottom terminal row
func (h *HUD) Render(width, height int, e *editor.Editor) {
	// ANSI escape codes for positioning and styling
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	fmt.Print(moveTo(height, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + fmt.Sprintf("%s%s %s %s", bgBlack, fgWhite, e.Status(), reset))

	smooth := "[ ]"
	if e.Brush.Smoothing {
		smooth = "[✓]"
	}
	brush := fmt.Sprintf("%s%s%s PALA:%d *%d %s smooth %s", bgBlack, bold, fgYellow,
		e.Brush.Pala, e.Brush.Size+1, smooth, reset)
	fmt.Print(moveTo(height, max(width-30, 1)) + brush)

	if h.ShowFPS {
		fpsStr := fmt.Sprintf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)
		fmt.Print(fpsStr)
	}

	if e.Unsaved() {
		title := fmt.Sprintf("%s%s%s %s* %s", bold, bgBlack, fgWhite, h.name, reset)
		fmt.Print(moveTo(1, max((width-len(h.name)-3)/2, 1)) + title)
	}
}
