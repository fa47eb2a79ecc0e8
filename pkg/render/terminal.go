package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each terminal row shows two framebuffer rows, so the framebuffer
// height should be 2x the area height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// ▀ (upper half block) with fg=top color and bg=bottom color
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.At(x, topY)),
					Bg: cellColor(fb.At(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// TerminalSize returns the framebuffer size that fills a terminal of the
// given cell dimensions.
func TerminalSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// cellColor converts a pixel to a terminal color.
func cellColor(c BGRA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return color.RGBA{c.R, c.G, c.B, 255}
}
