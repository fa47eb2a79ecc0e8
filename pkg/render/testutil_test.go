package render

import (
	"testing"

	"github.com/taigrr/rgeo/pkg/palette"
)

// newTestTarget creates a cleared framebuffer with the daylight palette and a
// rasterizer with fog disabled.
func newTestTarget(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height, palette.Builtin(0))
	r := NewRasterizer(fb)
	r.Fog = FogParams{}
	return r, fb
}

// screenTri builds a screen-space triangle with W = 0.
func screenTri(x0, y0, x1, y1, x2, y2 float64, fill Fill) Triangle {
	t := Triangle{
		V: [3]Vertex{
			V(x0, y0, 0, 0, 0),
			V(x1, y1, 0, 0, 0),
			V(x2, y2, 0, 0, 0),
		},
		Fill: fill,
	}
	for i := range t.V {
		t.V[i].Pos.W = 0
	}
	return t
}

// painted returns the set of pixels that differ from the cleared color.
func painted(fb *Framebuffer) map[[2]int]BGRA {
	out := make(map[[2]int]BGRA)
	blank := BGRA{A: 255}
	for y := range fb.Height {
		for x := range fb.Width {
			if c := fb.At(x, y); c != blank {
				out[[2]int{x, y}] = c
			}
		}
	}
	return out
}

func paletteColor(t *testing.T, fb *Framebuffer, idx int) BGRA {
	t.Helper()
	return bgra(fb.Palette.At(idx))
}

// newCheckerTexture creates a checkerboard texture.
func newCheckerTexture(size, checkSize int, c1, c2 uint8) (*Texture, error) {
	tex, err := NewTexture(size, size)
	if err != nil {
		return nil, err
	}
	for y := range size {
		for x := range size {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex, nil
}
