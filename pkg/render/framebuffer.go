// Package render implements the software geometry, rasterization and picking
// pipeline of the rgeo track editor.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/taigrr/rgeo/pkg/palette"
)

// BGRA is one framebuffer pixel.
type BGRA struct {
	B, G, R, A uint8
}

// RGBA implements color.Color.
func (c BGRA) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, c.A}.RGBA()
}

func bgra(c color.RGBA) BGRA {
	return BGRA{B: c.B, G: c.G, R: c.R, A: 255}
}

// Framebuffer is the render target. Pixels only ever receive colors looked up
// from Palette, which is borrowed from the caller and may be swapped between
// frames.
type Framebuffer struct {
	Width   int
	Height  int
	Pixels  []BGRA // Row-major pixel data
	Palette *palette.Palette
}

// NewFramebuffer creates a cleared framebuffer.
func NewFramebuffer(width, height int, pal *palette.Palette) *Framebuffer {
	fb := &Framebuffer{Palette: pal}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates the pixel buffer if the dimensions changed.
func (fb *Framebuffer) Resize(width, height int) {
	if width == fb.Width && height == fb.Height && fb.Pixels != nil {
		return
	}
	fb.Width = width
	fb.Height = height
	fb.Pixels = make([]BGRA, width*height)
	fb.Clear()
}

// Clear fills the framebuffer with opaque black.
func (fb *Framebuffer) Clear() {
	for i := range fb.Pixels {
		fb.Pixels[i] = BGRA{A: 255}
	}
}

// setIndex writes palette entry idx at (x, y). Callers clip.
func (fb *Framebuffer) setIndex(x, y, idx int) {
	fb.Pixels[y*fb.Width+x] = bgra(fb.Palette.At(idx))
}

// At returns the pixel at (x, y), or the zero value if out of bounds.
func (fb *Framebuffer) At(x, y int) BGRA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return BGRA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pixels {
		img.Pix[i*4+0] = p.R
		img.Pix[i*4+1] = p.G
		img.Pix[i*4+2] = p.B
		img.Pix[i*4+3] = p.A
	}
	return img
}

// Scaled returns the framebuffer enlarged by an integer factor with
// nearest-neighbour sampling, keeping the pixel-art look.
func (fb *Framebuffer) Scaled(factor int) *image.RGBA {
	src := fb.ToImage()
	if factor <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, fb.Width*factor, fb.Height*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SavePNG saves the framebuffer as a PNG file, scaled by factor.
func (fb *Framebuffer) SavePNG(path string, factor int) error {
	return fb.save(path, factor, func(w io.Writer, img image.Image) error {
		return png.Encode(w, img)
	})
}

// SaveWebP saves the framebuffer as a lossless WebP file, scaled by factor.
func (fb *Framebuffer) SaveWebP(path string, factor int) error {
	return fb.save(path, factor, func(w io.Writer, img image.Image) error {
		return nativewebp.Encode(w, img, nil)
	})
}

// save encodes the scaled framebuffer to a new file at path.
func (fb *Framebuffer) save(path string, factor int, encode func(io.Writer, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encode(f, fb.Scaled(factor)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
