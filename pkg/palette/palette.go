// Package palette implements the 256-color indexed palette the renderer
// draws with: 32 primary colors followed by seven progressively darker
// copies used for distance shading.
package palette

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG decoder
	"os"

	_ "github.com/ftrvxmtrx/tga" // Register TGA decoder
)

const (
	// Size is the number of entries in a palette.
	Size = 256
	// NumPrimary is the number of unshaded colors at the start of the palette.
	NumPrimary = 32
	// NumShades is the number of shade bands, including the unshaded one.
	NumShades = Size / NumPrimary
)

// Palette maps a color index to RGB.
type Palette [Size]color.RGBA

// FromVGA builds a palette from primaries in the VGA 0-63 range.
// Band s (1..7) of primary c holds (c/8)*(8-s), scaled to 0-255.
func FromVGA(primaries [NumPrimary][3]uint8) *Palette {
	var p Palette
	for i, c := range primaries {
		for s := 1; s < NumShades; s++ {
			p[s*NumPrimary+i] = color.RGBA{
				R: shade(c[0], s),
				G: shade(c[1], s),
				B: shade(c[2], s),
				A: 255,
			}
		}
		p[i] = color.RGBA{R: vga(c[0]), G: vga(c[1]), B: vga(c[2]), A: 255}
	}
	return &p
}

func vga(v uint8) uint8 {
	return (v & 63) * 4
}

func shade(v uint8, band int) uint8 {
	return uint8(int(v&63) / NumShades * (NumShades - band) * 4)
}

// At returns the RGB value of the given index. It panics when idx is not a
// valid palette index.
func (p *Palette) At(idx int) color.RGBA {
	if idx < 0 || idx >= Size {
		panic(fmt.Sprintf("palette: index %d out of range", idx))
	}
	return p[idx]
}

// Nearest returns the primary color index closest to c.
func (p *Palette) Nearest(c color.Color) uint8 {
	r, g, b, _ := c.RGBA()
	best, bestDist := 0, -1
	for i := range NumPrimary {
		pc := p[i]
		dr := int(r>>8) - int(pc.R)
		dg := int(g>>8) - int(pc.G)
		db := int(b>>8) - int(pc.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// LoadStrip reads a palette from an image whose width is divided into 32
// equal swatches. The top row of each swatch is sampled at its center and
// treated as an 8-bit color.
func LoadStrip(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("palette: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("palette: decode %s: %w", path, err)
	}
	return FromImage(img)
}

// FromImage builds a palette from a swatch strip image.
func FromImage(img image.Image) (*Palette, error) {
	b := img.Bounds()
	if b.Dx() < NumPrimary {
		return nil, fmt.Errorf("palette: strip is %d px wide, need at least %d", b.Dx(), NumPrimary)
	}

	var primaries [NumPrimary][3]uint8
	swatch := b.Dx() / NumPrimary
	for i := range NumPrimary {
		r, g, bl, _ := img.At(b.Min.X+i*swatch+swatch/2, b.Min.Y).RGBA()
		primaries[i] = [3]uint8{uint8(r>>8) / 4, uint8(g>>8) / 4, uint8(bl>>8) / 4}
	}
	return FromVGA(primaries), nil
}
