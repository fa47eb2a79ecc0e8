package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"os"

	_ "github.com/ftrvxmtrx/tga" // Register TGA decoder

	"github.com/taigrr/rgeo/pkg/palette"
)

// MaxTextureSize is the largest allowed texture side.
const MaxTextureSize = 256

// ErrTextureSize is returned for textures that are not power-of-two squares
// no larger than MaxTextureSize.
var ErrTextureSize = errors.New("render: texture must be a power-of-two square of at most 256 px")

// WrapMode determines how texel coordinates outside the texture are handled.
type WrapMode int

const (
	WrapClamp  WrapMode = iota // Clamp to edge
	WrapRepeat                 // Tile the texture
)

// Texture is a square palette-indexed image.
type Texture struct {
	Width  int
	Height int
	Pixels []uint8 // Row-major palette indices

	// Filtered is a hint for hardware presenters. The software fill always
	// point-samples.
	Filtered bool
	Wrap     WrapMode
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) (*Texture, error) {
	if width != height || width <= 0 || width > MaxTextureSize || width&(width-1) != 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrTextureSize, width, height)
	}
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]uint8, width*height),
	}, nil
}

// LoadTexture loads an image file and quantizes it to pal's primaries.
func LoadTexture(path string, pal *palette.Palette) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return TextureFromImage(img, pal)
}

// TextureFromImage quantizes an image to pal's primaries. Fully transparent
// pixels become index 0.
func TextureFromImage(img image.Image, pal *palette.Palette) (*Texture, error) {
	bounds := img.Bounds()
	tex, err := NewTexture(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := range tex.Height {
		for x := range tex.Width {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			if _, _, _, a := c.RGBA(); a == 0 {
				continue
			}
			tex.SetPixel(x, y, pal.Nearest(c))
		}
	}

	return tex, nil
}

// SetPixel sets a texel. Out-of-range coordinates are ignored.
func (t *Texture) SetPixel(x, y int, c uint8) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the texel at (x, y) with bounds checking.
func (t *Texture) GetPixel(x, y int) uint8 {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return 0
	}
	return t.Pixels[y*t.Width+x]
}

// At point-samples the texel containing texel-space coordinate (u, v).
func (t *Texture) At(u, v float64) uint8 {
	x := wrapTexel(int(u), t.Width, t.Wrap)
	y := wrapTexel(int(v), t.Height, t.Wrap)
	return t.Pixels[y*t.Width+x]
}

// wrapTexel applies the wrap mode to an integer texel coordinate.
func wrapTexel(x, size int, mode WrapMode) int {
	switch mode {
	case WrapRepeat:
		x &= size - 1
	default:
		if x < 0 {
			x = 0
		} else if x >= size {
			x = size - 1
		}
	}
	return x
}

// valid reports whether the texture is a non-empty square with pixel data
// matching its size.
func (t *Texture) valid() bool {
	return t != nil && t.Width > 0 && t.Height == t.Width && len(t.Pixels) >= t.Width*t.Height
}

// Image renders the texture through pal, for previews and debugging.
func (t *Texture) Image(pal *palette.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := range t.Height {
		for x := range t.Width {
			img.SetRGBA(x, y, pal.At(int(t.Pixels[y*t.Width+x])))
		}
	}
	return img
}
