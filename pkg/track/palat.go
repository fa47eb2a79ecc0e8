package track

import (
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"os"

	_ "github.com/ftrvxmtrx/tga" // Register TGA decoder
	"golang.org/x/image/draw"

	"github.com/taigrr/rgeo/pkg/palette"
	"github.com/taigrr/rgeo/pkg/render"
)

// PALA layout.
const (
	PalaSize = 16  // texels per PALA side
	NumPalat = 256 // PALAs in a set

	// Selectable is the number of PALAs the palette pane offers for
	// painting. Higher indices are reserved for billboard decoration.
	Selectable = 251
)

// Tile codes with special meaning.
const (
	TileWater        uint8 = 0
	TileGrass        uint8 = 3
	TileSpectators   uint8 = 240 // 240..242
	TileShrubSmall   uint8 = 243
	TileShrubMedium  uint8 = 244
	TileShrubLarge   uint8 = 245
	TilePole         uint8 = 246 // 246..247
	TileBridge       uint8 = 248 // 248..249
	TileTallPole     uint8 = 250
	lastBillboard    uint8 = 250
	firstBillboard   uint8 = TileSpectators
	tileBridgeAlt    uint8 = 249
	tileSpectatorsHi uint8 = 242
)

// PALAs drawn by billboards and bridges rather than painted on the ground.
const (
	PalaBridge         uint8 = 177
	PalaShrubSmall     uint8 = 208
	PalaShrubMedium    uint8 = 209
	PalaShrubLarge     uint8 = 210
	PalaPole           uint8 = 211
	PalaTallPole       uint8 = 212
	PalaSpectatorFirst uint8 = 236
	numSpectatorSkins        = 4
	spectatorRowRepeat       = 16
)

// Palat is a full set of PALA ground textures, plus the water level overlay.
type Palat struct {
	palas [NumPalat]*render.Texture
	water *render.Texture
}

// NewPalat creates the procedural default PALA set.
func NewPalat() *Palat {
	p := &Palat{water: waterLevelTexture()}
	for i := range NumPalat {
		p.palas[i] = proceduralPala(uint8(i))
	}
	return p
}

// LoadPalat loads a PALA atlas: an image whose width is a multiple of
// PalaSize, read left to right, top to bottom in PalaSize cells. PALAs the
// atlas does not cover keep their procedural texture. Colors are matched
// against pal; fully transparent pixels become index 0.
func LoadPalat(path string, pal *palette.Palette) (*Palat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("track: open palat %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("track: decode palat %s: %w", path, err)
	}
	return PalatFromImage(img, pal)
}

// PalatFromImage slices an atlas image into PALAs. See LoadPalat.
func PalatFromImage(img image.Image, pal *palette.Palette) (*Palat, error) {
	b := img.Bounds()
	cols, rows := b.Dx()/PalaSize, b.Dy()/PalaSize
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("track: palat atlas is %dx%d, need at least %dx%d", b.Dx(), b.Dy(), PalaSize, PalaSize)
	}

	p := NewPalat()
	cell := image.NewNRGBA(image.Rect(0, 0, PalaSize, PalaSize))
	for i := 0; i < NumPalat && i < cols*rows; i++ {
		x, y := b.Min.X+(i%cols)*PalaSize, b.Min.Y+(i/cols)*PalaSize
		draw.Copy(cell, image.Point{}, img, image.Rect(x, y, x+PalaSize, y+PalaSize), draw.Src, nil)

		tex, err := render.TextureFromImage(cell, pal)
		if err != nil {
			return nil, fmt.Errorf("track: pala %d: %w", i, err)
		}
		p.palas[i] = tex
	}
	return p, nil
}

// Pala returns PALA i.
func (p *Palat) Pala(i uint8) *render.Texture {
	return p.palas[i]
}

// Set replaces PALA i. The texture must be PalaSize square.
func (p *Palat) Set(i uint8, tex *render.Texture) error {
	if tex == nil || tex.Width != PalaSize || tex.Height != PalaSize {
		return fmt.Errorf("track: pala %d must be %dx%d", i, PalaSize, PalaSize)
	}
	p.palas[i] = tex
	return nil
}

// SetPixel sets texel (x, y) of PALA i to palette index c.
func (p *Palat) SetPixel(i uint8, x, y int, c uint8) error {
	if x < 0 || x >= PalaSize || y < 0 || y >= PalaSize {
		return fmt.Errorf("track: texel (%d, %d) outside pala %d", x, y, i)
	}
	p.palas[i].SetPixel(x, y, c)
	return nil
}

// WaterLevel returns the translucent texture drawn at the water surface.
func (p *Palat) WaterLevel() *render.Texture {
	return p.water
}

// BaseColor returns the palette index that represents PALA i on the
// minimap.
func (p *Palat) BaseColor(i uint8) uint8 {
	return p.palas[i].Pixels[1]
}

// spectatorPala picks the spectator skin for a tile. The pattern repeats
// every spectatorRowRepeat rows.
func spectatorPala(x, z int) uint8 {
	yOffs := (z / spectatorRowRepeat) % numSpectatorSkins
	offs := ((x + numSpectatorSkins - 1) + yOffs*(numSpectatorSkins-1)) % numSpectatorSkins
	return PalaSpectatorFirst + uint8(offs)
}

// billboardPala returns the PALA drawn upright on a billboard tile.
func billboardPala(tile uint8, x, z int) (uint8, bool) {
	switch tile {
	case TileSpectators, TileSpectators + 1, tileSpectatorsHi:
		return spectatorPala(x, z), true
	case TileShrubSmall:
		return PalaShrubSmall, true
	case TileShrubMedium:
		return PalaShrubMedium, true
	case TileShrubLarge:
		return PalaShrubLarge, true
	case TilePole, TilePole + 1:
		return PalaPole, true
	case TileTallPole:
		return PalaTallPole, true
	}
	return 0, false
}

func isBridge(tile uint8) bool {
	return tile == TileBridge || tile == tileBridgeAlt
}

func isBillboard(tile uint8) bool {
	return tile >= firstBillboard && tile <= lastBillboard && !isBridge(tile)
}
