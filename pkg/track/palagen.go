package track

import "github.com/taigrr/rgeo/pkg/render"

// Palette indices used by the procedural PALAs.
var (
	waterColors   = []uint8{16, 16, 17, 16, 18}
	grassColors   = []uint8{8, 9, 9, 10, 11}
	dirtColors    = []uint8{12, 13, 13, 14, 15}
	asphaltColors = []uint8{2, 3, 3, 4}
	sandColors    = []uint8{24, 25, 26, 26, 27}
	rockColors    = []uint8{5, 6, 24, 25, 5}
	snowColors    = []uint8{6, 7, 7, 19}
	shirtColors   = [numSpectatorSkins]uint8{20, 17, 23, 28}
)

const (
	colorLane      = 7
	colorPlankDark = 12
	colorPlank     = 14
	colorWater     = 18
	colorSkin      = 26
	colorLegs      = 2
	colorTrunk     = 13
	colorPoleRed   = 20
	colorPoleWhite = 7
)

// hash mixes a PALA index and texel position into a well-spread value.
func hash(i uint8, x, y int) uint32 {
	h := uint32(i)*0x9e3779b1 ^ uint32(x)*0x85ebca6b ^ uint32(y)*0xc2b2ae35
	h ^= h >> 15
	h *= 0x2c1b3c6d
	h ^= h >> 12
	return h
}

func newPala() *render.Texture {
	tex, err := render.NewTexture(PalaSize, PalaSize)
	if err != nil {
		panic(err)
	}
	return tex
}

// speckled fills a PALA with colors picked per texel.
func speckled(i uint8, colors []uint8) *render.Texture {
	tex := newPala()
	for y := range PalaSize {
		for x := range PalaSize {
			tex.SetPixel(x, y, colors[hash(i, x, y)%uint32(len(colors))])
		}
	}
	return tex
}

// proceduralPala draws PALA i of the default set. Ground PALAs are opaque;
// billboard sprites leave their background at index 0 and are drawn with
// row 0 at ground level.
func proceduralPala(i uint8) *render.Texture {
	switch {
	case i == TileWater:
		return speckled(i, waterColors)
	case i == PalaBridge:
		return bridgePala()
	case i >= PalaShrubSmall && i <= PalaShrubLarge:
		return shrubPala(3 + int(i-PalaShrubSmall)*2)
	case i == PalaPole:
		return polePala(10)
	case i == PalaTallPole:
		return polePala(PalaSize - 1)
	case i >= PalaSpectatorFirst && i < PalaSpectatorFirst+numSpectatorSkins:
		return spectatorSprite(shirtColors[i-PalaSpectatorFirst])
	case i < 64 || i >= TileSpectators:
		return speckled(i, grassColors)
	case i < 112:
		return speckled(i, dirtColors)
	case i < 160:
		tex := speckled(i, asphaltColors)
		if i >= 120 && i < 128 {
			for y := range PalaSize {
				tex.SetPixel(7, y, colorLane)
				tex.SetPixel(8, y, colorLane)
			}
		}
		return tex
	case i < 176:
		return speckled(i, sandColors)
	case i < 208:
		return speckled(i, rockColors)
	default:
		return speckled(i, snowColors)
	}
}

func bridgePala() *render.Texture {
	tex := newPala()
	for y := range PalaSize {
		c := uint8(colorPlank)
		if y%4 == 3 {
			c = colorPlankDark
		}
		for x := range PalaSize {
			tex.SetPixel(x, y, c)
		}
	}
	return tex
}

func shrubPala(radius int) *render.Texture {
	tex := newPala()
	cx, cy := PalaSize/2, radius+2
	for y := 1; y < 3; y++ {
		tex.SetPixel(cx, y, colorTrunk)
	}
	for y := range PalaSize {
		for x := range PalaSize {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				tex.SetPixel(x, y, grassColors[hash(uint8(radius), x, y)%uint32(len(grassColors))])
			}
		}
	}
	return tex
}

func polePala(height int) *render.Texture {
	tex := newPala()
	for y := 1; y <= height; y++ {
		c := uint8(colorPoleWhite)
		if (y/2)%2 == 1 {
			c = colorPoleRed
		}
		tex.SetPixel(7, y, c)
		tex.SetPixel(8, y, c)
	}
	return tex
}

func spectatorSprite(shirt uint8) *render.Texture {
	tex := newPala()
	for y := 1; y <= 4; y++ {
		tex.SetPixel(6, y, colorLegs)
		tex.SetPixel(9, y, colorLegs)
	}
	for y := 5; y <= 10; y++ {
		for x := 5; x <= 10; x++ {
			tex.SetPixel(x, y, shirt)
		}
	}
	for y := 11; y <= 13; y++ {
		for x := 6; x <= 9; x++ {
			tex.SetPixel(x, y, colorSkin)
		}
	}
	return tex
}

// waterLevelTexture is a sparse glint pattern; index 0 texels are skipped
// so the ground below shows through.
func waterLevelTexture() *render.Texture {
	tex := newPala()
	for y := range PalaSize {
		for x := range PalaSize {
			if hash(0xff, x, y)%12 == 0 {
				tex.SetPixel(x, y, colorWater)
			}
		}
	}
	return tex
}
