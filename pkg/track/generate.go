package track

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"os"

	"github.com/taigrr/rgeo/pkg/models"
)

// Terrain generation parameters.
const (
	noiseCell        = 8    // tiles per value-noise lattice cell
	noiseOctaves     = 3    // summed octaves, each half the cell size
	noiseAmplitude   = 220  // height range of the first octave
	defaultWater     = -40  // water surface of generated tracks
	shoreBand        = 20   // sand above the water line
	rockLine         = 140  // heights above this are rock
	propsPerTileArea = 96   // one random prop per this many tiles
	grayToHeight     = 3    // heightmap gray step in height units
	shrubChance      = 0.03 // per grass tile
	spectatorChance  = 0.01
	poleChance       = 0.005
)

// Generate builds a track with value-noise terrain, a tilemap derived from
// height and scattered props. The starting line is prop 0, at the center.
// The same seed always gives the same track.
func Generate(width, height int, seed uint64) (*Track, error) {
	t, err := New(width, height)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))

	amp := float64(noiseAmplitude)
	cell := noiseCell
	for range noiseOctaves {
		lattice := newLattice(width/cell+2, height/cell+2, rng)
		for z := range height {
			for x := range width {
				n := lattice.sample(float64(x)/float64(cell), float64(z)/float64(cell))
				t.Heights[x+z*width] += int(math.Round((n*2 - 1) * amp))
			}
		}
		amp /= 2
		cell = max(cell/2, 1)
	}
	for i, h := range t.Heights {
		t.Heights[i] = clampHeight(h)
	}

	t.WaterLevel = defaultWater
	t.classifyTiles(rng)
	t.placeProps(rng)
	return t, nil
}

// LoadHeightmap creates a track from a grayscale PNG or TGA image, one pixel
// per tile. Black is MinHeight and each gray step raises the ground by
// grayToHeight. Tiles are derived from the heights; the starting line is
// placed at the center.
func LoadHeightmap(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("track: open heightmap %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("track: decode heightmap %s: %w", path, err)
	}
	return FromHeightmap(img)
}

// FromHeightmap creates a track from a decoded heightmap image. See
// LoadHeightmap.
func FromHeightmap(img image.Image) (*Track, error) {
	b := img.Bounds()
	t, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("track: heightmap: %w", err)
	}
	for z := range t.Height {
		for x := range t.Width {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+z)).(color.Gray)
			t.Heights[x+z*t.Width] = clampHeight(MinHeight + int(g.Y)*grayToHeight)
		}
	}
	t.WaterLevel = defaultWater
	t.classifyTiles(nil)
	t.placeStart()
	return t, nil
}

// classifyTiles paints tiles by height. With rng set, grass tiles are
// randomly decorated with billboards.
func (t *Track) classifyTiles(rng *rand.Rand) {
	for i, h := range t.Heights {
		switch {
		case h < t.WaterLevel:
			t.Tiles[i] = TileWater
		case h < t.WaterLevel+shoreBand:
			t.Tiles[i] = 160 + uint8(i%4)
		case h > rockLine:
			t.Tiles[i] = 180 + uint8(i%4)
		default:
			t.Tiles[i] = TileGrass
			if rng == nil {
				continue
			}
			switch r := rng.Float64(); {
			case r < shrubChance:
				t.Tiles[i] = TileShrubSmall + uint8(rng.IntN(3))
			case r < shrubChance+spectatorChance:
				t.Tiles[i] = TileSpectators + uint8(rng.IntN(3))
			case r < shrubChance+spectatorChance+poleChance:
				t.Tiles[i] = TilePole
			}
		}
	}
}

func (t *Track) placeStart() {
	t.Props = append(t.Props[:0], PropInstance{
		Kind: models.KindStartingLine,
		Pos:  [3]int{t.Width * TileSize / 2, 0, t.Height * TileSize / 2},
	})
}

func (t *Track) placeProps(rng *rand.Rand) {
	t.placeStart()
	n := t.Width * t.Height / propsPerTileArea
	for range n {
		k := models.Kind(rng.IntN(int(models.NumKinds)))
		if !k.Movable() {
			k = k.Next()
		}
		x := rng.IntN(t.Width * TileSize)
		z := rng.IntN(t.Height * TileSize)
		if t.TileAt(x/TileSize, z/TileSize) == TileWater {
			continue
		}
		t.Props = append(t.Props, PropInstance{Kind: k, Pos: [3]int{x, 0, z}})
	}
}

// lattice is a grid of random values sampled with smoothstep bilinear
// interpolation.
type lattice struct {
	w, h   int
	values []float64
}

func newLattice(w, h int, rng *rand.Rand) *lattice {
	l := &lattice{w: w, h: h, values: make([]float64, w*h)}
	for i := range l.values {
		l.values[i] = rng.Float64()
	}
	return l
}

func (l *lattice) at(x, z int) float64 {
	x = min(max(x, 0), l.w-1)
	z = min(max(z, 0), l.h-1)
	return l.values[x+z*l.w]
}

func (l *lattice) sample(fx, fz float64) float64 {
	x0, z0 := int(fx), int(fz)
	tx, tz := smoothstep(fx-float64(x0)), smoothstep(fz-float64(z0))
	top := lerp(l.at(x0, z0), l.at(x0+1, z0), tx)
	bottom := lerp(l.at(x0, z0+1), l.at(x0+1, z0+1), tx)
	return lerp(top, bottom, tz)
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
