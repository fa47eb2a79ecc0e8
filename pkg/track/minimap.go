package track

import (
	"fmt"

	"github.com/taigrr/rgeo/pkg/render"
)

// Minimap renders a top-down view of the tilemap into a size x size
// texture, one texel per sampled tile, colored with each PALA's base
// color. Size must be a valid texture size.
func (t *Track) Minimap(p *Palat, size int) (*render.Texture, error) {
	tex, err := render.NewTexture(size, size)
	if err != nil {
		return nil, fmt.Errorf("track: minimap: %w", err)
	}
	for y := range size {
		for x := range size {
			tile := t.TileAt(x*t.Width/size, y*t.Height/size)
			tex.SetPixel(x, y, p.BaseColor(tile))
		}
	}
	return tex, nil
}
