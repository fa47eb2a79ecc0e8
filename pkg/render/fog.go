package render

import (
	"math"

	"github.com/taigrr/rgeo/pkg/palette"
)

// FogParams configures banded distance shading. Depth is the sum of a
// triangle's three W values.
type FogParams struct {
	DrawDistance float64 // depth at which the darkest band is used
	FadeWidth    float64 // width of the band over which shading ramps up
}

// DefaultFog matches the game's draw distance.
var DefaultFog = FogParams{
	DrawDistance: 4720 * 3,
	FadeWidth:    750 * 3,
}

// fogMaxMargin is how close to DrawDistance the darkest band starts.
const fogMaxMargin = 40

// Band returns the shade band (0 = unshaded) for a triangle at the given
// depth. A zero DrawDistance disables fog.
func (f FogParams) Band(depth float64) int {
	if f.DrawDistance <= 0 {
		return 0
	}

	const maxBand = palette.NumShades - 1
	residual := f.DrawDistance - f.FadeWidth

	switch {
	case depth >= f.DrawDistance-fogMaxMargin:
		return maxBand
	case depth > residual:
		m := math.Min(1, (depth-residual)/f.FadeWidth)
		return min(int(math.Floor(m*maxBand)), maxBand)
	default:
		return 0
	}
}

// Offset returns the palette offset to add to every index of a triangle at
// the given depth.
func (f FogParams) Offset(depth float64) int {
	return f.Band(depth) * palette.NumPrimary
}
