package math3d

import "math"

// Angle is a rotation packed into 16 bits: 0 is 0 degrees and 0xFFFF is just
// under a full turn.
type Angle uint16

const (
	lutSize    = 1024
	lutQuarter = lutSize / 4
)

// sinLUT holds one full sine period plus a quarter so that cosine lookups
// can index past the end without wrapping.
var sinLUT = func() [lutSize + lutQuarter]float64 {
	var lut [lutSize + lutQuarter]float64
	for i := range lut {
		lut[i] = math.Sin(float64(i) * 2 * math.Pi / lutSize)
	}
	return lut
}()

// AngleFromDegrees converts whole degrees to a packed angle.
// Negative values count backwards from a full turn.
func AngleFromDegrees(deg int) Angle {
	d := deg % 360
	if deg < 0 {
		d = 360 - (-deg % 360)
	}
	return Angle(math.Round(float64(math.MaxUint16) / 360 * float64(d)))
}

// lutIndex reduces the angle to a table index in [0, 1024).
func (a Angle) lutIndex() int {
	return int(a >> 6)
}

// Sin returns the table sine of the angle.
func (a Angle) Sin() float64 {
	return sinLUT[a.lutIndex()]
}

// Cos returns the table cosine of the angle.
func (a Angle) Cos() float64 {
	return sinLUT[a.lutIndex()+lutQuarter]
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	return float64(a) * 360 / 65536
}
