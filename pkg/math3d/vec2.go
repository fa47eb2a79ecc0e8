package math3d

// Vec2 holds a texture coordinate in texel units.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Lerp returns linear interpolation between a and b.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
	}
}
