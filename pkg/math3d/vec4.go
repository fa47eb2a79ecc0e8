package math3d

// Vec4 is a homogeneous point. W starts at 1 for untransformed geometry and
// is rewritten by every matrix multiplication.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point lifts a Vec3 into homogeneous space with W = 1.
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// DivideXY divides X and Y by W and leaves Z and W alone.
// A zero W leaves the vector unchanged.
func (v Vec4) DivideXY() Vec4 {
	if v.W == 0 {
		return v
	}
	return Vec4{v.X / v.W, v.Y / v.W, v.Z, v.W}
}
