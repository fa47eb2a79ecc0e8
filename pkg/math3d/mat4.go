package math3d

import (
	"errors"
	"math"
)

// ErrAliasedOperands is returned by MulInto when the destination shares
// storage with an operand, or both operands are the same matrix.
var ErrAliasedOperands = errors.New("math3d: aliased matrix multiply operands")

// Mat4 is a 4x4 matrix stored in column-major order.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotateFixed builds the rotation X * (Z * Y) from three packed angles using
// the sine lookup table.
func RotateFixed(x, y, z Angle) Mat4 {
	rx := Identity()
	rx[5], rx[9] = x.Cos(), -x.Sin()
	rx[6], rx[10] = x.Sin(), x.Cos()

	ry := Identity()
	ry[0], ry[8] = y.Cos(), -y.Sin()
	ry[2], ry[10] = y.Sin(), y.Cos()

	rz := Identity()
	rz[0], rz[4] = z.Cos(), -z.Sin()
	rz[1], rz[5] = z.Sin(), z.Cos()

	return rx.Mul(rz.Mul(ry))
}

// Perspective creates a left-handed perspective projection matrix that
// leaves view depth in W.
// fovy is vertical field of view in radians.
// aspect is width/height.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	tanHalf := math.Tan(fovy / 2)
	zRange := near - far

	var m Mat4
	m[0] = 1 / (tanHalf * aspect)
	m[5] = 1 / tanHalf
	m[10] = (-near - far) / zRange
	m[14] = 2 * far * near / zRange
	m[11] = 1
	return m
}

// ScreenSpace maps normalized device coordinates to pixel coordinates,
// flipping Y so that row 0 is the top of the screen.
func ScreenSpace(halfWidth, halfHeight float64) Mat4 {
	m := Identity()
	m[0] = halfWidth
	m[12] = halfWidth - 0.5
	m[5] = -halfHeight
	m[13] = halfHeight - 0.5
	return m
}

// MulInto stores a * b in dst. The three matrices must be distinct.
func MulInto(dst, a, b *Mat4) error {
	if dst == a || dst == b || a == b {
		return ErrAliasedOperands
	}
	for col := range 4 {
		for row := range 4 {
			dst[row+col*4] = a[row]*b[col*4] +
				a[row+4]*b[1+col*4] +
				a[row+8]*b[2+col*4] +
				a[row+12]*b[3+col*4]
		}
	}
	return nil
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	// a, b and m are separate copies here.
	if err := MulInto(&m, &a, &b); err != nil {
		panic(err)
	}
	return m
}

// MulVec4 transforms a homogeneous vertex.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// ApproxEqual reports whether every element of a and b differs by at most eps.
//
//nolint:st1016 // a,b naming convention is clearer for comparison
func (a Mat4) ApproxEqual(b Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
