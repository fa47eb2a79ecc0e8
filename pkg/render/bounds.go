package render

import (
	"github.com/taigrr/rgeo/pkg/math3d"
)

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// BoundsOf returns the box enclosing every vertex of tris. It returns the
// zero box for an empty slice.
func BoundsOf(tris []Triangle) AABB {
	if len(tris) == 0 {
		return AABB{}
	}
	b := AABB{Min: tris[0].V[0].Pos.Vec3(), Max: tris[0].V[0].Pos.Vec3()}
	for i := range tris {
		for _, v := range tris[i].V {
			b.Min = b.Min.Min(v.Pos.Vec3())
			b.Max = b.Max.Max(v.Pos.Vec3())
		}
	}
	return b
}

// Center returns the center of the box.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the box.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Translate returns the box moved by d.
func (b AABB) Translate(d math3d.Vec3) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// ContainsPoint returns true if the point is inside the box.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b AABB) corners() [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// BoxVisible reports whether any triangle inside box could survive the
// viewport cull under m. A box reaching behind the camera is always
// considered visible.
func (p *Pipeline) BoxVisible(m math3d.Mat4, box AABB) bool {
	w, h := float64(p.width), float64(p.height)
	var left, top, right, bottom int
	for _, c := range box.corners() {
		s := m.MulVec4(math3d.Point(c))
		if s.W <= 0 {
			return true
		}
		s = s.DivideXY()
		if s.X < 0 {
			left++
		}
		if s.Y < 0 {
			top++
		}
		if s.X >= w {
			right++
		}
		if s.Y >= h {
			bottom++
		}
	}
	return left < 8 && top < 8 && right < 8 && bottom < 8
}
