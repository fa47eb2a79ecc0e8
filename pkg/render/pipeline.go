package render

import (
	"math"

	"github.com/taigrr/rgeo/pkg/math3d"
)

// Projection parameters.
const (
	FieldOfView = 25.0 // degrees, vertical
	NearClip    = 1.0
	FarClip     = 2000.0
)

// MaxScreenCoord bounds the screen-space coordinates the rasterizer accepts.
// Triangles with a vertex beyond it are dropped before rasterization so that
// the fixed-point edge stepping cannot overflow.
const MaxScreenCoord = 1 << 24

// Pipeline transforms world-space triangles into screen space.
type Pipeline struct {
	width, height int

	ground      math3d.Mat4
	perspective math3d.Mat4
	screenSpace math3d.Mat4
}

// NewPipeline creates a pipeline for a viewport of the given size.
func NewPipeline(width, height int) *Pipeline {
	p := &Pipeline{
		// Imported geometry is upside down relative to the view; flip it once.
		ground: math3d.Translate(math3d.V3(0, 0, 0)).
			Mul(math3d.RotateFixed(math3d.AngleFromDegrees(180), 0, 0)),
	}
	p.Resize(width, height)
	return p
}

// Resize rebuilds the projection for a new viewport size.
func (p *Pipeline) Resize(width, height int) {
	p.width, p.height = width, height
	p.screenSpace = math3d.ScreenSpace(float64(width)/2, float64(height)/2)
	p.perspective = math3d.Perspective(
		FieldOfView*math.Pi/180,
		float64(width)/float64(height),
		NearClip, FarClip,
	)
}

// Size returns the viewport size.
func (p *Pipeline) Size() (width, height int) {
	return p.width, p.height
}

// Matrix returns the full world-to-screen transform for cam:
// screen * perspective * (direction * (position * ground)).
func (p *Pipeline) Matrix(cam *Camera) math3d.Mat4 {
	var tmp, world, clip, screen math3d.Mat4
	pos := cam.PositionMatrix()
	dir := cam.DirectionMatrix()

	must(math3d.MulInto(&tmp, &pos, &p.ground))
	must(math3d.MulInto(&world, &dir, &tmp))
	must(math3d.MulInto(&clip, &p.perspective, &world))
	must(math3d.MulInto(&screen, &p.screenSpace, &clip))
	return screen
}

// TransformAndCull returns the screen-space copies of tris that may be
// visible, in input order. X and Y are divided by W; Z and W are kept.
func (p *Pipeline) TransformAndCull(cam *Camera, tris []Triangle) []Triangle {
	return p.Transform(p.Matrix(cam), tris, make([]Triangle, 0, len(tris)))
}

// Transform appends to dst the triangles of src transformed by m and
// perspective-divided, dropping the ones wholly outside the viewport.
func (p *Pipeline) Transform(m math3d.Mat4, src, dst []Triangle) []Triangle {
	w, h := float64(p.width), float64(p.height)
	for _, t := range src {
		for i := range t.V {
			t.V[i].Pos = m.MulVec4(t.V[i].Pos).DivideXY()
		}
		if !onScreen(&t, w, h) || !representable(&t) {
			continue
		}
		dst = append(dst, t)
	}
	return dst
}

// onScreen rejects triangles with all three vertices beyond one viewport edge.
func onScreen(t *Triangle, w, h float64) bool {
	a, b, c := t.V[0].Pos, t.V[1].Pos, t.V[2].Pos
	switch {
	case a.X < 0 && b.X < 0 && c.X < 0:
		return false
	case a.Y < 0 && b.Y < 0 && c.Y < 0:
		return false
	case a.X >= w && b.X >= w && c.X >= w:
		return false
	case a.Y >= h && b.Y >= h && c.Y >= h:
		return false
	}
	return true
}

// representable reports whether every screen coordinate is finite and
// within MaxScreenCoord.
func representable(t *Triangle) bool {
	for _, v := range t.V {
		if !finiteWithin(v.Pos.X) || !finiteWithin(v.Pos.Y) {
			return false
		}
	}
	return true
}

func finiteWithin(f float64) bool {
	return !math.IsNaN(f) && math.Abs(f) <= MaxScreenCoord
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
