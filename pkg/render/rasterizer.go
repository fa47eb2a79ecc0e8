package render

import (
	"sort"
)

// Rasterizer draws screen-space triangles into a framebuffer with the
// painter's algorithm. There is no depth buffer; callers order triangles
// with DepthSort first.
type Rasterizer struct {
	fb  *Framebuffer
	Fog FogParams
}

// NewRasterizer creates a rasterizer targeting fb with the default fog.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{fb: fb, Fog: DefaultFog}
}

// Framebuffer returns the render target.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// DepthSort orders triangles back to front by the sum of their Z values.
// Ties keep their input order.
func DepthSort(tris []Triangle) {
	sort.SliceStable(tris, func(i, j int) bool {
		return tris[i].SumZ() > tris[j].SumZ()
	})
}

// Rasterize fills every triangle in order. With wireframe set, the outer
// edges of ground quads are stroked over the fill.
func (r *Rasterizer) Rasterize(tris []Triangle, wireframe bool) {
	for i := range tris {
		t := &tris[i]
		r.DrawTriangle(t)
		if wireframe {
			r.strokeGround(t)
		}
	}
}

// DrawTriangle fills one screen-space triangle, shaded by its fog band.
func (r *Rasterizer) DrawTriangle(t *Triangle) {
	s := newSpan(r.fb, t, r.Fog.Offset(t.SumW()))
	s.fillTriangle(t)
}
