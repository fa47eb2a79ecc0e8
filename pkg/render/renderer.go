package render

import (
	"github.com/taigrr/rgeo/pkg/palette"
)

// FrameResult describes what one rendered frame produced.
type FrameResult struct {
	// Triangles is the screen-space scene followed by the UI triangles. Hit
	// indexes into it.
	Triangles []Triangle
	// Hit is the index of the triangle under the cursor, or NoHit.
	Hit int
	// Interaction is the hit triangle's tag, or NoInteraction on a miss.
	Interaction Interaction
}

// Renderer owns the per-session pipeline state and framebuffer.
type Renderer struct {
	pipeline *Pipeline
	raster   *Rasterizer
	screen   []Triangle
}

// NewRenderer creates a renderer for a width x height framebuffer drawn
// with pal.
func NewRenderer(width, height int, pal *palette.Palette) *Renderer {
	fb := NewFramebuffer(width, height, pal)
	return &Renderer{
		pipeline: NewPipeline(width, height),
		raster:   NewRasterizer(fb),
	}
}

// Framebuffer returns the render target.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.raster.fb
}

// Pipeline returns the transform pipeline.
func (r *Renderer) Pipeline() *Pipeline {
	return r.pipeline
}

// SetFog replaces the fog parameters.
func (r *Renderer) SetFog(f FogParams) {
	r.raster.Fog = f
}

// SetPalette swaps the palette used for subsequent frames.
func (r *Renderer) SetPalette(pal *palette.Palette) {
	r.raster.fb.Palette = pal
}

// Resize changes the output resolution.
func (r *Renderer) Resize(width, height int) {
	r.pipeline.Resize(width, height)
	r.raster.fb.Resize(width, height)
}

// Frame renders scene through cam, draws ui on top of it, and picks the
// triangle under the cursor. The returned triangle slice is reused by the
// next call.
func (r *Renderer) Frame(cam *Camera, scene, ui []Triangle, cursorX, cursorY int, wireframe bool) FrameResult {
	r.raster.fb.Clear()

	r.screen = r.pipeline.Transform(r.pipeline.Matrix(cam), scene, r.screen[:0])
	DepthSort(r.screen)
	r.raster.Rasterize(r.screen, wireframe)
	r.raster.Rasterize(ui, false)

	r.screen = append(r.screen, ui...)

	res := FrameResult{
		Triangles:   r.screen,
		Hit:         Pick(r.screen, float64(cursorX), float64(cursorY)),
		Interaction: NoInteraction{},
	}
	if res.Hit != NoHit && r.screen[res.Hit].Interaction != nil {
		res.Interaction = r.screen[res.Hit].Interaction
	}
	return res
}
