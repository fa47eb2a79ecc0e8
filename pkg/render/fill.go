package render

import (
	"fmt"

	"github.com/taigrr/rgeo/pkg/math3d"
)

// fixedShift is the fractional precision of scanline edge X stepping.
const fixedShift = 16

func toFixed(f float64) int64 {
	return int64(f * (1 << fixedShift))
}

// span is the state of one scanline fill: the triangle's fill mode resolved
// against the current fog offset.
type span struct {
	fb          *Framebuffer
	flat        int // palette index for flat fills, fog included
	tex         *Texture
	transparent bool
	fog         int
}

func newSpan(fb *Framebuffer, t *Triangle, fog int) span {
	s := span{fb: fb, fog: fog}
	switch f := t.Fill.(type) {
	case Textured:
		if !f.Texture.valid() {
			panic(fmt.Sprintf("render: textured triangle without pixel data (%v)", t.Kind()))
		}
		s.tex = f.Texture
		s.transparent = f.Transparent
	case Flat:
		s.flat = int(f.Index) + fog
	case nil:
		s.flat = fog
	}
	return s
}

// fillTriangle scanline-fills a screen-space triangle by splitting it at
// the middle vertex into a flat-bottomed and a flat-topped half.
func (s *span) fillTriangle(t *Triangle) {
	high, mid, low := &t.V[0], &t.V[1], &t.V[2]
	if low.Pos.Y < mid.Pos.Y {
		low, mid = mid, low
	}
	if mid.Pos.Y < high.Pos.Y {
		mid, high = high, mid
	}
	if low.Pos.Y < mid.Pos.Y {
		low, mid = mid, low
	}

	split := splitVertex(high, mid, low)
	s.fillFlatBased(high, mid, &split)
	s.fillFlatBased(low, mid, &split)
}

// splitVertex returns the point on the high-low edge level with mid.
func splitVertex(high, mid, low *Vertex) Vertex {
	ratio := (mid.Pos.Y - high.Pos.Y) / (low.Pos.Y - high.Pos.Y)
	return Vertex{
		Pos: math3d.V4(high.Pos.X+(low.Pos.X-high.Pos.X)*ratio, mid.Pos.Y, 0, 0),
		UV:  high.UV.Lerp(low.UV, ratio),
	}
}

// edges holds the left and right edge of a flat-based triangle as it is
// walked one row at a time.
type edges struct {
	xl, xr   int64 // fixed point
	dxl, dxr int64
	ul, ur   math3d.Vec2
	dul, dur math3d.Vec2
}

func (e *edges) advance(steps int) {
	e.xl += e.dxl * int64(steps)
	e.xr += e.dxr * int64(steps)
	e.ul.X += e.dul.X * float64(steps)
	e.ul.Y += e.dul.Y * float64(steps)
	e.ur.X += e.dur.X * float64(steps)
	e.ur.Y += e.dur.Y * float64(steps)
}

func uvStep(from, to math3d.Vec2, n float64) math3d.Vec2 {
	return math3d.V2((to.X-from.X)/n, (to.Y-from.Y)/n)
}

// fillFlatBased fills a triangle whose two base vertices share a Y value.
// A peak above the base is walked from the peak down; a peak below it is
// walked from the row after the base down to the peak, so the shared base
// row is drawn once.
func (s *span) fillFlatBased(peak, base1, base2 *Vertex) {
	left, right := base2, base1
	if base1.Pos.X < base2.Pos.X {
		left, right = base1, base2
	}

	startRow, endRow := int(peak.Pos.Y), int(base1.Pos.Y)
	down := false
	switch {
	case startRow > endRow:
		startRow, endRow = endRow+1, startRow
		down = true
	case startRow == endRow:
		return
	}

	rows := endRow - startRow + 1
	n := float64(rows)

	var e edges
	if down {
		e.xl, e.xr = toFixed(left.Pos.X), toFixed(right.Pos.X)
		e.dxl = toFixed(peak.Pos.X-left.Pos.X) / int64(rows)
		e.dxr = toFixed(peak.Pos.X-right.Pos.X) / int64(rows)
		e.ul, e.ur = left.UV, right.UV
		e.dul = uvStep(left.UV, peak.UV, n)
		e.dur = uvStep(right.UV, peak.UV, n)
	} else {
		e.xl, e.xr = toFixed(peak.Pos.X), toFixed(peak.Pos.X)
		e.dxl = toFixed(left.Pos.X-peak.Pos.X) / int64(rows)
		e.dxr = toFixed(right.Pos.X-peak.Pos.X) / int64(rows)
		e.ul, e.ur = peak.UV, peak.UV
		e.dul = uvStep(peak.UV, left.UV, n)
		e.dur = uvStep(peak.UV, right.UV, n)
	}

	if startRow < 0 {
		e.advance(-startRow)
		startRow = 0
	}
	endRow = min(endRow, s.fb.Height-1)

	for y := startRow; y <= endRow; y++ {
		e.advance(1)
		s.fillRow(y, int(e.xl>>fixedShift), int(e.xr>>fixedShift), e.ul, e.ur)
	}
}

// fillRow fills pixels startX..endX of row y, stepping the texture
// coordinate from l toward r.
func (s *span) fillRow(y, startX, endX int, l, r math3d.Vec2) {
	d := uvStep(l, r, float64(endX-startX+1))

	if startX < 0 {
		skip := float64(-startX)
		l.X += d.X * skip
		l.Y += d.Y * skip
		startX = 0
	}
	endX = min(endX, s.fb.Width-1)
	if endX < startX {
		return
	}

	row := s.fb.Pixels[y*s.fb.Width : (y+1)*s.fb.Width]

	if s.tex == nil {
		c := bgra(s.fb.Palette.At(s.flat))
		for x := startX; x <= endX; x++ {
			row[x] = c
		}
		return
	}

	for x := startX; x <= endX; x++ {
		texel := s.tex.At(l.X, l.Y)
		if !(s.transparent && texel == 0) {
			row[x] = bgra(s.fb.Palette.At(int(texel) + s.fog))
		}
		l.X += d.X
		l.Y += d.Y
	}
}
