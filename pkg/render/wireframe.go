package render

// wireframeColor is the palette index ground edges are stroked with.
const wireframeColor = 0

// strokeGround outlines the two outer edges of a ground triangle so that a
// quad's shared diagonal is never drawn.
func (r *Rasterizer) strokeGround(t *Triangle) {
	g, ok := t.Interaction.(Ground)
	if !ok {
		return
	}
	if g.Main {
		r.line(&t.V[0], &t.V[1])
		r.line(&t.V[1], &t.V[2])
		return
	}
	r.line(&t.V[1], &t.V[2])
	r.line(&t.V[2], &t.V[0])
}

func (r *Rasterizer) clampToScreen(v *Vertex) (x, y int) {
	x = clampInt(int(v.Pos.X), 0, r.fb.Width-1)
	y = clampInt(int(v.Pos.Y), 0, r.fb.Height-1)
	return x, y
}

// line draws a two pixel thick Bresenham line between a and b, with both
// endpoints pulled onto the screen.
func (r *Rasterizer) line(a, b *Vertex) {
	if r.fb.Width == 0 || r.fb.Height == 0 {
		return
	}
	x0, y0 := r.clampToScreen(a)
	x1, y1 := r.clampToScreen(b)

	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := abs(y1 - y0)
	step := -1
	if y0 < y1 {
		step = 1
	}

	err := dx / 2
	y := y0
	for x := x0; x <= x1; x++ {
		if steep {
			r.plot(y, x)
			if y > 0 {
				r.plot(y-1, x)
			}
		} else {
			r.plot(x, y)
			if y > 0 {
				r.plot(x, y-1)
			}
		}
		err -= dy
		if err < 0 {
			y += step
			err += dx
		}
	}
}

func (r *Rasterizer) plot(x, y int) {
	r.fb.setIndex(x, y, wireframeColor)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
