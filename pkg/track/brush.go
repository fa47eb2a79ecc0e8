package track

// Brush sizes are radii: size 0 covers one tile, size n covers the
// (2n+1)x(2n+1) square around the center tile.

// AdjustHeight raises tile (x, z) and its brush neighbourhood by delta.
// With smooth set, each covered tile instead moves an eighth of the way
// towards the mean of its eight neighbours and delta is ignored; tiles on
// the track edge and single-tile brushes are not smoothed. Heights stay
// within MinHeight..MaxHeight.
func (t *Track) AdjustHeight(x, z, delta, brush int, smooth bool) {
	if brush <= 0 {
		if !smooth && t.Contains(x, z) {
			i := x + z*t.Width
			t.Heights[i] = clampHeight(t.Heights[i] + delta)
		}
		return
	}

	for dz := -brush; dz <= brush; dz++ {
		for dx := -brush; dx <= brush; dx++ {
			tx, tz := x+dx, z+dz
			if smooth {
				if tx < 1 || tz < 1 || tx >= t.Width-1 || tz >= t.Height-1 {
					continue
				}
				i := tx + tz*t.Width
				avg := t.neighbourSum(tx, tz) / 8
				t.Heights[i] = clampHeight((avg + t.Heights[i]*7) / 8)
				continue
			}
			if !t.Contains(tx, tz) {
				continue
			}
			i := tx + tz*t.Width
			t.Heights[i] = clampHeight(t.Heights[i] + delta)
		}
	}
}

// neighbourSum adds up the heights of the eight tiles around an interior
// tile.
func (t *Track) neighbourSum(x, z int) int {
	sum := 0
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dz == 0 {
				continue
			}
			sum += t.Heights[(x+dx)+(z+dz)*t.Width]
		}
	}
	return sum
}

// PaintTiles sets the PALA of tile (x, z) and its brush neighbourhood.
// Tiles off the track are skipped.
func (t *Track) PaintTiles(x, z int, pala uint8, brush int) {
	brush = max(brush, 0)
	for dz := -brush; dz <= brush; dz++ {
		for dx := -brush; dx <= brush; dx++ {
			tx, tz := x+dx, z+dz
			if t.Contains(tx, tz) {
				t.Tiles[tx+tz*t.Width] = pala
			}
		}
	}
}
