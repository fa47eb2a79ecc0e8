package track

import "testing"

// changed lists the tiles whose height differs from zero.
func changed(tr *Track) map[[2]int]int {
	out := make(map[[2]int]int)
	for z := range tr.Height {
		for x := range tr.Width {
			if h := tr.HeightAt(x, z); h != 0 {
				out[[2]int{x, z}] = h
			}
		}
	}
	return out
}

func TestAdjustHeightBrush(t *testing.T) {
	tests := []struct {
		name      string
		x, z      int
		brush     int
		wantTiles int
	}{
		{"single tile", 10, 10, 0, 1},
		{"radius one", 10, 10, 1, 9},
		{"radius three", 10, 10, 3, 49},
		{"clipped at corner", 0, 0, 1, 4},
		{"clipped at far corner", 63, 63, 2, 9},
		{"off track", -5, -5, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := newTestTrack(t)
			tr.AdjustHeight(tc.x, tc.z, 7, tc.brush, false)

			got := changed(tr)
			if len(got) != tc.wantTiles {
				t.Fatalf("changed %d tiles, want %d", len(got), tc.wantTiles)
			}
			for p, h := range got {
				if h != 7 {
					t.Errorf("tile %v height = %d, want 7", p, h)
				}
			}
		})
	}
}

func TestAdjustHeightClamps(t *testing.T) {
	tr := newTestTrack(t)
	for range 100 {
		tr.AdjustHeight(5, 5, 10, 0, false)
	}
	if got := tr.HeightAt(5, 5); got != MaxHeight {
		t.Errorf("height = %d, want %d", got, MaxHeight)
	}
	for range 200 {
		tr.AdjustHeight(5, 5, -10, 0, false)
	}
	if got := tr.HeightAt(5, 5); got != MinHeight {
		t.Errorf("height = %d, want %d", got, MinHeight)
	}
}

func TestAdjustHeightSmoothing(t *testing.T) {
	t.Run("single tile brush does nothing", func(t *testing.T) {
		tr := newTestTrack(t)
		tr.Heights[10+10*tr.Width] = 80
		tr.AdjustHeight(10, 10, 5, 0, true)
		if got := tr.HeightAt(10, 10); got != 80 {
			t.Errorf("height = %d, want 80", got)
		}
	})

	t.Run("pulls towards neighbours", func(t *testing.T) {
		tr := newTestTrack(t)
		tr.Heights[10+10*tr.Width] = 80
		tr.AdjustHeight(10, 10, 5, 1, true)

		// The first covered tile (9, 9) sees the peak among its neighbours:
		// (80/8 + 0*7) / 8 = 1.
		if got := tr.HeightAt(9, 9); got != 1 {
			t.Errorf("height(9, 9) = %d, want 1", got)
		}
		// The peak is smoothed after some neighbours rose to 1.
		if got := tr.HeightAt(10, 10); got >= 80 || got < 60 {
			t.Errorf("height(10, 10) = %d, want lowered towards 70", got)
		}
	})

	t.Run("edge tiles untouched", func(t *testing.T) {
		tr := newTestTrack(t)
		tr.Heights[1+1*tr.Width] = 80
		tr.AdjustHeight(0, 0, 0, 1, true)
		for x := range 2 {
			if got := tr.HeightAt(x, 0); got != 0 {
				t.Errorf("height(%d, 0) = %d, want 0", x, got)
			}
		}
		if got := tr.HeightAt(1, 1); got != 70 {
			t.Errorf("height(1, 1) = %d, want 70", got)
		}
	})
}

func TestPaintTiles(t *testing.T) {
	tr := newTestTrack(t)
	tr.PaintTiles(0, 1, 99, 1)

	n := 0
	for z := range tr.Height {
		for x := range tr.Width {
			if tr.TileAt(x, z) == 99 {
				n++
				if x > 1 || z > 2 {
					t.Errorf("painted tile (%d, %d) outside the brush", x, z)
				}
			}
		}
	}
	if n != 6 {
		t.Errorf("painted %d tiles, want 6", n)
	}

	tr.PaintTiles(20, 20, 42, -3)
	if tr.TileAt(20, 20) != 42 || tr.TileAt(21, 20) == 42 {
		t.Error("negative brush should paint a single tile")
	}
}
