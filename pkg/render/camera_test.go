package render

import (
	"testing"

	"github.com/taigrr/rgeo/pkg/math3d"
)

var testBounds = Bounds{
	TileWidth:   128,
	TileHeight:  128,
	TrackWidth:  128,
	TrackHeight: 128,
	DrawTilesX:  26,
	DrawTilesZ:  26,
}

func TestBoundsLimits(t *testing.T) {
	xMin, xMax, zMax := testBounds.Limits()
	if xMin != -13088 || xMax != 144 || zMax != 13568 {
		t.Errorf("Limits() = (%d, %d, %d), want (-13088, 144, 13568)", xMin, xMax, zMax)
	}
}

func TestBoundsInvertedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a track narrower than the draw window")
		}
	}()
	b := testBounds
	b.TrackWidth = 1
	b.Limits()
}

func TestCameraMoveClamps(t *testing.T) {
	xMin, xMax, zMax := testBounds.Limits()

	tests := []struct {
		name       string
		dx, dy, dz int
		wantX      int
		wantZ      int
	}{
		{"past right edge", -1_000_000, 0, 0, xMax, InitialCameraPosition[2]},
		{"past left edge", 1_000_000, 0, 0, xMin, InitialCameraPosition[2]},
		{"past far edge", 0, 0, -1_000_000, InitialCameraPosition[0], zMax},
		{"past near edge", 0, 0, 1_000_000, InitialCameraPosition[0], 0},
		{"inside", 10, 5, -20, InitialCameraPosition[0] - 10, InitialCameraPosition[2] + 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera(testBounds)
			start := cam.Position()

			cam.Move(tc.dx, tc.dy, tc.dz)

			pos := cam.Position()
			if pos[0] != tc.wantX || pos[2] != tc.wantZ {
				t.Errorf("position = (%d, %d), want (%d, %d)", pos[0], pos[2], tc.wantX, tc.wantZ)
			}
			if pos[1] != start[1]+tc.dy {
				t.Errorf("height = %d, want %d", pos[1], start[1]+tc.dy)
			}

			speed := cam.Speed()
			want := [3]int{start[0] - pos[0], pos[1] - start[1], pos[2] - start[2]}
			if speed != want {
				t.Errorf("speed = %v, want clamped delta %v", speed, want)
			}
		})
	}
}

func TestCameraMovementResets(t *testing.T) {
	cam := NewCamera(testBounds)
	_, xMax, _ := testBounds.Limits()

	cam.Move(-1_000_000, 0, 0)
	if !cam.IsMoving() {
		t.Fatal("camera should be moving after a clamped move")
	}

	cam.ResetMovement()
	if cam.IsMoving() {
		t.Error("ResetMovement should clear speed")
	}

	// Pushing into the boundary again moves nothing.
	cam.Move(-10, 0, 0)
	if cam.IsMoving() {
		t.Errorf("camera at x=%d reported moving into the boundary", xMax)
	}
}

func TestCameraToggleViewMode(t *testing.T) {
	cam := NewCamera(testBounds)

	cam.ToggleViewMode()
	if !cam.TopDown() {
		t.Fatal("expected top-down mode")
	}
	if got := cam.Position()[1]; got != -2000 {
		t.Errorf("top-down height = %d, want -2000", got)
	}
	if got := cam.Direction()[0]; got != 58254 {
		t.Errorf("top-down pitch = %d, want 58254", got)
	}
	if got := cam.PositionMatrix().Translation().Z; got != float64(InitialCameraPosition[2]-150) {
		t.Errorf("top-down z offset = %v", got)
	}

	cam.ToggleViewMode()
	if cam.Position()[1] != InitialCameraPosition[1] || cam.Direction() != InitialCameraDirection {
		t.Errorf("toggling back did not restore the preset: %v %v", cam.Position(), cam.Direction())
	}
}

func TestCameraTilePosition(t *testing.T) {
	cam := NewCamera(testBounds)
	x, z := cam.TilePosition()
	if x != 13 || z != 34 {
		t.Errorf("TilePosition() = (%d, %d), want (13, 34)", x, z)
	}
}

func TestCameraDirectionMatrix(t *testing.T) {
	cam := NewCamera(testBounds)
	cam.SetDirection(0, 0, 0)
	if !cam.DirectionMatrix().ApproxEqual(math3d.Identity(), 1e-12) {
		t.Error("zero direction should be the identity rotation")
	}
}
