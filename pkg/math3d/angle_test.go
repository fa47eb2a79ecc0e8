package math3d

import (
	"math"
	"testing"
)

func TestAngleFromDegrees(t *testing.T) {
	tests := []struct {
		deg  int
		want Angle
	}{
		{0, 0},
		{40, 7282},
		{90, 16384},
		{180, 32768},
		{360, 0},
		{-90, 49151},
		{-360, 65535},
		{450, 16384},
	}

	for _, tc := range tests {
		if got := AngleFromDegrees(tc.deg); got != tc.want {
			t.Errorf("AngleFromDegrees(%d) = %d, want %d", tc.deg, got, tc.want)
		}
	}
}

func TestAngleSinCos(t *testing.T) {
	tests := []struct {
		name     string
		a        Angle
		sin, cos float64
	}{
		{"zero", 0, 0, 1},
		{"quarter", AngleFromDegrees(90), 1, 0},
		{"half", AngleFromDegrees(180), 0, -1},
		{"three quarters", AngleFromDegrees(270), -1, 0},
		{"max", math.MaxUint16, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Sin(); math.Abs(got-tc.sin) > 1e-2 {
				t.Errorf("Sin = %v, want %v", got, tc.sin)
			}
			if got := tc.a.Cos(); math.Abs(got-tc.cos) > 1e-2 {
				t.Errorf("Cos = %v, want %v", got, tc.cos)
			}
		})
	}
}

func TestAngleWrapsOnNegation(t *testing.T) {
	a := AngleFromDegrees(40)
	neg := -a
	if neg != 58254 {
		t.Errorf("-AngleFromDegrees(40) = %d, want 58254", neg)
	}
	if d := neg.Degrees(); math.Abs(d-320) > 0.01 {
		t.Errorf("Degrees = %v, want ~320", d)
	}
}
