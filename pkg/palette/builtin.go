package palette

import "fmt"

// Number of built-in palettes.
const NumBuiltin = 4

// Primaries of the default daylight palette, VGA 0-63 range.
var daylight = [NumPrimary][3]uint8{
	{0, 0, 0}, {8, 8, 8}, {16, 16, 16}, {24, 24, 24},
	{32, 32, 32}, {42, 42, 42}, {52, 52, 52}, {63, 63, 63},
	{10, 22, 6}, {14, 30, 8}, {20, 38, 12}, {28, 46, 16},
	{24, 16, 8}, {32, 22, 12}, {40, 30, 18}, {50, 40, 26},
	{12, 24, 44}, {20, 34, 54}, {34, 46, 60}, {48, 56, 63},
	{44, 8, 6}, {56, 18, 10}, {60, 40, 10}, {63, 56, 20},
	{38, 34, 28}, {46, 42, 34}, {54, 50, 42}, {58, 54, 48},
	{30, 10, 34}, {10, 30, 30}, {4, 12, 20}, {63, 0, 63},
}

// tinted returns the daylight primaries with each channel scaled by
// (r, g, b)/8, keeping index 0 black.
func tinted(r, g, b int) [NumPrimary][3]uint8 {
	out := daylight
	for i := 1; i < NumPrimary; i++ {
		out[i] = [3]uint8{
			uint8(min(63, int(daylight[i][0])*r/8)),
			uint8(min(63, int(daylight[i][1])*g/8)),
			uint8(min(63, int(daylight[i][2])*b/8)),
		}
	}
	return out
}

var builtin = [NumBuiltin]*Palette{
	FromVGA(daylight),
	FromVGA(tinted(9, 9, 10)), // snow
	FromVGA(tinted(10, 8, 6)), // dusk
	FromVGA(tinted(5, 6, 9)),  // night
}

// Builtin returns built-in palette i. It panics if i is out of range.
func Builtin(i int) *Palette {
	if i < 0 || i >= NumBuiltin {
		panic(fmt.Sprintf("palette: no built-in palette %d", i))
	}
	p := *builtin[i]
	return &p
}

// ForTrack returns the built-in palette used by the given 1-based track number.
func ForTrack(track int) *Palette {
	switch track {
	case 5:
		return Builtin(1)
	case 8:
		return Builtin(3)
	default:
		return Builtin(0)
	}
}
