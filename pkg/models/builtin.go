package models

import (
	"fmt"
	"strings"

	"github.com/taigrr/rgeo/pkg/math3d"
)

// Kind identifies a built-in prop type.
type Kind int

const (
	KindTree Kind = iota
	KindWireFence
	KindTrafficSign
	KindStonePost
	KindLargeRock
	KindSmallRock
	KindBillboard
	KindBuilding
	KindUtilityPole
	KindStartingLine
	NumKinds
)

var kindNames = [NumKinds]string{
	"tree",
	"wire-fence",
	"traffic-sign",
	"stone-post",
	"large-rock",
	"small-rock",
	"billboard",
	"building",
	"utility-pole",
	"starting-line",
}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("models: unknown prop kind %q", name)
}

// Movable reports whether the editor may drag or replace a prop of this kind.
func (k Kind) Movable() bool {
	return k != KindStartingLine
}

// Next returns the kind after k when cycling through props in the editor,
// skipping kinds that cannot be placed.
func (k Kind) Next() Kind {
	for {
		k = (k + 1) % NumKinds
		if k.Movable() {
			return k
		}
	}
}

// Palette indices of the built-in prop colors.
const (
	colorDarkGray  = 3
	colorGray      = 5
	colorLightGray = 6
	colorWhite     = 7
	colorGreen     = 9
	colorDarkGreen = 8
	colorBrown     = 13
	colorLightWood = 14
	colorRed       = 21
	colorYellow    = 23
	colorStone     = 25
	colorBlue      = 17
)

// Builtin returns a new mesh of the given kind, centered on the origin at
// ground level. It panics for an unknown kind.
func Builtin(k Kind) *Mesh {
	b := newBuilder(k.String())
	switch k {
	case KindTree:
		b.box(math3d.V3(-6, -70, -6), math3d.V3(6, 0, 6), colorBrown)
		b.pyramid(math3d.V3(0, -50, 0), 48, 200, colorDarkGreen)
		b.pyramid(math3d.V3(0, -120, 0), 36, 150, colorGreen)
	case KindWireFence:
		for _, x := range []float64{-64, 0, 64} {
			b.box(math3d.V3(x-3, -60, -3), math3d.V3(x+3, 0, 3), colorLightWood)
		}
		b.panel(math3d.V3(-64, -50, 0), math3d.V3(64, -10, 0), colorLightGray)
	case KindTrafficSign:
		b.box(math3d.V3(-2, -90, -2), math3d.V3(2, 0, 2), colorGray)
		b.disc(math3d.V3(0, -110, -3), 22, colorRed)
		b.disc(math3d.V3(0, -110, -4), 16, colorWhite)
	case KindStonePost:
		b.box(math3d.V3(-10, -40, -10), math3d.V3(10, 0, 10), colorStone)
		b.pyramid(math3d.V3(0, -40, 0), 10, 10, colorLightGray)
	case KindLargeRock:
		b.rock(60, 45, colorStone)
	case KindSmallRock:
		b.rock(24, 16, colorGray)
	case KindBillboard:
		b.box(math3d.V3(-50, -80, -3), math3d.V3(-44, 0, 3), colorGray)
		b.box(math3d.V3(44, -80, -3), math3d.V3(50, 0, 3), colorGray)
		b.panel(math3d.V3(-70, -150, -4), math3d.V3(70, -80, -4), colorYellow)
		b.panel(math3d.V3(-55, -135, -5), math3d.V3(55, -95, -5), colorBlue)
	case KindBuilding:
		b.box(math3d.V3(-100, -120, -80), math3d.V3(100, 0, 80), colorLightWood)
		b.pyramid(math3d.V3(0, -120, 0), 110, 70, colorRed)
		b.panel(math3d.V3(-20, -60, -81), math3d.V3(20, 0, -81), colorDarkGray)
	case KindUtilityPole:
		b.box(math3d.V3(-4, -260, -4), math3d.V3(4, 0, 4), colorBrown)
		b.box(math3d.V3(-40, -250, -3), math3d.V3(40, -242, 3), colorBrown)
	case KindStartingLine:
		for i := range 8 {
			c := uint8(colorWhite)
			if i%2 == 1 {
				c = colorDarkGray
			}
			x := float64(-128 + i*32)
			b.panel(math3d.V3(x, -2, -16), math3d.V3(x+32, -2, 16), c)
		}
	default:
		panic(fmt.Sprintf("models: no built-in mesh for %v", k))
	}
	b.mesh.CalculateBounds()
	return b.mesh
}

// builder assembles flat-colored meshes from primitives, sharing one
// material per palette color.
type builder struct {
	mesh      *Mesh
	materials map[uint8]int
}

func newBuilder(name string) *builder {
	return &builder{mesh: NewMesh(name), materials: make(map[uint8]int)}
}

func (b *builder) material(c uint8) int {
	if i, ok := b.materials[c]; ok {
		return i
	}
	i := b.mesh.AddMaterial(Material{Name: fmt.Sprintf("color-%d", c), Color: c})
	b.materials[c] = i
	return i
}

func (b *builder) vertex(x, y, z float64) int {
	return b.mesh.AddVertex(math3d.V3(x, y, z), math3d.Vec2{})
}

// box adds the six sides of an axis-aligned box.
func (b *builder) box(lo, hi math3d.Vec3, c uint8) {
	m := b.material(c)
	var v [8]int
	for i := range v {
		x, y, z := lo.X, lo.Y, lo.Z
		if i&1 != 0 {
			x = hi.X
		}
		if i&2 != 0 {
			y = hi.Y
		}
		if i&4 != 0 {
			z = hi.Z
		}
		v[i] = b.vertex(x, y, z)
	}
	b.mesh.AddQuad(v[0], v[1], v[3], v[2], m) // front
	b.mesh.AddQuad(v[5], v[4], v[6], v[7], m) // back
	b.mesh.AddQuad(v[4], v[0], v[2], v[6], m) // left
	b.mesh.AddQuad(v[1], v[5], v[7], v[3], m) // right
	b.mesh.AddQuad(v[4], v[5], v[1], v[0], m) // top
	b.mesh.AddQuad(v[2], v[3], v[7], v[6], m) // bottom
}

// pyramid adds a square-based pyramid rising height units above base.
func (b *builder) pyramid(base math3d.Vec3, half, height float64, c uint8) {
	m := b.material(c)
	apex := b.vertex(base.X, base.Y-height, base.Z)
	corners := [4]int{
		b.vertex(base.X-half, base.Y, base.Z-half),
		b.vertex(base.X+half, base.Y, base.Z-half),
		b.vertex(base.X+half, base.Y, base.Z+half),
		b.vertex(base.X-half, base.Y, base.Z+half),
	}
	for i := range corners {
		b.mesh.AddFace(corners[i], corners[(i+1)%4], apex, m)
	}
	b.mesh.AddQuad(corners[0], corners[1], corners[2], corners[3], m)
}

// panel adds a flat rectangle spanning lo to hi. Exactly one of the axes
// must have zero extent.
func (b *builder) panel(lo, hi math3d.Vec3, c uint8) {
	m := b.material(c)
	var v [4]int
	switch {
	case lo.Z == hi.Z:
		v = [4]int{
			b.vertex(lo.X, lo.Y, lo.Z), b.vertex(hi.X, lo.Y, lo.Z),
			b.vertex(hi.X, hi.Y, lo.Z), b.vertex(lo.X, hi.Y, lo.Z),
		}
	case lo.Y == hi.Y:
		v = [4]int{
			b.vertex(lo.X, lo.Y, lo.Z), b.vertex(hi.X, lo.Y, lo.Z),
			b.vertex(hi.X, lo.Y, hi.Z), b.vertex(lo.X, lo.Y, hi.Z),
		}
	default:
		v = [4]int{
			b.vertex(lo.X, lo.Y, lo.Z), b.vertex(lo.X, lo.Y, hi.Z),
			b.vertex(lo.X, hi.Y, hi.Z), b.vertex(lo.X, hi.Y, lo.Z),
		}
	}
	b.mesh.AddQuad(v[0], v[1], v[2], v[3], m)
}

// disc adds an octagon facing -Z.
func (b *builder) disc(center math3d.Vec3, radius float64, c uint8) {
	m := b.material(c)
	mid := b.vertex(center.X, center.Y, center.Z)
	var ring [8]int
	for i := range ring {
		a := math3d.Angle(i * 8192)
		ring[i] = b.vertex(center.X+a.Cos()*radius, center.Y+a.Sin()*radius, center.Z)
	}
	for i := range ring {
		b.mesh.AddFace(mid, ring[i], ring[(i+1)%8], m)
	}
}

// rock adds a low, irregular eight-sided dome.
func (b *builder) rock(radius, height float64, c uint8) {
	m := b.material(c)
	top := b.vertex(radius*0.1, -height, -radius*0.15)
	var ring [8]int
	for i := range ring {
		a := math3d.Angle(i * 8192)
		r := radius * (0.8 + 0.05*float64(i%3))
		ring[i] = b.vertex(a.Cos()*r, 0, a.Sin()*r)
	}
	for i := range ring {
		b.mesh.AddFace(ring[i], ring[(i+1)%8], top, m)
	}
}
