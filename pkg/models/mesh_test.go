package models

import (
	"testing"

	"github.com/taigrr/rgeo/pkg/math3d"
	"github.com/taigrr/rgeo/pkg/render"
)

func TestMeshAppendTriangles(t *testing.T) {
	tex := stripedTexture(t, 16, 9, 0)

	m := NewMesh("test")
	flat := m.AddMaterial(Material{Name: "flat", Color: 12})
	textured := m.AddMaterial(Material{Name: "tex", Texture: tex, Transparent: true})
	a := m.AddVertex(math3d.V3(0, 0, 0), math3d.V2(0, 0))
	b := m.AddVertex(math3d.V3(10, 0, 0), math3d.V2(1, 0))
	c := m.AddVertex(math3d.V3(10, -10, 0), math3d.V2(1, 1))
	m.AddFace(a, b, c, flat)
	m.AddFace(a, c, b, textured)
	m.AddFace(a, b, c, -1)

	in := render.Prop{Index: 2, FirstTri: 5, LastTri: 8}
	dst := make([]render.Triangle, 5)
	dst = m.AppendTriangles(dst, math3d.V3(100, 0, 50), in)

	if len(dst) != 8 {
		t.Fatalf("len = %d, want 8", len(dst))
	}
	if got := dst[5].V[1].Pos; got != math3d.V4(110, 0, 50, 1) {
		t.Errorf("offset vertex = %v", got)
	}
	if f, ok := dst[5].Fill.(render.Flat); !ok || f.Index != 12 {
		t.Errorf("flat face fill = %#v", dst[5].Fill)
	}
	tf, ok := dst[6].Fill.(render.Textured)
	if !ok || tf.Texture != tex || !tf.Transparent {
		t.Errorf("textured face fill = %#v", dst[6].Fill)
	}
	if uv := dst[6].V[1].UV; uv.X != 15.9 || uv.Y != 15.9 {
		t.Errorf("texel coordinate = %v, want (15.9, 15.9)", uv)
	}
	if f, ok := dst[7].Fill.(render.Flat); !ok || f.Index != fallbackColor {
		t.Errorf("material-less face fill = %#v", dst[7].Fill)
	}
	for i := 5; i < 8; i++ {
		if dst[i].Interaction != in {
			t.Errorf("triangle %d interaction = %#v", i, dst[i].Interaction)
		}
	}
}

func TestMeshTransformUpdatesBounds(t *testing.T) {
	m := Builtin(KindStonePost)
	size := m.Size()

	m.Transform(math3d.Translate(math3d.V3(5, 0, -5)))

	got := m.Size()
	if d := got.Sub(size); d.Dot(d) > 1e-18 {
		t.Errorf("translation changed size from %v to %v", size, got)
	}
	if m.Bounds.Min.X != -5 || m.Bounds.Max.Z != 5 {
		t.Errorf("bounds = %+v", m.Bounds)
	}
}

func TestMeshClone(t *testing.T) {
	m := Builtin(KindTree)
	clone := m.Clone()
	clone.Vertices[0].Position = math3d.V3(999, 999, 999)
	clone.Materials[0].Color = 31

	if m.Vertices[0].Position == clone.Vertices[0].Position {
		t.Error("clone shares vertices with the original")
	}
	if m.Materials[0].Color == 31 {
		t.Error("clone shares materials with the original")
	}
}

func TestBuiltinMeshes(t *testing.T) {
	for k := range NumKinds {
		t.Run(k.String(), func(t *testing.T) {
			m := Builtin(k)
			if m.TriangleCount() == 0 {
				t.Fatal("empty mesh")
			}
			if m.Bounds.Max.Y > 0 {
				t.Errorf("mesh reaches below ground: max Y = %v", m.Bounds.Max.Y)
			}
			if m.Bounds.Min.Y >= 0 {
				t.Errorf("mesh has no height: min Y = %v", m.Bounds.Min.Y)
			}
			for i, f := range m.Faces {
				for _, v := range f.V {
					if v < 0 || v >= m.VertexCount() {
						t.Fatalf("face %d references vertex %d", i, v)
					}
				}
				if m.Material(f.Material) == nil {
					t.Fatalf("face %d has no material", i)
				}
			}
		})
	}
}

func TestBuiltinUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Builtin(NumKinds)
}

func TestKindNames(t *testing.T) {
	for k := range NumKinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("spaceship"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("String() = %q", got)
	}
}

func TestKindNextSkipsFixedProps(t *testing.T) {
	k := KindTree
	seen := make(map[Kind]bool)
	for range NumKinds * 2 {
		k = k.Next()
		if !k.Movable() {
			t.Fatalf("Next returned fixed kind %v", k)
		}
		seen[k] = true
	}
	if len(seen) != int(NumKinds)-1 {
		t.Errorf("cycled through %d kinds, want %d", len(seen), NumKinds-1)
	}
}

// stripedTexture returns a size x size texture with alternating columns of
// colors a and b.
func stripedTexture(t *testing.T, size int, a, b uint8) *render.Texture {
	t.Helper()
	tex, err := render.NewTexture(size, size)
	if err != nil {
		t.Fatal(err)
	}
	for y := range size {
		for x := range size {
			c := a
			if x%2 == 1 {
				c = b
			}
			tex.SetPixel(x, y, c)
		}
	}
	return tex
}
