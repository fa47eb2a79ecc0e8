package models

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/rgeo/pkg/palette"
	"github.com/taigrr/rgeo/pkg/render"
)

// writeTestGLB saves a one-quad model with a red material.
func writeTestGLB(t *testing.T, dir string, textured bool) string {
	t.Helper()
	doc := gltf.NewDocument()

	mat := &gltf.Material{
		Name: "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 0, 0, 1},
		},
	}
	if textured {
		img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
		pal := palette.Builtin(0)
		for y := range 8 {
			for x := range 8 {
				img.Set(x, y, pal.At(9))
			}
		}
		texPath := filepath.Join(dir, "grass.png")
		f, err := os.Create(texPath)
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()

		doc.Images = []*gltf.Image{{Name: "grass", URI: "grass.png"}}
		doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}
		mat.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: 0}
	}
	doc.Materials = []*gltf.Material{mat}

	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})),
			Attributes: map[string]int{
				gltf.POSITION:   modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 2, 0}, {0, 2, 0}}),
				gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, [][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}),
			},
			Material: gltf.Index(0),
		}},
	}}

	path := filepath.Join(dir, "quad.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save glb: %v", err)
	}
	return path
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb", palette.Builtin(0))
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader(palette.Builtin(0))
	if loader.Scale != DefaultGLTFScale {
		t.Errorf("Scale = %v, want %v", loader.Scale, DefaultGLTFScale)
	}
	if loader.TextureSize != DefaultTextureSize {
		t.Errorf("TextureSize = %d, want %d", loader.TextureSize, DefaultTextureSize)
	}
}

func TestLoadGLB(t *testing.T) {
	pal := palette.Builtin(0)
	mesh, err := LoadGLB(writeTestGLB(t, t.TempDir(), false), pal)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	if mesh.VertexCount() != 4 || mesh.TriangleCount() != 2 {
		t.Fatalf("got %d vertices, %d triangles; want 4, 2", mesh.VertexCount(), mesh.TriangleCount())
	}

	// Y-up model becomes -Y-up and is scaled to world units.
	top := mesh.Vertices[2].Position
	if top.X != DefaultGLTFScale || top.Y != -2*DefaultGLTFScale {
		t.Errorf("vertex 2 = %v, want (%v, %v, 0)", top, DefaultGLTFScale, -2*DefaultGLTFScale)
	}
	if mesh.Bounds.Min.Y != -2*DefaultGLTFScale || mesh.Bounds.Max.Y != 0 {
		t.Errorf("bounds = %+v", mesh.Bounds)
	}

	mat := mesh.Material(mesh.Faces[0].Material)
	if mat == nil {
		t.Fatal("face has no material")
	}
	c := pal.At(int(mat.Color))
	if c.R <= c.G || c.R <= c.B {
		t.Errorf("material color %d (%v) is not red", mat.Color, c)
	}
	if mat.Texture != nil || mat.Transparent {
		t.Errorf("untextured opaque material imported as %+v", mat)
	}
}

func TestLoadGLBTexture(t *testing.T) {
	pal := palette.Builtin(0)
	mesh, err := LoadGLB(writeTestGLB(t, t.TempDir(), true), pal)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	mat := mesh.Material(0)
	if mat == nil || mat.Texture == nil {
		t.Fatal("expected a textured material")
	}
	if mat.Texture.Width != DefaultTextureSize {
		t.Errorf("texture width = %d, want %d", mat.Texture.Width, DefaultTextureSize)
	}
	if got := mat.Texture.GetPixel(10, 10); got != 9 {
		t.Errorf("texel = %d, want 9", got)
	}

	tris := mesh.AppendTriangles(nil, mesh.Center(), render.Prop{})
	if _, ok := tris[0].Fill.(render.Textured); !ok {
		t.Errorf("fill = %T, want render.Textured", tris[0].Fill)
	}
}

// triangleDoc returns a one-triangle document with the given indices and a
// single untextured material.
func triangleDoc(indices []uint16) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Materials = []*gltf.Material{{Name: "plain"}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}),
			},
			Material: gltf.Index(0),
		}},
	}}
	return doc
}

func TestLoadGLBRejectsBadIndices(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(doc *gltf.Document)
	}{
		{"vertex index", func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[0].Indices = gltf.Index(modeler.WriteIndices(doc, []uint16{0, 1, 50}))
		}},
		{"position accessor", func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[0].Attributes[gltf.POSITION] = 99
		}},
		{"uv accessor", func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[0].Attributes[gltf.TEXCOORD_0] = 99
		}},
		{"index accessor", func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[0].Indices = gltf.Index(99)
		}},
		{"material", func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[0].Material = gltf.Index(7)
		}},
		{"texture", func(doc *gltf.Document) {
			doc.Materials[0].PBRMetallicRoughness = &gltf.PBRMetallicRoughness{
				BaseColorTexture: &gltf.TextureInfo{Index: 3},
			}
		}},
		{"image", func(doc *gltf.Document) {
			doc.Textures = []*gltf.Texture{{Source: gltf.Index(4)}}
			doc.Materials[0].PBRMetallicRoughness = &gltf.PBRMetallicRoughness{
				BaseColorTexture: &gltf.TextureInfo{Index: 0},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := triangleDoc([]uint16{0, 1, 2})
			tt.corrupt(doc)
			path := filepath.Join(t.TempDir(), "tree.glb")
			if err := gltf.SaveBinary(doc, path); err != nil {
				t.Fatalf("save glb: %v", err)
			}
			if m, err := LoadGLB(path, palette.Builtin(0)); err == nil {
				t.Errorf("LoadGLB returned %d faces and no error", len(m.Faces))
			}
		})
	}
}

func TestLibraryLoadDirRejectsBadIndices(t *testing.T) {
	dir := t.TempDir()
	if err := gltf.SaveBinary(triangleDoc([]uint16{0, 1, 50}), filepath.Join(dir, "tree.glb")); err != nil {
		t.Fatalf("save glb: %v", err)
	}

	lib := NewLibrary()
	n, err := lib.LoadDir(dir, palette.Builtin(0))
	if err == nil || n != 0 {
		t.Fatalf("LoadDir = %d, %v; want 0 and an error", n, err)
	}
	// The built-in tree is still in place and renders.
	if tris := lib.Mesh(KindTree).AppendTriangles(nil, Builtin(KindTree).Center(), render.Prop{}); len(tris) == 0 {
		t.Error("built-in tree was replaced")
	}
}
