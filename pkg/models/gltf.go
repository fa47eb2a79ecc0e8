package models

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"golang.org/x/image/draw"

	"github.com/taigrr/rgeo/pkg/math3d"
	"github.com/taigrr/rgeo/pkg/palette"
	"github.com/taigrr/rgeo/pkg/render"
)

// GLTFLoader imports glTF/GLB models as prop meshes, quantizing colors and
// textures to a palette.
type GLTFLoader struct {
	// Scale converts model units (meters) to world units.
	Scale float64
	// TextureSize is the side of the square textures images are resampled
	// to. It must be a power of two no larger than render.MaxTextureSize.
	TextureSize int
	// Palette is the palette colors are matched against.
	Palette *palette.Palette
}

// Default import settings.
const (
	DefaultGLTFScale   = 64
	DefaultTextureSize = 64
)

// NewGLTFLoader creates a loader with default options.
func NewGLTFLoader(pal *palette.Palette) *GLTFLoader {
	return &GLTFLoader{
		Scale:       DefaultGLTFScale,
		TextureSize: DefaultTextureSize,
		Palette:     pal,
	}
}

// LoadGLB loads a binary glTF (.glb) file with default options.
func LoadGLB(path string, pal *palette.Palette) (*Mesh, error) {
	return NewGLTFLoader(pal).Load(path)
}

// Load loads a glTF or GLB file and returns a Mesh. glTF is Y-up; the mesh is
// flipped so that up is -Y.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for i, m := range doc.Materials {
		mat, err := l.material(doc, filepath.Dir(path), m)
		if err != nil {
			return nil, fmt.Errorf("material %d (%q): %w", i, m.Name, err)
		}
		mesh.AddMaterial(mat)
	}

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh extracts geometry from a glTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		acc, err := accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("positions: %w", err)
		}
		positions, err := modeler.ReadPosition(doc, acc, nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			acc, err := accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("uvs: %w", err)
			}
			uvs, err = modeler.ReadTextureCoord(doc, acc, nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		material := -1
		if prim.Material != nil {
			material = *prim.Material
			if material < 0 || material >= len(mesh.Materials) {
				return fmt.Errorf("material %d out of range (%d materials)", material, len(mesh.Materials))
			}
		}

		baseVertex := len(mesh.Vertices)
		for i, p := range positions {
			pos := math3d.V3(float64(p[0]), -float64(p[1]), float64(p[2])).Scale(l.Scale)
			var uv math3d.Vec2
			if i < len(uvs) {
				uv = math3d.V2(float64(uvs[i][0]), float64(uvs[i][1]))
			}
			mesh.AddVertex(pos, uv)
		}

		if prim.Indices != nil {
			acc, err := accessor(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("indices: %w", err)
			}
			indices, err := modeler.ReadIndices(doc, acc, nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for _, idx := range indices {
				if int(idx) >= len(positions) {
					return fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
				}
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.AddFace(
					baseVertex+int(indices[i]),
					baseVertex+int(indices[i+1]),
					baseVertex+int(indices[i+2]),
					material,
				)
			}
		} else {
			// No indices, assume sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.AddFace(baseVertex+i, baseVertex+i+1, baseVertex+i+2, material)
			}
		}
	}

	return nil
}

// material converts a glTF PBR material to a palette color and, when it has
// a base color texture, a palette texture.
func (l *GLTFLoader) material(doc *gltf.Document, dir string, m *gltf.Material) (Material, error) {
	mat := Material{
		Name:        m.Name,
		Color:       l.Palette.Nearest(color.White),
		Transparent: m.AlphaMode != gltf.AlphaOpaque,
	}

	pbr := m.PBRMetallicRoughness
	if pbr == nil {
		return mat, nil
	}
	if f := pbr.BaseColorFactor; f != nil {
		mat.Color = l.Palette.Nearest(color.RGBA{
			R: unit8(f[0]), G: unit8(f[1]), B: unit8(f[2]), A: 255,
		})
	}
	if pbr.BaseColorTexture == nil {
		return mat, nil
	}

	ti := pbr.BaseColorTexture.Index
	if ti < 0 || ti >= len(doc.Textures) {
		return mat, fmt.Errorf("texture %d out of range (%d textures)", ti, len(doc.Textures))
	}
	tex := doc.Textures[ti]
	if tex.Source == nil {
		return mat, nil
	}
	if *tex.Source < 0 || *tex.Source >= len(doc.Images) {
		return mat, fmt.Errorf("image %d out of range (%d images)", *tex.Source, len(doc.Images))
	}
	data, err := imageData(doc, dir, doc.Images[*tex.Source])
	if err != nil {
		return mat, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return mat, fmt.Errorf("decode texture: %w", err)
	}
	mat.Texture, err = l.texture(img)
	return mat, err
}

// texture resamples img to a TextureSize square and quantizes it.
func (l *GLTFLoader) texture(img image.Image) (*render.Texture, error) {
	dst := image.NewNRGBA(image.Rect(0, 0, l.TextureSize, l.TextureSize))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return render.TextureFromImage(dst, l.Palette)
}

// imageData returns the encoded bytes of an embedded or external image.
func imageData(doc *gltf.Document, dir string, img *gltf.Image) ([]byte, error) {
	if img.BufferView != nil {
		bv := *img.BufferView
		if bv < 0 || bv >= len(doc.BufferViews) {
			return nil, fmt.Errorf("image %q: buffer view %d out of range (%d buffer views)", img.Name, bv, len(doc.BufferViews))
		}
		return modeler.ReadBufferView(doc, doc.BufferViews[bv])
	}
	if img.URI == "" {
		return nil, fmt.Errorf("image %q has no data", img.Name)
	}
	return os.ReadFile(filepath.Join(dir, img.URI))
}

// accessor returns accessor i of doc, or an error when doc has none by that
// index.
func accessor(doc *gltf.Document, i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", i, len(doc.Accessors))
	}
	return doc.Accessors[i], nil
}

func unit8(f float64) uint8 {
	return uint8(max(0, min(1, f))*255 + 0.5)
}
