// Package models provides the trackside prop meshes the editor places on a
// track, and converts them to render triangles.
package models

import (
	"github.com/taigrr/rgeo/pkg/math3d"
	"github.com/taigrr/rgeo/pkg/render"
)

// Mesh is an indexed triangle mesh in world units. Up is -Y.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounds is the axis-aligned bounding box, kept current by
	// CalculateBounds.
	Bounds render.AABB
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2 // 0-1 across the material texture
}

// Face is a triangle with vertex indices and a material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for none)
}

// Material describes how a face is filled.
type Material struct {
	Name        string
	Color       uint8           // Palette index used when Texture is nil
	Texture     *render.Texture // Optional
	Transparent bool            // Texel 0 is not drawn
}

// fallbackColor fills faces without a material.
const fallbackColor = 1

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddMaterial appends a material and returns its index.
func (m *Mesh) AddMaterial(mat Material) int {
	m.Materials = append(m.Materials, mat)
	return len(m.Materials) - 1
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(pos math3d.Vec3, uv math3d.Vec2) int {
	m.Vertices = append(m.Vertices, MeshVertex{Position: pos, UV: uv})
	return len(m.Vertices) - 1
}

// AddFace appends a triangle.
func (m *Mesh) AddFace(a, b, c, material int) {
	m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}, Material: material})
}

// AddQuad appends the quad a-b-c-d as two triangles.
func (m *Mesh) AddQuad(a, b, c, d, material int) {
	m.AddFace(a, b, c, material)
	m.AddFace(a, c, d, material)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = render.AABB{}
		return
	}

	m.Bounds.Min = m.Vertices[0].Position
	m.Bounds.Max = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.Bounds.Min = m.Bounds.Min.Min(v.Position)
		m.Bounds.Max = m.Bounds.Max.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.Bounds.Center()
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.Bounds.Size()
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec4(math3d.Point(m.Vertices[i].Position)).Vec3()
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh. Textures are shared.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		Bounds:    m.Bounds,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// Material returns the material at index i, or nil if i is out of range.
func (m *Mesh) Material(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// AppendTriangles appends one render triangle per face, moved by offset and
// tagged with in, and returns the extended slice.
func (m *Mesh) AppendTriangles(dst []render.Triangle, offset math3d.Vec3, in render.Interaction) []render.Triangle {
	for _, f := range m.Faces {
		mat := m.Material(f.Material)
		fill, scale := faceFill(mat)

		var t render.Triangle
		for i, vi := range f.V {
			v := m.Vertices[vi]
			p := v.Position.Add(offset)
			t.V[i] = render.V(p.X, p.Y, p.Z, v.UV.X*scale, v.UV.Y*scale)
		}
		t.Fill = fill
		t.Interaction = in
		dst = append(dst, t)
	}
	return dst
}

// faceFill resolves a material to a fill and the factor that maps 0-1 UVs
// to texel coordinates.
func faceFill(mat *Material) (render.Fill, float64) {
	switch {
	case mat == nil:
		return render.Flat{Index: fallbackColor}, 0
	case mat.Texture != nil:
		return render.Textured{Texture: mat.Texture, Transparent: mat.Transparent}, float64(mat.Texture.Width) - 0.1
	default:
		return render.Flat{Index: mat.Color}, 0
	}
}
