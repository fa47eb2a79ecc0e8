package render

import "github.com/taigrr/rgeo/pkg/math3d"

// Vertex is a homogeneous position plus a texture coordinate in texels.
type Vertex struct {
	Pos math3d.Vec4
	UV  math3d.Vec2
}

// V creates a vertex at (x, y, z) with W = 1 and texture coordinate (u, v).
func V(x, y, z, u, v float64) Vertex {
	return Vertex{Pos: math3d.V4(x, y, z, 1), UV: math3d.V2(u, v)}
}

// Triangle is the unit of geometry passed through the pipeline. Winding is
// not significant; no back-face culling is done.
type Triangle struct {
	V           [3]Vertex
	Fill        Fill
	Interaction Interaction
}

// SumZ returns the sum of the vertices' Z values.
func (t *Triangle) SumZ() float64 {
	return t.V[0].Pos.Z + t.V[1].Pos.Z + t.V[2].Pos.Z
}

// SumW returns the sum of the vertices' W values.
func (t *Triangle) SumW() float64 {
	return t.V[0].Pos.W + t.V[1].Pos.W + t.V[2].Pos.W
}

// Kind reports the interaction kind, treating a nil interaction as none.
func (t *Triangle) Kind() InteractionKind {
	if t.Interaction == nil {
		return KindNone
	}
	return t.Interaction.Kind()
}

// Fill selects how a triangle's pixels are colored: Flat or Textured.
type Fill interface {
	isFill()
}

// Flat fills every covered pixel with one palette index.
type Flat struct {
	Index uint8
}

// Textured point-samples Texture. With Transparent set, texels of index 0
// are not drawn.
type Textured struct {
	Texture     *Texture
	Transparent bool
}

func (Flat) isFill()     {}
func (Textured) isFill() {}

// InteractionKind enumerates what a click on a triangle means to the editor.
type InteractionKind int

const (
	KindGround InteractionKind = iota
	KindProp
	KindPalettePane
	KindNone
	KindIgnore
)

func (k InteractionKind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindProp:
		return "prop"
	case KindPalettePane:
		return "palette pane"
	case KindNone:
		return "none"
	case KindIgnore:
		return "ignore"
	}
	return "unknown"
}

// Interaction tags a triangle with the editing action it stands for.
type Interaction interface {
	Kind() InteractionKind
}

// Ground is one half of a terrain tile quad.
type Ground struct {
	X, Z             int  // tile within the drawn window
	GlobalX, GlobalZ int  // tile within the track
	Twin             int  // pre-sort index of the other half of the quad
	Main             bool // first half of the quad
}

// Prop marks a triangle of a trackside prop. FirstTri and LastTri index the
// frame's pre-sort triangle list; LastTri is exclusive.
type Prop struct {
	Index    int
	FirstTri int
	LastTri  int
}

// PalettePane marks the texture selection pane overlay.
type PalettePane struct{}

// NoInteraction is drawn and pickable but does nothing.
type NoInteraction struct{}

// Ignore is invisible to the picker.
type Ignore struct{}

func (Ground) Kind() InteractionKind        { return KindGround }
func (Prop) Kind() InteractionKind          { return KindProp }
func (PalettePane) Kind() InteractionKind   { return KindPalettePane }
func (NoInteraction) Kind() InteractionKind { return KindNone }
func (Ignore) Kind() InteractionKind        { return KindIgnore }
