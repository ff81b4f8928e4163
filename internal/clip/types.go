// Package clip provides clipping of render primitives against an
// axis-aligned rectangle, and conversion of thick lines into quads.
package clip

import "math"

// Bounds holds the two corners of a primitive.
//
// For quads (X0,Y0) is the top-left and (X1,Y1) the bottom-right corner,
// with X0 <= X1 and Y0 <= Y1. For lines the two points are the directed
// endpoints and may appear in any order.
type Bounds struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Width returns X1 - X0.
func (b Bounds) Width() float64 {
	return b.X1 - b.X0
}

// Height returns Y1 - Y0.
func (b Bounds) Height() float64 {
	return b.Y1 - b.Y0
}

// Ordered reports whether X0 <= X1 and Y0 <= Y1.
func (b Bounds) Ordered() bool {
	return b.X0 <= b.X1 && b.Y0 <= b.Y1
}

// Normalize returns b with each axis sorted so that it is Ordered.
func (b Bounds) Normalize() Bounds {
	return Bounds{
		X0: math.Min(b.X0, b.X1),
		Y0: math.Min(b.Y0, b.Y1),
		X1: math.Max(b.X0, b.X1),
		Y1: math.Max(b.Y0, b.Y1),
	}
}

// TexUV is a texture coordinate.
type TexUV struct {
	U, V float64
}

// Lerp performs linear interpolation between t and o.
func (t TexUV) Lerp(o TexUV, frac float64) TexUV {
	return TexUV{
		U: t.U + (o.U-t.U)*frac,
		V: t.V + (o.V-t.V)*frac,
	}
}

// QuadTexUV holds the texture coordinates of a quad's four corners.
type QuadTexUV struct {
	TL, TR TexUV // top left, top right
	BL, BR TexUV // bottom left, bottom right
}

// FullQuad maps the whole texture onto a quad.
var FullQuad = QuadTexUV{
	TL: TexUV{0, 0},
	TR: TexUV{1, 0},
	BL: TexUV{0, 1},
	BR: TexUV{1, 1},
}
