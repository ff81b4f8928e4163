package rendutil

import "github.com/gogpu/rendutil/internal/clip"

// Bounds is an axis-aligned rectangle, or a line segment from (X0, Y0) to
// (X1, Y1).
type Bounds = clip.Bounds

// TexUV is a texture coordinate.
type TexUV = clip.TexUV

// QuadTexUV holds the texture coordinates of a quad's four corners.
type QuadTexUV = clip.QuadTexUV

// FullQuad maps the whole texture, (0,0) to (1,1), onto a quad.
var FullQuad = clip.FullQuad

// ClipLine clips the segment in b to clip using Cohen-Sutherland and
// reports whether it was rejected. b is updated in place; it is unchanged
// when the segment lies fully inside.
func ClipLine(b *Bounds, clipRect Bounds) bool {
	return clip.Line(b, clipRect)
}

// ClipQuad clips an axis-aligned quad to clip and reports whether it was
// rejected. Each edge that moves also moves the matching pair of texture
// coordinates in uv (which may be nil) by the same fraction.
//
// b must be ordered (X0 <= X1, Y0 <= Y1); ClipQuad panics otherwise.
func ClipQuad(b *Bounds, clipRect Bounds, uv *QuadTexUV) bool {
	return clip.Quad(b, clipRect, uv)
}

// LineToQuad expands the segment in b into a quad width units wide. The
// first result holds the two corners at the start of the segment, the
// second the two at the end. lengthExtension, when positive, lengthens the
// segment by half that amount at each end.
//
// A zero-length segment becomes a diamond whose corners are width/2 from
// the point.
func LineToQuad(b Bounds, width, lengthExtension float64) (Bounds, Bounds) {
	return clip.LineToQuad(b, width, lengthExtension)
}
