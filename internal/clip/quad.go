package clip

// Quad clips the axis-aligned rectangle b to clip in place and reports
// whether it was rejected entirely. When uv is not nil the corner texture
// coordinates are moved by the same fraction as each clipped edge.
//
// b must be ordered (X0 <= X1, Y0 <= Y1); Quad panics otherwise.
func Quad(b *Bounds, clip Bounds, uv *QuadTexUV) (rejected bool) {
	if !b.Ordered() {
		panic("clip: quad bounds out of order")
	}

	// trivial reject
	if b.Y1 < clip.Y0 || b.Y0 > clip.Y1 || b.X1 < clip.X0 || b.X0 > clip.X1 {
		return true
	}

	// top edge moves down: TL/TR slide toward BL/BR
	if b.Y0 < clip.Y0 {
		frac := (clip.Y0 - b.Y0) / (b.Y1 - b.Y0)
		b.Y0 = clip.Y0
		if uv != nil {
			uv.TL = uv.TL.Lerp(uv.BL, frac)
			uv.TR = uv.TR.Lerp(uv.BR, frac)
		}
	}

	// bottom edge moves up: BL/BR slide toward TL/TR
	if b.Y1 > clip.Y1 {
		frac := (b.Y1 - clip.Y1) / (b.Y1 - b.Y0)
		b.Y1 = clip.Y1
		if uv != nil {
			uv.BL = uv.BL.Lerp(uv.TL, frac)
			uv.BR = uv.BR.Lerp(uv.TR, frac)
		}
	}

	// left edge moves right: TL/BL slide toward TR/BR
	if b.X0 < clip.X0 {
		frac := (clip.X0 - b.X0) / (b.X1 - b.X0)
		b.X0 = clip.X0
		if uv != nil {
			uv.TL = uv.TL.Lerp(uv.TR, frac)
			uv.BL = uv.BL.Lerp(uv.BR, frac)
		}
	}

	// right edge moves left: TR/BR slide toward TL/BL
	if b.X1 > clip.X1 {
		frac := (b.X1 - clip.X1) / (b.X1 - b.X0)
		b.X1 = clip.X1
		if uv != nil {
			uv.TR = uv.TR.Lerp(uv.TL, frac)
			uv.BR = uv.BR.Lerp(uv.BL, frac)
		}
	}

	return false
}
