package clip

// Outcode bits for the Cohen-Sutherland algorithm.
const (
	outcodeBottom = 1 // y > clip.Y1
	outcodeTop    = 2 // y < clip.Y0
	outcodeRight  = 4 // x > clip.X1
	outcodeLeft   = 8 // x < clip.X0
)

// outcode computes the Cohen-Sutherland outcode of (x, y) against clip.
func outcode(x, y float64, clip Bounds) int {
	code := 0
	if y > clip.Y1 {
		code |= outcodeBottom
	}
	if y < clip.Y0 {
		code |= outcodeTop
	}
	if x > clip.X1 {
		code |= outcodeRight
	}
	if x < clip.X0 {
		code |= outcodeLeft
	}
	return code
}

// Line clips the segment (b.X0,b.Y0)-(b.X1,b.Y1) to clip in place and
// reports whether it was rejected entirely.
//
// A segment already inside clip is accepted on the first pass without being
// touched. Otherwise one outside endpoint at a time is moved onto the edge it
// violates, bottom and top before right and left, until the segment is either
// inside or provably outside.
func Line(b *Bounds, clip Bounds) (rejected bool) {
	for {
		code0 := outcode(b.X0, b.Y0, clip)
		code1 := outcode(b.X1, b.Y1, clip)

		// trivial accept
		if code0|code1 == 0 {
			return false
		}

		// trivial reject: both endpoints beyond the same edge
		if code0&code1 != 0 {
			return true
		}

		codeOut := code0
		if codeOut == 0 {
			codeOut = code1
		}

		var x, y float64
		switch {
		case codeOut&outcodeBottom != 0:
			x = b.X0 + (b.X1-b.X0)*(clip.Y1-b.Y0)/(b.Y1-b.Y0)
			y = clip.Y1
		case codeOut&outcodeTop != 0:
			x = b.X0 + (b.X1-b.X0)*(clip.Y0-b.Y0)/(b.Y1-b.Y0)
			y = clip.Y0
		case codeOut&outcodeRight != 0:
			y = b.Y0 + (b.Y1-b.Y0)*(clip.X1-b.X0)/(b.X1-b.X0)
			x = clip.X1
		default:
			y = b.Y0 + (b.Y1-b.Y0)*(clip.X0-b.X0)/(b.X1-b.X0)
			x = clip.X0
		}

		if codeOut == code0 {
			b.X0, b.Y0 = x, y
		} else {
			b.X1, b.Y1 = x, y
		}
	}
}
