package clip

import "math"

// LineToQuad converts the directed segment (b.X0,b.Y0)->(b.X1,b.Y1) drawn
// with the given width into the four corners of a quad.
//
// The first result holds the two corners at the start point, the second
// the two corners at the end point; each pair is (p - n, p + n) packed as
// (X0,Y0) and (X1,Y1), where n is the half-width vector rotated 90 degrees
// from the line direction. A positive lengthExtension lengthens the segment
// by half that amount at each end before the corners are computed.
//
// A zero-length segment has no direction, so the diagonal (1,1) is used
// and the result is a diamond whose corners lie width/2 from the point.
func LineToQuad(b Bounds, width, lengthExtension float64) (Bounds, Bounds) {
	halfWidth := width * 0.5

	unitx := b.X1 - b.X0
	unity := b.Y1 - b.Y0

	if unitx == 0 && unity == 0 {
		// Moving each end halfWidth/√2 along the diagonal and offsetting by
		// the same length perpendicular to it puts all four corners of the
		// diamond halfWidth from the point.
		unitx = halfWidth * 0.5
		unity = unitx
		b.X0 -= unitx
		b.Y0 -= unity
		b.X1 += unitx
		b.Y1 += unity
	} else {
		length := math.Hypot(unitx, unity)

		if lengthExtension > 0 {
			halfExtension := lengthExtension * 0.5
			dirx := unitx / length
			diry := unity / length

			b.X0 -= dirx * halfExtension
			b.Y0 -= diry * halfExtension
			b.X1 += dirx * halfExtension
			b.Y1 += diry * halfExtension
		}

		// prescale the direction to the half-width
		inv := halfWidth / length
		unitx *= inv
		unity *= inv
	}

	// rotate by ±90 degrees and add to both endpoints
	return Bounds{X0: b.X0 - unity, Y0: b.Y0 + unitx, X1: b.X0 + unity, Y1: b.Y0 - unitx},
		Bounds{X0: b.X1 - unity, Y0: b.Y1 + unitx, X1: b.X1 + unity, Y1: b.Y1 - unitx}
}
