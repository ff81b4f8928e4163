package resample

import (
	"golang.org/x/image/math/fixed"

	intImage "github.com/gogpu/rendutil/internal/image"
)

// average resamples with a box filter: every source pixel under a
// destination pixel's footprint contributes in proportion to the covered
// area.
func average(dst, src *intImage.Bitmap, f factors, dx, dy fixed.Int52_12) {
	sumscale := uint64(dx) * uint64(dy)

	for y := range dst.Height() {
		starty := at(y, dy)
		drow := dst.Row(y)

		for x := range drow {
			var sumr, sumg, sumb, suma uint64

			footprint(at(x, dx), starty, dx, dy, func(sx, sy int, weight uint64) {
				pix := src.Pix(sx, sy)
				sumr += weight * uint64(intImage.Red(pix))
				sumg += weight * uint64(intImage.Green(pix))
				sumb += weight * uint64(intImage.Blue(pix))
				suma += weight * uint64(intImage.Alpha(pix))
			})

			// Truncate to the 8-bit average before applying the tint.
			f.store(&drow[x],
				uint32((suma/sumscale)*uint64(f.a)/256),
				uint32((sumr/sumscale)*uint64(f.r)/256),
				uint32((sumg/sumscale)*uint64(f.g)/256),
				uint32((sumb/sumscale)*uint64(f.b)/256))
		}
	}
}

// footprint walks the source cells covered by the dx×dy box starting at
// (startx, starty), calling visit with each cell's integer coordinates and
// its overlap area. Each step is clamped to the next cell boundary, so the
// weights of one call always sum to dx·dy.
func footprint(startx, starty, dx, dy fixed.Int52_12, visit func(sx, sy int, weight uint64)) {
	yremaining := dy
	for cury := starty; yremaining > 0; {
		ychunk := min(one-cury&fracMask, yremaining)
		yremaining -= ychunk

		xremaining := dx
		for curx := startx; xremaining > 0; {
			xchunk := min(one-curx&fracMask, xremaining)
			xremaining -= xchunk

			visit(curx.Floor(), cury.Floor(), uint64(xchunk)*uint64(ychunk))
			curx += xchunk
		}
		cury += ychunk
	}
}
