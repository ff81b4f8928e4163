package resample

import (
	"golang.org/x/image/math/fixed"

	intImage "github.com/gogpu/rendutil/internal/image"
)

// bilinear resamples with a four-tap bilinear filter centered on each
// destination pixel's footprint.
func bilinear(dst, src *intImage.Bitmap, f factors, dx, dy fixed.Int52_12) {
	maxx := fixed.Int52_12(int64(src.Width()) << 12)
	maxy := fixed.Int52_12(int64(src.Height()) << 12)

	// fetch returns transparent black for taps outside the source.
	fetch := func(px, py fixed.Int52_12) uint32 {
		if px < 0 || px >= maxx || py < 0 || py >= maxy {
			return 0
		}
		return src.Pix(px.Floor(), py.Floor())
	}

	for y := range dst.Height() {
		starty := at(y, dy)
		drow := dst.Row(y)

		for x := range drow {
			startx := at(x, dx)

			// Move to the footprint center, then back half a cell so the
			// reference point sits between pixel centers. This goes
			// negative on the first row and column.
			curx := startx + dx/2 - half
			cury := starty + dy/2 - half
			nextx := curx + one
			nexty := cury + one

			pix0 := fetch(curx, cury)
			pix1 := fetch(nextx, cury)
			pix2 := fetch(curx, nexty)
			pix3 := fetch(nextx, nexty)

			fx := uint32(curx & fracMask)
			fy := uint32(cury & fracMask)

			w0 := (4096 - fx) * (4096 - fy) // top left
			w1 := fx * (4096 - fy)          // top right
			w2 := (4096 - fx) * fy          // bottom left
			w3 := fx * fy                   // bottom right

			sumr := w0*uint32(intImage.Red(pix0)) + w1*uint32(intImage.Red(pix1)) +
				w2*uint32(intImage.Red(pix2)) + w3*uint32(intImage.Red(pix3))
			sumg := w0*uint32(intImage.Green(pix0)) + w1*uint32(intImage.Green(pix1)) +
				w2*uint32(intImage.Green(pix2)) + w3*uint32(intImage.Green(pix3))
			sumb := w0*uint32(intImage.Blue(pix0)) + w1*uint32(intImage.Blue(pix1)) +
				w2*uint32(intImage.Blue(pix2)) + w3*uint32(intImage.Blue(pix3))
			suma := w0*uint32(intImage.Alpha(pix0)) + w1*uint32(intImage.Alpha(pix1)) +
				w2*uint32(intImage.Alpha(pix2)) + w3*uint32(intImage.Alpha(pix3))

			f.store(&drow[x],
				(suma>>24)*f.a/256,
				(sumr>>24)*f.r/256,
				(sumg>>24)*f.g/256,
				(sumb>>24)*f.b/256)
		}
	}
}
