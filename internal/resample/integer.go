package resample

import (
	"golang.org/x/image/math/fixed"

	intImage "github.com/gogpu/rendutil/internal/image"
)

// integer resamples by plain nearest-pixel blitting.
func integer(dst, src *intImage.Bitmap, f factors, dx, dy fixed.Int52_12) {
	maxX, maxY := src.Width()-1, src.Height()-1

	for y := range dst.Height() {
		// rounded-up steps can land one past the last row on tall targets
		srow := src.Row(min(at(y, dy).Floor(), maxY))
		drow := dst.Row(y)

		for x := range drow {
			pix := srow[min(at(x, dx).Floor(), maxX)]

			f.store(&drow[x],
				uint32(intImage.Alpha(pix))*f.a/256,
				uint32(intImage.Red(pix))*f.r/256,
				uint32(intImage.Green(pix))*f.g/256,
				uint32(intImage.Blue(pix))*f.b/256)
		}
	}
}
