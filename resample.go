package rendutil

import "github.com/gogpu/rendutil/internal/resample"

// ResampleHQ scales src into dst, filling every pixel of dst. dst keeps
// its size; an empty dst or src makes the call a no-op.
//
// The sampler depends on the scale. Shrinking on either axis, or passing
// force, uses an area-weighted box filter. Exact integer magnification
// uses nearest-pixel sampling; any other magnification is bilinear.
//
// Each output pixel is multiplied by tint. When tint.A is below one the
// result is blended over the existing dst pixel.
func ResampleHQ(dst, src *Bitmap, tint Color, force bool) {
	s := resample.Resample(dst, src, tint, force)
	if s == resample.StrategyNone {
		return
	}
	Logger().Debug("rendutil: resample",
		"src_width", src.Width(),
		"src_height", src.Height(),
		"dst_width", dst.Width(),
		"dst_height", dst.Height(),
		"strategy", s)
}
