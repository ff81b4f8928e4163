package resample

import intImage "github.com/gogpu/rendutil/internal/image"

// Color is a tint applied while resampling. Channels are in [0, 1];
// values outside that range are clamped.
type Color struct {
	R, G, B, A float64
}

// White is the identity tint.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// factors holds the tint premultiplied by its alpha, in 8.8 fixed point
// (256 means 1.0).
type factors struct {
	r, g, b, a uint32
}

func newFactors(c Color) factors {
	return factors{
		r: scale256(c.R * c.A),
		g: scale256(c.G * c.A),
		b: scale256(c.B * c.A),
		a: scale256(c.A),
	}
}

func scale256(v float64) uint32 {
	v *= 256
	if v <= 0 || v != v {
		return 0
	}
	if v >= 256 {
		return 256
	}
	return uint32(v)
}

// store writes the tinted channel values into *dst. When the tint is
// translucent the existing destination pixel contributes with weight
// (256 - a)/256.
func (f factors) store(dst *uint32, a, r, g, b uint32) {
	if f.a < 256 {
		inv := 256 - f.a
		d := *dst
		a += uint32(intImage.Alpha(d)) * inv / 256
		r += uint32(intImage.Red(d)) * inv / 256
		g += uint32(intImage.Green(d)) * inv / 256
		b += uint32(intImage.Blue(d)) * inv / 256
	}
	*dst = intImage.PackClamped(a, r, g, b)
}
