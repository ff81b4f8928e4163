// Package resample implements fixed-point ARGB32 bitmap resampling.
//
// Three samplers are provided. Integer (nearest) sampling is exact for
// whole-number magnification, bilinear sampling covers fractional
// magnification, and a box filter ("weighted average") is used whenever the
// source is shrunk, because it is the only one of the three that lets every
// covered source pixel contribute.
//
// Source coordinates are fixed.Int52_12 values: 12 fractional bits, so one
// source pixel is 4096 units.
package resample

import (
	"math"

	"golang.org/x/image/math/fixed"

	intImage "github.com/gogpu/rendutil/internal/image"
)

const (
	one      fixed.Int52_12 = 1 << 12 // one source pixel
	half     fixed.Int52_12 = one / 2
	fracMask fixed.Int52_12 = one - 1
)

// Strategy identifies the sampler chosen for a resample call.
type Strategy uint8

const (
	// StrategyNone means nothing was drawn (empty source or destination).
	StrategyNone Strategy = iota

	// StrategyAverage is the area-weighted box filter.
	StrategyAverage

	// StrategyInteger is nearest-pixel sampling for exact integer scales.
	StrategyInteger

	// StrategyBilinear is four-tap bilinear interpolation.
	StrategyBilinear
)

// String returns a string representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "None"
	case StrategyAverage:
		return "Average"
	case StrategyInteger:
		return "Integer"
	case StrategyBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// Plan is the sampler selection for a given pair of sizes.
// DX and DY are the per-destination-pixel source steps.
type Plan struct {
	Strategy Strategy
	DX, DY   fixed.Int52_12
}

// Choose selects a sampler for resampling a sw×sh source into a dw×dh
// destination. When force is set the box filter is always used.
func Choose(sw, sh, dw, dh int, force bool) Plan {
	if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return Plan{}
	}

	dx := fixed.Int52_12((int64(sw) << 12) / int64(dw))
	dy := fixed.Int52_12((int64(sh) << 12) / int64(dh))

	// source is higher resolution than the target on some axis
	if dx > one || dy > one || force {
		return Plan{Strategy: StrategyAverage, DX: dx, DY: dy}
	}

	dx = fixed.Int52_12(math.Ceil(float64(int64(sw)<<12) / float64(dw)))
	dy = fixed.Int52_12(math.Ceil(float64(int64(sh)<<12) / float64(dh)))

	if dw%sw == 0 && dh%sh == 0 {
		return Plan{Strategy: StrategyInteger, DX: dx, DY: dy}
	}
	return Plan{Strategy: StrategyBilinear, DX: dx, DY: dy}
}

// Resample fills every pixel of dst from src, scaled by tint, and returns
// the strategy that was used. dst keeps its size and storage. If the tint
// alpha is below one, the result is composited over the existing contents
// of dst.
func Resample(dst, src *intImage.Bitmap, tint Color, force bool) Strategy {
	if !dst.Valid() || !src.Valid() {
		return StrategyNone
	}

	plan := Choose(src.Width(), src.Height(), dst.Width(), dst.Height(), force)
	f := newFactors(tint)

	switch plan.Strategy {
	case StrategyAverage:
		average(dst, src, f, plan.DX, plan.DY)
	case StrategyInteger:
		integer(dst, src, f, plan.DX, plan.DY)
	case StrategyBilinear:
		bilinear(dst, src, f, plan.DX, plan.DY)
	}
	return plan.Strategy
}

// at returns the source position of destination index i for step d.
func at(i int, d fixed.Int52_12) fixed.Int52_12 {
	return fixed.Int52_12(int64(i) * int64(d))
}
