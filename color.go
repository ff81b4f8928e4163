package rendutil

import (
	"image/color"

	"github.com/gogpu/rendutil/internal/resample"
)

// Color is a resampling tint with components in [0, 1].
// Each output channel is multiplied by the channel and by A.
type Color = resample.Color

// White leaves resampled pixels unchanged.
var White = resample.White

// RGB creates an opaque tint from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// FromColor converts a standard color.Color to a tint.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// Hex creates a tint from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without
// a leading '#'. It reports false for anything else.
func Hex(hex string) (Color, bool) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	a := uint32(255)
	ok := true

	switch len(hex) {
	case 3: // RGB
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b) &&
			parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b) &&
			parseHex(hex[6:8], &a)
	default:
		return White, false
	}
	if !ok {
		return White, false
	}

	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, true
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}
