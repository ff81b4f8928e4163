package image

// PackARGB packs 8-bit channels into a 0xAARRGGBB pixel.
func PackARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// PackRGB packs an opaque pixel.
func PackRGB(r, g, b uint8) uint32 {
	return PackARGB(0xff, r, g, b)
}

// PackClamped packs channel sums, saturating each at 255.
func PackClamped(a, r, g, b uint32) uint32 {
	return PackARGB(sat8(a), sat8(r), sat8(g), sat8(b))
}

func sat8(v uint32) uint8 {
	if v > 0xff {
		return 0xff
	}
	return uint8(v)
}

// Alpha returns the alpha channel of a packed pixel.
func Alpha(c uint32) uint8 { return uint8(c >> 24) }

// Red returns the red channel of a packed pixel.
func Red(c uint32) uint8 { return uint8(c >> 16) }

// Green returns the green channel of a packed pixel.
func Green(c uint32) uint8 { return uint8(c >> 8) }

// Blue returns the blue channel of a packed pixel.
func Blue(c uint32) uint8 { return uint8(c) }

// Unpack splits a packed pixel into its channels.
func Unpack(c uint32) (a, r, g, b uint8) {
	return Alpha(c), Red(c), Green(c), Blue(c)
}

// WithAlpha replaces the alpha channel of c.
func WithAlpha(c uint32, a uint8) uint32 {
	return c&0x00ffffff | uint32(a)<<24
}

// Brightness returns the perceptual brightness of an RGB triple,
// weighted 0.222 red, 0.707 green, 0.071 blue.
func Brightness(r, g, b uint8) uint8 {
	return uint8((uint32(r)*222 + uint32(g)*707 + uint32(b)*71) / 1000)
}
