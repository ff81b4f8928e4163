package png

import (
	"encoding/binary"
	"fmt"

	intImage "github.com/gogpu/rendutil/internal/image"
)

// sampleReader reads 8 or 16-bit samples from an unfiltered row. 16-bit
// samples are narrowed to their high byte.
type sampleReader struct {
	row     []byte
	samples int
	wide    bool
}

// at returns sample i of pixel x, narrowed to 8 bits.
func (s sampleReader) at(x, i int) uint8 {
	idx := x*s.samples + i
	if s.wide {
		return s.row[idx*2]
	}
	return s.row[idx]
}

// at16 returns sample i of pixel x at full precision.
func (s sampleReader) at16(x, i int) uint16 {
	idx := x*s.samples + i
	if s.wide {
		return binary.BigEndian.Uint16(s.row[idx*2:])
	}
	return uint16(s.row[idx])
}

// colourKey returns the tRNS key for gray and RGB images.
func (p *Info) colourKey() (key [3]uint16, ok bool) {
	switch {
	case p.ColorType == ColorGray && len(p.Trans) == 2:
		key[0] = binary.BigEndian.Uint16(p.Trans)
		return key, true
	case p.ColorType == ColorRGB && len(p.Trans) == 6:
		for i := range key {
			key[i] = binary.BigEndian.Uint16(p.Trans[i*2:])
		}
		return key, true
	}
	return key, false
}

// CopyToBitmap allocates dst to the image size and fills it with the
// decoded pixels. hasAlpha reports whether any pixel is not fully opaque.
// Sub-byte images must go through ExpandBuffer8Bit first.
func (p *Info) CopyToBitmap(dst *intImage.Bitmap, maxPixels int64) (hasAlpha bool, err error) {
	if p.BitDepth < 8 {
		dst.Reset()
		return false, ErrNeedsExpansion
	}
	if err := dst.AllocateLimited(p.Width, p.Height, maxPixels); err != nil {
		return false, fmt.Errorf("png: %dx%d: %w", p.Width, p.Height, err)
	}

	key, keyed := p.colourKey()
	paletteLen := p.PaletteLen()
	accum := uint8(0xff)

	var bad error
	p.forEachPass(func(ps pass, width, height, rowBytes int, data []byte) {
		for y := 0; y < height && bad == nil; y++ {
			s := sampleReader{
				row:     data[y*rowBytes : (y+1)*rowBytes],
				samples: p.ColorType.Samples(),
				wide:    p.BitDepth == 16,
			}
			drow := dst.Row(ps.y(y))

			for x := range width {
				var a, r, g, b uint8 = 0xff, 0, 0, 0

				switch p.ColorType {
				case ColorPalette:
					idx := int(s.at(x, 0))
					if idx >= paletteLen {
						bad = fmt.Errorf("%w: palette index %d of %d", ErrCorrupt, idx, paletteLen)
						return
					}
					r, g, b = p.Palette[idx*3], p.Palette[idx*3+1], p.Palette[idx*3+2]
					if idx < len(p.Trans) {
						a = p.Trans[idx]
					}

				case ColorGray:
					r = s.at(x, 0)
					g, b = r, r
					if keyed && s.at16(x, 0) == key[0] {
						a = 0
					}

				case ColorGrayAlpha:
					r = s.at(x, 0)
					g, b = r, r
					a = s.at(x, 1)

				case ColorRGB:
					r, g, b = s.at(x, 0), s.at(x, 1), s.at(x, 2)
					if keyed && s.at16(x, 0) == key[0] && s.at16(x, 1) == key[1] && s.at16(x, 2) == key[2] {
						a = 0
					}

				case ColorRGBA:
					r, g, b = s.at(x, 0), s.at(x, 1), s.at(x, 2)
					a = s.at(x, 3)
				}

				accum &= a
				drow[ps.x(x)] = intImage.PackARGB(a, r, g, b)
			}
		}
	})

	if bad != nil {
		dst.Reset()
		return false, bad
	}
	return accum != 0xff, nil
}

// CopyAlphaToBitmap replaces the alpha channel of dst with a value derived
// from each PNG pixel, keeping dst's RGB. Palette and RGB pixels contribute
// their brightness; gray pixels contribute the gray level (the alpha sample
// of gray+alpha images is ignored). dst must already match the image size.
func (p *Info) CopyAlphaToBitmap(dst *intImage.Bitmap) (hasAlpha bool, err error) {
	if dst.Width() != p.Width || dst.Height() != p.Height {
		return false, fmt.Errorf("%w: %dx%d onto %dx%d",
			ErrSizeMismatch, p.Width, p.Height, dst.Width(), dst.Height())
	}
	if p.BitDepth > 8 {
		return false, fmt.Errorf("%w: %d bits (8 bit max)", ErrBitDepth, p.BitDepth)
	}
	if p.BitDepth < 8 {
		return false, ErrNeedsExpansion
	}

	if p.ColorType == ColorPalette {
		paletteLen := p.PaletteLen()
		for _, v := range p.Image {
			if int(v) >= paletteLen {
				return false, fmt.Errorf("%w: palette index %d of %d", ErrCorrupt, v, paletteLen)
			}
		}
	}

	samples := p.ColorType.Samples()
	accum := uint8(0xff)

	p.forEachPass(func(ps pass, width, height, rowBytes int, data []byte) {
		for y := range height {
			row := data[y*rowBytes : (y+1)*rowBytes]
			drow := dst.Row(ps.y(y))

			for x := range width {
				px := row[x*samples : (x+1)*samples]

				var alpha uint8
				switch p.ColorType {
				case ColorPalette:
					e := p.Palette[int(px[0])*3:]
					alpha = intImage.Brightness(e[0], e[1], e[2])
				case ColorGray, ColorGrayAlpha:
					alpha = px[0]
				default:
					alpha = intImage.Brightness(px[0], px[1], px[2])
				}

				accum &= alpha
				d := &drow[ps.x(x)]
				*d = intImage.WithAlpha(*d, alpha)
			}
		}
	})

	return accum != 0xff, nil
}
