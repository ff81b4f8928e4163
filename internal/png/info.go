// Package png reads PNG files into an unfiltered sample buffer and copies
// them into ARGB bitmaps.
//
// Unlike image/png it keeps the Adam7 pass layout of interlaced images, so
// callers can merge a PNG into an existing bitmap as an alpha channel.
package png

import (
	"errors"
	"fmt"

	intImage "github.com/gogpu/rendutil/internal/image"
)

// Errors returned while reading or converting PNG data.
var (
	ErrBadSignature   = errors.New("png: bad signature")
	ErrFileTruncated  = errors.New("png: file truncated")
	ErrBadCRC         = errors.New("png: chunk CRC mismatch")
	ErrCorrupt        = errors.New("png: corrupt data")
	ErrUnsupported    = errors.New("png: unsupported format")
	ErrDecompress     = errors.New("png: decompression error")
	ErrTooLarge       = errors.New("png: image exceeds pixel limit")
	ErrBitDepth       = errors.New("png: bit depth too high for alpha overlay")
	ErrSizeMismatch   = errors.New("png: image size does not match bitmap")
	ErrNeedsExpansion = errors.New("png: sub-byte samples must be expanded first")
)

// ColorType is the IHDR colour type.
type ColorType uint8

// Colour types defined by the PNG format.
const (
	ColorGray      ColorType = 0
	ColorRGB       ColorType = 2
	ColorPalette   ColorType = 3
	ColorGrayAlpha ColorType = 4
	ColorRGBA      ColorType = 6
)

// Samples returns the number of samples per pixel, or 0 for an invalid type.
func (c ColorType) Samples() int {
	switch c {
	case ColorGray, ColorPalette:
		return 1
	case ColorGrayAlpha:
		return 2
	case ColorRGB:
		return 3
	case ColorRGBA:
		return 4
	}
	return 0
}

// String returns the colour type name.
func (c ColorType) String() string {
	switch c {
	case ColorGray:
		return "gray"
	case ColorRGB:
		return "rgb"
	case ColorPalette:
		return "palette"
	case ColorGrayAlpha:
		return "gray+alpha"
	case ColorRGBA:
		return "rgba"
	}
	return "invalid"
}

// Info is a decoded PNG file.
type Info struct {
	Width      int
	Height     int
	BitDepth   int
	ColorType  ColorType
	Interlaced bool

	// Palette holds RGB triples from PLTE.
	Palette []byte

	// Trans is the raw tRNS payload: per-entry alpha for palette images,
	// a 16-bit gray or RGB colour key otherwise.
	Trans []byte

	// Image holds unfiltered samples, one pass after another for interlaced
	// images. Rows are RowBytes long and carry no filter byte.
	Image []byte
}

// passes returns the pass layout for this image.
func (p *Info) passes() []pass {
	if p.Interlaced {
		return adam7[:]
	}
	return progressive[:]
}

// maxImageBytes caps the unfiltered sample buffer whatever the pixel
// limit. It fits the largest bitmap at 16-bit RGBA.
const maxImageBytes = intImage.MaxPixels * 8

// RowBytes returns the packed length of a row of width pixels.
// Width is bounded by the IHDR checks, so the result fits an int.
func (p *Info) RowBytes(width int) int {
	return int(rowBytes64(width, p.ColorType.Samples(), p.BitDepth))
}

func rowBytes64(width, samples, depth int) int64 {
	return (int64(width)*int64(samples)*int64(depth) + 7) >> 3
}

// PaletteLen returns the number of palette entries.
func (p *Info) PaletteLen() int {
	return len(p.Palette) / 3
}

// forEachPass calls fn with the geometry and sample data of each pass.
// Empty passes are skipped.
func (p *Info) forEachPass(fn func(ps pass, width, height, rowBytes int, data []byte)) {
	offset := 0
	for _, ps := range p.passes() {
		w, h := ps.size(p.Width, p.Height)
		if w == 0 || h == 0 {
			continue
		}
		rb := p.RowBytes(w)
		n := rb * h
		fn(ps, w, h, rb, p.Image[offset:offset+n])
		offset += n
	}
}

// imageSize returns the length of Image for the current bit depth, or
// ErrTooLarge when it would exceed maxImageBytes.
func (p *Info) imageSize() (int, error) {
	var total int64
	for _, ps := range p.passes() {
		w, h := ps.size(p.Width, p.Height)
		if w == 0 || h == 0 {
			continue
		}
		rb := rowBytes64(w, p.ColorType.Samples(), p.BitDepth)
		if rb > maxImageBytes || int64(h) > (maxImageBytes-total)/rb {
			return 0, fmt.Errorf("%w: %dx%d at %d bits", ErrTooLarge, p.Width, p.Height, p.BitDepth)
		}
		total += rb * int64(h)
	}
	return int(total), nil
}
