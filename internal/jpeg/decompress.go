// Package jpeg adapts the standard library JPEG decoder to a pull-based,
// scanline-at-a-time interface.
//
// A Decompressor reads its input through a fixed 4096-byte buffer. Fatal
// conditions found anywhere inside a call (a read error, an empty stream, a
// malformed header or an entropy decoding failure) unwind to a single
// recovery point, which releases decoder state and turns them into an
// ordinary error return. Nothing panics across the package boundary.
//
// Typical use:
//
//	d := jpeg.NewDecompressor(r, 0)
//	defer d.Destroy()
//	if err := d.ReadHeader(); err != nil { ... }
//	if err := d.StartDecompress(); err != nil { ... }
//	row := make([]byte, d.OutputWidth()*d.OutputComponents())
//	for d.OutputScanline() < d.OutputHeight() {
//		if err := d.ReadScanline(row); err != nil { ... }
//	}
//	err := d.FinishDecompress()
package jpeg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stdjpeg "image/jpeg"
	"io"
)

// DefaultMaxMemory is the decoding budget used when none is given.
const DefaultMaxMemory = 128 << 20

type state int

const (
	stateStart state = iota
	stateHeader
	stateScanning
	stateDone
	stateDestroyed
)

// Decompressor decodes one JPEG stream. It is not safe for concurrent use.
type Decompressor struct {
	src       *source
	maxMemory int64
	state     state

	frame     frame
	haveFrame bool

	img      image.Image
	scanline int
}

// NewDecompressor returns a decompressor reading from r. A maxMemory of
// zero or less selects DefaultMaxMemory.
func NewDecompressor(r io.Reader, maxMemory int64) *Decompressor {
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}
	d := &Decompressor{
		src:       newSource(r),
		maxMemory: maxMemory,
	}
	d.src.init()
	return d
}

// protect runs fn and converts a decodeError panic into a returned error.
// On failure the decompressor is aborted and cannot be reused.
func (d *Decompressor) protect(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			de, ok := r.(decodeError)
			if !ok {
				panic(r)
			}
			err = de.error
			d.abort()
		}
	}()
	fn()
	return nil
}

// abort drops decoded data after a fatal error.
func (d *Decompressor) abort() {
	d.img = nil
	d.state = stateDone
}

func (d *Decompressor) expect(s state) {
	if d.state != s {
		fatalf("%w: state %d, want %d", ErrBadState, d.state, s)
	}
}

// ReadHeader parses markers up to the first scan and makes the frame
// dimensions available.
func (d *Decompressor) ReadHeader() error {
	return d.protect(func() {
		d.expect(stateStart)
		d.src.record = true
		d.readMarkers()
		d.src.record = false
		d.state = stateHeader

		slogger().Debug("jpeg: header",
			"width", d.frame.width,
			"height", d.frame.height,
			"components", d.frame.components,
			"progressive", d.frame.progressive())
	})
}

// StartDecompress decodes the image data. The header bytes consumed by
// ReadHeader are replayed ahead of the rest of the stream.
func (d *Decompressor) StartDecompress() error {
	return d.protect(func() {
		d.expect(stateHeader)

		need := int64(d.frame.width) * int64(d.frame.height) * int64(d.frame.components)
		if need > d.maxMemory {
			fatalf("%w: %d bytes needed, %d allowed", ErrTooLarge, need, d.maxMemory)
		}

		header := d.src.recorded
		d.src.recorded = nil
		d.src.pad = d.frame.blocks * padBytesPerBlock

		img, err := stdjpeg.Decode(io.MultiReader(bytes.NewReader(header), d.src))
		if err != nil {
			fatal(fmt.Errorf("jpeg: decode: %w", err))
		}

		b := img.Bounds()
		if b.Dx() != d.frame.width || b.Dy() != d.frame.height {
			fatalf("%w: decoded %dx%d, frame says %dx%d",
				ErrBadMarker, b.Dx(), b.Dy(), d.frame.width, d.frame.height)
		}

		d.img = img
		d.scanline = 0
		d.state = stateScanning
	})
}

// OutputWidth returns the image width. Valid after ReadHeader.
func (d *Decompressor) OutputWidth() int { return d.frame.width }

// OutputHeight returns the image height. Valid after ReadHeader.
func (d *Decompressor) OutputHeight() int { return d.frame.height }

// OutputComponents returns the number of bytes per pixel that
// ReadScanline writes: 1 for grayscale, 3 for RGB, 4 for CMYK.
func (d *Decompressor) OutputComponents() int { return d.frame.components }

// OutputScanline returns the index of the next row ReadScanline will return.
func (d *Decompressor) OutputScanline() int { return d.scanline }

// Warnings returns the number of recoverable problems seen so far.
func (d *Decompressor) Warnings() int {
	if d.src == nil {
		return 0
	}
	return d.src.warnings
}

// ReadScanline writes the next row into buf, which must hold at least
// OutputWidth()*OutputComponents() bytes.
func (d *Decompressor) ReadScanline(buf []byte) error {
	return d.protect(func() {
		d.expect(stateScanning)
		if d.scanline >= d.frame.height {
			fatalf("%w: all %d scanlines already read", ErrBadState, d.frame.height)
		}
		n := d.frame.width * d.frame.components
		if len(buf) < n {
			fatalf("jpeg: scanline buffer holds %d bytes, need %d", len(buf), n)
		}

		d.convertRow(buf[:n], d.scanline)
		d.scanline++
	})
}

// convertRow copies row y of the decoded image in component order.
func (d *Decompressor) convertRow(dst []byte, y int) {
	b := d.img.Bounds()
	sy := b.Min.Y + y

	switch img := d.img.(type) {
	case *image.Gray:
		off := img.PixOffset(b.Min.X, sy)
		copy(dst, img.Pix[off:off+d.frame.width])

	case *image.YCbCr:
		for x := range d.frame.width {
			yi := img.YOffset(b.Min.X+x, sy)
			ci := img.COffset(b.Min.X+x, sy)
			r, g, bl := color.YCbCrToRGB(img.Y[yi], img.Cb[ci], img.Cr[ci])
			dst[x*3], dst[x*3+1], dst[x*3+2] = r, g, bl
		}

	case *image.CMYK:
		off := img.PixOffset(b.Min.X, sy)
		copy(dst, img.Pix[off:off+d.frame.width*4])

	default:
		// RGB-transformed frames decode to RGBA.
		for x := range d.frame.width {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, sy)).(color.NRGBA)
			switch d.frame.components {
			case 1:
				dst[x] = c.R
			case 3:
				dst[x*3], dst[x*3+1], dst[x*3+2] = c.R, c.G, c.B
			default:
				fatalf("%w: %d components decoded as %T", ErrUnsupported, d.frame.components, img)
			}
		}
	}
}

// FinishDecompress completes decoding. Every scanline must have been read.
func (d *Decompressor) FinishDecompress() error {
	return d.protect(func() {
		d.expect(stateScanning)
		if d.scanline < d.frame.height {
			fatalf("%w: %d of %d", ErrTooFewScanlines, d.scanline, d.frame.height)
		}
		d.img = nil
		d.state = stateDone
	})
}

// Destroy releases all decoder resources. It is safe to call more than
// once and after any error.
func (d *Decompressor) Destroy() {
	if d.src != nil {
		d.src.release()
		d.src = nil
	}
	d.img = nil
	d.state = stateDestroyed
}
