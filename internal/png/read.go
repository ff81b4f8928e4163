package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"

	intImage "github.com/gogpu/rendutil/internal/image"
)

const signature = "\x89PNG\r\n\x1a\n"

// maxChunkLength is the largest chunk length the format allows.
const maxChunkLength = 0x7fffffff

// VerifyHeader reads the 8-byte signature and reports whether it is a PNG.
func VerifyHeader(r io.Reader) error {
	var sig [len(signature)]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return truncated(err)
	}
	if string(sig[:]) != signature {
		return ErrBadSignature
	}
	return nil
}

type chunk struct {
	typ  [4]byte
	data []byte
}

func (c *chunk) name() string { return string(c.typ[:]) }

// critical reports whether a decoder must understand the chunk.
func (c *chunk) critical() bool { return c.typ[0]&0x20 == 0 }

func readChunk(r io.Reader) (chunk, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return chunk{}, truncated(err)
	}

	length := binary.BigEndian.Uint32(hdr[:4])
	if length > maxChunkLength {
		return chunk{}, fmt.Errorf("%w: chunk length %d", ErrCorrupt, length)
	}

	c := chunk{typ: [4]byte(hdr[4:8])}

	// Stream the payload so a bogus length fails on EOF rather than on
	// an up-front allocation.
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(length)); err != nil {
		return chunk{}, truncated(err)
	}
	c.data = buf.Bytes()

	var crcBuf [4]byte
	if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
		return chunk{}, truncated(err)
	}

	crc := crc32.NewIEEE()
	_, _ = crc.Write(c.typ[:])
	_, _ = crc.Write(c.data)
	if crc.Sum32() != binary.BigEndian.Uint32(crcBuf[:]) {
		return chunk{}, fmt.Errorf("%w: %s", ErrBadCRC, c.name())
	}

	return c, nil
}

// ReadFile reads a complete PNG stream. Images whose width×height exceeds
// maxPixels, or the bitmap cap when maxPixels is zero or less, are rejected
// before any image data is inflated.
func ReadFile(r io.Reader, maxPixels int64) (*Info, error) {
	if err := VerifyHeader(r); err != nil {
		return nil, err
	}

	p := &Info{}
	var idat bytes.Buffer
	seenHeader := false

	for {
		c, err := readChunk(r)
		if err != nil {
			return nil, err
		}

		if !seenHeader && c.name() != "IHDR" {
			return nil, fmt.Errorf("%w: first chunk is %s", ErrCorrupt, c.name())
		}

		switch c.name() {
		case "IHDR":
			if seenHeader {
				return nil, fmt.Errorf("%w: duplicate IHDR", ErrCorrupt)
			}
			if err := p.parseHeader(c.data, maxPixels); err != nil {
				return nil, err
			}
			seenHeader = true

		case "PLTE":
			if len(c.data)%3 != 0 || len(c.data) == 0 || len(c.data) > 256*3 {
				return nil, fmt.Errorf("%w: PLTE length %d", ErrCorrupt, len(c.data))
			}
			p.Palette = c.data

		case "tRNS":
			p.Trans = c.data

		case "IDAT":
			idat.Write(c.data)

		case "IEND":
			if err := p.validate(); err != nil {
				return nil, err
			}
			if err := p.inflate(&idat); err != nil {
				return nil, err
			}
			return p, nil

		default:
			if c.critical() {
				return nil, fmt.Errorf("%w: critical chunk %s", ErrUnsupported, c.name())
			}
		}
	}
}

func (p *Info) parseHeader(data []byte, maxPixels int64) error {
	if len(data) != 13 {
		return fmt.Errorf("%w: IHDR length %d", ErrCorrupt, len(data))
	}

	w := binary.BigEndian.Uint32(data[0:])
	h := binary.BigEndian.Uint32(data[4:])
	if w == 0 || h == 0 || w > maxChunkLength || h > maxChunkLength {
		return fmt.Errorf("%w: dimensions %dx%d", ErrCorrupt, w, h)
	}
	if maxPixels <= 0 || maxPixels > intImage.MaxPixels {
		maxPixels = intImage.MaxPixels
	}
	if int64(w)*int64(h) > maxPixels {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, w, h)
	}

	p.Width = int(w)
	p.Height = int(h)
	p.BitDepth = int(data[8])
	p.ColorType = ColorType(data[9])

	if data[10] != 0 {
		return fmt.Errorf("%w: compression method %d", ErrUnsupported, data[10])
	}
	if data[11] != 0 {
		return fmt.Errorf("%w: filter method %d", ErrUnsupported, data[11])
	}
	switch data[12] {
	case 0:
	case 1:
		p.Interlaced = true
	default:
		return fmt.Errorf("%w: interlace method %d", ErrUnsupported, data[12])
	}

	if !validDepth(p.ColorType, p.BitDepth) {
		return fmt.Errorf("%w: %s at bit depth %d", ErrCorrupt, p.ColorType, p.BitDepth)
	}
	return nil
}

func validDepth(c ColorType, depth int) bool {
	switch c {
	case ColorGray:
		return depth == 1 || depth == 2 || depth == 4 || depth == 8 || depth == 16
	case ColorPalette:
		return depth == 1 || depth == 2 || depth == 4 || depth == 8
	case ColorRGB, ColorGrayAlpha, ColorRGBA:
		return depth == 8 || depth == 16
	}
	return false
}

// validate checks cross-chunk constraints once all chunks are read.
func (p *Info) validate() error {
	switch p.ColorType {
	case ColorPalette:
		if p.Palette == nil {
			return fmt.Errorf("%w: palette image without PLTE", ErrCorrupt)
		}
		if len(p.Trans) > p.PaletteLen() {
			return fmt.Errorf("%w: tRNS has %d entries for %d colours", ErrCorrupt, len(p.Trans), p.PaletteLen())
		}
	case ColorGray:
		if p.Trans != nil && len(p.Trans) != 2 {
			return fmt.Errorf("%w: gray tRNS length %d", ErrCorrupt, len(p.Trans))
		}
	case ColorRGB:
		if p.Trans != nil && len(p.Trans) != 6 {
			return fmt.Errorf("%w: rgb tRNS length %d", ErrCorrupt, len(p.Trans))
		}
	default:
		if p.Trans != nil {
			return fmt.Errorf("%w: tRNS with %s", ErrCorrupt, p.ColorType)
		}
	}
	return nil
}

// inflate decompresses the concatenated IDAT payload and unfilters every
// pass into p.Image.
func (p *Info) inflate(idat *bytes.Buffer) error {
	if idat.Len() == 0 {
		return fmt.Errorf("%w: no IDAT", ErrCorrupt)
	}

	size, err := p.imageSize()
	if err != nil {
		return err
	}

	zr, err := zlib.NewReader(idat)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	defer zr.Close()

	bpp := max(1, p.ColorType.Samples()*p.BitDepth/8)
	p.Image = make([]byte, size)

	offset := 0
	var filter [1]byte
	for _, ps := range p.passes() {
		w, h := ps.size(p.Width, p.Height)
		if w == 0 || h == 0 {
			continue
		}
		rb := p.RowBytes(w)

		var prev []byte
		for range h {
			cur := p.Image[offset : offset+rb]
			if _, err := io.ReadFull(zr, filter[:]); err != nil {
				return inflateError(err)
			}
			if _, err := io.ReadFull(zr, cur); err != nil {
				return inflateError(err)
			}
			if err := unfilter(filter[0], cur, prev, bpp); err != nil {
				return err
			}
			prev = cur
			offset += rb
		}
	}
	return nil
}

func inflateError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: image data too short", ErrDecompress)
	}
	return fmt.Errorf("%w: %w", ErrDecompress, err)
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrFileTruncated
	}
	return fmt.Errorf("png: read: %w", err)
}
