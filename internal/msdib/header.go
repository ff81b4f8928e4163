// Package msdib reads device-independent bitmap (.bmp) files.
//
// Header validation is done here; pixel decoding is delegated to
// golang.org/x/image/bmp.
package msdib

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Errors returned by header checks and bitmap reads.
var (
	// ErrFileTruncated is returned when the stream ends inside a header.
	ErrFileTruncated = errors.New("msdib: file truncated")

	// ErrInvalidHeader is returned when a header field is inconsistent.
	ErrInvalidHeader = errors.New("msdib: invalid header")

	// ErrUnsupported is returned for header variants that cannot be decoded.
	ErrUnsupported = errors.New("msdib: unsupported format")
)

const fileHeaderSize = 14

// Known info header sizes.
const (
	infoSizeCore = 12  // OS/2 1.x BITMAPCOREHEADER
	infoSizeWin3 = 40  // BITMAPINFOHEADER
	infoSizeV2   = 52  // with RGB masks
	infoSizeV3   = 56  // with RGBA masks
	infoSizeOS2  = 64  // OS/2 2.x BITMAPINFOHEADER2
	infoSizeV4   = 108 // BITMAPV4HEADER
	infoSizeV5   = 124 // BITMAPV5HEADER
)

const infoSizeMaxLen = infoSizeV5

// FileHeader is the 14-byte BITMAPFILEHEADER.
type FileHeader struct {
	Type       [2]byte
	Size       uint32
	Reserved1  uint16
	Reserved2  uint16
	DataOffset uint32
}

// InfoHeader holds the fields common to every info header variant.
// Height is negative for top-down bitmaps.
type InfoHeader struct {
	Size        uint32
	Width       int32
	Height      int32
	Planes      uint16
	BitCount    uint16
	Compression uint32
}

// Header is the parsed header of a DIB file, plus the raw bytes consumed
// while parsing it.
type Header struct {
	File FileHeader
	Info InfoHeader

	raw []byte
}

// Width returns the bitmap width in pixels.
func (h *Header) Width() int {
	return int(h.Info.Width)
}

// Height returns the bitmap height in pixels, ignoring row order.
func (h *Header) Height() int {
	if h.Info.Height < 0 {
		return -int(h.Info.Height)
	}
	return int(h.Info.Height)
}

// ReadHeader reads and validates the file header and info header.
func ReadHeader(r io.Reader) (*Header, error) {
	h := &Header{raw: make([]byte, fileHeaderSize+4, fileHeaderSize+infoSizeMaxLen)}

	if _, err := io.ReadFull(r, h.raw); err != nil {
		return nil, truncated(err)
	}

	h.File.Type = [2]byte{h.raw[0], h.raw[1]}
	h.File.Size = binary.LittleEndian.Uint32(h.raw[2:])
	h.File.Reserved1 = binary.LittleEndian.Uint16(h.raw[6:])
	h.File.Reserved2 = binary.LittleEndian.Uint16(h.raw[8:])
	h.File.DataOffset = binary.LittleEndian.Uint32(h.raw[10:])
	h.Info.Size = binary.LittleEndian.Uint32(h.raw[14:])

	if h.File.Type != [2]byte{'B', 'M'} {
		return nil, fmt.Errorf("%w: bad signature %q", ErrInvalidHeader, h.File.Type[:])
	}

	switch h.Info.Size {
	case infoSizeCore, infoSizeWin3, infoSizeV2, infoSizeV3, infoSizeOS2, infoSizeV4, infoSizeV5:
	default:
		return nil, fmt.Errorf("%w: info header size %d", ErrInvalidHeader, h.Info.Size)
	}

	if h.File.DataOffset < fileHeaderSize+h.Info.Size {
		return nil, fmt.Errorf("%w: pixel data offset %d inside headers", ErrInvalidHeader, h.File.DataOffset)
	}

	info := h.raw[len(h.raw):fileHeaderSize+h.Info.Size]
	if _, err := io.ReadFull(r, info); err != nil {
		return nil, truncated(err)
	}
	h.raw = h.raw[:fileHeaderSize+h.Info.Size]
	body := h.raw[fileHeaderSize:]

	if h.Info.Size == infoSizeCore {
		h.Info.Width = int32(binary.LittleEndian.Uint16(body[4:]))
		h.Info.Height = int32(binary.LittleEndian.Uint16(body[6:]))
		h.Info.Planes = binary.LittleEndian.Uint16(body[8:])
		h.Info.BitCount = binary.LittleEndian.Uint16(body[10:])
	} else {
		h.Info.Width = int32(binary.LittleEndian.Uint32(body[4:]))
		h.Info.Height = int32(binary.LittleEndian.Uint32(body[8:]))
		h.Info.Planes = binary.LittleEndian.Uint16(body[12:])
		h.Info.BitCount = binary.LittleEndian.Uint16(body[14:])
		h.Info.Compression = binary.LittleEndian.Uint32(body[16:])
	}

	if h.Info.Width <= 0 || h.Info.Height == 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidHeader, h.Info.Width, h.Info.Height)
	}
	if h.Info.Planes != 1 {
		return nil, fmt.Errorf("%w: %d planes", ErrInvalidHeader, h.Info.Planes)
	}
	switch h.Info.BitCount {
	case 1, 4, 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrInvalidHeader, h.Info.BitCount)
	}

	return h, nil
}

// VerifyHeader reports whether r starts with a plausible DIB file header.
// It consumes the header bytes; callers that need the stream afterwards
// must seek back.
func VerifyHeader(r io.Reader) error {
	_, err := ReadHeader(r)
	return err
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrFileTruncated
	}
	return fmt.Errorf("msdib: read header: %w", err)
}
