package msdib

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/bmp"
)

func encodeBMP(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}
	return buf.Bytes()
}

func opaqueImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 0x55, A: 0xff})
		}
	}
	return img
}

// coreHeaderFile builds a minimal OS/2 1.x bitmap with a 12-byte info header.
func coreHeaderFile(w, h uint16) []byte {
	data := make([]byte, 14+12)
	data[0], data[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(data[2:], uint32(len(data)))
	binary.LittleEndian.PutUint32(data[10:], uint32(len(data)))
	binary.LittleEndian.PutUint32(data[14:], 12)
	binary.LittleEndian.PutUint16(data[18:], w)
	binary.LittleEndian.PutUint16(data[20:], h)
	binary.LittleEndian.PutUint16(data[22:], 1)
	binary.LittleEndian.PutUint16(data[24:], 24)
	return data
}

func TestVerifyHeader(t *testing.T) {
	valid := encodeBMP(t, opaqueImage(4, 3))

	badSig := bytes.Clone(valid)
	badSig[0] = 'X'

	badInfoSize := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(badInfoSize[14:], 41)

	badOffset := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(badOffset[10:], 20)

	badPlanes := bytes.Clone(valid)
	binary.LittleEndian.PutUint16(badPlanes[26:], 2)

	badDepth := bytes.Clone(valid)
	binary.LittleEndian.PutUint16(badDepth[28:], 7)

	zeroWidth := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(zeroWidth[18:], 0)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"valid", valid, nil},
		{"core header", coreHeaderFile(2, 2), nil},
		{"bad signature", badSig, ErrInvalidHeader},
		{"bad info size", badInfoSize, ErrInvalidHeader},
		{"offset inside headers", badOffset, ErrInvalidHeader},
		{"two planes", badPlanes, ErrInvalidHeader},
		{"seven bpp", badDepth, ErrInvalidHeader},
		{"zero width", zeroWidth, ErrInvalidHeader},
		{"empty", nil, ErrFileTruncated},
		{"short file header", valid[:10], ErrFileTruncated},
		{"short info header", valid[:30], ErrFileTruncated},
		{"png signature", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x10"), ErrInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyHeader(bytes.NewReader(tt.data))
			if tt.want == nil {
				if err != nil {
					t.Errorf("VerifyHeader() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("VerifyHeader() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadHeaderFields(t *testing.T) {
	h, err := ReadHeader(bytes.NewReader(encodeBMP(t, opaqueImage(5, 7))))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.Width() != 5 || h.Height() != 7 {
		t.Errorf("size = %dx%d, want 5x7", h.Width(), h.Height())
	}
	if h.Info.Planes != 1 {
		t.Errorf("Planes = %d, want 1", h.Info.Planes)
	}
	if h.Info.BitCount != 24 {
		t.Errorf("BitCount = %d, want 24", h.Info.BitCount)
	}
	if len(h.raw) != 14+int(h.Info.Size) {
		t.Errorf("consumed %d bytes, want %d", len(h.raw), 14+h.Info.Size)
	}
}

func TestHeaderTopDownHeight(t *testing.T) {
	data := encodeBMP(t, opaqueImage(2, 3))
	binary.LittleEndian.PutUint32(data[22:], uint32(0xffffffff-2)) // -3

	h, err := ReadHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.Height() != 3 {
		t.Errorf("Height() = %d, want 3", h.Height())
	}
}
