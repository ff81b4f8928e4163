package rendutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

// gradient returns an opaque w×h test image.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 0x40, A: 0xff})
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func bmpBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}
	return buf.Bytes()
}

// cmykJPEG returns an 8×8 baseline JPEG with four components and an Adobe
// APP14 marker. Every block is flat, so the entropy data is one Huffman
// code for DC and one for end-of-block per component.
func cmykJPEG() []byte {
	var b bytes.Buffer
	b.Write([]byte{0xff, 0xd8})

	// APP14 "Adobe", transform 0 (CMYK).
	b.Write([]byte{0xff, 0xee, 0x00, 0x0e, 'A', 'd', 'o', 'b', 'e', 0x00, 0x64, 0, 0, 0, 0, 0})

	// DQT: table 0, all ones.
	b.Write([]byte{0xff, 0xdb, 0x00, 0x43, 0x00})
	b.Write(bytes.Repeat([]byte{1}, 64))

	// SOF0: 8-bit, 8×8, four 1×1 components using table 0.
	b.Write([]byte{0xff, 0xc0, 0x00, 0x14, 8, 0, 8, 0, 8, 4})
	for id := byte(1); id <= 4; id++ {
		b.Write([]byte{id, 0x11, 0})
	}

	// DHT: DC and AC table 0, each with a single 1-bit code for symbol 0.
	b.Write([]byte{0xff, 0xc4, 0x00, 0x26})
	for _, class := range []byte{0x00, 0x10} {
		b.WriteByte(class)
		counts := make([]byte, 16)
		counts[0] = 1
		b.Write(counts)
		b.WriteByte(0)
	}

	// SOS: four components, tables 0/0, full spectral range.
	b.Write([]byte{0xff, 0xda, 0x00, 0x0e, 4})
	for id := byte(1); id <= 4; id++ {
		b.Write([]byte{id, 0x00})
	}
	b.Write([]byte{0, 63, 0})

	// 4 blocks × (DC code + EOB code) = 8 zero bits, plus padding.
	b.Write([]byte{0x00, 0x00})
	b.Write([]byte{0xff, 0xd9})
	return b.Bytes()
}
