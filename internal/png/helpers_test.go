package png

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	stdpng "image/png"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// testImage describes a PNG to be assembled by buildPNG. sample returns the
// packed bytes of pixel (x, y) for 8 and 16-bit depths.
type testImage struct {
	width, height int
	depth         int
	color         ColorType
	interlaced    bool
	palette       []byte
	trans         []byte
	sample        func(x, y int) []byte
}

func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(data)))
	buf.Write(n[:])
	buf.WriteString(typ)
	buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	binary.BigEndian.PutUint32(n[:], crc.Sum32())
	buf.Write(n[:])
}

// buildPNG assembles a PNG by hand, including Adam7 layouts that the
// standard encoder cannot produce. Every row uses filter type 0.
func buildPNG(t *testing.T, ti testImage) []byte {
	t.Helper()

	var raw bytes.Buffer
	passes := progressive[:]
	if ti.interlaced {
		passes = adam7[:]
	}
	for _, ps := range passes {
		w, h := ps.size(ti.width, ti.height)
		if w == 0 || h == 0 {
			continue
		}
		for y := range h {
			raw.WriteByte(filterNone)
			for x := range w {
				raw.Write(ti.sample(ps.x(x), ps.y(y)))
			}
		}
	}

	var out bytes.Buffer
	out.WriteString(signature)

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(ti.width))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(ti.height))
	ihdr[8] = byte(ti.depth)
	ihdr[9] = byte(ti.color)
	if ti.interlaced {
		ihdr[12] = 1
	}
	writeChunk(&out, "IHDR", ihdr)
	if ti.palette != nil {
		writeChunk(&out, "PLTE", ti.palette)
	}
	if ti.trans != nil {
		writeChunk(&out, "tRNS", ti.trans)
	}
	writeChunk(&out, "IDAT", zlibBytes(t, raw.Bytes()))
	writeChunk(&out, "IEND", nil)
	return out.Bytes()
}

func encodeStd(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := stdpng.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func mustRead(t *testing.T, data []byte) *Info {
	t.Helper()
	p, err := ReadFile(bytes.NewReader(data), 0)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := p.ExpandBuffer8Bit(); err != nil {
		t.Fatalf("ExpandBuffer8Bit: %v", err)
	}
	return p
}

func zlibBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}
	return z.Bytes()
}
