package jpeg

// JPEG marker codes (second byte after 0xFF).
const (
	markerSOF0 = 0xc0 // baseline
	markerSOF1 = 0xc1 // extended sequential
	markerSOF2 = 0xc2 // progressive
	markerDHT  = 0xc4
	markerJPG  = 0xc8
	markerDAC  = 0xcc
	markerRST0 = 0xd0
	markerRST7 = 0xd7
	markerSOI  = 0xd8
	markerEOI  = 0xd9
	markerSOS  = 0xda
	markerTEM  = 0x01
)

// frame holds the fields of a start-of-frame segment.
type frame struct {
	marker     byte
	precision  int
	width      int
	height     int
	components int

	// blocks is the number of 8×8 blocks in one full scan of every
	// component, counting MCU padding.
	blocks int64
}

// progressive reports whether the frame uses progressive coding.
func (f *frame) progressive() bool {
	return f.marker == markerSOF2
}

// isSOF reports whether m starts a frame. DHT, JPG and DAC share the
// 0xC0-0xCF range but are not frames.
func isSOF(m byte) bool {
	return m >= markerSOF0 && m <= 0xcf && m != markerDHT && m != markerJPG && m != markerDAC
}

// readSOI checks the two-byte start-of-image marker.
func (d *Decompressor) readSOI() {
	c0 := d.src.readByte()
	c1 := d.src.readByte()
	if c0 != 0xff || c1 != markerSOI {
		fatalf("%w: starts with 0x%02x 0x%02x", ErrNotJPEG, c0, c1)
	}
}

// nextMarker scans forward to the next marker and returns its code.
// Bytes between segments and 0xFF fill bytes are discarded.
func (d *Decompressor) nextMarker() byte {
	discarded := 0
	c := d.src.readByte()
	for {
		for c != 0xff {
			discarded++
			c = d.src.readByte()
		}
		for c == 0xff {
			c = d.src.readByte()
		}
		if c != 0 {
			break
		}
		// 0xFF00 is a stuffed byte, not a marker.
		discarded += 2
		c = d.src.readByte()
	}

	if discarded > 0 {
		d.src.warnings++
		slogger().Warn("jpeg: extraneous bytes before marker",
			"bytes", discarded, "marker", c)
	}
	return c
}

// readFrame parses a start-of-frame segment.
func (d *Decompressor) readFrame(m byte) {
	length := d.src.read16()
	if length < 8 {
		fatalf("%w: SOF length %d", ErrBadMarker, length)
	}

	f := frame{
		marker:     m,
		precision:  int(d.src.readByte()),
		height:     d.src.read16(),
		width:      d.src.read16(),
		components: int(d.src.readByte()),
	}

	if length != 8+3*f.components {
		fatalf("%w: SOF length %d for %d components", ErrBadMarker, length, f.components)
	}

	// Component specs: id, sampling factors (h<<4 | v), quant table.
	hmax, vmax, perMCU := 1, 1, 0
	for range f.components {
		d.src.readByte()
		hv := d.src.readByte()
		d.src.readByte()

		h, v := int(hv>>4), int(hv&0x0f)
		if h < 1 || h > 4 || v < 1 || v > 4 {
			fatalf("%w: sampling factors %dx%d", ErrBadMarker, h, v)
		}
		hmax, vmax = max(hmax, h), max(vmax, v)
		perMCU += h * v
	}

	switch m {
	case markerSOF0, markerSOF1, markerSOF2:
	default:
		fatalf("%w: SOF type 0x%02x", ErrUnsupported, m)
	}
	if f.precision != 8 {
		fatalf("%w: %d-bit precision", ErrUnsupported, f.precision)
	}
	if f.width <= 0 || f.height <= 0 || f.components <= 0 {
		fatalf("%w: empty image %dx%d, %d components", ErrBadMarker, f.width, f.height, f.components)
	}

	mcusX := (f.width + 8*hmax - 1) / (8 * hmax)
	mcusY := (f.height + 8*vmax - 1) / (8 * vmax)
	f.blocks = int64(mcusX) * int64(mcusY) * int64(perMCU)

	d.frame = f
	d.haveFrame = true
}

// skipVariable skips a segment whose length is given by its first two bytes.
func (d *Decompressor) skipVariable(m byte) {
	length := d.src.read16()
	if length < 2 {
		fatalf("%w: marker 0x%02x length %d", ErrBadMarker, m, length)
	}
	d.src.skip(length - 2)
}

// readMarkers walks the header up to the first scan.
func (d *Decompressor) readMarkers() {
	d.readSOI()

	for {
		m := d.nextMarker()

		switch {
		case isSOF(m):
			if d.haveFrame {
				fatalf("%w: duplicate SOF", ErrBadMarker)
			}
			d.readFrame(m)

		case m == markerSOS:
			if !d.haveFrame {
				fatalf("%w: SOS before SOF", ErrBadMarker)
			}
			return

		case m == markerEOI:
			fatal(ErrNoImage)

		case m == markerSOI:
			fatalf("%w: duplicate SOI", ErrBadMarker)

		case m >= markerRST0 && m <= markerRST7, m == markerTEM:
			// Parameterless markers.

		default:
			d.skipVariable(m)
		}
	}
}
