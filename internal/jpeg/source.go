package jpeg

import (
	"errors"
	"fmt"
	"io"
)

// bufferSize is the number of bytes requested from the stream per fill.
const bufferSize = 4096

// eoi is inserted when the stream ends early so the decoder sees a
// well-formed end of image.
var eoi = [2]byte{0xff, 0xd9}

// padBytesPerBlock is the zero padding allowed per 8×8 block once entropy
// data runs out. Zero bits decode as each table's first code, which for
// real tables costs well under 16 bits per coefficient.
const padBytesPerBlock = 128

// source feeds stream bytes to the decoder through a fixed buffer.
// Fatal conditions panic with decodeError and must only be reached from
// inside Decompressor.protect.
type source struct {
	r   io.Reader
	buf []byte

	// data is the unread part of buf.
	data []byte

	startOfFile bool
	warnings    int

	// pad is the number of zero bytes still to be returned before EOI
	// once the stream ends. ended is set after the first premature end.
	pad   int64
	ended bool

	// record keeps a copy of consumed bytes while the header is parsed.
	record   bool
	recorded []byte
}

func newSource(r io.Reader) *source {
	return &source{r: r, buf: make([]byte, bufferSize)}
}

// init marks the start of the stream. The next fill must produce data.
func (s *source) init() {
	s.startOfFile = true
	s.data = nil
}

// maxEmptyReads bounds successive (0, nil) reads before the stream is
// treated as ended.
const maxEmptyReads = 100

// read performs one stream read of up to bufferSize bytes.
func (s *source) read() (int, error) {
	for range maxEmptyReads {
		n, err := s.r.Read(s.buf)
		if n > 0 || err != nil {
			return n, err
		}
	}
	return 0, io.ErrNoProgress
}

// fill replaces the buffer contents with the next chunk of the stream.
func (s *source) fill() {
	n, err := s.read()
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrNoProgress) {
		fatal(fmt.Errorf("jpeg: read: %w", err))
	}

	if n == 0 {
		if s.startOfFile {
			fatal(ErrInputEmpty)
		}
		n = s.synthesize()
	}

	s.data = s.buf[:n]
	s.startOfFile = false
}

// synthesize fills buf after the stream has ended. Inside entropy data
// (pad set) the rest of the scan is padded with zero bits, as libjpeg
// does, and one warning is raised for the whole event. Otherwise every
// fill inserts an EOI marker and warns.
func (s *source) synthesize() int {
	if s.pad > 0 {
		if !s.ended {
			s.ended = true
			s.warnings++
			slogger().Warn("jpeg: premature end of data, padding scan and inserting EOI",
				"pad_bytes", s.pad)
		}
		n := int(min(s.pad, int64(len(s.buf))))
		clear(s.buf[:n])
		s.pad -= int64(n)
		return n
	}
	if s.ended {
		return copy(s.buf, eoi[:])
	}

	s.warnings++
	slogger().Warn("jpeg: premature end of data, inserting EOI")
	return copy(s.buf, eoi[:])
}

// skip discards n bytes, refilling as needed.
func (s *source) skip(n int) {
	for n > 0 {
		if len(s.data) == 0 {
			s.fill()
		}
		k := min(n, len(s.data))
		s.consume(k)
		n -= k
	}
}

// readByte returns the next byte of the stream.
func (s *source) readByte() byte {
	if len(s.data) == 0 {
		s.fill()
	}
	c := s.data[0]
	s.consume(1)
	return c
}

// read16 returns the next big-endian 16-bit value.
func (s *source) read16() int {
	hi := s.readByte()
	return int(hi)<<8 | int(s.readByte())
}

func (s *source) consume(n int) {
	if s.record {
		s.recorded = append(s.recorded, s.data[:n]...)
	}
	s.data = s.data[n:]
}

// Read implements io.Reader over the buffered stream, so the entropy
// decoder sees the same bytes (and the same EOI padding) as the header
// parser.
func (s *source) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(s.data) == 0 {
		s.fill()
	}
	n := copy(p, s.data)
	s.consume(n)
	return n, nil
}

// release drops every buffer held by the source.
func (s *source) release() {
	s.r = nil
	s.buf = nil
	s.data = nil
	s.recorded = nil
}
