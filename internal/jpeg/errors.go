package jpeg

import (
	"errors"
	"fmt"
)

// Errors reported by the decompressor.
var (
	// ErrInputEmpty is returned when the very first read yields no data.
	ErrInputEmpty = errors.New("jpeg: input file empty")

	// ErrNotJPEG is returned when the stream does not start with SOI.
	ErrNotJPEG = errors.New("jpeg: not a JPEG file")

	// ErrNoImage is returned when the stream ends before a frame and scan.
	ErrNoImage = errors.New("jpeg: no image in stream")

	// ErrBadMarker is returned for a malformed marker segment.
	ErrBadMarker = errors.New("jpeg: bad marker segment")

	// ErrUnsupported is returned for frame types the decoder cannot handle.
	ErrUnsupported = errors.New("jpeg: unsupported frame")

	// ErrTooLarge is returned when decoding would exceed the memory budget.
	ErrTooLarge = errors.New("jpeg: image exceeds memory budget")

	// ErrBadState is returned when methods are called out of order.
	ErrBadState = errors.New("jpeg: call out of sequence")

	// ErrTooFewScanlines is returned by FinishDecompress when rows remain.
	ErrTooFewScanlines = errors.New("jpeg: too few scanlines transferred")
)

// decodeError carries a fatal error from deep inside the decoder to the
// recovery point in protect.
type decodeError struct{ error }

// fatal aborts the current decompressor call.
func fatal(err error) {
	panic(decodeError{err})
}

func fatalf(format string, args ...any) {
	panic(decodeError{fmt.Errorf(format, args...)})
}
