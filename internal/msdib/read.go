package msdib

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/image/bmp"

	intImage "github.com/gogpu/rendutil/internal/image"
)

// ReadBitmap decodes a DIB file from r into dst. dst is reallocated to the
// image dimensions on success and reset on failure. Images whose
// width×height exceeds maxPixels, or image.MaxPixels, are rejected before any
// pixel data is read.
func ReadBitmap(r io.Reader, dst *intImage.Bitmap, maxPixels int64) error {
	h, err := ReadHeader(r)
	if err != nil {
		dst.Reset()
		return err
	}

	if h.Info.Size == infoSizeCore {
		dst.Reset()
		return fmt.Errorf("%w: OS/2 core header", ErrUnsupported)
	}

	if err := dst.AllocateLimited(h.Width(), h.Height(), maxPixels); err != nil {
		return fmt.Errorf("msdib: %dx%d: %w", h.Width(), h.Height(), err)
	}

	img, err := bmp.Decode(io.MultiReader(bytes.NewReader(h.raw), r))
	if err != nil {
		dst.Reset()
		if errors.Is(err, bmp.ErrUnsupported) {
			return fmt.Errorf("%w: %d bpp, compression %d", ErrUnsupported, h.Info.BitCount, h.Info.Compression)
		}
		return fmt.Errorf("msdib: decode: %w", err)
	}

	b := img.Bounds()
	if b.Dx() != dst.Width() || b.Dy() != dst.Height() {
		dst.Reset()
		return fmt.Errorf("%w: decoded %dx%d, header says %dx%d",
			ErrInvalidHeader, b.Dx(), b.Dy(), h.Width(), h.Height())
	}

	dst.CopyFromStdImage(img)
	return nil
}
