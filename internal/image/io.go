package image

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// FromStdImage creates a Bitmap from a standard library image.Image.
// Colors are stored non-premultiplied.
func FromStdImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	b := &Bitmap{}
	if err := b.Allocate(width, height); err != nil {
		return b
	}
	b.CopyFromStdImage(img)
	return b
}

// CopyFromStdImage converts img into b, which must already be allocated
// with the same dimensions.
func (b *Bitmap) CopyFromStdImage(img image.Image) {
	bounds := img.Bounds()

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		// Generic path: let x/image/draw handle palette, gray and
		// premultiplied sources.
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
		bounds = nrgba.Bounds()
	}

	for y := range b.height {
		src := nrgba.Pix[(y+bounds.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride+(bounds.Min.X-nrgba.Rect.Min.X)*4:]
		row := b.Row(y)
		for x := range row {
			s := src[x*4 : x*4+4 : x*4+4]
			row[x] = PackARGB(s[3], s[0], s[1], s[2])
		}
	}
}

// ToStdImage converts the bitmap to a non-premultiplied *image.NRGBA.
func (b *Bitmap) ToStdImage() *image.NRGBA {
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		dst := nrgba.Pix[y*nrgba.Stride:]
		for x, c := range b.Row(y) {
			d := dst[x*4 : x*4+4 : x*4+4]
			d[0] = Red(c)
			d[1] = Green(c)
			d[2] = Blue(c)
			d[3] = Alpha(c)
		}
	}
	return nrgba
}

// EncodePNG encodes the bitmap as PNG to the given writer.
func (b *Bitmap) EncodePNG(w io.Writer) error {
	if !b.Valid() {
		return ErrInvalidDimensions
	}
	if err := png.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the bitmap as a PNG file.
func (b *Bitmap) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
