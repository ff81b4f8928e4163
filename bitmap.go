package rendutil

import (
	"image"

	intImage "github.com/gogpu/rendutil/internal/image"
)

// Bitmap is a grid of packed 0xAARRGGBB pixels with a row stride.
// The zero value is an empty bitmap, ready to be passed to a loader.
type Bitmap = intImage.Bitmap

// NewBitmap creates a transparent black bitmap of the given size.
func NewBitmap(width, height int) (*Bitmap, error) {
	return intImage.NewBitmap(width, height)
}

// BitmapFromImage converts a standard library image into a new bitmap.
func BitmapFromImage(img image.Image) *Bitmap {
	return intImage.FromStdImage(img)
}

// PackARGB packs 8-bit channels into a pixel value.
func PackARGB(a, r, g, b uint8) uint32 {
	return intImage.PackARGB(a, r, g, b)
}

// NewBitmapWithStride creates a bitmap whose rows are rowPixels apart,
// for callers that upload rows to textures with a padded pitch.
func NewBitmapWithStride(width, height, rowPixels int) (*Bitmap, error) {
	return intImage.NewBitmapWithStride(width, height, rowPixels)
}

// BitmapFromPixels wraps caller-owned pixel storage without copying.
// Row y starts at pix[y*rowPixels].
func BitmapFromPixels(pix []uint32, width, height, rowPixels int) (*Bitmap, error) {
	return intImage.FromPixels(pix, width, height, rowPixels)
}

// UnpackARGB splits a pixel value into its channels.
func UnpackARGB(c uint32) (a, r, g, b uint8) {
	return intImage.Unpack(c)
}
