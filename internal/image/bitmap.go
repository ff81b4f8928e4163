// Package image provides the ARGB32 bitmap container used by rendutil.
//
// A Bitmap stores packed 0xAARRGGBB pixels in a contiguous uint32 slice with
// a row stride measured in pixels. The stride may exceed the width, either
// for alignment or because the bitmap is a view into a larger parent.
package image

import "errors"

// Common errors for bitmap operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidStride is returned when the row stride is less than the width.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrTooLarge is returned when an allocation exceeds the configured pixel limit.
	ErrTooLarge = errors.New("image: dimensions exceed pixel limit")
)

// MaxPixels is the largest width×height any bitmap may hold, whatever
// limit the caller asks for. 1<<28 pixels is 1 GiB of storage.
const MaxPixels = 1 << 28

// pixelCount returns width×height, or ErrTooLarge if it exceeds limit or
// MaxPixels. Dimensions must already be positive.
func pixelCount(width, height int, limit int64) (int, error) {
	if limit <= 0 || limit > MaxPixels {
		limit = MaxPixels
	}
	if int64(width) > limit || int64(height) > limit || int64(width)*int64(height) > limit {
		return 0, ErrTooLarge
	}
	return width * height, nil
}

// Bitmap is a 2-D grid of packed ARGB32 pixels.
//
// The zero value is an empty, invalid bitmap. Decoders allocate or reset
// bitmaps they are handed; resamplers write into an already allocated
// destination and never reallocate it.
//
// Thread safety: Bitmap has no internal synchronization.
type Bitmap struct {
	pix       []uint32
	width     int
	height    int
	rowPixels int
}

// NewBitmap creates a bitmap with the given dimensions and stride equal to width.
// All pixels start as transparent black.
func NewBitmap(width, height int) (*Bitmap, error) {
	b := &Bitmap{}
	if err := b.Allocate(width, height); err != nil {
		return nil, err
	}
	return b, nil
}

// NewBitmapWithStride creates a bitmap whose rows are rowPixels apart.
func NewBitmapWithStride(width, height, rowPixels int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if rowPixels < width {
		return nil, ErrInvalidStride
	}
	if _, err := pixelCount(rowPixels, height, 0); err != nil {
		return nil, err
	}
	return &Bitmap{
		pix:       make([]uint32, rowPixels*(height-1)+width),
		width:     width,
		height:    height,
		rowPixels: rowPixels,
	}, nil
}

// FromPixels wraps existing pixel storage without copying.
// The caller must keep pix alive for the lifetime of the Bitmap.
func FromPixels(pix []uint32, width, height, rowPixels int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if rowPixels < width {
		return nil, ErrInvalidStride
	}
	if _, err := pixelCount(rowPixels, height, 0); err != nil {
		return nil, err
	}
	required := rowPixels*(height-1) + width
	if len(pix) < required {
		return nil, ErrDataTooSmall
	}
	return &Bitmap{
		pix:       pix[:required],
		width:     width,
		height:    height,
		rowPixels: rowPixels,
	}, nil
}

// Allocate replaces the bitmap storage with a fresh width×height grid of
// transparent black pixels. Previous contents are discarded.
// Grids larger than MaxPixels fail with ErrTooLarge.
func (b *Bitmap) Allocate(width, height int) error {
	return b.AllocateLimited(width, height, 0)
}

// AllocateLimited is Allocate with an upper bound on width×height.
// A maxPixels of zero or less applies only the MaxPixels cap.
func (b *Bitmap) AllocateLimited(width, height int, maxPixels int64) error {
	if width <= 0 || height <= 0 {
		b.Reset()
		return ErrInvalidDimensions
	}
	n, err := pixelCount(width, height, maxPixels)
	if err != nil {
		b.Reset()
		return err
	}
	b.pix = make([]uint32, n)
	b.width = width
	b.height = height
	b.rowPixels = width
	return nil
}

// Reset releases the pixel storage and makes the bitmap empty.
func (b *Bitmap) Reset() {
	b.pix = nil
	b.width = 0
	b.height = 0
	b.rowPixels = 0
}

// Valid reports whether the bitmap holds pixel storage.
func (b *Bitmap) Valid() bool {
	return b != nil && b.width > 0 && b.height > 0 && b.pix != nil
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int {
	return b.height
}

// RowPixels returns the distance between rows, in pixels.
func (b *Bitmap) RowPixels() int {
	return b.rowPixels
}

// Pixels returns the underlying storage. Row y starts at y*RowPixels().
func (b *Bitmap) Pixels() []uint32 {
	return b.pix
}

// Row returns the width pixels of row y, or nil if y is out of range.
func (b *Bitmap) Row(y int) []uint32 {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.rowPixels
	return b.pix[start : start+b.width]
}

// Pix returns the packed pixel at (x, y).
// Access outside [0,width)×[0,height) is a programming error.
func (b *Bitmap) Pix(x, y int) uint32 {
	return b.pix[y*b.rowPixels+x]
}

// SetPix stores a packed pixel at (x, y).
func (b *Bitmap) SetPix(x, y int, c uint32) {
	b.pix[y*b.rowPixels+x] = c
}

// Fill sets every pixel to c.
func (b *Bitmap) Fill(c uint32) {
	for y := range b.height {
		row := b.Row(y)
		for x := range row {
			row[x] = c
		}
	}
}

// Clone returns a deep copy with a compact stride.
func (b *Bitmap) Clone() *Bitmap {
	if !b.Valid() {
		return &Bitmap{}
	}
	out := &Bitmap{
		pix:       make([]uint32, b.width*b.height),
		width:     b.width,
		height:    b.height,
		rowPixels: b.width,
	}
	for y := range b.height {
		copy(out.pix[y*b.width:], b.Row(y))
	}
	return out
}

// SubBitmap returns a view into a rectangular region of the bitmap.
// The view shares storage with b and keeps b's stride.
// Returns nil if the region is empty or falls outside the bitmap.
func (b *Bitmap) SubBitmap(x, y, width, height int) *Bitmap {
	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return nil
	}
	if x+width > b.width || y+height > b.height {
		return nil
	}

	offset := y*b.rowPixels + x
	end := (y+height-1)*b.rowPixels + x + width

	return &Bitmap{
		pix:       b.pix[offset:end],
		width:     width,
		height:    height,
		rowPixels: b.rowPixels,
	}
}

// Equal reports whether two bitmaps have the same size and pixels.
// Strides may differ.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for y := range b.height {
		r0, r1 := b.Row(y), other.Row(y)
		for x := range r0 {
			if r0[x] != r1[x] {
				return false
			}
		}
	}
	return true
}
