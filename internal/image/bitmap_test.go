package image

import (
	"errors"
	"testing"
)

func TestNewBitmap(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr error
	}{
		{"valid", 100, 50, nil},
		{"1x1 minimum", 1, 1, nil},
		{"zero width", 0, 100, ErrInvalidDimensions},
		{"zero height", 100, 0, ErrInvalidDimensions},
		{"negative width", -1, 100, ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBitmap(tt.width, tt.height)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBitmap() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if b.Width() != tt.width || b.Height() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", b.Width(), b.Height(), tt.width, tt.height)
			}
			if b.RowPixels() != tt.width {
				t.Errorf("RowPixels() = %d, want %d", b.RowPixels(), tt.width)
			}
			if !b.Valid() {
				t.Error("Valid() = false, want true")
			}
		})
	}
}

func TestNewBitmapWithStride(t *testing.T) {
	tests := []struct {
		name      string
		rowPixels int
		wantErr   error
	}{
		{"padded", 16, nil},
		{"minimum", 10, nil},
		{"too small", 9, ErrInvalidStride},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBitmapWithStride(10, 4, tt.rowPixels)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBitmapWithStride() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && b.RowPixels() != tt.rowPixels {
				t.Errorf("RowPixels() = %d, want %d", b.RowPixels(), tt.rowPixels)
			}
		})
	}
}

func TestFromPixels(t *testing.T) {
	pix := make([]uint32, 3*8+4)
	if _, err := FromPixels(pix, 4, 4, 8); err != nil {
		t.Fatalf("FromPixels() error = %v", err)
	}
	if _, err := FromPixels(pix[:10], 4, 4, 8); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("FromPixels(short) error = %v, want %v", err, ErrDataTooSmall)
	}
}

func TestBitmapReset(t *testing.T) {
	b, _ := NewBitmap(4, 4)
	b.Reset()

	if b.Valid() {
		t.Error("Valid() after Reset = true, want false")
	}
	if b.Width() != 0 || b.Height() != 0 {
		t.Errorf("size after Reset = %dx%d, want 0x0", b.Width(), b.Height())
	}

	var zero Bitmap
	if zero.Valid() {
		t.Error("zero Bitmap Valid() = true, want false")
	}
}

func TestBitmapAllocateReplaces(t *testing.T) {
	b, _ := NewBitmap(2, 2)
	b.Fill(0xffffffff)

	if err := b.Allocate(3, 5); err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	if b.Width() != 3 || b.Height() != 5 {
		t.Fatalf("size = %dx%d, want 3x5", b.Width(), b.Height())
	}
	for y := range 5 {
		for x := range 3 {
			if got := b.Pix(x, y); got != 0 {
				t.Fatalf("Pix(%d,%d) = %#08x, want 0", x, y, got)
			}
		}
	}
}

func TestBitmapAllocateLimited(t *testing.T) {
	var b Bitmap
	if err := b.AllocateLimited(100, 100, 50); !errors.Is(err, ErrTooLarge) {
		t.Errorf("AllocateLimited() error = %v, want %v", err, ErrTooLarge)
	}
	if b.Valid() {
		t.Error("bitmap valid after rejected allocation")
	}
	if err := b.AllocateLimited(10, 5, 50); err != nil {
		t.Errorf("AllocateLimited(at limit) error = %v", err)
	}
	if err := b.AllocateLimited(1000, 1000, 0); err != nil {
		t.Errorf("AllocateLimited(unlimited) error = %v", err)
	}
}

func TestBitmapAllocateHugeDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		limit         int64
	}{
		{"max int32 square", 0x7fffffff, 0x7fffffff, 0},
		{"above cap", MaxPixels + 1, 1, 0},
		{"limit above cap", 1 << 15, 1 << 15, 1 << 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Bitmap
			if err := b.AllocateLimited(tt.width, tt.height, tt.limit); !errors.Is(err, ErrTooLarge) {
				t.Errorf("AllocateLimited(%d, %d) error = %v, want %v", tt.width, tt.height, err, ErrTooLarge)
			}
			if b.Valid() {
				t.Error("bitmap valid after rejected allocation")
			}
		})
	}

	if _, err := NewBitmapWithStride(1, 1<<20, 1<<20); !errors.Is(err, ErrTooLarge) {
		t.Errorf("NewBitmapWithStride(huge) error = %v, want %v", err, ErrTooLarge)
	}
	if _, err := FromPixels(make([]uint32, 4), 2, 0x7fffffff, 0x7fffffff); !errors.Is(err, ErrTooLarge) {
		t.Errorf("FromPixels(huge) error = %v, want %v", err, ErrTooLarge)
	}
}

func TestBitmapPixRoundTrip(t *testing.T) {
	b, _ := NewBitmapWithStride(5, 3, 8)
	b.SetPix(4, 2, 0x80112233)

	if got := b.Pix(4, 2); got != 0x80112233 {
		t.Errorf("Pix(4,2) = %#08x, want 0x80112233", got)
	}
	if got := b.Pixels()[2*8+4]; got != 0x80112233 {
		t.Errorf("storage[20] = %#08x, want 0x80112233", got)
	}
	if row := b.Row(2); len(row) != 5 || row[4] != 0x80112233 {
		t.Errorf("Row(2) = %v", row)
	}
	if b.Row(3) != nil || b.Row(-1) != nil {
		t.Error("Row() out of range should return nil")
	}
}

func TestBitmapSubBitmap(t *testing.T) {
	b, _ := NewBitmap(10, 10)
	for y := range 10 {
		for x := range 10 {
			b.SetPix(x, y, uint32(y*10+x))
		}
	}

	sub := b.SubBitmap(2, 3, 4, 5)
	if sub == nil {
		t.Fatal("SubBitmap() = nil")
	}
	if sub.Width() != 4 || sub.Height() != 5 || sub.RowPixels() != 10 {
		t.Fatalf("sub = %dx%d stride %d, want 4x5 stride 10", sub.Width(), sub.Height(), sub.RowPixels())
	}
	if got := sub.Pix(0, 0); got != 32 {
		t.Errorf("sub.Pix(0,0) = %d, want 32", got)
	}
	if got := sub.Pix(3, 4); got != 75 {
		t.Errorf("sub.Pix(3,4) = %d, want 75", got)
	}

	// Writes through the view land in the parent.
	sub.SetPix(1, 1, 999)
	if got := b.Pix(3, 4); got != 999 {
		t.Errorf("parent Pix(3,4) = %d, want 999", got)
	}

	invalid := []struct{ x, y, w, h int }{
		{-1, 0, 2, 2}, {0, 0, 0, 2}, {8, 0, 3, 1}, {0, 9, 1, 2},
	}
	for _, r := range invalid {
		if b.SubBitmap(r.x, r.y, r.w, r.h) != nil {
			t.Errorf("SubBitmap(%d,%d,%d,%d) should be nil", r.x, r.y, r.w, r.h)
		}
	}
}

func TestBitmapCloneAndEqual(t *testing.T) {
	b, _ := NewBitmapWithStride(3, 3, 7)
	b.Fill(0xff00ff00)
	b.SetPix(1, 1, 0x12345678)

	c := b.Clone()
	if c.RowPixels() != 3 {
		t.Errorf("Clone RowPixels() = %d, want 3", c.RowPixels())
	}
	if !b.Equal(c) {
		t.Error("Clone not Equal to original")
	}

	c.SetPix(0, 0, 0)
	if b.Equal(c) {
		t.Error("Equal() = true after modifying clone")
	}
	if b.Pix(0, 0) != 0xff00ff00 {
		t.Error("modifying clone changed the original")
	}
}
