package rendutil

import (
	"errors"
	"fmt"
	"io"

	intImage "github.com/gogpu/rendutil/internal/image"
	"github.com/gogpu/rendutil/internal/jpeg"
	"github.com/gogpu/rendutil/internal/msdib"
	"github.com/gogpu/rendutil/internal/png"
)

// ErrJPEGComponents is logged when a JPEG has neither one nor three
// colour components.
var ErrJPEGComponents = errors.New("rendutil: unsupported JPEG component count")

// LoadMSDIB decodes a Windows DIB (.bmp) image from r into dst.
// On failure dst is left empty and the cause is logged.
func LoadMSDIB(dst *Bitmap, r io.Reader, opts ...LoadOption) {
	o := newLoadOptions(opts)
	dst.Reset()

	if err := msdib.ReadBitmap(r, dst, o.maxPixels); err != nil {
		dst.Reset()
		o.logger.Error("rendutil: error reading Microsoft DIB file", "err", err)
	}
}

// LoadJPEG decodes a JPEG image from r into dst. Grayscale images are
// expanded to gray RGB; every pixel is opaque.
// On failure dst is left empty and the cause is logged.
func LoadJPEG(dst *Bitmap, r io.Reader, opts ...LoadOption) {
	o := newLoadOptions(opts)
	dst.Reset()

	if err := loadJPEG(dst, r, o); err != nil {
		dst.Reset()
		o.logger.Error("rendutil: cannot read JPEG data", "err", err)
	}
}

func loadJPEG(dst *Bitmap, r io.Reader, o loadOptions) error {
	d := jpeg.NewDecompressor(r, o.maxMemory)
	defer d.Destroy()

	if err := d.ReadHeader(); err != nil {
		return err
	}
	if err := d.StartDecompress(); err != nil {
		return err
	}

	width, height := d.OutputWidth(), d.OutputHeight()
	comps := d.OutputComponents()
	if err := dst.AllocateLimited(width, height, o.maxPixels); err != nil {
		return fmt.Errorf("%dx%d: %w", width, height, err)
	}

	row := make([]byte, width*comps)
	for d.OutputScanline() < height {
		y := d.OutputScanline()
		if err := d.ReadScanline(row); err != nil {
			return err
		}

		drow := dst.Row(y)
		switch comps {
		case 1:
			for x := range drow {
				v := row[x]
				drow[x] = intImage.PackRGB(v, v, v)
			}
		case 3:
			for x := range drow {
				s := row[x*3 : x*3+3 : x*3+3]
				drow[x] = intImage.PackRGB(s[0], s[1], s[2])
			}
		default:
			return fmt.Errorf("%w: %d", ErrJPEGComponents, comps)
		}
	}

	if n := d.Warnings(); n > 0 {
		o.logger.Warn("rendutil: JPEG decoded with warnings", "warnings", n)
	}
	return d.FinishDecompress()
}

// LoadPNG decodes a PNG image from r and reports whether it has any pixel
// that is not fully opaque.
//
// With overlay unset, dst is replaced by the image. With overlay set, the
// PNG becomes the alpha channel of the existing dst: each pixel's alpha is
// the PNG pixel's brightness (gray level for grayscale images) and dst's
// RGB is kept. An overlay whose size differs from dst is ignored and
// LoadPNG returns false. Overlays deeper than 8 bits per sample are
// rejected.
//
// On failure a normal load leaves dst empty; a failed overlay leaves dst
// unchanged. Either way the cause is logged and LoadPNG returns false.
func LoadPNG(dst *Bitmap, r io.Reader, overlay bool, opts ...LoadOption) bool {
	o := newLoadOptions(opts)
	if !overlay {
		dst.Reset()
	}

	info, err := png.ReadFile(r, o.maxPixels)
	if err != nil {
		o.logger.Error("rendutil: error reading PNG file", "err", err)
		return false
	}

	if err := info.ExpandBuffer8Bit(); err != nil {
		o.logger.Error("rendutil: error upsampling PNG bitmap", "err", err)
		return false
	}

	if !overlay {
		hasAlpha, err := info.CopyToBitmap(dst, o.maxPixels)
		if err != nil {
			dst.Reset()
			o.logger.Error("rendutil: error copying PNG bitmap", "err", err)
			return false
		}
		return hasAlpha
	}

	if info.Width != dst.Width() || info.Height != dst.Height() {
		o.logger.Debug("rendutil: PNG overlay size mismatch ignored",
			"png_width", info.Width, "png_height", info.Height,
			"bitmap_width", dst.Width(), "bitmap_height", dst.Height())
		return false
	}

	hasAlpha, err := info.CopyAlphaToBitmap(dst)
	if err != nil {
		o.logger.Error("rendutil: cannot apply PNG alpha", "err", err)
		return false
	}
	return hasAlpha
}
