package rendutil

import (
	"io"

	"github.com/gogpu/rendutil/internal/jpeg"
	"github.com/gogpu/rendutil/internal/msdib"
	"github.com/gogpu/rendutil/internal/png"
)

// ImageFormat identifies an image file format.
type ImageFormat uint8

const (
	// FormatUnknown means no supported format was recognized.
	FormatUnknown ImageFormat = iota

	// FormatPNG is the Portable Network Graphics format.
	FormatPNG

	// FormatJPEG is JPEG/JFIF.
	FormatJPEG

	// FormatMSDIB is the Windows device-independent bitmap (.bmp) format.
	FormatMSDIB
)

// String returns a string representation of the format.
func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "PNG"
	case FormatJPEG:
		return "JPEG"
	case FormatMSDIB:
		return "MSDIB"
	default:
		return "Unknown"
	}
}

// DetectImage reports the format of the image in r, which must be
// positioned at its start. r is seeked back to offset 0 after every probe,
// so it is at the start again when DetectImage returns.
//
// PNG is checked first, then JPEG, then DIB. The JPEG probe parses headers
// up to the first scan; any failure there means "not JPEG".
func DetectImage(r io.ReadSeeker) ImageFormat {
	format := detect(r)
	Logger().Debug("rendutil: detect image", "format", format)
	return format
}

func detect(r io.ReadSeeker) ImageFormat {
	probes := []struct {
		format ImageFormat
		check  func(io.Reader) error
	}{
		{FormatPNG, png.VerifyHeader},
		{FormatJPEG, probeJPEG},
		{FormatMSDIB, msdib.VerifyHeader},
	}

	for _, p := range probes {
		err := p.check(r)
		if _, serr := r.Seek(0, io.SeekStart); serr != nil {
			Logger().Error("rendutil: cannot rewind image stream", "err", serr)
			return FormatUnknown
		}
		if err == nil {
			return p.format
		}
	}
	return FormatUnknown
}

func probeJPEG(r io.Reader) error {
	d := jpeg.NewDecompressor(r, 0)
	defer d.Destroy()
	return d.ReadHeader()
}
