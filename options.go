package rendutil

import (
	"log/slog"

	"github.com/gogpu/rendutil/internal/jpeg"
)

// DefaultMaxPixels is the default pixel limit for every loader: the JPEG
// memory budget spent on 4-byte ARGB pixels (32 Mi pixels).
const DefaultMaxPixels = jpeg.DefaultMaxMemory / 4

// LoadOption configures a single Load call.
// Use functional options to customize decoder limits.
//
// Example:
//
//	// Default limits
//	rendutil.LoadJPEG(&bm, f)
//
//	// Refuse anything over 16 megapixels
//	rendutil.LoadJPEG(&bm, f, rendutil.WithMaxPixels(16<<20))
type LoadOption func(*loadOptions)

// loadOptions holds optional configuration for a load.
type loadOptions struct {
	maxMemory int64
	maxPixels int64
	logger    *slog.Logger
}

// defaultLoadOptions returns the default load options.
func defaultLoadOptions() loadOptions {
	return loadOptions{
		maxMemory: jpeg.DefaultMaxMemory,
		maxPixels: DefaultMaxPixels,
		logger:    nil, // package logger
	}
}

func newLoadOptions(opts []LoadOption) loadOptions {
	o := defaultLoadOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

// WithMaxMemory sets the JPEG decoder's memory budget in bytes.
// Values of zero or less restore the default of 128 MiB.
func WithMaxMemory(bytes int64) LoadOption {
	return func(o *loadOptions) {
		if bytes <= 0 {
			bytes = jpeg.DefaultMaxMemory
		}
		o.maxMemory = bytes
	}
}

// WithMaxPixels rejects images whose width×height exceeds n before pixel
// storage is allocated. Values of zero or less restore [DefaultMaxPixels].
// Bitmaps are capped at 1<<28 pixels whatever n is.
func WithMaxPixels(n int64) LoadOption {
	return func(o *loadOptions) {
		if n <= 0 {
			n = DefaultMaxPixels
		}
		o.maxPixels = n
	}
}

// WithLogger sends this call's diagnostics to l instead of [Logger].
// Warnings raised inside the JPEG decoder still go to the package logger.
func WithLogger(l *slog.Logger) LoadOption {
	return func(o *loadOptions) {
		o.logger = l
	}
}
