// Package rendutil loads images into ARGB32 bitmaps and resamples them for
// texture upload.
//
// # Overview
//
// rendutil is the image acquisition and texture preparation layer of a
// renderer. It covers four jobs:
//
//   - Detecting whether a stream holds PNG, JPEG or Windows DIB data.
//   - Decoding those formats into a [Bitmap] of packed 0xAARRGGBB pixels.
//   - Resampling a bitmap to another size with an optional tint.
//   - Clipping lines and textured quads against a rectangle, and turning a
//     stroked line into a quad.
//
// # Quick Start
//
//	import "github.com/gogpu/rendutil"
//
//	f, _ := os.Open("artwork.png")
//	defer f.Close()
//
//	var art rendutil.Bitmap
//	if rendutil.DetectImage(f) == rendutil.FormatPNG {
//		rendutil.LoadPNG(&art, f, false)
//	}
//	if !art.Valid() {
//		// decode failed; details were logged
//	}
//
//	dst, _ := rendutil.NewBitmap(256, 256)
//	rendutil.ResampleHQ(dst, &art, rendutil.White, false)
//
// # Error Reporting
//
// Loaders never return errors. A failed load leaves the destination bitmap
// empty and logs the cause through the logger installed with [SetLogger].
// Callers check [Bitmap.Valid] after the call.
//
// # Coordinate System
//
// Bitmap and clip coordinates have the origin at the top left, with X
// increasing right and Y increasing down.
package rendutil

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
