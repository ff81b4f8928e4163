// Command rendutil loads, resamples and re-encodes images.
//
// A single job is described with flags:
//
//	rendutil -in art.jpg -alpha art_mask.png -width 256 -height 256 -out art.png
//
// Several jobs can be listed in a YAML file:
//
//	jobs:
//	  - input: marquee.bmp
//	    output: marquee.png
//	    width: 512
//	    tint: "#ffcc80"
//
//	rendutil -batch jobs.yaml
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/rendutil"
)

func main() {
	var (
		input     = flag.String("in", "", "input image (PNG, JPEG or BMP)")
		alpha     = flag.String("alpha", "", "PNG whose brightness becomes the alpha channel")
		output    = flag.String("out", "out.png", "output PNG file")
		width     = flag.Int("width", 0, "output width (default: source width)")
		height    = flag.Int("height", 0, "output height (default: source height)")
		tint      = flag.String("tint", "", "tint colour as hex RGB or RGBA")
		force     = flag.Bool("average", false, "always use the box filter")
		batch     = flag.String("batch", "", "YAML job file")
		maxPixels = flag.Int64("max-pixels", 0, "refuse images larger than this many pixels (0: default limit)")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	rendutil.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var jobs []Job
	if *batch != "" {
		b, err := loadBatch(*batch)
		if err != nil {
			log.Fatalf("Failed to load jobs: %v", err)
		}
		jobs = b.Jobs
	} else {
		if *input == "" {
			flag.Usage()
			os.Exit(2)
		}
		jobs = []Job{{
			Input:        *input,
			Alpha:        *alpha,
			Output:       *output,
			Width:        *width,
			Height:       *height,
			Tint:         *tint,
			ForceAverage: *force,
		}}
	}

	p := message.NewPrinter(language.English)
	failed := 0
	var pixels int64

	for _, j := range jobs {
		res, err := j.run(rendutil.WithMaxPixels(*maxPixels))
		if err != nil {
			log.Printf("%s: %v", j.Input, err)
			failed++
			continue
		}
		pixels += int64(res.DstW) * int64(res.DstH)
		p.Printf("%s: %v %dx%d -> %s %dx%d (alpha: %t)\n",
			j.Input, res.Format, res.SrcW, res.SrcH, j.Output, res.DstW, res.DstH, res.HasAlpha)
	}

	p.Printf("%d of %d jobs done, %d pixels written\n", len(jobs)-failed, len(jobs), pixels)
	if failed > 0 {
		os.Exit(1)
	}
}
