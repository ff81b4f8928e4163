package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/gogpu/rendutil"
)

// Job is one load → overlay → resample → save pipeline.
type Job struct {
	Input        string `yaml:"input"`
	Alpha        string `yaml:"alpha,omitempty"`
	Output       string `yaml:"output"`
	Width        int    `yaml:"width,omitempty"`
	Height       int    `yaml:"height,omitempty"`
	Tint         string `yaml:"tint,omitempty"`
	ForceAverage bool   `yaml:"force_average,omitempty"`
}

// Batch is the top level of a job file.
type Batch struct {
	Jobs []Job `yaml:"jobs"`
}

// Result describes a finished job.
type Result struct {
	Format   rendutil.ImageFormat
	SrcW     int
	SrcH     int
	DstW     int
	DstH     int
	HasAlpha bool
}

var errEmptyImage = errors.New("image could not be loaded")

// loadBatch reads a YAML job file.
func loadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading job file %s: %w", path, err)
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		yamlErr, ok := err.(*yaml.TypeError)
		if ok {
			for _, msg := range yamlErr.Errors {
				log.Printf("YAML unmarshal error in %s: %s", path, msg)
			}
		}
		return nil, fmt.Errorf("error unmarshaling YAML from %s: %w", path, err)
	}

	for i, j := range b.Jobs {
		if err := j.validate(); err != nil {
			return nil, fmt.Errorf("%s: job %d: %w", path, i+1, err)
		}
	}
	return &b, nil
}

func (j *Job) validate() error {
	if j.Input == "" {
		return errors.New("missing input")
	}
	if j.Output == "" {
		return errors.New("missing output")
	}
	if j.Width < 0 || j.Height < 0 {
		return fmt.Errorf("negative size %dx%d", j.Width, j.Height)
	}
	if j.Tint != "" {
		if _, ok := rendutil.Hex(j.Tint); !ok {
			return fmt.Errorf("bad tint %q", j.Tint)
		}
	}
	return nil
}

// run executes the job with the given load options.
func (j *Job) run(opts ...rendutil.LoadOption) (Result, error) {
	if err := j.validate(); err != nil {
		return Result{}, err
	}

	var res Result
	src, format, hasAlpha, err := loadImage(j.Input, opts...)
	if err != nil {
		return res, err
	}
	res.Format = format
	res.HasAlpha = hasAlpha
	res.SrcW, res.SrcH = src.Width(), src.Height()

	if j.Alpha != "" {
		f, err := os.Open(filepath.Clean(j.Alpha))
		if err != nil {
			return res, fmt.Errorf("open alpha: %w", err)
		}
		res.HasAlpha = rendutil.LoadPNG(src, f, true, opts...)
		_ = f.Close()
	}

	tint := rendutil.White
	if j.Tint != "" {
		tint, _ = rendutil.Hex(j.Tint)
	}

	res.DstW, res.DstH = j.Width, j.Height
	if res.DstW == 0 {
		res.DstW = res.SrcW
	}
	if res.DstH == 0 {
		res.DstH = res.SrcH
	}

	dst, err := rendutil.NewBitmap(res.DstW, res.DstH)
	if err != nil {
		return res, fmt.Errorf("allocate output: %w", err)
	}
	rendutil.ResampleHQ(dst, src, tint, j.ForceAverage)

	if err := dst.SavePNG(j.Output); err != nil {
		return res, err
	}
	return res, nil
}

// loadImage detects and decodes the file at path.
func loadImage(path string, opts ...rendutil.LoadOption) (*rendutil.Bitmap, rendutil.ImageFormat, bool, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, rendutil.FormatUnknown, false, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	bm := &rendutil.Bitmap{}
	hasAlpha := false

	format := rendutil.DetectImage(f)
	switch format {
	case rendutil.FormatPNG:
		hasAlpha = rendutil.LoadPNG(bm, f, false, opts...)
	case rendutil.FormatJPEG:
		rendutil.LoadJPEG(bm, f, opts...)
	case rendutil.FormatMSDIB:
		rendutil.LoadMSDIB(bm, f, opts...)
	default:
		return nil, format, false, fmt.Errorf("%s: unrecognized image format", path)
	}

	if !bm.Valid() {
		return nil, format, false, fmt.Errorf("%s: %w", path, errEmptyImage)
	}
	return bm, format, hasAlpha, nil
}
