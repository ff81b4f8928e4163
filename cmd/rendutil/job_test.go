package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/rendutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func writePNG(t *testing.T, dir, name string, w, h int, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return path
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	return img
}

func TestLoadBatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jobs.yaml", `
jobs:
  - input: a.png
    output: a_small.png
    width: 16
    height: 8
    tint: "#ff8000"
  - input: b.jpg
    alpha: b_mask.png
    output: b.png
    force_average: true
`)

	b, err := loadBatch(path)
	if err != nil {
		t.Fatalf("loadBatch() error = %v", err)
	}
	if len(b.Jobs) != 2 {
		t.Fatalf("len(Jobs) = %d, want 2", len(b.Jobs))
	}

	want := Job{Input: "a.png", Output: "a_small.png", Width: 16, Height: 8, Tint: "#ff8000"}
	if b.Jobs[0] != want {
		t.Errorf("Jobs[0] = %+v, want %+v", b.Jobs[0], want)
	}
	if !b.Jobs[1].ForceAverage || b.Jobs[1].Alpha != "b_mask.png" {
		t.Errorf("Jobs[1] = %+v, want alpha and force_average set", b.Jobs[1])
	}
}

func TestLoadBatchErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"type error", "jobs:\n  - input: a.png\n    output: b.png\n    width: wide\n", "unmarshaling YAML"},
		{"syntax error", "jobs: [\n", "unmarshaling YAML"},
		{"missing input", "jobs:\n  - output: b.png\n", "missing input"},
		{"missing output", "jobs:\n  - input: a.png\n", "missing output"},
		{"negative size", "jobs:\n  - input: a.png\n    output: b.png\n    width: -1\n", "negative size"},
		{"bad tint", "jobs:\n  - input: a.png\n    output: b.png\n    tint: mauve\n", "bad tint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "jobs.yaml", tt.content)
			_, err := loadBatch(path)
			if err == nil {
				t.Fatal("loadBatch() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("loadBatch() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadBatchMissingFile(t *testing.T) {
	if _, err := loadBatch(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("loadBatch() error = nil, want error")
	}
}

func TestJobRun(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", 8, 4, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	out := filepath.Join(dir, "out.png")

	j := Job{Input: in, Output: out, Width: 4, Height: 2}
	res, err := j.run()
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if res.Format != rendutil.FormatPNG {
		t.Errorf("Format = %v, want PNG", res.Format)
	}
	if res.SrcW != 8 || res.SrcH != 4 || res.DstW != 4 || res.DstH != 2 {
		t.Errorf("sizes = %dx%d -> %dx%d, want 8x4 -> 4x2", res.SrcW, res.SrcH, res.DstW, res.DstH)
	}
	if res.HasAlpha {
		t.Error("HasAlpha = true, want false")
	}

	img := readPNG(t, out)
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("output bounds = %v, want 4x2", b)
	}
	got := color.NRGBAModel.Convert(img.At(1, 1)).(color.NRGBA)
	want := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	if got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestJobRunDefaultsToSourceSize(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", 5, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	out := filepath.Join(dir, "out.png")

	j := Job{Input: in, Output: out}
	res, err := j.run()
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if res.DstW != 5 || res.DstH != 3 {
		t.Errorf("output = %dx%d, want 5x3", res.DstW, res.DstH)
	}
}

func TestJobRunAlphaOverlay(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", 4, 4, color.NRGBA{R: 255, A: 255})
	mask := writePNG(t, dir, "mask.png", 4, 4, color.NRGBA{A: 255})
	out := filepath.Join(dir, "out.png")

	j := Job{Input: in, Alpha: mask, Output: out}
	res, err := j.run()
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !res.HasAlpha {
		t.Error("HasAlpha = false, want true after black mask")
	}

	got := color.NRGBAModel.Convert(readPNG(t, out).At(0, 0)).(color.NRGBA)
	if got.A != 0 {
		t.Errorf("alpha = %d, want 0", got.A)
	}
}

func TestJobRunTint(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", 2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	out := filepath.Join(dir, "out.png")

	j := Job{Input: in, Output: out, Tint: "#000"}
	if _, err := j.run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := color.NRGBAModel.Convert(readPNG(t, out).At(0, 0)).(color.NRGBA)
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("pixel = %v, want black", got)
	}
}

func TestJobRunErrors(t *testing.T) {
	dir := t.TempDir()
	junk := writeFile(t, dir, "junk.bin", "definitely not an image")
	truncated := writeFile(t, dir, "trunc.png", "\x89PNG\r\n\x1a\n")
	good := writePNG(t, dir, "good.png", 2, 2, color.NRGBA{A: 255})

	tests := []struct {
		name string
		job  Job
	}{
		{"missing input file", Job{Input: filepath.Join(dir, "nope.png"), Output: filepath.Join(dir, "o1.png")}},
		{"unknown format", Job{Input: junk, Output: filepath.Join(dir, "o2.png")}},
		{"broken png", Job{Input: truncated, Output: filepath.Join(dir, "o3.png")}},
		{"missing alpha file", Job{Input: good, Alpha: filepath.Join(dir, "nope.png"), Output: filepath.Join(dir, "o4.png")}},
		{"unwritable output", Job{Input: good, Output: filepath.Join(dir, "no", "such", "dir.png")}},
		{"invalid job", Job{Input: good}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.job.run(); err == nil {
				t.Error("run() error = nil, want error")
			}
		})
	}
}

func TestJobRunMaxPixels(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", 8, 8, color.NRGBA{A: 255})

	j := Job{Input: in, Output: filepath.Join(dir, "out.png")}
	if _, err := j.run(rendutil.WithMaxPixels(16)); err == nil {
		t.Error("run() error = nil, want pixel limit error")
	}
}
