package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder for uploads

	"footprint/internal/core/domain/model/printfile"
	"footprint/internal/pkg/errs"

	"golang.org/x/image/draw"
)

// PrintJPEGQuality is the encoder quality of every print file.
const PrintJPEGQuality = 95

// MaxSourcePixels rejects decompression bombs before allocating the canvas.
const MaxSourcePixels = 120_000_000

// MinSourceDPI is the lowest resolution, measured over the cropped area at the
// physical print size, that a source may have.
const MinSourceDPI = 72

// RenderedPrint is an encoded, production-ready print file.
type RenderedPrint struct {
	Data   []byte
	Spec   printfile.Spec
	Width  int
	Height int
}

// PrintRenderer turns a customer photo into a print file of exact physical size.
//
// Rendering steps:
//   - decode JPEG or PNG
//   - pick orientation from the source (wider than tall means landscape)
//   - centre-crop the source to the aspect ratio of the target
//   - resample with Catmull-Rom to the exact pixel size at printfile.DPI
//   - encode as JPEG
type PrintRenderer struct{}

func NewPrintRenderer() PrintRenderer {
	return PrintRenderer{}
}

// Render produces the print file for size and paper. Undecodable, oversized and
// too small sources yield a ValueIsInvalidError on "source".
func (PrintRenderer) Render(source []byte, size printfile.Size, paper printfile.Paper) (RenderedPrint, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(source))
	if err != nil {
		return RenderedPrint{}, errs.NewValueIsInvalidErrorWithCause("source", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxSourcePixels {
		return RenderedPrint{}, errs.NewValueIsInvalidErrorWithCause(
			"source", fmt.Errorf("image of %dx%d pixels is not printable", cfg.Width, cfg.Height))
	}

	src, _, err := image.Decode(bytes.NewReader(source))
	if err != nil {
		return RenderedPrint{}, errs.NewValueIsInvalidErrorWithCause("source", err)
	}

	spec := printfile.Spec{Size: size, Paper: paper, Landscape: cfg.Width > cfg.Height}
	width, height := spec.Pixels()

	crop := CenterCrop(src.Bounds(), width, height)
	if crop.Empty() {
		return RenderedPrint{}, errs.NewValueIsInvalidErrorWithCause(
			"source", fmt.Errorf("image of %dx%d pixels has no area at the print ratio", cfg.Width, cfg.Height))
	}
	if dpi := EffectiveDPI(crop, width); dpi < MinSourceDPI {
		return RenderedPrint{}, errs.NewValueIsInvalidErrorWithCause(
			"source", fmt.Errorf("image resolution is %d dpi at %s, at least %d dpi is needed", dpi, size, MinSourceDPI))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)

	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: PrintJPEGQuality}); err != nil {
		return RenderedPrint{}, fmt.Errorf("encode print file: %w", err)
	}

	return RenderedPrint{Data: buf.Bytes(), Spec: spec, Width: width, Height: height}, nil
}

// CenterCrop returns the largest rectangle centred in bounds with the aspect
// ratio width:height.
func CenterCrop(bounds image.Rectangle, width, height int) image.Rectangle {
	bw, bh := bounds.Dx(), bounds.Dy()

	// Compare bw/bh with width/height without floating point.
	if bw*height > bh*width {
		cw := bh * width / height
		x0 := bounds.Min.X + (bw-cw)/2
		return image.Rect(x0, bounds.Min.Y, x0+cw, bounds.Max.Y)
	}

	ch := bw * height / width
	y0 := bounds.Min.Y + (bh-ch)/2
	return image.Rect(bounds.Min.X, y0, bounds.Max.X, y0+ch)
}

// EffectiveDPI is the resolution crop reaches when stretched across a print
// edge of width pixels at printfile.DPI.
func EffectiveDPI(crop image.Rectangle, width int) int {
	if width <= 0 {
		return 0
	}
	return crop.Dx() * printfile.DPI / width
}
