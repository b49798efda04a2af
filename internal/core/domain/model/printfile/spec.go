// Package printfile describes physical print products and the object storage
// layout of their files.
//
// A print is one of a fixed set of sizes on one of a fixed set of papers. Each
// paper adds a bleed on every edge (canvas wraps around the stretcher bars), and
// the print file is rendered at DPI so that one pixel maps to a known physical
// length:
//
//	pixels = round((cm*10 + 2*bleedMM) / 25.4 * DPI)
package printfile

import (
	"fmt"
	"math"

	"footprint/internal/pkg/errs"
)

// DPI is the production resolution of every print file.
const DPI = 300

const mmPerInch = 25.4

// Size is a print size code, short edge first, in centimetres.
type Size string

const (
	Size13x18 Size = "13x18"
	Size20x30 Size = "20x30"
	Size30x40 Size = "30x40"
	Size40x60 Size = "40x60"
	Size50x70 Size = "50x70"
)

var sizeDimensionsCM = map[Size][2]int{
	Size13x18: {13, 18},
	Size20x30: {20, 30},
	Size30x40: {30, 40},
	Size40x60: {40, 60},
	Size50x70: {50, 70},
}

// Paper is a print medium code.
type Paper string

const (
	PaperMatte   Paper = "matte"
	PaperGlossy  Paper = "glossy"
	PaperFineArt Paper = "fine_art"
	PaperCanvas  Paper = "canvas"
)

var paperBleedMM = map[Paper]int{
	PaperMatte:   3,
	PaperGlossy:  3,
	PaperFineArt: 3,
	PaperCanvas:  30,
}

// Sizes returns all sizes from smallest to largest.
func Sizes() []Size {
	return []Size{Size13x18, Size20x30, Size30x40, Size40x60, Size50x70}
}

func Papers() []Paper {
	return []Paper{PaperMatte, PaperGlossy, PaperFineArt, PaperCanvas}
}

func ParseSize(value string) (Size, error) {
	if value == "" {
		return "", errs.NewValueIsRequiredError("size")
	}
	if _, ok := sizeDimensionsCM[Size(value)]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%q is not a print size", value))
	}
	return Size(value), nil
}

func ParsePaper(value string) (Paper, error) {
	if value == "" {
		return "", errs.NewValueIsRequiredError("paper")
	}
	if _, ok := paperBleedMM[Paper(value)]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("paper", fmt.Errorf("%q is not a paper type", value))
	}
	return Paper(value), nil
}

// CM returns the short and long edge in centimetres, or zeros for an unknown size.
func (s Size) CM() (short, long int) {
	d := sizeDimensionsCM[s]
	return d[0], d[1]
}

// BleedMM returns the bleed added on each edge, or 0 for an unknown paper.
func (p Paper) BleedMM() int {
	return paperBleedMM[p]
}

// Spec is a fully configured print.
type Spec struct {
	Size      Size
	Paper     Paper
	Landscape bool
}

// PixelsForEdge converts one physical edge plus bleed into pixels at DPI.
func PixelsForEdge(cm, bleedMM int) int {
	mm := float64(cm*10 + 2*bleedMM)
	return int(math.Round(mm / mmPerInch * DPI))
}

// Pixels returns the exact width and height of the print file. Portrait prints
// have the short edge horizontal.
func (s Spec) Pixels() (width, height int) {
	short, long := s.Size.CM()
	bleed := s.Paper.BleedMM()
	w, h := PixelsForEdge(short, bleed), PixelsForEdge(long, bleed)
	if s.Landscape {
		return h, w
	}
	return w, h
}
