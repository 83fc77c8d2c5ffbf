package luma

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidArgument is returned for an unsupported scheme or an empty image.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDimensionMismatch is returned when rasters that must share a size do not.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Scheme selects the channel weights used to compute luminance.
type Scheme string

const (
	// Weighted applies the BT.601 coefficients (0.299, 0.587, 0.114).
	Weighted Scheme = "weighted"

	// Average applies equal weights of one third.
	Average Scheme = "average"
)

// Schemes lists every supported scheme in presentation order.
var Schemes = []Scheme{Weighted, Average}

// ParseScheme converts a user-supplied name into a Scheme.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseScheme(name string) (Scheme, error) {
	s := Scheme(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown luminance method %q (want weighted or average)", ErrInvalidArgument, name)
	}
	return s, nil
}

// Valid reports whether s is one of the supported schemes.
func (s Scheme) Valid() bool {
	return s == Weighted || s == Average
}

func (s Scheme) String() string {
	return string(s)
}

// ExtractLuminance computes a single-channel luminance raster from img.
//
// The result has bounds (0,0)-(W,H) where W and H are the dimensions of img.
// img is read only; a new raster is always allocated.
func ExtractLuminance(img image.Image, scheme Scheme) (*image.Gray, error) {
	if !scheme.Valid() {
		return nil, fmt.Errorf("%w: unknown luminance method %q", ErrInvalidArgument, string(scheme))
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrInvalidArgument, bounds.Dx(), bounds.Dy())
	}

	// src is a non-premultiplied copy anchored at (0,0); alpha is ignored.
	src := imaging.Clone(img)
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	weigh := weightedValue
	if scheme == Average {
		weigh = averageValue
	}

	for y := 0; y < h; y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+w*4]
		dstRow := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := range dstRow {
			i := x * 4
			dstRow[x] = toUint8(weigh(srcRow[i], srcRow[i+1], srcRow[i+2]))
		}
	}

	return out, nil
}

func weightedValue(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

func averageValue(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3
}

// toUint8 rounds v to the nearest integer and clamps it to [0, 255].
func toUint8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
