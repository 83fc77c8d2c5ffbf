package imaging

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
)

// MaxPixels bounds the size of any raster allocated from caller-supplied
// dimensions.
const MaxPixels = 100_000_000

// CheckSize reports an error when a w x h raster would exceed MaxPixels.
func CheckSize(w, h int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("invalid size %dx%d", w, h)
	}
	return checkPixels(float64(w), float64(h))
}

func checkPixels(w, h float64) error {
	if w*h > MaxPixels {
		return fmt.Errorf("size %.0fx%.0f exceeds the limit of %d pixels", w, h, MaxPixels)
	}
	return nil
}

// ResizeMode controls how an explicit width and height are honoured.
type ResizeMode string

const (
	// ModeStretch resizes to exactly width x height; the aspect ratio may change.
	ModeStretch ResizeMode = "stretch"

	// ModeFit scales the image to fit inside width x height, keeping its aspect ratio.
	ModeFit ResizeMode = "fit"

	// ModeFill crops the most interesting region with the target aspect ratio
	// and resizes it to exactly width x height.
	ModeFill ResizeMode = "fill"
)

// ResizeOptions selects the target size and resampling filter.
//
// Exactly one sizing strategy applies, checked in this order:
//  1. Scale > 0: both sides are multiplied by Scale.
//  2. Width and Height > 0: the box is interpreted according to Mode.
//  3. Width only: height follows the aspect ratio when KeepAspect is set,
//     otherwise it stays unchanged.
//  4. Height only: symmetric to Width only.
type ResizeOptions struct {
	Width      int
	Height     int
	Scale      float64
	KeepAspect bool
	Mode       ResizeMode
	Filter     string
}

// ResizeResult reports the outcome of a resize.
type ResizeResult struct {
	OriginalWidth  int    `json:"original_width"`
	OriginalHeight int    `json:"original_height"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Mode           string `json:"mode"`
	Filter         string `json:"filter"`
	OutputPath     string `json:"output_path"`
	FileSizeBytes  int64  `json:"file_size_bytes"`
}

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"bicubic":    imaging.CatmullRom,
	"linear":     imaging.Linear,
	"bilinear":   imaging.Linear,
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
}

// ParseFilter resolves a filter name. An empty name selects Lanczos.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return imaging.Lanczos, nil
	}
	f, ok := filters[name]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter %q", name)
	}
	return f, nil
}

// ParseResizeMode resolves a mode name. An empty name selects ModeStretch.
func ParseResizeMode(name string) (ResizeMode, error) {
	switch m := ResizeMode(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return ModeStretch, nil
	case ModeStretch, ModeFit, ModeFill:
		return m, nil
	default:
		return "", fmt.Errorf("unknown resize mode %q", name)
	}
}

// TargetSize computes the output dimensions for a srcW x srcH image.
//
// For ModeFit the returned size is the bounding box; the image produced by
// Resize may be smaller along one axis.
func TargetSize(srcW, srcH int, opts ResizeOptions) (int, int, error) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, fmt.Errorf("source image is empty (%dx%d)", srcW, srcH)
	}
	if opts.Width < 0 || opts.Height < 0 || opts.Scale < 0 {
		return 0, 0, fmt.Errorf("width, height and scale must not be negative")
	}

	var w, h int
	switch {
	case opts.Scale > 0:
		fw, fh := float64(srcW)*opts.Scale, float64(srcH)*opts.Scale
		if err := checkPixels(fw, fh); err != nil {
			return 0, 0, err
		}
		w, h = int(fw), int(fh)
	case opts.Width > 0 && opts.Height > 0:
		w, h = opts.Width, opts.Height
	case opts.Width > 0:
		w, h = opts.Width, srcH
		if opts.KeepAspect {
			fh := float64(srcH) * float64(opts.Width) / float64(srcW)
			if err := checkPixels(float64(w), fh); err != nil {
				return 0, 0, err
			}
			h = int(fh)
		}
	case opts.Height > 0:
		w, h = srcW, opts.Height
		if opts.KeepAspect {
			fw := float64(srcW) * float64(opts.Height) / float64(srcH)
			if err := checkPixels(fw, float64(h)); err != nil {
				return 0, 0, err
			}
			w = int(fw)
		}
	default:
		return 0, 0, fmt.Errorf("width/height or scale required")
	}

	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("target size %dx%d is too small", w, h)
	}
	if err := CheckSize(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// Resize returns a resized copy of img. Transparency is preserved.
func Resize(img image.Image, opts ResizeOptions) (*image.NRGBA, error) {
	out, _, err := resize(img, opts)
	return out, err
}

// resize is Resize that also reports the mode that was actually applied.
func resize(img image.Image, opts ResizeOptions) (*image.NRGBA, ResizeMode, error) {
	filter, err := ParseFilter(opts.Filter)
	if err != nil {
		return nil, "", err
	}
	mode, err := ParseResizeMode(opts.Mode.String())
	if err != nil {
		return nil, "", err
	}

	bounds := img.Bounds()
	w, h, err := TargetSize(bounds.Dx(), bounds.Dy(), opts)
	if err != nil {
		return nil, "", err
	}

	// Mode only matters when the caller fixed both sides of the box.
	if opts.Scale > 0 || opts.Width == 0 || opts.Height == 0 {
		mode = ModeStretch
	}

	switch mode {
	case ModeFit:
		return imaging.Fit(img, w, h, filter), mode, nil
	case ModeFill:
		out, err := smartFill(img, w, h, filter)
		return out, mode, err
	default:
		return imaging.Resize(img, w, h, filter), mode, nil
	}
}

func (m ResizeMode) String() string {
	return string(m)
}

// smartFill crops img to the region smartcrop considers most interesting for
// a w x h output and resizes that region.
func smartFill(img image.Image, w, h int, filter imaging.ResampleFilter) (*image.NRGBA, error) {
	analyzer := smartcrop.NewAnalyzer(resampler{filter: filter})
	crop, err := analyzer.FindBestCrop(img, w, h)
	if err != nil {
		return nil, fmt.Errorf("finding best crop: %w", err)
	}
	return imaging.Resize(imaging.Crop(img, crop), w, h, filter), nil
}

// resampler adapts an imaging filter to the smartcrop resizer interface.
type resampler struct {
	filter imaging.ResampleFilter
}

func (r resampler) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.filter)
}

// ResizeFile resizes the image at input and writes it to output as a PNG.
//
// An empty output writes "resized_<name>" next to the input. The cache entry
// for output, if any, is evicted.
func ResizeFile(cache *ImageCache, input, output string, opts ResizeOptions) (*ResizeResult, error) {
	img, err := cache.Load(input)
	if err != nil {
		return nil, err
	}

	resized, mode, err := resize(img, opts)
	if err != nil {
		return nil, err
	}

	if output == "" {
		output = DefaultOutputPath(input, "resized_")
	}
	size, err := SavePNG(resized, output)
	if err != nil {
		return nil, err
	}
	cache.Evict(output)

	filter := strings.ToLower(strings.TrimSpace(opts.Filter))
	if filter == "" {
		filter = "lanczos"
	}

	return &ResizeResult{
		OriginalWidth:  img.Bounds().Dx(),
		OriginalHeight: img.Bounds().Dy(),
		Width:          resized.Bounds().Dx(),
		Height:         resized.Bounds().Dy(),
		Mode:           mode.String(),
		Filter:         filter,
		OutputPath:     output,
		FileSizeBytes:  size,
	}, nil
}
