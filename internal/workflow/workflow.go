// Package workflow runs the end-to-end luminance extraction: obtain a source
// image, derive both luminance rasters, build the comparison strip and write
// everything to disk.
package workflow

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/ironsheep/png-tools-mcp/internal/imaging"
	"github.com/ironsheep/png-tools-mcp/internal/logging"
	"github.com/ironsheep/png-tools-mcp/internal/luma"
	"github.com/ironsheep/png-tools-mcp/internal/source"
)

// Output file names.
const (
	DefaultSourcePath = "example.png"
	WeightedFile      = "luminance_weighted.png"
	AverageFile       = "luminance_average.png"
	ComparisonFile    = "comparison_result.png"
)

// Options configures Run.
type Options struct {
	// SourcePath is the local image to use. When it cannot be read the
	// fallbacks are tried and the image they produce is saved here.
	// Defaults to example.png.
	SourcePath string

	// OutputDir receives the generated files. Defaults to the current
	// directory.
	OutputDir string

	// Fallbacks are tried in order when SourcePath is unusable.
	Fallbacks []source.Provider

	// KeepSource disables saving a fallback image to SourcePath.
	KeepSource bool
}

// OutputFile is one file written by Run.
type OutputFile struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
}

// Result summarises a completed run.
type Result struct {
	// Source names the provider that supplied the image ("file",
	// "download" or "placeholder").
	Source string `json:"source"`

	// SourcePath is set when the source image is on disk, either because it
	// was read from there or because a fallback image was saved.
	SourcePath string `json:"source_path,omitempty"`

	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Outputs []OutputFile `json:"outputs"`
}

// Run executes the workflow.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.SourcePath == "" {
		opts.SourcePath = DefaultSourcePath
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	providers := append([]source.Provider{source.FileProvider{Path: opts.SourcePath}}, opts.Fallbacks...)
	img, used, err := source.Chain(ctx, providers...)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	result := &Result{
		Source: used,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	logging.Printf("source image from %s: %dx%d", used, result.Width, result.Height)

	switch {
	case used == "file":
		result.SourcePath = opts.SourcePath
	case !opts.KeepSource:
		// A source that cannot be saved is still usable from memory.
		if _, err := imaging.SavePNG(img, opts.SourcePath); err != nil {
			logging.Printf("failed to save source image: %v", err)
		} else {
			result.SourcePath = opts.SourcePath
		}
	}

	weighted, err := luma.ExtractLuminance(img, luma.Weighted)
	if err != nil {
		return nil, fmt.Errorf("weighted luminance: %w", err)
	}
	average, err := luma.ExtractLuminance(img, luma.Average)
	if err != nil {
		return nil, fmt.Errorf("average luminance: %w", err)
	}
	comparison, err := luma.ComposeComparison(img, []*image.Gray{weighted, average})
	if err != nil {
		return nil, fmt.Errorf("comparison: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	outputs := []struct {
		name string
		img  image.Image
	}{
		{WeightedFile, weighted},
		{AverageFile, average},
		{ComparisonFile, comparison},
	}
	for _, o := range outputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(opts.OutputDir, o.name)
		size, err := imaging.SavePNG(o.img, path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.name, err)
		}
		logging.Printf("saved %s (%d bytes)", path, size)
		result.Outputs = append(result.Outputs, OutputFile{Name: o.name, Path: path, SizeBytes: size})
	}

	return result, nil
}
