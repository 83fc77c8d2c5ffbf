package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// RasterResult describes an image produced by a tool.
//
// When the image was written to disk OutputPath and FileSizeBytes are set;
// otherwise the PNG bytes are returned inline as ImageBase64.
type RasterResult struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	OutputPath    string `json:"output_path,omitempty"`
	FileSizeBytes int64  `json:"file_size_bytes,omitempty"`
	ImageBase64   string `json:"image_base64,omitempty"`
	MimeType      string `json:"mime_type"`
}

// EncodePNG writes img as a PNG using the best available compression.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
}

// SavePNG writes img to path as a PNG, creating parent directories as needed.
// It returns the size of the written file.
func SavePNG(img image.Image, path string) (int64, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	if err := EncodePNG(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return 0, fmt.Errorf("failed to encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close output file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat output file: %w", err)
	}
	return stat.Size(), nil
}

// NewRasterResult saves img to outputPath, or encodes it inline when
// outputPath is empty.
func NewRasterResult(img image.Image, outputPath string) (*RasterResult, error) {
	bounds := img.Bounds()
	result := &RasterResult{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		MimeType: "image/png",
	}

	if outputPath != "" {
		size, err := SavePNG(img, outputPath)
		if err != nil {
			return nil, err
		}
		result.OutputPath = outputPath
		result.FileSizeBytes = size
		return result, nil
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	result.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	return result, nil
}

// DefaultOutputPath returns prefix+basename(input) in the directory of input.
func DefaultOutputPath(input, prefix string) string {
	return filepath.Join(filepath.Dir(input), prefix+filepath.Base(input))
}
