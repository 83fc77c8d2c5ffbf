package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache provides thread-safe caching of decoded images keyed by file path.
//
// Once an image is loaded, subsequent Load() calls for the same path return
// the cached copy without disk I/O. Cached images are treated as read-only by
// every operation in this repository, so a cached value can be shared between
// concurrent tool calls.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Tools that write a file evict that path so a later Load() sees the
// new contents.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

type cachedImage struct {
	img    image.Image
	format string
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. The image is
// cached under the exact path string provided.
func (c *ImageCache) Load(path string) (image.Image, error) {
	img, _, err := c.LoadWithFormat(path)
	return img, err
}

// LoadWithFormat is like Load but also returns the name of the decoder that
// read the file ("png", "jpeg", ...).
func (c *ImageCache) LoadWithFormat(path string) (image.Image, string, error) {
	c.mu.RLock()
	if entry, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return entry.img, entry.format, nil
	}
	c.mu.RUnlock()

	img, format, err := Decode(path)
	if err != nil {
		return nil, "", err
	}

	c.mu.Lock()
	c.images[path] = cachedImage{img: img, format: format}
	c.mu.Unlock()

	return img, format, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Decode opens and decodes an image file without caching it.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return DecodeReader(f)
}

// DecodeReader decodes an image from r using any registered decoder.
func DecodeReader(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the name of the decoder that read the file: "png", "jpeg",
	// "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// Mode names the pixel layout: "L" (grey), "RGB", "RGBA", "P" (paletted),
	// "CMYK" or "YCbCr".
	Mode string `json:"mode"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the pixel layout carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, format, err := cache.LoadWithFormat(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := Describe(img)
	info.Format = format
	info.FileSizeBytes = stat.Size()
	return info, nil
}

// Describe reports the dimensions and pixel layout of an in-memory image.
// Format and FileSizeBytes are left empty.
func Describe(img image.Image) *ImageInfo {
	bounds := img.Bounds()
	info := &ImageInfo{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Mode:       "RGB",
		ColorDepth: "8-bit",
	}

	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		info.Mode = "RGBA"
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.Mode = "RGBA"
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	case *image.Gray:
		info.Mode = "L"
	case *image.Gray16:
		info.Mode = "L"
		info.ColorDepth = "16-bit"
	case *image.Paletted:
		info.Mode = "P"
	case *image.CMYK:
		info.Mode = "CMYK"
	case *image.YCbCr:
		info.Mode = "YCbCr"
	case *image.NYCbCrA:
		info.Mode = "YCbCr"
		info.HasAlpha = true
	}
	return info
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
