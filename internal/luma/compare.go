package luma

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ComposeComparison places original and each derived raster side by side.
//
// The result is (1+len(derived))*W pixels wide and H pixels high. original
// occupies x in [0, W) and derived[i] occupies x in [W*(i+1), W*(i+2)), with
// its grey value copied into red, green and blue. Every pixel of the result
// is fully opaque.
//
// All derived rasters must be exactly W x H; otherwise an error wrapping
// ErrDimensionMismatch is returned and nothing is allocated. An empty derived
// list yields an opaque copy of original.
func ComposeComparison(original image.Image, derived []*image.Gray) (*image.NRGBA, error) {
	if original == nil {
		return nil, fmt.Errorf("%w: nil original image", ErrInvalidArgument)
	}
	bounds := original.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty original image", ErrInvalidArgument)
	}
	w, h := bounds.Dx(), bounds.Dy()

	for i, d := range derived {
		if d == nil {
			return nil, fmt.Errorf("%w: derived raster %d is nil", ErrInvalidArgument, i)
		}
		if d.Bounds().Dx() != w || d.Bounds().Dy() != h {
			return nil, fmt.Errorf("%w: derived raster %d is %dx%d, original is %dx%d",
				ErrDimensionMismatch, i, d.Bounds().Dx(), d.Bounds().Dy(), w, h)
		}
	}

	src := imaging.Clone(original)
	out := image.NewNRGBA(image.Rect(0, 0, w*(1+len(derived)), h))

	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride:]

		srcRow := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			row[i] = srcRow[i]
			row[i+1] = srcRow[i+1]
			row[i+2] = srcRow[i+2]
			row[i+3] = 0xff
		}

		for n, d := range derived {
			grayRow := d.Pix[y*d.Stride : y*d.Stride+w]
			offset := w * (n + 1) * 4
			for x, v := range grayRow {
				i := offset + x*4
				row[i] = v
				row[i+1] = v
				row[i+2] = v
				row[i+3] = 0xff
			}
		}
	}

	return out, nil
}
