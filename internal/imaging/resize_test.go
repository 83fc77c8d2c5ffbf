package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name         string
		opts         ResizeOptions
		wantW, wantH int
	}{
		{"scale half", ResizeOptions{Scale: 0.5}, 320, 240},
		{"scale wins over width", ResizeOptions{Scale: 2, Width: 10}, 1280, 960},
		{"explicit box", ResizeOptions{Width: 400, Height: 300}, 400, 300},
		{"width keep aspect", ResizeOptions{Width: 300, KeepAspect: true}, 300, 225},
		{"width free aspect", ResizeOptions{Width: 300}, 300, 480},
		{"height keep aspect", ResizeOptions{Height: 200, KeepAspect: true}, 266, 200},
		{"height free aspect", ResizeOptions{Height: 200}, 640, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := TargetSize(640, 480, tt.opts)
			if err != nil {
				t.Fatalf("TargetSize failed: %v", err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTargetSize_Errors(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		opts       ResizeOptions
	}{
		{"nothing requested", 10, 10, ResizeOptions{}},
		{"negative width", 10, 10, ResizeOptions{Width: -1}},
		{"negative scale", 10, 10, ResizeOptions{Scale: -0.5}},
		{"scale collapses", 10, 10, ResizeOptions{Scale: 0.01}},
		{"aspect collapses", 1000, 2, ResizeOptions{Width: 10, KeepAspect: true}},
		{"empty source", 0, 10, ResizeOptions{Scale: 1}},
		{"huge scale", 10, 10, ResizeOptions{Scale: 1e300}},
		{"huge box", 10, 10, ResizeOptions{Width: 1 << 62, Height: 4}},
		{"huge width keep aspect", 10, 10, ResizeOptions{Width: 1 << 40, KeepAspect: true}},
		{"huge height keep aspect", 10, 1000, ResizeOptions{Height: 1 << 62, KeepAspect: true}},
		{"over pixel limit", 10, 10, ResizeOptions{Width: 20000, Height: 20000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := TargetSize(tt.srcW, tt.srcH, tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCheckSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"small", 640, 480, false},
		{"at limit", MaxPixels / 10, 10, false},
		{"over limit", MaxPixels, 2, true},
		{"overflowing", 1 << 62, 4, true},
		{"negative", -1, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSize(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckSize(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	for _, name := range []string{"", "lanczos", "Bicubic", "catmullrom", "linear", "bilinear", "nearest", "box"} {
		if _, err := ParseFilter(name); err != nil {
			t.Errorf("ParseFilter(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseFilter("hermite-ish"); err == nil {
		t.Error("ParseFilter should reject unknown names")
	}
}

func TestParseResizeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ResizeMode
		wantErr bool
	}{
		{"", ModeStretch, false},
		{"stretch", ModeStretch, false},
		{"FIT", ModeFit, false},
		{"fill", ModeFill, false},
		{"zoom", "", true},
	}
	for _, tt := range tests {
		got, err := ParseResizeMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseResizeMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseResizeMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestResize_Modes(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			src.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 128, 255})
		}
	}

	tests := []struct {
		name         string
		opts         ResizeOptions
		wantW, wantH int
	}{
		{"stretch", ResizeOptions{Width: 50, Height: 50}, 50, 50},
		{"fit", ResizeOptions{Width: 50, Height: 50, Mode: ModeFit}, 50, 25},
		{"fill", ResizeOptions{Width: 50, Height: 50, Mode: ModeFill}, 50, 50},
		{"fit ignored for single side", ResizeOptions{Width: 100, KeepAspect: true, Mode: ModeFit}, 100, 50},
		{"nearest filter", ResizeOptions{Scale: 2, Filter: "nearest"}, 400, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Resize(src, tt.opts)
			if err != nil {
				t.Fatalf("Resize failed: %v", err)
			}
			if b := out.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResize_PreservesTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for i := range src.Pix {
		src.Pix[i] = 0
	}

	out, err := Resize(src, ResizeOptions{Scale: 0.5})
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if a := out.NRGBAAt(10, 10).A; a != 0 {
		t.Errorf("alpha: got %d, want 0", a)
	}
}

func TestResize_InvalidOptions(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	if _, err := Resize(src, ResizeOptions{Scale: 1, Filter: "bogus"}); err == nil {
		t.Error("expected error for unknown filter")
	}
	if _, err := Resize(src, ResizeOptions{Width: 5, Height: 5, Mode: "zoom"}); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := Resize(src, ResizeOptions{}); err == nil {
		t.Error("expected error when no size is given")
	}
}

func TestResizeFile(t *testing.T) {
	cache := NewImageCache()
	input := writeTestPNG(t, 640, 480, color.RGBA{0, 0, 255, 255})

	result, err := ResizeFile(cache, input, "", ResizeOptions{Width: 300, KeepAspect: true})
	if err != nil {
		t.Fatalf("ResizeFile failed: %v", err)
	}

	wantPath := filepath.Join(filepath.Dir(input), "resized_input.png")
	if result.OutputPath != wantPath {
		t.Errorf("OutputPath: got %s, want %s", result.OutputPath, wantPath)
	}
	if result.OriginalWidth != 640 || result.OriginalHeight != 480 {
		t.Errorf("original: got %dx%d", result.OriginalWidth, result.OriginalHeight)
	}
	if result.Width != 300 || result.Height != 225 {
		t.Errorf("resized: got %dx%d, want 300x225", result.Width, result.Height)
	}
	if result.Filter != "lanczos" || result.Mode != "stretch" {
		t.Errorf("filter/mode: got %s/%s", result.Filter, result.Mode)
	}

	if _, err := os.Stat(wantPath); err != nil {
		t.Fatalf("output not written: %v", err)
	}
	dims, err := GetDimensions(cache, wantPath)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 300 || dims.Height != 225 {
		t.Errorf("file dimensions: got %dx%d", dims.Width, dims.Height)
	}
}

func TestResizeFile_ExplicitOutput(t *testing.T) {
	cache := NewImageCache()
	input := writeTestPNG(t, 64, 64, color.RGBA{0, 255, 0, 255})
	output := filepath.Join(t.TempDir(), "out", "small.png")

	result, err := ResizeFile(cache, input, output, ResizeOptions{Scale: 0.25, Filter: "box"})
	if err != nil {
		t.Fatalf("ResizeFile failed: %v", err)
	}
	if result.OutputPath != output || result.Width != 16 || result.Height != 16 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestResizeFile_MissingInput(t *testing.T) {
	cache := NewImageCache()
	if _, err := ResizeFile(cache, "/nonexistent/in.png", "", ResizeOptions{Scale: 1}); err == nil {
		t.Error("expected error for missing input")
	}
}
