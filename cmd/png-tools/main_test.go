package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := root.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func pngSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestResizeCmd(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 200, 100, color.White)
	b := writePNG(t, dir, "b.png", 100, 100, color.Black)
	outDir := filepath.Join(dir, "out")

	out, err := run(t, "resize", "--width", "50", "--out-dir", outDir, a, b)
	require.NoError(t, err)

	w, h := pngSize(t, filepath.Join(outDir, "resized_a.png"))
	assert.Equal(t, [2]int{50, 25}, [2]int{w, h})
	w, h = pngSize(t, filepath.Join(outDir, "resized_b.png"))
	assert.Equal(t, [2]int{50, 50}, [2]int{w, h})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "200x100 -> 50x25")
	assert.Contains(t, lines[1], "100x100 -> 50x50")
}

func TestResizeCmd_DefaultOutputNextToInput(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, "photo.png", 40, 40, color.White)

	_, err := run(t, "resize", "--scale", "0.5", input)
	require.NoError(t, err)

	w, h := pngSize(t, filepath.Join(dir, "resized_photo.png"))
	assert.Equal(t, [2]int{20, 20}, [2]int{w, h})
}

func TestResizeCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, "a.png", 10, 10, color.White)

	_, err := run(t, "resize", input)
	assert.Error(t, err, "no size given")

	_, err = run(t, "resize", "--width", "5", "--mode", "squash", input)
	assert.Error(t, err)

	_, err = run(t, "resize", "--width", "5", "--filter", "sinc", input)
	assert.Error(t, err)

	_, err = run(t, "resize", "--width", "5", filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	_, err = run(t, "resize")
	assert.Error(t, err, "no files")
}

func TestResizeCmd_OutputCollision(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "one"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "two"), 0o755))
	a := writePNG(t, filepath.Join(dir, "one"), "photo.png", 20, 20, color.White)
	b := writePNG(t, filepath.Join(dir, "two"), "photo.png", 30, 30, color.Black)
	outDir := filepath.Join(dir, "out")

	_, err := run(t, "resize", "--width", "10", "--out-dir", outDir, a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same output")
	assert.NoFileExists(t, filepath.Join(outDir, "resized_photo.png"))

	_, err = run(t, "resize", "--width", "10", a, a)
	assert.Error(t, err, "same input twice")

	// Without --out-dir each file lands next to its input.
	_, err = run(t, "resize", "--width", "10", a, b)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "one", "resized_photo.png"))
	assert.FileExists(t, filepath.Join(dir, "two", "resized_photo.png"))
}

func TestLuminanceCmd_Placeholder(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "example.png")

	out, err := run(t, "luminance", "--no-download", "--out-dir", dir, src)
	require.NoError(t, err)

	assert.Contains(t, out, "Source: placeholder (400x300)")
	for _, name := range []string{"luminance_weighted.png", "luminance_average.png", "comparison_result.png"} {
		assert.Contains(t, out, name)
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.FileExists(t, src)

	w, h := pngSize(t, filepath.Join(dir, "comparison_result.png"))
	assert.Equal(t, [2]int{1200, 300}, [2]int{w, h})
}

func TestLuminanceCmd_LocalFile(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "mine.png", 8, 6, color.NRGBA{R: 255, A: 255})

	out, err := run(t, "luminance", "--no-download", "--out-dir", dir, src)
	require.NoError(t, err)
	assert.Contains(t, out, "Source: file (8x6)")

	w, h := pngSize(t, filepath.Join(dir, "comparison_result.png"))
	assert.Equal(t, [2]int{24, 6}, [2]int{w, h})
}

func TestBrightnessCmd(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, "white.png", 10, 10, color.White)
	csvPath := filepath.Join(dir, "stats.csv")

	out, err := run(t, "brightness", "--threshold", "128", "--csv", csvPath, input)
	require.NoError(t, err)

	assert.Contains(t, out, "Total pixels:       100")
	assert.Contains(t, out, "> 128")
	assert.Contains(t, out, "Exported "+csvPath)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bright_pixels,100")
}

func TestBrightnessCmd_InvalidThreshold(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, "white.png", 2, 2, color.White)

	_, err := run(t, "brightness", "--threshold", "256", input)
	assert.Error(t, err)
}

func TestPlaceholderCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.png")

	out, err := run(t, "placeholder", "--kind", "test", "--width", "64", "--height", "48", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+path+" (64x48")

	w, h := pngSize(t, path)
	assert.Equal(t, [2]int{64, 48}, [2]int{w, h})

	_, err = run(t, "placeholder", "--kind", "spiral", "-o", path)
	assert.Error(t, err)
}
