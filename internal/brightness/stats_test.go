package brightness

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grayImage builds a single-row greyscale image from the given levels.
func grayImage(levels ...uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, len(levels), 1))
	copy(img.Pix, levels)
	return img
}

func TestAnalyze_Basic(t *testing.T) {
	img := grayImage(0, 50, 100, 150, 210, 230, 250, 255)

	s, err := Analyze(img, DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, 8, s.Width)
	assert.Equal(t, 1, s.Height)
	assert.Equal(t, 8, s.TotalPixels)
	assert.Equal(t, 4, s.BrightPixels)
	assert.Equal(t, 4, s.DarkPixels)
	assert.InDelta(t, 50.0, s.BrightPercentage, 1e-9)
	assert.Equal(t, 0, s.Min)
	assert.Equal(t, 255, s.Max)

	levels := []float64{0, 50, 100, 150, 210, 230, 250, 255}
	var mean float64
	for _, v := range levels {
		mean += v
	}
	mean /= float64(len(levels))
	var variance float64
	for _, v := range levels {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(levels))

	assert.InDelta(t, mean, s.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(variance), s.StdDev, 1e-9)

	require.Len(t, s.Histogram, 256)
	require.Len(t, s.Cumulative, 256)
	assert.Equal(t, 1, s.Histogram[150])
	assert.Equal(t, 8, s.Cumulative[255])
}

func TestAnalyze_Bands(t *testing.T) {
	// one pixel per band edge and one just above it
	img := grayImage(64, 65, 128, 129, 200, 201, 220, 221)

	s, err := Analyze(img, 200)
	require.NoError(t, err)

	want := map[string]int{
		"very_dark":   1, // 64
		"dim":         2, // 65, 128
		"medium":      2, // 129, 200
		"bright":      2, // 201, 220
		"very_bright": 1, // 221
	}
	total := 0
	for name, count := range want {
		band, ok := s.Band(name)
		require.True(t, ok, name)
		assert.Equal(t, count, band.Count, name)
		total += band.Count
	}
	assert.Equal(t, s.TotalPixels, total)
}

func TestAnalyze_BandsPartitionForAnyThreshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 256, 1))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}

	for _, threshold := range []int{0, 50, 128, 200, 220, 240, 255} {
		s, err := Analyze(img, threshold)
		require.NoError(t, err)

		sum := 0
		for _, b := range s.Bands {
			assert.GreaterOrEqual(t, b.Count, 0)
			sum += b.Count
		}
		assert.Equal(t, 256, sum, "threshold %d", threshold)
		assert.Equal(t, threshold+1, s.DarkPixels, "threshold %d", threshold)
		assert.Equal(t, 255-threshold, s.BrightPixels, "threshold %d", threshold)
	}
}

func TestAnalyze_ColourUsesWeightedLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})

	s, err := Analyze(img, 100)
	require.NoError(t, err)
	assert.Equal(t, 76, s.Min)
	assert.Equal(t, 150, s.Max)
	assert.Equal(t, 1, s.BrightPixels)
}

func TestAnalyze_InvalidThreshold(t *testing.T) {
	img := grayImage(1, 2, 3)
	for _, threshold := range []int{-1, 256, 1000} {
		_, err := Analyze(img, threshold)
		assert.Error(t, err, "threshold %d", threshold)
	}
}

func TestAnalyze_EmptyImage(t *testing.T) {
	_, err := Analyze(image.NewGray(image.Rect(0, 0, 0, 0)), 100)
	assert.Error(t, err)
}

func TestStats_PercentileAndCDF(t *testing.T) {
	img := grayImage(10, 20, 30, 40)

	s, err := Analyze(img, 25)
	require.NoError(t, err)

	tests := []struct {
		p    float64
		want int
	}{
		{0, 10},
		{0.25, 10},
		{0.5, 20},
		{0.51, 30},
		{1, 40},
	}
	for _, tt := range tests {
		got, err := s.Percentile(tt.p)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "p=%v", tt.p)
	}
	assert.Equal(t, 20, s.Median)

	_, err = s.Percentile(1.5)
	assert.Error(t, err)

	assert.InDelta(t, 0.0, s.CDFAt(-1), 1e-9)
	assert.InDelta(t, 0.0, s.CDFAt(9), 1e-9)
	assert.InDelta(t, 0.5, s.CDFAt(25), 1e-9)
	assert.InDelta(t, 1.0, s.CDFAt(300), 1e-9)
}
