package brightness

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/histogram"

	"github.com/ironsheep/png-tools-mcp/internal/luma"
)

// DefaultThreshold is the brightness level above which a pixel counts as bright.
const DefaultThreshold = 200

// Band edges. A pixel belongs to the first band whose upper edge it does not exceed.
const (
	veryDarkMax = 64
	dimMax      = 128
	brightMax   = 220
)

// Band is one brightness range and the pixels that fall into it.
type Band struct {
	Name       string  `json:"name"`
	Low        int     `json:"low"`  // exclusive, -1 for the first band
	High       int     `json:"high"` // inclusive
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Stats summarises the luminance distribution of an image.
type Stats struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	Threshold int `json:"threshold"`

	TotalPixels      int     `json:"total_pixels"`
	BrightPixels     int     `json:"bright_pixels"`
	DarkPixels       int     `json:"dark_pixels"`
	BrightPercentage float64 `json:"bright_percentage"`
	DarkPercentage   float64 `json:"dark_percentage"`

	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Median int     `json:"median"`

	Bands []Band `json:"bands"`

	// Histogram holds the pixel count for each level 0-255.
	Histogram []int `json:"histogram,omitempty"`

	// Cumulative holds the number of pixels at or below each level.
	Cumulative []int `json:"cumulative,omitempty"`
}

// Analyze computes brightness statistics for img.
// threshold must lie in [0, 255].
func Analyze(img image.Image, threshold int) (*Stats, error) {
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("threshold %d out of range 0-255", threshold)
	}

	gray, err := luma.ExtractLuminance(img, luma.Weighted)
	if err != nil {
		return nil, fmt.Errorf("converting to greyscale: %w", err)
	}

	// The grey image expands to R=G=B, so the red channel is the luminance histogram.
	hist := histogram.NewRGBAHistogram(gray)
	bins := hist.R.Bins
	cumulative := hist.R.Cumulative().Bins

	s := &Stats{
		Width:      gray.Bounds().Dx(),
		Height:     gray.Bounds().Dy(),
		Threshold:  threshold,
		Histogram:  bins,
		Cumulative: cumulative,
	}
	s.TotalPixels = cumulative[len(cumulative)-1]

	var sum, sumSq float64
	s.Min, s.Max = -1, 0
	for level, n := range bins {
		if n == 0 {
			continue
		}
		if s.Min < 0 {
			s.Min = level
		}
		s.Max = level
		sum += float64(level * n)
		sumSq += float64(level * level * n)
	}

	total := float64(s.TotalPixels)
	s.Mean = sum / total
	s.StdDev = math.Sqrt(math.Max(0, sumSq/total-s.Mean*s.Mean))

	s.DarkPixels = cumulative[threshold]
	s.BrightPixels = s.TotalPixels - s.DarkPixels
	s.DarkPercentage = s.percent(s.DarkPixels)
	s.BrightPercentage = s.percent(s.BrightPixels)

	s.Median, _ = s.Percentile(0.5)
	s.Bands = s.bands()

	return s, nil
}

func (s *Stats) bands() []Band {
	medium := mediumEdge(s.Threshold)
	edges := []struct {
		name string
		high int
	}{
		{"very_dark", veryDarkMax},
		{"dim", dimMax},
		{"medium", medium},
		{"bright", brightMax},
		{"very_bright", 255},
	}

	bands := make([]Band, 0, len(edges))
	low := -1
	for _, e := range edges {
		count := s.countAtOrBelow(e.high) - s.countAtOrBelow(low)
		bands = append(bands, Band{
			Name:       e.name,
			Low:        low,
			High:       e.high,
			Count:      count,
			Percentage: s.percent(count),
		})
		low = e.high
	}
	return bands
}

// mediumEdge clamps the threshold into [dimMax, brightMax].
func mediumEdge(t int) int {
	if t < dimMax {
		return dimMax
	}
	if t > brightMax {
		return brightMax
	}
	return t
}

func (s *Stats) countAtOrBelow(level int) int {
	if level < 0 {
		return 0
	}
	if level > 255 {
		level = 255
	}
	return s.Cumulative[level]
}

func (s *Stats) percent(n int) float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(n) / float64(s.TotalPixels) * 100
}

// CDFAt returns the fraction of pixels whose brightness is at most level.
func (s *Stats) CDFAt(level int) float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.countAtOrBelow(level)) / float64(s.TotalPixels)
}

// Percentile returns the smallest level L such that at least p of all pixels
// have brightness <= L. p must be in [0, 1].
func (s *Stats) Percentile(p float64) (int, error) {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, fmt.Errorf("percentile %v out of range 0-1", p)
	}
	need := p * float64(s.TotalPixels)
	for level, n := range s.Cumulative {
		if float64(n) >= need && n > 0 {
			return level, nil
		}
	}
	return 255, nil
}

// Band returns the band with the given name.
func (s *Stats) Band(name string) (Band, bool) {
	for _, b := range s.Bands {
		if b.Name == name {
			return b, true
		}
	}
	return Band{}, false
}
