package brightness

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const reportTimeLayout = "2006-01-02 15:04:05"

var bandLabels = map[string]string{
	"very_dark":   "Very dark",
	"dim":         "Dim",
	"medium":      "Medium",
	"bright":      "Bright",
	"very_bright": "Very bright",
}

// Report renders s as a human-readable text report.
func (s *Stats) Report(source string, at time.Time) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("PNG brightness report\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	p.Fprintf(&b, "Source:     %s\n", source)
	p.Fprintf(&b, "Size:       %d x %d\n", s.Width, s.Height)
	p.Fprintf(&b, "Threshold:  > %d counts as bright\n\n", s.Threshold)

	b.WriteString("Summary\n")
	p.Fprintf(&b, "  Total pixels:       %d\n", s.TotalPixels)
	p.Fprintf(&b, "  Mean brightness:    %.2f/255\n", s.Mean)
	p.Fprintf(&b, "  Median brightness:  %d/255\n", s.Median)
	p.Fprintf(&b, "  Max brightness:     %d/255\n", s.Max)
	p.Fprintf(&b, "  Min brightness:     %d/255\n", s.Min)
	p.Fprintf(&b, "  Std deviation:      %.2f\n\n", s.StdDev)

	b.WriteString("Bands\n")
	for _, band := range s.Bands {
		p.Fprintf(&b, "  %-12s %-10s %d (%.2f%%)\n", bandLabels[band.Name], bandRange(band), band.Count, band.Percentage)
	}
	b.WriteString("\n")

	b.WriteString("Key figures\n")
	p.Fprintf(&b, "  Bright pixels (>%d):  %d\n", s.Threshold, s.BrightPixels)
	p.Fprintf(&b, "  Dark pixels (<=%d):   %d\n", s.Threshold, s.DarkPixels)
	p.Fprintf(&b, "  Bright share:         %.2f%%\n", s.BrightPercentage)
	p.Fprintf(&b, "  Dark share:           %.2f%%\n\n", s.DarkPercentage)

	p.Fprintf(&b, "Generated: %s\n", at.Format(reportTimeLayout))
	return b.String()
}

func bandRange(b Band) string {
	switch {
	case b.Low < 0:
		return fmt.Sprintf("(<=%d)", b.High)
	case b.High >= 255:
		return fmt.Sprintf("(>%d)", b.Low)
	default:
		return fmt.Sprintf("(%d-%d]", b.Low, b.High)
	}
}

// WriteCSV writes s as metric,value rows with a header line.
func WriteCSV(w io.Writer, s *Stats) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"metric", "value"},
		{"width", strconv.Itoa(s.Width)},
		{"height", strconv.Itoa(s.Height)},
		{"threshold", strconv.Itoa(s.Threshold)},
		{"total_pixels", strconv.Itoa(s.TotalPixels)},
		{"bright_pixels", strconv.Itoa(s.BrightPixels)},
		{"dark_pixels", strconv.Itoa(s.DarkPixels)},
		{"bright_percentage", formatFloat(s.BrightPercentage)},
		{"dark_percentage", formatFloat(s.DarkPercentage)},
		{"mean", formatFloat(s.Mean)},
		{"median", strconv.Itoa(s.Median)},
		{"min", strconv.Itoa(s.Min)},
		{"max", strconv.Itoa(s.Max)},
		{"std_dev", formatFloat(s.StdDev)},
	}
	for _, band := range s.Bands {
		rows = append(rows,
			[]string{"band_" + band.Name + "_pixels", strconv.Itoa(band.Count)},
			[]string{"band_" + band.Name + "_percentage", formatFloat(band.Percentage)},
		)
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
