package brightness

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatText = "txt"
)

// ExportOptions controls ExportFile.
type ExportOptions struct {
	// Format is "csv" or "txt". When empty it is taken from the path's
	// extension, falling back to csv.
	Format string

	// Compress gzips the output and appends ".gz" to the path if missing.
	Compress bool

	// Source names the analysed image in text reports.
	Source string

	// Now stamps text reports. Zero means time.Now().
	Now time.Time
}

// ExportResult describes a written export.
type ExportResult struct {
	OutputPath    string `json:"output_path"`
	Format        string `json:"format"`
	Compressed    bool   `json:"compressed"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// ResolveFormat picks the export format for path.
func ResolveFormat(path, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".gz")))
		switch ext {
		case ".txt", ".text":
			format = FormatText
		default:
			format = FormatCSV
		}
	}
	if format == "text" {
		format = FormatText
	}
	if format != FormatCSV && format != FormatText {
		return "", fmt.Errorf("unknown export format %q (want csv or txt)", format)
	}
	return format, nil
}

// Write renders s in the given format to w.
func Write(w io.Writer, s *Stats, format string, opts ExportOptions) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, s)
	case FormatText:
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		_, err := io.WriteString(w, s.Report(opts.Source, now))
		return err
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// ExportFile writes s to path, creating parent directories as needed.
func ExportFile(s *Stats, path string, opts ExportOptions) (*ExportResult, error) {
	if path == "" {
		return nil, fmt.Errorf("output path required")
	}
	format, err := ResolveFormat(path, opts.Format)
	if err != nil {
		return nil, err
	}
	if opts.Compress && !strings.HasSuffix(path, ".gz") {
		path += ".gz"
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	var w io.Writer = f
	var zw *gzip.Writer
	if opts.Compress {
		zw = gzip.NewWriter(f)
		zw.Name = strings.TrimSuffix(filepath.Base(path), ".gz")
		w = zw
	}

	if err := Write(w, s, format, opts); err != nil {
		return nil, err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("failed to finish compressed export: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close export file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat export file: %w", err)
	}

	return &ExportResult{
		OutputPath:    path,
		Format:        format,
		Compressed:    opts.Compress,
		FileSizeBytes: stat.Size(),
	}, nil
}
