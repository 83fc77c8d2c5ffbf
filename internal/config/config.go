// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLogLevel         = "PNG_TOOLS_LOG_LEVEL"
	EnvLegacyLogLevel   = "IMAGE_MCP_LOG_LEVEL"
	EnvLogFile          = "PNG_TOOLS_LOG_FILE"
	EnvFetchURLs        = "PNG_TOOLS_FETCH_URLS"
	EnvFetchTimeout     = "PNG_TOOLS_FETCH_TIMEOUT"
	EnvUserAgent        = "PNG_TOOLS_USER_AGENT"
	EnvMaxDownloadBytes = "PNG_TOOLS_MAX_DOWNLOAD_BYTES"
	EnvThreshold        = "PNG_TOOLS_THRESHOLD"
)

// Defaults.
const (
	DefaultFetchURL         = "https://picsum.photos/400/300"
	DefaultFetchTimeout     = 10 * time.Second
	DefaultUserAgent        = "Mozilla/5.0 (X11; Linux x86_64) png-tools/0.1"
	DefaultMaxDownloadBytes = 20 << 20
	DefaultThreshold        = 200
)

// Config holds the settings shared by the MCP server and the CLI.
type Config struct {
	// Debug enables debug logging.
	Debug bool

	// LogFile, when set, sends logs to a rotating file instead of stderr.
	LogFile string

	// FetchURLs are tried in order when a sample image is downloaded.
	FetchURLs []string

	// FetchTimeout bounds each download attempt.
	FetchTimeout time.Duration

	// UserAgent is sent with every download request.
	UserAgent string

	// MaxDownloadBytes caps the size of a downloaded image.
	MaxDownloadBytes int64

	// Threshold is the default brightness threshold.
	Threshold int
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		FetchURLs:        []string{DefaultFetchURL},
		FetchTimeout:     DefaultFetchTimeout,
		UserAgent:        DefaultUserAgent,
		MaxDownloadBytes: DefaultMaxDownloadBytes,
		Threshold:        DefaultThreshold,
	}
}

// Load reads the given .env files (".env" when none are named), then builds a
// Config from the environment. Missing .env files are ignored; variables
// already present in the environment take precedence over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config using lookup to read variables.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	level, ok := lookup(EnvLogLevel)
	if !ok {
		level, _ = lookup(EnvLegacyLogLevel)
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
	case "debug":
		cfg.Debug = true
	default:
		return nil, fmt.Errorf("%s: unknown log level %q (want info or debug)", EnvLogLevel, level)
	}

	if v, ok := lookup(EnvLogFile); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvFetchURLs); ok {
		var urls []string
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		cfg.FetchURLs = urls
	}

	if v, ok := lookup(EnvFetchTimeout); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvFetchTimeout, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%s: must be positive, got %s", EnvFetchTimeout, d)
		}
		cfg.FetchTimeout = d
	}

	if v, ok := lookup(EnvUserAgent); ok && strings.TrimSpace(v) != "" {
		cfg.UserAgent = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvMaxDownloadBytes); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvMaxDownloadBytes, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%s: must be positive, got %d", EnvMaxDownloadBytes, n)
		}
		cfg.MaxDownloadBytes = n
	}

	if v, ok := lookup(EnvThreshold); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvThreshold, err)
		}
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("%s: must be in 0-255, got %d", EnvThreshold, n)
		}
		cfg.Threshold = n
	}

	return cfg, nil
}
