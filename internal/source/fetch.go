package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ironsheep/png-tools-mcp/internal/imaging"
	"github.com/ironsheep/png-tools-mcp/internal/logging"
)

// ErrTooLarge is returned when a response body exceeds the download limit.
var ErrTooLarge = errors.New("download exceeds size limit")

// FetcherOptions configures NewFetcher. Zero values select the defaults.
type FetcherOptions struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64

	// Interval is the minimum spacing between requests.
	Interval time.Duration

	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// Default fetcher settings.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 20 << 20
	DefaultInterval = 500 * time.Millisecond
)

// Fetcher downloads raw bytes over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	limiter   *rate.Limiter
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &Fetcher{
		client:    client,
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBytes,
		limiter:   rate.NewLimiter(rate.Every(opts.Interval), 1),
	}
}

// Fetch GETs url and returns the response body.
//
// Any status other than 200 is an error, as is a body larger than the
// configured limit.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, f.maxBytes)
	}

	logging.Debugf("downloaded %d bytes from %s", len(data), url)
	return data, nil
}

// FetchFirst tries urls in order and returns the first successful body and
// the URL it came from.
func (f *Fetcher) FetchFirst(ctx context.Context, urls []string) ([]byte, string, error) {
	if len(urls) == 0 {
		return nil, "", errors.New("no download URLs configured")
	}

	var lastErr error
	for _, u := range urls {
		data, err := f.Fetch(ctx, u)
		if err == nil {
			return data, u, nil
		}
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		logging.Debugf("fetch %s: %v", u, err)
		lastErr = err
	}
	return nil, "", lastErr
}

// HTTPProvider downloads and decodes an image.
type HTTPProvider struct {
	Fetcher *Fetcher
	URLs    []string
}

// Name returns "download".
func (p *HTTPProvider) Name() string { return "download" }

// Provide fetches the first reachable URL and decodes the body.
func (p *HTTPProvider) Provide(ctx context.Context) (image.Image, error) {
	if p.Fetcher == nil {
		return nil, errors.New("no fetcher configured")
	}
	data, url, err := p.Fetcher.FetchFirst(ctx, p.URLs)
	if err != nil {
		return nil, err
	}
	img, _, err := imaging.DecodeReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return img, nil
}
