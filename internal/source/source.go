package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/png-tools-mcp/internal/imaging"
	"github.com/ironsheep/png-tools-mcp/internal/logging"
)

// ErrNoSource is returned by Chain when every provider failed.
var ErrNoSource = errors.New("no image source available")

// Provider produces an input image.
type Provider interface {
	// Name identifies the provider in logs and results.
	Name() string

	// Provide returns a decoded image or an error.
	Provide(ctx context.Context) (image.Image, error)
}

// FileProvider decodes an image from a local file.
type FileProvider struct {
	Path string
}

// Name returns "file".
func (p FileProvider) Name() string { return "file" }

// Provide decodes the file at p.Path.
func (p FileProvider) Provide(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Path == "" {
		return nil, errors.New("file path is empty")
	}
	img, _, err := imaging.Decode(p.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Path, err)
	}
	return img, nil
}

// Chain asks each provider in turn and returns the first image produced,
// together with the name of the provider that produced it. Failures are
// logged and skipped. Cancellation of ctx stops the chain immediately.
func Chain(ctx context.Context, providers ...Provider) (image.Image, string, error) {
	var failures []string
	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		img, err := p.Provide(ctx)
		if err == nil {
			logging.Debugf("image source: %s", p.Name())
			return img, p.Name(), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}

		logging.Printf("image source %s unavailable: %v", p.Name(), err)
		failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))
	}

	if len(failures) == 0 {
		return nil, "", ErrNoSource
	}
	return nil, "", fmt.Errorf("%w (%s)", ErrNoSource, strings.Join(failures, "; "))
}
