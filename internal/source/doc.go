// Package source supplies input images for the luminance workflow and the
// MCP tools.
//
// A Provider produces one image. Three kinds exist:
//
//   - FileProvider decodes a file on disk.
//   - HTTPProvider downloads an image through a Fetcher.
//   - PlaceholderProvider draws a synthetic image locally and never fails.
//
// Chain tries providers in order and reports which one succeeded, which is
// how the "local file, else download, else placeholder" fallback is built:
//
//	img, used, err := source.Chain(ctx,
//	    source.FileProvider{Path: "example.png"},
//	    &source.HTTPProvider{Fetcher: f, URLs: cfg.FetchURLs},
//	    source.PlaceholderProvider{Kind: source.KindShapes},
//	)
package source
