package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/ironsheep/png-tools-mcp/internal/brightness"
	"github.com/ironsheep/png-tools-mcp/internal/imaging"
	"github.com/ironsheep/png-tools-mcp/internal/logging"
	"github.com/ironsheep/png-tools-mcp/internal/luma"
	"github.com/ironsheep/png-tools-mcp/internal/source"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_luminance").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errInvalidArgs marks argument decoding failures so they are reported as
// invalid params rather than tool failures.
var errInvalidArgs = errors.New("invalid arguments")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.safeExecuteTool(ctx, params.Name, params.Arguments)
	if err != nil {
		logging.Debugf("tool %s failed: %v", params.Name, err)
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// safeExecuteTool runs executeTool and turns a panic into an error so a
// single bad call cannot take the server down.
func (s *Server) safeExecuteTool(ctx context.Context, name string, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.Printf("tool %s panicked: %v", name, r)
			result, err = nil, fmt.Errorf("tool %s panicked: %v", name, r)
		}
	}()
	return s.executeTool(ctx, name, args)
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the imaging, luma, brightness or source package
//  5. Evicts any file it wrote from the cache
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Transformations
	case "image_resize":
		return s.handleImageResize(args)
	case "image_luminance":
		return s.handleImageLuminance(args)
	case "image_luminance_compare":
		return s.handleImageLuminanceCompare(args)

	// Brightness Analysis
	case "image_brightness_stats":
		return s.handleImageBrightnessStats(args)
	case "image_brightness_export":
		return s.handleImageBrightnessExport(args)

	// Image Sources
	case "image_placeholder":
		return s.handleImagePlaceholder(ctx, args)
	case "image_fetch":
		return s.handleImageFetch(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments into v. Empty arguments leave v at its
// defaults.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

func requirePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	return nil
}

// saveRaster writes img to outputPath (or inline when empty) and evicts the
// written path from the cache.
func (s *Server) saveRaster(img image.Image, outputPath string) (*imaging.RasterResult, error) {
	result, err := imaging.NewRasterResult(img, outputPath)
	if err != nil {
		return nil, err
	}
	if outputPath != "" {
		s.cache.Evict(outputPath)
	}
	return result, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Transformation Handlers ===

type imageResizeArgs struct {
	Path       string  `json:"path"`
	OutputPath string  `json:"output_path"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Scale      float64 `json:"scale"`
	KeepAspect *bool   `json:"keep_aspect"`
	Mode       string  `json:"mode"`
	Filter     string  `json:"filter"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}

	mode, err := imaging.ParseResizeMode(a.Mode)
	if err != nil {
		return nil, err
	}
	keepAspect := true
	if a.KeepAspect != nil {
		keepAspect = *a.KeepAspect
	}

	return imaging.ResizeFile(s.cache, a.Path, a.OutputPath, imaging.ResizeOptions{
		Width:      a.Width,
		Height:     a.Height,
		Scale:      a.Scale,
		KeepAspect: keepAspect,
		Mode:       mode,
		Filter:     a.Filter,
	})
}

type imageLuminanceArgs struct {
	Path       string `json:"path"`
	Method     string `json:"method"`
	OutputPath string `json:"output_path"`
}

// LuminanceResult is the result of image_luminance.
type LuminanceResult struct {
	Method string `json:"method"`
	*imaging.RasterResult
}

func (s *Server) handleImageLuminance(args json.RawMessage) (interface{}, error) {
	var a imageLuminanceArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	if a.Method == "" {
		a.Method = string(luma.Weighted)
	}

	scheme, err := luma.ParseScheme(a.Method)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	gray, err := luma.ExtractLuminance(img, scheme)
	if err != nil {
		return nil, err
	}

	raster, err := s.saveRaster(gray, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &LuminanceResult{Method: scheme.String(), RasterResult: raster}, nil
}

type imageLuminanceCompareArgs struct {
	Path       string   `json:"path"`
	Methods    []string `json:"methods"`
	OutputPath string   `json:"output_path"`
}

// ComparisonResult is the result of image_luminance_compare. Panels lists
// the strip left to right, starting with "original".
type ComparisonResult struct {
	Panels []string `json:"panels"`
	*imaging.RasterResult
}

func (s *Server) handleImageLuminanceCompare(args json.RawMessage) (interface{}, error) {
	var a imageLuminanceCompareArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	if a.Methods == nil {
		a.Methods = []string{string(luma.Weighted), string(luma.Average)}
	}

	schemes := make([]luma.Scheme, len(a.Methods))
	for i, m := range a.Methods {
		scheme, err := luma.ParseScheme(m)
		if err != nil {
			return nil, err
		}
		schemes[i] = scheme
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	panels := []string{"original"}
	derived := make([]*image.Gray, len(schemes))
	for i, scheme := range schemes {
		gray, err := luma.ExtractLuminance(img, scheme)
		if err != nil {
			return nil, err
		}
		derived[i] = gray
		panels = append(panels, scheme.String())
	}

	strip, err := luma.ComposeComparison(img, derived)
	if err != nil {
		return nil, err
	}
	raster, err := s.saveRaster(strip, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &ComparisonResult{Panels: panels, RasterResult: raster}, nil
}

// === Brightness Analysis Handlers ===

type imageBrightnessStatsArgs struct {
	Path             string `json:"path"`
	Threshold        *int   `json:"threshold"`
	IncludeHistogram bool   `json:"include_histogram"`
}

func (s *Server) threshold(t *int) int {
	if t == nil {
		return s.cfg.Threshold
	}
	return *t
}

func (s *Server) handleImageBrightnessStats(args json.RawMessage) (interface{}, error) {
	var a imageBrightnessStatsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	stats, err := brightness.Analyze(img, s.threshold(a.Threshold))
	if err != nil {
		return nil, err
	}
	if !a.IncludeHistogram {
		trimmed := *stats
		trimmed.Histogram = nil
		trimmed.Cumulative = nil
		return &trimmed, nil
	}
	return stats, nil
}

type imageBrightnessExportArgs struct {
	Path       string `json:"path"`
	Threshold  *int   `json:"threshold"`
	OutputPath string `json:"output_path"`
	Format     string `json:"format"`
	Compress   bool   `json:"compress"`
}

func (s *Server) handleImageBrightnessExport(args json.RawMessage) (interface{}, error) {
	var a imageBrightnessExportArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	stats, err := brightness.Analyze(img, s.threshold(a.Threshold))
	if err != nil {
		return nil, err
	}

	output := a.OutputPath
	if output == "" {
		format, err := brightness.ResolveFormat("", a.Format)
		if err != nil {
			return nil, err
		}
		base := imaging.DefaultOutputPath(a.Path, "brightness_")
		output = strings.TrimSuffix(base, filepath.Ext(base)) + "." + format
	}

	return brightness.ExportFile(stats, output, brightness.ExportOptions{
		Format:   a.Format,
		Compress: a.Compress,
		Source:   a.Path,
	})
}

// === Image Source Handlers ===

type imagePlaceholderArgs struct {
	Kind       string `json:"kind"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	OutputPath string `json:"output_path"`
}

// SourcedResult is the result of the tools that produce a new image. Source
// names the provider that supplied it.
type SourcedResult struct {
	Source string `json:"source"`
	*imaging.RasterResult
}

func (s *Server) handleImagePlaceholder(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imagePlaceholderArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	img, err := source.PlaceholderProvider{Kind: a.Kind, Width: a.Width, Height: a.Height}.Provide(ctx)
	if err != nil {
		return nil, err
	}
	raster, err := s.saveRaster(img, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &SourcedResult{Source: "placeholder", RasterResult: raster}, nil
}

type imageFetchArgs struct {
	URL        string `json:"url"`
	OutputPath string `json:"output_path"`
	Fallback   *bool  `json:"fallback"`
}

func (s *Server) handleImageFetch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageFetchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	urls := s.cfg.FetchURLs
	if a.URL != "" {
		urls = []string{a.URL}
	}
	providers := []source.Provider{&source.HTTPProvider{Fetcher: s.fetcher, URLs: urls}}
	if a.Fallback == nil || *a.Fallback {
		providers = append(providers, source.PlaceholderProvider{Kind: source.KindShapes})
	}

	img, used, err := source.Chain(ctx, providers...)
	if err != nil {
		return nil, err
	}
	raster, err := s.saveRaster(img, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &SourcedResult{Source: used, RasterResult: raster}, nil
}
