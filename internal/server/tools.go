package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

var outputPathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Optional path for the PNG result. When omitted the image is returned inline as base64-encoded PNG",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, pixel mode and file size. The image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Transformations
		{
			Name:        "image_resize",
			Description: "Resize an image and save it as PNG. Give either a scale factor, or a width and/or height. With only one side given the other follows the aspect ratio unless keep_aspect is false.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Output path. Default: resized_<name> next to the input",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height in pixels",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor applied to both sides (e.g., 0.5). Takes precedence over width and height",
					},
					"keep_aspect": map[string]interface{}{
						"type":        "boolean",
						"description": "Derive the missing side from the aspect ratio. Default true",
						"default":     true,
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"description": "How a width x height box is honoured when both are given",
						"enum":        []string{"stretch", "fit", "fill"},
						"default":     "stretch",
					},
					"filter": map[string]interface{}{
						"type":        "string",
						"description": "Resampling filter",
						"enum":        []string{"lanczos", "catmullrom", "bicubic", "linear", "bilinear", "nearest", "box"},
						"default":     "lanczos",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_luminance",
			Description: "Extract a single-channel luminance (greyscale) image. 'weighted' uses BT.601 weights 0.299R + 0.587G + 0.114B; 'average' uses (R+G+B)/3.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"method": map[string]interface{}{
						"type":        "string",
						"description": "Weighting scheme",
						"enum":        []string{"weighted", "average"},
						"default":     "weighted",
					},
					"output_path": outputPathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_luminance_compare",
			Description: "Build a side-by-side strip: the original image followed by one luminance panel per method, each the size of the original.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"methods": map[string]interface{}{
						"type":        "array",
						"description": "Weighting schemes, one panel each. Default [\"weighted\", \"average\"]",
						"items": map[string]interface{}{
							"type": "string",
							"enum": []string{"weighted", "average"},
						},
					},
					"output_path": outputPathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Brightness Analysis
		{
			Name:        "image_brightness_stats",
			Description: "Analyse brightness: counts of pixels above and at-or-below a threshold, mean, min, max, standard deviation, median and five brightness bands.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Brightness threshold 0-255. Pixels above it count as bright. Default 200",
						"minimum":     0,
						"maximum":     255,
					},
					"include_histogram": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the 256-bin histogram and cumulative counts",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_brightness_export",
			Description: "Analyse brightness and write the results as CSV or a text report, optionally gzip-compressed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Brightness threshold 0-255. Default 200",
						"minimum":     0,
						"maximum":     255,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Export path. Default: brightness_<name>.<format> next to the input",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"description": "Export format. Default taken from output_path, else csv",
						"enum":        []string{"csv", "txt"},
					},
					"compress": map[string]interface{}{
						"type":        "boolean",
						"description": "Gzip the export and append .gz",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},

		// Image Sources
		{
			Name:        "image_placeholder",
			Description: "Draw a synthetic test image. 'shapes' is a board of coloured blocks with labels (400x300); 'test' is a test card with frame, diagonals and ellipse (640x480).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"kind": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"shapes", "test"},
						"default": "shapes",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Width in pixels. Default depends on kind",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Height in pixels. Default depends on kind",
					},
					"output_path": outputPathProperty,
				},
			},
		},
		{
			Name:        "image_fetch",
			Description: "Download an image over HTTP. When the download fails and fallback is enabled a 'shapes' placeholder is returned instead. The result names the source used.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": map[string]interface{}{
						"type":        "string",
						"description": "Image URL. Default: the configured sample URLs",
					},
					"output_path": outputPathProperty,
					"fallback": map[string]interface{}{
						"type":        "boolean",
						"description": "Fall back to a placeholder when the download fails. Default true",
						"default":     true,
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
