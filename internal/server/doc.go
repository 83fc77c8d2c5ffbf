// Package server implements the MCP (Model Context Protocol) server for the
// PNG tools.
//
// This package provides a JSON-RPC 2.0 server that exposes resizing,
// luminance extraction and brightness analysis through the MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Transformations:
//   - image_resize: Scale or resize to a box, written as PNG
//   - image_luminance: Extract a weighted or average luminance image
//   - image_luminance_compare: Original and luminance panels side by side
//
// Brightness Analysis:
//   - image_brightness_stats: Threshold counts, statistics and bands
//   - image_brightness_export: Write the statistics as CSV or text
//
// Image Sources:
//   - image_placeholder: Draw a synthetic test image
//   - image_fetch: Download an image, optionally falling back to a placeholder
//
// Tools that produce an image write it to output_path when one is given and
// otherwise return it inline as base64-encoded PNG.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images keyed by path.
// Any file a tool writes is evicted from the cache, so a later call that
// reads the same path sees the new contents.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses with:
//   - code: -32700 (unparseable request), -32601 (unknown method),
//     -32602 (malformed tool arguments) or -32000 (tool execution failure)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg)
//	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server
