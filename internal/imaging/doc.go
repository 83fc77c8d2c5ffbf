// Package imaging provides file-level image operations for the PNG tools:
// decoding with a path-keyed cache, PNG output, and resizing.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Resizing
//
// Resize and ResizeFile delegate resampling to github.com/disintegration/imaging.
// The target size comes from a scale factor, an explicit box, or a single side
// with optional aspect preservation (see ResizeOptions). An explicit box can be
// stretched, fitted, or filled; fill mode uses github.com/muesli/smartcrop to
// choose the crop region.
//
// # Output
//
// Every written image is a PNG encoded at the best compression level. Tools
// either write to a path (RasterResult.OutputPath) or return the PNG inline as
// base64 (RasterResult.ImageBase64).
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and never modify their inputs.
package imaging
