// Package luma extracts single-channel luminance rasters from colour images
// and composes side-by-side comparison rasters.
//
// # Weighting Schemes
//
// Two schemes are supported:
//   - weighted: ITU-R BT.601 perceptual weights, 0.299*R + 0.587*G + 0.114*B
//   - average:  the plain mean of the three channels, (R + G + B) / 3
//
// Every computed value is rounded to the nearest integer and clamped to
// [0, 255] before it is stored.
//
// # Input Normalisation
//
// Any image.Image is accepted. Images with an alpha channel are reduced to RGB
// by dropping alpha from the non-premultiplied colour; single-channel images
// have their value duplicated into all three channels.
//
// # Thread Safety
//
// ExtractLuminance and ComposeComparison are pure functions. They never write
// to their inputs and hold no package state, so they may be called
// concurrently from any number of goroutines.
//
// # Errors
//
// Precondition failures wrap one of two sentinel errors and are reported
// before any pixel is processed:
//   - ErrInvalidArgument: unknown scheme or an empty image
//   - ErrDimensionMismatch: a derived raster does not match the original size
package luma
