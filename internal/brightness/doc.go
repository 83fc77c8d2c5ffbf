// Package brightness computes greyscale brightness statistics for an image
// and exports them as a text report or CSV.
//
// The image is first reduced to BT.601 luminance (see package luma). All
// statistics are derived from the 256-bin luminance histogram, so analysing
// an image is a single pass over its pixels.
//
// Pixels strictly above the threshold count as bright; the rest count as
// dark. Five bands partition the 0-255 range:
//
//	very dark    [0, 64]
//	dim          (64, 128]
//	medium       (128, m]
//	bright       (m, 220]
//	very bright  (220, 255]
//
// where m is the threshold clamped to [128, 220].
package brightness
