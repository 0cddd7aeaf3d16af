// Package raster turns outlines into 8-bit coverage bitmaps and applies
// the subtitle bitmap effects.
//
// # Algorithm Overview
//
// Fill scan-converts an outline with golang.org/x/image/vector. Borders
// are built by Stroke, which expands every closed contour into a ring
// made of two parallel offset contours joined with round joins: the
// forward contour runs on the outside, the backward contour is reversed,
// so the non-zero fill of both covers exactly the ring. Unioned with the
// glyph fill this yields the bordered shape.
//
// Blur approximates a Gaussian with three successive box blurs whose
// widths follow from the requested sigma; BoxBlur3x3 is the repeated
// 3x3 box used for edge softening. Both are deterministic integer code,
// so equal inputs give byte-identical bitmaps.
package raster
