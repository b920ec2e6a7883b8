// Package render implements the drawing surfaces plot and image
// windows delegate to: a braille dot-matrix canvas, an XY plot frame
// with traces, reference lines and annotations, and a false-color
// image frame with named colormaps and a contour mode.
//
// Frames render to styled terminal strings and expose inverse
// transforms so windows can translate cursor positions back to data
// coordinates.
package render
