package render

import "errors"

// Domain errors for drawing operations.
var (
	// ErrLengthMismatch indicates x and y series of different lengths.
	ErrLengthMismatch = errors.New("render: x and y must be the same length")

	// ErrEmptyData indicates a draw call with no samples.
	ErrEmptyData = errors.New("render: empty data")

	// ErrRaggedGrid indicates an image grid with uneven row lengths.
	ErrRaggedGrid = errors.New("render: grid rows have unequal lengths")

	// ErrNoSuchTrace indicates a trace index outside the frame's traces.
	ErrNoSuchTrace = errors.New("render: no such trace")

	// ErrUnknownColormap indicates an unregistered colormap name.
	ErrUnknownColormap = errors.New("render: unknown colormap")
)
