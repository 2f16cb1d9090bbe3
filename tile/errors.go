package tile

import "errors"

// Package errors for tile scheduling. Overflow is fatal for the frame;
// backends may implement chunked flush (submit the current snapshot,
// reset the scheduler, continue binning the remaining IR).
var (
	// ErrTileBufferOverflow is returned when a frame bins more than
	// the tile-work capacity.
	ErrTileBufferOverflow = errors.New("tile: tile buffer overflow")

	// ErrPaintTableOverflow is returned when a frame uses more unique
	// paints than the paint table holds.
	ErrPaintTableOverflow = errors.New("tile: paint table overflow")

	// ErrClipTableOverflow is returned when a frame opens more unique
	// clips than the clip table holds.
	ErrClipTableOverflow = errors.New("tile: clip table overflow")

	// ErrSegmentOverflow is returned when the segment arena fills.
	ErrSegmentOverflow = errors.New("tile: segment buffer overflow")
)
