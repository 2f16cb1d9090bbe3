// Package tile transforms the render IR into per-tile GPU work
// records. Scheduling runs four ordered phases — bin, sort, merge,
// classify — and publishes the result as an immutable FrameSnapshot
// over the scheduler's arenas.
package tile

import (
	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/ir"
)

// TileCoord addresses a tile in the frame grid.
type TileCoord = ir.TileCoord

// Classification describes how a draw covers a tile.
type Classification uint8

const (
	// ClassSolid marks a tile fully covered by its draw's bounds.
	ClassSolid Classification = iota

	// ClassEdge marks a partially covered tile. Until a path
	// rasterizer lands, backends render edge tiles as solid with
	// approximate coverage.
	ClassEdge
)

// String returns the classification name.
func (c Classification) String() string {
	switch c {
	case ClassSolid:
		return "solid"
	case ClassEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// TileWork is the per-tile record handed to backends.
//
// ClipIndex is zero when no clip was active at emission time;
// otherwise it is the snapshot clip-table index plus one. Binning does
// not intersect clip bounds with tile geometry; the index is a hint
// for backends with hardware clip support.
type TileWork struct {
	Coord          TileCoord
	Classification Classification

	// SolidColor is the fill color for solid tiles.
	SolidColor swen.Color

	// SegmentStart and SegmentCount delimit this tile's slice of the
	// segment arena. Segment emission is reserved for the path
	// rasterizer; the count is zero today.
	SegmentStart uint32
	SegmentCount uint16

	ClipIndex  uint16
	PaintIndex uint16

	// ZOrder is the draw's position in instruction order; the merge
	// phase relies on ascending z within one coordinate.
	ZOrder uint16
}

// Segment is a path segment in tile-local 8.8 fixed point.
type Segment struct {
	X0, Y0, X1, Y1 int16

	// Winding is +1 or -1.
	Winding int8

	Pad [3]int8
}

// ToFixed converts a pixel offset within a tile to 8.8 fixed point.
func ToFixed(v float32) int16 {
	return int16(v * 256)
}

// FromFixed converts an 8.8 fixed point value back to pixels.
func FromFixed(v int16) float32 {
	return float32(v) / 256
}

// DirtyRegion records a changed area for incremental backends.
// Dirty tracking is a hint, not a correctness invariant.
type DirtyRegion struct {
	Bounds     swen.Bounds
	SourceNode swen.NodeID
	Frame      uint64
}

// FrameStats summarizes one scheduled frame.
type FrameStats struct {
	// TotalTiles is the tile count after merging.
	TotalTiles int

	// SolidTiles and EdgeTiles are per-classification counts.
	SolidTiles int
	EdgeTiles  int

	// MergedTiles counts records dropped by opaque-solid occlusion.
	MergedTiles int

	// SegmentCount is the segment arena total.
	SegmentCount int

	// PaintCount and ClipCount are the deduplicated table sizes.
	PaintCount int
	ClipCount  int

	// DirtyCount is the retained dirty-region count.
	DirtyCount int

	// CacheGroups counts cache-group brackets seen during binning.
	CacheGroups int

	// CacheHits counts cache groups whose content hash was already in
	// the attached group cache.
	CacheHits int
}
