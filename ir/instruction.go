package ir

import "github.com/swen-ui/swen"

// Instruction is one element of the render stream. It is a tagged
// union: Op selects the variant and the variant's fields; unrelated
// fields are zero. Instructions are plain values so the stream can be
// handed to a backend without pointer chasing.
type Instruction struct {
	Op Op

	// Node is the originating scene node for draws and dirty tracking.
	Node swen.NodeID

	// Bounds is the world-space AABB for draws, clips, and cache
	// groups.
	Bounds swen.Bounds

	// Paint keys the fill style of draw instructions.
	Paint PaintKey

	// Clip carries the region key of begin_clip.
	Clip ClipKey

	// ClipID pairs begin_clip with its end_clip.
	ClipID uint32

	// GroupID pairs begin_cache_group with its end_cache_group.
	GroupID uint32

	// ContentHash fingerprints a cache group's content.
	ContentHash uint64

	// Matrix is the transform of set_transform.
	Matrix swen.Matrix

	// Text references the body of draw_text.
	Text TextRef

	// TextSize is the em size of draw_text in pixels.
	TextSize uint16

	// CornerRadius rounds draw_rect corners; zero is square.
	CornerRadius uint16

	// StartTile and EndTile delimit a tile_hint range; StartTile alone
	// locates a tile_boundary.
	StartTile TileCoord
	EndTile   TileCoord
}
