// Package ir defines the render intermediate representation: an
// ordered, backend-agnostic instruction stream lowered from the scene
// tree. Instructions carry world coordinates; the IRBuffer borrows no
// scene-tree memory after lowering, so the stream and any snapshot
// built from it are self-contained.
package ir

// Op identifies an instruction variant.
type Op uint8

const (
	// OpNop does nothing; the lowerer emits it for node variants it does
	// not recognize.
	OpNop Op = iota

	// OpDrawRect fills an axis-aligned rectangle.
	OpDrawRect

	// OpDrawText draws a text run.
	OpDrawText

	// OpPushState saves the transform/clip state.
	OpPushState

	// OpPopState restores the matching saved state.
	OpPopState

	// OpSetTransform replaces the current transform matrix.
	OpSetTransform

	// OpBeginClip opens a clip region.
	OpBeginClip

	// OpEndClip closes the innermost clip region.
	OpEndClip

	// OpBeginCacheGroup opens a cacheable group of instructions.
	OpBeginCacheGroup

	// OpEndCacheGroup closes the innermost cache group.
	OpEndCacheGroup

	// OpTileHint advises the scheduler of the tile range the following
	// instructions touch.
	OpTileHint

	// OpTileBoundary marks a tile-aligned split point in the stream.
	OpTileBoundary
)

// String returns a human-readable name for the op.
func (o Op) String() string {
	switch o {
	case OpNop:
		return "nop"
	case OpDrawRect:
		return "draw_rect"
	case OpDrawText:
		return "draw_text"
	case OpPushState:
		return "push_state"
	case OpPopState:
		return "pop_state"
	case OpSetTransform:
		return "set_transform"
	case OpBeginClip:
		return "begin_clip"
	case OpEndClip:
		return "end_clip"
	case OpBeginCacheGroup:
		return "begin_cache_group"
	case OpEndCacheGroup:
		return "end_cache_group"
	case OpTileHint:
		return "tile_hint"
	case OpTileBoundary:
		return "tile_boundary"
	default:
		return "unknown"
	}
}

// IsDraw reports whether the op emits geometry.
func (o Op) IsDraw() bool {
	return o == OpDrawRect || o == OpDrawText
}
