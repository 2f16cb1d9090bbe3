package tile

import (
	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/ir"
)

// FrameSnapshot is the immutable per-frame view handed to a backend.
// Every slice borrows the scheduler's (or IR buffer's) arenas and
// stays valid until the next Reset or Schedule call; a backend must
// finish its submission, or copy, before the next frame begins.
type FrameSnapshot struct {
	FrameNumber uint64

	ViewportWidth  int32
	ViewportHeight int32

	// TilesX and TilesY are the grid dimensions covering the viewport.
	TilesX int32
	TilesY int32

	// Instructions is the frame's IR stream.
	Instructions []ir.Instruction

	// InternTable resolves interned text refs in Instructions.
	InternTable []string

	TileWork     []TileWork
	Segments     []Segment
	PaintTable   []ir.PaintKey
	ClipTable    []ir.ClipKey
	DirtyRegions []DirtyRegion

	Stats FrameStats
}

// BuildSnapshot publishes the scheduled frame. The instruction stream
// and intern table come from the IR buffer that was scheduled.
func (s *Scheduler) BuildSnapshot(instrs []ir.Instruction, intern []string) FrameSnapshot {
	return FrameSnapshot{
		FrameNumber:    s.frame,
		ViewportWidth:  s.viewportW,
		ViewportHeight: s.viewportH,
		TilesX:         tilesFor(s.viewportW),
		TilesY:         tilesFor(s.viewportH),
		Instructions:   instrs,
		InternTable:    intern,
		TileWork:       s.work.Items(),
		Segments:       s.segments.Items(),
		PaintTable:     s.paints.items(),
		ClipTable:      s.clips.items(),
		DirtyRegions:   s.dirty,
		Stats:          s.stats,
	}
}

// tilesFor returns ceil(pixels / TileSize).
func tilesFor(pixels int32) int32 {
	if pixels <= 0 {
		return 0
	}
	return (pixels + swen.TileSize - 1) / swen.TileSize
}
