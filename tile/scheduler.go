package tile

import (
	"sort"

	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/cache"
	"github.com/swen-ui/swen/internal/arena"
	"github.com/swen-ui/swen/ir"
)

// Scheduling limits. A frame that exceeds them fails with the
// corresponding typed error.
const (
	// MaxTilesPerFrame caps the tile-work arena.
	MaxTilesPerFrame = 16384

	// SegmentsPerTile sizes the segment arena relative to the tile cap.
	SegmentsPerTile = 16

	// MaxDirtyRegions caps dirty tracking; additional regions are
	// dropped with a warning.
	MaxDirtyRegions = 256
)

// TileRange locates a run of tile-work records inside one frame.
// The group cache stores ranges keyed by cache-group content hash.
type TileRange struct {
	Start, Count int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithMaxTiles overrides the tile-work capacity.
func WithMaxTiles(n int) Option {
	return func(s *Scheduler) {
		s.maxTiles = n
	}
}

// WithGroupCache attaches a cache that remembers scheduled tile
// ranges per cache-group content hash. Backends with tile caching use
// the hit statistics to skip unchanged groups; correctness never
// depends on the cache.
func WithGroupCache(c *cache.Cache[uint64, TileRange]) Option {
	return func(s *Scheduler) {
		s.groups = c
	}
}

// Scheduler owns the per-frame tile arenas and runs the four
// scheduling phases. A Scheduler serves one pipeline instance; it is
// not safe for concurrent use.
type Scheduler struct {
	maxTiles int

	work     *arena.Slice[TileWork]
	segments *arena.Slice[Segment]
	paints   *paintTable
	clips    *clipTable
	dirty    []DirtyRegion

	groups *cache.Cache[uint64, TileRange]

	frame     uint64
	viewportW int32
	viewportH int32

	stats FrameStats
}

// NewScheduler creates a scheduler for the given viewport.
func NewScheduler(viewportW, viewportH int32, opts ...Option) *Scheduler {
	s := &Scheduler{
		maxTiles:  MaxTilesPerFrame,
		viewportW: viewportW,
		viewportH: viewportH,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.work = arena.New[TileWork](s.maxTiles)
	s.segments = arena.New[Segment](s.maxTiles * SegmentsPerTile)
	s.paints = newPaintTable()
	s.clips = newClipTable()
	s.dirty = make([]DirtyRegion, 0, MaxDirtyRegions)
	return s
}

// Resize updates the viewport. The next Schedule reflects the new
// tile grid.
func (s *Scheduler) Resize(w, h int32) {
	s.viewportW = w
	s.viewportH = h
}

// Viewport returns the current viewport in pixels.
func (s *Scheduler) Viewport() (int32, int32) {
	return s.viewportW, s.viewportH
}

// Reset clears all per-frame arenas and statistics. Any outstanding
// FrameSnapshot becomes invalid.
func (s *Scheduler) Reset() {
	s.work.Reset()
	s.segments.Reset()
	s.paints.reset()
	s.clips.reset()
	s.dirty = s.dirty[:0]
	s.stats = FrameStats{}
}

// Stats returns the statistics of the last scheduled frame.
func (s *Scheduler) Stats() FrameStats {
	return s.stats
}

// MarkDirty records a changed region for incremental backends. The
// region list is bounded; overflow drops the region, because dirty
// tracking is an optimization hint rather than a correctness
// invariant.
func (s *Scheduler) MarkDirty(bounds swen.Bounds, source swen.NodeID, frame uint64) {
	if len(s.dirty) >= MaxDirtyRegions {
		swen.Logger().Warn("tile: dirty region dropped",
			"node", uint64(source), "frame", frame)
		return
	}
	s.dirty = append(s.dirty, DirtyRegion{Bounds: bounds, SourceNode: source, Frame: frame})
	s.stats.DirtyCount = len(s.dirty)
}

// Schedule transforms an instruction stream into tile work:
// bin, then sort, then merge, then classify. The previous frame's
// arenas are reset first; dirty regions marked for this frame or a
// later one are kept for the snapshot.
func (s *Scheduler) Schedule(instrs []ir.Instruction, frame uint64) error {
	kept := s.dirty[:0]
	for _, d := range s.dirty {
		if d.Frame >= frame {
			kept = append(kept, d)
		}
	}
	s.Reset()
	s.dirty = kept
	s.frame = frame

	if err := s.bin(instrs); err != nil {
		return err
	}
	s.sortWork()
	s.merge()
	s.classify()

	swen.Logger().Debug("tile: scheduled frame",
		"frame", frame,
		"tiles", s.stats.TotalTiles,
		"paints", s.stats.PaintCount,
		"merged", s.stats.MergedTiles)
	return nil
}

// bin walks the stream and emits a TileWork record for every tile a
// draw's bounds touch. State and transform instructions are ignored;
// clip brackets only update the clip-index hint, and cache-group
// brackets feed the group cache.
func (s *Scheduler) bin(instrs []ir.Instruction) error {
	var (
		zNext     uint16
		clipHints []uint16
		groupOpen []openGroup
	)

	for _, in := range instrs {
		switch in.Op {
		case ir.OpDrawRect, ir.OpDrawText:
			var hint uint16
			if n := len(clipHints); n > 0 {
				hint = clipHints[n-1]
			}
			if err := s.binDraw(in, zNext, hint); err != nil {
				return err
			}
			zNext++

		case ir.OpBeginClip:
			idx, err := s.clips.intern(in.Clip)
			if err != nil {
				return err
			}
			// Zero means "no clip"; stored hints are index plus one.
			clipHints = append(clipHints, idx+1)

		case ir.OpEndClip:
			if n := len(clipHints); n > 0 {
				clipHints = clipHints[:n-1]
			}

		case ir.OpBeginCacheGroup:
			s.stats.CacheGroups++
			groupOpen = append(groupOpen, openGroup{
				hash:  in.ContentHash,
				start: s.work.Len(),
			})

		case ir.OpEndCacheGroup:
			if n := len(groupOpen); n > 0 {
				g := groupOpen[n-1]
				groupOpen = groupOpen[:n-1]
				s.closeGroup(g)
			}

		default:
			// push/pop state, set_transform, tile hints, nop: no
			// binning contribution.
		}
	}
	return nil
}

type openGroup struct {
	hash  uint64
	start int
}

// closeGroup records the group's tile range in the attached cache.
func (s *Scheduler) closeGroup(g openGroup) {
	if s.groups == nil {
		return
	}
	if _, ok := s.groups.Get(g.hash); ok {
		s.stats.CacheHits++
		return
	}
	s.groups.Put(g.hash, TileRange{Start: g.start, Count: s.work.Len() - g.start})
}

// binDraw emits TileWork for every tile in the draw's inclusive tile
// rectangle. Draws entirely left of or above the origin intersect no
// tile and are skipped.
func (s *Scheduler) binDraw(in ir.Instruction, z uint16, clipHint uint16) error {
	b := in.Bounds
	if b.IsEmpty() || b.MaxX() <= 0 || b.MaxY() <= 0 {
		return nil
	}

	paintIdx, err := s.paints.intern(in.Paint)
	if err != nil {
		return err
	}

	start := ir.TileFromPixel(b.X, b.Y)
	end := ir.TileFromPixel(b.MaxX()-1, b.MaxY()-1)

	for ty := start.Y; ty <= end.Y; ty++ {
		for tx := start.X; tx <= end.X; tx++ {
			coord := TileCoord{X: tx, Y: ty}

			// Text never fills a tile completely; only rects can be
			// solid occluders.
			class := ClassEdge
			if in.Op == ir.OpDrawRect && b.ContainsTile(coord.PixelX(), coord.PixelY()) {
				class = ClassSolid
			}

			_, err := s.work.Push(TileWork{
				Coord:          coord,
				Classification: class,
				SolidColor:     in.Paint.Color,
				SegmentStart:   uint32(s.segments.Len()),
				SegmentCount:   0,
				ClipIndex:      clipHint,
				PaintIndex:     paintIdx,
				ZOrder:         z,
			})
			if err != nil {
				return ErrTileBufferOverflow
			}
		}
	}
	return nil
}

// sortWork stable-sorts tile work by (packed coordinate, z order),
// yielding cache-coherent GPU access order while preserving paint
// order within a tile.
func (s *Scheduler) sortWork() {
	items := s.work.Items()
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := items[i].Coord.Pack(), items[j].Coord.Pack()
		if pi != pj {
			return pi < pj
		}
		return items[i].ZOrder < items[j].ZOrder
	})
}

// merge collapses consecutive records at the same coordinate when both
// are solid and the later one is opaque: the later fill occludes the
// earlier completely, so the earlier record is dropped.
func (s *Scheduler) merge() {
	items := s.work.Items()
	if len(items) < 2 {
		return
	}

	out := items[:0]
	for _, w := range items {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.Coord == w.Coord &&
				last.Classification == ClassSolid &&
				w.Classification == ClassSolid &&
				w.SolidColor.A == 255 {
				*last = w
				s.stats.MergedTiles++
				continue
			}
		}
		out = append(out, w)
	}
	s.work.Truncate(len(out))
}

// classify computes per-classification counts and snapshots the
// totals.
func (s *Scheduler) classify() {
	for _, w := range s.work.Items() {
		switch w.Classification {
		case ClassSolid:
			s.stats.SolidTiles++
		case ClassEdge:
			s.stats.EdgeTiles++
		}
	}
	s.stats.TotalTiles = s.work.Len()
	s.stats.SegmentCount = s.segments.Len()
	s.stats.PaintCount = len(s.paints.items())
	s.stats.ClipCount = len(s.clips.items())
	s.stats.DirtyCount = len(s.dirty)
}

// PushSegment appends a tile-local segment. The emission path is
// reserved for the path rasterizer; it exists so edge-tile producers
// and tests can exercise the arena bound.
func (s *Scheduler) PushSegment(seg Segment) (uint32, error) {
	idx, err := s.segments.Push(seg)
	if err != nil {
		return 0, ErrSegmentOverflow
	}
	return uint32(idx), nil
}
