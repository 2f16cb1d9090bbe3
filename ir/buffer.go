package ir

import (
	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/internal/arena"
)

// DefaultCapacity is the default instruction capacity of a Buffer.
const DefaultCapacity = 1 << 16

// MaxClipDepth bounds clip nesting.
const MaxClipDepth = 32

// Option configures a Buffer.
type Option func(*Buffer)

// WithCapacity sets the instruction capacity.
func WithCapacity(n int) Option {
	return func(b *Buffer) {
		b.capacity = n
	}
}

// Buffer accumulates one frame's instruction stream.
//
// The buffer owns a private state stack (transform save depth and clip
// stack); only the lowerer and its callers mutate it. Pass the buffer
// explicitly through the pipeline rather than sharing a global so
// lifetimes and thread safety stay local.
type Buffer struct {
	instrs   *arena.Slice[Instruction]
	capacity int

	frame uint64

	stateDepth int
	clipStack  [MaxClipDepth]uint32
	clipDepth  int
	nextClipID uint32

	intern []string
}

// NewBuffer creates an empty instruction buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(b)
	}
	b.instrs = arena.New[Instruction](b.capacity)
	return b
}

// NextFrame advances the frame number and resets the stream, the
// state stack, and the intern table. Call it once per lowering.
func (b *Buffer) NextFrame() {
	b.frame++
	b.instrs.Reset()
	b.stateDepth = 0
	b.clipDepth = 0
	b.nextClipID = 0
	b.intern = b.intern[:0]
}

// Frame returns the current frame number; zero before any NextFrame.
func (b *Buffer) Frame() uint64 {
	return b.frame
}

// Instructions returns the stream as a view into the buffer's arena,
// valid until the next NextFrame.
func (b *Buffer) Instructions() []Instruction {
	return b.instrs.Items()
}

// Len returns the instruction count.
func (b *Buffer) Len() int {
	return b.instrs.Len()
}

// StateDepth returns the current push_state nesting.
// Zero after a balanced lowering.
func (b *Buffer) StateDepth() int {
	return b.stateDepth
}

// ClipDepth returns the current clip nesting.
// Zero after a balanced lowering.
func (b *Buffer) ClipDepth() int {
	return b.clipDepth
}

// InternTable returns the interned text bodies of this frame.
func (b *Buffer) InternTable() []string {
	return b.intern
}

// InternText builds a TextRef for a body, inlining short bodies and
// interning the rest.
func (b *Buffer) InternText(body string) TextRef {
	if len(body) <= InlineTextMax {
		return InlineText(body)
	}
	idx := uint32(len(b.intern))
	b.intern = append(b.intern, body)
	return InternedText(idx)
}

func (b *Buffer) push(in Instruction) error {
	if _, err := b.instrs.Push(in); err != nil {
		return ErrBufferOverflow
	}
	return nil
}

// DrawRect appends a draw_rect instruction.
func (b *Buffer) DrawRect(node swen.NodeID, bounds swen.Bounds, paint PaintKey, cornerRadius uint16) error {
	return b.push(Instruction{
		Op:           OpDrawRect,
		Node:         node,
		Bounds:       bounds,
		Paint:        paint,
		CornerRadius: cornerRadius,
	})
}

// DrawText appends a draw_text instruction.
func (b *Buffer) DrawText(node swen.NodeID, bounds swen.Bounds, text TextRef, paint PaintKey, textSize uint16) error {
	return b.push(Instruction{
		Op:       OpDrawText,
		Node:     node,
		Bounds:   bounds,
		Paint:    paint,
		Text:     text,
		TextSize: textSize,
	})
}

// PushState appends a push_state instruction and deepens the state
// stack.
func (b *Buffer) PushState() error {
	if err := b.push(Instruction{Op: OpPushState}); err != nil {
		return err
	}
	b.stateDepth++
	return nil
}

// PopState appends a pop_state instruction. A pop without a matching
// push fails with ErrStateStackUnderflow before anything is appended.
func (b *Buffer) PopState() error {
	if b.stateDepth == 0 {
		return ErrStateStackUnderflow
	}
	if err := b.push(Instruction{Op: OpPopState}); err != nil {
		return err
	}
	b.stateDepth--
	return nil
}

// SetTransform appends a set_transform instruction.
func (b *Buffer) SetTransform(m swen.Matrix) error {
	return b.push(Instruction{Op: OpSetTransform, Matrix: m})
}

// BeginClip opens a clip region and returns its id for debugging.
// Nesting beyond MaxClipDepth fails with ErrClipStackOverflow.
func (b *Buffer) BeginClip(bounds swen.Bounds, key ClipKey) (uint32, error) {
	if b.clipDepth >= MaxClipDepth {
		return 0, ErrClipStackOverflow
	}
	id := b.nextClipID
	b.nextClipID++
	if err := b.push(Instruction{Op: OpBeginClip, Bounds: bounds, Clip: key, ClipID: id}); err != nil {
		return 0, err
	}
	b.clipStack[b.clipDepth] = id
	b.clipDepth++
	return id, nil
}

// EndClip closes the innermost clip region. An end without a matching
// begin fails with ErrClipStackUnderflow before anything is appended.
func (b *Buffer) EndClip() error {
	if b.clipDepth == 0 {
		return ErrClipStackUnderflow
	}
	id := b.clipStack[b.clipDepth-1]
	if err := b.push(Instruction{Op: OpEndClip, ClipID: id}); err != nil {
		return err
	}
	b.clipDepth--
	return nil
}

// BeginCacheGroup opens a cacheable instruction group.
func (b *Buffer) BeginCacheGroup(groupID uint32, bounds swen.Bounds, contentHash uint64) error {
	return b.push(Instruction{
		Op:          OpBeginCacheGroup,
		GroupID:     groupID,
		Bounds:      bounds,
		ContentHash: contentHash,
	})
}

// EndCacheGroup closes the innermost cache group.
func (b *Buffer) EndCacheGroup(groupID uint32) error {
	return b.push(Instruction{Op: OpEndCacheGroup, GroupID: groupID})
}

// TileHint appends a scheduling hint for the tile range the following
// instructions touch.
func (b *Buffer) TileHint(start, end TileCoord) error {
	return b.push(Instruction{Op: OpTileHint, StartTile: start, EndTile: end})
}

// TileBoundary marks a tile-aligned split point.
func (b *Buffer) TileBoundary(c TileCoord) error {
	return b.push(Instruction{Op: OpTileBoundary, StartTile: c})
}

// Nop appends a no-op instruction.
func (b *Buffer) Nop() error {
	return b.push(Instruction{Op: OpNop})
}
