package ir

import "github.com/swen-ui/swen"

// PaintKind discriminates fill styles. Solid color is the only kind
// the lowerer emits today; gradients and images extend the enum
// without changing the dedup tables.
type PaintKind uint8

const (
	// PaintSolid is a single-color fill.
	PaintSolid PaintKind = iota
)

// PaintKey uniquely identifies a fill style. It is the deduplication
// key for the scheduler's paint table: two draws with Eql keys share
// one table entry.
type PaintKey struct {
	Kind  PaintKind
	Color swen.Color
}

// SolidPaint returns the key for a solid color fill.
func SolidPaint(c swen.Color) PaintKey {
	return PaintKey{Kind: PaintSolid, Color: c}
}

// Eql reports whether two keys identify the same paint.
func (k PaintKey) Eql(o PaintKey) bool {
	return k == o
}

// Hash returns a probe hash for the linear-probed paint table.
func (k PaintKey) Hash() uint64 {
	h := uint64(k.Kind)
	h = h*31 + uint64(k.Color.R)
	h = h*31 + uint64(k.Color.G)
	h = h*31 + uint64(k.Color.B)
	h = h*31 + uint64(k.Color.A)
	return h
}

// IsOpaque reports whether the paint covers everything beneath it.
func (k PaintKey) IsOpaque() bool {
	return k.Kind == PaintSolid && k.Color.IsOpaque()
}

// ClipKey uniquely identifies a clip region.
type ClipKey struct {
	Bounds swen.Bounds
}

// Eql reports whether two keys identify the same clip.
func (k ClipKey) Eql(o ClipKey) bool {
	return k == o
}

// Hash returns a probe hash for the linear-probed clip table.
func (k ClipKey) Hash() uint64 {
	h := uint64(uint32(k.Bounds.X))
	h = h*31 + uint64(uint32(k.Bounds.Y))
	h = h*31 + uint64(uint32(k.Bounds.Width))
	h = h*31 + uint64(uint32(k.Bounds.Height))
	return h
}
