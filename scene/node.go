// Package scene holds the retained scene tree owned by the compositor.
//
// The parser constructs nodes directly into a bounded arena; the tree
// refers into that arena and the arena is the unit of reclamation.
// Every node carries both its position in parent space and a local
// position pre-accumulated from its ancestors, so world coordinates are
// computable without a second traversal: world = local + position.
package scene

import (
	"github.com/swen-ui/swen"
)

// Kind discriminates the node variants.
type Kind uint8

const (
	// KindRect is a filled rectangle that may have children.
	KindRect Kind = iota + 1

	// KindText is a text run. Text nodes are leaves.
	KindText

	// KindTransform applies an affine matrix to its children and emits
	// no geometry of its own.
	KindTransform
)

// String returns the kind's source keyword.
func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindText:
		return "text"
	case KindTransform:
		return "transform"
	default:
		return "unknown"
	}
}

// Node is the interface satisfied by all scene tree node variants.
// Concrete types are *Rect, *Text, and *Transform; consumers dispatch
// with a type switch.
type Node interface {
	// Kind returns the variant discriminator.
	Kind() Kind

	// ID returns the parse-assigned node id (never zero for nodes
	// produced by the parser).
	ID() swen.NodeID

	// DeclaredID returns the id string declared in source, or "".
	DeclaredID() string

	// Position returns the node's position in parent space.
	Position() swen.Vector

	// LocalPosition returns the coordinate accumulated from ancestors,
	// excluding the node's own position.
	LocalPosition() swen.Vector

	// Children returns the node's children, or nil for leaves.
	Children() []Node
}

// Rect is a filled rectangle.
type Rect struct {
	NodeID swen.NodeID
	Name   string

	// Size must be strictly positive; the parser enforces this.
	Size swen.Vector

	Pos      swen.Vector
	LocalPos swen.Vector

	// Background is nil for rects that only group children.
	Background *swen.Color

	Kids []Node
}

// Kind implements Node.
func (r *Rect) Kind() Kind { return KindRect }

// ID implements Node.
func (r *Rect) ID() swen.NodeID { return r.NodeID }

// DeclaredID implements Node.
func (r *Rect) DeclaredID() string { return r.Name }

// Position implements Node.
func (r *Rect) Position() swen.Vector { return r.Pos }

// LocalPosition implements Node.
func (r *Rect) LocalPosition() swen.Vector { return r.LocalPos }

// Children implements Node.
func (r *Rect) Children() []Node { return r.Kids }

// WorldPosition returns the rect's origin in world space.
func (r *Rect) WorldPosition() swen.Vector { return r.LocalPos.Add(r.Pos) }

// Text is a text run. Bounds are estimated until font metrics are
// integrated; see the ir package.
type Text struct {
	NodeID swen.NodeID
	Name   string

	Body  string
	Color swen.Color

	Pos      swen.Vector
	LocalPos swen.Vector

	// TextSize is the em size in pixels; always > 0 after parsing.
	TextSize uint16
}

// Kind implements Node.
func (t *Text) Kind() Kind { return KindText }

// ID implements Node.
func (t *Text) ID() swen.NodeID { return t.NodeID }

// DeclaredID implements Node.
func (t *Text) DeclaredID() string { return t.Name }

// Position implements Node.
func (t *Text) Position() swen.Vector { return t.Pos }

// LocalPosition implements Node.
func (t *Text) LocalPosition() swen.Vector { return t.LocalPos }

// Children implements Node. Text nodes are leaves.
func (t *Text) Children() []Node { return nil }

// WorldPosition returns the text origin in world space.
func (t *Text) WorldPosition() swen.Vector { return t.LocalPos.Add(t.Pos) }

// Transform applies an affine matrix to its subtree.
type Transform struct {
	NodeID swen.NodeID
	Name   string

	Pos      swen.Vector
	LocalPos swen.Vector

	// Matrix is nil when the transform only repositions its children.
	Matrix *swen.Matrix

	Kids []Node
}

// Kind implements Node.
func (t *Transform) Kind() Kind { return KindTransform }

// ID implements Node.
func (t *Transform) ID() swen.NodeID { return t.NodeID }

// DeclaredID implements Node.
func (t *Transform) DeclaredID() string { return t.Name }

// Position implements Node.
func (t *Transform) Position() swen.Vector { return t.Pos }

// LocalPosition implements Node.
func (t *Transform) LocalPosition() swen.Vector { return t.LocalPos }

// Children implements Node.
func (t *Transform) Children() []Node { return t.Kids }
