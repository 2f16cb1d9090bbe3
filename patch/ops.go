// Package patch validates and applies app-issued scene mutations.
//
// Patch ops arrive over IPC as high-level mutations of the issuing
// app's subtree; the wire codec lives with the transport, and this
// package is the validation and application surface the compositor
// exposes. Batches apply in declared order; individual invalid ops are
// rejected softly while repeated violations escalate to session
// termination.
package patch

import (
	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/scene"
)

// Kind identifies a patch op.
type Kind uint8

const (
	// Property mutations.
	KindSetText Kind = iota + 1
	KindSetBackground
	KindSetPosition
	KindSetSize
	KindSetTransform
	KindSetVisibility
	KindSetEnabled
	KindSetValue
	KindSetProperty

	// Structural mutations.
	KindInsertChild
	KindRemoveNode
	KindReplaceChildren

	// Focus.
	KindRequestFocus
	KindClearFocus
	KindRequestClose
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindSetText:
		return "SetText"
	case KindSetBackground:
		return "SetBackground"
	case KindSetPosition:
		return "SetPosition"
	case KindSetSize:
		return "SetSize"
	case KindSetTransform:
		return "SetTransform"
	case KindSetVisibility:
		return "SetVisibility"
	case KindSetEnabled:
		return "SetEnabled"
	case KindSetValue:
		return "SetValue"
	case KindSetProperty:
		return "SetProperty"
	case KindInsertChild:
		return "InsertChild"
	case KindRemoveNode:
		return "RemoveNode"
	case KindReplaceChildren:
		return "ReplaceChildren"
	case KindRequestFocus:
		return "RequestFocus"
	case KindClearFocus:
		return "ClearFocus"
	case KindRequestClose:
		return "RequestClose"
	default:
		return "Unknown"
	}
}

// Op is a single scene mutation. Concrete op types are plain structs;
// Target returns swen.NoID for ops without a node argument.
type Op interface {
	Kind() Kind
	Target() swen.NodeID
}

// SetText replaces a text node's body.
type SetText struct {
	Node swen.NodeID
	Body string
}

func (o SetText) Kind() Kind          { return KindSetText }
func (o SetText) Target() swen.NodeID { return o.Node }

// SetBackground replaces a rect's background color.
type SetBackground struct {
	Node  swen.NodeID
	Color swen.Color
}

func (o SetBackground) Kind() Kind          { return KindSetBackground }
func (o SetBackground) Target() swen.NodeID { return o.Node }

// SetPosition moves a node in parent space.
type SetPosition struct {
	Node     swen.NodeID
	Position swen.Vector
}

func (o SetPosition) Kind() Kind          { return KindSetPosition }
func (o SetPosition) Target() swen.NodeID { return o.Node }

// SetSize resizes a rect. The size must be strictly positive.
type SetSize struct {
	Node swen.NodeID
	Size swen.Vector
}

func (o SetSize) Kind() Kind          { return KindSetSize }
func (o SetSize) Target() swen.NodeID { return o.Node }

// SetTransform replaces a transform node's matrix.
type SetTransform struct {
	Node   swen.NodeID
	Matrix swen.Matrix
}

func (o SetTransform) Kind() Kind          { return KindSetTransform }
func (o SetTransform) Target() swen.NodeID { return o.Node }

// SetVisibility toggles a node's visibility flag.
type SetVisibility struct {
	Node    swen.NodeID
	Visible bool
}

func (o SetVisibility) Kind() Kind          { return KindSetVisibility }
func (o SetVisibility) Target() swen.NodeID { return o.Node }

// SetEnabled toggles a node's enabled flag.
type SetEnabled struct {
	Node    swen.NodeID
	Enabled bool
}

func (o SetEnabled) Kind() Kind          { return KindSetEnabled }
func (o SetEnabled) Target() swen.NodeID { return o.Node }

// SetValue sets a node's numeric value (sliders, progress bars).
type SetValue struct {
	Node  swen.NodeID
	Value float64
}

func (o SetValue) Kind() Kind          { return KindSetValue }
func (o SetValue) Target() swen.NodeID { return o.Node }

// SetProperty sets a generic named property.
type SetProperty struct {
	Node  swen.NodeID
	Name  string
	Value string
}

func (o SetProperty) Kind() Kind          { return KindSetProperty }
func (o SetProperty) Target() swen.NodeID { return o.Node }

// InsertChild inserts a newly built node under a parent.
// Index -1 appends.
type InsertChild struct {
	Parent swen.NodeID
	Child  scene.Node
	Index  int
}

func (o InsertChild) Kind() Kind          { return KindInsertChild }
func (o InsertChild) Target() swen.NodeID { return o.Parent }

// RemoveNode detaches a node and its subtree.
type RemoveNode struct {
	Node swen.NodeID
}

func (o RemoveNode) Kind() Kind          { return KindRemoveNode }
func (o RemoveNode) Target() swen.NodeID { return o.Node }

// ReplaceChildren swaps a parent's entire child list.
type ReplaceChildren struct {
	Parent   swen.NodeID
	Children []scene.Node
}

func (o ReplaceChildren) Kind() Kind          { return KindReplaceChildren }
func (o ReplaceChildren) Target() swen.NodeID { return o.Parent }

// RequestFocus asks for input focus on a node.
type RequestFocus struct {
	Node swen.NodeID
}

func (o RequestFocus) Kind() Kind          { return KindRequestFocus }
func (o RequestFocus) Target() swen.NodeID { return o.Node }

// ClearFocus relinquishes input focus.
type ClearFocus struct{}

func (o ClearFocus) Kind() Kind          { return KindClearFocus }
func (o ClearFocus) Target() swen.NodeID { return swen.NoID }

// RequestClose asks the compositor to close the app's session.
type RequestClose struct{}

func (o RequestClose) Kind() Kind          { return KindRequestClose }
func (o RequestClose) Target() swen.NodeID { return swen.NoID }
