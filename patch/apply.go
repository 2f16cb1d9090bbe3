package patch

import (
	"errors"
	"fmt"

	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/scene"
)

// ErrSessionTerminated is returned when an app's accumulated
// violations cross the hard-failure threshold. The host should tear
// down the offending app session.
var ErrSessionTerminated = errors.New("patch: session terminated after repeated violations")

// DefaultHardFailThreshold is the violation count at which soft
// failure escalates.
const DefaultHardFailThreshold = 32

// Rejection records one softly failed op.
type Rejection struct {
	OpIndex int
	Kind    Kind
	Reason  string
}

// BatchResult summarizes one applied batch.
type BatchResult struct {
	// Applied is the count of ops that mutated state.
	Applied int

	// Rejected lists softly failed ops in batch order.
	Rejected []Rejection

	// CloseRequested is set when the batch contained RequestClose.
	CloseRequested bool
}

// NodeState is the generic per-node state the core tracks for ops that
// have no dedicated field in the scene model. Hosts and backends read
// it when dispatching input or culling.
type NodeState struct {
	Visible bool
	Enabled bool
	Value   float64
	Props   map[string]string
}

// Option configures an Applier.
type Option func(*Applier)

// WithHardFailThreshold overrides the escalation threshold.
func WithHardFailThreshold(n int) Option {
	return func(a *Applier) {
		a.threshold = n
	}
}

// Applier validates and applies patch batches against a scene tree.
//
// Invariants enforced per batch: cross-app mutation is rejected,
// unknown node ids are rejected, structural cycles are rejected, and a
// batch's accepted ops apply together in declared order. Rejection is
// soft by default; an app crossing the violation threshold gets
// ErrSessionTerminated.
type Applier struct {
	root      *scene.Root
	threshold int

	index      map[swen.NodeID]*indexEntry
	violations map[string]int

	focus swen.NodeID
	state map[swen.NodeID]*NodeState
}

// indexEntry locates a node inside its owning app.
type indexEntry struct {
	node   scene.Node
	appID  string
	parent scene.Node // nil for app-level children
	app    *scene.App
}

// NewApplier builds an applier over the tree. The node index covers
// every app subtree in the system and all workspaces.
func NewApplier(root *scene.Root, opts ...Option) *Applier {
	a := &Applier{
		root:       root,
		threshold:  DefaultHardFailThreshold,
		violations: make(map[string]int),
		state:      make(map[swen.NodeID]*NodeState),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.reindex()
	return a
}

// Focus returns the currently focused node, or swen.NoID.
func (a *Applier) Focus() swen.NodeID {
	return a.focus
}

// State returns the generic state for a node, or nil.
func (a *Applier) State(id swen.NodeID) *NodeState {
	return a.state[id]
}

// Violations returns an app's accumulated violation count.
func (a *Applier) Violations(appID string) int {
	return a.violations[appID]
}

// reindex rebuilds the node index from the tree. Called after every
// structural mutation; property mutations keep the index valid.
func (a *Applier) reindex() {
	a.index = make(map[swen.NodeID]*indexEntry)
	for _, app := range a.root.System.Apps {
		a.indexApp(app)
	}
	if a.root.Desktop != nil {
		for _, ws := range a.root.Desktop.Workspaces {
			for _, app := range ws.Apps {
				a.indexApp(app)
			}
		}
	}
}

func (a *Applier) indexApp(app *scene.App) {
	var walk func(nodes []scene.Node, parent scene.Node)
	walk = func(nodes []scene.Node, parent scene.Node) {
		for _, n := range nodes {
			a.index[n.ID()] = &indexEntry{node: n, appID: app.ID, parent: parent, app: app}
			if kids := n.Children(); kids != nil {
				walk(kids, n)
			}
		}
	}
	walk(app.Children, nil)
}

// ApplyBatch validates and applies one batch issued by appID.
//
// Validation runs first over the whole batch; the accepted ops then
// apply together in declared order, which is what makes the batch
// atomic: either the accepted set mutates the tree or (on hard
// failure) nothing does.
func (a *Applier) ApplyBatch(appID string, ops []Op) (BatchResult, error) {
	var result BatchResult

	accepted := make([]Op, 0, len(ops))
	for i, op := range ops {
		if reason := a.validate(appID, op); reason != "" {
			result.Rejected = append(result.Rejected, Rejection{
				OpIndex: i,
				Kind:    op.Kind(),
				Reason:  reason,
			})
			a.violations[appID]++
			swen.Logger().Warn("patch: op rejected",
				"app", appID,
				"op", op.Kind().String(),
				"index", i,
				"reason", reason)
			continue
		}
		accepted = append(accepted, op)
	}

	if a.violations[appID] >= a.threshold {
		return result, fmt.Errorf("%w: app %q", ErrSessionTerminated, appID)
	}

	structural := false
	for _, op := range accepted {
		if a.apply(op, &result) {
			structural = true
		}
		result.Applied++
	}
	if structural {
		a.reindex()
	}
	return result, nil
}

// validate returns a rejection reason, or "" for an acceptable op.
func (a *Applier) validate(appID string, op Op) string {
	switch op.Kind() {
	case KindClearFocus, KindRequestClose:
		return ""
	}

	target := op.Target()
	entry, ok := a.index[target]
	if !ok {
		return fmt.Sprintf("unknown node id %d", target)
	}
	if entry.appID != appID {
		return fmt.Sprintf("node %d belongs to app %q", target, entry.appID)
	}

	switch o := op.(type) {
	case SetText:
		if _, ok := entry.node.(*scene.Text); !ok {
			return "SetText target is not a text node"
		}
	case SetBackground:
		switch entry.node.(type) {
		case *scene.Rect:
		default:
			return "SetBackground target is not a rect"
		}
	case SetSize:
		if _, ok := entry.node.(*scene.Rect); !ok {
			return "SetSize target is not a rect"
		}
		if !o.Size.IsPositive() {
			return fmt.Sprintf("size must be positive, got (%d, %d)", o.Size.X, o.Size.Y)
		}
	case SetTransform:
		if _, ok := entry.node.(*scene.Transform); !ok {
			return "SetTransform target is not a transform node"
		}
	case InsertChild:
		if o.Child == nil {
			return "InsertChild has no child"
		}
		if _, exists := a.index[o.Child.ID()]; exists {
			return fmt.Sprintf("child %d already has a parent", o.Child.ID())
		}
		if subtreeContains(o.Child, target) {
			return "InsertChild would create a cycle"
		}
		if !acceptsChildren(entry.node) {
			return "InsertChild parent cannot hold children"
		}
	case ReplaceChildren:
		if !acceptsChildren(entry.node) {
			return "ReplaceChildren parent cannot hold children"
		}
		for _, child := range o.Children {
			if child == nil {
				return "ReplaceChildren has a nil child"
			}
			if subtreeContains(child, target) {
				return "ReplaceChildren would create a cycle"
			}
		}
	}
	return ""
}

// apply mutates the tree for one validated op. Reports whether the
// mutation was structural.
func (a *Applier) apply(op Op, result *BatchResult) bool {
	switch o := op.(type) {
	case SetText:
		a.index[o.Node].node.(*scene.Text).Body = o.Body

	case SetBackground:
		c := o.Color
		a.index[o.Node].node.(*scene.Rect).Background = &c

	case SetPosition:
		switch n := a.index[o.Node].node.(type) {
		case *scene.Rect:
			n.Pos = o.Position
		case *scene.Text:
			n.Pos = o.Position
		case *scene.Transform:
			n.Pos = o.Position
		}

	case SetSize:
		a.index[o.Node].node.(*scene.Rect).Size = o.Size

	case SetTransform:
		m := o.Matrix
		a.index[o.Node].node.(*scene.Transform).Matrix = &m

	case SetVisibility:
		a.nodeState(o.Node).Visible = o.Visible

	case SetEnabled:
		a.nodeState(o.Node).Enabled = o.Enabled

	case SetValue:
		a.nodeState(o.Node).Value = o.Value

	case SetProperty:
		st := a.nodeState(o.Node)
		if st.Props == nil {
			st.Props = make(map[string]string)
		}
		st.Props[o.Name] = o.Value

	case InsertChild:
		entry := a.index[o.Parent]
		kids := childList(entry.node)
		idx := o.Index
		if idx < 0 || idx > len(kids) {
			idx = len(kids)
		}
		kids = append(kids[:idx], append([]scene.Node{o.Child}, kids[idx:]...)...)
		setChildList(entry.node, kids)
		return true

	case RemoveNode:
		entry := a.index[o.Node]
		if entry.parent != nil {
			setChildList(entry.parent, removeFrom(childList(entry.parent), o.Node))
		} else {
			entry.app.Children = removeFrom(entry.app.Children, o.Node)
		}
		return true

	case ReplaceChildren:
		setChildList(a.index[o.Parent].node, o.Children)
		return true

	case RequestFocus:
		a.focus = o.Node

	case ClearFocus:
		a.focus = swen.NoID

	case RequestClose:
		result.CloseRequested = true
	}
	return false
}

func (a *Applier) nodeState(id swen.NodeID) *NodeState {
	st, ok := a.state[id]
	if !ok {
		st = &NodeState{Visible: true, Enabled: true}
		a.state[id] = st
	}
	return st
}

// subtreeContains reports whether the subtree rooted at n contains id.
func subtreeContains(n scene.Node, id swen.NodeID) bool {
	if n.ID() == id {
		return true
	}
	for _, kid := range n.Children() {
		if subtreeContains(kid, id) {
			return true
		}
	}
	return false
}

// acceptsChildren reports whether the node variant can hold children.
func acceptsChildren(n scene.Node) bool {
	switch n.(type) {
	case *scene.Rect, *scene.Transform:
		return true
	default:
		return false
	}
}

func childList(n scene.Node) []scene.Node {
	switch node := n.(type) {
	case *scene.Rect:
		return node.Kids
	case *scene.Transform:
		return node.Kids
	default:
		return nil
	}
}

func setChildList(n scene.Node, kids []scene.Node) {
	switch node := n.(type) {
	case *scene.Rect:
		node.Kids = kids
	case *scene.Transform:
		node.Kids = kids
	}
}

func removeFrom(kids []scene.Node, id swen.NodeID) []scene.Node {
	for i, kid := range kids {
		if kid.ID() == id {
			return append(kids[:i], kids[i+1:]...)
		}
	}
	return kids
}
