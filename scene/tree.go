package scene

import "github.com/swen-ui/swen"

// Root is the top of the retained scene tree.
// Exactly one Desktop and one System child exist after a successful
// parse.
type Root struct {
	Desktop *Desktop
	System  *System
}

// Desktop is the drawable surface of the compositor.
type Desktop struct {
	// Size is the desktop extent in pixels; strictly positive.
	Size swen.Vector

	// Background is nil when the host clears the surface itself.
	Background *swen.Color

	// ActiveWorkspace points into Workspaces, or is nil.
	ActiveWorkspace *Workspace

	// Workspaces are parsed and retained but not lowered.
	Workspaces []*Workspace

	// Nodes is the drawable layer, already root-filtered.
	Nodes []Node
}

// System holds system-side app surfaces. Its substructure is parsed
// for completeness and never lowered.
type System struct {
	Apps []*App
}

// Workspace groups app surfaces.
type Workspace struct {
	Apps []*App
}

// App is an application subtree. Apps own their children exclusively;
// patch ops may only mutate nodes inside the issuing app's subtree.
type App struct {
	ID         string
	Size       swen.Vector
	Position   swen.Vector
	Background swen.Color
	Children   []Node
}

// Walk calls fn for every node in the subtree rooted at the given
// nodes, parents before children. Walking stops early when fn returns
// false.
func Walk(nodes []Node, fn func(Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		if kids := n.Children(); kids != nil {
			if !Walk(kids, fn) {
				return false
			}
		}
	}
	return true
}
