package scene

import (
	"errors"

	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/internal/arena"
)

// DefaultNodeCapacity bounds the number of nodes a single parse may
// produce. It matches the default root-filter bitset capacity.
const DefaultNodeCapacity = 4096

// ErrArenaFull is returned when a parse exceeds the node arena.
var ErrArenaFull = errors.New("scene: node arena full")

// Arena is the bounded flat store the parser emits nodes into.
// Children are appended in parse order alongside their parents; the
// tree structure lives in the node Kids slices, and RootFilter
// recovers the top-level nodes of any arena range.
type Arena struct {
	nodes *arena.Slice[Node]
	ids   *swen.IDAllocator
}

// NewArena creates an arena with the given node capacity.
// Capacity <= 0 selects DefaultNodeCapacity.
func NewArena(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultNodeCapacity
	}
	return &Arena{
		nodes: arena.New[Node](capacity),
		ids:   swen.NewIDAllocator(),
	}
}

// NextID hands out the next parse-unique node id, starting at 1.
func (a *Arena) NextID() swen.NodeID {
	return a.ids.Next()
}

// Push appends a node, returning its arena index.
func (a *Arena) Push(n Node) (int, error) {
	idx, err := a.nodes.Push(n)
	if err != nil {
		return 0, ErrArenaFull
	}
	return idx, nil
}

// Len returns the number of nodes pushed.
func (a *Arena) Len() int {
	return a.nodes.Len()
}

// Range returns the nodes in [start, end).
func (a *Arena) Range(start, end int) []Node {
	return a.nodes.Range(start, end)
}

// Truncate drops nodes at index n and above. The parser does not call
// it; nodes pushed by a failed parse stay in the arena until Reset.
func (a *Arena) Truncate(n int) {
	a.nodes.Truncate(n)
}

// Reset empties the arena and restarts id assignment at 1.
func (a *Arena) Reset() {
	a.nodes.Reset()
	a.ids = swen.NewIDAllocator()
}
