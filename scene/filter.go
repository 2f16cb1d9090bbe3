package scene

import (
	"fmt"

	"github.com/swen-ui/swen"
)

// DefaultFilterCapacity is the default root-filter bitset capacity.
// Node ids above this bound fail RootFilter.
const DefaultFilterCapacity = 4096

// RootFilter returns the nodes in the given flat arena range whose id
// does not appear as a child of any other node in the same range. This
// recovers tree purity after the parser has flattened nested children
// into the shared arena: a node appears in at most one parent's child
// list, so any node referenced as a child cannot also be a root.
//
// Presence is tracked in a bitset indexed by node id minus one.
// Ids must be in [1, capacity]; capacity <= 0 selects
// DefaultFilterCapacity.
func RootFilter(nodes []Node, capacity int) ([]Node, error) {
	if capacity <= 0 {
		capacity = DefaultFilterCapacity
	}
	if len(nodes) == 0 {
		return nil, nil
	}

	child := newBitset(capacity)
	for _, n := range nodes {
		for _, kid := range n.Children() {
			if err := child.set(kid.ID()); err != nil {
				return nil, err
			}
		}
	}

	roots := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		ok, err := child.get(n.ID())
		if err != nil {
			return nil, err
		}
		if !ok {
			roots = append(roots, n)
		}
	}
	return roots, nil
}

// bitset is a fixed-size presence set indexed by NodeID-1.
type bitset struct {
	words []uint64
	cap   int
}

func newBitset(capacity int) *bitset {
	return &bitset{
		words: make([]uint64, (capacity+63)/64),
		cap:   capacity,
	}
}

func (b *bitset) index(id swen.NodeID) (int, uint64, error) {
	if id == 0 || int(id) > b.cap {
		return 0, 0, fmt.Errorf("scene: node id %d outside filter capacity %d", id, b.cap)
	}
	bit := int(id - 1)
	return bit / 64, 1 << (uint(bit) % 64), nil
}

func (b *bitset) set(id swen.NodeID) error {
	w, mask, err := b.index(id)
	if err != nil {
		return err
	}
	b.words[w] |= mask
	return nil
}

func (b *bitset) get(id swen.NodeID) (bool, error) {
	w, mask, err := b.index(id)
	if err != nil {
		return false, err
	}
	return b.words[w]&mask != 0, nil
}
