package segtree

import (
	"fmt"
	"slices"
)

// Node is a single arena record. Left and Right are NoRef for absent children.
// Lazy is the update pending for both children, it is only used in range
// update mode.
type Node[D, L any] struct {
	Value D       `cbor:"1,keyasint"`
	Lazy  L       `cbor:"2,keyasint"`
	Left  NodeRef `cbor:"3,keyasint"`
	Right NodeRef `cbor:"4,keyasint"`
}

// Arena is the append-only node store. It is the sole owner of node storage,
// and never removes or reuses a record.
type Arena[D, L any] struct {
	nodes []Node[D, L]
}

func NewArena[D, L any](capacity int) *Arena[D, L] {
	return &Arena[D, L]{nodes: make([]Node[D, L], 0, max(capacity, 0))}
}

// Allocate appends a new childless node and returns its reference.
func (a *Arena[D, L]) Allocate(value D, lazy L) NodeRef {
	a.checkCapacity()
	a.nodes = append(a.nodes, Node[D, L]{Value: value, Lazy: lazy, Left: NoRef, Right: NoRef})
	return NodeRef(len(a.nodes) - 1)
}

// Clone appends a copy of the node at ref and returns the reference of the
// copy. The caller must ensure ref is valid.
func (a *Arena[D, L]) Clone(ref NodeRef) NodeRef {
	a.checkCapacity()
	// copy first, append may move the backing array
	n := a.nodes[ref]
	a.nodes = append(a.nodes, n)
	return NodeRef(len(a.nodes) - 1)
}

// Reserve grows the arena storage so that it can hold at least capacity
// records without reallocating.
func (a *Arena[D, L]) Reserve(capacity int) {
	if capacity <= cap(a.nodes) {
		return
	}
	a.nodes = slices.Grow(a.nodes, capacity-len(a.nodes))
}

func (a *Arena[D, L]) Len() int { return len(a.nodes) }
func (a *Arena[D, L]) Cap() int { return cap(a.nodes) }

// Node returns a copy of the record at ref. It returns false for NoRef and
// for references the arena never issued.
func (a *Arena[D, L]) Node(ref NodeRef) (Node[D, L], bool) {
	if ref == NoRef || int(ref) >= len(a.nodes) {
		return Node[D, L]{}, false
	}
	return a.nodes[ref], true
}

// at returns the record for in-place writes. The pointer is only valid until
// the next Allocate or Clone.
func (a *Arena[D, L]) at(ref NodeRef) *Node[D, L] {
	return &a.nodes[ref]
}

func (a *Arena[D, L]) checkCapacity() {
	if uint64(len(a.nodes)) >= uint64(NoRef) {
		panic(fmt.Errorf("%w: %d records", ErrArenaExhausted, len(a.nodes)))
	}
}
