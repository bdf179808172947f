package segtree

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

const SnapshotFormatV1 = 1

// SnapshotV1 is the complete state of a tree: its shape, every arena record
// and every version root. D and L must be CBOR encodable.
type SnapshotV1[D, L any] struct {
	Format       uint8        `cbor:"1,keyasint"`
	Size         int64        `cbor:"2,keyasint"`
	RangeUpdates bool         `cbor:"3,keyasint"`
	Persistent   bool         `cbor:"4,keyasint"`
	Nodes        []Node[D, L] `cbor:"5,keyasint"`
	Roots        []NodeRef    `cbor:"6,keyasint"`
}

// SnapshotV1 exports the tree state. The nodes and roots are copies.
func (t *Tree[I, D, L]) SnapshotV1() SnapshotV1[D, L] {
	return SnapshotV1[D, L]{
		Format:       SnapshotFormatV1,
		Size:         int64(t.n),
		RangeUpdates: t.lazy != nil,
		Persistent:   t.persistent,
		Nodes:        append([]Node[D, L](nil), t.arena.nodes...),
		Roots:        t.versions.Roots(),
	}
}

// EncodeSnapshotV1 encodes the complete tree state as CBOR.
func (t *Tree[I, D, L]) EncodeSnapshotV1() ([]byte, error) {
	return cbor.Marshal(t.SnapshotV1())
}

// DecodeSnapshotV1 restores a tree encoded by EncodeSnapshotV1. The range
// update and persistence modes are taken from the snapshot, the remaining
// options (logger, reserve) from opts. The policy must be the one the tree
// was created with.
func DecodeSnapshotV1[I Index, D any, L comparable](data []byte, policy Policy[D, L], opts ...Option) (*Tree[I, D, L], error) {
	var snap SnapshotV1[D, L]
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotBadFormat, err)
	}
	return FromSnapshotV1[I](snap, policy, opts...)
}

// FromSnapshotV1 restores a tree from an exported snapshot, after checking
// that every reference it holds is one the arena could have issued.
func FromSnapshotV1[I Index, D any, L comparable](snap SnapshotV1[D, L], policy Policy[D, L], opts ...Option) (*Tree[I, D, L], error) {
	if snap.Format != SnapshotFormatV1 {
		return nil, fmt.Errorf("%w: format %d", ErrSnapshotBadFormat, snap.Format)
	}
	n := I(snap.Size)
	if snap.Size <= 0 || int64(n) != snap.Size {
		return nil, fmt.Errorf("%w: size %d", ErrSnapshotShapeMismatch, snap.Size)
	}
	if len(snap.Roots) == 0 {
		return nil, fmt.Errorf("%w: no versions", ErrSnapshotBadFormat)
	}
	if uint64(len(snap.Nodes)) >= uint64(NoRef) {
		return nil, fmt.Errorf("%w: %d nodes", ErrSnapshotBadFormat, len(snap.Nodes))
	}

	count := NodeRef(len(snap.Nodes))
	validRef := func(ref NodeRef) bool { return ref == NoRef || ref < count }
	for i, root := range snap.Roots {
		if !validRef(root) {
			return nil, fmt.Errorf("%w: version %d root %d", ErrSnapshotBadRef, i, root)
		}
	}
	var zeroLazy L
	for i, node := range snap.Nodes {
		if !validRef(node.Left) || !validRef(node.Right) {
			return nil, fmt.Errorf("%w: node %d children (%d, %d)", ErrSnapshotBadRef, i, node.Left, node.Right)
		}
		if !snap.RangeUpdates && node.Lazy != zeroLazy {
			return nil, fmt.Errorf("%w: node %d has a pending update without range updates", ErrSnapshotBadFormat, i)
		}
	}

	if err := checkSnapshotShape(snap, n); err != nil {
		return nil, err
	}

	o := NewOptions(opts...)
	o.rangeUpdates = snap.RangeUpdates
	o.persistent = snap.Persistent
	t, err := newTree(n, policy, o)
	if err != nil {
		return nil, err
	}
	t.arena.Reserve(len(snap.Nodes))
	t.arena.nodes = append(t.arena.nodes, snap.Nodes...)
	t.versions = &VersionTable{roots: append([]NodeRef(nil), snap.Roots...)}

	t.debugf("segtree: restored n=%d nodes=%d versions=%d", n, t.arena.Len(), t.versions.Len())
	return t, nil
}

// checkSnapshotShape walks every version and checks that each node is
// reached for a single range of the partition, and that leaves have no
// children. This rejects cycles and references that would descend below the
// leaves.
func checkSnapshotShape[I Index, D, L any](snap SnapshotV1[D, L], n I) error {
	seen := make(map[NodeRef][2]I, len(snap.Nodes))

	var walk func(ref NodeRef, tl, tr I) error
	walk = func(ref NodeRef, tl, tr I) error {
		if ref == NoRef {
			return nil
		}
		if s, ok := seen[ref]; ok {
			if s != [2]I{tl, tr} {
				return fmt.Errorf("%w: node %d covers [%d, %d] and [%d, %d]", ErrSnapshotBadRef, ref, s[0], s[1], tl, tr)
			}
			return nil
		}
		seen[ref] = [2]I{tl, tr}
		node := snap.Nodes[ref]
		if tl == tr {
			if node.Left != NoRef || node.Right != NoRef {
				return fmt.Errorf("%w: leaf %d has children", ErrSnapshotBadRef, ref)
			}
			return nil
		}
		m := midpoint(tl, tr)
		if err := walk(node.Left, tl, m); err != nil {
			return err
		}
		return walk(node.Right, m+1, tr)
	}
	for _, root := range snap.Roots {
		if err := walk(root, 0, n-1); err != nil {
			return err
		}
	}
	return nil
}
